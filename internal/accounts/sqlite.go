package accounts

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	// sqlite3 driver
	_ "github.com/mattn/go-sqlite3"

	"github.com/cleared-dev/ledgerview/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
	id        TEXT PRIMARY KEY,
	name      TEXT NOT NULL,
	parent_id TEXT,
	balance   TEXT NOT NULL DEFAULT '0'
);`

// SQLiteSource reads the accounts table in insertion order.
type SQLiteSource struct {
	DB *sql.DB
}

// OpenSQLite opens the database at path and makes sure the schema exists.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	if err := Migrate(context.Background(), db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate creates the accounts table if it is missing.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating accounts table: %w", err)
	}
	return nil
}

// Insert stores accts in one transaction, preserving their order.
func Insert(ctx context.Context, db *sql.DB, accts []model.Account) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO accounts (id, name, parent_id, balance) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range accts {
		parent := sql.NullString{String: string(a.ParentID), Valid: !a.ParentID.IsZero()}
		if _, err := stmt.ExecContext(ctx, string(a.ID), a.Name, parent, a.Value.String()); err != nil {
			return fmt.Errorf("inserting account %q: %w", a.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing accounts: %w", err)
	}
	return nil
}

// Accounts queries every row ordered by rowid.
func (s *SQLiteSource) Accounts(ctx context.Context) ([]model.Account, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT id, name, parent_id, balance FROM accounts ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying accounts: %w", err)
	}
	defer rows.Close()

	var accts []model.Account
	for rows.Next() {
		var (
			id, name string
			parent   sql.NullString
			balance  decimal.Decimal
		)
		if err := rows.Scan(&id, &name, &parent, &balance); err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}
		accts = append(accts, model.Account{
			ID:       model.AccountID(id),
			Name:     name,
			ParentID: model.AccountID(parent.String),
			Value:    balance,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating accounts: %w", err)
	}
	return accts, nil
}
