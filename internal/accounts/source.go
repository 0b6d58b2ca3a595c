package accounts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cleared-dev/ledgerview/internal/config"
	"github.com/cleared-dev/ledgerview/internal/model"
)

// Source supplies the flat account records for one snapshot.
type Source interface {
	Accounts(ctx context.Context) ([]model.Account, error)
}

// SampleSource serves SampleChart.
type SampleSource struct{}

// Accounts returns a fresh copy of the sample chart.
func (SampleSource) Accounts(ctx context.Context) ([]model.Account, error) {
	return SampleChart(), ctx.Err()
}

// CSVSource reads accounts.csv from Path on every call.
type CSVSource struct {
	Path string
}

// Accounts reads and parses the CSV file.
func (s CSVSource) Accounts(ctx context.Context) ([]model.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("opening accounts: %w", err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.Path, err)
	}
	return accts, nil
}

// SaveCSV writes accounts to path, creating its directory.
func SaveCSV(path string, accts []model.Account) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating accounts dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating accounts file: %w", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, accts); err != nil {
		return fmt.Errorf("writing accounts: %w", err)
	}
	return nil
}

// NewSource builds the Source described by cfg. The sqlite source opens its
// database here; the returned close func must be called when done.
func NewSource(cfg config.SourceConfig) (Source, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Kind {
	case config.SourceSample:
		return SampleSource{}, noop, nil
	case config.SourceCSV:
		return CSVSource{Path: cfg.Path}, noop, nil
	case config.SourceSQLite:
		db, err := OpenSQLite(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return &SQLiteSource{DB: db}, db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown source kind %q", cfg.Kind)
	}
}
