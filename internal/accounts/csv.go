package accounts

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerview/internal/model"
)

const (
	numFields  = 4
	colID      = 0
	colName    = 1
	colParent  = 2
	colBalance = 3
)

// Header is the accounts.csv header row.
var Header = []string{"account_id", "account_name", "parent_id", "balance"}

// ReadAccounts reads accounts.csv.
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var accounts []model.Account
	for i, rec := range records[1:] {
		acct, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// WriteAccounts writes accounts.csv.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalAccount converts an Account to a CSV row.
func MarshalAccount(acct model.Account) []string {
	row := make([]string, numFields)
	row[colID] = string(acct.ID)
	row[colName] = acct.Name
	row[colParent] = string(acct.ParentID)
	row[colBalance] = acct.Value.String()
	return row
}

// UnmarshalAccount converts a CSV row to an Account. An empty balance is zero.
func UnmarshalAccount(record []string) (model.Account, error) {
	if len(record) != numFields {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	value := decimal.Zero
	if record[colBalance] != "" {
		var err error
		value, err = decimal.NewFromString(record[colBalance])
		if err != nil {
			return model.Account{}, fmt.Errorf("parsing balance %q: %w", record[colBalance], err)
		}
	}

	return model.Account{
		ID:       model.AccountID(record[colID]),
		Name:     record[colName],
		ParentID: model.AccountID(record[colParent]),
		Value:    value,
	}, nil
}
