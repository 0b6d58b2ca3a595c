package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/cleared-dev/ledgerview/internal/forest"
	"github.com/cleared-dev/ledgerview/internal/model"
)

// RecordError describes one malformed source record.
type RecordError struct {
	Row         int
	ID          model.AccountID
	Description string
}

func (e RecordError) Error() string {
	return fmt.Sprintf("record %d [%s]: %s", e.Row, e.ID, e.Description)
}

// ValidateRecords checks that every record has an id and a name.
func ValidateRecords(accts []model.Account) []RecordError {
	var errs []RecordError
	for i, a := range accts {
		if a.ID.IsZero() {
			errs = append(errs, RecordError{Row: i + 1, ID: a.ID, Description: "missing account id"})
		}
		if a.Name == "" {
			errs = append(errs, RecordError{Row: i + 1, ID: a.ID, Description: "missing account name"})
		}
	}
	return errs
}

// Load fetches one snapshot from src and builds a forest from it. With strict
// set, accounts whose parent is missing fail the load instead of being kept
// as orphans.
func Load(ctx context.Context, src Source, strict bool) (*forest.Forest, error) {
	accts, err := src.Accounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching accounts: %w", err)
	}

	if rerrs := ValidateRecords(accts); len(rerrs) > 0 {
		errs := make([]error, len(rerrs))
		for i, re := range rerrs {
			errs[i] = re
		}
		return nil, fmt.Errorf("invalid accounts: %w", errors.Join(errs...))
	}

	f, err := forest.FromAccounts(accts)
	if err != nil {
		return nil, fmt.Errorf("building forest: %w", err)
	}

	if strict {
		if err := f.Validate(); err != nil {
			return nil, fmt.Errorf("strict load: %w", err)
		}
	}
	return f, nil
}
