package model

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// AccountID identifies an account. Integer ids are carried in their decimal
// string form so that numeric and string ids share one key space.
type AccountID string

// IntID returns the AccountID for an integer id.
func IntID(n int) AccountID {
	return AccountID(strconv.Itoa(n))
}

// IsZero reports whether the id is empty, i.e. "no parent".
func (id AccountID) IsZero() bool {
	return id == ""
}

func (id AccountID) String() string {
	return string(id)
}

// Account is one flat record supplied by an account source.
type Account struct {
	ID       AccountID       `json:"id"`
	Name     string          `json:"name"`
	ParentID AccountID       `json:"parentId,omitempty"` // "" = top-level
	Value    decimal.Decimal `json:"value"`
}
