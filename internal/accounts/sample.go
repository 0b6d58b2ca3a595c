package accounts

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerview/internal/model"
)

// SampleChart returns the demo Assets/Liabilities/Equity chart of accounts.
func SampleChart() []model.Account {
	return []model.Account{
		// Assets
		sample(1, "Assets", 0, 0),
		sample(2, "Current Assets", 1, 0),
		sample(3, "Fixed Assets", 1, 0),
		sample(4, "Cash", 2, 15000),
		sample(5, "Accounts Receivable", 2, 8500),
		sample(6, "Inventory", 2, 22000),
		sample(7, "Equipment", 3, 45000),
		sample(8, "Buildings", 3, 120000),

		// Liabilities
		sample(9, "Liabilities", 0, 0),
		sample(10, "Current Liabilities", 9, 0),
		sample(11, "Long-term Liabilities", 9, 0),
		sample(12, "Accounts Payable", 10, 18000),
		sample(13, "Short-term Loans", 10, 12000),
		sample(14, "Mortgage", 11, 90000),

		// Equity
		sample(15, "Equity", 0, 0),
		sample(16, "Common Stock", 15, 50000),
		sample(17, "Retained Earnings", 15, 68500),
	}
}

func sample(id int, name string, parent int, value int64) model.Account {
	acct := model.Account{ID: model.IntID(id), Name: name, Value: decimal.NewFromInt(value)}
	if parent != 0 {
		acct.ParentID = model.IntID(parent)
	}
	return acct
}
