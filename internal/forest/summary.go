package forest

import "github.com/shopspring/decimal"

// Summary is what the bar and distribution charts consume.
type Summary struct {
	TopLevel []FlatRecord    `json:"topLevel"`
	Leaves   []LeafShare     `json:"leaves"`
	Total    decimal.Decimal `json:"total"`
}

// LeafShare is a leaf account with its fraction of the leaf total.
type LeafShare struct {
	FlatRecord
	Share decimal.Decimal `json:"share"`
}

// Summarize picks the level-0 rows and the leaf rows out of a flattened view.
// Share is a ratio in [0, 1] for non-negative balances, rounded to 4 places.
func Summarize(flat []FlatRecord) Summary {
	s := Summary{
		TopLevel: []FlatRecord{},
		Leaves:   []LeafShare{},
		Total:    decimal.Zero,
	}
	leafTotal := decimal.Zero
	for _, r := range flat {
		if r.Level == 0 {
			s.TopLevel = append(s.TopLevel, r)
			s.Total = s.Total.Add(r.Value)
		}
		if r.IsLeaf {
			s.Leaves = append(s.Leaves, LeafShare{FlatRecord: r})
			leafTotal = leafTotal.Add(r.Value)
		}
	}
	for i := range s.Leaves {
		if leafTotal.IsZero() {
			s.Leaves[i].Share = decimal.Zero
			continue
		}
		s.Leaves[i].Share = s.Leaves[i].Value.Div(leafTotal).Round(4)
	}
	return s
}
