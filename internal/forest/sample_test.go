package forest_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/ledgerview/internal/accounts"
	"github.com/cleared-dev/ledgerview/internal/forest"
	"github.com/cleared-dev/ledgerview/internal/model"
)

func TestSampleChartRollup(t *testing.T) {
	f, err := forest.FromAccounts(accounts.SampleChart())
	require.NoError(t, err)

	tree := f.BuildTree()
	require.Len(t, tree, 3)

	want := map[string]int64{
		"Assets":      210500,
		"Liabilities": 120000,
		"Equity":      118500,
	}
	for _, root := range tree {
		assert.True(t, decimal.NewFromInt(want[root.Name]).Equal(root.Value), "%s = %s", root.Name, root.Value)
	}

	current, ok := f.Subtree("2")
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(45500).Equal(current.Value), "Current Assets")
}

func TestSampleChartFlatten(t *testing.T) {
	f, err := forest.FromAccounts(accounts.SampleChart())
	require.NoError(t, err)

	flat := f.Flatten()
	require.Len(t, flat, 17)

	var names []string
	leaves := 0
	for _, r := range flat {
		names = append(names, r.Name)
		if r.IsLeaf {
			leaves++
		}
	}
	assert.Equal(t, []string{
		"Assets", "Current Assets", "Cash", "Accounts Receivable", "Inventory",
		"Fixed Assets", "Equipment", "Buildings",
		"Liabilities", "Current Liabilities", "Accounts Payable", "Short-term Loans",
		"Long-term Liabilities", "Mortgage",
		"Equity", "Common Stock", "Retained Earnings",
	}, names)
	assert.Equal(t, 10, leaves)
}

func TestSampleChartPathAndTreemap(t *testing.T) {
	f, err := forest.FromAccounts(accounts.SampleChart())
	require.NoError(t, err)

	var names []string
	for _, n := range f.Path(model.IntID(14)) {
		names = append(names, n.Name)
	}
	assert.Equal(t, []string{"Liabilities", "Long-term Liabilities", "Mortgage"}, names)

	root := f.Treemap()
	assert.True(t, decimal.NewFromInt(449000).Equal(root.Value))
	equity, ok := root.Child("Equity")
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(118500).Equal(equity.Value))
}
