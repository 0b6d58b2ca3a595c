package forest

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/ledgerview/internal/model"
)

func childNames(t *TreemapNode) []string {
	names := make([]string, 0, len(t.Children))
	for _, c := range t.Children {
		names = append(names, c.Name)
	}
	return names
}

func TestPrepareTreeData_Rollup(t *testing.T) {
	root := PrepareTreeData([]model.Account{
		acct("1", "Assets", "", 0),
		acct("2", "Current", "1", 0),
		acct("4", "Cash", "2", 100),
		acct("5", "AR", "2", 250),
		acct("9", "Liabilities", "", 0),
		acct("12", "Payable", "9", 40),
	})

	assert.Equal(t, TreemapRootName, root.Name)
	assertValue(t, 390, root.Value)
	assert.Equal(t, []string{"Assets", "Liabilities"}, childNames(&root))

	assets, ok := root.Child("Assets")
	require.True(t, ok)
	assertValue(t, 350, assets.Value)
	current, ok := assets.Child("Current")
	require.True(t, ok)
	assert.Equal(t, []string{"Cash", "AR"}, childNames(current))
	cash, _ := current.Child("Cash")
	assertValue(t, 100, cash.Value)
	assert.Empty(t, cash.Children)
}

func TestPrepareTreeData_MergesSameNamePath(t *testing.T) {
	root := PrepareTreeData([]model.Account{
		acct("1", "Assets", "", 0),
		acct("2", "Cash", "1", 100),
		acct("3", "Cash", "1", 700),
	})

	assets, ok := root.Child("Assets")
	require.True(t, ok)
	require.Len(t, assets.Children, 1, "same name under the same parent is one group")
	assertValue(t, 700, assets.Children[0].Value, "last write wins")
	assertValue(t, 700, root.Value)
}

func TestPrepareTreeData_MergesGroupsAcrossIDs(t *testing.T) {
	// Two different "Assets" roots collapse into one synthetic group.
	root := PrepareTreeData([]model.Account{
		acct("1", "Assets", "", 0),
		acct("2", "Cash", "1", 100),
		acct("10", "Assets", "", 0),
		acct("11", "Bank", "10", 50),
	})

	require.Len(t, root.Children, 1)
	assets := root.Children[0]
	assert.Equal(t, []string{"Cash", "Bank"}, childNames(assets))
	assertValue(t, 150, assets.Value)
}

func TestPrepareTreeData_TruncatesBrokenChain(t *testing.T) {
	root := PrepareTreeData([]model.Account{
		acct("1", "Assets", "", 0),
		acct("2", "Cash", "1", 100),
		acct("11", "Stray", "99", 30),
	})

	assert.Equal(t, []string{"Assets", "Stray"}, childNames(&root))
	stray, _ := root.Child("Stray")
	assertValue(t, 30, stray.Value)
	assertValue(t, 130, root.Value)
}

func TestPrepareTreeData_StopsOnCycle(t *testing.T) {
	root := PrepareTreeData([]model.Account{
		acct("a", "A", "b", 1),
		acct("b", "B", "a", 2),
	})

	// a's chain is B > A, b's chain is A > B.
	assert.ElementsMatch(t, []string{"A", "B"}, childNames(&root))
	assertValue(t, 3, root.Value)
}

func TestPrepareTreeData_FirstIDOccurrenceResolvesParents(t *testing.T) {
	root := PrepareTreeData([]model.Account{
		acct("1", "Assets", "", 0),
		acct("1", "Shadow", "", 0),
		acct("2", "Cash", "1", 5),
	})

	assets, ok := root.Child("Assets")
	require.True(t, ok)
	assert.Equal(t, []string{"Cash"}, childNames(assets))
}

func TestPrepareTreeData_Empty(t *testing.T) {
	root := PrepareTreeData(nil)
	assert.Equal(t, TreemapRootName, root.Name)
	assertValue(t, 0, root.Value)
	assert.Empty(t, root.Children)

	data, err := json.Marshal(root)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"All Accounts","value":"0","children":[]}`, string(data))
}

func TestForestTreemap_SkipsOrphans(t *testing.T) {
	f := mustForest(t,
		acct("1", "Assets", "", 0),
		acct("2", "Cash", "1", 100),
		acct("3", "Lost", "404", 900),
	)

	root := f.Treemap()
	assert.Equal(t, []string{"Assets"}, childNames(&root))
	assertValue(t, 100, root.Value)
}

func TestForestTreemap_MatchesNestedView(t *testing.T) {
	f := threeLevel(t)
	tree := f.BuildTree()
	root := f.Treemap()

	assets, ok := root.Child("Assets")
	require.True(t, ok)
	assert.True(t, tree[0].Value.Equal(assets.Value))
	fixed, ok := assets.Child("Fixed")
	require.True(t, ok)
	assert.True(t, tree[0].Children[1].Value.Equal(fixed.Value))
}
