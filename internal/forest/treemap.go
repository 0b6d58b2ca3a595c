package forest

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerview/internal/model"
)

// TreemapRootName names the synthetic root of every treemap.
const TreemapRootName = "All Accounts"

// TreemapNode is a name-keyed group for nested-rectangle renderers. Siblings
// never share a name.
type TreemapNode struct {
	Name     string          `json:"name"`
	Value    decimal.Decimal `json:"value"`
	Children []*TreemapNode  `json:"children"`

	byName map[string]*TreemapNode
}

func newTreemapNode(name string) *TreemapNode {
	return &TreemapNode{
		Name:     name,
		Value:    decimal.Zero,
		Children: []*TreemapNode{},
		byName:   make(map[string]*TreemapNode),
	}
}

// Child returns the direct child called name.
func (t *TreemapNode) Child(name string) (*TreemapNode, bool) {
	for _, c := range t.Children {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// group finds or creates the direct child called name.
func (t *TreemapNode) group(name string) *TreemapNode {
	if g, ok := t.byName[name]; ok {
		return g
	}
	g := newTreemapNode(name)
	t.byName[name] = g
	t.Children = append(t.Children, g)
	return g
}

// Treemap regroups the flattened view by name.
func (f *Forest) Treemap() TreemapNode {
	flat := f.Flatten()
	accounts := make([]model.Account, len(flat))
	for i, r := range flat {
		accounts[i] = r.Account()
	}
	return PrepareTreeData(accounts)
}

// PrepareTreeData groups accounts under a synthetic root by the names along
// each account's ParentID chain within accounts. Accounts that share a name
// path collapse into one group, and the last one's value wins. Groups with
// children are then set to the sum of their children.
func PrepareTreeData(accounts []model.Account) TreemapNode {
	byID := make(map[model.AccountID]model.Account, len(accounts))
	for _, a := range accounts {
		if _, ok := byID[a.ID]; !ok {
			byID[a.ID] = a
		}
	}

	root := newTreemapNode(TreemapRootName)
	for _, a := range accounts {
		current := root
		for _, name := range namePath(a, byID) {
			current = current.group(name)
		}
		current.Value = a.Value
	}

	rollupTreemap(root)
	return *root
}

// namePath returns the names from the outermost resolvable ancestor down to a.
// The walk stops at the first parent id that is missing or already visited.
func namePath(a model.Account, byID map[model.AccountID]model.Account) []string {
	names := []string{a.Name}
	seen := map[model.AccountID]bool{a.ID: true}
	current := a
	for !current.ParentID.IsZero() && !seen[current.ParentID] {
		parent, ok := byID[current.ParentID]
		if !ok {
			break
		}
		seen[parent.ID] = true
		names = append([]string{parent.Name}, names...)
		current = parent
	}
	return names
}

func rollupTreemap(t *TreemapNode) {
	if len(t.Children) == 0 {
		return
	}
	total := decimal.Zero
	for _, c := range t.Children {
		rollupTreemap(c)
		total = total.Add(c.Value)
	}
	t.Value = total
}
