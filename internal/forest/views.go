package forest

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerview/internal/model"
)

// ViewNode is one node of the nested view, with group values rolled up.
type ViewNode struct {
	ID       model.AccountID `json:"id"`
	Name     string          `json:"name"`
	Value    decimal.Decimal `json:"value"`
	Level    int             `json:"level"`
	Children []ViewNode      `json:"children"`
}

// FlatRecord is one row of the flattened view.
type FlatRecord struct {
	ID       model.AccountID `json:"id"`
	ParentID model.AccountID `json:"parentId,omitempty"`
	Name     string          `json:"name"`
	Value    decimal.Decimal `json:"value"`
	Level    int             `json:"level"`
	IsLeaf   bool            `json:"isLeaf"`
}

// Account returns the record as an input account, dropping view-only fields.
func (r FlatRecord) Account() model.Account {
	return model.Account{ID: r.ID, Name: r.Name, ParentID: r.ParentID, Value: r.Value}
}

// BuildTree returns the nested view of every root.
func (f *Forest) BuildTree() []ViewNode {
	return f.BuildTreeFrom(f.roots, 0)
}

// BuildTreeFrom copies the hierarchy below nodes depth-first, assigning level
// to nodes and level+1 to their children. A node with children gets the sum
// of its children's rolled-up values; leaves keep their stored value.
func (f *Forest) BuildTreeFrom(nodes []*Node, level int) []ViewNode {
	tree := make([]ViewNode, 0, len(nodes))
	for _, n := range nodes {
		v := ViewNode{
			ID:       n.ID,
			Name:     n.Name,
			Value:    n.Value,
			Level:    level,
			Children: f.BuildTreeFrom(n.Children, level+1),
		}
		if len(v.Children) > 0 {
			v.Value = sumViews(v.Children)
		}
		tree = append(tree, v)
	}
	return tree
}

// Subtree returns the nested view rooted at id, with id at level 0.
func (f *Forest) Subtree(id model.AccountID) (ViewNode, bool) {
	n, ok := f.nodes[id]
	if !ok {
		return ViewNode{}, false
	}
	return f.BuildTreeFrom([]*Node{n}, 0)[0], true
}

// Flatten returns the nested view as pre-order rows.
func (f *Forest) Flatten() []FlatRecord {
	out := []FlatRecord{}
	var walk func(parent model.AccountID, v ViewNode)
	walk = func(parent model.AccountID, v ViewNode) {
		out = append(out, FlatRecord{
			ID:       v.ID,
			ParentID: parent,
			Name:     v.Name,
			Value:    v.Value,
			Level:    v.Level,
			IsLeaf:   len(v.Children) == 0,
		})
		for _, c := range v.Children {
			walk(v.ID, c)
		}
	}
	for _, root := range f.BuildTree() {
		walk("", root)
	}
	return out
}

func sumViews(views []ViewNode) decimal.Decimal {
	total := decimal.Zero
	for _, v := range views {
		total = total.Add(v.Value)
	}
	return total
}
