// Package forest holds a chart of accounts as a parent-referencing forest and
// derives the nested, flattened, path and treemap views the dashboard renders.
//
// A Forest is built once per data snapshot and is not safe for concurrent
// mutation. All views are computed on demand and never write back to the
// stored nodes, so a group's stored Value is never authoritative; views report
// the sum of its children instead.
package forest

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerview/internal/model"
)

// Node is one account in the forest. Callers must not modify Children.
type Node struct {
	ID       model.AccountID
	Name     string
	ParentID model.AccountID
	Value    decimal.Decimal
	Children []*Node
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Forest is the set of account trees built from one snapshot.
type Forest struct {
	nodes   map[model.AccountID]*Node
	roots   []*Node
	orphans []*Node
}

// New returns an empty Forest.
func New() *Forest {
	return &Forest{nodes: make(map[model.AccountID]*Node)}
}

// FromAccounts ingests accounts in order. It stops at the first duplicate id.
func FromAccounts(accounts []model.Account) (*Forest, error) {
	f := New()
	for i, a := range accounts {
		if _, err := f.AddAccount(a); err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
	}
	return f, nil
}

// AddAccount stores a node for acct and links it under its parent. A parent
// that is not stored yet leaves the node as an orphan, reachable only through
// FindNode.
func (f *Forest) AddAccount(acct model.Account) (*Node, error) {
	if _, ok := f.nodes[acct.ID]; ok {
		return nil, fmt.Errorf("adding account %q: %w", acct.ID, ErrDuplicateID)
	}

	// Resolve the parent before storing so a self-referencing record stays
	// an orphan instead of forming a cycle.
	parent, ok := f.nodes[acct.ParentID]

	node := &Node{
		ID:       acct.ID,
		Name:     acct.Name,
		ParentID: acct.ParentID,
		Value:    acct.Value,
	}
	f.nodes[acct.ID] = node

	switch {
	case acct.ParentID.IsZero():
		f.roots = append(f.roots, node)
	case ok:
		parent.Children = append(parent.Children, node)
	default:
		f.orphans = append(f.orphans, node)
	}
	return node, nil
}

// FindNode returns the node stored under id.
func (f *Forest) FindNode(id model.AccountID) (*Node, bool) {
	n, ok := f.nodes[id]
	return n, ok
}

// Roots returns the top-level nodes in insertion order.
func (f *Forest) Roots() []*Node {
	return f.roots
}

// Orphans returns nodes whose parent was missing when they were added.
func (f *Forest) Orphans() []*Node {
	return f.orphans
}

// Len returns the number of stored nodes, orphans included.
func (f *Forest) Len() int {
	return len(f.nodes)
}

// Validate reports every orphan as an ErrUnresolvedParent.
func (f *Forest) Validate() error {
	var errs []error
	for _, n := range f.orphans {
		errs = append(errs, fmt.Errorf("account %q: parent %q: %w", n.ID, n.ParentID, ErrUnresolvedParent))
	}
	return errors.Join(errs...)
}
