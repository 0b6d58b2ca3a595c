package forest

import (
	"fmt"

	"github.com/cleared-dev/ledgerview/internal/model"
)

// Descendants returns the subtree rooted at id in pre-order, the node itself
// first. Unknown ids yield nil.
func (f *Forest) Descendants(id model.AccountID) []*Node {
	n, ok := f.nodes[id]
	if !ok {
		return nil
	}
	var out []*Node
	var collect func(*Node)
	collect = func(n *Node) {
		out = append(out, n)
		for _, c := range n.Children {
			collect(c)
		}
	}
	collect(n)
	return out
}

// Path returns the nodes from the root down to id. If an ancestor id does not
// resolve, the walk stops and the path starts at the last resolved node.
func (f *Forest) Path(id model.AccountID) []*Node {
	path, _ := f.walkUp(id)
	return path
}

// StrictPath is Path but fails with ErrBrokenAncestorChain when the walk
// stops before reaching a root.
func (f *Forest) StrictPath(id model.AccountID) ([]*Node, error) {
	if _, ok := f.nodes[id]; !ok {
		return nil, fmt.Errorf("account %q: not found", id)
	}
	path, missing := f.walkUp(id)
	if !missing.IsZero() {
		return path, fmt.Errorf("account %q: ancestor %q: %w", id, missing, ErrBrokenAncestorChain)
	}
	return path, nil
}

// walkUp prepends ancestors of id and returns the first id it could not
// resolve, if any. Parent links are followed by id, so an orphan whose parent
// arrived later still resolves; a revisited id ends the walk like a missing
// one.
func (f *Forest) walkUp(id model.AccountID) ([]*Node, model.AccountID) {
	var path []*Node
	seen := make(map[model.AccountID]bool)
	current, ok := f.nodes[id]
	for ok {
		seen[current.ID] = true
		path = append([]*Node{current}, path...)
		if current.ParentID.IsZero() {
			return path, ""
		}
		next := current.ParentID
		if seen[next] {
			return path, next
		}
		if current, ok = f.nodes[next]; !ok {
			return path, next
		}
	}
	return path, ""
}
