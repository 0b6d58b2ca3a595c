package forest

import "errors"

var (
	// ErrDuplicateID is returned by AddAccount when the id is already stored.
	ErrDuplicateID = errors.New("duplicate account id")

	// ErrUnresolvedParent marks an account whose parent did not exist when it
	// was added. AddAccount tolerates it; Validate reports it.
	ErrUnresolvedParent = errors.New("unresolved parent")

	// ErrBrokenAncestorChain marks an ancestor walk that hit an unknown id.
	// Path truncates instead; StrictPath returns it.
	ErrBrokenAncestorChain = errors.New("broken ancestor chain")
)
