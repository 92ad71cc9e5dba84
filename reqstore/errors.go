package reqstore

import "errors"

var (
	// ErrNotFound indicates no stored request under the given id.
	ErrNotFound = errors.New("reqstore: request not found")

	// ErrNilRequest indicates a nil request was offered for storage.
	ErrNilRequest = errors.New("reqstore: request is nil")
)
