package types

import "errors"

var (
	// ErrContentNotFound indicates the target content item does not exist.
	ErrContentNotFound = errors.New("content item not found")
	// ErrAccountNotFound indicates the target user account does not exist.
	ErrAccountNotFound = errors.New("user account not found")
	// ErrInvalidState indicates an operation was attempted from a report
	// lifecycle state that does not permit it.
	ErrInvalidState = errors.New("operation not allowed in current report state")
	// ErrStaleRecord indicates an optimistic concurrency conflict: the
	// record changed between read and write.
	ErrStaleRecord = errors.New("record version is stale")
)
