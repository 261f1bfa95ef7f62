package scene

import (
	"errors"
	"fmt"
)

// ErrNotFound reports an operation referencing an item no longer present in
// the scene. Deletion can race with queued UI events, so callers should treat
// this as a recoverable no-op rather than a failure.
var ErrNotFound = errors.New("item not found")

// ErrInvalidOperation reports a caller contract violation: a transform with
// no active gesture, a double begin, or a resize on a multi-item selection.
var ErrInvalidOperation = errors.New("invalid operation")

// ValidationError reports a malformed CanvasState: an unrecognized version or
// an out-of-range field. The scene is never partially mutated before a
// ValidationError is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid canvas state: %s", e.Reason)
	}
	return fmt.Sprintf("invalid canvas state: %s: %s", e.Field, e.Reason)
}

func validationErrorf(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
