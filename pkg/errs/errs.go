// Package errs defines the error taxonomy shared by the readers, the scene
// flattener and the cost model.
//
// FormatError and GraphError abort a whole file load. ObjectDecodeError is
// recovered by skipping the object and is reported as a warning.
// ValidationError rejects a single computation.
package errs

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedFormat   = errors.New("unsupported file type")
	ErrTruncated           = errors.New("truncated input")
	ErrCyclicGraph         = errors.New("cyclic object graph")
	ErrUnresolvedReference = errors.New("unresolved object reference")
)

// FormatError reports an unreadable file: unsupported extension, corrupt
// archive or XML, or a truncated binary stream
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("format error: %v", e.Err)
	}
	return fmt.Sprintf("format error in %s: %v", e.Path, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// ObjectDecodeError reports a single object that could not be decoded
type ObjectDecodeError struct {
	Part     string
	ObjectID string
	Err      error
}

func (e *ObjectDecodeError) Error() string {
	return fmt.Sprintf("object %s in %s skipped: %v", e.ObjectID, e.Part, e.Err)
}

func (e *ObjectDecodeError) Unwrap() error { return e.Err }

// GraphError reports a cyclic or unresolved component reference
type GraphError struct {
	// Path is the chain of object ids leading to the failure
	Path []string
	Err  error
}

func (e *GraphError) Error() string {
	if len(e.Path) == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v: %v", e.Err, e.Path)
}

func (e *GraphError) Unwrap() error { return e.Err }

// ValidationError reports an invalid caller-supplied input
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Invalid returns a ValidationError for field
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsWarning reports whether err is a recoverable per-object decode failure
func IsWarning(err error) bool {
	var de *ObjectDecodeError
	return errors.As(err, &de)
}
