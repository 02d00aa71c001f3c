package query

import (
	"errors"
	"fmt"
)

// ErrMalformedQuery is matched by every MalformedQueryError through errors.Is.
var ErrMalformedQuery = errors.New("malformed query")

// MalformedQueryError reports structurally invalid input, e.g. a Draw without
// any category information. It is never returned for "no matches".
type MalformedQueryError struct {
	Field  string
	Reason string
}

func (e *MalformedQueryError) Error() string {
	return fmt.Sprintf("malformed query: %s: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrMalformedQuery) succeed.
func (e *MalformedQueryError) Is(target error) bool {
	return target == ErrMalformedQuery
}

func malformed(field, reason string) error {
	return &MalformedQueryError{Field: field, Reason: reason}
}
