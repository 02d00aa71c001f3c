// Package errs define custom error types and utilities.
//
// Its purpose is to create specific error structures..
// (e.g. FieldErrors for forms or HTTPError for API responses)..
// to ensure the client receive meaningful, actionable, and consistent..
// error messages.
//
// Errors produced by the query core (query.MalformedQueryError) are not
// HTTPErrors; FromMalformedQuery converts them into the 422 shape clients see.
package errs

import (
	"errors"

	"github.com/deppfellow/go-quizbank/internal/query"
)

// AsHTTPError unwraps err into an *HTTPError when one is in the chain.
func AsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}

// FromMalformedQuery converts a query.MalformedQueryError into a 422 response
// carrying the offending field. It returns nil when err is not malformed.
func FromMalformedQuery(err error) *HTTPError {
	if !errors.Is(err, query.ErrMalformedQuery) {
		return nil
	}

	var mq *query.MalformedQueryError
	if errors.As(err, &mq) {
		return NewUnprocessableEntityError(
			"Unprocessable: "+mq.Reason,
			true,
			[]FieldError{{Field: mq.Field, Error: mq.Reason}},
		)
	}
	return NewUnprocessableEntityError("Unprocessable: malformed query", true, nil)
}
