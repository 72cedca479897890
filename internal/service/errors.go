package service

import (
	"errors"
	"fmt"
	"net/http"
)

// requestError carries the HTTP status the API layer should answer with.
type requestError struct {
	code int
	msg  string
}

func (e *requestError) Error() string   { return e.msg }
func (e *requestError) StatusCode() int { return e.code }

// ErrNoSelection is returned when a translator download is requested before
// a source language has been selected.
var ErrNoSelection error = &requestError{code: http.StatusUnprocessableEntity, msg: "no source language selected"}

// ErrNotProbed is returned by operations that need probing results.
var ErrNotProbed error = &requestError{code: http.StatusServiceUnavailable, msg: "capability probing has not finished"}

func unknownFeature(name string) error {
	return &requestError{code: http.StatusNotFound, msg: fmt.Sprintf("unknown feature %q", name)}
}

// IsUnknownFeature reports whether err names a feature lingod does not have.
func IsUnknownFeature(err error) bool {
	var re *requestError
	return errors.As(err, &re) && re.code == http.StatusNotFound
}
