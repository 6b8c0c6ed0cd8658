// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError reports missing or malformed caller input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// UpstreamError reports a transport failure or a non-success status from
// E-utilities. StatusCode is zero when no response was received.
type UpstreamError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("%s failed: upstream returned HTTP %d", e.Op, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
	default:
		return e.Op + " failed"
	}
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// ParseError reports an upstream document that could not be decoded.
type ParseError struct {
	Doc string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Doc, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// StatusCode maps err to the HTTP status relayed to the caller: 400 for
// validation, the upstream status for upstream failures (500 when there was
// none), and 500 otherwise.
func StatusCode(err error) int {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest
	}
	var ue *UpstreamError
	if errors.As(err, &ue) && ue.StatusCode != 0 {
		return ue.StatusCode
	}
	return http.StatusInternalServerError
}
