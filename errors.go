// Copyright (C) 2024 The jtext Authors. All Rights Reserved.

package jtext

import (
	"errors"
	"fmt"
)

// ErrUnexpectedEOF is reported when the input ends in the middle of a token
// or value. It is distinct from a legitimate end of document, which is
// reported as the EndDocument kind and never as an error. Errors arising
// from a truncated input wrap this sentinel.
var ErrUnexpectedEOF = errors.New("unexpected end of input")

// SyntaxError is the concrete type of errors reported for malformed input.
// It records the location and document path at which scanning failed.
type SyntaxError struct {
	Location LineCol
	Offset   int    // byte offset from the start of the input
	Path     string // document path, e.g. "$.a[2]"
	Message  string

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s (path %s)", s.Location, s.Message, s.Path)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }

// TypeError is reported when a consuming method is called while the next
// element of the input has a different kind. It reflects an error by the
// caller, not a defect in the input.
type TypeError struct {
	Want Kind
	Got  Kind
	Path string
}

// Error satisfies the error interface.
func (t *TypeError) Error() string {
	return fmt.Sprintf("expected %v but was %v (path %s)", t.Want, t.Got, t.Path)
}

// SequenceError is reported when the methods of a Writer are called out of
// order, for example writing two names in a row or closing an array while an
// object is open. It reflects an error by the caller and the Writer is left
// in an unusable state.
type SequenceError struct {
	Op      string
	Message string
}

// Error satisfies the error interface.
func (s *SequenceError) Error() string { return fmt.Sprintf("%s: %s", s.Op, s.Message) }

// NumericError is reported when a lexically valid number cannot be
// represented in the numeric type the caller requested, or when a Writer in
// Strict mode is asked to emit a literal that strict JSON forbids.
type NumericError struct {
	Text string // the lexical form of the number
	Kind string // the requested interpretation, e.g. "int64"

	err error
}

// Error satisfies the error interface.
func (n *NumericError) Error() string {
	return fmt.Sprintf("number %q is not a valid %s", n.Text, n.Kind)
}

// Unwrap supports error wrapping.
func (n *NumericError) Unwrap() error { return n.err }
