/*
Package core carries the failure taxonomy of the font discovery library.

Failures come in a small number of kinds: font data that cannot be
parsed, resources that cannot be read, directories that cannot be
listed, and broken index invariants. Lookup misses are deliberately not
part of the taxonomy — a query that matches nothing reports an absent
result, with trace records detailing which filter rejected which
candidate.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package core

import (
	"errors"
	"fmt"
)

// Kind classifies a failure of the font discovery pipeline.
type Kind int8

const (
	KindUnclassified Kind = iota // nil or foreign errors
	KindParse                    // font data malformed, truncated or unsupported
	KindIO                       // a font resource cannot be read
	KindEnumeration              // a font directory cannot be listed
	KindInvariant                // an index invariant is broken; implementation bug
)

func (k Kind) String() string {
	switch k {
	case KindParse:
		return "parse"
	case KindIO:
		return "i/o"
	case KindEnumeration:
		return "enumeration"
	case KindInvariant:
		return "invariant"
	}
	return "unclassified"
}

// Error is the failure type of the library: a kind, a message, and the
// underlying cause, if any. Parse, I/O and enumeration failures are
// never fatal; they are absorbed into warning traces and the offending
// resource is skipped. Invariant failures abort: callers panic with
// them.
type Error struct {
	Kind  Kind
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s failure: %s: %v", e.Kind, e.Msg, e.Cause)
	}
	return fmt.Sprintf("%s failure: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func failure(kind Kind, cause error, format string, v ...interface{}) *Error {
	return &Error{
		Kind:  kind,
		Msg:   fmt.Sprintf(format, v...),
		Cause: cause,
	}
}

// ParseError reports malformed or unsupported font data. cause may be
// nil.
func ParseError(cause error, format string, v ...interface{}) *Error {
	return failure(KindParse, cause, format, v...)
}

// IOError reports a failed read of a font resource.
func IOError(cause error, format string, v ...interface{}) *Error {
	return failure(KindIO, cause, format, v...)
}

// EnumerationError reports a font directory which cannot be listed.
func EnumerationError(cause error, format string, v ...interface{}) *Error {
	return failure(KindEnumeration, cause, format, v...)
}

// Violation reports a broken index invariant, i.e. an implementation
// bug. Violations are the only failures which halt execution.
func Violation(format string, v ...interface{}) *Error {
	return failure(KindInvariant, nil, format, v...)
}

// KindOf extracts the failure kind from err's error chain. Nil and
// foreign errors report KindUnclassified.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnclassified
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnclassified
}
