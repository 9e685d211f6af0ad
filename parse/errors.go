package parse

import (
	"errors"
	"fmt"
)

// ParseError reports that the grammar could not account for part of an
// address: either a required component failed to match its token, or a
// checked parse finished without a value for a mandatory field. Reason names
// the component, Orig carries the input for diagnostics.
type ParseError struct {
	Orig   string
	Reason string
}

func (e *ParseError) Error() string {
	return "@ " + e.Reason + ": " + e.Orig
}

// EndOfAddressError reports that the parser unexpectedly reached the end of
// the address. This usually means st_name or city consumed the entire
// string: the input is probably missing both a st_suffix and a st_NESW, or a
// us_state.
type EndOfAddressError struct {
	Orig string
	Err  error
}

func (e *EndOfAddressError) Error() string {
	return fmt.Sprintf("%q: end of input. Maybe a parsing stage consumed all input? Street name? City?", e.Orig)
}

func (e *EndOfAddressError) Unwrap() error {
	return e.Err
}

// ParserConfigError reports malformed construction-time configuration, such
// as a known-city list that compiles into an invalid pattern. It is never
// swallowed by batch repair.
type ParserConfigError struct {
	Msg string
}

func (e *ParserConfigError) Error() string {
	return e.Msg
}

// IsParseError reports whether err is an expected grammar mismatch, the one
// error class pipeline operators are allowed to swallow.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// isRecoverable reports whether a failed parse may be retried with a better
// informed grammar. Config errors are not recoverable.
func isRecoverable(err error) bool {
	var eoa *EndOfAddressError
	return IsParseError(err) || errors.As(err, &eoa)
}
