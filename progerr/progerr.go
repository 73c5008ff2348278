// Package progerr provides the numerically-coded error values shared by all
// engine subsystems.
//
// Every failure the engine can surface is a small, closed set of sentinel
// errors carrying a stable numeric code. Each subsystem owns a disjoint code
// range so off-chain callers can decode failures without parsing strings:
//
//	matcher     100–199
//	shard       300–399
//	containers  500–599
//	utxo        600–699
//	tx builder  800–899
//
// Sentinels are compared with errors.Is and may be wrapped with
// fmt.Errorf("%w: ...") for call-site context.
package progerr

import "errors"

// Code is the stable numeric identifier of an engine error.
type Code uint32

// Error is a coded sentinel error. Instances are package-level variables in
// the owning subsystem; the pointer identity is what errors.Is matches on.
type Error struct {
	code Code
	msg  string
}

// New creates a coded sentinel error. Call it once per code, at package
// level, in the subsystem that owns the code range.
func New(code Code, msg string) *Error {
	return &Error{code: code, msg: msg}
}

// Error implements the error interface.
func (e *Error) Error() string { return e.msg }

// Code returns the numeric code of the error.
func (e *Error) Code() Code { return e.code }

// CodeOf extracts the numeric code from err or any error in its chain.
// The second return value reports whether a coded error was found.
func CodeOf(err error) (Code, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.code, true
	}
	return 0, false
}
