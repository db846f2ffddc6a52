// Package copytree implements the public API surface (component K): scan,
// copy, copyStream, format, and formatStream, each orchestrating the walker
// (component D), profile resolver (component C), transform pipeline
// (component G), and output formatters (component H) behind a single,
// stable entry point (spec.md §5, SPEC_FULL.md §5).
package copytree

import "fmt"

// Code is a process exit code (spec.md §7).
type Code int

const (
	ExitSuccess Code = 0
	ExitError   Code = 1
	ExitPartial Code = 2
)

// ErrorKind classifies an Error, extending a single-code error shape
// with the taxonomy spec.md §7 requires (ValidationError,
// ProfileNotFound, PatternError, ScanAborted, ScanIoError, TransformerError,
// OutputError).
type ErrorKind string

const (
	KindValidation      ErrorKind = "validation_error"
	KindProfileNotFound ErrorKind = "profile_not_found"
	KindPattern         ErrorKind = "pattern_error"
	KindScanAborted     ErrorKind = "scan_aborted"
	KindScanIO          ErrorKind = "scan_io_error"
	KindTransformer     ErrorKind = "transformer_error"
	KindOutput          ErrorKind = "output_error"
)

// exitCodes maps each Kind to the process exit code a CLI should surface,
// keyed by taxonomy rather than assigned ad hoc at each call site.
var exitCodes = map[ErrorKind]Code{
	KindValidation:      ExitError,
	KindProfileNotFound: ExitError,
	KindPattern:         ExitError,
	KindScanAborted:     ExitError,
	KindScanIO:          ExitPartial,
	KindTransformer:     ExitPartial,
	KindOutput:          ExitError,
}

// Error is copytree's structured error type: Code, Message, Err, Unwrap,
// extended with Kind (spec.md §7, SPEC_FULL.md §7).
type Error struct {
	Kind    ErrorKind
	Code    int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, msg string, err error) *Error {
	return &Error{Kind: kind, Code: int(exitCodes[kind]), Message: msg, Err: err}
}

func ValidationError(msg string, err error) *Error  { return newError(KindValidation, msg, err) }
func ProfileNotFound(msg string, err error) *Error  { return newError(KindProfileNotFound, msg, err) }
func PatternError(msg string, err error) *Error     { return newError(KindPattern, msg, err) }
func ScanAbortedError(msg string, err error) *Error { return newError(KindScanAborted, msg, err) }
func ScanIoError(msg string, err error) *Error      { return newError(KindScanIO, msg, err) }
func TransformerError(msg string, err error) *Error { return newError(KindTransformer, msg, err) }
func OutputError(msg string, err error) *Error      { return newError(KindOutput, msg, err) }
