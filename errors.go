package jsontree

import "errors"

// Error kinds returned by jsontree operations, following §7 of the
// design: allocation failure maps to Go's own out-of-memory panics
// (not modeled here), and the remaining five kinds each get a
// sentinel that errors.Is/errors.As can target.
var (
	// ErrSyntax reports that input bytes are not valid JSON.
	ErrSyntax = errors.New("jsontree: syntax error")
	// ErrEncoding reports invalid UTF-8, an invalid \u escape, or an
	// unpaired surrogate. Always wraps ErrSyntax too.
	ErrEncoding = errors.New("jsontree: encoding error")
	// ErrDepth reports that nesting exceeded the 2048 limit. Always
	// wraps ErrSyntax too.
	ErrDepth = errors.New("jsontree: nesting too deep")
	// ErrContract reports a misuse of the mutating API: inserting a
	// value that already has a parent, a duplicate key under add
	// semantics, or an out-of-range index. A type mismatch on a typed
	// accessor is reported with ErrType instead.
	ErrContract = errors.New("jsontree: contract violation")
	// ErrNumeric reports an attempt to construct a number value from
	// NaN or an infinity.
	ErrNumeric = errors.New("jsontree: number must be finite")
	// ErrType reports a typed accessor called on a value of the
	// wrong type.
	ErrType = errors.New("jsontree: type error")
)

// Status mirrors the C API's JSONSuccess / JSONFailure result codes
// for mutating operations that have no other natural return value.
type Status int

const (
	StatusSuccess Status = 0
	StatusFailure Status = -1
)
