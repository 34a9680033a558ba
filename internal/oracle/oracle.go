// Package oracle holds the type-keyword semantics shared by every backend:
// the RFC 3339 timestamp gate and the integer range table. Each backend's
// emitter turns these into its own target-language boolean expression; the
// test-only reference interpreter in internal/refimpl evaluates the same
// semantics directly in Go via Satisfies.
package oracle

import "github.com/jtdgen/jtdgen/internal/ast"

// TimestampPattern is the syntactic gate for a candidate timestamp string.
// The JavaScript backend and IsTimestamp embed it as a literal regular
// expression; the Python backend uses an equivalent regex with capture
// groups, and the Rust and Lua backends check the same shape by hand.
// A ":60" leap second passes the gate; callers normalize the seconds field
// to ":59" before handing the string to a date-time parser, per
// RFC 8927's treatment of timestamp as "parses as a valid RFC 3339
// date-time", not "looks like one".
const TimestampPattern = `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:(\d{2}|60)(\.\d+)?(Z|[+-]\d{2}:\d{2})$`

// IntRange is the closed value range [Min, Max] for an integer type
// keyword. float64 holds every bound here exactly: the widest, 2^32-1, is
// well inside float64's 53-bit mantissa.
type IntRange struct {
	Min float64
	Max float64
}

// IntRanges maps each integer type keyword to its closed range. float32 and
// float64 are intentionally absent: RFC 8927 treats them as "any finite
// number", so they have no range to check.
var IntRanges = map[ast.TypeKeyword]IntRange{
	ast.Int8:   {Min: -128, Max: 127},
	ast.Uint8:  {Min: 0, Max: 255},
	ast.Int16:  {Min: -32768, Max: 32767},
	ast.Uint16: {Min: 0, Max: 65535},
	ast.Int32:  {Min: -2147483648, Max: 2147483647},
	ast.Uint32: {Min: 0, Max: 4294967295},
}

// IsIntegerKeyword reports whether kw is one of the six bounded integer
// type keywords (as opposed to float32/float64, which have no bound, or the
// non-numeric keywords).
func IsIntegerKeyword(kw ast.TypeKeyword) bool {
	_, ok := IntRanges[kw]
	return ok
}
