package oracle

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/jtdgen/jtdgen/internal/ast"
	"github.com/jtdgen/jtdgen/internal/jsonsrc"
)

var timestampGate = regexp.MustCompile(TimestampPattern)

// Satisfies decides, in Go, whether a decoded JSON value (as produced by
// jsonsrc.DecodeAny: *jsonsrc.Object, []any, string, bool, jsonsrc.Number, or
// nil) satisfies kw. It mirrors exactly what every generated backend's type
// check compiles to; internal/refimpl uses it so the test suite can assert
// RFC 8927 semantics once, in Go, independent of any target's textual
// emission.
func Satisfies(kw ast.TypeKeyword, value any) bool {
	switch kw {
	case ast.Boolean:
		_, ok := value.(bool)
		return ok
	case ast.String:
		_, ok := value.(string)
		return ok
	case ast.Timestamp:
		s, ok := value.(string)
		if !ok {
			return false
		}
		return IsTimestamp(s)
	case ast.Float32, ast.Float64:
		f, ok := numberValue(value)
		return ok && !math.IsNaN(f) && !math.IsInf(f, 0)
	default:
		f, ok := numberValue(value)
		if !ok {
			return false
		}
		return isInteger(f, kw)
	}
}

// IsTimestamp reports whether s parses as an RFC 3339 date-time, per the
// syntactic gate plus leap-second normalization described in TimestampPattern's
// doc comment.
func IsTimestamp(s string) bool {
	if !timestampGate.MatchString(s) {
		return false
	}
	normalized := normalizeLeapSecond(s)
	_, err := time.Parse(time.RFC3339Nano, normalized)
	return err == nil
}

// normalizeLeapSecond rewrites a ":60" seconds field to ":59" so the
// standard library's RFC3339 parser (which rejects leap seconds outright)
// can accept the rest of the timestamp. Only the seconds field, which the
// gate fixes at byte 16 ("YYYY-MM-DDTHH:MM" precedes it), is touched.
func normalizeLeapSecond(s string) string {
	const marker = ":60"
	const secondsAt = 16
	if len(s) < secondsAt+len(marker) || !strings.HasPrefix(s[secondsAt:], marker) {
		return s
	}
	return s[:secondsAt] + ":59" + s[secondsAt+len(marker):]
}

func numberValue(value any) (float64, bool) {
	switch v := value.(type) {
	case jsonsrc.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

func isInteger(f float64, kw ast.TypeKeyword) bool {
	r, ok := IntRanges[kw]
	if !ok {
		return false
	}
	if math.Floor(f) != f {
		return false
	}
	return f >= r.Min && f <= r.Max
}
