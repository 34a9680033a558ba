package js

import (
	"fmt"

	"github.com/jtdgen/jtdgen/internal/ast"
	"github.com/jtdgen/jtdgen/internal/oracle"
)

// typeExpr returns the JavaScript boolean expression deciding whether v
// (a JS expression yielding the current value) satisfies kw.
func typeExpr(kw ast.TypeKeyword, v string) string {
	switch kw {
	case ast.Boolean:
		return fmt.Sprintf("typeof %s === \"boolean\"", v)
	case ast.String:
		return fmt.Sprintf("typeof %s === \"string\"", v)
	case ast.Timestamp:
		return fmt.Sprintf(
			"typeof %s === \"string\" && /%s/.test(%s) && !isNaN(Date.parse(%s.slice(0, 16) + %s.slice(16).replace(/^:60/, \":59\")))",
			v, oracle.TimestampPattern, v, v, v,
		)
	case ast.Float32, ast.Float64:
		return fmt.Sprintf("typeof %s === \"number\" && Number.isFinite(%s)", v, v)
	default:
		r, ok := oracle.IntRanges[kw]
		if !ok {
			return "false"
		}
		return fmt.Sprintf(
			"typeof %s === \"number\" && Number.isFinite(%s) && Math.floor(%s) === %s && %s >= %s && %s <= %s",
			v, v, v, v, v, formatBound(r.Min), v, formatBound(r.Max),
		)
	}
}

func formatBound(f float64) string {
	return fmt.Sprintf("%g", f)
}
