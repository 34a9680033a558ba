package lua

import (
	"fmt"

	"github.com/jtdgen/jtdgen/internal/ast"
	"github.com/jtdgen/jtdgen/internal/oracle"
)

// typeExpr returns the Lua boolean expression deciding whether v (a Lua
// expression naming the current value) satisfies kw.
func typeExpr(kw ast.TypeKeyword, v string) string {
	switch kw {
	case ast.Boolean:
		return fmt.Sprintf("type(%s) == \"boolean\"", v)
	case ast.String:
		return fmt.Sprintf("type(%s) == \"string\"", v)
	case ast.Timestamp:
		return fmt.Sprintf("type(%s) == \"string\" and jtd_is_timestamp(%s)", v, v)
	case ast.Float32, ast.Float64:
		return fmt.Sprintf("type(%s) == \"number\"", v)
	default:
		r, ok := oracle.IntRanges[kw]
		if !ok {
			return "false"
		}
		return fmt.Sprintf(
			"type(%s) == \"number\" and %s == math.floor(%s) and %s >= %s and %s <= %s",
			v, v, v, v, formatBound(r.Min), v, formatBound(r.Max),
		)
	}
}

func formatBound(f float64) string {
	return fmt.Sprintf("%g", f)
}
