package python

import (
	"fmt"

	"github.com/jtdgen/jtdgen/internal/ast"
	"github.com/jtdgen/jtdgen/internal/oracle"
)

// typeExpr returns the Python boolean expression deciding whether v (a
// Python expression naming the current value) satisfies kw. Python's bool
// is a subclass of int, so every numeric check explicitly excludes it.
func typeExpr(kw ast.TypeKeyword, v string) string {
	switch kw {
	case ast.Boolean:
		return fmt.Sprintf("isinstance(%s, bool)", v)
	case ast.String:
		return fmt.Sprintf("isinstance(%s, str)", v)
	case ast.Timestamp:
		return fmt.Sprintf("isinstance(%s, str) and _jtd_is_timestamp(%s)", v, v)
	case ast.Float32, ast.Float64:
		return fmt.Sprintf("isinstance(%s, (int, float)) and not isinstance(%s, bool)", v, v)
	default:
		r, ok := oracle.IntRanges[kw]
		if !ok {
			return "False"
		}
		return fmt.Sprintf(
			"isinstance(%s, (int, float)) and not isinstance(%s, bool) and float(%s) == math.floor(%s) and %s >= %s and %s <= %s",
			v, v, v, v, v, formatBound(r.Min), v, formatBound(r.Max),
		)
	}
}

func formatBound(f float64) string {
	return fmt.Sprintf("%g", f)
}
