package rust

import (
	"fmt"

	"github.com/jtdgen/jtdgen/internal/ast"
	"github.com/jtdgen/jtdgen/internal/oracle"
)

// typeExpr returns the Rust boolean expression deciding whether v (a &Value
// expression) satisfies kw. v must already be a `&serde_json::Value`.
func typeExpr(kw ast.TypeKeyword, v string) string {
	switch kw {
	case ast.Boolean:
		return v + ".is_boolean()"
	case ast.String:
		return v + ".is_string()"
	case ast.Timestamp:
		return v + ".as_str().map(jtd_is_timestamp).unwrap_or(false)"
	case ast.Float32, ast.Float64:
		return v + ".is_number()"
	default:
		r, ok := oracle.IntRanges[kw]
		if !ok {
			return "false"
		}
		return fmt.Sprintf(
			"%s.as_f64().map(|n| n.floor() == n && n >= %s && n <= %s).unwrap_or(false)",
			v, formatBound(r.Min), formatBound(r.Max),
		)
	}
}

func formatBound(f float64) string {
	return fmt.Sprintf("%g_f64", f)
}
