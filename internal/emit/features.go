package emit

import (
	"github.com/jtdgen/jtdgen/internal/ast"
	"github.com/jtdgen/jtdgen/internal/oracle"
)

// Features summarizes which type keywords a compiled schema actually uses,
// so a backend that shares a helper function across several keywords (e.g.
// one bounded-integer range checker, one timestamp parser) can skip emitting
// it entirely when the schema never needs it — the minimality property
// applies to helper functions exactly as it does to inline checks.
type Features struct {
	Timestamp  bool
	BoundedInt bool
	// Array is set when the schema uses Elements anywhere, for backends
	// (Lua) whose array-vs-object distinction needs a helper function
	// rather than a native array type.
	Array bool
	// Object is set when the schema uses Properties, Values, or Discrim
	// anywhere, for the same reason.
	Object bool
}

// Scan walks every definition and the root once and reports which keywords
// are reachable.
func Scan(cs *ast.CompiledSchema) Features {
	var f Features
	var walk func(n ast.Node)
	walk = func(n ast.Node) {
		switch v := n.(type) {
		case ast.Type:
			if v.Keyword == ast.Timestamp {
				f.Timestamp = true
				return
			}
			if _, ok := oracle.IntRanges[v.Keyword]; ok {
				f.BoundedInt = true
			}
		case ast.Nullable:
			walk(v.Inner)
		case ast.Elements:
			f.Array = true
			walk(v.Inner)
		case ast.Values:
			f.Object = true
			walk(v.Inner)
		case *ast.Properties:
			f.Object = true
			for _, name := range v.RequiredNames {
				walk(v.Required[name])
			}
			for _, name := range v.OptionalNames {
				walk(v.Optional[name])
			}
		case *ast.Discrim:
			f.Object = true
			for _, name := range v.MappingNames {
				walk(v.Mapping[name])
			}
		}
	}
	for _, name := range cs.DefinitionNames {
		walk(cs.Definitions[name])
	}
	walk(cs.Root)
	return f
}
