package emit

import (
	"strconv"

	"github.com/jtdgen/jtdgen/internal/ast"
)

// Func is one generated function: either a named definition or an anonymous
// hoist of a Properties/Discrim node that appears inside a loop body or a
// discriminator variant, where inlining would duplicate code per iteration
// or per mapping entry.
type Func struct {
	Name string
	Node ast.Node
	// DefName is non-empty when this function backs a source-level
	// definition (as opposed to an anonymous hoist discovered while
	// planning).
	DefName string
	// ExemptTag is the discriminator tag field name when Node is a
	// mapping variant's Properties, excluded from its own unknown-key
	// rejection loop since the discriminator step already validated it.
	// Empty for every other function.
	ExemptTag string
}

// Plan is the result of walking a CompiledSchema once to decide which
// Properties/Discrim nodes need their own function. Root is inlined
// directly into the entry function and is never itself a Plan.Funcs entry
// (even when Root is a Properties/Discrim), matching the node emitter's
// contract that the entry function's body is the root's own emission.
//
// Only *ast.Properties and *ast.Discrim nodes are ever map keys here — both
// are always pointers, so they're safe to compare; ast.Enum's slice field
// makes the Node interface as a whole non-comparable in general, so nothing
// else is ever looked up this way. A Ref's target function name is computed
// directly from its name (DefFuncName) rather than looked up, since a
// definition's body is addressed by name, never by node identity.
type Plan struct {
	Funcs  []Func
	nameOf map[ast.Node]string
}

// FuncFor returns the hoisted function name for a *ast.Properties or
// *ast.Discrim node, if Build decided to hoist it.
func (p *Plan) FuncFor(n ast.Node) (string, bool) {
	switch n.(type) {
	case *ast.Properties, *ast.Discrim:
		name, ok := p.nameOf[n]
		return name, ok
	}
	return "", false
}

// Build walks every definition body and the root, unconditionally hoisting
// each definition into validate_<name>, and hoisting any Properties/Discrim
// node that is not a direct property-field value — i.e. one reached through
// Elements.Inner, Values.Inner, or a Discrim mapping entry — into its own
// validate_anon<N> function. A Properties/Discrim assigned directly as a
// property's schema is always inlined into its parent's body instead: it
// runs exactly once per parent check, so a function call buys nothing.
func Build(cs *ast.CompiledSchema) *Plan {
	p := &Plan{nameOf: make(map[ast.Node]string)}
	anon := 0

	var walkContainerChild func(n ast.Node)
	var walkPropertyValue func(n ast.Node)

	hoistIfContainer := func(n ast.Node, exemptTag string) {
		switch n.(type) {
		case *ast.Properties, *ast.Discrim:
			name := "validate_anon" + strconv.Itoa(anon)
			anon++
			p.nameOf[n] = name
			p.Funcs = append(p.Funcs, Func{Name: name, Node: n, ExemptTag: exemptTag})
		}
	}

	walkContainerChild = func(n ast.Node) {
		inner := n
		if nb, ok := n.(ast.Nullable); ok {
			inner = nb.Inner
		}
		hoistIfContainer(inner, "")
		walkPropertyValue(inner)
	}

	walkPropertyValue = func(n ast.Node) {
		inner := n
		if nb, ok := n.(ast.Nullable); ok {
			inner = nb.Inner
		}
		switch v := inner.(type) {
		case *ast.Properties:
			for _, name := range v.RequiredNames {
				walkPropertyValue(v.Required[name])
			}
			for _, name := range v.OptionalNames {
				walkPropertyValue(v.Optional[name])
			}
		case ast.Elements:
			walkContainerChild(v.Inner)
		case ast.Values:
			walkContainerChild(v.Inner)
		case *ast.Discrim:
			for _, name := range v.MappingNames {
				variant := v.Mapping[name]
				hoistIfContainer(variant, v.Tag)
				walkPropertyValue(variant)
			}
		}
	}

	for _, name := range cs.DefinitionNames {
		node := cs.Definitions[name]
		p.Funcs = append(p.Funcs, Func{Name: DefFuncName(name), Node: node, DefName: name})
		walkPropertyValue(node)
	}

	walkPropertyValue(cs.Root)

	return p
}
