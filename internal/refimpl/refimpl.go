// Package refimpl is a Go-only reference interpreter over internal/ast. It
// exists purely for the test suite: walking the AST directly against a
// decoded instance lets tests assert RFC 8927 semantics (the worked
// examples and the integer-value semantics table) once, in Go, without
// needing to execute any of the four generated-source targets. Nothing
// outside _test.go files imports this package.
package refimpl

import (
	"strconv"

	"github.com/jtdgen/jtdgen/internal/ast"
	"github.com/jtdgen/jtdgen/internal/jsonsrc"
	"github.com/jtdgen/jtdgen/internal/oracle"
)

// Error is the Go-side equivalent of the two-field error indicator every
// generated validator produces.
type Error struct {
	InstancePath string
	SchemaPath   string
}

// Validate walks cs.Root against instance and returns every error indicator,
// in emission order (tests compare it as a multiset, matching §6.2's
// contract).
func Validate(cs *ast.CompiledSchema, instance any) []Error {
	w := &walker{defs: cs.Definitions}
	var errs []Error
	w.walk(cs.Root, instance, "", "", &errs)
	return errs
}

type walker struct {
	defs map[string]ast.Node
}

func (w *walker) walk(node ast.Node, value any, instancePath, schemaPath string, errs *[]Error) {
	switch n := node.(type) {
	case ast.Empty:
		return
	case ast.Nullable:
		if value == nil {
			return
		}
		w.walk(n.Inner, value, instancePath, schemaPath, errs)
	case ast.Type:
		if !oracle.Satisfies(n.Keyword, value) {
			*errs = append(*errs, Error{instancePath, schemaPath + "/type"})
		}
	case ast.Enum:
		s, ok := value.(string)
		if !ok || !containsString(n.Values, s) {
			*errs = append(*errs, Error{instancePath, schemaPath + "/enum"})
		}
	case ast.Elements:
		arr, ok := value.([]any)
		if !ok {
			*errs = append(*errs, Error{instancePath, schemaPath + "/elements"})
			return
		}
		for i, el := range arr {
			w.walk(n.Inner, el, instancePath+"/"+strconv.Itoa(i), schemaPath+"/elements", errs)
		}
	case *ast.Properties:
		w.walkProperties(n, value, instancePath, schemaPath, nil, errs)
	case ast.Values:
		obj, ok := value.(*jsonsrc.Object)
		if !ok {
			*errs = append(*errs, Error{instancePath, schemaPath + "/values"})
			return
		}
		for _, k := range obj.Keys {
			v, _ := obj.Get(k)
			w.walk(n.Inner, v, instancePath+"/"+k, schemaPath+"/values", errs)
		}
	case *ast.Discrim:
		w.walkDiscrim(n, value, instancePath, schemaPath, errs)
	case ast.Ref:
		def, ok := w.defs[n.Name]
		if !ok {
			return
		}
		w.walk(def, value, instancePath, schemaPath, errs)
	}
}

func (w *walker) walkProperties(p *ast.Properties, value any, instancePath, schemaPath string, exempt map[string]bool, errs *[]Error) {
	obj, ok := value.(*jsonsrc.Object)
	if !ok {
		formGuard := "/optionalProperties"
		if len(p.RequiredNames) > 0 {
			formGuard = "/properties"
		}
		*errs = append(*errs, Error{instancePath, schemaPath + formGuard})
		return
	}

	for _, name := range p.RequiredNames {
		v, present := obj.Get(name)
		if !present {
			*errs = append(*errs, Error{instancePath, schemaPath + "/properties/" + name})
			continue
		}
		w.walk(p.Required[name], v, instancePath+"/"+name, schemaPath+"/properties/"+name, errs)
	}

	for _, name := range p.OptionalNames {
		v, present := obj.Get(name)
		if !present {
			continue
		}
		w.walk(p.Optional[name], v, instancePath+"/"+name, schemaPath+"/optionalProperties/"+name, errs)
	}

	if !p.Additional {
		for _, k := range obj.Keys {
			if p.HasProperty(k) || exempt[k] {
				continue
			}
			*errs = append(*errs, Error{instancePath + "/" + k, ""})
		}
	}
}

func (w *walker) walkDiscrim(d *ast.Discrim, value any, instancePath, schemaPath string, errs *[]Error) {
	obj, ok := value.(*jsonsrc.Object)
	if !ok {
		*errs = append(*errs, Error{instancePath, schemaPath + "/discriminator"})
		return
	}
	tagVal, present := obj.Get(d.Tag)
	if !present {
		*errs = append(*errs, Error{instancePath, schemaPath + "/discriminator"})
		return
	}
	tagStr, ok := tagVal.(string)
	if !ok {
		*errs = append(*errs, Error{instancePath + "/" + d.Tag, schemaPath + "/discriminator"})
		return
	}
	variant, ok := d.Mapping[tagStr]
	if !ok {
		*errs = append(*errs, Error{instancePath + "/" + d.Tag, schemaPath + "/mapping"})
		return
	}
	w.walkProperties(variant, obj, instancePath, schemaPath+"/mapping/"+tagStr, map[string]bool{d.Tag: true}, errs)
}

func containsString(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}
