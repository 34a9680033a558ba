// Package compiler maps a parsed JSON schema value to the immutable AST in
// internal/ast, enforcing RFC 8927's structural constraints and the form
// dispatch rules that decide which of the nine node shapes a schema object
// compiles to. It never inspects an instance; that is the generated
// validator's job.
package compiler

import (
	"strconv"

	"github.com/jtdgen/jtdgen/internal/ast"
	"github.com/jtdgen/jtdgen/internal/jsonsrc"
)

// knownKeys is every schema-object member the compiler recognizes. A key
// outside this set fails with UnknownKeyword. metadata is accepted and
// ignored everywhere, per RFC 8927's "freeform annotation" allowance.
var knownKeys = map[string]bool{
	"definitions":         true,
	"ref":                 true,
	"type":                true,
	"enum":                true,
	"elements":            true,
	"properties":          true,
	"optionalProperties":  true,
	"additionalProperties": true,
	"values":              true,
	"discriminator":       true,
	"mapping":             true,
	"nullable":            true,
	"metadata":            true,
}

type ctx struct {
	// names is the set of every definition name registered in pass one,
	// so forward and mutually-recursive refs resolve regardless of
	// compile order.
	names map[string]bool
}

// Compile turns a decoded JSON schema value (as produced by jsonsrc.DecodeAny)
// into a CompiledSchema, or fails with a *SchemaError.
func Compile(value any) (*ast.CompiledSchema, error) {
	root, ok := value.(*jsonsrc.Object)
	if !ok {
		return nil, fail(NotObject, "")
	}

	out := &ast.CompiledSchema{
		Definitions: make(map[string]ast.Node),
	}
	c := &ctx{names: make(map[string]bool)}

	if defsVal, has := root.Get("definitions"); has {
		defsObj, ok := defsVal.(*jsonsrc.Object)
		if !ok {
			return nil, fail(NotObject, "/definitions")
		}
		for _, name := range defsObj.Keys {
			c.names[name] = true
			out.DefinitionNames = append(out.DefinitionNames, name)
		}
		for _, name := range defsObj.Keys {
			body, _ := defsObj.Get(name)
			node, err := c.compileSchema(body, "/definitions/"+escapeSegment(name), false)
			if err != nil {
				return nil, err
			}
			out.Definitions[name] = node
		}
	}

	rootNode, err := c.compileSchema(root, "", true)
	if err != nil {
		return nil, err
	}
	out.Root = rootNode
	return out, nil
}

func (c *ctx) compileSchema(value any, pointer string, isRoot bool) (ast.Node, error) {
	obj, ok := value.(*jsonsrc.Object)
	if !ok {
		return nil, fail(NotObject, pointer)
	}

	if !isRoot {
		if _, has := obj.Get("definitions"); has {
			return nil, fail(DefinitionsOnNonRoot, pointer+"/definitions")
		}
	}

	for _, key := range obj.Keys {
		if key == "definitions" && isRoot {
			continue
		}
		if !knownKeys[key] {
			return nil, fail(UnknownKeyword, pointer+"/"+escapeSegment(key))
		}
	}

	_, hasRef := obj.Get("ref")
	_, hasType := obj.Get("type")
	_, hasEnum := obj.Get("enum")
	_, hasElements := obj.Get("elements")
	_, hasValues := obj.Get("values")
	_, hasDiscrim := obj.Get("discriminator")
	_, hasRequired := obj.Get("properties")
	_, hasOptional := obj.Get("optionalProperties")
	hasProps := hasRequired || hasOptional

	formCount := 0
	for _, present := range []bool{hasRef, hasType, hasEnum, hasElements, hasValues, hasDiscrim, hasProps} {
		if present {
			formCount++
		}
	}
	if formCount > 1 {
		return nil, fail(MultipleForms, pointer)
	}

	var node ast.Node
	var err error
	switch {
	case hasRef:
		node, err = c.compileRef(obj, pointer)
	case hasType:
		node, err = compileType(obj, pointer)
	case hasEnum:
		node, err = compileEnum(obj, pointer)
	case hasElements:
		node, err = c.compileElements(obj, pointer)
	case hasValues:
		node, err = c.compileValues(obj, pointer)
	case hasProps:
		node, err = c.compileProperties(obj, pointer)
	case hasDiscrim:
		node, err = c.compileDiscriminator(obj, pointer)
	default:
		node = ast.Empty{}
	}
	if err != nil {
		return nil, err
	}

	return c.applyNullable(obj, pointer, node)
}

func (c *ctx) applyNullable(obj *jsonsrc.Object, pointer string, node ast.Node) (ast.Node, error) {
	v, has := obj.Get("nullable")
	if !has {
		return node, nil
	}
	b, ok := v.(bool)
	if !ok {
		return nil, fail(NullableNotBoolean, pointer+"/nullable")
	}
	if !b {
		return node, nil
	}
	return ast.Nullable{Inner: node}, nil
}

func (c *ctx) compileRef(obj *jsonsrc.Object, pointer string) (ast.Node, error) {
	v, _ := obj.Get("ref")
	name, ok := v.(string)
	if !ok || !c.names[name] {
		return nil, fail(RefUnresolved, pointer+"/ref")
	}
	return ast.Ref{Name: name}, nil
}

func compileType(obj *jsonsrc.Object, pointer string) (ast.Node, error) {
	v, _ := obj.Get("type")
	s, ok := v.(string)
	if !ok {
		return nil, fail(UnknownTypeKeyword, pointer+"/type")
	}
	kw, ok := ast.IsValidTypeKeyword(s)
	if !ok {
		return nil, fail(UnknownTypeKeyword, pointer+"/type")
	}
	return ast.Type{Keyword: kw}, nil
}

func compileEnum(obj *jsonsrc.Object, pointer string) (ast.Node, error) {
	v, _ := obj.Get("enum")
	arr, ok := v.([]any)
	if !ok {
		return nil, fail(EnumNotArray, pointer+"/enum")
	}
	if len(arr) == 0 {
		return nil, fail(EnumEmpty, pointer+"/enum")
	}
	seen := make(map[string]bool, len(arr))
	values := make([]string, 0, len(arr))
	for i, item := range arr {
		s, ok := item.(string)
		if !ok {
			return nil, fail(EnumMemberNotString, pointer+"/enum/"+strconv.Itoa(i))
		}
		if seen[s] {
			return nil, fail(EnumDuplicate, pointer+"/enum/"+strconv.Itoa(i))
		}
		seen[s] = true
		values = append(values, s)
	}
	return ast.Enum{Values: values}, nil
}

func (c *ctx) compileElements(obj *jsonsrc.Object, pointer string) (ast.Node, error) {
	child, _ := obj.Get("elements")
	inner, err := c.compileSchema(child, pointer+"/elements", false)
	if err != nil {
		return nil, err
	}
	return ast.Elements{Inner: inner}, nil
}

func (c *ctx) compileValues(obj *jsonsrc.Object, pointer string) (ast.Node, error) {
	child, _ := obj.Get("values")
	inner, err := c.compileSchema(child, pointer+"/values", false)
	if err != nil {
		return nil, err
	}
	return ast.Values{Inner: inner}, nil
}

func (c *ctx) compileProperties(obj *jsonsrc.Object, pointer string) (ast.Node, error) {
	p := &ast.Properties{
		Required: make(map[string]ast.Node),
		Optional: make(map[string]ast.Node),
	}

	if reqVal, has := obj.Get("properties"); has {
		reqObj, ok := reqVal.(*jsonsrc.Object)
		if !ok {
			return nil, fail(NotObject, pointer+"/properties")
		}
		for _, name := range reqObj.Keys {
			body, _ := reqObj.Get(name)
			node, err := c.compileSchema(body, pointer+"/properties/"+escapeSegment(name), false)
			if err != nil {
				return nil, err
			}
			p.RequiredNames = append(p.RequiredNames, name)
			p.Required[name] = node
		}
	}

	if optVal, has := obj.Get("optionalProperties"); has {
		optObj, ok := optVal.(*jsonsrc.Object)
		if !ok {
			return nil, fail(NotObject, pointer+"/optionalProperties")
		}
		for _, name := range optObj.Keys {
			if _, overlap := p.Required[name]; overlap {
				return nil, fail(PropertiesOverlap, pointer+"/optionalProperties/"+escapeSegment(name))
			}
			body, _ := optObj.Get(name)
			node, err := c.compileSchema(body, pointer+"/optionalProperties/"+escapeSegment(name), false)
			if err != nil {
				return nil, err
			}
			p.OptionalNames = append(p.OptionalNames, name)
			p.Optional[name] = node
		}
	}

	// additionalProperties defaults to false; only an explicit JSON `true`
	// enables it. A malformed (non-boolean) value is treated as absent
	// rather than raising a dedicated error kind, since RFC 8927's
	// compile-error taxonomy has no member for it.
	if addVal, has := obj.Get("additionalProperties"); has {
		if b, ok := addVal.(bool); ok {
			p.Additional = b
		}
	}

	return p, nil
}

func (c *ctx) compileDiscriminator(obj *jsonsrc.Object, pointer string) (ast.Node, error) {
	tagVal, _ := obj.Get("discriminator")
	tag, ok := tagVal.(string)
	if !ok {
		return nil, fail(DiscriminatorMappingNotProperties, pointer+"/discriminator")
	}

	mapVal, has := obj.Get("mapping")
	mapObj, ok := mapVal.(*jsonsrc.Object)
	if !has || !ok {
		return nil, fail(DiscriminatorMappingNotProperties, pointer+"/mapping")
	}

	d := &ast.Discrim{Tag: tag, Mapping: make(map[string]*ast.Properties)}
	for _, variantKey := range mapObj.Keys {
		body, _ := mapObj.Get(variantKey)
		variantPointer := pointer + "/mapping/" + escapeSegment(variantKey)
		node, err := c.compileSchema(body, variantPointer, false)
		if err != nil {
			return nil, err
		}
		props, ok := node.(*ast.Properties)
		if !ok {
			return nil, fail(DiscriminatorMappingNotProperties, variantPointer)
		}
		if props.HasProperty(tag) {
			return nil, fail(DiscriminatorTagCollision, variantPointer)
		}
		d.MappingNames = append(d.MappingNames, variantKey)
		d.Mapping[variantKey] = props
	}
	return d, nil
}

// escapeSegment escapes a raw key for use as one segment of a JSON Pointer
// (RFC 6901 section 3): "~" becomes "~0" and "/" becomes "~1".
func escapeSegment(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '~':
			out = append(out, '~', '0')
		case '/':
			out = append(out, '~', '1')
		default:
			out = append(out, s[i])
		}
	}
	return string(out)
}
