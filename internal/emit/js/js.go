// Package js emits standalone JavaScript validator source from a compiled
// schema.
package js

import (
	"strings"

	"github.com/jtdgen/jtdgen/internal/ast"
	"github.com/jtdgen/jtdgen/internal/emit"
	"github.com/jtdgen/jtdgen/internal/pathctx"
)

// Generate renders cs as a standalone ES module exporting a single
// `validate(instance)` function plus one function per definition and per
// hoisted anonymous container, per the module composer's layout.
func Generate(cs *ast.CompiledSchema) (string, error) {
	plan := emit.Build(cs)
	w := emit.NewWriter("  ")
	c := &genCtx{w: w, plan: plan, ids: &pathctx.Idents{}}

	w.Line("// Code generated by jtdgen. DO NOT EDIT.")
	w.Blank()

	for _, fn := range plan.Funcs {
		w.Line("function %s(value, errors, instancePath, schemaPath) {", fn.Name)
		w.Indent()
		c.emitFuncBody(fn)
		w.Dedent()
		w.Line("}")
		w.Blank()
	}

	w.Line("export function validate(instance) {")
	w.Indent()
	w.Line("const errors = [];")
	c.emit(cs.Root, "instance", pathctx.Path{}, pathctx.Path{})
	w.Line("return errors;")
	w.Dedent()
	w.Line("}")

	return w.String(), nil
}

type genCtx struct {
	w    *emit.Writer
	plan *emit.Plan
	ids  *pathctx.Idents
}

func renderPath(p pathctx.Path) string {
	if p.IsConstant() {
		return emit.Quote(p.Constant())
	}
	return p.Render(emit.Quote, func(a, b string) string { return a + " + " + b })
}

func (c *genCtx) pushError(ip, sp pathctx.Path) {
	c.w.Line("errors.push({ instancePath: %s, schemaPath: %s });", renderPath(ip), renderPath(sp))
}

// emitFuncBody generates the body of one Plan.Funcs entry. Definitions are
// dispatched through emit so a nullable top-level form still gets its null
// guard; anonymous hoists are always a Properties or Discrim node and must
// be inlined directly here rather than through emit, since emit would just
// call this very function back (it's registered in the plan under its own
// node identity).
func (c *genCtx) emitFuncBody(fn emit.Func) {
	ip0 := pathctx.FromVar("instancePath")
	sp0 := pathctx.FromVar("schemaPath")
	if fn.DefName != "" {
		c.emit(fn.Node, "value", ip0, sp0)
		return
	}
	switch n := fn.Node.(type) {
	case *ast.Properties:
		c.emitProperties(n, "value", ip0, sp0, fn.ExemptTag)
	case *ast.Discrim:
		c.emitDiscrim(n, "value", ip0, sp0)
	}
}

// emit dispatches node: it peels a Nullable guard, then either calls the
// node's hoisted function (if Plan.Build decided this exact node gets one)
// or inlines it via emitBody.
func (c *genCtx) emit(node ast.Node, value string, ip, sp pathctx.Path) {
	if nb, ok := node.(ast.Nullable); ok {
		c.w.Line("if (%s !== null) {", value)
		c.w.Indent()
		c.emit(nb.Inner, value, ip, sp)
		c.w.Dedent()
		c.w.Line("}")
		return
	}
	if name, ok := c.plan.FuncFor(node); ok {
		c.w.Line("%s(%s, errors, %s, %s);", name, value, renderPath(ip), renderPath(sp))
		return
	}
	c.emitBody(node, value, ip, sp)
}

func (c *genCtx) emitBody(node ast.Node, value string, ip, sp pathctx.Path) {
	switch n := node.(type) {
	case ast.Empty:
		// matches any value; nothing to check
	case ast.Ref:
		c.w.Line("%s(%s, errors, %s, %s);", emit.DefFuncName(n.Name), value, renderPath(ip), renderPath(sp))
	case ast.Type:
		c.w.Line("if (!(%s)) {", typeExpr(n.Keyword, value))
		c.w.Indent()
		c.pushError(ip, sp.AppendLiteral("type"))
		c.w.Dedent()
		c.w.Line("}")
	case ast.Enum:
		c.w.Line("if (!(%s)) {", enumGuard(value, n.Values))
		c.w.Indent()
		c.pushError(ip, sp.AppendLiteral("enum"))
		c.w.Dedent()
		c.w.Line("}")
	case ast.Elements:
		c.emitElements(n, value, ip, sp)
	case ast.Values:
		c.emitValues(n, value, ip, sp)
	case *ast.Properties:
		c.emitProperties(n, value, ip, sp, "")
	case *ast.Discrim:
		c.emitDiscrim(n, value, ip, sp)
	}
}

func enumGuard(value string, values []string) string {
	lits := make([]string, len(values))
	for i, v := range values {
		lits[i] = emit.Quote(v)
	}
	set := "[" + strings.Join(lits, ", ") + "]"
	return "typeof " + value + " === \"string\" && " + set + ".includes(" + value + ")"
}

func (c *genCtx) emitElements(n ast.Elements, value string, ip, sp pathctx.Path) {
	c.w.Line("if (!Array.isArray(%s)) {", value)
	c.w.Indent()
	c.pushError(ip, sp.AppendLiteral("elements"))
	c.w.Dedent()
	c.w.Line("} else {")
	c.w.Indent()
	idx := c.ids.Index()
	c.w.Line("for (let %s = 0; %s < %s.length; %s++) {", idx, idx, value, idx)
	c.w.Indent()
	elVar := "el" + idx
	c.w.Line("const %s = %s[%s];", elVar, value, idx)
	c.emit(n.Inner, elVar, ip.AppendVar(idx), sp.AppendLiteral("elements"))
	c.w.Dedent()
	c.w.Line("}")
	c.w.Dedent()
	c.w.Line("}")
}

func (c *genCtx) emitValues(n ast.Values, value string, ip, sp pathctx.Path) {
	c.w.Line("if (typeof %s !== \"object\" || %s === null || Array.isArray(%s)) {", value, value, value)
	c.w.Indent()
	c.pushError(ip, sp.AppendLiteral("values"))
	c.w.Dedent()
	c.w.Line("} else {")
	c.w.Indent()
	key := c.ids.Key()
	c.w.Line("for (const %s of Object.keys(%s)) {", key, value)
	c.w.Indent()
	c.emit(n.Inner, value+"["+key+"]", ip.AppendVar(key), sp.AppendLiteral("values"))
	c.w.Dedent()
	c.w.Line("}")
	c.w.Dedent()
	c.w.Line("}")
}

func (c *genCtx) emitProperties(p *ast.Properties, value string, ip, sp pathctx.Path, exemptTag string) {
	guard := "optionalProperties"
	if len(p.RequiredNames) > 0 {
		guard = "properties"
	}
	c.w.Line("if (typeof %s !== \"object\" || %s === null || Array.isArray(%s)) {", value, value, value)
	c.w.Indent()
	c.pushError(ip, sp.AppendLiteral(guard))
	c.w.Dedent()
	c.w.Line("} else {")
	c.w.Indent()

	for _, name := range p.RequiredNames {
		key := emit.Quote(name)
		c.w.Line("if (!Object.prototype.hasOwnProperty.call(%s, %s)) {", value, key)
		c.w.Indent()
		c.pushError(ip, sp.AppendLiteral("properties/"+name))
		c.w.Dedent()
		c.w.Line("} else {")
		c.w.Indent()
		c.emit(p.Required[name], value+"["+key+"]", ip.AppendLiteral(name), sp.AppendLiteral("properties/"+name))
		c.w.Dedent()
		c.w.Line("}")
	}
	for _, name := range p.OptionalNames {
		key := emit.Quote(name)
		c.w.Line("if (Object.prototype.hasOwnProperty.call(%s, %s)) {", value, key)
		c.w.Indent()
		c.emit(p.Optional[name], value+"["+key+"]", ip.AppendLiteral(name), sp.AppendLiteral("optionalProperties/"+name))
		c.w.Dedent()
		c.w.Line("}")
	}

	if !p.Additional {
		known := make([]string, 0, len(p.RequiredNames)+len(p.OptionalNames))
		known = append(known, p.RequiredNames...)
		known = append(known, p.OptionalNames...)
		lits := make([]string, len(known))
		for i, n := range known {
			lits[i] = emit.Quote(n)
		}
		knownSet := "[" + strings.Join(lits, ", ") + "]"
		key := c.ids.Key()
		c.w.Line("for (const %s of Object.keys(%s)) {", key, value)
		c.w.Indent()
		cond := "!" + knownSet + ".includes(" + key + ")"
		if exemptTag != "" {
			cond = key + " !== " + emit.Quote(exemptTag) + " && " + cond
		}
		c.w.Line("if (%s) {", cond)
		c.w.Indent()
		c.pushError(ip.AppendVar(key), pathctx.Path{})
		c.w.Dedent()
		c.w.Line("}")
		c.w.Dedent()
		c.w.Line("}")
	}

	c.w.Dedent()
	c.w.Line("}")
}

func (c *genCtx) emitDiscrim(d *ast.Discrim, value string, ip, sp pathctx.Path) {
	tagKey := emit.Quote(d.Tag)
	tagExpr := value + "[" + tagKey + "]"

	mappingLits := make([]string, len(d.MappingNames))
	for i, n := range d.MappingNames {
		mappingLits[i] = emit.Quote(n)
	}
	mappingSet := "[" + strings.Join(mappingLits, ", ") + "]"

	c.w.Line("if (typeof %s !== \"object\" || %s === null || Array.isArray(%s)) {", value, value, value)
	c.w.Indent()
	c.pushError(ip, sp.AppendLiteral("discriminator"))
	c.w.Dedent()
	c.w.Line("} else if (!Object.prototype.hasOwnProperty.call(%s, %s)) {", value, tagKey)
	c.w.Indent()
	c.pushError(ip, sp.AppendLiteral("discriminator"))
	c.w.Dedent()
	c.w.Line("} else if (typeof %s !== \"string\") {", tagExpr)
	c.w.Indent()
	c.pushError(ip.AppendLiteral(d.Tag), sp.AppendLiteral("discriminator"))
	c.w.Dedent()
	c.w.Line("} else if (!(%s.includes(%s))) {", mappingSet, tagExpr)
	c.w.Indent()
	c.pushError(ip.AppendLiteral(d.Tag), sp.AppendLiteral("mapping"))
	c.w.Dedent()
	c.w.Line("} else {")
	c.w.Indent()
	for i, name := range d.MappingNames {
		kw := "if"
		if i > 0 {
			kw = "} else if"
		}
		c.w.Line("%s (%s === %s) {", kw, tagExpr, emit.Quote(name))
		c.w.Indent()
		c.emit(d.Mapping[name], value, ip, sp.AppendLiteral("mapping/"+name))
		c.w.Dedent()
	}
	c.w.Line("}")
	c.w.Dedent()
	c.w.Line("}")
}
