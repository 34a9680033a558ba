// Package python emits standalone Python 3 validator source from a
// compiled schema.
package python

import (
	"strings"

	"github.com/jtdgen/jtdgen/internal/ast"
	"github.com/jtdgen/jtdgen/internal/emit"
	"github.com/jtdgen/jtdgen/internal/pathctx"
)

// Generate renders cs as a standalone Python 3 module exposing a single
// `validate(instance)` function, plus one function per definition and per
// hoisted anonymous container. Instances use Python's native json.loads
// representation: dict for objects, list for arrays, None for null.
func Generate(cs *ast.CompiledSchema) (string, error) {
	plan := emit.Build(cs)
	feats := emit.Scan(cs)
	w := emit.NewWriter("    ")
	c := &genCtx{w: w, plan: plan, ids: &pathctx.Idents{}}

	w.Line("# Code generated by jtdgen. DO NOT EDIT.")
	if feats.BoundedInt {
		w.Line("import math")
	}
	if feats.Timestamp {
		w.Line("import re")
	}
	w.Blank()

	if feats.Timestamp {
		emitTimestampHelper(w)
	}

	for _, fn := range plan.Funcs {
		w.Line("def %s(value, errors, instance_path, schema_path):", fn.Name)
		w.Indent()
		c.emitFuncBody(fn)
		w.Dedent()
		w.Blank()
	}

	w.Line("def validate(instance):")
	w.Indent()
	w.Line("errors = []")
	c.emit(cs.Root, "instance", pathctx.Path{}, pathctx.Path{})
	w.Line("return errors")
	w.Dedent()

	return w.String(), nil
}

func emitTimestampHelper(w *emit.Writer) {
	w.Line(`_JTD_TS_RE = re.compile(r"^(\d{4})-(\d{2})-(\d{2})T(\d{2}):(\d{2}):(\d{2})(\.\d+)?(Z|[+-]\d{2}:\d{2})$")`)
	w.Blank()
	w.Line("def _jtd_days_in_month(year, month):")
	w.Indent()
	w.Line("days = [31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31]")
	w.Line("if month == 2 and ((year %% 4 == 0 and year %% 100 != 0) or year %% 400 == 0):")
	w.Indent()
	w.Line("return 29")
	w.Dedent()
	w.Line("return days[month - 1]")
	w.Dedent()
	w.Blank()
	w.Line("def _jtd_is_timestamp(s):")
	w.Indent()
	w.Line("m = _JTD_TS_RE.match(s)")
	w.Line("if not m:")
	w.Indent()
	w.Line("return False")
	w.Dedent()
	w.Line("year, month, day, hour, minute, second = (int(m.group(i)) for i in range(1, 7))")
	w.Line("if second == 60:")
	w.Indent()
	w.Line("second = 59")
	w.Dedent()
	w.Line("if month < 1 or month > 12 or day < 1 or day > _jtd_days_in_month(year, month):")
	w.Indent()
	w.Line("return False")
	w.Dedent()
	w.Line("if hour > 23 or minute > 59 or second > 59:")
	w.Indent()
	w.Line("return False")
	w.Dedent()
	w.Line("tz = m.group(8)")
	w.Line("if tz == \"Z\":")
	w.Indent()
	w.Line("return True")
	w.Dedent()
	w.Line("offset_hour, offset_minute = int(tz[1:3]), int(tz[4:6])")
	w.Line("return offset_hour <= 23 and offset_minute <= 59")
	w.Dedent()
	w.Blank()
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
	c.w.Line(
		`errors.append({"instancePath": %s, "schemaPath": %s})`,
		renderPath(ip), renderPath(sp),
	)
}

func (c *genCtx) emitFuncBody(fn emit.Func) {
	ip0 := pathctx.FromVar("instance_path")
	sp0 := pathctx.FromVar("schema_path")
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

func (c *genCtx) emit(node ast.Node, value string, ip, sp pathctx.Path) {
	if nb, ok := node.(ast.Nullable); ok {
		c.w.Line("if %s is not None:", value)
		c.w.Indent()
		c.emit(nb.Inner, value, ip, sp)
		c.w.Dedent()
		return
	}
	if name, ok := c.plan.FuncFor(node); ok {
		c.w.Line("%s(%s, errors, %s, %s)", name, value, renderPath(ip), renderPath(sp))
		return
	}
	c.emitBody(node, value, ip, sp)
}

func (c *genCtx) emitBody(node ast.Node, value string, ip, sp pathctx.Path) {
	switch n := node.(type) {
	case ast.Empty:
		c.w.Line("pass")
	case ast.Ref:
		c.w.Line("%s(%s, errors, %s, %s)", emit.DefFuncName(n.Name), value, renderPath(ip), renderPath(sp))
	case ast.Type:
		c.w.Line("if not (%s):", typeExpr(n.Keyword, value))
		c.w.Indent()
		c.pushError(ip, sp.AppendLiteral("type"))
		c.w.Dedent()
	case ast.Enum:
		c.w.Line("if not (%s):", enumGuard(value, n.Values))
		c.w.Indent()
		c.pushError(ip, sp.AppendLiteral("enum"))
		c.w.Dedent()
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
	return "isinstance(" + value + ", str) and " + value + " in " + pySet(values)
}

// pySet renders a Python set literal. An empty `{}` is a dict literal in
// Python, not a set, so the empty case needs the explicit set() call.
func pySet(items []string) string {
	if len(items) == 0 {
		return "set()"
	}
	lits := make([]string, len(items))
	for i, v := range items {
		lits[i] = emit.Quote(v)
	}
	return "{" + strings.Join(lits, ", ") + "}"
}

func (c *genCtx) emitElements(n ast.Elements, value string, ip, sp pathctx.Path) {
	c.w.Line("if not isinstance(%s, list):", value)
	c.w.Indent()
	c.pushError(ip, sp.AppendLiteral("elements"))
	c.w.Dedent()
	c.w.Line("else:")
	c.w.Indent()
	idx := c.ids.Index()
	elVar := "el" + idx
	c.w.Line("for %s, %s in enumerate(%s):", idx, elVar, value)
	c.w.Indent()
	c.emit(n.Inner, elVar, ip.AppendVar("str("+idx+")"), sp.AppendLiteral("elements"))
	c.w.Dedent()
	c.w.Dedent()
}

func (c *genCtx) emitValues(n ast.Values, value string, ip, sp pathctx.Path) {
	c.w.Line("if not isinstance(%s, dict):", value)
	c.w.Indent()
	c.pushError(ip, sp.AppendLiteral("values"))
	c.w.Dedent()
	c.w.Line("else:")
	c.w.Indent()
	key := c.ids.Key()
	c.w.Line("for %s, jtd_v in %s.items():", key, value)
	c.w.Indent()
	c.emit(n.Inner, "jtd_v", ip.AppendVar(key), sp.AppendLiteral("values"))
	c.w.Dedent()
	c.w.Dedent()
}

func (c *genCtx) emitProperties(p *ast.Properties, value string, ip, sp pathctx.Path, exemptTag string) {
	guard := "optionalProperties"
	if len(p.RequiredNames) > 0 {
		guard = "properties"
	}
	c.w.Line("if not isinstance(%s, dict):", value)
	c.w.Indent()
	c.pushError(ip, sp.AppendLiteral(guard))
	c.w.Dedent()
	c.w.Line("else:")
	c.w.Indent()
	if len(p.RequiredNames) == 0 && len(p.OptionalNames) == 0 && p.Additional {
		c.w.Line("pass")
	}

	for _, name := range p.RequiredNames {
		key := emit.Quote(name)
		c.w.Line("if %s not in %s:", key, value)
		c.w.Indent()
		c.pushError(ip, sp.AppendLiteral("properties/"+name))
		c.w.Dedent()
		c.w.Line("else:")
		c.w.Indent()
		c.emit(p.Required[name], value+"["+key+"]", ip.AppendLiteral(name), sp.AppendLiteral("properties/"+name))
		c.w.Dedent()
	}
	for _, name := range p.OptionalNames {
		key := emit.Quote(name)
		c.w.Line("if %s in %s:", key, value)
		c.w.Indent()
		c.emit(p.Optional[name], value+"["+key+"]", ip.AppendLiteral(name), sp.AppendLiteral("optionalProperties/"+name))
		c.w.Dedent()
	}

	if !p.Additional {
		known := make([]string, 0, len(p.RequiredNames)+len(p.OptionalNames))
		known = append(known, p.RequiredNames...)
		known = append(known, p.OptionalNames...)
		knownSet := pySet(known)
		key := c.ids.Key()
		c.w.Line("for %s in %s:", key, value)
		c.w.Indent()
		cond := key + " not in " + knownSet
		if exemptTag != "" {
			cond = key + " != " + emit.Quote(exemptTag) + " and " + cond
		}
		c.w.Line("if %s:", cond)
		c.w.Indent()
		c.pushError(ip.AppendVar(key), pathctx.Path{})
		c.w.Dedent()
		c.w.Dedent()
	}

	c.w.Dedent()
}

func (c *genCtx) emitDiscrim(d *ast.Discrim, value string, ip, sp pathctx.Path) {
	tagKey := emit.Quote(d.Tag)
	mappingSet := pySet(d.MappingNames)

	c.w.Line("if not isinstance(%s, dict):", value)
	c.w.Indent()
	c.pushError(ip, sp.AppendLiteral("discriminator"))
	c.w.Dedent()
	c.w.Line("elif %s not in %s:", tagKey, value)
	c.w.Indent()
	c.pushError(ip, sp.AppendLiteral("discriminator"))
	c.w.Dedent()
	c.w.Line("elif not isinstance(%s[%s], str):", value, tagKey)
	c.w.Indent()
	c.pushError(ip.AppendLiteral(d.Tag), sp.AppendLiteral("discriminator"))
	c.w.Dedent()
	c.w.Line("elif %s[%s] not in %s:", value, tagKey, mappingSet)
	c.w.Indent()
	c.pushError(ip.AppendLiteral(d.Tag), sp.AppendLiteral("mapping"))
	c.w.Dedent()
	if len(d.MappingNames) > 0 {
		c.w.Line("else:")
		c.w.Indent()
		for i, name := range d.MappingNames {
			kw := "if"
			if i > 0 {
				kw = "elif"
			}
			c.w.Line("%s %s[%s] == %s:", kw, value, tagKey, emit.Quote(name))
			c.w.Indent()
			c.emit(d.Mapping[name], value, ip, sp.AppendLiteral("mapping/"+name))
			c.w.Dedent()
		}
		c.w.Dedent()
	}
}
