// Package lua emits standalone Lua 5.1/LuaJIT validator source from a
// compiled schema.
package lua

import (
	"strings"

	"github.com/jtdgen/jtdgen/internal/ast"
	"github.com/jtdgen/jtdgen/internal/emit"
	"github.com/jtdgen/jtdgen/internal/pathctx"
)

// Generate renders cs as a standalone Lua module returning a table with a
// single `validate(instance)` field, plus one local function per definition
// and per hoisted anonymous container.
//
// Instances follow the decoding convention most Lua JSON libraries use:
// JSON objects and arrays both decode to plain tables (arrays via
// contiguous integer keys starting at 1), and JSON null decodes to the
// JTD_NULL sentinel rather than Lua nil, so a required property holding
// null is still distinguishable from an absent one.
func Generate(cs *ast.CompiledSchema) (string, error) {
	plan := emit.Build(cs)
	feats := emit.Scan(cs)
	w := emit.NewWriter("  ")
	c := &genCtx{w: w, plan: plan, ids: &pathctx.Idents{}}

	w.Line("-- Code generated by jtdgen. DO NOT EDIT.")
	w.Line("local M = {}")
	w.Line("local JTD_NULL = setmetatable({}, { __tostring = function() return \"null\" end })")
	w.Line("M.null = JTD_NULL")
	w.Blank()

	if feats.Array || feats.Object {
		emitContainerHelpers(w)
	}
	if feats.Timestamp {
		emitTimestampHelper(w)
	}

	for _, fn := range plan.Funcs {
		w.Line("local function %s(value, errors, instance_path, schema_path)", fn.Name)
		w.Indent()
		c.emitFuncBody(fn)
		w.Dedent()
		w.Line("end")
		w.Blank()
	}

	w.Line("M.validate = function(instance)")
	w.Indent()
	w.Line("local errors = {}")
	c.emit(cs.Root, "instance", pathctx.Path{}, pathctx.Path{})
	w.Line("return errors")
	w.Dedent()
	w.Line("end")
	w.Blank()
	w.Line("return M")

	return w.String(), nil
}

func emitContainerHelpers(w *emit.Writer) {
	w.Line("local function jtd_is_array(t)")
	w.Indent()
	w.Line("if t == JTD_NULL or type(t) ~= \"table\" then return false end")
	w.Line("local n = 0")
	w.Line("for _ in pairs(t) do n = n + 1 end")
	w.Line("return n == #t")
	w.Dedent()
	w.Line("end")
	w.Blank()
	w.Line("local function jtd_is_object(t)")
	w.Indent()
	w.Line("if t == JTD_NULL or type(t) ~= \"table\" then return false end")
	w.Line("return #t == 0 or not jtd_is_array(t)")
	w.Dedent()
	w.Line("end")
	w.Blank()
}

func emitTimestampHelper(w *emit.Writer) {
	w.Line("local function jtd_days_in_month(year, month)")
	w.Indent()
	w.Line("local days = { 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31 }")
	w.Line("if month == 2 and ((year %% 4 == 0 and year %% 100 ~= 0) or year %% 400 == 0) then")
	w.Indent()
	w.Line("return 29")
	w.Dedent()
	w.Line("end")
	w.Line("return days[month]")
	w.Dedent()
	w.Line("end")
	w.Blank()
	w.Line("local function jtd_is_timestamp(s)")
	w.Indent()
	w.Line("if #s < 20 then return false end")
	w.Line("local y, mo, d, h, mi, se = s:match(\"^(%%d%%d%%d%%d)-(%%d%%d)-(%%d%%d)T(%%d%%d):(%%d%%d):(%%d%%d)\")")
	w.Line("if not y then return false end")
	w.Line("y, mo, d, h, mi, se = tonumber(y), tonumber(mo), tonumber(d), tonumber(h), tonumber(mi), tonumber(se)")
	w.Line("if se == 60 then se = 59 end")
	w.Line("if mo < 1 or mo > 12 or d < 1 or d > jtd_days_in_month(y, mo) then return false end")
	w.Line("if h > 23 or mi > 59 or se > 59 then return false end")
	w.Line("local rest = s:sub(20)")
	w.Line("if rest:match(\"^%%.%%d+\") then rest = rest:gsub(\"^%%.%%d+\", \"\", 1) end")
	w.Line("if rest == \"Z\" then return true end")
	w.Line("local sign, oh, om = rest:match(\"^([+-])(%%d%%d):(%%d%%d)$\")")
	w.Line("if not sign then return false end")
	w.Line("oh, om = tonumber(oh), tonumber(om)")
	w.Line("return oh <= 23 and om <= 59")
	w.Dedent()
	w.Line("end")
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
	return p.Render(emit.Quote, func(a, b string) string { return a + " .. " + b })
}

func (c *genCtx) pushError(ip, sp pathctx.Path) {
	c.w.Line(
		"table.insert(errors, { instancePath = %s, schemaPath = %s })",
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
		c.w.Line("if %s ~= JTD_NULL then", value)
		c.w.Indent()
		c.emit(nb.Inner, value, ip, sp)
		c.w.Dedent()
		c.w.Line("end")
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
	case ast.Ref:
		c.w.Line("%s(%s, errors, %s, %s)", emit.DefFuncName(n.Name), value, renderPath(ip), renderPath(sp))
	case ast.Type:
		c.w.Line("if not (%s) then", typeExpr(n.Keyword, value))
		c.w.Indent()
		c.pushError(ip, sp.AppendLiteral("type"))
		c.w.Dedent()
		c.w.Line("end")
	case ast.Enum:
		c.w.Line("if not (%s) then", enumGuard(value, n.Values))
		c.w.Indent()
		c.pushError(ip, sp.AppendLiteral("enum"))
		c.w.Dedent()
		c.w.Line("end")
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
	entries := make([]string, len(values))
	for i, v := range values {
		entries[i] = "[" + emit.Quote(v) + "] = true"
	}
	set := "({ " + strings.Join(entries, ", ") + " })"
	return "type(" + value + ") == \"string\" and " + set + "[" + value + "]"
}

func (c *genCtx) emitElements(n ast.Elements, value string, ip, sp pathctx.Path) {
	c.w.Line("if not jtd_is_array(%s) then", value)
	c.w.Indent()
	c.pushError(ip, sp.AppendLiteral("elements"))
	c.w.Dedent()
	c.w.Line("else")
	c.w.Indent()
	idx := c.ids.Index()
	elVar := "el" + idx
	rawVar := idx + "_1"
	c.w.Line("for %s, %s in ipairs(%s) do", rawVar, elVar, value)
	c.w.Indent()
	c.w.Line("local %s = %s - 1", idx, rawVar)
	c.emit(n.Inner, elVar, ip.AppendVar(idx), sp.AppendLiteral("elements"))
	c.w.Dedent()
	c.w.Line("end")
	c.w.Dedent()
	c.w.Line("end")
}

func (c *genCtx) emitValues(n ast.Values, value string, ip, sp pathctx.Path) {
	c.w.Line("if not jtd_is_object(%s) then", value)
	c.w.Indent()
	c.pushError(ip, sp.AppendLiteral("values"))
	c.w.Dedent()
	c.w.Line("else")
	c.w.Indent()
	key := c.ids.Key()
	c.w.Line("for %s, v in pairs(%s) do", key, value)
	c.w.Indent()
	c.emit(n.Inner, "v", ip.AppendVar(key), sp.AppendLiteral("values"))
	c.w.Dedent()
	c.w.Line("end")
	c.w.Dedent()
	c.w.Line("end")
}

func (c *genCtx) emitProperties(p *ast.Properties, value string, ip, sp pathctx.Path, exemptTag string) {
	guard := "optionalProperties"
	if len(p.RequiredNames) > 0 {
		guard = "properties"
	}
	c.w.Line("if not jtd_is_object(%s) then", value)
	c.w.Indent()
	c.pushError(ip, sp.AppendLiteral(guard))
	c.w.Dedent()
	c.w.Line("else")
	c.w.Indent()

	for _, name := range p.RequiredNames {
		key := emit.Quote(name)
		c.w.Line("if %s[%s] == nil then", value, key)
		c.w.Indent()
		c.pushError(ip, sp.AppendLiteral("properties/"+name))
		c.w.Dedent()
		c.w.Line("else")
		c.w.Indent()
		c.emit(p.Required[name], value+"["+key+"]", ip.AppendLiteral(name), sp.AppendLiteral("properties/"+name))
		c.w.Dedent()
		c.w.Line("end")
	}
	for _, name := range p.OptionalNames {
		key := emit.Quote(name)
		c.w.Line("if %s[%s] ~= nil then", value, key)
		c.w.Indent()
		c.emit(p.Optional[name], value+"["+key+"]", ip.AppendLiteral(name), sp.AppendLiteral("optionalProperties/"+name))
		c.w.Dedent()
		c.w.Line("end")
	}

	if !p.Additional {
		known := make([]string, 0, len(p.RequiredNames)+len(p.OptionalNames))
		known = append(known, p.RequiredNames...)
		known = append(known, p.OptionalNames...)
		entries := make([]string, len(known))
		for i, n := range known {
			entries[i] = "[" + emit.Quote(n) + "] = true"
		}
		knownSet := "({ " + strings.Join(entries, ", ") + " })"
		key := c.ids.Key()
		c.w.Line("for %s, _ in pairs(%s) do", key, value)
		c.w.Indent()
		cond := "not " + knownSet + "[" + key + "]"
		if exemptTag != "" {
			cond = key + " ~= " + emit.Quote(exemptTag) + " and " + cond
		}
		c.w.Line("if %s then", cond)
		c.w.Indent()
		c.pushError(ip.AppendVar(key), pathctx.Path{})
		c.w.Dedent()
		c.w.Line("end")
		c.w.Dedent()
		c.w.Line("end")
	}

	c.w.Dedent()
	c.w.Line("end")
}

func (c *genCtx) emitDiscrim(d *ast.Discrim, value string, ip, sp pathctx.Path) {
	tagKey := emit.Quote(d.Tag)
	entries := make([]string, len(d.MappingNames))
	for i, n := range d.MappingNames {
		entries[i] = "[" + emit.Quote(n) + "] = true"
	}
	mappingSet := "({ " + strings.Join(entries, ", ") + " })"

	c.w.Line("if not jtd_is_object(%s) then", value)
	c.w.Indent()
	c.pushError(ip, sp.AppendLiteral("discriminator"))
	c.w.Dedent()
	c.w.Line("elseif %s[%s] == nil then", value, tagKey)
	c.w.Indent()
	c.pushError(ip, sp.AppendLiteral("discriminator"))
	c.w.Dedent()
	c.w.Line("elseif type(%s[%s]) ~= \"string\" then", value, tagKey)
	c.w.Indent()
	c.pushError(ip.AppendLiteral(d.Tag), sp.AppendLiteral("discriminator"))
	c.w.Dedent()
	c.w.Line("elseif not %s[%s[%s]] then", mappingSet, value, tagKey)
	c.w.Indent()
	c.pushError(ip.AppendLiteral(d.Tag), sp.AppendLiteral("mapping"))
	c.w.Dedent()
	c.w.Line("else")
	c.w.Indent()
	for i, name := range d.MappingNames {
		kw := "if"
		if i > 0 {
			kw = "elseif"
		}
		c.w.Line("%s %s[%s] == %s then", kw, value, tagKey, emit.Quote(name))
		c.w.Indent()
		c.emit(d.Mapping[name], value, ip, sp.AppendLiteral("mapping/"+name))
		c.w.Dedent()
	}
	c.w.Line("end")
	c.w.Dedent()
	c.w.Line("end")
}
