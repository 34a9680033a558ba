// Package rust emits standalone Rust validator source from a compiled
// schema, built against serde_json::Value as the instance representation.
package rust

import (
	"strings"

	"github.com/jtdgen/jtdgen/internal/ast"
	"github.com/jtdgen/jtdgen/internal/emit"
	"github.com/jtdgen/jtdgen/internal/pathctx"
)

// Generate renders cs as a standalone Rust module exposing `pub fn
// validate(instance: &serde_json::Value) -> Vec<ValidationError>` plus one
// function per definition and per hoisted anonymous container.
func Generate(cs *ast.CompiledSchema) (string, error) {
	plan := emit.Build(cs)
	feats := emit.Scan(cs)
	w := emit.NewWriter("    ")
	c := &genCtx{w: w, plan: plan, ids: &pathctx.Idents{}}

	w.Line("// Code generated by jtdgen. DO NOT EDIT.")
	w.Line("use serde_json::Value;")
	w.Blank()
	w.Line("#[derive(Debug, Clone)]")
	w.Line("pub struct ValidationError {")
	w.Indent()
	w.Line("pub instance_path: String,")
	w.Line("pub schema_path: String,")
	w.Dedent()
	w.Line("}")
	w.Blank()

	if feats.Timestamp {
		emitTimestampHelper(w)
	}

	for _, fn := range plan.Funcs {
		w.Line("fn %s(value: &Value, errors: &mut Vec<ValidationError>, instance_path: &str, schema_path: &str) {", fn.Name)
		w.Indent()
		c.emitFuncBody(fn)
		w.Dedent()
		w.Line("}")
		w.Blank()
	}

	w.Line("pub fn validate(instance: &Value) -> Vec<ValidationError> {")
	w.Indent()
	w.Line("let mut errors = Vec::new();")
	c.emit(cs.Root, "instance", pathctx.Path{}, pathctx.Path{})
	w.Line("errors")
	w.Dedent()
	w.Line("}")

	return w.String(), nil
}

func emitTimestampHelper(w *emit.Writer) {
	w.Line("fn jtd_is_timestamp(s: &str) -> bool {")
	w.Indent()
	w.Line("let b = s.as_bytes();")
	w.Line("if b.len() < 20 { return false; }")
	w.Line("let digit = |i: usize| -> Option<u32> {")
	w.Indent()
	w.Line("let c = *b.get(i)?;")
	w.Line("if c.is_ascii_digit() { Some((c - b'0') as u32) } else { None }")
	w.Dedent()
	w.Line("};")
	w.Line("let two = |i: usize| -> Option<u32> { Some(digit(i)? * 10 + digit(i + 1)?) };")
	w.Line("let four = |i: usize| -> Option<u32> { Some(two(i)? * 100 + two(i + 2)?) };")
	w.Line("if b[4] != b'-' || b[7] != b'-' || b[10] != b'T' || b[13] != b':' || b[16] != b':' {")
	w.Indent()
	w.Line("return false;")
	w.Dedent()
	w.Line("}")
	w.Line("let year = match four(0) { Some(v) => v, None => return false };")
	w.Line("let month = match two(5) { Some(v) => v, None => return false };")
	w.Line("let day = match two(8) { Some(v) => v, None => return false };")
	w.Line("let hour = match two(11) { Some(v) => v, None => return false };")
	w.Line("let minute = match two(14) { Some(v) => v, None => return false };")
	w.Line("let mut second = match two(17) { Some(v) => v, None => return false };")
	w.Line("if second == 60 { second = 59; }")
	w.Line("let mut i = 19;")
	w.Line("if i < b.len() && b[i] == b'.' {")
	w.Indent()
	w.Line("i += 1;")
	w.Line("let start = i;")
	w.Line("while i < b.len() && b[i].is_ascii_digit() { i += 1; }")
	w.Line("if i == start { return false; }")
	w.Dedent()
	w.Line("}")
	w.Line("if i >= b.len() { return false; }")
	w.Line("if b[i] == b'Z' {")
	w.Indent()
	w.Line("i += 1;")
	w.Dedent()
	w.Line("} else if b[i] == b'+' || b[i] == b'-' {")
	w.Indent()
	w.Line("if i + 6 > b.len() { return false; }")
	w.Line("let oh = match two(i + 1) { Some(v) => v, None => return false };")
	w.Line("let om = match two(i + 4) { Some(v) => v, None => return false };")
	w.Line("if b[i + 3] != b':' || oh > 23 || om > 59 { return false; }")
	w.Line("i += 6;")
	w.Dedent()
	w.Line("} else {")
	w.Indent()
	w.Line("return false;")
	w.Dedent()
	w.Line("}")
	w.Line("if i != b.len() { return false; }")
	w.Line("if month == 0 || month > 12 || day == 0 || day > jtd_days_in_month(year, month) { return false; }")
	w.Line("hour <= 23 && minute <= 59 && second <= 59")
	w.Dedent()
	w.Line("}")
	w.Blank()
	w.Line("fn jtd_days_in_month(year: u32, month: u32) -> u32 {")
	w.Indent()
	w.Line("match month {")
	w.Indent()
	w.Line("1 | 3 | 5 | 7 | 8 | 10 | 12 => 31,")
	w.Line("4 | 6 | 9 | 11 => 30,")
	w.Line("2 => if (year %% 4 == 0 && year %% 100 != 0) || year %% 400 == 0 { 29 } else { 28 },")
	w.Line("_ => 0,")
	w.Dedent()
	w.Line("}")
	w.Dedent()
	w.Line("}")
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
	return p.Render(emit.Quote, func(a, b string) string {
		return "&format!(\"{}{}\", " + a + ", " + b + ")"
	})
}

func (c *genCtx) pushError(ip, sp pathctx.Path) {
	c.w.Line(
		"errors.push(ValidationError { instance_path: %s.to_string(), schema_path: %s.to_string() });",
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
		c.w.Line("if !%s.is_null() {", value)
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
	case ast.Ref:
		c.w.Line("%s(%s, errors, %s, %s);", emit.DefFuncName(n.Name), value, renderPath(ip), renderPath(sp))
	case ast.Type:
		c.w.Line("if !(%s) {", typeExpr(n.Keyword, value))
		c.w.Indent()
		c.pushError(ip, sp.AppendLiteral("type"))
		c.w.Dedent()
		c.w.Line("}")
	case ast.Enum:
		c.w.Line("if !(%s) {", enumGuard(value, n.Values))
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
	return value + ".as_str().map(|s| " + set + ".contains(&s)).unwrap_or(false)"
}

func (c *genCtx) emitElements(n ast.Elements, value string, ip, sp pathctx.Path) {
	c.w.Line("match %s.as_array() {", value)
	c.w.Indent()
	c.w.Line("None => {")
	c.w.Indent()
	c.pushError(ip, sp.AppendLiteral("elements"))
	c.w.Dedent()
	c.w.Line("}")
	c.w.Line("Some(arr) => {")
	c.w.Indent()
	idx := c.ids.Index()
	elVar := "el" + idx
	c.w.Line("for (%s, %s) in arr.iter().enumerate() {", idx, elVar)
	c.w.Indent()
	c.emit(n.Inner, elVar, ip.AppendVar(idx), sp.AppendLiteral("elements"))
	c.w.Dedent()
	c.w.Line("}")
	c.w.Dedent()
	c.w.Line("}")
	c.w.Dedent()
	c.w.Line("}")
}

func (c *genCtx) emitValues(n ast.Values, value string, ip, sp pathctx.Path) {
	c.w.Line("match %s.as_object() {", value)
	c.w.Indent()
	c.w.Line("None => {")
	c.w.Indent()
	c.pushError(ip, sp.AppendLiteral("values"))
	c.w.Dedent()
	c.w.Line("}")
	c.w.Line("Some(obj) => {")
	c.w.Indent()
	key := c.ids.Key()
	c.w.Line("for (%s, v) in obj.iter() {", key)
	c.w.Indent()
	c.emit(n.Inner, "v", ip.AppendVar(key), sp.AppendLiteral("values"))
	c.w.Dedent()
	c.w.Line("}")
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
	c.w.Line("match %s.as_object() {", value)
	c.w.Indent()
	c.w.Line("None => {")
	c.w.Indent()
	c.pushError(ip, sp.AppendLiteral(guard))
	c.w.Dedent()
	c.w.Line("}")
	c.w.Line("Some(obj) => {")
	c.w.Indent()

	for _, name := range p.RequiredNames {
		key := emit.Quote(name)
		c.w.Line("match obj.get(%s) {", key)
		c.w.Indent()
		c.w.Line("None => {")
		c.w.Indent()
		c.pushError(ip, sp.AppendLiteral("properties/"+name))
		c.w.Dedent()
		c.w.Line("}")
		c.w.Line("Some(v) => {")
		c.w.Indent()
		c.emit(p.Required[name], "v", ip.AppendLiteral(name), sp.AppendLiteral("properties/"+name))
		c.w.Dedent()
		c.w.Line("}")
		c.w.Dedent()
		c.w.Line("}")
	}
	for _, name := range p.OptionalNames {
		key := emit.Quote(name)
		c.w.Line("if let Some(v) = obj.get(%s) {", key)
		c.w.Indent()
		c.emit(p.Optional[name], "v", ip.AppendLiteral(name), sp.AppendLiteral("optionalProperties/"+name))
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
		c.w.Line("for %s in obj.keys() {", key)
		c.w.Indent()
		cond := "!" + knownSet + ".contains(&" + key + ".as_str())"
		if exemptTag != "" {
			cond = key + ".as_str() != " + emit.Quote(exemptTag) + " && " + cond
		}
		c.w.Line("if %s {", cond)
		c.w.Indent()
		c.pushError(ip.AppendVar(key), pathctx.Path{})
		c.w.Dedent()
		c.w.Line("}")
		c.w.Dedent()
		c.w.Line("}")
	}

	c.w.Dedent()
	c.w.Line("}")
	c.w.Dedent()
	c.w.Line("}")
}

func (c *genCtx) emitDiscrim(d *ast.Discrim, value string, ip, sp pathctx.Path) {
	tagKey := emit.Quote(d.Tag)
	mappingLits := make([]string, len(d.MappingNames))
	for i, n := range d.MappingNames {
		mappingLits[i] = emit.Quote(n)
	}
	mappingSet := "[" + strings.Join(mappingLits, ", ") + "]"

	c.w.Line("if !%s.is_object() {", value)
	c.w.Indent()
	c.pushError(ip, sp.AppendLiteral("discriminator"))
	c.w.Dedent()
	c.w.Line("} else {")
	c.w.Indent()
	c.w.Line("let obj = %s.as_object().unwrap();", value)
	c.w.Line("match obj.get(%s) {", tagKey)
	c.w.Indent()
	c.w.Line("None => {")
	c.w.Indent()
	c.pushError(ip, sp.AppendLiteral("discriminator"))
	c.w.Dedent()
	c.w.Line("}")
	c.w.Line("Some(tag_val) => {")
	c.w.Indent()
	c.w.Line("match tag_val.as_str() {")
	c.w.Indent()
	c.w.Line("None => {")
	c.w.Indent()
	c.pushError(ip.AppendLiteral(d.Tag), sp.AppendLiteral("discriminator"))
	c.w.Dedent()
	c.w.Line("}")
	c.w.Line("Some(tag) => {")
	c.w.Indent()
	c.w.Line("if !%s.contains(&tag) {", mappingSet)
	c.w.Indent()
	c.pushError(ip.AppendLiteral(d.Tag), sp.AppendLiteral("mapping"))
	c.w.Dedent()
	for _, name := range d.MappingNames {
		c.w.Line("} else if tag == %s {", emit.Quote(name))
		c.w.Indent()
		c.emit(d.Mapping[name], value, ip, sp.AppendLiteral("mapping/"+name))
		c.w.Dedent()
	}
	c.w.Line("}")
	c.w.Dedent()
	c.w.Line("}")
	c.w.Dedent()
	c.w.Line("}")
	c.w.Dedent()
	c.w.Line("}")
	c.w.Dedent()
	c.w.Line("}")
	c.w.Dedent()
	c.w.Line("}")
}
