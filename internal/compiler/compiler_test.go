package compiler

import (
	"testing"

	"github.com/jtdgen/jtdgen/internal/ast"
	"github.com/jtdgen/jtdgen/internal/jsonsrc"
)

func mustCompile(t *testing.T, schema string) *ast.CompiledSchema {
	t.Helper()
	v, err := jsonsrc.DecodeBytes([]byte(schema))
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	cs, err := Compile(v)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return cs
}

func mustFail(t *testing.T, schema string) *SchemaError {
	t.Helper()
	v, err := jsonsrc.DecodeBytes([]byte(schema))
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	_, err = Compile(v)
	if err == nil {
		t.Fatalf("Compile(%s): expected error, got none", schema)
	}
	se, ok := err.(*SchemaError)
	if !ok {
		t.Fatalf("Compile(%s): got %T, want *SchemaError", schema, err)
	}
	return se
}

func TestEmptySchema(t *testing.T) {
	cs := mustCompile(t, `{}`)
	if cs.Root.Kind() != ast.KindEmpty {
		t.Errorf("got %v, want Empty", cs.Root.Kind())
	}
}

func TestNullableOnlySchemaWrapsEmpty(t *testing.T) {
	cs := mustCompile(t, `{"nullable":true}`)
	n, ok := cs.Root.(ast.Nullable)
	if !ok {
		t.Fatalf("got %T, want ast.Nullable", cs.Root)
	}
	if n.Inner.Kind() != ast.KindEmpty {
		t.Errorf("inner = %v, want Empty", n.Inner.Kind())
	}
}

func TestTypeKeyword(t *testing.T) {
	cs := mustCompile(t, `{"type":"uint8"}`)
	ty, ok := cs.Root.(ast.Type)
	if !ok {
		t.Fatalf("got %T, want ast.Type", cs.Root)
	}
	if ty.Keyword != ast.Uint8 {
		t.Errorf("keyword = %v", ty.Keyword)
	}
}

func TestUnknownTypeKeyword(t *testing.T) {
	se := mustFail(t, `{"type":"int128"}`)
	if se.Kind != UnknownTypeKeyword || se.Pointer != "/type" {
		t.Errorf("got %+v", se)
	}
}

func TestMultipleForms(t *testing.T) {
	se := mustFail(t, `{"type":"string","enum":["a"]}`)
	if se.Kind != MultipleForms {
		t.Errorf("got %+v", se)
	}
}

func TestUnknownKeyword(t *testing.T) {
	se := mustFail(t, `{"bogus":1}`)
	if se.Kind != UnknownKeyword || se.Pointer != "/bogus" {
		t.Errorf("got %+v", se)
	}
}

func TestMetadataPassesThrough(t *testing.T) {
	cs := mustCompile(t, `{"type":"string","metadata":{"description":"x"}}`)
	if cs.Root.Kind() != ast.KindType {
		t.Errorf("got %v", cs.Root.Kind())
	}
}

func TestEnumErrors(t *testing.T) {
	cases := []struct {
		schema string
		kind   Kind
	}{
		{`{"enum":"nope"}`, EnumNotArray},
		{`{"enum":[]}`, EnumEmpty},
		{`{"enum":["a",1]}`, EnumMemberNotString},
		{`{"enum":["a","a"]}`, EnumDuplicate},
	}
	for _, c := range cases {
		se := mustFail(t, c.schema)
		if se.Kind != c.kind {
			t.Errorf("schema %s: got %v, want %v", c.schema, se.Kind, c.kind)
		}
	}
}

func TestEnumOrderPreserved(t *testing.T) {
	cs := mustCompile(t, `{"enum":["c","a","b"]}`)
	e := cs.Root.(ast.Enum)
	want := []string{"c", "a", "b"}
	for i, v := range want {
		if e.Values[i] != v {
			t.Errorf("Values[%d] = %q, want %q", i, e.Values[i], v)
		}
	}
}

func TestRefUnresolved(t *testing.T) {
	se := mustFail(t, `{"ref":"missing"}`)
	if se.Kind != RefUnresolved {
		t.Errorf("got %+v", se)
	}
}

func TestDefinitionsOnNonRoot(t *testing.T) {
	se := mustFail(t, `{"elements":{"definitions":{}}}`)
	if se.Kind != DefinitionsOnNonRoot {
		t.Errorf("got %+v", se)
	}
}

func TestPropertiesOverlap(t *testing.T) {
	se := mustFail(t, `{"properties":{"a":{}},"optionalProperties":{"a":{}}}`)
	if se.Kind != PropertiesOverlap {
		t.Errorf("got %+v", se)
	}
}

func TestPropertiesSchemaPathOrderPreserved(t *testing.T) {
	cs := mustCompile(t, `{"properties":{"b":{"type":"string"},"a":{"type":"uint8"}}}`)
	p := cs.Root.(*ast.Properties)
	want := []string{"b", "a"}
	for i, n := range want {
		if p.RequiredNames[i] != n {
			t.Errorf("RequiredNames[%d] = %q, want %q", i, p.RequiredNames[i], n)
		}
	}
}

func TestAdditionalPropertiesDefaultsFalse(t *testing.T) {
	cs := mustCompile(t, `{"properties":{"a":{}}}`)
	p := cs.Root.(*ast.Properties)
	if p.Additional {
		t.Error("Additional = true, want false (default)")
	}
}

func TestAdditionalPropertiesTrue(t *testing.T) {
	cs := mustCompile(t, `{"properties":{"a":{}},"additionalProperties":true}`)
	p := cs.Root.(*ast.Properties)
	if !p.Additional {
		t.Error("Additional = false, want true")
	}
}

func TestSchemaNotObject(t *testing.T) {
	se := mustFail(t, `"not an object"`)
	if se.Kind != NotObject || se.Pointer != "" {
		t.Errorf("got kind=%v pointer=%q", se.Kind, se.Pointer)
	}
}

func TestEmptyPropertiesWithAdditionalTrueIsLegal(t *testing.T) {
	cs := mustCompile(t, `{"properties":{},"additionalProperties":true}`)
	p := cs.Root.(*ast.Properties)
	if len(p.RequiredNames) != 0 || len(p.OptionalNames) != 0 || !p.Additional {
		t.Errorf("got %+v", p)
	}
}

func TestEmptyMappingIsLegal(t *testing.T) {
	cs := mustCompile(t, `{"discriminator":"kind","mapping":{}}`)
	d := cs.Root.(*ast.Discrim)
	if len(d.MappingNames) != 0 {
		t.Errorf("got %+v", d)
	}
}

func TestDiscriminatorHappyPath(t *testing.T) {
	cs := mustCompile(t, `{"discriminator":"kind","mapping":{"a":{"properties":{"x":{"type":"string"}}},"b":{"properties":{"y":{"type":"uint8"}}}}}`)
	d := cs.Root.(*ast.Discrim)
	if d.Tag != "kind" {
		t.Errorf("Tag = %q", d.Tag)
	}
	if len(d.MappingNames) != 2 || d.MappingNames[0] != "a" || d.MappingNames[1] != "b" {
		t.Errorf("MappingNames = %v", d.MappingNames)
	}
}

func TestDiscriminatorMappingNotProperties(t *testing.T) {
	se := mustFail(t, `{"discriminator":"kind","mapping":{"a":{"type":"string"}}}`)
	if se.Kind != DiscriminatorMappingNotProperties {
		t.Errorf("got %+v", se)
	}
}

func TestDiscriminatorTagCollision(t *testing.T) {
	se := mustFail(t, `{"discriminator":"kind","mapping":{"a":{"properties":{"kind":{"type":"string"}}}}}`)
	if se.Kind != DiscriminatorTagCollision {
		t.Errorf("got %+v", se)
	}
}

func TestNullableNotBoolean(t *testing.T) {
	se := mustFail(t, `{"type":"string","nullable":"yes"}`)
	if se.Kind != NullableNotBoolean {
		t.Errorf("got %+v", se)
	}
}

func TestRecursiveLinkedList(t *testing.T) {
	cs := mustCompile(t, `{"definitions":{"node":{"properties":{"next":{"ref":"node","nullable":true}}}},"ref":"node"}`)
	if len(cs.DefinitionNames) != 1 || cs.DefinitionNames[0] != "node" {
		t.Fatalf("DefinitionNames = %v", cs.DefinitionNames)
	}
	ref, ok := cs.Root.(ast.Ref)
	if !ok || ref.Name != "node" {
		t.Fatalf("Root = %#v", cs.Root)
	}
	node := cs.Definitions["node"].(*ast.Properties)
	next := node.Required["next"].(ast.Nullable)
	inner := next.Inner.(ast.Ref)
	if inner.Name != "node" {
		t.Errorf("self-ref name = %q", inner.Name)
	}
}

func TestWorkedExampleSchema(t *testing.T) {
	cs := mustCompile(t, `{"properties":{"name":{"type":"string"},"age":{"type":"uint8"},"tags":{"elements":{"type":"string"}}},"optionalProperties":{"email":{"type":"string"}}}`)
	p := cs.Root.(*ast.Properties)
	if len(p.RequiredNames) != 3 || len(p.OptionalNames) != 1 {
		t.Fatalf("got %d required, %d optional", len(p.RequiredNames), len(p.OptionalNames))
	}
	tags := p.Required["tags"].(ast.Elements)
	if tags.Inner.Kind() != ast.KindType {
		t.Errorf("tags.Inner = %v", tags.Inner.Kind())
	}
}
