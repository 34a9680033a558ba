package python

import (
	"strings"
	"testing"

	"github.com/jtdgen/jtdgen/internal/compiler"
	"github.com/jtdgen/jtdgen/internal/jsonsrc"
)

func compileSchema(t *testing.T, schema string) string {
	t.Helper()
	value, err := jsonsrc.DecodeBytes([]byte(schema))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	cs, err := compiler.Compile(value)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	out, err := Generate(cs)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	return out
}

func TestGenerateEmptySchemaNeverPushesErrors(t *testing.T) {
	out := compileSchema(t, `{}`)
	if strings.Contains(out, "errors.append") {
		t.Fatalf("empty schema must never push an error, got:\n%s", out)
	}
	if !strings.Contains(out, "def validate(instance):") {
		t.Fatalf("missing entry point:\n%s", out)
	}
}

func TestGenerateMinimalityStringOnly(t *testing.T) {
	out := compileSchema(t, `{"type":"string"}`)
	if strings.Count(out, "errors.append") != 1 {
		t.Fatalf("a bare string schema should have exactly one error site, got:\n%s", out)
	}
	if !strings.Contains(out, "isinstance(instance, str)") {
		t.Fatalf("missing string type check:\n%s", out)
	}
	if strings.Contains(out, "import math") || strings.Contains(out, "import re") {
		t.Fatalf("minimality violated, unrelated helper imports present:\n%s", out)
	}
}

func TestGenerateWorkedExample(t *testing.T) {
	schema := `{
		"properties": {
			"name": {"type": "string"},
			"age": {"type": "uint8"},
			"tags": {"elements": {"type": "string"}}
		},
		"optionalProperties": {
			"email": {"type": "string"}
		}
	}`
	out := compileSchema(t, schema)

	for _, want := range []string{
		`"/properties/name"`,
		`"/properties/age"`,
		`"/properties/age/type"`,
		`"/properties/tags/elements/type"`,
		`/optionalProperties/email`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing schema path literal %s in:\n%s", want, out)
		}
	}
	// additionalProperties defaults to false: an unknown-key rejection loop
	// must exist with an empty-string schemaPath.
	if !strings.Contains(out, `errors.append({"instancePath": "/" + k, "schemaPath": ""})`) {
		t.Errorf("missing unknown-key rejection with empty schemaPath:\n%s", out)
	}
}

func TestGenerateDiscriminator(t *testing.T) {
	schema := `{
		"discriminator": "kind",
		"mapping": {
			"a": {"properties": {"x": {"type": "string"}}},
			"b": {"properties": {"y": {"type": "uint8"}}}
		}
	}`
	out := compileSchema(t, schema)

	for _, want := range []string{
		`"/discriminator"`,
		`"/mapping"`,
		`instance["kind"]`,
		`== "a"`,
		`== "b"`,
		"validate_anon0",
		"validate_anon1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	// the tag field must be exempt from the mapping variants' unknown-key
	// rejection loop.
	if !strings.Contains(out, `k != "kind" and`) {
		t.Errorf("missing discriminator tag exemption in:\n%s", out)
	}
}

func TestGenerateDiscriminatorWithEmptyMappingStaysValidSyntax(t *testing.T) {
	schema := `{"discriminator": "kind", "mapping": {}}`
	out := compileSchema(t, schema)

	if strings.Contains(out, "else:") {
		t.Errorf("an empty mapping has nothing left to dispatch on, no else clause expected:\n%s", out)
	}
}

func TestGenerateEmptyPropertiesWithAdditionalStaysValidSyntax(t *testing.T) {
	schema := `{"properties": {}, "additionalProperties": true}`
	out := compileSchema(t, schema)

	if !strings.Contains(out, "else:\n        pass") {
		t.Errorf("an empty properties object with additionalProperties true must emit pass in the else block:\n%s", out)
	}
}

func TestGenerateRecursiveLinkedList(t *testing.T) {
	schema := `{
		"definitions": {
			"node": {
				"properties": {
					"next": {"ref": "node", "nullable": true}
				}
			}
		},
		"ref": "node"
	}`
	out := compileSchema(t, schema)

	if !strings.Contains(out, "def validate_node(value, errors, instance_path, schema_path):") {
		t.Errorf("missing definition function:\n%s", out)
	}
	if !strings.Contains(out, "validate_node(instance, errors,") {
		t.Errorf("root should dispatch straight to the definition via ref:\n%s", out)
	}
	if !strings.Contains(out, `if value["next"] is not None:`) {
		t.Errorf("missing nullable guard on the recursive field:\n%s", out)
	}
}

func TestGenerateNullableWrapsInnerUnchanged(t *testing.T) {
	plain := compileSchema(t, `{"type":"uint8"}`)
	nullable := compileSchema(t, `{"type":"uint8","nullable":true}`)

	if !strings.Contains(nullable, "instance is not None") {
		t.Errorf("nullable schema missing null guard:\n%s", nullable)
	}
	plainCheck := plainChecks(plain)
	if !strings.Contains(nullable, plainCheck) {
		t.Errorf("nullable schema should reuse the exact same inner check %q, got:\n%s", plainCheck, nullable)
	}
}

func plainChecks(generated string) string {
	const marker = "if not ("
	i := strings.Index(generated, marker)
	j := strings.Index(generated[i:], "):")
	return generated[i : i+j+len("):")]
}

func TestGenerateMinimalityOmitsTimestampHelper(t *testing.T) {
	out := compileSchema(t, `{"type":"string"}`)
	if strings.Contains(out, "_jtd_is_timestamp") {
		t.Fatalf("timestamp helper should be omitted when no timestamp keyword is used:\n%s", out)
	}
}

func TestGenerateTimestampIncludesHelper(t *testing.T) {
	out := compileSchema(t, `{"type":"timestamp"}`)
	if !strings.Contains(out, "def _jtd_is_timestamp(s):") {
		t.Fatalf("timestamp helper should be emitted:\n%s", out)
	}
	if !strings.Contains(out, "import re") {
		t.Fatalf("timestamp helper needs re imported:\n%s", out)
	}
}
