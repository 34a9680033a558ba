package rust

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
	if strings.Contains(out, "errors.push") {
		t.Fatalf("empty schema must never push an error, got:\n%s", out)
	}
	if !strings.Contains(out, "pub fn validate(instance: &Value) -> Vec<ValidationError>") {
		t.Fatalf("missing entry point:\n%s", out)
	}
}

func TestGenerateMinimalityOmitsTimestampHelper(t *testing.T) {
	out := compileSchema(t, `{"type":"string"}`)
	if strings.Contains(out, "jtd_is_timestamp") {
		t.Fatalf("timestamp helper should be omitted when the schema never uses timestamp:\n%s", out)
	}
	if !strings.Contains(out, "instance.is_string()") {
		t.Fatalf("missing string type check:\n%s", out)
	}
}

func TestGenerateTimestampIncludesHelper(t *testing.T) {
	out := compileSchema(t, `{"type":"timestamp"}`)
	if !strings.Contains(out, "fn jtd_is_timestamp(s: &str) -> bool {") {
		t.Fatalf("timestamp helper must be emitted when the schema uses timestamp:\n%s", out)
	}
	if !strings.Contains(out, "jtd_days_in_month") {
		t.Fatalf("missing calendar helper:\n%s", out)
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
		`obj.keys()`,
		`arr.iter().enumerate()`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestGenerateDiscriminatorExemptsTag(t *testing.T) {
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
		`obj.get("kind")`,
		`tag == "a"`,
		`tag == "b"`,
		`k.as_str() != "kind" &&`,
		"validate_anon0",
		"validate_anon1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
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

	if !strings.Contains(out, "fn validate_node(value: &Value") {
		t.Errorf("missing definition function:\n%s", out)
	}
	if !strings.Contains(out, "validate_node(instance, errors,") {
		t.Errorf("root should dispatch to the definition via ref:\n%s", out)
	}
	if !strings.Contains(out, "if !v.is_null() {") {
		t.Errorf("missing nullable guard on the recursive field:\n%s", out)
	}
}
