package lua

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
	if strings.Contains(out, "table.insert(errors") {
		t.Fatalf("empty schema must never push an error, got:\n%s", out)
	}
	if !strings.Contains(out, "M.validate = function(instance)") {
		t.Fatalf("missing entry point:\n%s", out)
	}
	if !strings.Contains(out, "return M") {
		t.Fatalf("missing module return:\n%s", out)
	}
}

func TestGenerateMinimalityOmitsContainerHelpers(t *testing.T) {
	out := compileSchema(t, `{"type":"string"}`)
	if strings.Contains(out, "jtd_is_array") || strings.Contains(out, "jtd_is_object") {
		t.Fatalf("container helpers should be omitted for a type-only schema:\n%s", out)
	}
	if !strings.Contains(out, `type(instance) == "string"`) {
		t.Fatalf("missing string type check:\n%s", out)
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
		"jtd_is_object",
		"jtd_is_array",
		"ipairs(",
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
		`instance["kind"]`,
		`== "a"`,
		`== "b"`,
		`k ~= "kind" and`,
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

	if !strings.Contains(out, "local function validate_node(value, errors, instance_path, schema_path)") {
		t.Errorf("missing definition function:\n%s", out)
	}
	if !strings.Contains(out, "validate_node(instance, errors,") {
		t.Errorf("root should dispatch to the definition via ref:\n%s", out)
	}
	if !strings.Contains(out, `if value["next"] ~= JTD_NULL then`) {
		t.Errorf("missing nullable guard on the recursive field:\n%s", out)
	}
}
