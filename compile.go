package jtdgen

import (
	"github.com/jtdgen/jtdgen/internal/ast"
	"github.com/jtdgen/jtdgen/internal/compiler"
	"github.com/jtdgen/jtdgen/internal/jsonsrc"
)

// SchemaError reports why a schema failed to compile: the failure kind and
// the JSON Pointer into the source schema where it was found. It is a type
// alias for the compiler's own error type, so callers can type-assert
// either name against a returned error.
type SchemaError = compiler.SchemaError

// CompiledSchema is the resolved, validated AST produced by Compile, ready
// to hand to Emit for any Target.
type CompiledSchema = ast.CompiledSchema

// Compile decodes schemaJSON and compiles it to a CompiledSchema, or
// returns a *SchemaError describing the first structural problem found.
func Compile(schemaJSON []byte) (*CompiledSchema, error) {
	value, err := jsonsrc.DecodeBytes(schemaJSON)
	if err != nil {
		return nil, err
	}
	return compiler.Compile(value)
}
