package jtdgen

import (
	"fmt"

	"github.com/jtdgen/jtdgen/internal/emit/js"
	"github.com/jtdgen/jtdgen/internal/emit/lua"
	"github.com/jtdgen/jtdgen/internal/emit/python"
	"github.com/jtdgen/jtdgen/internal/emit/rust"
)

// Emit renders a compiled schema as standalone validator source in target.
// This is the only place that knows about every backend package; adding a
// target means adding one case here, per the spec's pluggable-emitter
// design (compiler and AST stay untouched).
func Emit(cs *CompiledSchema, target Target) (string, error) {
	switch target {
	case JavaScript:
		return js.Generate(cs)
	case Rust:
		return rust.Generate(cs)
	case Lua:
		return lua.Generate(cs)
	case Python:
		return python.Generate(cs)
	default:
		return "", fmt.Errorf("unknown target %q", target)
	}
}

// Generate compiles schemaJSON and renders it as standalone validator
// source in target, in one call.
func Generate(schemaJSON []byte, target Target) (string, error) {
	cs, err := Compile(schemaJSON)
	if err != nil {
		return "", err
	}
	return Emit(cs, target)
}

// DefinitionNames returns cs's top-level definition names in source order,
// for the CLI's --list-defs debug flag.
func DefinitionNames(cs *CompiledSchema) []string {
	return append([]string(nil), cs.DefinitionNames...)
}
