// Command jtdgen is the jtdgen CLI: it reads a JTD schema file, compiles
// it, and writes standalone validator source for the chosen target to
// standard output (or -o).
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	jtdgen "github.com/jtdgen/jtdgen"
	"github.com/jtdgen/jtdgen/internal/config"
	"github.com/jtdgen/jtdgen/internal/jsonsrc"
	"github.com/jtdgen/jtdgen/internal/jsonsrc/gojson"
)

func main() {
	jsonsrc.SetDriver(gojson.Driver())

	fs := flag.NewFlagSet("jtdgen", flag.ExitOnError)
	var targetFlag string
	var out string
	var listDefs bool
	fs.StringVar(&targetFlag, "target", "", "emission target: js, rust, lua, python (synonym: py)")
	fs.StringVar(&out, "o", "", "output file (default: standard output)")
	fs.BoolVar(&listDefs, "list-defs", false, "print the compiled schema's definition names instead of generating code")
	fs.Usage = usage
	_ = fs.Parse(os.Args[1:])

	args := fs.Args()
	if len(args) != 1 {
		fs.Usage()
		os.Exit(2)
	}
	schemaPath := args[0]

	cfg, err := config.Load("jtdgen.yaml")
	if err != nil {
		fatalf("reading jtdgen.yaml: %v", err)
	}
	if targetFlag == "" {
		targetFlag = cfg.Target
	}
	if out == "" {
		out = cfg.Out
	}

	data, err := os.ReadFile(schemaPath)
	if err != nil {
		fatalf("reading %s: %v", schemaPath, err)
	}

	warnDuplicateKeys(schemaPath, data)

	cs, err := jtdgen.Compile(data)
	if err != nil {
		fmt.Fprintln(os.Stderr, jtdgen.Diagnostic(err))
		os.Exit(1)
	}

	if listDefs {
		for _, name := range jtdgen.DefinitionNames(cs) {
			fmt.Println(name)
		}
		return
	}

	if targetFlag == "" {
		fatalf("no --target given and jtdgen.yaml supplies none")
	}
	target, err := jtdgen.ParseTarget(targetFlag)
	if err != nil {
		fatalf("%v", err)
	}

	code, err := jtdgen.Emit(cs, target)
	if err != nil {
		fatalf("generate: %v", err)
	}

	if out == "" {
		fmt.Print(code)
		return
	}
	if err := os.WriteFile(out, []byte(code), 0o644); err != nil {
		fatalf("writing %s: %v", out, err)
	}
}

// warnDuplicateKeys pre-scans the raw schema source for repeated object
// keys. encoding/json silently keeps the last occurrence; a typo'd schema
// (two "properties" members, two definitions under the same name) would
// otherwise compile into something the author never wrote.
func warnDuplicateKeys(schemaPath string, data []byte) {
	dups, err := jsonsrc.DetectDuplicateKeys(jsonsrc.CurrentDriver().NewBytes(data))
	if err != nil {
		return
	}
	for _, d := range dups {
		fmt.Fprintf(os.Stderr, "%s: warning: duplicate key %q at %s (byte offset %d)\n", schemaPath, d.Key, d.Pointer, d.Offset)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, strings.TrimSpace(`
jtdgen - compile a JTD schema to a standalone validator

Usage:
  jtdgen --target <js|rust|lua|python> [-o out-file] [--list-defs] <schema.json>

Flags:
  --target      emission target (synonym: py for python)
  -o            output file (default: standard output)
  --list-defs   print definition names instead of generating code
`))
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
