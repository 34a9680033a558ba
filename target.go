package jtdgen

import "fmt"

// Target names one of the languages jtdgen can emit a validator in.
type Target string

const (
	JavaScript Target = "js"
	Rust       Target = "rust"
	Lua        Target = "lua"
	Python     Target = "python"
)

// targetSynonyms maps an accepted alias to its canonical Target, per the
// CLI's `--target py` shorthand for Python.
var targetSynonyms = map[string]Target{
	"py": Python,
}

var targetNames = map[Target]bool{
	JavaScript: true,
	Rust:       true,
	Lua:        true,
	Python:     true,
}

// ParseTarget normalizes s (a --target flag value or a config file's
// `target` field) to a Target, resolving accepted synonyms. It fails if s
// names no known target.
func ParseTarget(s string) (Target, error) {
	if canon, ok := targetSynonyms[s]; ok {
		return canon, nil
	}
	t := Target(s)
	if !targetNames[t] {
		return "", fmt.Errorf("unknown target %q (want one of js, rust, lua, python)", s)
	}
	return t, nil
}

func (t Target) String() string { return string(t) }
