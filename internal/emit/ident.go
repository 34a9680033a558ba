package emit

import (
	"fmt"
	"strings"
)

// escapeMarker prefixes every escaped identifier. Any raw name that already
// happens to start with it is routed through the escaping path too, so the
// marker can never appear at the start of a name returned unescaped — that
// keeps the escaped and unescaped namespaces disjoint.
const escapeMarker = "jtd_esc_"

// DefFuncName returns the file-local function name for a definition, per
// the module composer's `validate_<defname>` convention.
func DefFuncName(defName string) string {
	return "validate_" + EscapeIdent(defName)
}

// EscapeIdent returns name unchanged if it is already a safe identifier in
// every target's syntax (ASCII letter or underscore, then ASCII
// alphanumerics or underscore) and does not start with the escape marker;
// otherwise it returns a deterministic, marker-prefixed escaped form in which
// every byte other than an ASCII letter or digit (underscore included) is
// written as "_" plus two hex digits, so distinct names never share an
// escaped form.
func EscapeIdent(name string) string {
	if isSafe(name) && !strings.HasPrefix(name, escapeMarker) {
		return name
	}
	var b strings.Builder
	b.WriteString(escapeMarker)
	for i := 0; i < len(name); i++ {
		c := name[i]
		if isIdentByte(c) && c != '_' {
			b.WriteByte(c)
		} else {
			fmt.Fprintf(&b, "_%02x", c)
		}
	}
	return b.String()
}

func isSafe(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if i == 0 && c >= '0' && c <= '9' {
			return false
		}
		if !isIdentByte(c) {
			return false
		}
	}
	return true
}

func isIdentByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
