package emit

import "strings"

// Quote renders s as a double-quoted string literal safe to paste into
// generated JavaScript, Rust, Lua, or Python source — all four accept the
// same backslash escapes for the characters a schema's key and enum names
// can realistically contain.
func Quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
