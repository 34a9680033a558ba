package jtdgen

import (
	"errors"
	"fmt"

	"github.com/jtdgen/jtdgen/i18n"
	"github.com/jtdgen/jtdgen/internal/jsonsrc"
)

// Diagnostic renders err as a single human-readable line, pointer first, so
// the CLI can print it to stderr without knowing about SchemaError's shape.
// A malformed-JSON failure renders with the line/column jsonsrc.DecodeBytes
// translated its byte offset to. Any other error (I/O failures, and anything
// neither branch recognizes) renders as-is.
func Diagnostic(err error) string {
	var se *SchemaError
	if errors.As(err, &se) {
		return fmt.Sprintf("%s: %s: %s", se.Pointer, se.Kind, i18n.T(string(se.Kind), nil))
	}
	var de *jsonsrc.DecodeError
	if errors.As(err, &de) {
		return de.Error()
	}
	return err.Error()
}
