//go:build !gojson

package gojson

import "github.com/jtdgen/jtdgen/internal/jsonsrc"

// Driver returns jsonsrc's own encoding/json driver when built without the
// gojson tag, so callers can unconditionally wire gojson.Driver() without a
// second build-tagged call site.
func Driver() jsonsrc.Driver { return jsonsrc.CurrentDriver() }
