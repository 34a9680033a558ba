// Package config loads the optional jtdgen.yaml project file that supplies
// default CLI flag values. It decodes through a yaml.Decoder over the raw
// bytes, like the teacher's kubeopenapi package, but reads only the first
// document and decodes it into the typed File struct.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the decoded shape of jtdgen.yaml. Both fields are optional; a
// zero value means "let the CLI's own defaults decide."
type File struct {
	Target string `yaml:"target"`
	Out    string `yaml:"out"`
}

// Load reads and decodes path. A missing file is not an error: it returns
// a zero File, so callers can unconditionally merge it with flag values.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return File{}, nil
		}
		return File{}, err
	}
	return Decode(data)
}

// Decode parses raw YAML bytes into a File. Only the first document is
// used; jtdgen.yaml is not a multi-document bundle like a CRD manifest.
func Decode(data []byte) (File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var f File
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return File{}, nil
		}
		return File{}, fmt.Errorf("config: %w", err)
	}
	return f, nil
}
