//go:build gojson

// Package gojson provides a jsonsrc.Driver backed by goccy/go-json, enabled
// by building with -tags gojson. It trades encoding/json's byte-offset
// tracking for go-json's faster decode loop; schemas are small enough that
// the offset is rarely needed once compilation succeeds, and compile errors
// still report a JSON Pointer rather than a byte offset.
package gojson

import (
	"bytes"
	"io"

	j "github.com/goccy/go-json"

	"github.com/jtdgen/jtdgen/internal/jsonsrc"
)

// Driver returns a jsonsrc.Driver backed by goccy/go-json.
func Driver() jsonsrc.Driver { return driver{} }

type driver struct{}

func (driver) NewReader(r io.Reader) jsonsrc.TokenSource { return newSource(r) }
func (driver) NewBytes(b []byte) jsonsrc.TokenSource     { return newSource(bytes.NewReader(b)) }
func (driver) Name() string                              { return "goccy/go-json" }

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
}

type source struct {
	dec   *j.Decoder
	stack []frame
}

func newSource(r io.Reader) *source {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	return &source{dec: dec}
}

func (s *source) top() *frame {
	if n := len(s.stack); n > 0 {
		return &s.stack[n-1]
	}
	return nil
}

func (s *source) afterValue() {
	if f := s.top(); f != nil && f.kind == kindObject {
		f.expectingKey = true
	}
}

func (s *source) NextToken() (jsonsrc.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		if err == io.EOF {
			return jsonsrc.Token{}, io.EOF
		}
		return jsonsrc.Token{}, err
	}

	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, frame{kind: kindObject, expectingKey: true})
			return jsonsrc.Token{Kind: jsonsrc.KindBeginObject, Offset: -1}, nil
		case '}':
			if n := len(s.stack); n > 0 {
				s.stack = s.stack[:n-1]
			}
			s.afterValue()
			return jsonsrc.Token{Kind: jsonsrc.KindEndObject, Offset: -1}, nil
		case '[':
			s.stack = append(s.stack, frame{kind: kindArray})
			return jsonsrc.Token{Kind: jsonsrc.KindBeginArray, Offset: -1}, nil
		case ']':
			if n := len(s.stack); n > 0 {
				s.stack = s.stack[:n-1]
			}
			s.afterValue()
			return jsonsrc.Token{Kind: jsonsrc.KindEndArray, Offset: -1}, nil
		}
	case string:
		if f := s.top(); f != nil && f.kind == kindObject && f.expectingKey {
			f.expectingKey = false
			return jsonsrc.Token{Kind: jsonsrc.KindKey, String: v, Offset: -1}, nil
		}
		s.afterValue()
		return jsonsrc.Token{Kind: jsonsrc.KindString, String: v, Offset: -1}, nil
	case bool:
		s.afterValue()
		return jsonsrc.Token{Kind: jsonsrc.KindBool, Bool: v, Offset: -1}, nil
	case j.Number:
		s.afterValue()
		return jsonsrc.Token{Kind: jsonsrc.KindNumber, Number: string(v), Offset: -1}, nil
	case nil:
		s.afterValue()
		return jsonsrc.Token{Kind: jsonsrc.KindNull, Offset: -1}, nil
	}
	s.afterValue()
	return jsonsrc.Token{Kind: jsonsrc.KindNull, Offset: -1}, nil
}

func (s *source) Location() int64 { return -1 }
