package jsonsrc

import (
	"encoding/json"
	"io"
)

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
}

type stdSource struct {
	dec        *json.Decoder
	stack      []frame
	lastOffset int64
}

func newStdSource(r io.Reader) *stdSource {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &stdSource{dec: dec, lastOffset: -1}
}

func (s *stdSource) top() *frame {
	if n := len(s.stack); n > 0 {
		return &s.stack[n-1]
	}
	return nil
}

// afterValue marks that, if we are directly inside an object, the next
// string token is a key rather than a value.
func (s *stdSource) afterValue() {
	if f := s.top(); f != nil && f.kind == kindObject {
		f.expectingKey = true
	}
}

func (s *stdSource) NextToken() (Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		if err == io.EOF {
			return Token{}, io.EOF
		}
		return Token{}, err
	}
	s.lastOffset = s.dec.InputOffset()

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, frame{kind: kindObject, expectingKey: true})
			return Token{Kind: KindBeginObject, Offset: s.lastOffset}, nil
		case '}':
			if n := len(s.stack); n > 0 {
				s.stack = s.stack[:n-1]
			}
			s.afterValue()
			return Token{Kind: KindEndObject, Offset: s.lastOffset}, nil
		case '[':
			s.stack = append(s.stack, frame{kind: kindArray})
			return Token{Kind: KindBeginArray, Offset: s.lastOffset}, nil
		case ']':
			if n := len(s.stack); n > 0 {
				s.stack = s.stack[:n-1]
			}
			s.afterValue()
			return Token{Kind: KindEndArray, Offset: s.lastOffset}, nil
		}
	case string:
		if f := s.top(); f != nil && f.kind == kindObject && f.expectingKey {
			f.expectingKey = false
			return Token{Kind: KindKey, String: v, Offset: s.lastOffset}, nil
		}
		s.afterValue()
		return Token{Kind: KindString, String: v, Offset: s.lastOffset}, nil
	case bool:
		s.afterValue()
		return Token{Kind: KindBool, Bool: v, Offset: s.lastOffset}, nil
	case json.Number:
		s.afterValue()
		return Token{Kind: KindNumber, Number: string(v), Offset: s.lastOffset}, nil
	case nil:
		s.afterValue()
		return Token{Kind: KindNull, Offset: s.lastOffset}, nil
	}
	s.afterValue()
	return Token{Kind: KindNull, Offset: s.lastOffset}, nil
}

func (s *stdSource) Location() int64 { return s.lastOffset }
