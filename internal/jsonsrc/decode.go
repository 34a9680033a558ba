package jsonsrc

import "io"

// Object is a JSON object decoded with its key order preserved. The
// compiler depends on that order for `definitions`, `properties`,
// `optionalProperties`, and discriminator `mapping` — RFC 8927 schemas are
// re-emitted in source order, so a plain Go map (which does not remember
// insertion order) would make generator output nondeterministic across
// runs with the same schema text laid out differently by a formatter.
type Object struct {
	Keys []string
	Vals map[string]any
}

// Get returns the value for key and whether it was present.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.Vals[key]
	return v, ok
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// DecodeAny builds a value tree from src: JSON objects become *Object
// (order-preserving), arrays become []any, numbers become Number-backed
// strings (preserved verbatim; the compiler never does arithmetic on schema
// numbers, so no float conversion is needed there), strings/bools/nulls map
// directly.
func DecodeAny(src TokenSource) (any, error) {
	tok, err := src.NextToken()
	if err != nil {
		return nil, err
	}
	return decodeValue(src, tok)
}

func decodeValue(src TokenSource, tok Token) (any, error) {
	switch tok.Kind {
	case KindBeginObject:
		return decodeObject(src)
	case KindBeginArray:
		return decodeArray(src)
	case KindString:
		return tok.String, nil
	case KindNumber:
		return Number(tok.Number), nil
	case KindBool:
		return tok.Bool, nil
	case KindNull:
		return nil, nil
	default:
		return nil, io.ErrUnexpectedEOF
	}
}

func decodeObject(src TokenSource) (any, error) {
	obj := &Object{Vals: make(map[string]any)}
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndObject {
			return obj, nil
		}
		if tok.Kind != KindKey {
			return nil, io.ErrUnexpectedEOF
		}
		vt, err := src.NextToken()
		if err != nil {
			return nil, err
		}
		v, err := decodeValue(src, vt)
		if err != nil {
			return nil, err
		}
		if _, dup := obj.Vals[tok.String]; !dup {
			obj.Keys = append(obj.Keys, tok.String)
		}
		obj.Vals[tok.String] = v
	}
}

func decodeArray(src TokenSource) (any, error) {
	var arr []any
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndArray {
			return arr, nil
		}
		v, err := decodeValue(src, tok)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}

// Number is the verbatim text of a JSON number, preserved rather than
// parsed to float64 so that the integer-value semantics in the oracle
// (e.g. "3.0 is a valid int8") can be decided exactly when this tree
// represents a test-corpus instance rather than a schema.
type Number string

// Float64 parses n as a float64. Used only by the test-only reference
// interpreter (internal/refimpl), never by the compiler.
func (n Number) Float64() (float64, error) {
	return parseFloat(string(n))
}
