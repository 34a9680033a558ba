package jsonsrc

import (
	"errors"
	"io"
	"strconv"
)

// DuplicateKey records one repeated object key found while pre-scanning a
// schema source, before it reaches the compiler.
type DuplicateKey struct {
	// Pointer is the RFC 6901 JSON Pointer of the object containing the
	// duplicate, with the repeated key appended.
	Pointer string
	Key     string
	// Offset is the byte offset just past the second (overwriting)
	// occurrence of the key, as reported by the driver (-1 when the driver
	// cannot report one).
	Offset int64
}

type dupContainer struct {
	pointer  string
	keys     map[string]bool // nil for arrays
	index    int             // next array index, unused for objects
	nextKey  string          // key read, awaiting its value's BeginObject/BeginArray
	haveKey  bool
}

// DetectDuplicateKeys re-walks src looking for objects with a repeated key.
// encoding/json silently keeps the last occurrence and drops the rest, which
// would let a typo'd schema (e.g. two "properties" members, or two
// definitions under the same name) compile into something the author never
// wrote. Callers can surface the result as a warning; the compiler itself
// still runs on the last-one-wins tree produced by DecodeAny.
func DetectDuplicateKeys(src TokenSource) ([]DuplicateKey, error) {
	var dups []DuplicateKey
	var stack []*dupContainer

	childPointer := func(c *dupContainer, segment string) string {
		return c.pointer + "/" + escapePointerSegment(segment)
	}

	consumeValueSlot := func() string {
		if len(stack) == 0 {
			return ""
		}
		c := stack[len(stack)-1]
		if c.keys != nil {
			if c.haveKey {
				c.haveKey = false
				return childPointer(c, c.nextKey)
			}
			return c.pointer
		}
		p := childPointer(c, strconv.Itoa(c.index))
		c.index++
		return p
	}

	for {
		tok, err := src.NextToken()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return dups, nil
			}
			return dups, err
		}
		switch tok.Kind {
		case KindBeginObject:
			stack = append(stack, &dupContainer{pointer: consumeValueSlot(), keys: make(map[string]bool)})
		case KindBeginArray:
			stack = append(stack, &dupContainer{pointer: consumeValueSlot()})
		case KindEndObject, KindEndArray:
			if n := len(stack); n > 0 {
				stack = stack[:n-1]
			}
		case KindKey:
			c := stack[len(stack)-1]
			if c.keys[tok.String] {
				dups = append(dups, DuplicateKey{
					Pointer: childPointer(c, tok.String),
					Key:     tok.String,
					Offset:  tok.Offset,
				})
			}
			c.keys[tok.String] = true
			c.nextKey = tok.String
			c.haveKey = true
		case KindString, KindNumber, KindBool, KindNull:
			consumeValueSlot()
		}
	}
}

func escapePointerSegment(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '~':
			out = append(out, '~', '0')
		case '/':
			out = append(out, '~', '1')
		default:
			out = append(out, s[i])
		}
	}
	return string(out)
}
