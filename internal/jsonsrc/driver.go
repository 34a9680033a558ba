package jsonsrc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
)

// Driver converts raw input into a TokenSource. The default driver wraps
// encoding/json; SetDriver lets a build-tagged alternative (e.g. goccy/go-json)
// take over, the same way the teacher's own JSON front end is pluggable.
type Driver interface {
	NewReader(r io.Reader) TokenSource
	NewBytes(b []byte) TokenSource
	Name() string
}

var (
	mu      sync.RWMutex
	current Driver = defaultDriver{}
)

// SetDriver replaces the active driver. A nil value is ignored.
func SetDriver(d Driver) {
	if d == nil {
		return
	}
	mu.Lock()
	current = d
	mu.Unlock()
}

// CurrentDriver returns the active driver.
func CurrentDriver() Driver {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// DecodeBytes decodes b into an `any` tree using the active driver. A
// malformed-JSON failure is wrapped in a *DecodeError carrying the line and
// column translated from the decoder's byte offset, the same way
// DetectDuplicateKeys surfaces a Token.Offset for its own warnings.
func DecodeBytes(b []byte) (any, error) {
	v, err := DecodeAny(CurrentDriver().NewBytes(b))
	if err != nil {
		return nil, wrapDecodeError(b, err)
	}
	return v, nil
}

// DecodeReader decodes r into an `any` tree using the active driver. It
// buffers r fully so a malformed-JSON failure can still be translated to a
// line/column pair the way DecodeBytes does; schema and compliance-corpus
// files are small enough that this costs nothing in practice.
func DecodeReader(r io.Reader) (any, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return DecodeBytes(b)
}

// DecodeError reports a malformed JSON source: the byte offset the decoder
// failed at, translated to a 1-based line/column pair.
type DecodeError struct {
	Offset int64
	Line   int
	Column int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// wrapDecodeError attaches a line/column to err when the driver's
// underlying decoder reports a byte offset for it. Drivers that don't
// (e.g. io.EOF, or the goccy/go-json driver's own error types) pass err
// through unchanged rather than guess at a location.
func wrapDecodeError(src []byte, err error) error {
	offset, ok := decodeErrorOffset(err)
	if !ok {
		return err
	}
	line, col := lineColumn(src, offset)
	return &DecodeError{Offset: offset, Line: line, Column: col, Err: err}
}

func decodeErrorOffset(err error) (int64, bool) {
	var se *json.SyntaxError
	if errors.As(err, &se) {
		return se.Offset, true
	}
	var te *json.UnmarshalTypeError
	if errors.As(err, &te) {
		return te.Offset, true
	}
	return 0, false
}

// lineColumn walks src up to offset counting newlines, the same O(offset)
// translation the duplicate-key scanner's Token.Offset would need if it
// ever had to report a human-facing location instead of a raw byte count.
func lineColumn(src []byte, offset int64) (line, col int) {
	line, col = 1, 1
	n := int(offset)
	if n > len(src) {
		n = len(src)
	}
	for i := 0; i < n; i++ {
		if src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

type defaultDriver struct{}

func (defaultDriver) NewReader(r io.Reader) TokenSource { return newStdSource(r) }
func (defaultDriver) NewBytes(b []byte) TokenSource     { return newStdSource(bytes.NewReader(b)) }
func (defaultDriver) Name() string                      { return "encoding/json" }
