// Package jsonsrc reads a schema or compliance-corpus file into a generic
// JSON value tree ("parsed JSON value tree", per the core's contract) ahead
// of compilation. It is deliberately pluggable: the default driver wraps
// encoding/json, and a build-tagged alternative driver swaps in
// github.com/goccy/go-json for large inputs, without either the compiler or
// the CLI caring which one produced the tree.
package jsonsrc

// Kind identifies a single token's category.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token is one token from a streaming JSON decode, with the byte offset in
// the source just past the token (-1 when the underlying driver cannot
// report one).
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is the minimal interface a JSON driver must satisfy.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}
