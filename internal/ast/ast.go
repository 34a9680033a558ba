// Package ast defines the immutable intermediate representation produced by
// the schema compiler and consumed by the node emitters. Nodes carry no
// behavior; they are pure data, built once and discarded after emission.
package ast

// Kind identifies which of the nine compiled schema forms a Node carries.
type Kind int

const (
	KindEmpty Kind = iota
	KindRef
	KindType
	KindEnum
	KindElements
	KindProperties
	KindValues
	KindDiscriminator
	KindNullable
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "Empty"
	case KindRef:
		return "Ref"
	case KindType:
		return "Type"
	case KindEnum:
		return "Enum"
	case KindElements:
		return "Elements"
	case KindProperties:
		return "Properties"
	case KindValues:
		return "Values"
	case KindDiscriminator:
		return "Discriminator"
	case KindNullable:
		return "Nullable"
	default:
		return "Unknown"
	}
}

// Node is the root interface implemented by all nine AST variants.
type Node interface {
	Kind() Kind
}

// TypeKeyword is the closed set of JTD primitive type keywords (RFC 8927
// Section 2.2.3).
type TypeKeyword string

const (
	Boolean   TypeKeyword = "boolean"
	String    TypeKeyword = "string"
	Timestamp TypeKeyword = "timestamp"
	Int8      TypeKeyword = "int8"
	Uint8     TypeKeyword = "uint8"
	Int16     TypeKeyword = "int16"
	Uint16    TypeKeyword = "uint16"
	Int32     TypeKeyword = "int32"
	Uint32    TypeKeyword = "uint32"
	Float32   TypeKeyword = "float32"
	Float64   TypeKeyword = "float64"
)

// TypeKeywords lists the 11 keywords in RFC 8927 order, for callers that need
// a stable enumeration (e.g. table-driven tests).
var TypeKeywords = []TypeKeyword{
	Boolean, String, Timestamp,
	Int8, Uint8, Int16, Uint16, Int32, Uint32,
	Float32, Float64,
}

// IsValidTypeKeyword reports whether s names one of the 11 type keywords.
func IsValidTypeKeyword(s string) (TypeKeyword, bool) {
	for _, k := range TypeKeywords {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Empty matches any JSON value. The schema `{}` compiles to Empty.
type Empty struct{}

func (Empty) Kind() Kind { return KindEmpty }

// Ref is a logical reference to a named definition, resolved against the
// compile-time definitions map. It never carries a back-pointer to the
// resolved Node; resolution happens by name lookup at emit time and by
// function call at validation time.
type Ref struct {
	Name string
}

func (Ref) Kind() Kind { return KindRef }

// Type is a leaf type check against one of the 12 type keywords.
type Type struct {
	Keyword TypeKeyword
}

func (Type) Kind() Kind { return KindType }

// Enum requires the value to be a string member of Values. Values is
// non-empty, insertion-ordered, and contains no duplicates (enforced by the
// compiler, not by this type).
type Enum struct {
	Values []string
}

func (Enum) Kind() Kind { return KindEnum }

// Elements requires the value to be an array whose every element matches
// Inner.
type Elements struct {
	Inner Node
}

func (Elements) Kind() Kind { return KindElements }

// Field is one named entry of a Properties node. Order matters: emission
// walks RequiredNames/OptionalNames in source order, per spec.
type Field struct {
	Name   string
	Schema Node
}

// Properties is the object form. RequiredNames and OptionalNames preserve
// the source object's key order; Required and Optional index the same
// entries by name for O(1) lookup (e.g. when checking disjointness, or when
// a Discriminator variant must assert the tag field is absent from both).
type Properties struct {
	RequiredNames []string
	Required      map[string]Node
	OptionalNames []string
	Optional      map[string]Node
	Additional    bool
}

func (Properties) Kind() Kind { return KindProperties }

// HasProperty reports whether name appears in either the required or
// optional set.
func (p *Properties) HasProperty(name string) bool {
	if _, ok := p.Required[name]; ok {
		return true
	}
	_, ok := p.Optional[name]
	return ok
}

// Values requires the value to be an object whose every property value
// matches Inner.
type Values struct {
	Inner Node
}

func (Values) Kind() Kind { return KindValues }

// Discrim is a tagged union: Tag names the discriminating field, and
// MappingNames/Mapping hold, in source order, the Properties schema that
// applies for each tag value.
type Discrim struct {
	Tag          string
	MappingNames []string
	Mapping      map[string]*Properties
}

func (Discrim) Kind() Kind { return KindDiscriminator }

// Nullable wraps another Node; null passes validation outright, any other
// value is checked against Inner. RFC 8927 forbids stacking nullable, so
// Inner is never itself a Nullable.
type Nullable struct {
	Inner Node
}

func (Nullable) Kind() Kind { return KindNullable }

// IsLeaf reports whether n should always be inlined into its parent's
// emission rather than becoming its own function (component 5's "container
// vs leaf inlining" rule).
func IsLeaf(n Node) bool {
	switch n.Kind() {
	case KindEmpty, KindType, KindEnum:
		return true
	default:
		return false
	}
}

// CompiledSchema is the result of a successful compilation: the root node,
// plus the flat, root-only definitions map in source insertion order.
type CompiledSchema struct {
	DefinitionNames []string
	Definitions     map[string]Node
	Root            Node
}
