package compiler

import "fmt"

// Kind names one of the ways a schema can fail to compile. The set is
// closed; the i18n translator keys its localized messages off these names,
// so a new member here needs a matching dictionary entry.
type Kind string

const (
	NotObject                         Kind = "NotObject"
	MultipleForms                     Kind = "MultipleForms"
	UnknownTypeKeyword                Kind = "UnknownTypeKeyword"
	EnumNotArray                      Kind = "EnumNotArray"
	EnumEmpty                         Kind = "EnumEmpty"
	EnumDuplicate                     Kind = "EnumDuplicate"
	EnumMemberNotString               Kind = "EnumMemberNotString"
	RefUnresolved                     Kind = "RefUnresolved"
	DefinitionsOnNonRoot              Kind = "DefinitionsOnNonRoot"
	PropertiesOverlap                 Kind = "PropertiesOverlap"
	DiscriminatorMappingNotProperties Kind = "DiscriminatorMappingNotProperties"
	DiscriminatorTagCollision         Kind = "DiscriminatorTagCollision"
	NullableNotBoolean                Kind = "NullableNotBoolean"
	UnknownKeyword                    Kind = "UnknownKeyword"
)

// SchemaError reports why a schema failed to compile: the Kind and the JSON
// Pointer (RFC 6901) into the source schema where the problem was found.
type SchemaError struct {
	Kind    Kind
	Pointer string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pointer, e.Kind)
}

func fail(kind Kind, pointer string) error {
	return &SchemaError{Kind: kind, Pointer: pointer}
}
