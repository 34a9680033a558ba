// Package i18n renders a compiler.Kind as a human-readable diagnostic line,
// the same way the teacher renders Issue codes.
package i18n

// Translator retrieves localized messages for compiler.Kind names.
// data provides optional metadata to embed in the message (for example,
// "pointer" holds the JSON Pointer where the problem was found).
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "NotObject":
			return "スキーマはJSONオブジェクトである必要があります"
		case "MultipleForms":
			return "1つのスキーマに複数の形式キーワードを同時に使用できません"
		case "UnknownTypeKeyword":
			return "不明なtypeキーワードです"
		case "EnumNotArray":
			return "enumは配列である必要があります"
		case "EnumEmpty":
			return "enumは空であってはなりません"
		case "EnumDuplicate":
			return "enumに重複する値があります"
		case "EnumMemberNotString":
			return "enumの要素は文字列である必要があります"
		case "RefUnresolved":
			return "refが定義名を解決できません"
		case "DefinitionsOnNonRoot":
			return "definitionsはルートスキーマにのみ置けます"
		case "PropertiesOverlap":
			return "同じキーをpropertiesとoptionalPropertiesの両方に置けません"
		case "DiscriminatorMappingNotProperties":
			return "discriminatorのmapping先はproperties形式のスキーマである必要があります"
		case "DiscriminatorTagCollision":
			return "discriminatorのタグ名がmapping先のプロパティ名と衝突しています"
		case "NullableNotBoolean":
			return "nullableは真偽値である必要があります"
		case "UnknownKeyword":
			return "不明なキーワードです"
		}
	default: // "en"
		switch code {
		case "NotObject":
			return "schema must be a JSON object"
		case "MultipleForms":
			return "schema combines more than one form keyword"
		case "UnknownTypeKeyword":
			return "unknown type keyword"
		case "EnumNotArray":
			return "enum must be an array"
		case "EnumEmpty":
			return "enum must not be empty"
		case "EnumDuplicate":
			return "enum contains a duplicate value"
		case "EnumMemberNotString":
			return "enum members must be strings"
		case "RefUnresolved":
			return "ref does not resolve to a definition"
		case "DefinitionsOnNonRoot":
			return "definitions is only valid on the root schema"
		case "PropertiesOverlap":
			return "a property name appears in both properties and optionalProperties"
		case "DiscriminatorMappingNotProperties":
			return "discriminator mapping entries must be properties-form schemas"
		case "DiscriminatorTagCollision":
			return "discriminator tag collides with a mapping variant's property name"
		case "NullableNotBoolean":
			return "nullable must be a boolean"
		case "UnknownKeyword":
			return "unknown schema keyword"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
