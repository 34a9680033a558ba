package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("UnknownTypeKeyword", nil); msg == "UnknownTypeKeyword" || msg == "" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("UnknownTypeKeyword", nil); msg == "unknown type keyword" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_UnknownCodeFallsBackToCode(t *testing.T) {
	if msg := T("NotARealKind", nil); msg != "NotARealKind" {
		t.Fatalf("unknown code should fall back to itself, got %q", msg)
	}
}
