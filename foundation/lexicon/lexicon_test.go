package lexicon_test

import (
	"testing"

	"github.com/persona-ai/goPersonaCoach/foundation/lexicon"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		text string
		want lexicon.Language
	}{
		{"hello there everyone", lexicon.English},
		{"मैं आज बहुत खुश हूँ", lexicon.Hindi},
		{"నేను బాగున్నాను", lexicon.Telugu},
		{"mixed with हिंदी script", lexicon.Hindi},
		{"", lexicon.English},
	}

	for _, tt := range tests {
		if got := lexicon.Detect(tt.text); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestIsFiller(t *testing.T) {
	if !lexicon.IsFiller(lexicon.English, "um") {
		t.Error("um should be a filler")
	}
	if !lexicon.IsFiller(lexicon.Hindi, "मतलब") {
		t.Error("मतलब should be a Hindi filler")
	}
	if lexicon.IsFiller(lexicon.English, "proceed") {
		t.Error("proceed should not be a filler")
	}
}

func TestSentimentLookups(t *testing.T) {
	if lexicon.PolarityOf("good") <= 0 {
		t.Error("good should be positive")
	}
	if lexicon.PolarityOf("terrible") >= 0 {
		t.Error("terrible should be negative")
	}
	if lexicon.PolarityOf("table") != 0 {
		t.Error("table should be neutral")
	}

	if m, ok := lexicon.ModifierOf("very"); !ok || m <= 1 {
		t.Errorf("very should intensify, got %v %v", m, ok)
	}
	if !lexicon.IsNegation("not") {
		t.Error("not should negate")
	}
	if lexicon.IsNegation("very") {
		t.Error("very should not negate")
	}
}

func TestIsStopword(t *testing.T) {
	if !lexicon.IsStopword(lexicon.English, "the") {
		t.Error("the should be a stopword")
	}
	if lexicon.IsStopword(lexicon.English, "growth") {
		t.Error("growth should not be a stopword")
	}
}
