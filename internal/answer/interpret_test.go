package answer

import (
	"testing"

	"github.com/abhisek/drillbuddy/internal/problemgen"
)

func TestInterpret(t *testing.T) {
	numeric := &problemgen.Problem{Kind: problemgen.KindNumeric, Answer: "56"}
	numbers := &problemgen.Problem{Kind: problemgen.KindChoice, Answer: "41", Options: []string{"23", "41", "9"}}
	words := &problemgen.Problem{Kind: problemgen.KindChoice, Answer: "brave", Options: []string{"gigantic", "brave", "fragile", "ancient"}}
	bigger := &problemgen.Problem{Kind: problemgen.KindChoice, Answer: "9", Options: []string{"7", "9"}}
	spelling := &problemgen.Problem{Kind: problemgen.KindText, Answer: "cat"}

	tests := []struct {
		name       string
		p          *problemgen.Problem
		transcript string
		want       string
		ok         bool
	}{
		{"numeric words", numeric, "Fifty six.", "56", true},
		{"numeric digits", numeric, "56", "56", true},
		{"numeric lead-in", numeric, "the answer is twelve", "12", true},
		{"numeric garbage", numeric, "banana", "", false},
		{"numeric empty", numeric, "  ", "", false},

		{"choice by value words", numbers, "forty one", "41", true},
		{"choice by value digits", numbers, "23", "23", true},
		{"choice ordinal word", numbers, "third", "9", true},
		{"choice option number", numbers, "option two", "41", true},
		{"choice letter", numbers, "letter c", "9", true},
		{"choice bare letter", numbers, "b", "41", true},
		{"choice out of range", numbers, "option five", "", false},

		{"numeral options value", bigger, "nine", "9", true},
		{"numeral options bare number is not a position", bigger, "two", "", false},
		{"numeral options lead-in number", bigger, "the answer is two", "", false},
		{"numeral options one", bigger, "one", "", false},
		{"numeral options digit", bigger, "2", "", false},
		{"numeral options selector", bigger, "option two", "9", true},
		{"numeral options letter", bigger, "letter a", "7", true},
		{"numeral options ordinal", bigger, "second", "9", true},
		{"word bare number", words, "two", "brave", true},

		{"word exact", words, "Brave!", "brave", true},
		{"word spelled", words, "f r a g i l e", "fragile", true},
		{"word by position", words, "number four", "ancient", true},
		{"word miss", words, "purple", "", false},

		{"spelled letters", spelling, "C. A. T.", "cat", true},
		{"spelled hyphens", spelling, "c-a-t", "cat", true},
		{"whole word", spelling, "cat", "cat", true},
		{"phrase kept", spelling, "see a tee", "see a tee", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Interpret(tt.p, tt.transcript)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Interpret(%q) = (%q, %v), want (%q, %v)", tt.transcript, got, ok, tt.want, tt.ok)
			}
		})
	}
}
