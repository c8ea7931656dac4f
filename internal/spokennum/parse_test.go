package spokennum

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input  string
		want   int
		wantOK bool
	}{
		{"fifty six", 56, true},
		{"twenty three", 23, true},
		{"twenty-three", 23, true},
		{"one hundred", 100, true},
		{"zero", 0, true},
		{"0", 0, true},
		{"42", 42, true},
		{" 42. ", 42, true},
		{"1,000", 1000, true},
		{"-5", -5, true},
		{"seven", 7, true},
		{"Thirteen!", 13, true},
		{"thousand", 1000, true},
		{"one hundred and five", 105, true},
		{"one hundred twenty three", 123, true},
		{"two thousand five hundred", 2500, true},
		{"three thousand forty", 3040, true},
		{"five six", 56, true},
		{"nineteen ninety", 1990, true},
		{"twenty 4", 24, true},
		{"forty two apples", 42, true},
		{"banana", 0, false},
		{"", 0, false},
		{"   ", 0, false},
		{"-", 0, false},
		{"zero zero", 0, false},
		{"00", 0, false},
		{"um twelve", 0, false},
		{strings.Repeat("nine ", 20), 999_999_999, true},
		{"nine hundred hundred hundred hundred hundred", 900_000_000, true},
		{"one billion", 1, true},
	}

	for _, tc := range tests {
		got, ok := Parse(tc.input)
		if ok != tc.wantOK || got != tc.want {
			t.Errorf("Parse(%q) = (%d, %v), want (%d, %v)", tc.input, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestParse_LexiconWordsAlone(t *testing.T) {
	for word, want := range lexicon {
		got, ok := Parse(word)
		if !ok || got != want {
			t.Errorf("Parse(%q) = (%d, %v), want (%d, true)", word, got, ok, want)
		}
	}
}

func TestParse_TensPlusUnits(t *testing.T) {
	tens := []string{"twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety"}
	units := []string{"one", "two", "three", "four", "five", "six", "seven", "eight", "nine"}
	for _, ten := range tens {
		for _, unit := range units {
			want := lexicon[ten] + lexicon[unit]
			for _, form := range []string{ten + " " + unit, ten + "-" + unit} {
				got, ok := Parse(form)
				if !ok || got != want {
					t.Errorf("Parse(%q) = (%d, %v), want %d", form, got, ok, want)
				}
			}
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Fifty-Six!", "fifty-six"},
		{"  one,   two  ", "one two"},
		{"It's 5.", "its 5"},
	}
	for _, tc := range tests {
		if got := Normalize(tc.input); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
