package problemgen

import "testing"

func TestStructuralValidator(t *testing.T) {
	v := &StructuralValidator{}
	long := make([]byte, maxPromptLen+1)
	for i := range long {
		long[i] = 'a'
	}

	tests := []struct {
		name   string
		p      Problem
		params Params
		ok     bool
	}{
		{"valid", Problem{Prompt: "2 + 2 = ?", Kind: KindNumeric}, Params{Exercise: ExerciseArithmetic}, true},
		{"empty prompt", Problem{Kind: KindNumeric}, Params{}, false},
		{"long prompt", Problem{Prompt: string(long), Kind: KindNumeric}, Params{}, false},
		{"bad kind", Problem{Prompt: "x", Kind: "essay"}, Params{}, false},
		{"kind mismatch", Problem{Prompt: "x", Kind: KindChoice}, Params{Exercise: ExerciseTimesTable}, false},
		{"fill blank any kind", Problem{Prompt: "x", Kind: KindText}, Params{Exercise: ExerciseFillBlank}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.p, tt.params)
			if (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestAnswerFormatValidator(t *testing.T) {
	v := &AnswerFormatValidator{}
	tests := []struct {
		name string
		p    Problem
		ok   bool
	}{
		{"integer", Problem{Kind: KindNumeric, Answer: "42"}, true},
		{"negative", Problem{Kind: KindNumeric, Answer: "-3"}, true},
		{"leading zero", Problem{Kind: KindNumeric, Answer: "042"}, false},
		{"decimal", Problem{Kind: KindNumeric, Answer: "4.5"}, false},
		{"numeric with options", Problem{Kind: KindNumeric, Answer: "4", Options: []string{"4", "5"}}, false},
		{"choice ok", Problem{Kind: KindChoice, Answer: "b", Options: []string{"a", "b", "c"}}, true},
		{"choice one option", Problem{Kind: KindChoice, Answer: "a", Options: []string{"a"}}, false},
		{"choice duplicate", Problem{Kind: KindChoice, Answer: "a", Options: []string{"a", "b", "B"}}, false},
		{"choice empty option", Problem{Kind: KindChoice, Answer: "a", Options: []string{"a", " "}}, false},
		{"choice answer missing", Problem{Kind: KindChoice, Answer: "z", Options: []string{"a", "b"}}, false},
		{"text ok", Problem{Kind: KindText, Answer: "cat"}, true},
		{"text empty", Problem{Kind: KindText, Answer: ""}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.p, Params{})
			if (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestMathCheckValidator(t *testing.T) {
	v := &MathCheckValidator{}
	tests := []struct {
		prompt string
		answer string
		ok     bool
	}{
		{"12 + 7 = ?", "19", true},
		{"12 + 7 = ?", "18", false},
		{"What is 9 x 6?", "54", true},
		{"What is 9 x 6?", "56", false},
		{"48 / 6 = ?", "8", true},
		{"20 - 25 = ?", "-5", true},
		{"7 + ___ = 12", "5", true},
		{"What is 12 + 7 - 3?", "16", true},
		{"2, 4, 6, 8, ?", "10", true},
		{"How many legs do 3 spiders have?", "24", true},
	}
	for _, tt := range tests {
		t.Run(tt.prompt+"="+tt.answer, func(t *testing.T) {
			p := &Problem{Prompt: tt.prompt, Kind: KindNumeric, Answer: tt.answer}
			err := v.Validate(p, Params{})
			if (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestMathCheckValidator_IgnoresChoice(t *testing.T) {
	v := &MathCheckValidator{}
	p := &Problem{Prompt: "2 + 2 = ?", Kind: KindChoice, Answer: "5", Options: []string{"4", "5"}}
	if err := v.Validate(p, Params{}); err != nil {
		t.Errorf("expected choice problems to be skipped, got %v", err)
	}
}
