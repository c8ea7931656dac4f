package problemgen

import "testing"

func TestCheckAnswer(t *testing.T) {
	numeric := &Problem{Kind: KindNumeric, Answer: "56"}
	choice := &Problem{Kind: KindChoice, Answer: "Gigantic", Options: []string{"tiny", "Gigantic", "soft"}}
	text := &Problem{Kind: KindText, Answer: "brave"}

	tests := []struct {
		name  string
		p     *Problem
		input string
		want  bool
	}{
		{"numeric exact", numeric, "56", true},
		{"numeric spoken", numeric, "fifty six", true},
		{"numeric leading zero", numeric, "056", true},
		{"numeric whitespace", numeric, "  56 ", true},
		{"numeric wrong", numeric, "65", false},
		{"numeric empty", numeric, "", false},
		{"numeric garbage", numeric, "banana", false},
		{"choice exact", choice, "Gigantic", true},
		{"choice case", choice, "gigantic", true},
		{"choice other", choice, "tiny", false},
		{"choice index is not the text", choice, "2", false},
		{"text case", text, "BRAVE", true},
		{"text partial", text, "brav", false},
		{"text extra", text, "braves", false},
		{"text inner spaces", text, "br ave", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckAnswer(tt.input, tt.p); got != tt.want {
				t.Errorf("CheckAnswer(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// A problem must always accept its own canonical answer.
func TestCheckAnswer_SelfEvaluation(t *testing.T) {
	problems := []*Problem{
		{Prompt: "p", Kind: KindNumeric, Answer: "0"},
		{Prompt: "p", Kind: KindNumeric, Answer: "1990"},
		{Prompt: "p", Kind: KindNumeric, Answer: "-4"},
		{Prompt: "p", Kind: KindChoice, Answer: "b", Options: []string{"a", "b"}},
		{Prompt: "p", Kind: KindText, Answer: "Journey"},
	}
	for _, p := range problems {
		if err := Validate(p); err != nil {
			t.Fatalf("Validate(%+v) = %v", p, err)
		}
		if !CheckAnswer(p.Answer, p) {
			t.Errorf("problem rejects its own answer %q", p.Answer)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		p       *Problem
		wantErr bool
	}{
		{"valid numeric", &Problem{Prompt: "1+1", Kind: KindNumeric, Answer: "2"}, false},
		{"empty prompt", &Problem{Kind: KindNumeric, Answer: "2"}, true},
		{"empty answer", &Problem{Prompt: "p", Kind: KindText, Answer: " "}, true},
		{"numeric not a number", &Problem{Prompt: "p", Kind: KindNumeric, Answer: "two-ish"}, true},
		{"choice missing answer", &Problem{Prompt: "p", Kind: KindChoice, Answer: "c", Options: []string{"a", "b"}}, true},
		{"choice ambiguous", &Problem{Prompt: "p", Kind: KindChoice, Answer: "a", Options: []string{"a", "A"}}, true},
		{"unknown kind", &Problem{Prompt: "p", Kind: "essay", Answer: "x"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.p)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOptionIndex(t *testing.T) {
	p := &Problem{Options: []string{"Red", "green  apple"}}
	if got := OptionIndex(p, "red"); got != 0 {
		t.Errorf("OptionIndex(red) = %d", got)
	}
	if got := OptionIndex(p, "Green apple"); got != 1 {
		t.Errorf("OptionIndex(Green apple) = %d", got)
	}
	if got := OptionIndex(p, "blue"); got != -1 {
		t.Errorf("OptionIndex(blue) = %d", got)
	}
}

func TestParseExerciseAndDifficulty(t *testing.T) {
	for _, e := range AllExercises() {
		got, err := ParseExercise(" " + string(e) + " ")
		if err != nil || got != e {
			t.Errorf("ParseExercise(%q) = %q, %v", e, got, err)
		}
		if e.DisplayName() == string(e) {
			t.Errorf("exercise %q has no display name", e)
		}
	}
	if _, err := ParseExercise("juggling"); err == nil {
		t.Error("expected error for unknown exercise")
	}

	if d, err := ParseDifficulty(""); err != nil || d != DifficultyMedium {
		t.Errorf("ParseDifficulty(\"\") = %q, %v", d, err)
	}
	if d, err := ParseDifficulty("HARD"); err != nil || d != DifficultyHard {
		t.Errorf("ParseDifficulty(HARD) = %q, %v", d, err)
	}
	if _, err := ParseDifficulty("insane"); err == nil {
		t.Error("expected error for unknown difficulty")
	}
}
