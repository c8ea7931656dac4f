// Package spokennum recovers integers from speech-recognition transcripts.
//
// Parsing is best effort: it prefers returning a usable number from a noisy
// transcript over strict correctness on long multi-word numbers.
package spokennum

import (
	"strconv"
	"strings"
	"unicode"
)

// lexicon maps the recognized number words to their values.
var lexicon = map[string]int{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4,
	"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9,
	"ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
	"fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19,
	"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
	"hundred": 100, "thousand": 1000,
}

// maxValue bounds what a transcript can fold to. Folding stops before a token
// would push the result past it.
const (
	maxValue  = 1_000_000_000
	maxDigits = 10
)

// fillers are skipped during composition ("one hundred and five").
var fillers = map[string]bool{
	"and": true,
}

// Parse converts a transcript into an integer. The boolean is false when
// nothing usable could be recovered. Parse never panics.
func Parse(transcript string) (int, bool) {
	s := Normalize(transcript)
	if s == "" {
		return 0, false
	}

	if n, err := strconv.Atoi(s); err == nil {
		return nonZero(n, s)
	}
	if v, ok := lexicon[s]; ok {
		return nonZero(v, s)
	}

	tokens := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-'
	})

	var total, acc int
	folded := false
	for _, tok := range tokens {
		if fillers[tok] {
			continue
		}
		nextTotal, nextAcc, ok := step(total, acc, tok)
		if !ok || nextTotal+nextAcc > maxValue {
			break
		}
		total, acc = nextTotal, nextAcc
		folded = true
	}

	if !folded {
		return 0, false
	}
	return nonZero(total+acc, s)
}

// step folds one token into the running total and accumulator. It reports
// false for a token that is not a number word.
func step(total, acc int, tok string) (int, int, bool) {
	switch tok {
	case "hundred":
		return total, max(acc, 1) * 100, true
	case "thousand":
		return total + max(acc, 1)*1000, 0, true
	}
	v, ok := tokenValue(tok)
	if !ok || (acc != 0 && digits(acc)+digits(v) > maxDigits) {
		return 0, 0, false
	}
	return total, compose(acc, v), true
}

// Normalize lowercases the transcript, strips punctuation other than hyphens
// and collapses whitespace.
func Normalize(transcript string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(transcript) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// tokenValue resolves a single unit, teen or ten word, or a bare digit string.
func tokenValue(tok string) (int, bool) {
	if v, ok := lexicon[tok]; ok && v < 100 {
		return v, true
	}
	n, err := strconv.Atoi(tok)
	if err != nil || n < 0 || n > maxValue {
		return 0, false
	}
	return n, true
}

// compose folds v into the accumulator. A round ten followed by a unit and a
// round hundred followed by anything add ("twenty three" → 23, "one hundred
// five" → 105); everything else composes positionally ("five six" → 56,
// "nineteen ninety" → 1990).
func compose(acc, v int) int {
	switch {
	case acc == 0:
		return v
	case acc%100 == 0 && v < 100:
		return acc + v
	case acc%10 == 0 && v < 10:
		return acc + v
	default:
		return acc*pow10(digits(v)) + v
	}
}

func digits(n int) int {
	d := 1
	for n >= 10 {
		n /= 10
		d++
	}
	return d
}

func pow10(n int) int {
	p := 1
	for range n {
		p *= 10
	}
	return p
}

// nonZero applies the zero rule: only an explicit "zero" or "0" yields 0.
func nonZero(n int, normalized string) (int, bool) {
	if n != 0 {
		return n, true
	}
	if normalized == "zero" || normalized == "0" {
		return 0, true
	}
	return 0, false
}
