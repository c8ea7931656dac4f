package answer

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/abhisek/drillbuddy/internal/problemgen"
	"github.com/abhisek/drillbuddy/internal/spokennum"
)

// leadIns are phrases children put before the answer itself, as they look
// after normalization.
var leadIns = []string{
	"the answer is ", "answer is ", "i think its ", "i think ", "its ", "it is ",
}

// selectors introduce an option by position ("option two", "letter b").
var selectors = map[string]bool{
	"option": true, "number": true, "letter": true, "choice": true,
}

var ordinals = map[string]int{
	"first": 0, "second": 1, "third": 2, "fourth": 3, "fifth": 4, "sixth": 5,
}

// Interpret turns a final transcript into an answer for p. The boolean is
// false when nothing in the transcript could be used.
func Interpret(p *problemgen.Problem, transcript string) (string, bool) {
	s := trimLeadIn(spokennum.Normalize(transcript))
	if s == "" {
		return "", false
	}

	switch p.Kind {
	case problemgen.KindNumeric:
		n, ok := spokennum.Parse(s)
		if !ok {
			return "", false
		}
		return strconv.Itoa(n), true
	case problemgen.KindChoice:
		return matchOption(p, s)
	default:
		return spelled(s), true
	}
}

func trimLeadIn(s string) string {
	for _, l := range leadIns {
		if strings.HasPrefix(s, l) {
			return strings.TrimSpace(s[len(l):])
		}
	}
	return s
}

// matchOption tries, in order: the option text itself, an option with the
// same numeric value, then the option at a spoken position. When every option
// is a numeral a bare number is never a position ("two" for options 7 and 9
// matches nothing); it has to be introduced as "option two".
func matchOption(p *problemgen.Problem, s string) (string, bool) {
	if i := problemgen.OptionIndex(p, s); i >= 0 {
		return p.Options[i], true
	}
	if i := problemgen.OptionIndex(p, spelled(s)); i >= 0 {
		return p.Options[i], true
	}

	if n, ok := spokennum.Parse(s); ok {
		for _, o := range p.Options {
			if v, ok := spokennum.Parse(o); ok && v == n && isNumeral(o) {
				return o, true
			}
		}
	}

	if i, ok := position(s, len(p.Options), !allNumerals(p.Options)); ok {
		return p.Options[i], true
	}
	return "", false
}

func allNumerals(options []string) bool {
	for _, o := range options {
		if !isNumeral(o) {
			return false
		}
	}
	return len(options) > 0
}

func isNumeral(s string) bool {
	_, err := strconv.Atoi(strings.TrimSpace(s))
	return err == nil
}

// position resolves "option two", "b", "second" or "2" to an option index.
// A number without a selector counts only when bareNumbers is set.
func position(s string, count int, bareNumbers bool) (int, bool) {
	fields := strings.Fields(s)
	selected := len(fields) == 2 && selectors[fields[0]]
	if selected {
		fields = fields[1:]
	}
	if len(fields) != 1 {
		return 0, false
	}
	tok := fields[0]

	idx := -1
	switch {
	case len(tok) == 1 && tok[0] >= 'a' && tok[0] <= 'f':
		idx = int(tok[0] - 'a')
	default:
		if i, ok := ordinals[tok]; ok {
			idx = i
		} else if n, ok := spokennum.Parse(tok); ok && (selected || bareNumbers) {
			idx = n - 1
		}
	}
	if idx < 0 || idx >= count {
		return 0, false
	}
	return idx, true
}

// spelled joins letters spoken one at a time ("c a t" → "cat") and leaves
// anything else as it was said.
func spelled(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-'
	})
	if len(parts) < 2 {
		return s
	}
	for _, p := range parts {
		r, size := utf8.DecodeRuneInString(p)
		if size != len(p) || !unicode.IsLetter(r) {
			return s
		}
	}
	return strings.Join(parts, "")
}
