package problemgen

import (
	"fmt"
	"regexp"
	"strconv"
)

// binaryOpRe matches a lone integer operation like "12 + 7?", "9 x 6 = ?"
// or "48 / 6" at the end of a prompt. Chains such as "2 + 3 - 1" do not
// match because the left operand may not follow another operator.
var binaryOpRe = regexp.MustCompile(`(?:^|[^\d+\-*/x×÷\s])\s*(-?\d+)\s*([+\-*/x×÷])\s*(-?\d+)\s*(?:=\s*\?|=\s*_+|\?|$)`)

// MathCheckValidator recomputes simple integer arithmetic found in numeric
// prompts and rejects answers that disagree. Prompts it cannot parse pass.
type MathCheckValidator struct{}

func (v *MathCheckValidator) Name() string { return "math-check" }

func (v *MathCheckValidator) Validate(p *Problem, _ Params) *ValidationError {
	if p.Kind != KindNumeric {
		return nil
	}
	want, ok := computeBinaryOp(p.Prompt)
	if !ok {
		return nil
	}
	got, err := strconv.Atoi(p.Answer)
	if err != nil {
		return nil
	}
	if got != want {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("answer %d does not match computed %d", got, want),
			Retryable: true,
		}
	}
	return nil
}

func computeBinaryOp(prompt string) (int, bool) {
	m := binaryOpRe.FindStringSubmatch(prompt)
	if m == nil {
		return 0, false
	}
	a, err1 := strconv.Atoi(m[1])
	b, err2 := strconv.Atoi(m[3])
	if err1 != nil || err2 != nil {
		return 0, false
	}
	switch m[2] {
	case "+":
		return a + b, true
	case "-":
		return a - b, true
	case "*", "x", "×":
		return a * b, true
	case "/", "÷":
		if b == 0 || a%b != 0 {
			return 0, false
		}
		return a / b, true
	}
	return 0, false
}
