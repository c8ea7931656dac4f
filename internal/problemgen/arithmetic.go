package problemgen

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

// Arithmetic generates number drills locally without an LLM. It covers
// arithmetic, times-table, comparison, sequencing and numeric fill-blank.
type Arithmetic struct {
	rng *rand.Rand
}

// NewArithmetic creates a local generator. A nil rng uses a random seed.
func NewArithmetic(rng *rand.Rand) *Arithmetic {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Arithmetic{rng: rng}
}

// Supports reports whether the exercise can be generated locally.
func (a *Arithmetic) Supports(e Exercise) bool {
	switch e {
	case ExerciseArithmetic, ExerciseTimesTable, ExerciseComparison, ExerciseSequencing, ExerciseFillBlank:
		return true
	}
	return false
}

func (a *Arithmetic) Generate(ctx context.Context, params Params) (*Problem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var p *Problem
	for range 10 {
		switch params.Exercise {
		case ExerciseArithmetic:
			p = a.arithmetic(params)
		case ExerciseTimesTable:
			p = a.timesTable(params)
		case ExerciseComparison:
			p = a.comparison(params)
		case ExerciseSequencing:
			p = a.sequence(params)
		case ExerciseFillBlank:
			p = a.fillBlank(params)
		default:
			return nil, fmt.Errorf("exercise %q is not supported by the local generator", params.Exercise)
		}
		if !seen(params.Prior, p.Prompt) {
			break
		}
	}

	p.Exercise = params.Exercise
	p.Difficulty = params.Difficulty
	if err := Validate(p); err != nil {
		return nil, fmt.Errorf("local generator produced invalid problem: %w", err)
	}
	return p, nil
}

// limit returns the largest operand for a difficulty.
func limit(d Difficulty) int {
	switch d {
	case DifficultyEasy:
		return 10
	case DifficultyHard:
		return 200
	default:
		return 50
	}
}

// factorRange returns the inclusive multiplication factor range.
func factorRange(d Difficulty) (int, int) {
	switch d {
	case DifficultyEasy:
		return 1, 5
	case DifficultyHard:
		return 2, 12
	default:
		return 2, 10
	}
}

func (a *Arithmetic) between(lo, hi int) int {
	return lo + a.rng.IntN(hi-lo+1)
}

func (a *Arithmetic) arithmetic(params Params) *Problem {
	op := strings.ToLower(params.Category)
	if op == "" || op == "mixed" {
		op = []string{"add", "subtract", "multiply", "divide"}[a.rng.IntN(4)]
	}
	top := limit(params.Difficulty)

	var x, y, ans int
	var sym, word string
	switch op {
	case "subtract":
		x, y = a.between(1, top), a.between(0, top)
		if y > x {
			x, y = y, x
		}
		ans, sym, word = x-y, "-", "minus"
	case "multiply":
		lo, hi := factorRange(params.Difficulty)
		x, y = a.between(lo, hi), a.between(lo, hi)
		ans, sym, word = x*y, "x", "times"
	case "divide":
		lo, hi := factorRange(params.Difficulty)
		y, ans = a.between(max1(lo), hi), a.between(lo, hi)
		x, sym, word = y*ans, "/", "divided by"
	default:
		x, y = a.between(0, top), a.between(0, top)
		ans, sym, word = x+y, "+", "plus"
	}

	return &Problem{
		Prompt:      fmt.Sprintf("%d %s %d = ?", x, sym, y),
		Narration:   fmt.Sprintf("What is %d %s %d?", x, word, y),
		Kind:        KindNumeric,
		Answer:      strconv.Itoa(ans),
		Explanation: fmt.Sprintf("%d %s %d = %d.", x, sym, y, ans),
	}
}

func (a *Arithmetic) timesTable(params Params) *Problem {
	lo, hi := factorRange(params.Difficulty)
	table, err := strconv.Atoi(strings.TrimSpace(params.Category))
	if err != nil || table < 1 {
		table = a.between(max1(lo), hi)
	}
	n := a.between(1, 12)
	ans := table * n

	return &Problem{
		Prompt:      fmt.Sprintf("%d x %d = ?", table, n),
		Narration:   fmt.Sprintf("What is %d times %d?", table, n),
		Kind:        KindNumeric,
		Answer:      strconv.Itoa(ans),
		Explanation: fmt.Sprintf("%d groups of %d make %d.", n, table, ans),
		Hint:        fmt.Sprintf("Count up by %d, %d times.", table, n),
	}
}

func (a *Arithmetic) comparison(params Params) *Problem {
	count := 2
	if params.Difficulty == DifficultyHard {
		count = 3
	}
	top := limit(params.Difficulty)

	nums := make([]int, 0, count)
	used := make(map[int]bool, count)
	for len(nums) < count {
		n := a.between(0, top)
		if used[n] {
			continue
		}
		used[n] = true
		nums = append(nums, n)
	}

	bigger := params.Category != "smaller"
	if params.Category == "" {
		bigger = a.rng.IntN(2) == 0
	}
	best := nums[0]
	for _, n := range nums[1:] {
		if (bigger && n > best) || (!bigger && n < best) {
			best = n
		}
	}

	word := "bigger"
	if !bigger {
		word = "smaller"
	}
	if count > 2 {
		word = map[bool]string{true: "biggest", false: "smallest"}[bigger]
	}

	opts := make([]string, len(nums))
	for i, n := range nums {
		opts[i] = strconv.Itoa(n)
	}
	return &Problem{
		Prompt:      fmt.Sprintf("Which number is %s: %s?", word, strings.Join(opts, ", ")),
		Narration:   fmt.Sprintf("Which number is %s? %s.", word, joinOr(opts)),
		Kind:        KindChoice,
		Answer:      strconv.Itoa(best),
		Options:     opts,
		Explanation: fmt.Sprintf("%d is the %s.", best, word),
	}
}

func (a *Arithmetic) sequence(params Params) *Problem {
	var step, start int
	switch params.Difficulty {
	case DifficultyEasy:
		step, start = a.between(1, 2), a.between(0, 10)
	case DifficultyHard:
		step, start = a.between(3, 12), a.between(0, 100)
		if a.rng.IntN(2) == 0 {
			step = -step
			start += -step * 5
		}
	default:
		step, start = a.between(2, 10), a.between(0, 30)
	}

	terms := make([]string, 4)
	for i := range terms {
		terms[i] = strconv.Itoa(start + i*step)
	}
	next := start + 4*step

	verb := "adds"
	if step < 0 {
		verb = "takes away"
	}
	return &Problem{
		Prompt:      fmt.Sprintf("%s, ?", strings.Join(terms, ", ")),
		Narration:   fmt.Sprintf("What comes next? %s.", strings.Join(terms, ", ")),
		Kind:        KindNumeric,
		Answer:      strconv.Itoa(next),
		Explanation: fmt.Sprintf("Each step %s %d, so the next number is %d.", verb, abs(step), next),
	}
}

func (a *Arithmetic) fillBlank(params Params) *Problem {
	top := limit(params.Difficulty)
	x, y := a.between(0, top), a.between(0, top)
	sum := x + y
	return &Problem{
		Prompt:      fmt.Sprintf("%d + ___ = %d", x, sum),
		Narration:   fmt.Sprintf("%d plus what makes %d?", x, sum),
		Kind:        KindNumeric,
		Answer:      strconv.Itoa(y),
		Explanation: fmt.Sprintf("%d - %d = %d, so the blank is %d.", sum, x, y, y),
	}
}

func joinOr(opts []string) string {
	if len(opts) < 2 {
		return strings.Join(opts, "")
	}
	return strings.Join(opts[:len(opts)-1], ", ") + " or " + opts[len(opts)-1]
}

func seen(prior []string, prompt string) bool {
	for _, p := range prior {
		if p == prompt {
			return true
		}
	}
	return false
}

func max1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
