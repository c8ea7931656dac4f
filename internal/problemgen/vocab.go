package problemgen

import (
	"context"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"

	"github.com/abhisek/drillbuddy/internal/wordlist"
)

const maxDistractors = 3

// Vocab builds definition-match and spelling problems from word-list items.
type Vocab struct {
	rng *rand.Rand
}

// NewVocab creates a vocabulary generator. A nil rng uses a random seed.
func NewVocab(rng *rand.Rand) *Vocab {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Vocab{rng: rng}
}

func (v *Vocab) Generate(ctx context.Context, params Params) (*Problem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if params.Item == nil {
		return nil, fmt.Errorf("%s needs a word-list item", params.Exercise)
	}

	var p *Problem
	var err error
	switch params.Exercise {
	case ExerciseDefinitionMatch:
		p, err = v.definitionMatch(*params.Item, params.Items)
	case ExerciseSpelling:
		p = spelling(*params.Item)
	default:
		return nil, fmt.Errorf("exercise %q is not supported by the vocabulary generator", params.Exercise)
	}
	if err != nil {
		return nil, err
	}

	p.ItemID = params.Item.ID()
	p.Exercise = params.Exercise
	p.Difficulty = params.Difficulty
	if err := Validate(p); err != nil {
		return nil, fmt.Errorf("vocabulary generator produced invalid problem: %w", err)
	}
	return p, nil
}

func (v *Vocab) definitionMatch(item wordlist.Item, all []wordlist.Item) (*Problem, error) {
	if item.Definition == "" {
		return nil, fmt.Errorf("word %q has no definition", item.Word)
	}

	var pool []string
	for _, other := range all {
		if other.ID() != item.ID() {
			pool = append(pool, other.Word)
		}
	}
	if len(pool) == 0 {
		return nil, fmt.Errorf("word list needs at least two words for definition matching")
	}
	v.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if len(pool) > maxDistractors {
		pool = pool[:maxDistractors]
	}

	opts := append(pool, item.Word)
	v.rng.Shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })

	return &Problem{
		Prompt:      fmt.Sprintf("Which word means %q?", item.Definition),
		Narration:   fmt.Sprintf("Which word means %s? Is it %s?", item.Definition, joinOr(opts)),
		Kind:        KindChoice,
		Answer:      item.Word,
		Options:     opts,
		Explanation: fmt.Sprintf("%s means %s.", capitalize(item.Word), item.Definition),
	}, nil
}

func spelling(item wordlist.Item) *Problem {
	word := strings.TrimSpace(item.Word)

	prompt := fmt.Sprintf("Spell the word that means %q.", item.Definition)
	narration := fmt.Sprintf("Spell %s.", word)
	if item.Sentence != "" {
		prompt = "Spell the missing word: " + blankOut(item.Sentence, word)
		narration = fmt.Sprintf("Spell %s. %s %s.", word, item.Sentence, capitalize(word))
	}

	letters := strings.Split(strings.ToLower(word), "")
	return &Problem{
		Prompt:      prompt,
		Narration:   narration,
		Kind:        KindText,
		Answer:      word,
		Hint:        fmt.Sprintf("It starts with %q and has %d letters.", letters[0], len(letters)),
		Explanation: fmt.Sprintf("%s is spelled %s.", capitalize(word), strings.Join(letters, "-")),
	}
}

// blankOut replaces whole-word occurrences of word in sentence with a blank.
func blankOut(sentence, word string) string {
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
	return re.ReplaceAllString(sentence, strings.Repeat("_", len(word)))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
