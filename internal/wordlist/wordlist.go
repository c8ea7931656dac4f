// Package wordlist loads the vocabulary lists that back definition-match
// and spelling sessions.
package wordlist

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Item is one word in a list.
type Item struct {
	Word       string `yaml:"word"`
	Definition string `yaml:"definition"`
	Sentence   string `yaml:"sentence,omitempty"`
}

// ID is the stable identifier used to track resolution across turns.
func (i Item) ID() string {
	return strings.ToLower(strings.TrimSpace(i.Word))
}

// List is a named set of items.
type List struct {
	Name  string `yaml:"name"`
	Items []Item `yaml:"items"`
}

// Default returns the built-in list.
func Default() (*List, error) {
	return Parse(defaultYAML)
}

// Load reads a list from a YAML file.
func Load(path string) (*List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML word list. Duplicate words (by ID)
// are rejected so every item can be resolved independently.
func Parse(data []byte) (*List, error) {
	var l List
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parse word list: %w", err)
	}
	if len(l.Items) == 0 {
		return nil, fmt.Errorf("word list %q has no items", l.Name)
	}
	seen := make(map[string]bool, len(l.Items))
	for i, it := range l.Items {
		id := it.ID()
		if id == "" {
			return nil, fmt.Errorf("word list item %d has no word", i+1)
		}
		if seen[id] {
			return nil, fmt.Errorf("word list has duplicate word %q", it.Word)
		}
		seen[id] = true
	}
	return &l, nil
}

// Lookup returns the item with the given ID.
func (l *List) Lookup(id string) (Item, bool) {
	for _, it := range l.Items {
		if it.ID() == id {
			return it, true
		}
	}
	return Item{}, false
}

// IDs returns every item ID in list order.
func (l *List) IDs() []string {
	ids := make([]string, len(l.Items))
	for i, it := range l.Items {
		ids[i] = it.ID()
	}
	return ids
}
