package wordlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	l, err := Default()
	require.NoError(t, err)
	assert.NotEmpty(t, l.Name)
	assert.GreaterOrEqual(t, len(l.Items), 4)
	for _, it := range l.Items {
		assert.NotEmpty(t, it.Definition, it.Word)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty", "name: x\nitems: []\n"},
		{"missing word", "name: x\nitems:\n  - definition: d\n"},
		{"duplicate", "name: x\nitems:\n  - word: Cat\n  - word: cat\n"},
		{"bad yaml", "name: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLookupAndIDs(t *testing.T) {
	l, err := Parse([]byte("name: x\nitems:\n  - word: Cat\n    definition: a pet\n  - word: dog\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"cat", "dog"}, l.IDs())

	it, ok := l.Lookup("cat")
	require.True(t, ok)
	assert.Equal(t, "a pet", it.Definition)

	_, ok = l.Lookup("bird")
	assert.False(t, ok)
}
