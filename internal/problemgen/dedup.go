package problemgen

import (
	"fmt"
	"strings"
)

// buildDedup lists the last limit prompts as a numbered block for the
// generation prompt, or "None" when there are none.
func buildDedup(prior []string, limit int) string {
	if limit > 0 && len(prior) > limit {
		prior = prior[len(prior)-limit:]
	}
	if len(prior) == 0 {
		return "None"
	}
	lines := make([]string, len(prior))
	for i, p := range prior {
		lines[i] = fmt.Sprintf("%d. %s", i+1, p)
	}
	return strings.Join(lines, "\n")
}
