package questiongen

import (
	"fmt"
	"strings"
)

// buildDedup formats existing questions for the prompt, respecting the
// max limit. Returns "なし" if there are none.
func buildDedup(existing []string, max int) string {
	if len(existing) == 0 {
		return "なし"
	}

	// Keep only the most recent N questions.
	if max > 0 && len(existing) > max {
		existing = existing[len(existing)-max:]
	}

	var b strings.Builder
	for i, q := range existing {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}
