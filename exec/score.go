package exec

import (
	"fmt"
	"strconv"
	"strings"
)

// parseScore implements spec §4.1's subprocess contract: split captured
// stdout on newline and interpret the second-to-last element as a
// floating-point score (the last element is the empty string after a
// trailing newline).
func parseScore(out []byte) (float64, error) {
	lines := strings.Split(string(out), "\n")
	if len(lines) < 2 {
		return 0, fmt.Errorf("expected at least one newline-terminated line of output, got %q", string(out))
	}
	scoreLine := strings.TrimSpace(lines[len(lines)-2])
	score, err := strconv.ParseFloat(scoreLine, 64)
	if err != nil {
		return 0, fmt.Errorf("last line %q is not a parseable number: %w", scoreLine, err)
	}
	return score, nil
}
