// wrap.go — Greedy pixel-measured word wrapping.
package card

import "strings"

// MeasureFunc returns the rendered pixel width of s in the currently bound
// font, size and weight.
type MeasureFunc func(s string) float64

// WrapText breaks text into the minimum ordered sequence of lines such
// that no line's measured width exceeds maxWidth. Splitting happens on
// whitespace only: a single word wider than maxWidth is kept intact and
// its line may overflow. Words keep their original order and are rejoined
// with single spaces. Empty input yields exactly one empty line.
func WrapText(text string, maxWidth float64, measure MeasureFunc) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if measure(candidate) > maxWidth {
			lines = append(lines, current)
			current = word
			continue
		}
		current = candidate
	}
	return append(lines, current)
}
