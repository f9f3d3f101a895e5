package utils

import "strings"

// TruncateWithEllipsis cuts s to at most max runes, appending "…" when
// anything was removed. Trailing spaces before the ellipsis are dropped.
func TruncateWithEllipsis(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 0 {
		return "…"
	}
	return strings.TrimRight(string(runes[:max]), " ") + "…"
}

// WrapWords wraps text greedily into lines no wider than maxWidth according
// to measure, up to maxLines lines. Words are never split mid-word; if the
// text does not fit, the last line is truncated rune by rune and terminated
// with an ellipsis.
func WrapWords(text string, maxLines int, maxWidth float64, measure func(string) float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 || maxLines <= 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if measure(candidate) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
		if len(lines) == maxLines {
			break
		}
	}

	if len(lines) < maxLines {
		lines = append(lines, current)
		return lines
	}

	// Overflow: fold the remainder into the last line and ellipsize it.
	last := lines[maxLines-1] + " " + current
	for measure(last+"…") > maxWidth && len([]rune(last)) > 1 {
		runes := []rune(last)
		last = strings.TrimRight(string(runes[:len(runes)-1]), " ")
	}
	lines[maxLines-1] = last + "…"
	return lines
}
