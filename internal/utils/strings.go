package utils

import "strings"

// NormalizeSpace trims and collapses repeated whitespace into a single
// space. Names typed at the counter arrive with stray double spaces.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
