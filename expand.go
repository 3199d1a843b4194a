package aritygen

import "strings"

// Expand calls f for every integer in [lo, hi] in increasing order and joins
// the results with delimiter. An empty range yields the empty string.
func Expand(lo, hi int, f func(i int) string, delimiter string) string {
	if lo > hi {
		return ""
	}
	var b strings.Builder
	for i := lo; ; i++ {
		b.WriteString(f(i))
		if i == hi {
			break
		}
		b.WriteString(delimiter)
	}
	return b.String()
}

// Gen is Expand with an empty delimiter.
func Gen(lo, hi int, f func(i int) string) string {
	return Expand(lo, hi, f, "")
}
