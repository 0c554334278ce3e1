// Package dedent removes the common leading indentation from
// multi-line text without disturbing newlines that sit inside single
// or double quotes. It exists for `run` scripts embedded in Go source
// as indented raw strings.
package dedent

import "strings"

// Dedent strips the largest common leading-space prefix from every
// physical line of s. Lines are split only at newlines that occur
// outside quoted spans; a quote toggles quoting state unless it is
// preceded by a backslash. Every line participates in the minimum,
// an all-space line with its full length and an empty line with
// zero. A string with no unquoted newline is returned as is. The
// result is stable: applying Dedent to its own output returns it
// unchanged.
func Dedent(s string) string {
	splits := unquotedNewlines(s)
	if len(splits) == 0 {
		return s
	}

	lines := splitAt(s, splits)
	prefix := commonIndent(lines)
	if prefix == 0 {
		return s
	}

	cut := strings.Repeat(" ", prefix)
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, cut)
	}
	return strings.Join(lines, "\n")
}

// unquotedNewlines returns the indexes of newline bytes that are not
// enclosed in quotes.
func unquotedNewlines(s string) []int {
	var stack []byte
	var splits []int
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\'', '"':
			if i > 0 && s[i-1] == '\\' {
				continue
			}
			if len(stack) > 0 && stack[len(stack)-1] == c {
				stack = stack[:len(stack)-1]
			} else {
				stack = append(stack, c)
			}
		case '\n':
			if len(stack) == 0 {
				splits = append(splits, i)
			}
		}
	}
	return splits
}

// splitAt cuts s into physical lines at the given newline indexes,
// keeping quoted newlines embedded inside their line.
func splitAt(s string, splits []int) []string {
	lines := make([]string, 0, len(splits)+1)
	start := 0
	for _, idx := range splits {
		lines = append(lines, s[start:idx])
		start = idx + 1
	}
	return append(lines, s[start:])
}

// commonIndent finds the smallest leading-space count across every
// line, scanning each line to its first non-space byte or its end.
// An all-space line counts its full length, so it can cap the
// minimum but never drops it below its own indent.
func commonIndent(lines []string) int {
	prefix := -1
	for _, line := range lines {
		indent := len(line) - len(strings.TrimLeft(line, " "))
		if prefix < 0 || indent < prefix {
			prefix = indent
		}
	}
	if prefix < 0 {
		return 0
	}
	return prefix
}
