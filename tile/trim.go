package tile

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Trim splits s into lines and removes the block's common indentation
// along with any leading and trailing blank lines. Trailing whitespace is
// stripped from every line. Blank lines between the first and last
// non-blank lines are kept (as empty strings).
//
// Indentation is counted in runes, and every [unicode.IsSpace] rune counts
// as one column, tabs included.
//
// Input with no non-blank line, including the empty string, yields a
// single empty line.
func Trim(s string) []string {
	lines := strings.Split(s, "\n")

	top, bottom, left := -1, 0, -1

	for i, line := range lines {
		if isBlank(line) {
			continue
		}

		bottom = i

		if top == -1 {
			top = i
		}

		if n := indentOf(line); left == -1 || n < left {
			left = n
		}
	}

	if top == -1 {
		return []string{""}
	}

	trimmed := make([]string, 0, bottom-top+1)

	for _, line := range lines[top : bottom+1] {
		trimmed = append(trimmed,
			strings.TrimRightFunc(dropRunes(line, left), unicode.IsSpace),
		)
	}

	return trimmed
}

// isBlank reports whether line is empty or all whitespace.
func isBlank(line string) bool {
	return strings.TrimFunc(line, unicode.IsSpace) == ""
}

// indentOf counts the leading whitespace runes of line.
func indentOf(line string) int {
	n := 0

	for _, r := range line {
		if !unicode.IsSpace(r) {
			break
		}

		n++
	}

	return n
}

// dropRunes returns line without its first n runes, or "" if line is
// shorter than that.
func dropRunes(line string, n int) string {
	for i := range line {
		if n == 0 {
			return line[i:]
		}

		n--
	}

	return ""
}

// width is the column count of s.
func width(s string) int { return utf8.RuneCountInString(s) }
