package repl

import (
	"maps"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/expr-lang/expr/builtin"
	"github.com/sahilm/fuzzy"
)

// maxCandidates limits the completion bar.
const maxCandidates = 8

// isWordBoundary returns true if the rune is a word delimiter for completion
// purposes. This includes whitespace, the member-access dot, the marker
// braces, and expr-lang operator/punctuation characters.
func isWordBoundary(r rune) bool {
	switch r {
	case '.', ' ', '\t',
		'(', ')', '[', ']', '{', '}', '@',
		'+', '-', '*', '/', '%',
		'<', '>', '=', '!',
		'&', '|', ',', '?', ':', ';', '"', '\'':
		return true
	}

	return false
}

// wordBounds returns the current word at the cursor position and its byte
// boundaries within input. Words are delimited by whitespace, dots, and
// expr-lang operator/punctuation characters.
// Returns an empty word when the cursor sits on a boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	// Walk backward from cursor to find word start.
	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	// Walk forward from cursor to find word end.
	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	word = input[start:end]

	return word, start, end
}

// inMarker reports whether byte offset cursor of line lies between an open
// token and its closing brace (or the end of line if unclosed).
func inMarker(line string, cursor int) bool {
	if cursor > len(line) {
		cursor = len(line)
	}

	open := strings.LastIndex(line[:cursor], "@{")
	if open < 0 {
		return false
	}

	return !strings.Contains(line[open:cursor], "}")
}

// byteOffset converts a rune column of s to a byte offset.
func byteOffset(s string, col int) int {
	for i := range s {
		if col == 0 {
			return i
		}

		col--
	}

	return len(s)
}

// candidates returns the names offered for completion: the given scope
// names followed by the expression language's builtin functions.
func candidates(names []string) []string {
	all := slices.Clone(names)
	all = slices.AppendSeq(all, maps.Keys(builtin.Index))
	slices.Sort(all)

	return slices.Compact(all)
}

// complete returns the best fuzzy matches of word among names.
func complete(word string, names []string) fuzzy.Matches {
	if word == "" {
		return nil
	}

	matches := fuzzy.Find(word, names)
	if len(matches) > maxCandidates {
		matches = matches[:maxCandidates]
	}

	return matches
}

// completionSuffix returns the text that completes word to candidate, or ""
// if candidate does not extend word.
func completionSuffix(word, candidate string) string {
	suffix, ok := strings.CutPrefix(candidate, word)
	if !ok {
		return ""
	}

	return suffix
}

func renderCandidateBar(matches fuzzy.Matches, width int) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, i == 0)
		entryWidth := lipgloss.Width(rendered)

		if i > 0 {
			entryWidth += sepWidth
		}

		// Check if adding this candidate would exceed width.
		if used+entryWidth+ellipsisWidth > width && i > 0 {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	baseStyle := suggestionStyle
	highlightStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("4")).
		Bold(true)

	if selected {
		baseStyle = selectedStyle
		highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4")).
			Bold(true)
	}

	matchSet := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matchSet[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		ch := string(r)
		if matchSet[i] {
			b.WriteString(highlightStyle.Render(ch))
		} else {
			b.WriteString(baseStyle.Render(ch))
		}
	}

	return b.String()
}
