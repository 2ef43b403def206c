package tile

import (
	"log/slog"
	"strings"
)

const (
	openToken  = "@{"
	closeToken = "}"
)

// Marker is one @{...} span found in a trimmed template.
type Marker struct {
	Line   int    // index into the trimmed lines
	Column int    // rune offset of the open token
	Expr   string // text between the open token and the first close token
}

// Markers trims template and returns its markers in scan order without
// evaluating them.
func Markers(template string) ([]Marker, error) {
	var markers []Marker

	for i, line := range Trim(template) {
		pos := 0

		for {
			start, end, err := nextMarker(line, pos)
			if err != nil {
				return nil, err
			}

			if start < 0 {
				break
			}

			markers = append(markers, Marker{
				Line:   i,
				Column: width(line[:start]),
				Expr:   line[start+len(openToken) : end],
			})

			pos = end + len(closeToken)
		}
	}

	return markers, nil
}

// nextMarker locates the first marker in line at or after byte offset pos.
// It returns the byte offsets of the open and close tokens, or start < 0 if
// no open token remains.
func nextMarker(line string, pos int) (start, end int, err error) {
	start = strings.Index(line[pos:], openToken)
	if start < 0 {
		return -1, -1, nil
	}

	start += pos

	end = strings.Index(line[start+len(openToken):], closeToken)
	if end < 0 {
		return -1, -1, ErrUnterminatedMarker.With(
			slog.String("line", line),
			slog.Int("column", width(line[:start])),
		)
	}

	return start, end + start + len(openToken), nil
}
