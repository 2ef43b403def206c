package cmd

import (
	"regexp"

	"github.com/sahilm/fuzzy"
)

// maxSuggestions limits the names offered for an unknown identifier.
const maxSuggestions = 3

var unknownName = regexp.MustCompile(`unknown name ([\pL_][\pL\pN_]*)`)

// Suggest returns up to three of names that fuzzily match the identifier an
// expression error reports as unknown, best match first. It returns nil for
// any other error.
func Suggest(err error, names []string) []string {
	if err == nil {
		return nil
	}

	m := unknownName.FindStringSubmatch(err.Error())
	if m == nil {
		return nil
	}

	matches := fuzzy.Find(m[1], names)

	hints := make([]string, 0, min(len(matches), maxSuggestions))

	for _, match := range matches {
		if len(hints) == maxSuggestions {
			break
		}

		hints = append(hints, match.Str)
	}

	return hints
}
