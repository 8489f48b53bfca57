package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize trims leading/trailing whitespace and collapses every
// internal whitespace run to a single space.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

// NormalizeNotes keeps client free text readable but bounded: whitespace
// runs collapse, interior newlines survive as spaces.
func NormalizeNotes(notes string) string {
	return TrimAndNormalize(notes)
}

func NormalizeStudioID(id string) string {
	return strings.ToLower(TrimAndNormalize(id))
}
