package languageutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Casers keep state between calls, so every call builds its own.

// Lower folds free text for case-insensitive matching of hints and search queries.
func Lower(s string) string {
	return cases.Lower(language.English).String(s)
}

// Label turns a tag like "activewear" or "light_blue" into a display label.
func Label(tag string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(tag, "_", " "))
}
