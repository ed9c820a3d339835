// Package extract pulls scalar metadata fields out of raw recipe text.
// Every extractor is a pure function over the full text: absence is a
// sentinel, never an error.
package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// Unknown is the sentinel for string fields that could not be
// extracted.
const Unknown = "Desconocido"

var (
	urlPattern      = regexp.MustCompile(`https?://[^\s<>"]+`)
	servingsPattern = regexp.MustCompile(`(?i)(?:para\s+(\d+)\s+porcion(?:es)?|(\d+)\s+porcion(?:es)?|porcion(?:es)?\s*:?\s*(\d+)|serves\s+(\d+)|(\d+)\s+servings?)`)
	caloriesPattern = regexp.MustCompile(`(?i)(?:calor[íi]as?|calories|kcal)\s*:?\s*(\d+)`)
)

// Name returns the first non-blank line of the text, trimmed, or the
// Unknown sentinel when the text is entirely blank.
func Name(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return Unknown
}

// SourceURL returns the first http(s) URL found anywhere in the text,
// or the Unknown sentinel.
func SourceURL(text string) string {
	if m := urlPattern.FindString(text); m != "" {
		return trimURL(m)
	}
	return Unknown
}

// trimURL drops sentence punctuation that the URL pattern swallows. A
// trailing ")" is part of the URL when the match contains a matching
// "(", as in wiki-style /Tortilla_(dish) paths.
func trimURL(m string) string {
	for len(m) > 0 {
		switch last := m[len(m)-1]; {
		case last == '.' || last == ',' || last == ';':
			m = m[:len(m)-1]
		case last == ')' && strings.Count(m, ")") > strings.Count(m, "("):
			m = m[:len(m)-1]
		default:
			return m
		}
	}
	return m
}

// Servings returns the serving count from a "para N porciones" /
// "serves N" style phrase, or 0 when absent.
func Servings(text string) int {
	m := servingsPattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	for _, g := range m[1:] {
		if g != "" {
			n, err := strconv.Atoi(g)
			if err != nil {
				return 0
			}
			return n
		}
	}
	return 0
}

// Calories returns the total calorie count from a "calorías: N" style
// phrase, or 0 when absent.
func Calories(text string) int {
	m := caloriesPattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
