// Package textline classifies raw chat-export lines and holds the static
// tables that drive filtering and blank-line spacing during cleaning.
package textline

import (
	"regexp"
	"strings"
)

// Type is the classification of a single line of export text.
type Type int

const (
	// None is the state before any line has been emitted.
	None Type = iota
	// Empty is a line that is blank after trimming.
	Empty
	// Gold is a line opening with the first-place glyph.
	Gold
	// Number is a line opening with a "<digits>." rank token.
	Number
	// Other is everything else.
	Other
)

func (t Type) String() string {
	switch t {
	case None:
		return "NONE"
	case Empty:
		return "EMPTY"
	case Gold:
		return "GOLD"
	case Number:
		return "NUMBER"
	case Other:
		return "OTHER"
	default:
		return "UNKNOWN"
	}
}

// GoldMarker is the first-place glyph that opens each quiz's top announcement.
const GoldMarker = "🥇"

// numberRe matches a leading numbered-rank token; leading whitespace is part
// of the line, not trimmed first.
var numberRe = regexp.MustCompile(`^\s*\d+\.`)

// Classify returns the Type of a raw line.
func Classify(line string) Type {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return Empty
	case strings.HasPrefix(trimmed, GoldMarker):
		return Gold
	case numberRe.MatchString(line):
		return Number
	default:
		return Other
	}
}

// Filter rule identifiers, used in reports and metric labels.
const (
	RulePrefix = "prefix"
	RulePhrase = "phrase"
	RuleEmpty  = "empty"
)

// dropPrefixes are the metadata marker glyphs opening lines that carry no
// quiz results (pen, trophy, stopwatch, face).
var dropPrefixes = []string{"🖊", "🏆", "⏱", "🤓"}

// dropPhrases are substrings identifying noise lines: the foreign-language
// chapter heading marker, the quiz title banner, and the operator name.
var dropPhrases = []string{
	"ምዕራፍ",
	"Top results in the quiz",
	"Yonas Aye",
}

// DropRule reports whether a raw line is dropped during cleaning, and which
// rule applies. Retained lines return ("", false).
func DropRule(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	for _, p := range dropPrefixes {
		if strings.HasPrefix(trimmed, p) {
			return RulePrefix, true
		}
	}
	for _, s := range dropPhrases {
		if strings.Contains(trimmed, s) {
			return RulePhrase, true
		}
	}
	if trimmed == "" {
		return RuleEmpty, true
	}
	return "", false
}

// transition keys the spacing table on consecutive emitted-line types.
type transition struct {
	prev, cur Type
}

// spacingTable holds the blank lines emitted before cur given prev. Only the
// boundary from a ranked list to the next quiz's top announcement gets
// spacing; a ranked list stays contiguous. Absent transitions emit nothing.
var spacingTable = map[transition]int{
	{Number, Gold}:   2,
	{Number, Number}: 0,
}

// BlankLinesBefore returns how many blank lines to emit before a line of type
// cur when the previously emitted line classified as prev.
func BlankLinesBefore(prev, cur Type) int {
	return spacingTable[transition{prev: prev, cur: cur}]
}
