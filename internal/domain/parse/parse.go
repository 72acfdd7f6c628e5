// Package parse extracts quiz results from cleaned export lines.
package parse

import (
	"regexp"
	"strconv"
	"strings"

	"quizboard/internal/domain/duration"
	"quizboard/internal/domain/model"
)

// resultRe matches one ranked participant announcement: a rank glyph or a
// "<digits>." token, a username (an @-prefixed run, or any run free of the
// en-dash separator), the en-dash, an integer score, and a parenthesized
// free-text duration.
var resultRe = regexp.MustCompile(`^\s*(?:🥇|🥈|🥉|\d+\.)\s*(@\S+|[^–\n]+)\s*–\s*(\d+)\s*\((.*?)\)`)

// Result attempts to extract a QuizResult from one line of cleaned text.
//
// A line that does not fit the grammar returns ErrNoMatch; headers and blanks
// are expected to do so and callers treat it as a skip, not a failure. A line
// that matches but violates the result invariant returns ErrRejected. A
// malformed score degrades to 0 rather than failing the line.
func Result(line string) (model.QuizResult, error) {
	m := resultRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return model.QuizResult{}, ErrNoMatch
	}

	username := strings.TrimSpace(strings.ReplaceAll(m[1], "@", ""))
	score, err := strconv.Atoi(m[2])
	if err != nil {
		score = 0
	}
	timeRaw := m[3]

	r := model.QuizResult{
		Username: username,
		Score:    score,
		Seconds:  duration.Seconds(timeRaw),
		TimeRaw:  timeRaw,
	}
	if !r.Valid() {
		return model.QuizResult{}, ErrRejected
	}
	return r, nil
}

// Matches reports whether a line fits the result grammar, without extracting.
// The cleaner's validator uses it to flag rank-marked lines that would not
// parse.
func Matches(line string) bool {
	return resultRe.MatchString(line)
}
