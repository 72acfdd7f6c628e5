// Package duration converts free-text quiz completion times into seconds.
package duration

import (
	"regexp"
	"strconv"
	"strings"
)

const secondsPerMinute = 60

// The grammar is two optional components: "<int> min" and "<number> sec".
// time.ParseDuration cannot read this shape, so the components are matched
// directly.
var (
	minRe = regexp.MustCompile(`(\d+)\s*min`)
	secRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*sec`)
)

// Seconds interprets free text like "1 min 35 sec" or "45.6 sec" as a number
// of seconds. Matching is case-insensitive and whitespace-tolerant; text
// matching neither component yields 0, and a malformed numeric degrades to 0
// for that component. It never fails: one bad duration must not abort a
// batch.
func Seconds(text string) float64 {
	text = strings.ToLower(strings.TrimSpace(text))

	var total float64
	if m := minRe.FindStringSubmatch(text); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			total += float64(v) * secondsPerMinute
		}
	}
	if m := secRe.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			total += v
		}
	}
	return total
}
