// Package model contains domain values passed between pipeline stages.
package model

// QuizResult is one participant's outcome in a single quiz instance.
// Results are created during parsing of the cleaned file and are immutable
// thereafter.
type QuizResult struct {
	Username string  // '@' markers stripped, never empty
	Score    int     // points earned in the quiz, non-negative
	Seconds  float64 // completion time derived from TimeRaw
	TimeRaw  string  // original duration text, kept for audit/display
}

// Valid reports whether the result satisfies the creation invariant.
// Results failing it are discarded, not stored.
func (r QuizResult) Valid() bool {
	return r.Username != "" && r.Score >= 0 && r.Seconds >= 0
}

// LeaderboardRow is one participant's cumulative standing across all quizzes.
type LeaderboardRow struct {
	Rank                int
	Username            string
	QuizzesParticipated int
	AvgPoints           float64
	AvgTime             float64
	FinalScore          float64
	Remark              string
}
