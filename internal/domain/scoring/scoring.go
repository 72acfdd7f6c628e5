// Package scoring aggregates per-quiz results into a ranked leaderboard.
//
// The composite score is the sum of three weighted components and can
// nominally exceed 100 when the most frequent participant is not also the
// most accurate one. That headroom is intentional and is not renormalized.
package scoring

import (
	"sort"
	"strconv"

	"quizboard/internal/domain/model"
)

// Default scoring configuration constants.
const (
	defaultParticipationWeight = 50
	defaultAccuracyWeight      = 25
	defaultSpeedWeight         = 25
	defaultSpeedThreshold      = 50 // seconds; at or under this, speed saturates
)

// StarStep is one row of the remark table: final scores at or above Min earn
// Stars stars.
type StarStep struct {
	Min   float64
	Stars int
}

// defaultStarTable maps final scores to star counts, best tier first. The
// zero-threshold floor row guarantees every score lands somewhere.
var defaultStarTable = []StarStep{
	{Min: 90, Stars: 10},
	{Min: 80, Stars: 9},
	{Min: 70, Stars: 8},
	{Min: 60, Stars: 7},
	{Min: 50, Stars: 6},
	{Min: 40, Stars: 5},
	{Min: 30, Stars: 4},
	{Min: 20, Stars: 3},
	{Min: 10, Stars: 2},
	{Min: 0, Stars: 1},
}

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithWeights sets the participation, accuracy and speed component weights.
func WithWeights(participation, accuracy, speed float64) Option {
	return func(a *Aggregator) {
		if participation >= 0 && accuracy >= 0 && speed >= 0 {
			a.participationWeight = participation
			a.accuracyWeight = accuracy
			a.speedWeight = speed
		}
	}
}

// WithSpeedThreshold sets the average time, in seconds, at or under which the
// speed component saturates.
func WithSpeedThreshold(seconds float64) Option {
	return func(a *Aggregator) {
		if seconds > 0 {
			a.speedThreshold = seconds
		}
	}
}

// WithStarTable replaces the remark table. Steps must be ordered best tier
// first.
func WithStarTable(steps []StarStep) Option {
	return func(a *Aggregator) {
		if len(steps) > 0 {
			a.starTable = append([]StarStep(nil), steps...)
		}
	}
}

// Aggregator folds a batch of quiz results into ranked leaderboard rows.
type Aggregator struct {
	participationWeight float64
	accuracyWeight      float64
	speedWeight         float64
	speedThreshold      float64
	starTable           []StarStep
}

// New creates an Aggregator with configuration options.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{
		participationWeight: defaultParticipationWeight,
		accuracyWeight:      defaultAccuracyWeight,
		speedWeight:         defaultSpeedWeight,
		speedThreshold:      defaultSpeedThreshold,
		starTable:           defaultStarTable,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// group accumulates one username's results.
type group struct {
	username     string
	count        int
	totalScore   int
	totalSeconds float64
}

// Leaderboard groups results by username, scores each group against the
// batch maxima, and returns rows fully sorted with 1-based ranks assigned.
// The sort order is final score desc, average points desc, average time asc,
// participation count desc, then username asc; ranking uses unrounded values,
// so the order is deterministic for any input order. An empty batch yields
// nil.
func (a *Aggregator) Leaderboard(results []model.QuizResult) []model.LeaderboardRow {
	if len(results) == 0 {
		return nil
	}

	groups := make(map[string]*group)
	for _, r := range results {
		g := groups[r.Username]
		if g == nil {
			g = &group{username: r.Username}
			groups[r.Username] = g
		}
		g.count++
		g.totalScore += r.Score
		g.totalSeconds += r.Seconds
	}

	// Batch maxima scale the participation and accuracy components.
	var maxCount int
	var maxAvgPoints float64
	rows := make([]model.LeaderboardRow, 0, len(groups))
	for _, g := range groups {
		avgPoints := float64(g.totalScore) / float64(g.count)
		if g.count > maxCount {
			maxCount = g.count
		}
		if avgPoints > maxAvgPoints {
			maxAvgPoints = avgPoints
		}
		rows = append(rows, model.LeaderboardRow{
			Username:            g.username,
			QuizzesParticipated: g.count,
			AvgPoints:           avgPoints,
			AvgTime:             g.totalSeconds / float64(g.count),
		})
	}

	for i := range rows {
		var participation, accuracy float64
		if maxCount > 0 {
			participation = float64(rows[i].QuizzesParticipated) / float64(maxCount) * a.participationWeight
		}
		if maxAvgPoints > 0 {
			accuracy = rows[i].AvgPoints / maxAvgPoints * a.accuracyWeight
		}
		speed := a.speedScore(rows[i].AvgTime)
		rows[i].FinalScore = participation + accuracy + speed
		rows[i].Remark = a.remark(rows[i].FinalScore)
	}

	sort.Slice(rows, func(i, j int) bool {
		ri, rj := rows[i], rows[j]
		if ri.FinalScore != rj.FinalScore {
			return ri.FinalScore > rj.FinalScore
		}
		if ri.AvgPoints != rj.AvgPoints {
			return ri.AvgPoints > rj.AvgPoints
		}
		if ri.AvgTime != rj.AvgTime {
			return ri.AvgTime < rj.AvgTime
		}
		if ri.QuizzesParticipated != rj.QuizzesParticipated {
			return ri.QuizzesParticipated > rj.QuizzesParticipated
		}
		return ri.Username < rj.Username
	})

	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

// speedScore rewards fast average completion. At or under the threshold the
// component saturates; above it, the reward decays inversely with time.
func (a *Aggregator) speedScore(avgTime float64) float64 {
	if avgTime <= a.speedThreshold {
		return a.speedWeight
	}
	if avgTime > 0 {
		return a.speedThreshold / avgTime * a.speedWeight
	}
	return 0
}

// remark renders the star-rating label for a final score.
func (a *Aggregator) remark(finalScore float64) string {
	for _, step := range a.starTable {
		if finalScore >= step.Min {
			return strconv.Itoa(step.Stars) + "★"
		}
	}
	return strconv.Itoa(a.starTable[len(a.starTable)-1].Stars) + "★"
}
