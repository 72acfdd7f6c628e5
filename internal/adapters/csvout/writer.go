// Package csvout serializes leaderboard rows to CSV.
package csvout

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"quizboard/internal/domain/model"
)

// header is the fixed leaderboard column set.
var header = []string{
	"Rank",
	"Username",
	"Quizzes_Participated",
	"Avg_Points",
	"Avg_Time",
	"Final_Score",
	"Remark",
}

// Write serializes rows to path. Averages and the final score are printed
// with fixed precision (2, 1 and 2 decimals); ranking upstream already used
// the unrounded values, so rounding here is display-only.
func Write(path string, rows []model.LeaderboardRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create leaderboard file: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.Rank),
			r.Username,
			strconv.Itoa(r.QuizzesParticipated),
			strconv.FormatFloat(r.AvgPoints, 'f', 2, 64),
			strconv.FormatFloat(r.AvgTime, 'f', 1, 64),
			strconv.FormatFloat(r.FinalScore, 'f', 2, 64),
			r.Remark,
		}
		if err := w.Write(record); err != nil {
			_ = f.Close()
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flush leaderboard: %w", err)
	}
	return f.Close()
}
