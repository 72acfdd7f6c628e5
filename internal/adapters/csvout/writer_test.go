package csvout_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"quizboard/internal/adapters/csvout"
	"quizboard/internal/domain/model"
)

func TestWrite(t *testing.T) {
	Convey("Given ranked leaderboard rows", t, func() {
		rows := []model.LeaderboardRow{
			{Rank: 1, Username: "alice", QuizzesParticipated: 3, AvgPoints: 9.666666, AvgTime: 42.333333, FinalScore: 100.0, Remark: "10★"},
			{Rank: 2, Username: "bob", QuizzesParticipated: 2, AvgPoints: 7.5, AvgTime: 52.5, FinalScore: 76.190476, Remark: "8★"},
		}
		path := filepath.Join(t.TempDir(), "leaderboard.csv")

		Convey("When writing the CSV", func() {
			err := csvout.Write(path, rows)

			Convey("Then the file should parse back with the fixed header", func() {
				So(err, ShouldBeNil)

				f, openErr := os.Open(path)
				So(openErr, ShouldBeNil)
				defer func() { _ = f.Close() }()

				records, readErr := csv.NewReader(f).ReadAll()
				So(readErr, ShouldBeNil)
				So(records, ShouldHaveLength, 3)
				So(records[0], ShouldResemble, []string{
					"Rank", "Username", "Quizzes_Participated", "Avg_Points", "Avg_Time", "Final_Score", "Remark",
				})
			})

			Convey("And numeric fields should use display precision", func() {
				So(err, ShouldBeNil)

				f, openErr := os.Open(path)
				So(openErr, ShouldBeNil)
				defer func() { _ = f.Close() }()

				records, readErr := csv.NewReader(f).ReadAll()
				So(readErr, ShouldBeNil)
				So(records[1], ShouldResemble, []string{"1", "alice", "3", "9.67", "42.3", "100.00", "10★"})
				So(records[2], ShouldResemble, []string{"2", "bob", "2", "7.50", "52.5", "76.19", "8★"})
			})
		})

		Convey("When the target directory does not exist", func() {
			err := csvout.Write(filepath.Join(t.TempDir(), "missing", "leaderboard.csv"), rows)

			Convey("Then it should fail", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
