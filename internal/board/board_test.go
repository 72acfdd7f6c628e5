package board_test

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"quizboard/internal/board"
	"quizboard/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

const cleanedFile = "🥇 @alice – 10 (45 sec)\n" +
	"🥈 @bob – 9 (1 min 2 sec)\n" +
	"1. @carol – 8 (50 sec)\n" +
	"\n" +
	"\n" +
	"🥇 @alice – 9 (40 sec)\n" +
	"2. @bob – 8 (55 sec)\n" +
	"not a result line\n"

func TestRun(t *testing.T) {
	ctx := context.Background()

	Convey("Given a cleaned file spanning two quizzes", t, func() {
		dir := t.TempDir()
		input := filepath.Join(dir, "quiz_export_cleaned.txt")
		So(os.WriteFile(input, []byte(cleanedFile), 0o644), ShouldBeNil)

		builder := board.New()

		Convey("When building the leaderboard", func() {
			report, err := builder.Run(ctx, input)

			Convey("Then every result line should be accounted for", func() {
				So(err, ShouldBeNil)
				So(report.ResultsParsed, ShouldEqual, 5)
				So(report.LinesSkipped, ShouldEqual, 1)
				So(report.ResultsRejected, ShouldEqual, 0)
			})

			Convey("And participants should rank by composite score", func() {
				So(err, ShouldBeNil)
				So(report.Rows, ShouldHaveLength, 3)
				So(report.Rows[0].Username, ShouldEqual, "alice")
				So(report.Rows[1].Username, ShouldEqual, "bob")
				So(report.Rows[2].Username, ShouldEqual, "carol")
				So(report.Rows[0].Rank, ShouldEqual, 1)
				So(report.Rows[0].FinalScore, ShouldAlmostEqual, 100.0, 0.0001)
			})

			Convey("And the CSV should land beside the input with display precision", func() {
				So(err, ShouldBeNil)
				So(report.OutputPath, ShouldEqual, filepath.Join(dir, "quiz_export_cleaned_leaderboard.csv"))

				f, openErr := os.Open(report.OutputPath)
				So(openErr, ShouldBeNil)
				defer func() { _ = f.Close() }()

				records, readErr := csv.NewReader(f).ReadAll()
				So(readErr, ShouldBeNil)
				So(records, ShouldHaveLength, 4)
				So(records[1], ShouldResemble, []string{"1", "alice", "2", "9.50", "42.5", "100.00", "10★"})
				So(records[2], ShouldResemble, []string{"2", "bob", "2", "8.50", "58.5", "93.74", "10★"})
				So(records[3], ShouldResemble, []string{"3", "carol", "1", "8.00", "50.0", "71.05", "8★"})
			})
		})
	})

	Convey("Given a file whose only rank-marked line has a blank username", t, func() {
		dir := t.TempDir()
		input := filepath.Join(dir, "cleaned.txt")
		content := "🥈 @ – 5 (10 sec)\n🥇 @dana – 7 (30 sec)\n"
		So(os.WriteFile(input, []byte(content), 0o644), ShouldBeNil)

		builder := board.New()

		Convey("When building the leaderboard", func() {
			report, err := builder.Run(ctx, input)

			Convey("Then the unusable result should be rejected, not ranked", func() {
				So(err, ShouldBeNil)
				So(report.ResultsRejected, ShouldEqual, 1)
				So(report.ResultsParsed, ShouldEqual, 1)
				So(report.Rows, ShouldHaveLength, 1)
				So(report.Rows[0].Username, ShouldEqual, "dana")
			})
		})
	})

	Convey("Given a file with no parseable result lines", t, func() {
		dir := t.TempDir()
		input := filepath.Join(dir, "cleaned.txt")
		So(os.WriteFile(input, []byte("just chatter\nmore chatter\n"), 0o644), ShouldBeNil)

		builder := board.New()

		Convey("When building the leaderboard", func() {
			report, err := builder.Run(ctx, input)

			Convey("Then it should report no results and write nothing", func() {
				So(err, ShouldWrap, board.ErrNoResults)
				So(report, ShouldBeNil)

				_, statErr := os.Stat(filepath.Join(dir, "cleaned_leaderboard.csv"))
				So(os.IsNotExist(statErr), ShouldBeTrue)
			})
		})
	})

	Convey("Given a missing input file", t, func() {
		builder := board.New()

		Convey("When building the leaderboard", func() {
			report, err := builder.Run(ctx, filepath.Join(t.TempDir(), "absent.txt"))

			Convey("Then it should fail on read", func() {
				So(err, ShouldWrap, board.ErrReadInput)
				So(report, ShouldBeNil)
			})
		})
	})
}
