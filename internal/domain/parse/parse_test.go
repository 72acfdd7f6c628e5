package parse_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"quizboard/internal/domain/parse"
)

func TestResult(t *testing.T) {
	Convey("Given cleaned quiz-result lines", t, func() {
		Convey("When parsing a gold-medal line", func() {
			r, err := parse.Result("🥇 @alice – 10 (1 min 5 sec)")

			Convey("Then it should round-trip into a QuizResult", func() {
				So(err, ShouldBeNil)
				So(r.Username, ShouldEqual, "alice")
				So(r.Score, ShouldEqual, 10)
				So(r.Seconds, ShouldEqual, 65.0)
				So(r.TimeRaw, ShouldEqual, "1 min 5 sec")
			})
		})

		Convey("When parsing silver and bronze lines", func() {
			silver, err1 := parse.Result("🥈 @bob – 9 (50 sec)")
			bronze, err2 := parse.Result("🥉 @carol – 8 (58.2 sec)")

			Convey("Then both should parse", func() {
				So(err1, ShouldBeNil)
				So(silver.Username, ShouldEqual, "bob")
				So(silver.Score, ShouldEqual, 9)
				So(silver.Seconds, ShouldEqual, 50.0)

				So(err2, ShouldBeNil)
				So(bronze.Username, ShouldEqual, "carol")
				So(bronze.Seconds, ShouldEqual, 58.2)
			})
		})

		Convey("When parsing a numbered rank line", func() {
			r, err := parse.Result("  4. @dave – 7 (2 min)")

			Convey("Then it should parse with leading whitespace tolerated", func() {
				So(err, ShouldBeNil)
				So(r.Username, ShouldEqual, "dave")
				So(r.Score, ShouldEqual, 7)
				So(r.Seconds, ShouldEqual, 120.0)
			})
		})

		Convey("When the username has no @ prefix", func() {
			r, err := parse.Result("🥇 Yohannes T – 6 (48 sec)")

			Convey("Then the bare name should be captured and trimmed", func() {
				So(err, ShouldBeNil)
				So(r.Username, ShouldEqual, "Yohannes T")
				So(r.Score, ShouldEqual, 6)
			})
		})

		Convey("When the duration text is unparsable", func() {
			r, err := parse.Result("🥇 @alice – 10 (no answer)")

			Convey("Then seconds should degrade to zero and the raw text survive", func() {
				So(err, ShouldBeNil)
				So(r.Seconds, ShouldEqual, 0.0)
				So(r.TimeRaw, ShouldEqual, "no answer")
			})
		})

		Convey("When the line does not fit the grammar", func() {
			for _, line := range []string{
				"",
				"some header",
				"🥇 @alice", // no separator, score, or duration
				"@alice – 10 (45 sec)", // no rank marker
				"🥇 @alice - 10 (45 sec)", // hyphen, not en-dash
			} {
				_, err := parse.Result(line)
				So(err, ShouldEqual, parse.ErrNoMatch)
			}
		})

		Convey("When the username is only @ glyphs", func() {
			_, err := parse.Result("🥇 @ – 10 (45 sec)")

			Convey("Then the record should be rejected by the invariant", func() {
				So(err, ShouldEqual, parse.ErrRejected)
			})
		})
	})
}

func TestMatches(t *testing.T) {
	Convey("Given the result grammar", t, func() {
		Convey("When checking well-formed lines", func() {
			So(parse.Matches("🥇 @alice – 10 (1 min 5 sec)"), ShouldBeTrue)
			So(parse.Matches("4. @dave – 7 (2 min)"), ShouldBeTrue)
			So(parse.Matches("   12. bare name – 3 (45 sec)"), ShouldBeTrue)
		})

		Convey("When checking malformed lines", func() {
			So(parse.Matches("🥇 @alice scored ten"), ShouldBeFalse)
			So(parse.Matches("some header"), ShouldBeFalse)
			So(parse.Matches(""), ShouldBeFalse)
		})
	})
}
