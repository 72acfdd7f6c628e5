package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			metricsEnabledOpt := WithMetricsEnabled(true)

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(metricsEnabledOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(true),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestPipelineCounters(t *testing.T) {
	Convey("Given the global pipeline metrics", t, func() {
		Convey("When recording cleaner activity", func() {
			RecordLineRead()
			RecordLineDropped("prefix")
			RecordLineDropped("empty")
			RecordLineKept()
			RecordBlankLinesInserted(2)
			RecordAnomaly()

			Convey("Then the summary should reflect the counts", func() {
				summary, err := Summary()
				So(err, ShouldBeNil)
				So(summary["quizboard_pipeline_lines_read_total"], ShouldBeGreaterThanOrEqualTo, 1)
				So(summary["quizboard_pipeline_lines_dropped_total{rule=prefix}"], ShouldBeGreaterThanOrEqualTo, 1)
				So(summary["quizboard_pipeline_blank_lines_inserted_total"], ShouldBeGreaterThanOrEqualTo, 2)
			})
		})

		Convey("When recording aggregator activity", func() {
			RecordResultParsed()
			RecordLineSkipped()
			RecordResultRejected()
			UpdateParticipants(12)
			RecordStageDuration("aggregate", 3.5)

			Convey("Then the summary should include the gauge value", func() {
				summary, err := Summary()
				So(err, ShouldBeNil)
				So(summary["quizboard_pipeline_participants_ranked"], ShouldEqual, 12)
				So(summary["quizboard_pipeline_results_parsed_total"], ShouldBeGreaterThanOrEqualTo, 1)
			})
		})
	})
}
