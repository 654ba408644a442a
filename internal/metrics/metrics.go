// Package metrics exposes the service's Prometheus instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "riskreporter"

var (
	// RunsTotal counts finished report runs by outcome. Status is one
	// of: success, extraction_failed, parse_failed, pipeline_failed.
	RunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "report_runs_total",
		Help:      "Completed report generation runs by outcome.",
	}, []string{"status"})

	// RunDuration observes the wall time of a full report run.
	RunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "report_run_duration_seconds",
		Help:      "Duration of full report generation runs.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
	})

	// RecordsRendered counts incident records that made it into a PDF.
	RecordsRendered = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_rendered_total",
		Help:      "Incident records rendered into reports.",
	})

	// AgentMessages counts messages produced per pipeline agent.
	AgentMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "agent_messages_total",
		Help:      "Messages yielded by pipeline agents.",
	}, []string{"agent"})

	// AgentErrors counts agent run failures per pipeline agent.
	AgentErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "agent_errors_total",
		Help:      "Errors raised while running pipeline agents.",
	}, []string{"agent"})
)

// Run outcome label values.
const (
	StatusSuccess          = "success"
	StatusExtractionFailed = "extraction_failed"
	StatusParseFailed      = "parse_failed"
	StatusPipelineFailed   = "pipeline_failed"
)
