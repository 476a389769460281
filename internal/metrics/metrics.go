// Package metrics exposes the process's Prometheus instruments.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Game Metrics
var (
	SpawnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSpawnsTotal,
			Help: HelpTextSpawnsTotal,
		},
		[]string{LabelKind},
	)

	ClaimsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameClaimsTotal,
			Help: HelpTextClaimsTotal,
		},
		[]string{LabelOutcome},
	)

	SpamBlocksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSpamBlocksTotal,
			Help: HelpTextSpamBlocksTotal,
		},
	)

	TradesCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTradesCompleted,
			Help: HelpTextTradesCompleted,
		},
		[]string{LabelKind},
	)

	CommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCommandsTotal,
			Help: HelpTextCommandsTotal,
		},
		[]string{LabelCommand, LabelStatus},
	)

	MessagesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameMessagesTotal,
			Help: HelpTextMessagesTotal,
		},
	)
)

// RecordSpawn counts one spawn by trigger kind.
func RecordSpawn(kind string) {
	SpawnsTotal.WithLabelValues(kind).Inc()
}

// RecordClaim counts one claim attempt by outcome ("accepted" or the reject
// reason).
func RecordClaim(outcome string) {
	ClaimsTotal.WithLabelValues(outcome).Inc()
}

// RecordSpamBlock counts one tripped spam block.
func RecordSpamBlock() {
	SpamBlocksTotal.Inc()
}

// RecordTrade counts one completed trade or gift.
func RecordTrade(kind string) {
	TradesCompleted.WithLabelValues(kind).Inc()
}

// RecordCommand counts one handled bot command.
func RecordCommand(command, status string) {
	CommandsTotal.WithLabelValues(command, status).Inc()
}

// RecordMessage counts one chat message fed to the spawn counter.
func RecordMessage() {
	MessagesTotal.Inc()
}
