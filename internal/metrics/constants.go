package metrics

// Metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"

	MetricNameSpawnsTotal     = "spawns_total"
	MetricNameClaimsTotal     = "claims_total"
	MetricNameSpamBlocksTotal = "spam_blocks_total"
	MetricNameTradesCompleted = "trades_completed_total"
	MetricNameCommandsTotal   = "commands_total"
	MetricNameMessagesTotal   = "chat_messages_total"
)

// Metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"

	HelpTextSpawnsTotal     = "Total number of characters spawned"
	HelpTextClaimsTotal     = "Total number of claim attempts"
	HelpTextSpamBlocksTotal = "Total number of spam blocks tripped"
	HelpTextTradesCompleted = "Total number of completed trades and gifts"
	HelpTextCommandsTotal   = "Total number of bot commands handled"
	HelpTextMessagesTotal   = "Total number of chat messages counted"
)

// Label names
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelKind    = "kind"
	LabelOutcome = "outcome"
	LabelCommand = "command"
)

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
