package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "timecard"

// Clock-in outcomes
const (
	ClockInCreated     = "created"
	ClockInTooFar      = "too_far"
	ClockInLocked      = "locked"
	ClockInRolledBack  = "rolled_back"
	ClockInFailed      = "failed"
	VerifyAccepted     = "accepted"
	VerifyWrongCode    = "wrong_code"
	VerifyInvalidState = "invalid_state"
	VerifyExpired      = "expired"
	VerifyLockedOut    = "locked_out"
)

// Registry holds every collector exported on /metrics
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	httpDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	clockIns = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "clock_in_attempts_total",
		Help:      "Clock-in attempts by outcome.",
	}, []string{"outcome"})

	verifications = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "clock_in_verifications_total",
		Help:      "Clock-in code verifications by outcome.",
	}, []string{"outcome"})

	smsFailures = factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sms_failures_total",
		Help:      "Outbound SMS messages the provider rejected.",
	})

	sweptTimecards = factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "unverified_timecards_swept_total",
		Help:      "Unverified timecards removed after their code expired.",
	})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Handler serves the registry in the Prometheus exposition format
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}

// ObserveHTTPRequest records one served request
func ObserveHTTPRequest(route, method string, status int, latency time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(route, method).Observe(latency.Seconds())
}

// ClockInAttempt counts a clock-in by outcome
func ClockInAttempt(outcome string) {
	clockIns.WithLabelValues(outcome).Inc()
}

// ClockInVerification counts a code verification by outcome
func ClockInVerification(outcome string) {
	verifications.WithLabelValues(outcome).Inc()
}

// SMSFailure counts a provider failure
func SMSFailure() {
	smsFailures.Inc()
}

// TimecardsSwept adds n swept timecards
func TimecardsSwept(n int) {
	sweptTimecards.Add(float64(n))
}
