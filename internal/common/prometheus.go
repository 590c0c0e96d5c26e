package common

import "github.com/prometheus/client_golang/prometheus"

const (
	HTTPRequestTotal           = "http_requests_total"
	HTTPRequestDurationSeconds = "http_request_duration_seconds"
	SubmissionTotal            = "submissions_total"
	ReviewTotal                = "reviews_total"
	ClaimTotal                 = "claims_total"
	PointsCreditedTotal        = "points_credited_total"
)

var (
	PromCounters = map[string]*prometheus.CounterVec{
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequestTotal,
			Help: "Count of all HTTP requests",
		}, []string{"method", "path", "code"}),
		SubmissionTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: SubmissionTotal,
			Help: "Count of created submissions",
		}, []string{"task_type"}),
		ReviewTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: ReviewTotal,
			Help: "Count of reviewed submissions",
		}, []string{"status"}),
		ClaimTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: ClaimTotal,
			Help: "Count of reward claims",
		}, []string{"result"}),
		PointsCreditedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: PointsCreditedTotal,
			Help: "Sum of points credited by approvals",
		}, []string{}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: HTTPRequestDurationSeconds,
			Help: "Duration of all HTTP requests",
		}, []string{"method", "path"}),
	}
)

// PromCollectors returns every collector declared above.
func PromCollectors() []prometheus.Collector {
	var cs []prometheus.Collector
	for _, counter := range PromCounters {
		cs = append(cs, counter)
	}

	for _, histogram := range PromHistograms {
		cs = append(cs, histogram)
	}

	return cs
}
