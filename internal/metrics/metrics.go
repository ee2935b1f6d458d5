package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	ChecksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scoopsd_checks_total",
		Help: "Validity checks processed, labeled by outcome",
	}, []string{"outcome"})
	SummariesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scoopsd_summaries_total",
		Help: "Summaries produced successfully",
	})
	FetchFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scoopsd_fetch_failures_total",
		Help: "Article fetches that failed",
	})
	ProviderFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scoopsd_provider_failures_total",
		Help: "Summarization provider calls that failed",
	})
)

func init() {
	prometheus.MustRegister(ChecksTotal, SummariesTotal, FetchFailures, ProviderFailures)
}
