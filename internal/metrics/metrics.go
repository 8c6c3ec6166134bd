package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal *prometheus.CounterVec
	ballotsCastTotal  *prometheus.CounterVec
	blankVotesTotal   *prometheus.CounterVec
	registerOnce      sync.Once
)

// Register initializes Prometheus metrics on the default registry.
func Register() {
	registerOnce.Do(func() {
		httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "evote",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests processed by the e-vote API.",
		}, []string{"method", "path", "status"})
		ballotsCastTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "evote",
			Name:      "ballots_cast_total",
			Help:      "Ballots finalized, per election.",
		}, []string{"election_id"})
		blankVotesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "evote",
			Name:      "blank_votes_total",
			Help:      "Offices left blank on finalized ballots, per election.",
		}, []string{"election_id"})
	})
}

// IncRequest increments the http_requests_total counter with the given labels.
func IncRequest(method, path string, status int) {
	if httpRequestsTotal == nil {
		return
	}
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

// ObserveBallot records one finalized ballot and how many of its offices were blank.
func ObserveBallot(electionID string, blank int) {
	if ballotsCastTotal == nil {
		return
	}
	ballotsCastTotal.WithLabelValues(electionID).Inc()
	if blank > 0 {
		blankVotesTotal.WithLabelValues(electionID).Add(float64(blank))
	}
}
