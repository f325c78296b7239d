package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Service holds the Prometheus collectors for the pipeline.
type Service struct {
	Walks          prometheus.Counter
	WalkFailures   prometheus.Counter
	PagesFetched   prometheus.Counter
	MatchesFolded  prometheus.Counter
	MatchesSkipped prometheus.Counter
	WalkDuration   prometheus.Histogram
}

var _ Metrics = (*Service)(nil)

// NewHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the collectors.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		Walks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rankedversus_walks_total",
			Help: "Match history walks started.",
		}),
		WalkFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rankedversus_walk_failures_total",
			Help: "Walks aborted by a transport or payload error.",
		}),
		PagesFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rankedversus_pages_fetched_total",
			Help: "Match history pages fetched from the ranked API.",
		}),
		MatchesFolded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rankedversus_matches_folded_total",
			Help: "Matches folded into head-to-head records.",
		}),
		MatchesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rankedversus_matches_skipped_total",
			Help: "Matches skipped because of missing opponent, result or ELO change.",
		}),
		WalkDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "rankedversus_walk_duration_seconds",
			Help:    "Duration of a complete walk, fold and save.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
	}

	reg.MustRegister(
		s.Walks,
		s.WalkFailures,
		s.PagesFetched,
		s.MatchesFolded,
		s.MatchesSkipped,
		s.WalkDuration,
	)

	return s
}

func (s *Service) IncWalks()        { s.Walks.Inc() }
func (s *Service) IncWalkFailures() { s.WalkFailures.Inc() }
func (s *Service) IncPagesFetched() { s.PagesFetched.Inc() }

func (s *Service) AddMatchesFolded(n int)  { s.MatchesFolded.Add(float64(n)) }
func (s *Service) AddMatchesSkipped(n int) { s.MatchesSkipped.Add(float64(n)) }

func (s *Service) ObserveWalkDuration(seconds float64) { s.WalkDuration.Observe(seconds) }
