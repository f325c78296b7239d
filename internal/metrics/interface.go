package metrics

// Metrics records what the aggregation pipeline does. It keeps callers
// independent of Prometheus.
type Metrics interface {
	IncWalks()
	IncWalkFailures()
	IncPagesFetched()
	AddMatchesFolded(n int)
	AddMatchesSkipped(n int)
	ObserveWalkDuration(seconds float64)
}

// Noop discards everything.
type Noop struct{}

func (Noop) IncWalks()                   {}
func (Noop) IncWalkFailures()            {}
func (Noop) IncPagesFetched()            {}
func (Noop) AddMatchesFolded(int)        {}
func (Noop) AddMatchesSkipped(int)       {}
func (Noop) ObserveWalkDuration(float64) {}

var _ Metrics = Noop{}
