package metrics

import "sync"

// Counts is a point-in-time copy of a Mock.
type Counts struct {
	Walks          int
	WalkFailures   int
	PagesFetched   int
	MatchesFolded  int
	MatchesSkipped int
	Durations      []float64
}

// Mock counts calls for assertions in tests. It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex
	c  Counts
}

var _ Metrics = (*Mock)(nil)

func NewMock() *Mock { return &Mock{} }

func (m *Mock) IncWalks()        { m.locked(func() { m.c.Walks++ }) }
func (m *Mock) IncWalkFailures() { m.locked(func() { m.c.WalkFailures++ }) }
func (m *Mock) IncPagesFetched() { m.locked(func() { m.c.PagesFetched++ }) }

func (m *Mock) AddMatchesFolded(n int)  { m.locked(func() { m.c.MatchesFolded += n }) }
func (m *Mock) AddMatchesSkipped(n int) { m.locked(func() { m.c.MatchesSkipped += n }) }

func (m *Mock) ObserveWalkDuration(seconds float64) {
	m.locked(func() { m.c.Durations = append(m.c.Durations, seconds) })
}

// Snapshot returns a copy of the counters.
func (m *Mock) Snapshot() Counts {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.c
	out.Durations = append([]float64(nil), m.c.Durations...)
	return out
}

func (m *Mock) locked(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn()
}
