package aggregate

import (
	"github.com/vytor/rankedversus/internal/models"
)

// Results maps opponent uuid to the running head-to-head record.
type Results map[string]*models.OpponentResult

// Loaded is the number of matches folded into the results.
func (r Results) Loaded() int64 {
	var n int64
	for _, res := range r {
		n += res.Total
	}
	return n
}

// Values returns the records in no particular order.
func (r Results) Values() []*models.OpponentResult {
	out := make([]*models.OpponentResult, 0, len(r))
	for _, res := range r {
		out = append(out, res)
	}
	return out
}

// Group is the batch of this walk's matches against one opponent, with the most
// recently seen profile of that opponent.
type Group struct {
	Opponent models.Player
	Matches  []models.Match
}

// Session is the state of one aggregation run for one tracked user: the cursor
// pair, matches collected but not yet folded, and the folded results.
type Session struct {
	UserUUID string

	// After is the newest match id already folded. Pages never go at or below it.
	After int64
	// Before is the oldest match id seen in this walk, nil until the first page.
	Before *int64

	Pending map[string]*Group
	Results Results
}

// NewSession starts a session from a cached cursor and result map. A nil
// results map starts empty.
func NewSession(userUUID string, after int64, results Results) *Session {
	if results == nil {
		results = Results{}
	}
	return &Session{
		UserUUID: userUUID,
		After:    after,
		Pending:  map[string]*Group{},
		Results:  results,
	}
}

// Add queues m for folding under opponent and moves Before down to m.ID when
// m is older than anything seen so far.
func (s *Session) Add(opponent models.Player, m models.Match) {
	if g, ok := s.Pending[opponent.UUID]; ok {
		g.Matches = append(g.Matches, m)
		g.Opponent = opponent
	} else {
		s.Pending[opponent.UUID] = &Group{Opponent: opponent, Matches: []models.Match{m}}
	}
	s.Observe(m.ID)
}

// Observe lowers Before to id if id is older than anything seen so far.
func (s *Session) Observe(id int64) {
	if s.Before == nil || id < *s.Before {
		s.Before = &id
	}
}

// PendingCount is the number of matches waiting to be folded.
func (s *Session) PendingCount() int {
	n := 0
	for _, g := range s.Pending {
		n += len(g.Matches)
	}
	return n
}
