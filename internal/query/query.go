package query

import (
	"cmp"
	"context"
	"slices"

	"github.com/vytor/rankedversus/internal/logger"
	"github.com/vytor/rankedversus/internal/models"
)

// FilterBy keeps records whose Field compares to Value.
type FilterBy struct {
	Field      Field
	Comparator Comparator
	Value      int64
}

// SortBy orders records by Field.
type SortBy struct {
	Field      Field
	Descending bool
}

// DefaultFilters hides opponents met only once.
func DefaultFilters() []FilterBy {
	return []FilterBy{{Field: FieldTotal, Comparator: Greater, Value: 1}}
}

// DefaultSorts puts the most played opponents first. The second key is the
// slot a secondary user choice would replace.
func DefaultSorts() []SortBy {
	return []SortBy{
		{Field: FieldTotal, Descending: true},
		{Field: FieldTotal, Descending: true},
	}
}

type predicate struct {
	FilterBy
	get accessor
}

type sortKey struct {
	SortBy
	get accessor
}

// Query is a compiled set of filter predicates and sort keys.
type Query struct {
	predicates []predicate
	keys       []sortKey
}

// New compiles criteria. Unknown fields and non-comparable fields are dropped
// with a warning, for filters as well as sort keys, so a filter on opponent
// keeps every record. A predicate with an unknown comparator is kept but
// always holds, so it still rejects records whose field is null.
func New(ctx context.Context, filters []FilterBy, sorts []SortBy) *Query {
	log := logger.FromContext(ctx).WithPrefix("query")

	q := &Query{}
	for _, f := range filters {
		get, err := lookup(f.Field)
		if err != nil {
			log.Warn("ignoring filter: %v", err)
			continue
		}
		if !f.Comparator.valid() {
			log.Warn("filter operation %d doesn't exist, treating %s filter as satisfied", int(f.Comparator), f.Field)
		}
		q.predicates = append(q.predicates, predicate{FilterBy: f, get: get})
	}
	for _, s := range sorts {
		get, err := lookup(s.Field)
		if err != nil {
			log.Warn("cannot sort by %s: %v", s.Field, err)
			continue
		}
		q.keys = append(q.keys, sortKey{SortBy: s, get: get})
	}
	return q
}

// Filters returns the predicates that survived compilation.
func (q *Query) Filters() []FilterBy {
	out := make([]FilterBy, len(q.predicates))
	for i, p := range q.predicates {
		out[i] = p.FilterBy
	}
	return out
}

// Sorts returns the sort keys that survived compilation.
func (q *Query) Sorts() []SortBy {
	out := make([]SortBy, len(q.keys))
	for i, k := range q.keys {
		out[i] = k.SortBy
	}
	return out
}

// Filter returns the records that satisfy every predicate.
func (q *Query) Filter(results []*models.OpponentResult) []*models.OpponentResult {
	out := make([]*models.OpponentResult, 0, len(results))
	for _, r := range results {
		if q.keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func (q *Query) keep(r *models.OpponentResult) bool {
	for _, p := range q.predicates {
		v, ok := p.get(r)
		if !ok {
			return false
		}
		if !p.Comparator.holds(v, p.Value) {
			return false
		}
	}
	return true
}

// Sort returns a stably sorted copy of results. Keys apply in order; null
// values go last whatever the direction.
func (q *Query) Sort(results []*models.OpponentResult) []*models.OpponentResult {
	out := slices.Clone(results)
	slices.SortStableFunc(out, q.compare)
	return out
}

func (q *Query) compare(a, b *models.OpponentResult) int {
	for _, k := range q.keys {
		va, okA := k.get(a)
		vb, okB := k.get(b)
		switch {
		case !okA && !okB:
			continue
		case !okA:
			return 1
		case !okB:
			return -1
		}
		c := cmp.Compare(va, vb)
		if c == 0 {
			continue
		}
		if k.Descending {
			return -c
		}
		return c
	}
	return 0
}

// Apply filters then sorts.
func (q *Query) Apply(results []*models.OpponentResult) []*models.OpponentResult {
	return q.Sort(q.Filter(results))
}
