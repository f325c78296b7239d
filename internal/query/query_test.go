package query_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/rankedversus/internal/models"
	"github.com/vytor/rankedversus/internal/query"
)

func ptr(v int64) *int64 { return &v }

func totals(rs []*models.OpponentResult) []int64 {
	out := make([]int64, len(rs))
	for i, r := range rs {
		out[i] = r.Total
	}
	return out
}

func nick(r *models.OpponentResult) string { return r.Opponent.Nickname }

func TestFilter_GreaterThanOne(t *testing.T) {
	q := query.New(context.Background(), []query.FilterBy{{Field: query.FieldTotal, Comparator: query.Greater, Value: 1}}, nil)

	got := q.Filter([]*models.OpponentResult{{Total: 1}, {Total: 2}, {Total: 0}})
	assert.Equal(t, []int64{2}, totals(got))
}

func TestFilter_AllComparators(t *testing.T) {
	records := []*models.OpponentResult{{Total: 1}, {Total: 2}, {Total: 3}}
	tests := []struct {
		cmp  query.Comparator
		want []int64
	}{
		{query.Equal, []int64{2}},
		{query.Less, []int64{1}},
		{query.LessEqual, []int64{1, 2}},
		{query.Greater, []int64{3}},
		{query.GreaterEqual, []int64{2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.cmp.String(), func(t *testing.T) {
			q := query.New(context.Background(), []query.FilterBy{{Field: query.FieldTotal, Comparator: tt.cmp, Value: 2}}, nil)
			assert.Equal(t, tt.want, totals(q.Filter(records)))
		})
	}
}

func TestFilter_AllPredicatesMustHold(t *testing.T) {
	q := query.New(context.Background(), []query.FilterBy{
		{Field: query.FieldWins, Comparator: query.GreaterEqual, Value: 2},
		{Field: query.FieldEloChange, Comparator: query.Less, Value: 0},
	}, nil)

	got := q.Filter([]*models.OpponentResult{
		{Total: 1, Wins: 3, EloChange: 5},
		{Total: 2, Wins: 2, EloChange: -1},
		{Total: 3, Wins: 1, EloChange: -9},
	})
	assert.Equal(t, []int64{2}, totals(got))
}

func TestFilter_NullNeverMatches(t *testing.T) {
	records := []*models.OpponentResult{{Total: 1, WinAverage: nil}, {Total: 2, WinAverage: ptr(0)}}

	for _, c := range []query.Comparator{query.Equal, query.LessEqual, query.GreaterEqual, query.Comparator(9)} {
		q := query.New(context.Background(), []query.FilterBy{{Field: query.FieldWinAverage, Comparator: c, Value: 0}}, nil)
		assert.Equal(t, []int64{2}, totals(q.Filter(records)), c.String())
	}
}

func TestFilter_UnknownComparatorIsSatisfied(t *testing.T) {
	q := query.New(context.Background(), []query.FilterBy{{Field: query.FieldTotal, Comparator: query.Comparator(7), Value: 100}}, nil)
	assert.Len(t, q.Filter([]*models.OpponentResult{{Total: 1}, {Total: 2}}), 2)
}

func TestNew_DropsUnknownAndNonComparableFields(t *testing.T) {
	q := query.New(context.Background(),
		[]query.FilterBy{{Field: "bogus", Comparator: query.Equal, Value: 1}, {Field: query.FieldOpponent, Comparator: query.Equal}},
		[]query.SortBy{{Field: query.FieldOpponent}, {Field: "bogus"}, {Field: query.FieldWins, Descending: true}},
	)

	assert.Empty(t, q.Filters())
	assert.Equal(t, []query.SortBy{{Field: query.FieldWins, Descending: true}}, q.Sorts())
}

func TestFilter_OpponentFilterKeepsEveryRecord(t *testing.T) {
	q := query.New(context.Background(), []query.FilterBy{{Field: query.FieldOpponent, Comparator: query.Greater, Value: 1}}, nil)
	records := []*models.OpponentResult{{Total: 1}, {Total: 0}, {Total: 5}}

	assert.Equal(t, []int64{1, 0, 5}, totals(q.Filter(records)))
}

func TestSort_EloChangeDescending(t *testing.T) {
	q := query.New(context.Background(), nil, []query.SortBy{{Field: query.FieldEloChange, Descending: true}})

	got := q.Sort([]*models.OpponentResult{{EloChange: -5}, {EloChange: 10}, {EloChange: 0}})
	require.Len(t, got, 3)
	assert.Equal(t, []int64{10, 0, -5}, []int64{got[0].EloChange, got[1].EloChange, got[2].EloChange})
}

func TestSort_NullsLastInBothDirections(t *testing.T) {
	records := []*models.OpponentResult{
		{Opponent: models.Player{Nickname: "none"}},
		{WinAverage: ptr(300), Opponent: models.Player{Nickname: "slow"}},
		{WinAverage: ptr(200), Opponent: models.Player{Nickname: "fast"}},
	}

	asc := query.New(context.Background(), nil, []query.SortBy{{Field: query.FieldWinAverage}}).Sort(records)
	assert.Equal(t, []string{"fast", "slow", "none"}, []string{nick(asc[0]), nick(asc[1]), nick(asc[2])})

	desc := query.New(context.Background(), nil, []query.SortBy{{Field: query.FieldWinAverage, Descending: true}}).Sort(records)
	assert.Equal(t, []string{"slow", "fast", "none"}, []string{nick(desc[0]), nick(desc[1]), nick(desc[2])})
}

func TestSort_FallsThroughAndIsStable(t *testing.T) {
	records := []*models.OpponentResult{
		{Total: 5, Wins: 1, Opponent: models.Player{Nickname: "a"}},
		{Total: 5, Wins: 3, Opponent: models.Player{Nickname: "b"}},
		{Total: 9, Wins: 0, Opponent: models.Player{Nickname: "c"}},
		{Total: 5, Wins: 3, Opponent: models.Player{Nickname: "d"}},
	}
	q := query.New(context.Background(), nil, []query.SortBy{
		{Field: query.FieldTotal, Descending: true},
		{Field: query.FieldWins, Descending: false},
	})

	got := q.Sort(records)
	assert.Equal(t, []string{"c", "a", "b", "d"}, []string{nick(got[0]), nick(got[1]), nick(got[2]), nick(got[3])})
	assert.Equal(t, "a", nick(records[0]), "input is not reordered")
}

func TestApply_Defaults(t *testing.T) {
	q := query.New(context.Background(), query.DefaultFilters(), query.DefaultSorts())

	got := q.Apply([]*models.OpponentResult{{Total: 1}, {Total: 4}, {Total: 2}, {Total: 7}})
	assert.Equal(t, []int64{7, 4, 2}, totals(got))
}

func TestParseComparator(t *testing.T) {
	tests := []struct {
		in   string
		want query.Comparator
		ok   bool
	}{
		{"greater", query.Greater, true},
		{"LESS_EQUAL", query.LessEqual, true},
		{"-2", query.Less, true},
		{"0", query.Equal, true},
		{"5", query.Comparator(5), true},
		{"nope", 0, false},
	}
	for _, tt := range tests {
		got, ok := query.ParseComparator(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, tt.in)
		}
	}
}
