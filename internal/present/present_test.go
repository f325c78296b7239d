package present_test

import (
	"bytes"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/rankedversus/internal/models"
	"github.com/vytor/rankedversus/internal/present"
	"github.com/vytor/rankedversus/internal/query"
)

func ptr[T any](v T) *T { return &v }

func TestFormatSeconds(t *testing.T) {
	tests := map[int64]string{
		0:    "0:00",
		5:    "0:05",
		60:   "1:00",
		754:  "12:34",
		3600: "60:00",
		-3:   "0:00",
	}
	for in, want := range tests {
		assert.Equal(t, want, present.FormatSeconds(in), in)
	}
}

func TestFormatAverageAndMillis(t *testing.T) {
	assert.Equal(t, "--", present.FormatAverage(nil))
	assert.Equal(t, "10:00", present.FormatAverage(ptr(int64(600))))
	assert.Equal(t, "1:01", present.FormatMillis(61_999))
}

func TestEloLabel(t *testing.T) {
	label, tone := present.EloLabel(12)
	assert.Equal(t, "+12 ELO", label)
	assert.Equal(t, present.ToneWins, tone)

	label, tone = present.EloLabel(-7)
	assert.Equal(t, "-7 ELO", label)
	assert.Equal(t, present.ToneLosses, tone)

	label, tone = present.EloLabel(0)
	assert.Equal(t, "0 ELO", label)
	assert.Equal(t, present.ToneDraws, tone)
}

func TestLinks(t *testing.T) {
	assert.Equal(t, "https://mineskin.eu/helm/abc", present.AvatarURL("abc"))
	assert.Equal(t, "https://mcsrranked.com/stats/Me/vs/Opp", present.VersusURL("Me", "Opp"))
	assert.Equal(t, "https://mcsrranked.com/stats/Me/42?matches=ranked&sort=newest", present.MatchURL("Me", 42))
	assert.Equal(t, "Unrated", present.RatingLabel(nil))
	assert.Equal(t, "1500 ELO", present.RatingLabel(ptr(1500)))
}

func TestNewOpponentCard(t *testing.T) {
	card := present.NewOpponentCard("Me", &models.OpponentResult{
		Total: 4, Wins: 2, Draws: 1, Losses: 1,
		WinAverage: ptr(int64(605)),
		EloChange:  -3,
		Opponent:   models.Player{UUID: "u-opp", Nickname: "Opp"},
	})

	assert.Equal(t, "Opp", card.Nickname)
	assert.Equal(t, "https://mineskin.eu/helm/u-opp", card.AvatarURL)
	assert.Equal(t, "/users/Opp", card.SearchPath)
	assert.Equal(t, present.Counters{Wins: 2, Draws: 1, Losses: 1}, card.Record)
	assert.Equal(t, "10:05", card.WinAverage)
	assert.Equal(t, "--", card.LossAverage)
	assert.Equal(t, "-3 ELO", card.Elo)
	assert.Equal(t, present.ToneLosses, card.EloTone)
	assert.Equal(t, "https://mcsrranked.com/stats/Me/vs/Opp", card.VersusURL)
}

func TestNewMatchRow(t *testing.T) {
	me := models.Player{UUID: "me", Nickname: "Me"}

	won := present.NewMatchRow(me, models.Match{ID: 1, Result: &models.MatchResult{UUID: ptr("me"), Time: 605_400}})
	assert.Equal(t, "10:05", won.Time)
	assert.Equal(t, present.ToneWins, won.Tone)

	lost := present.NewMatchRow(me, models.Match{ID: 2, Forfeited: true, Result: &models.MatchResult{UUID: ptr("opp"), Time: 1_000}})
	assert.Equal(t, present.ToneLosses, lost.Tone)
	assert.True(t, lost.Forfeited)

	draw := present.NewMatchRow(me, models.Match{ID: 3, Result: &models.MatchResult{Time: 0}})
	assert.Equal(t, present.ToneDraws, draw.Tone)

	unresolved := present.NewMatchRow(me, models.Match{ID: 4})
	assert.Equal(t, "--", unresolved.Time)
	assert.Equal(t, "https://mcsrranked.com/stats/Me/4?matches=ranked&sort=newest", unresolved.URL)
}

func TestParseCriteria_Defaults(t *testing.T) {
	c := present.ParseCriteria(url.Values{})
	assert.Equal(t, query.DefaultFilters(), c.Filters)
	assert.Equal(t, query.DefaultSorts(), c.Sorts)
}

func TestParseCriteria_OverridesFirstKeys(t *testing.T) {
	c := present.ParseCriteria(url.Values{
		"fb": {"wins"},
		"fc": {"-1"},
		"fv": {"5"},
		"sb": {"elo_change"},
		"sd": {"0"},
	})

	require.Len(t, c.Filters, 1)
	assert.Equal(t, query.FilterBy{Field: query.FieldWins, Comparator: query.LessEqual, Value: 5}, c.Filters[0])
	require.Len(t, c.Sorts, 2)
	assert.Equal(t, query.SortBy{Field: query.FieldEloChange, Descending: false}, c.Sorts[0])
	assert.Equal(t, query.SortBy{Field: query.FieldTotal, Descending: true}, c.Sorts[1], "second key untouched")
}

func TestParseCriteria_NonNumericFallsBackToOne(t *testing.T) {
	c := present.ParseCriteria(url.Values{"fc": {"abc"}, "fv": {"nope"}, "sd": {"1"}})
	assert.Equal(t, query.GreaterEqual, c.Filters[0].Comparator)
	assert.Equal(t, int64(1), c.Filters[0].Value)
	assert.True(t, c.Sorts[0].Descending)

	c = present.ParseCriteria(url.Values{"fv": {"12abc"}, "fc": {"greater"}})
	assert.Equal(t, int64(12), c.Filters[0].Value)
	assert.Equal(t, query.Greater, c.Filters[0].Comparator)
}

func TestCriteria_ValuesRoundTrip(t *testing.T) {
	in := url.Values{"fb": {"losses"}, "fc": {"2"}, "fv": {"3"}, "sb": {"win_average"}, "sd": {"1"}}
	assert.Equal(t, in, present.ParseCriteria(in).Values())
}

func TestTableWriter_Opponents(t *testing.T) {
	var buf bytes.Buffer
	tw := present.NewTableWriter(&buf)

	cards := present.OpponentCards("Me", []*models.OpponentResult{
		{Total: 3, Wins: 2, Losses: 1, EloChange: 9, WinAverage: ptr(int64(75)), Opponent: models.Player{Nickname: "Alpha"}},
		{Total: 2, Draws: 2, Opponent: models.Player{Nickname: "Bravo"}},
	})
	require.NoError(t, tw.Opponents(cards))

	out := buf.String()
	assert.Contains(t, out, "OPPONENT")
	assert.Contains(t, out, "Alpha")
	assert.Contains(t, out, "+9 ELO")
	assert.Contains(t, out, "1:15")
	assert.Contains(t, out, "Bravo")
	assert.Contains(t, out, "--")
}

func TestTableWriter_MatchesAndLeaderboard(t *testing.T) {
	var buf bytes.Buffer
	tw := present.NewTableWriter(&buf)

	me := models.Player{UUID: "me", Nickname: "Me"}
	require.NoError(t, tw.Matches(present.MatchRows(me, []models.Match{
		{ID: 77, Forfeited: true, Result: &models.MatchResult{UUID: ptr("me"), Time: 90_000}},
	})))
	require.NoError(t, tw.Leaderboard(5, []present.PlayerHeader{present.NewPlayerHeader(models.Player{Nickname: "Top", EloRate: ptr(2500)})}))

	out := buf.String()
	assert.Contains(t, out, "77")
	assert.Contains(t, out, "1:30")
	assert.Contains(t, out, "forfeited")
	assert.Contains(t, out, "Season 5")
	assert.Contains(t, out, "2500 ELO")
}
