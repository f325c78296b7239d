package present

import (
	"github.com/vytor/rankedversus/internal/models"
)

// Counters is a win/draw/loss triple.
type Counters struct {
	Wins   int64 `json:"wins"`
	Draws  int64 `json:"draws"`
	Losses int64 `json:"losses"`
}

// OpponentCard is the rendered view of one head-to-head record.
type OpponentCard struct {
	UUID        string   `json:"uuid"`
	Nickname    string   `json:"nickname"`
	AvatarURL   string   `json:"avatar_url"`
	SearchPath  string   `json:"search_path"`
	Total       int64    `json:"total"`
	Record      Counters `json:"record"`
	WinAverage  string   `json:"win_average"`
	LossAverage string   `json:"loss_average"`
	Elo         string   `json:"elo"`
	EloTone     Tone     `json:"elo_tone"`
	VersusURL   string   `json:"versus_url"`

	// Raw keeps the numbers behind the card for clients that sort locally.
	Raw *models.OpponentResult `json:"raw"`
}

// NewOpponentCard renders r as seen by the tracked user nickname.
func NewOpponentCard(user string, r *models.OpponentResult) OpponentCard {
	elo, tone := EloLabel(r.EloChange)
	return OpponentCard{
		UUID:        r.Opponent.UUID,
		Nickname:    r.Opponent.Nickname,
		AvatarURL:   AvatarURL(r.Opponent.UUID),
		SearchPath:  SearchPath(r.Opponent.Nickname),
		Total:       r.Total,
		Record:      Counters{Wins: r.Wins, Draws: r.Draws, Losses: r.Losses},
		WinAverage:  FormatAverage(r.WinAverage),
		LossAverage: FormatAverage(r.LossAverage),
		Elo:         elo,
		EloTone:     tone,
		VersusURL:   VersusURL(user, r.Opponent.Nickname),
		Raw:         r,
	}
}

// OpponentCards renders results in order.
func OpponentCards(user string, results []*models.OpponentResult) []OpponentCard {
	cards := make([]OpponentCard, 0, len(results))
	for _, r := range results {
		cards = append(cards, NewOpponentCard(user, r))
	}
	return cards
}

// PlayerHeader is the tracked user's banner.
type PlayerHeader struct {
	UUID      string `json:"uuid"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatar_url"`
	Rating    string `json:"rating"`
}

func NewPlayerHeader(p models.Player) PlayerHeader {
	return PlayerHeader{
		UUID:      p.UUID,
		Nickname:  p.Nickname,
		AvatarURL: AvatarURL(p.UUID),
		Rating:    RatingLabel(p.EloRate),
	}
}

// MatchRow is one drill-down match between the tracked user and an opponent.
type MatchRow struct {
	ID        int64  `json:"id"`
	Time      string `json:"time"`
	Tone      Tone   `json:"tone"`
	Forfeited bool   `json:"forfeited"`
	URL       string `json:"url"`
}

// NewMatchRow renders m from the point of view of user. Unresolved matches
// show no time; draws are neither a win nor a loss.
func NewMatchRow(user models.Player, m models.Match) MatchRow {
	row := MatchRow{
		ID:        m.ID,
		Time:      missingVal,
		Tone:      ToneDraws,
		Forfeited: m.Forfeited,
		URL:       MatchURL(user.Nickname, m.ID),
	}
	if m.Result == nil {
		return row
	}
	row.Time = FormatMillis(m.Result.Time)
	switch {
	case m.Result.UUID == nil:
		row.Tone = ToneDraws
	case m.WonBy(user.UUID):
		row.Tone = ToneWins
	default:
		row.Tone = ToneLosses
	}
	return row
}

// MatchRows renders matches in order.
func MatchRows(user models.Player, matches []models.Match) []MatchRow {
	rows := make([]MatchRow, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, NewMatchRow(user, m))
	}
	return rows
}
