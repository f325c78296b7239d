package models

// Match is one ranked match. IDs increase monotonically, so they order matches
// in time.
type Match struct {
	ID        int64        `json:"id"`
	Forfeited bool         `json:"forfeited"`
	Players   []Player     `json:"players"`
	Result    *MatchResult `json:"result"`
	Changes   []EloChange  `json:"changes"`
}

// MatchResult holds the winner (nil UUID for a draw) and the completion time
// in milliseconds.
type MatchResult struct {
	UUID *string `json:"uuid"`
	Time int64   `json:"time"`
}

type EloChange struct {
	UUID   string `json:"uuid"`
	Change *int64 `json:"change"`
}

// Opponent returns the first player whose UUID differs from userUUID.
func (m Match) Opponent(userUUID string) (Player, bool) {
	for _, p := range m.Players {
		if p.UUID != userUUID {
			return p, true
		}
	}
	return Player{}, false
}

// EloChangeFor returns the rating delta applied to uuid in this match.
func (m Match) EloChangeFor(uuid string) (int64, bool) {
	for _, c := range m.Changes {
		if c.UUID == uuid && c.Change != nil {
			return *c.Change, true
		}
	}
	return 0, false
}

// WonBy reports whether uuid won the match.
func (m Match) WonBy(uuid string) bool {
	return m.Result != nil && m.Result.UUID != nil && *m.Result.UUID == uuid
}
