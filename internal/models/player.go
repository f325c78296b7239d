package models

// Player is a ranked account as returned by the API. UUID is the stable
// identity; Nickname may change between matches.
type Player struct {
	UUID     string `json:"uuid"`
	Nickname string `json:"nickname"`
	EloRate  *int   `json:"eloRate"`
}

type Season struct {
	StartsAt int64 `json:"startsAt"`
	EndsAt   int64 `json:"endsAt"`
	Number   int   `json:"number"`
}

type Leaderboard struct {
	Season Season   `json:"season"`
	Users  []Player `json:"users"`
}
