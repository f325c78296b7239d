// Package present turns head-to-head records and matches into view models
// for the local viewer and the CLI.
package present

import (
	"fmt"
	"net/url"
)

// Tone classifies a value as good, bad or neutral for the tracked user.
type Tone string

const (
	ToneWins   Tone = "wins"
	ToneLosses Tone = "losses"
	ToneDraws  Tone = "draws"
)

const (
	avatarURL  = "https://mineskin.eu/helm/%s"
	statsURL   = "https://mcsrranked.com/stats/%s"
	missingVal = "--"
)

// FormatSeconds renders whole seconds as m:ss.
func FormatSeconds(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// FormatAverage renders an optional average in seconds, "--" when absent.
func FormatAverage(seconds *int64) string {
	if seconds == nil {
		return missingVal
	}
	return FormatSeconds(*seconds)
}

// FormatMillis renders a match time in milliseconds as m:ss, truncating.
func FormatMillis(ms int64) string {
	return FormatSeconds(ms / 1000)
}

// EloLabel renders a signed ELO delta with its tone.
func EloLabel(change int64) (string, Tone) {
	switch {
	case change > 0:
		return fmt.Sprintf("+%d ELO", change), ToneWins
	case change < 0:
		return fmt.Sprintf("%d ELO", change), ToneLosses
	default:
		return fmt.Sprintf("%d ELO", change), ToneDraws
	}
}

// RatingLabel renders a player's current rating.
func RatingLabel(elo *int) string {
	if elo == nil {
		return "Unrated"
	}
	return fmt.Sprintf("%d ELO", *elo)
}

func AvatarURL(uuid string) string {
	return fmt.Sprintf(avatarURL, url.PathEscape(uuid))
}

// VersusURL links to the official head-to-head page.
func VersusURL(user, opponent string) string {
	return fmt.Sprintf(statsURL, url.PathEscape(user)+"/vs/"+url.PathEscape(opponent))
}

// MatchURL links to the official page of one ranked match.
func MatchURL(user string, matchID int64) string {
	return fmt.Sprintf(statsURL, fmt.Sprintf("%s/%d?matches=ranked&sort=newest", url.PathEscape(user), matchID))
}

// SearchPath is the local viewer path for a user's records.
func SearchPath(nickname string) string {
	return "/users/" + url.PathEscape(nickname)
}
