package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vytor/rankedversus/internal/errors"
	"github.com/vytor/rankedversus/internal/logger"
	"github.com/vytor/rankedversus/internal/present"
	"github.com/vytor/rankedversus/internal/query"
	"github.com/vytor/rankedversus/internal/services"
)

type Server struct {
	VersusService  services.VersusService
	WarmService    services.WarmService
	DB             Pinger
	MetricsHandler http.Handler
	RequestTimeout time.Duration
	WarmLimit      int
}

type recordsPage struct {
	Player    present.PlayerHeader   `json:"player"`
	Criteria  map[string]string      `json:"criteria"`
	Loaded    int64                  `json:"loaded"`
	Opponents int                    `json:"opponents"`
	Shown     int                    `json:"shown"`
	Cards     []present.OpponentCard `json:"cards"`
}

type versusPage struct {
	Player   present.PlayerHeader `json:"player"`
	Opponent string               `json:"opponent"`
	Link     string               `json:"link"`
	Matches  []present.MatchRow   `json:"matches"`
}

type leaderboardPage struct {
	Season  int                    `json:"season"`
	Players []present.PlayerHeader `json:"players"`
}

// handleRecords is one page load: refresh the cache, then filter and sort.
func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := chi.URLParam(r, "username")
	logger.FromContext(ctx).Debug("rendering records page")

	criteria := present.ParseCriteria(r.URL.Query())
	q := query.New(ctx, criteria.Filters, criteria.Sorts)

	records, err := s.VersusService.Records(ctx, username, q)
	if err != nil {
		handleError(w, r, err)
		return
	}

	cards := present.OpponentCards(records.Player.Nickname, records.Results)
	writeJSON(w, r, http.StatusOK, recordsPage{
		Player:    present.NewPlayerHeader(records.Player),
		Criteria:  flatten(criteria),
		Loaded:    records.Loaded,
		Opponents: records.Opponents,
		Shown:     len(cards),
		Cards:     cards,
	})
}

func (s *Server) handleVersus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	username := chi.URLParam(r, "username")
	opponent := chi.URLParam(r, "opponent")

	player, matches, err := s.VersusService.VersusMatches(ctx, username, opponent)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, versusPage{
		Player:   present.NewPlayerHeader(*player),
		Opponent: opponent,
		Link:     present.VersusURL(player.Nickname, opponent),
		Matches:  present.MatchRows(*player, matches),
	})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	lb, err := s.VersusService.Leaderboard(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	page := leaderboardPage{Season: lb.Season.Number, Players: make([]present.PlayerHeader, 0, len(lb.Users))}
	for _, p := range lb.Users {
		page.Players = append(page.Players, present.NewPlayerHeader(p))
	}
	writeJSON(w, r, http.StatusOK, page)
}

// handleWarm queues background refreshes. The body is optional:
// {"usernames": [...]} refreshes those users, otherwise the leaderboard.
func (s *Server) handleWarm(w http.ResponseWriter, r *http.Request) {
	if s.WarmService == nil {
		handleError(w, r, errors.NewValidationError("warm", "cache warming is disabled"))
		return
	}

	var body struct {
		Usernames []string `json:"usernames"`
	}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			handleError(w, r, errors.NewValidationError("body", err.Error()))
			return
		}
	}

	queued, err := s.WarmService.Warm(r.Context(), body.Usernames, s.WarmLimit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusAccepted, map[string]int{"queued": queued})
}

func flatten(c present.Criteria) map[string]string {
	out := map[string]string{}
	for k, v := range c.Values() {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}
