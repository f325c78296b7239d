package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/rankedversus/internal/api"
	apperrors "github.com/vytor/rankedversus/internal/errors"
	"github.com/vytor/rankedversus/internal/logger"
	"github.com/vytor/rankedversus/internal/models"
	"github.com/vytor/rankedversus/internal/query"
	"github.com/vytor/rankedversus/internal/services"
	"github.com/vytor/rankedversus/internal/testutil/mocks"
)

func ptr[T any](v T) *T { return &v }

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

func serve(t *testing.T, srv *api.Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealthAndReady(t *testing.T) {
	srv := &api.Server{DB: fakePinger{}}
	assert.Equal(t, http.StatusOK, serve(t, srv, http.MethodGet, "/health", "").Code)
	assert.Equal(t, "Ready", serve(t, srv, http.MethodGet, "/ready", "").Body.String())

	down := &api.Server{DB: fakePinger{err: errors.New("closed")}}
	assert.Equal(t, http.StatusServiceUnavailable, serve(t, down, http.MethodGet, "/ready", "").Code)
}

func TestRecords_PassesCriteriaAndRendersCards(t *testing.T) {
	svc := &mocks.MockVersusService{}
	wantQuery := mock.MatchedBy(func(q *query.Query) bool {
		f, s := q.Filters(), q.Sorts()
		return len(f) == 1 && f[0] == query.FilterBy{Field: query.FieldWins, Comparator: query.GreaterEqual, Value: 1} &&
			len(s) == 2 && s[0] == query.SortBy{Field: query.FieldEloChange, Descending: true}
	})
	svc.On("Records", mock.Anything, "Me", wantQuery).Return(&services.Records{
		Player:    models.Player{UUID: "me", Nickname: "Me", EloRate: ptr(1800)},
		Opponents: 3,
		Loaded:    12,
		Results: []*models.OpponentResult{
			{Total: 5, Wins: 4, Losses: 1, EloChange: 30, WinAverage: ptr(int64(601)), Opponent: models.Player{UUID: "o", Nickname: "Opp"}},
		},
	}, nil)

	rec := serve(t, &api.Server{VersusService: svc}, http.MethodGet, "/users/Me?fb=wins&fc=x&fv=&sb=elo_change&sd=1", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decode(t, rec)
	assert.Equal(t, float64(12), body["loaded"])
	assert.Equal(t, float64(3), body["opponents"])
	assert.Equal(t, float64(1), body["shown"])
	assert.Equal(t, "1800 ELO", body["player"].(map[string]any)["rating"])

	card := body["cards"].([]any)[0].(map[string]any)
	assert.Equal(t, "Opp", card["nickname"])
	assert.Equal(t, "10:01", card["win_average"])
	assert.Equal(t, "--", card["loss_average"])
	assert.Equal(t, "+30 ELO", card["elo"])
	assert.Equal(t, "wins", card["elo_tone"])
	assert.Equal(t, "https://mcsrranked.com/stats/Me/vs/Opp", card["versus_url"])
	svc.AssertExpectations(t)
}

func TestRecords_NotFound(t *testing.T) {
	svc := &mocks.MockVersusService{}
	svc.On("Records", mock.Anything, "ghost", mock.Anything).Return(nil, apperrors.NewNotFoundError("ghost"))

	rec := serve(t, &api.Server{VersusService: svc}, http.MethodGet, "/users/ghost", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	errBody := decode(t, rec)["error"].(map[string]any)
	assert.Equal(t, apperrors.ErrCodeNotFound, errBody["code"])
	assert.Equal(t, apperrors.UserNotFoundMessage, errBody["message"])
}

func TestRecords_WrappedUpstreamError(t *testing.T) {
	svc := &mocks.MockVersusService{}
	wrapped := errors.Join(errors.New("fetch page 2"), apperrors.NewUpstreamError(errors.New("eof")))
	svc.On("Records", mock.Anything, "Me", mock.Anything).Return(nil, wrapped)

	rec := serve(t, &api.Server{VersusService: svc}, http.MethodGet, "/users/Me", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestVersus(t *testing.T) {
	svc := &mocks.MockVersusService{}
	me := &models.Player{UUID: "me", Nickname: "Me"}
	svc.On("VersusMatches", mock.Anything, "Me", "Opp").Return(me, []models.Match{
		{ID: 9, Result: &models.MatchResult{UUID: ptr("me"), Time: 100_000}},
		{ID: 8, Forfeited: true, Result: &models.MatchResult{UUID: ptr("opp"), Time: 50_000}},
	}, nil)

	rec := serve(t, &api.Server{VersusService: svc}, http.MethodGet, "/users/Me/versus/Opp", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	matches := body["matches"].([]any)
	require.Len(t, matches, 2)
	first := matches[0].(map[string]any)
	assert.Equal(t, "1:40", first["time"])
	assert.Equal(t, "wins", first["tone"])
	assert.Equal(t, "https://mcsrranked.com/stats/Me/9?matches=ranked&sort=newest", first["url"])
	assert.Equal(t, true, matches[1].(map[string]any)["forfeited"])
}

func TestLeaderboard(t *testing.T) {
	svc := &mocks.MockVersusService{}
	svc.On("Leaderboard", mock.Anything).Return(&models.Leaderboard{
		Season: models.Season{Number: 6},
		Users:  []models.Player{{UUID: "a", Nickname: "A", EloRate: ptr(2100)}},
	}, nil)

	rec := serve(t, &api.Server{VersusService: svc}, http.MethodGet, "/leaderboard", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, float64(6), body["season"])
	assert.Equal(t, "A", body["players"].([]any)[0].(map[string]any)["nickname"])
}

func TestWarm(t *testing.T) {
	warm := &mocks.MockWarmService{}
	warm.On("Warm", mock.Anything, []string{"a", "b"}, 5).Return(2, nil)
	warm.On("Warm", mock.Anything, []string(nil), 5).Return(10, nil)

	srv := &api.Server{WarmService: warm, WarmLimit: 5}

	rec := serve(t, srv, http.MethodPost, "/warm", `{"usernames":["a","b"]}`)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, float64(2), decode(t, rec)["queued"])

	rec = serve(t, srv, http.MethodPost, "/warm", "")
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, float64(10), decode(t, rec)["queued"])

	rec = serve(t, srv, http.MethodPost, "/warm", `{"usernames":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWarm_Disabled(t *testing.T) {
	rec := serve(t, &api.Server{}, http.MethodPost, "/warm", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	svc := &mocks.MockVersusService{}
	svc.On("Leaderboard", mock.Anything).Run(func(mock.Arguments) { panic("boom") })

	rec := serve(t, &api.Server{VersusService: svc}, http.MethodGet, "/leaderboard", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRequestIDHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc123")
	rec := httptest.NewRecorder()
	(&api.Server{}).Routes().ServeHTTP(rec, req)
	assert.Equal(t, "abc123", rec.Header().Get("X-Request-ID"))
}

func TestLogging_ScopesRecordsRequestToPlayer(t *testing.T) {
	var buf bytes.Buffer
	prev := logger.Default()
	logger.SetDefault(logger.New(logger.WithOutput(&buf), logger.WithLevel(logger.DEBUG), logger.WithColors(false)))
	t.Cleanup(func() { logger.SetDefault(prev) })

	svc := &mocks.MockVersusService{}
	svc.On("Records", mock.Anything, "Me", mock.Anything).Return(nil, apperrors.NewNotFoundError("Me"))

	rec := serve(t, &api.Server{VersusService: svc}, http.MethodGet, "/users/Me", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	out := buf.String()
	assert.Contains(t, out, "rendering records page")
	assert.Contains(t, out, "username=Me")
	assert.Contains(t, out, "route=/users/{username}")
}
