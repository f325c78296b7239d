package ranked

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/vytor/rankedversus/internal/errors"
	"github.com/vytor/rankedversus/internal/logger"
	"github.com/vytor/rankedversus/internal/models"
)

const (
	// DefaultBaseURL is the public ranked API.
	DefaultBaseURL = "https://api.mcsrranked.com"

	// rankedMatchType selects ranked (as opposed to casual or private) matches.
	rankedMatchType = "2"

	// VersusPageSize is how many head-to-head matches a drill-down shows.
	VersusPageSize = 100

	maxBodyBytes = 8 << 20
)

type Client struct {
	httpClient *http.Client
	baseURL    string
}

// New creates a client for baseURL. A zero timeout leaves requests bounded only
// by the transport and the request context.
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// PageRequest selects one page of a user's match history. Before and After are
// exclusive bounds on match ids; a nil Before lets the API anchor at the newest
// match.
type PageRequest struct {
	Count  int
	Before *int64
	After  int64
}

func (p PageRequest) values() url.Values {
	q := url.Values{}
	q.Set("count", strconv.Itoa(p.Count))
	q.Set("excludedecay", "true")
	q.Set("type", rankedMatchType)
	if p.Before != nil {
		q.Set("before", strconv.FormatInt(*p.Before, 10))
	}
	q.Set("after", strconv.FormatInt(p.After, 10))
	return q
}

func (c *Client) GetUser(ctx context.Context, identifier string) (*models.Player, error) {
	log := logger.FromContext(ctx).WithPrefix("ranked").WithField("user", identifier)

	env, err := c.get(ctx, "/users/"+url.PathEscape(identifier), nil)
	if err != nil {
		return nil, err
	}
	player, err := Unwrap[models.Player](env)
	if err != nil {
		return nil, classify(identifier, err)
	}
	if player.UUID == "" {
		log.Error("user payload has no uuid")
		return nil, apperrors.NewUpstreamError(errors.New("user payload has no uuid"))
	}

	log.Debug("resolved user uuid=%s nickname=%s", player.UUID, player.Nickname)
	return &player, nil
}

func (c *Client) GetMatches(ctx context.Context, userUUID string, page PageRequest) ([]models.Match, error) {
	log := logger.FromContext(ctx).WithPrefix("ranked").WithField("user", userUUID)

	env, err := c.get(ctx, "/users/"+url.PathEscape(userUUID)+"/matches", page.values())
	if err != nil {
		return nil, err
	}
	matches, err := Unwrap[[]models.Match](env)
	if err != nil {
		return nil, classify(userUUID, err)
	}

	log.Debug("fetched %d matches", len(matches))
	return matches, nil
}

// GetVersusMatches returns the most recent ranked matches between two players,
// newest first. A payload that is not a list is logged and treated as empty.
func (c *Client) GetVersusMatches(ctx context.Context, user, opponent string) ([]models.Match, error) {
	log := logger.FromContext(ctx).WithPrefix("ranked").WithFields(map[string]any{
		"user":     user,
		"opponent": opponent,
	})

	q := url.Values{}
	q.Set("count", strconv.Itoa(VersusPageSize))
	q.Set("type", rankedMatchType)
	path := "/users/" + url.PathEscape(user) + "/versus/" + url.PathEscape(opponent) + "/matches"

	env, err := c.get(ctx, path, q)
	if err != nil {
		return nil, err
	}
	raw, err := Unwrap[json.RawMessage](env)
	if errors.Is(err, ErrNullData) {
		log.Warn("expected list of matches, got null")
		return nil, nil
	}
	if err != nil {
		return nil, classify(user, err)
	}
	if !isArray(raw) {
		log.Warn("expected list of matches, got %.64s", string(raw))
		return nil, nil
	}

	var matches []models.Match
	if err := json.Unmarshal(raw, &matches); err != nil {
		log.Error("failed to decode versus matches: %v", err)
		return nil, apperrors.NewUpstreamError(fmt.Errorf("decode versus matches: %w", err))
	}
	log.Debug("fetched %d versus matches", len(matches))
	return matches, nil
}

func (c *Client) GetLeaderboard(ctx context.Context) (*models.Leaderboard, error) {
	env, err := c.get(ctx, "/leaderboard", nil)
	if err != nil {
		return nil, err
	}
	lb, err := Unwrap[models.Leaderboard](env)
	if err != nil {
		return nil, classify("", err)
	}
	return &lb, nil
}

// get performs a GET and decodes the envelope. The API reports unknown users
// with a non-200 status and an error envelope, so the body is decoded before
// the status code is considered.
func (c *Client) get(ctx context.Context, path string, query url.Values) (Envelope, error) {
	log := logger.FromContext(ctx).WithPrefix("ranked")

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	log.Debug("GET %s", target)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return Envelope{}, apperrors.NewUpstreamError(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("request failed: %v", err)
		return Envelope{}, apperrors.NewUpstreamError(err)
	}
	defer resp.Body.Close()

	log.Debug("response received in %v, status=%d", time.Since(start), resp.StatusCode)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		log.Error("failed to read response body: %v", err)
		return Envelope{}, apperrors.NewUpstreamError(err)
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil || env.Status == "" {
		if resp.StatusCode != http.StatusOK {
			snippet := string(body[:min(len(body), 1024)])
			log.Error("request failed: status=%d, body=%s", resp.StatusCode, snippet)
			return Envelope{}, apperrors.NewUpstreamError(fmt.Errorf("status %d: %s", resp.StatusCode, snippet))
		}
		if err == nil {
			err = errors.New("response has no status")
		}
		log.Error("failed to decode response: %v", err)
		return Envelope{}, apperrors.NewUpstreamError(fmt.Errorf("decode response: %w", err))
	}
	return env, nil
}

// classify maps envelope errors onto the application taxonomy.
func classify(user string, err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.UserMissing() {
		return apperrors.NewNotFoundError(user)
	}
	return apperrors.NewUpstreamError(err)
}
