package services

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/vytor/rankedversus/internal/aggregate"
	"github.com/vytor/rankedversus/internal/cache"
	"github.com/vytor/rankedversus/internal/errors"
	"github.com/vytor/rankedversus/internal/logger"
	"github.com/vytor/rankedversus/internal/metrics"
	"github.com/vytor/rankedversus/internal/models"
	"github.com/vytor/rankedversus/internal/pagination"
	"github.com/vytor/rankedversus/internal/query"
	"github.com/vytor/rankedversus/internal/ranked"
)

// Records is one rendered page load: the tracked player, their filtered and
// sorted head-to-head records, and how many matches the cache now holds.
type Records struct {
	Player    models.Player
	Results   []*models.OpponentResult
	Opponents int
	Loaded    int64
	Walk      pagination.Stats
}

// VersusService runs the pull-aggregate-cache cycle for one user.
type VersusService interface {
	// Records refreshes the user's cache and returns the records matching q.
	Records(ctx context.Context, username string, q *query.Query) (*Records, error)
	// Refresh walks and saves without querying. Used for cache warming.
	Refresh(ctx context.Context, player models.Player) (pagination.Stats, error)
	// VersusMatches returns the user's latest ranked matches against opponent.
	VersusMatches(ctx context.Context, username, opponent string) (*models.Player, []models.Match, error)
	Leaderboard(ctx context.Context) (*models.Leaderboard, error)
}

type versusService struct {
	client  ranked.ClientInterface
	store   *cache.Store
	walker  *pagination.Walker
	metrics metrics.Metrics

	walks singleflight.Group
}

// NewVersusService creates a new VersusService
func NewVersusService(client ranked.ClientInterface, store *cache.Store, m metrics.Metrics) VersusService {
	if m == nil {
		m = metrics.Noop{}
	}
	return &versusService{
		client:  client,
		store:   store,
		walker:  pagination.NewWalker(client, pagination.WithMetrics(m)),
		metrics: m,
	}
}

type refreshed struct {
	results aggregate.Results
	stats   pagination.Stats
}

func (s *versusService) Records(ctx context.Context, username string, q *query.Query) (*Records, error) {
	log := logger.FromContext(ctx).WithField("username", username)
	log.Debug("loading records")

	if username == "" {
		return nil, errors.NewValidationError("username", "cannot be empty")
	}

	player, err := s.client.GetUser(ctx, username)
	if err != nil {
		log.Warn("user lookup failed: %v", err)
		return nil, err
	}

	r, err := s.refresh(ctx, *player)
	if err != nil {
		return nil, err
	}

	if q == nil {
		q = query.New(ctx, query.DefaultFilters(), query.DefaultSorts())
	}
	return &Records{
		Player:    *player,
		Results:   q.Apply(r.results.Values()),
		Opponents: len(r.results),
		Loaded:    r.results.Loaded(),
		Walk:      r.stats,
	}, nil
}

func (s *versusService) Refresh(ctx context.Context, player models.Player) (pagination.Stats, error) {
	r, err := s.refresh(ctx, player)
	if err != nil {
		return pagination.Stats{}, err
	}
	return r.stats, nil
}

// refresh runs at most one walk per user at a time. Concurrent callers for the
// same user share the result of the walk in flight. The walk is detached from
// the cancellation of whoever started it, so a caller that leaves neither
// aborts the walk for the others nor loses the progress it would save. Each
// caller still stops waiting when its own ctx ends.
func (s *versusService) refresh(ctx context.Context, player models.Player) (refreshed, error) {
	walkCtx := context.WithoutCancel(ctx)
	ch := s.walks.DoChan(player.UUID, func() (any, error) {
		return s.walk(walkCtx, player)
	})

	select {
	case <-ctx.Done():
		logger.FromContext(ctx).Warn("stopped waiting for walk of %s: %v", player.Nickname, ctx.Err())
		return refreshed{}, errors.NewUpstreamError(ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return refreshed{}, res.Err
		}
		if res.Shared {
			logger.FromContext(ctx).Debug("joined walk already in flight for %s", player.Nickname)
		}
		return res.Val.(refreshed), nil
	}
}

func (s *versusService) walk(ctx context.Context, player models.Player) (refreshed, error) {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"username": player.Nickname,
		"uuid":     player.UUID,
	})
	ctx = logger.NewContext(ctx, log)
	start := time.Now()
	s.metrics.IncWalks()

	after, results, err := s.store.Load(ctx, player.UUID)
	if err != nil {
		log.Error("failed to load cache: %v", err)
		s.metrics.IncWalkFailures()
		return refreshed{}, errors.NewInternalError(err)
	}

	session := aggregate.NewSession(player.UUID, after, results)
	stats, err := s.walker.Walk(ctx, session)
	if err != nil {
		log.Error("walk failed, nothing saved: %v", err)
		s.metrics.IncWalkFailures()
		return refreshed{}, err
	}

	folded := aggregate.Fold(ctx, session)
	s.metrics.AddMatchesFolded(folded.Folded)
	if folded.Skipped > 0 {
		s.metrics.AddMatchesSkipped(folded.Skipped)
	}
	stats.Skipped += folded.Skipped

	// The records are still valid for this page load when the write fails.
	if err := s.store.Save(ctx, player.UUID, session.After, session.Results); err != nil {
		log.Error("failed to save cache: %v", err)
	}

	s.metrics.ObserveWalkDuration(time.Since(start).Seconds())
	log.Info("refreshed in %v: %d new matches, %d opponents, after=%d", time.Since(start), folded.Folded, len(session.Results), session.After)
	return refreshed{results: session.Results, stats: stats}, nil
}

func (s *versusService) VersusMatches(ctx context.Context, username, opponent string) (*models.Player, []models.Match, error) {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"username": username,
		"opponent": opponent,
	})
	log.Debug("loading versus matches")

	if username == "" {
		return nil, nil, errors.NewValidationError("username", "cannot be empty")
	}
	if opponent == "" {
		return nil, nil, errors.NewValidationError("opponent", "cannot be empty")
	}

	player, err := s.client.GetUser(ctx, username)
	if err != nil {
		log.Warn("user lookup failed: %v", err)
		return nil, nil, err
	}

	matches, err := s.client.GetVersusMatches(ctx, player.Nickname, opponent)
	if err != nil {
		log.Warn("versus lookup failed: %v", err)
		return nil, nil, err
	}
	return player, matches, nil
}

func (s *versusService) Leaderboard(ctx context.Context) (*models.Leaderboard, error) {
	lb, err := s.client.GetLeaderboard(ctx)
	if err != nil {
		logger.FromContext(ctx).Warn("leaderboard lookup failed: %v", err)
		return nil, err
	}
	return lb, nil
}
