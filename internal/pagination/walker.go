// Package pagination walks a user's match history backwards from the newest
// unseen match to the cached high-water mark, one page at a time.
package pagination

import (
	"context"
	"fmt"

	"github.com/vytor/rankedversus/internal/aggregate"
	apperrors "github.com/vytor/rankedversus/internal/errors"
	"github.com/vytor/rankedversus/internal/logger"
	"github.com/vytor/rankedversus/internal/metrics"
	"github.com/vytor/rankedversus/internal/models"
	"github.com/vytor/rankedversus/internal/ranked"
)

// PageSize is the number of matches requested per page. A shorter page means
// the walk reached the cursor or the start of history.
const PageSize = 100

// State is a step of the walk.
type State int

const (
	Fetching State = iota
	Merging
	Continue
	Done
)

func (s State) String() string {
	switch s {
	case Fetching:
		return "FETCHING"
	case Merging:
		return "MERGING"
	case Continue:
		return "CONTINUE"
	case Done:
		return "DONE"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// MatchFetcher is the part of the ranked client a walk needs.
type MatchFetcher interface {
	GetMatches(ctx context.Context, userUUID string, page ranked.PageRequest) ([]models.Match, error)
}

// Stats describes a finished walk.
type Stats struct {
	Pages   int
	Matches int
	Skipped int
}

// ProgressFunc is called after every merged page with the number of matches
// known so far, cached ones included.
type ProgressFunc func(loaded int64)

type Walker struct {
	client   MatchFetcher
	pageSize int
	metrics  metrics.Metrics
	progress ProgressFunc
}

type Option func(*Walker)

// WithMetrics records page fetches and skipped matches.
func WithMetrics(m metrics.Metrics) Option {
	return func(w *Walker) { w.metrics = m }
}

// WithProgress registers a callback invoked after each page.
func WithProgress(fn ProgressFunc) Option {
	return func(w *Walker) { w.progress = fn }
}

func NewWalker(client MatchFetcher, opts ...Option) *Walker {
	w := &Walker{
		client:   client,
		pageSize: PageSize,
		metrics:  metrics.Noop{},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Walk pages through the session user's history and queues every match in
// s.Pending. It does not fold. Any fetch error ends the walk at once; what was
// already queued is left in the session untouched.
func (w *Walker) Walk(ctx context.Context, s *aggregate.Session) (Stats, error) {
	log := logger.FromContext(ctx).WithPrefix("pagination").WithField("user", s.UserUUID)

	var (
		stats  Stats
		page   []models.Match
		err    error
		before *int64
	)

	state := Fetching
	for {
		switch state {
		case Fetching:
			if err := ctx.Err(); err != nil {
				return stats, apperrors.NewUpstreamError(err)
			}
			before = s.Before
			req := ranked.PageRequest{Count: w.pageSize, Before: s.Before, After: s.After}
			log.Debug("fetching page %d (before=%s after=%d)", stats.Pages+1, formatCursor(s.Before), s.After)

			page, err = w.client.GetMatches(ctx, s.UserUUID, req)
			if err != nil {
				log.Error("page %d failed, aborting walk: %v", stats.Pages+1, err)
				return stats, fmt.Errorf("fetch page %d: %w", stats.Pages+1, err)
			}
			stats.Pages++
			w.metrics.IncPagesFetched()
			state = Merging

		case Merging:
			skipped := w.merge(log, s, page)
			stats.Matches += len(page) - skipped
			stats.Skipped += skipped
			if skipped > 0 {
				w.metrics.AddMatchesSkipped(skipped)
			}
			if w.progress != nil {
				w.progress(s.Results.Loaded() + int64(s.PendingCount()))
			}

			if len(page) < w.pageSize {
				state = Done
				break
			}
			if before != nil && s.Before != nil && *s.Before >= *before {
				log.Error("full page did not move before=%d, aborting walk", *before)
				return stats, apperrors.NewUpstreamError(fmt.Errorf("page %d did not advance past match %d", stats.Pages, *before))
			}
			state = Continue

		case Continue:
			state = Fetching

		case Done:
			log.Info("walk done: %d pages, %d matches, %d skipped", stats.Pages, stats.Matches, stats.Skipped)
			return stats, nil
		}
	}
}

// merge queues the page's matches by opponent and returns how many it skipped.
func (w *Walker) merge(log *logger.Logger, s *aggregate.Session, page []models.Match) int {
	skipped := 0
	for _, m := range page {
		opponent, ok := m.Opponent(s.UserUUID)
		if !ok || opponent.UUID == "" {
			log.Warn("could not find opponent in match %d", m.ID)
			s.Observe(m.ID)
			skipped++
			continue
		}
		s.Add(opponent, m)
	}
	return skipped
}

func formatCursor(id *int64) string {
	if id == nil {
		return "none"
	}
	return fmt.Sprint(*id)
}
