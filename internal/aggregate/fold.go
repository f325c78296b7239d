package aggregate

import (
	"context"
	"math"

	"github.com/vytor/rankedversus/internal/logger"
	"github.com/vytor/rankedversus/internal/models"
)

// FoldStats summarises one fold.
type FoldStats struct {
	Folded  int
	Skipped int
}

// Fold adds every pending match to the session's results, advances After to
// the newest folded match and recomputes averages. Pending is emptied, so a
// second call without new matches changes nothing.
//
// Matches without a result or without an ELO change for the tracked user are
// logged and skipped entirely.
func Fold(ctx context.Context, s *Session) FoldStats {
	log := logger.FromContext(ctx).WithPrefix("aggregate").WithField("user", s.UserUUID)

	var stats FoldStats
	maxID := s.After
	for oppUUID, group := range s.Pending {
		res := s.Results[oppUUID]
		if res != nil {
			res.Opponent = group.Opponent
		}

		for _, m := range group.Matches {
			if m.Result == nil {
				log.Warn("skipping unresolved match %d", m.ID)
				stats.Skipped++
				continue
			}
			delta, ok := m.EloChangeFor(s.UserUUID)
			if !ok {
				log.Warn("expected ELO change for user in match %d, found %d changes", m.ID, len(m.Changes))
				stats.Skipped++
				continue
			}

			if res == nil {
				res = &models.OpponentResult{Opponent: group.Opponent}
				s.Results[oppUUID] = res
			}
			apply(res, s.UserUUID, m, delta)
			stats.Folded++
			if m.ID > maxID {
				maxID = m.ID
			}
		}
	}

	s.After = maxID
	s.Pending = map[string]*Group{}
	RecomputeAverages(s.Results)

	log.Debug("folded %d matches, skipped %d, after=%d", stats.Folded, stats.Skipped, s.After)
	return stats
}

func apply(res *models.OpponentResult, userUUID string, m models.Match, delta int64) {
	completed := !m.Forfeited

	res.Total++
	switch {
	case m.WonBy(userUUID):
		res.Wins++
		if completed {
			res.WinCompletions++
			res.WinCompletionsTime += m.Result.Time
		}
	case m.Result.UUID == nil:
		res.Draws++
	default:
		res.Losses++
		if completed {
			res.LossCompletions++
			res.LossCompletionsTime += m.Result.Time
		}
	}
	res.EloChange += delta
}

// RecomputeAverages derives the average completion times, in whole seconds, of
// every record from its running sums.
func RecomputeAverages(results Results) {
	for _, res := range results {
		res.WinAverage = average(res.WinCompletionsTime, res.WinCompletions)
		res.LossAverage = average(res.LossCompletionsTime, res.LossCompletions)
	}
}

func average(sumMillis, count int64) *int64 {
	if count <= 0 {
		return nil
	}
	secs := int64(math.Floor(float64(sumMillis)/float64(count)/1000 + 0.5))
	return &secs
}
