package services

import (
	"context"

	"github.com/vytor/rankedversus/internal/errors"
	"github.com/vytor/rankedversus/internal/jobs"
	"github.com/vytor/rankedversus/internal/logger"
	"github.com/vytor/rankedversus/internal/models"
	"github.com/vytor/rankedversus/internal/ranked"
)

// WarmService queues background cache refreshes so later page loads only
// fetch the newest matches.
type WarmService interface {
	// Warm queues a refresh for each named user, or for the leaderboard when
	// no names are given. limit caps the number of users; 0 means no cap.
	// Queuing stops without error once the queue is full.
	Warm(ctx context.Context, usernames []string, limit int) (int, error)
}

type warmService struct {
	client ranked.ClientInterface
	queue  jobs.JobQueue
}

// NewWarmService creates a new WarmService
func NewWarmService(client ranked.ClientInterface, queue jobs.JobQueue) WarmService {
	return &warmService{client: client, queue: queue}
}

func (s *warmService) Warm(ctx context.Context, usernames []string, limit int) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("warm")

	players, err := s.players(ctx, usernames)
	if err != nil {
		return 0, err
	}
	if limit > 0 && len(players) > limit {
		log.Debug("limiting to first %d of %d players", limit, len(players))
		players = players[:limit]
	}

	seen := make(map[string]bool, len(players))
	queued := 0
	for i, p := range players {
		if p.UUID == "" || seen[p.UUID] {
			continue
		}
		seen[p.UUID] = true
		if err := s.queue.EnqueueRefresh(ctx, p); err != nil {
			if errors.Is(err, jobs.ErrQueueFull) {
				log.Warn("queue full after %d refreshes, skipping %d players", queued, len(players)-i)
				break
			}
			log.Error("failed to queue refresh for %s: %v", p.Nickname, err)
			return queued, errors.NewInternalError(err)
		}
		queued++
	}

	log.Info("queued %d refreshes", queued)
	return queued, nil
}

func (s *warmService) players(ctx context.Context, usernames []string) ([]models.Player, error) {
	log := logger.FromContext(ctx)

	if len(usernames) == 0 {
		lb, err := s.client.GetLeaderboard(ctx)
		if err != nil {
			log.Error("failed to load leaderboard: %v", err)
			return nil, err
		}
		return lb.Users, nil
	}

	players := make([]models.Player, 0, len(usernames))
	for _, name := range usernames {
		p, err := s.client.GetUser(ctx, name)
		if err != nil {
			if errors.IsNotFound(err) {
				log.Warn("skipping unknown user %s", name)
				continue
			}
			return nil, err
		}
		players = append(players, *p)
	}
	return players, nil
}
