package worker

import (
	"context"

	"github.com/vytor/rankedversus/internal/logger"
	"github.com/vytor/rankedversus/internal/models"
)

// RefreshJob brings one player's cached records up to date.
type RefreshJob struct {
	Refresher Refresher
	Player    models.Player
}

func (j *RefreshJob) Name() string { return "refresh_player" }

func (j *RefreshJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"username": j.Player.Nickname,
		"uuid":     j.Player.UUID,
	})
	log.Debug("refreshing player")

	stats, err := j.Refresher.Refresh(logger.NewContext(ctx, log), j.Player)
	if err != nil {
		return err
	}
	log.Info("refreshed: %d pages, %d matches", stats.Pages, stats.Matches)
	return nil
}
