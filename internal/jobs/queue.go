package jobs

import (
	"context"

	"github.com/vytor/rankedversus/internal/models"
	"github.com/vytor/rankedversus/internal/worker"
)

// ErrQueueFull is returned by EnqueueRefresh when no more work fits.
var ErrQueueFull = worker.ErrQueueFull

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	EnqueueRefresh(ctx context.Context, player models.Player) error
}
