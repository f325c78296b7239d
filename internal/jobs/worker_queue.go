package jobs

import (
	"context"

	"github.com/vytor/rankedversus/internal/models"
	"github.com/vytor/rankedversus/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	pool      *worker.Pool
	refresher worker.Refresher
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(pool *worker.Pool, refresher worker.Refresher) JobQueue {
	return &WorkerQueue{pool: pool, refresher: refresher}
}

func (q *WorkerQueue) EnqueueRefresh(ctx context.Context, player models.Player) error {
	return q.pool.Submit(ctx, &worker.RefreshJob{
		Refresher: q.refresher,
		Player:    player,
	})
}
