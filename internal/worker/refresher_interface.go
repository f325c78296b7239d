package worker

import (
	"context"

	"github.com/vytor/rankedversus/internal/models"
	"github.com/vytor/rankedversus/internal/pagination"
)

// Refresher walks one player's history into the cache.
// This avoids import cycles by not importing the services package
type Refresher interface {
	Refresh(ctx context.Context, player models.Player) (pagination.Stats, error)
}
