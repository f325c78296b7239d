package ranked

import (
	"context"

	"github.com/vytor/rankedversus/internal/models"
)

// ClientInterface defines the ranked API operations the rest of the module uses.
// This interface enables testability by allowing mock implementations.
type ClientInterface interface {
	GetUser(ctx context.Context, identifier string) (*models.Player, error)
	GetMatches(ctx context.Context, userUUID string, page PageRequest) ([]models.Match, error)
	GetVersusMatches(ctx context.Context, user, opponent string) ([]models.Match, error)
	GetLeaderboard(ctx context.Context) (*models.Leaderboard, error)
}

// Ensure Client implements the interface
var _ ClientInterface = (*Client)(nil)
