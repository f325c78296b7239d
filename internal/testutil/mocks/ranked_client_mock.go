package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/rankedversus/internal/models"
	"github.com/vytor/rankedversus/internal/ranked"
)

// MockRankedClient is a mock implementation of ranked.ClientInterface
type MockRankedClient struct {
	mock.Mock
}

var _ ranked.ClientInterface = (*MockRankedClient)(nil)

func (m *MockRankedClient) GetUser(ctx context.Context, identifier string) (*models.Player, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Player), args.Error(1)
}

func (m *MockRankedClient) GetMatches(ctx context.Context, userUUID string, page ranked.PageRequest) ([]models.Match, error) {
	args := m.Called(ctx, userUUID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Match), args.Error(1)
}

func (m *MockRankedClient) GetVersusMatches(ctx context.Context, user, opponent string) ([]models.Match, error) {
	args := m.Called(ctx, user, opponent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Match), args.Error(1)
}

func (m *MockRankedClient) GetLeaderboard(ctx context.Context) (*models.Leaderboard, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Leaderboard), args.Error(1)
}
