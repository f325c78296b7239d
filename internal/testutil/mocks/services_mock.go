package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/rankedversus/internal/models"
	"github.com/vytor/rankedversus/internal/pagination"
	"github.com/vytor/rankedversus/internal/query"
	"github.com/vytor/rankedversus/internal/services"
)

// MockVersusService is a mock implementation of services.VersusService
type MockVersusService struct {
	mock.Mock
}

var _ services.VersusService = (*MockVersusService)(nil)

func (m *MockVersusService) Records(ctx context.Context, username string, q *query.Query) (*services.Records, error) {
	args := m.Called(ctx, username, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Records), args.Error(1)
}

func (m *MockVersusService) Refresh(ctx context.Context, player models.Player) (pagination.Stats, error) {
	args := m.Called(ctx, player)
	return args.Get(0).(pagination.Stats), args.Error(1)
}

func (m *MockVersusService) VersusMatches(ctx context.Context, username, opponent string) (*models.Player, []models.Match, error) {
	args := m.Called(ctx, username, opponent)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.Player), args.Get(1).([]models.Match), args.Error(2)
}

func (m *MockVersusService) Leaderboard(ctx context.Context) (*models.Leaderboard, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Leaderboard), args.Error(1)
}

// MockWarmService is a mock implementation of services.WarmService
type MockWarmService struct {
	mock.Mock
}

var _ services.WarmService = (*MockWarmService)(nil)

func (m *MockWarmService) Warm(ctx context.Context, usernames []string, limit int) (int, error) {
	args := m.Called(ctx, usernames, limit)
	return args.Int(0), args.Error(1)
}
