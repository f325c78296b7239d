package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/rankedversus/internal/repository"
)

// MockKeyValueRepository is a mock implementation of repository.KeyValueRepository
type MockKeyValueRepository struct {
	mock.Mock
}

var _ repository.KeyValueRepository = (*MockKeyValueRepository)(nil)

func (m *MockKeyValueRepository) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockKeyValueRepository) GetMany(ctx context.Context, keys ...string) (map[string]string, error) {
	args := m.Called(ctx, keys)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockKeyValueRepository) SetMany(ctx context.Context, entries map[string]string) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockKeyValueRepository) Reset(ctx context.Context, entries map[string]string) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}
