package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/rankedversus/internal/repository"
	"github.com/vytor/rankedversus/internal/repository/sqlite"
	"github.com/vytor/rankedversus/internal/testutil"
)

type KeyValueRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.KeyValueRepository
}

func (s *KeyValueRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewKeyValueRepository(s.db)
}

func (s *KeyValueRepositorySuite) TestGet_Missing() {
	value, found, err := s.repo.Get(context.Background(), "version")
	s.Require().NoError(err)
	s.Assert().False(found)
	s.Assert().Empty(value)
}

func (s *KeyValueRepositorySuite) TestSetManyAndGet() {
	ctx := context.Background()

	s.Require().NoError(s.repo.SetMany(ctx, map[string]string{"after_a": "10", "results_a": "{}"}))
	s.Require().NoError(s.repo.SetMany(ctx, map[string]string{"after_a": "25"}))

	value, found, err := s.repo.Get(ctx, "after_a")
	s.Require().NoError(err)
	s.Assert().True(found)
	s.Assert().Equal("25", value, "upsert overwrites")

	got, err := s.repo.GetMany(ctx, "after_a", "results_a", "after_b")
	s.Require().NoError(err)
	s.Assert().Equal(map[string]string{"after_a": "25", "results_a": "{}"}, got)
}

func (s *KeyValueRepositorySuite) TestGetMany_NoKeys() {
	got, err := s.repo.GetMany(context.Background())
	s.Require().NoError(err)
	s.Assert().Empty(got)
}

func (s *KeyValueRepositorySuite) TestReset_ClearsEverything() {
	ctx := context.Background()
	s.Require().NoError(s.repo.SetMany(ctx, map[string]string{"after_a": "1", "after_b": "2", "version": "0"}))

	s.Require().NoError(s.repo.Reset(ctx, map[string]string{"version": "1"}))

	var n int
	s.Require().NoError(s.db.QueryRow(`SELECT COUNT(*) FROM kv_store`).Scan(&n))
	s.Assert().Equal(1, n)
	value, _, err := s.repo.Get(ctx, "version")
	s.Require().NoError(err)
	s.Assert().Equal("1", value)
}

func (s *KeyValueRepositorySuite) TestSetMany_CancelledContextWritesNothing() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.repo.SetMany(ctx, map[string]string{"after_a": "1", "results_a": "{}"})
	s.Assert().Error(err)

	got, err := s.repo.GetMany(context.Background(), "after_a", "results_a")
	s.Require().NoError(err)
	s.Assert().Empty(got)
}

func TestKeyValueRepositorySuite(t *testing.T) {
	suite.Run(t, new(KeyValueRepositorySuite))
}
