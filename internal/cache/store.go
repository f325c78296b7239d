// Package cache persists per-user aggregation progress between runs.
//
// Layout mirrors a flat string store: a global "version" tag, and per tracked
// user an "after_{uuid}" cursor and a "results_{uuid}" JSON map. A version
// mismatch wipes the whole store, every user included.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/vytor/rankedversus/internal/aggregate"
	"github.com/vytor/rankedversus/internal/logger"
	"github.com/vytor/rankedversus/internal/repository"
)

// SchemaVersion tags the stored layout. Bump it when OpponentResult's JSON
// changes shape.
const SchemaVersion = "1"

const versionKey = "version"

func afterKey(userUUID string) string   { return "after_" + userUUID }
func resultsKey(userUUID string) string { return "results_" + userUUID }

type Store struct {
	repo    repository.KeyValueRepository
	version string
}

// New creates a Store writing the current SchemaVersion.
func New(repo repository.KeyValueRepository) *Store {
	return &Store{repo: repo, version: SchemaVersion}
}

// Load returns the cursor and results cached for userUUID. Missing or corrupt
// entries yield after=0 and an empty map.
func (s *Store) Load(ctx context.Context, userUUID string) (int64, aggregate.Results, error) {
	log := logger.FromContext(ctx).WithPrefix("cache").WithField("user", userUUID)

	stored, found, err := s.repo.Get(ctx, versionKey)
	if err != nil {
		return 0, nil, fmt.Errorf("read cache version: %w", err)
	}
	if !found || stored != s.version {
		log.Info("cache version %q does not match %q, clearing cache for all users", stored, s.version)
		if err := s.repo.Reset(ctx, map[string]string{versionKey: s.version}); err != nil {
			return 0, nil, fmt.Errorf("reset cache: %w", err)
		}
		return 0, aggregate.Results{}, nil
	}

	entries, err := s.repo.GetMany(ctx, afterKey(userUUID), resultsKey(userUUID))
	if err != nil {
		return 0, nil, fmt.Errorf("read cache entries: %w", err)
	}

	var after int64
	if raw, ok := entries[afterKey(userUUID)]; ok {
		after, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			log.Warn("cached cursor %q is not a number, starting from 0", raw)
			after = 0
		}
	}

	results := aggregate.Results{}
	if raw, ok := entries[resultsKey(userUUID)]; ok {
		if err := json.Unmarshal([]byte(raw), &results); err != nil {
			log.Warn("cached results are unreadable, starting empty: %v", err)
			results = aggregate.Results{}
		}
	}
	for uuid, res := range results {
		if res == nil {
			delete(results, uuid)
		}
	}
	aggregate.RecomputeAverages(results)

	log.Debug("loaded cache: after=%d opponents=%d matches=%d", after, len(results), results.Loaded())
	return after, results, nil
}

// Save writes the cursor and results for userUUID together.
func (s *Store) Save(ctx context.Context, userUUID string, after int64, results aggregate.Results) error {
	log := logger.FromContext(ctx).WithPrefix("cache").WithField("user", userUUID)

	if results == nil {
		results = aggregate.Results{}
	}
	encoded, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}

	if err := s.repo.SetMany(ctx, map[string]string{
		afterKey(userUUID):   strconv.FormatInt(after, 10),
		resultsKey(userUUID): string(encoded),
	}); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}

	log.Debug("saved cache: after=%d opponents=%d", after, len(results))
	return nil
}
