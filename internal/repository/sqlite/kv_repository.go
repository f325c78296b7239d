package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"maps"
	"slices"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/rankedversus/internal/logger"
	"github.com/vytor/rankedversus/internal/repository"
)

const kvTable = "kv_store"

type kvRepository struct {
	db *sql.DB
}

// NewKeyValueRepository creates a KeyValueRepository backed by the kv_store table.
func NewKeyValueRepository(db *sql.DB) repository.KeyValueRepository {
	return &kvRepository{db: db}
}

func (r *kvRepository) Get(ctx context.Context, key string) (string, bool, error) {
	log := logger.FromContext(ctx).WithPrefix("kv_repo")

	query, args, err := sqlBuilder.Select("value").From(kvTable).Where(squirrel.Eq{"name": key}).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return "", false, err
	}

	var value string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("key not found: %s", key)
		return "", false, nil
	}
	if err != nil {
		log.Error("failed to get key %s: %v", key, err)
		return "", false, err
	}
	return value, true, nil
}

func (r *kvRepository) GetMany(ctx context.Context, keys ...string) (map[string]string, error) {
	log := logger.FromContext(ctx).WithPrefix("kv_repo")
	out := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	query, args, err := sqlBuilder.Select("name", "value").From(kvTable).Where(squirrel.Eq{"name": keys}).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to get keys: %v", err)
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			log.Error("failed to scan kv row: %v", err)
			return nil, err
		}
		out[name] = value
	}
	log.Debug("found %d of %d keys", len(out), len(keys))
	return out, rows.Err()
}

func (r *kvRepository) SetMany(ctx context.Context, entries map[string]string) error {
	log := logger.FromContext(ctx).WithPrefix("kv_repo")
	log.Debug("writing %d keys", len(entries))

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		return upsert(ctx, tx, entries)
	})
}

func (r *kvRepository) Reset(ctx context.Context, entries map[string]string) error {
	log := logger.FromContext(ctx).WithPrefix("kv_repo")
	log.Info("resetting key-value store with %d keys", len(entries))

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		query, args, err := sqlBuilder.Delete(kvTable).ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			log.Error("failed to clear key-value store: %v", err)
			return err
		}
		return upsert(ctx, tx, entries)
	})
}

func upsert(ctx context.Context, tx *sql.Tx, entries map[string]string) error {
	if len(entries) == 0 {
		return nil
	}

	insert := sqlBuilder.Insert(kvTable).Columns("name", "value")
	for _, k := range slices.Sorted(maps.Keys(entries)) {
		insert = insert.Values(k, entries[k])
	}
	query, args, err := insert.
		Suffix("ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP").
		ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).WithPrefix("kv_repo").Error("failed to upsert %d keys: %v", len(entries), err)
		return err
	}
	return nil
}
