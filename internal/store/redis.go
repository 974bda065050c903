package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions configures the Redis history backend.
type RedisOptions struct {
	// Address is the Redis server address, e.g. "localhost:6379".
	Address string

	// Password for authentication (optional).
	Password string

	// Database number to use.
	Database int

	// Prefix is prepended to all history keys.
	Prefix string

	// TTL is the time-to-live for stored analyses (0 = keep forever).
	TTL time.Duration

	// Timeout bounds individual Redis operations.
	Timeout time.Duration
}

// DefaultRedisOptions returns sensible defaults for an address.
func DefaultRedisOptions(address string) RedisOptions {
	return RedisOptions{
		Address: address,
		Prefix:  "dataquality:analyses:",
		Timeout: 5 * time.Second,
	}
}

// RedisHistory stores analyses in Redis. Each analysis lives under
// <prefix><id>; a secondary key per file hash points at the most recent
// analysis ID for that content.
type RedisHistory struct {
	opts   RedisOptions
	client *redis.Client
}

// NewRedisHistory connects to Redis and verifies the connection.
func NewRedisHistory(opts RedisOptions) (*RedisHistory, error) {
	if opts.Timeout == 0 {
		opts.Timeout = 5 * time.Second
	}
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Address,
		Password:     opts.Password,
		DB:           opts.Database,
		ReadTimeout:  opts.Timeout,
		WriteTimeout: opts.Timeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisHistory{opts: opts, client: client}, nil
}

func (r *RedisHistory) key(id string) string { return r.opts.Prefix + id }

func (r *RedisHistory) hashKey(hash string) string {
	return r.opts.Prefix + "index:hash:" + hash
}

func (r *RedisHistory) Save(ctx context.Context, a *Analysis) error {
	ctx, cancel := context.WithTimeout(ctx, r.opts.Timeout)
	defer cancel()

	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.key(a.ID), data, r.opts.TTL)
	pipe.Set(ctx, r.hashKey(a.FileHash), a.ID, r.opts.TTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save analysis to Redis: %w", err)
	}
	return nil
}

func (r *RedisHistory) GetByID(ctx context.Context, id string) (*Analysis, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opts.Timeout)
	defer cancel()

	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load analysis from Redis: %w", err)
	}

	var a Analysis
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis: %w", err)
	}
	return &a, nil
}

func (r *RedisHistory) GetByHash(ctx context.Context, hash string) (*Analysis, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opts.Timeout)
	defer cancel()

	id, err := r.client.Get(ctx, r.hashKey(hash)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up file hash: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *RedisHistory) List(ctx context.Context, limit int) ([]*Analysis, error) {
	analyses, err := r.scanAll(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(analyses) > limit {
		analyses = analyses[:limit]
	}
	return analyses, nil
}

func (r *RedisHistory) ListByDataset(ctx context.Context, datasetName string) ([]*Analysis, error) {
	all, err := r.scanAll(ctx)
	if err != nil {
		return nil, err
	}
	analyses := []*Analysis{}
	for _, a := range all {
		if a.DatasetName == datasetName {
			analyses = append(analyses, a)
		}
	}
	return analyses, nil
}

func (r *RedisHistory) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opts.Timeout)
	defer cancel()

	// Load first so the hash index can be cleaned up alongside the record.
	a, err := r.GetByID(ctx, id)
	if err == ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.key(id))
	pipe.Del(ctx, r.hashKey(a.FileHash))
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to delete analysis from Redis: %w", err)
	}
	return true, nil
}

func (r *RedisHistory) Summary(ctx context.Context) (*SummaryStats, error) {
	analyses, err := r.scanAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &SummaryStats{TotalAnalyses: len(analyses)}
	datasets := map[string]bool{}
	for _, a := range analyses {
		datasets[a.DatasetName] = true
		if a.HasIssues {
			stats.AnalysesWithIssues++
		}
		t := a.Timestamp
		if stats.FirstAnalysis == nil || t.Before(*stats.FirstAnalysis) {
			stats.FirstAnalysis = &t
		}
		if stats.LastAnalysis == nil || t.After(*stats.LastAnalysis) {
			stats.LastAnalysis = &t
		}
	}
	stats.UniqueDatasets = len(datasets)
	return stats, nil
}

func (r *RedisHistory) Close() error { return r.client.Close() }

// scanAll loads every stored analysis, newest first.
func (r *RedisHistory) scanAll(ctx context.Context) ([]*Analysis, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opts.Timeout)
	defer cancel()

	var ids []string
	iter := r.client.Scan(ctx, 0, r.opts.Prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if strings.Contains(key, ":index:") {
			continue
		}
		ids = append(ids, strings.TrimPrefix(key, r.opts.Prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan analyses: %w", err)
	}

	analyses := []*Analysis{}
	for _, id := range ids {
		a, err := r.GetByID(ctx, id)
		if err != nil {
			continue // skip entries expired between scan and load
		}
		analyses = append(analyses, a)
	}
	sort.Slice(analyses, func(i, j int) bool {
		return analyses[i].Timestamp.After(analyses[j].Timestamp)
	})
	return analyses, nil
}
