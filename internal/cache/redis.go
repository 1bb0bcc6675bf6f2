// Package cache is an optional Redis layer over the ledger's read-heavy
// outstanding summary. The catalogue blob is deliberately never cached here:
// staleness of the remote snapshot cannot be detected locally, so every sync
// cycle must re-fetch.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tomward0606/StockSystem/internal/config"
	"github.com/tomward0606/StockSystem/internal/models"
)

const (
	summaryKey = "ledger:outstanding_summary"
	summaryTTL = 5 * time.Minute
)

var client *redis.Client

// Init initializes the Redis connection. The cache is optional: when Redis
// is unreachable every lookup falls through to the database.
func Init(cfg *config.Config) error {
	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetSummary returns the cached outstanding summary, or nil on miss or when
// the cache is unavailable.
func GetSummary(ctx context.Context) []*models.OutstandingSummary {
	if client == nil {
		return nil
	}

	data, err := client.Get(ctx, summaryKey).Bytes()
	if err != nil {
		return nil
	}

	var summary []*models.OutstandingSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		log.Printf("[Redis] Corrupt summary cache entry, dropping: %v", err)
		client.Del(ctx, summaryKey)
		return nil
	}
	return summary
}

// SetSummary stores the outstanding summary with a short TTL.
func SetSummary(ctx context.Context, summary []*models.OutstandingSummary) {
	if client == nil {
		return
	}

	data, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := client.Set(ctx, summaryKey, data, summaryTTL).Err(); err != nil {
		log.Printf("[Redis] Failed to cache summary: %v", err)
	}
}

// InvalidateSummary drops the cached summary. Called after every ledger
// write (dispatch, order intake, line removal).
func InvalidateSummary(ctx context.Context) {
	if client == nil {
		return
	}
	if err := client.Del(ctx, summaryKey).Err(); err != nil {
		log.Printf("[Redis] Failed to invalidate summary: %v", err)
	}
}
