package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ExtractionCacheTTL bounds how stale a dashboard view of the workbook can
// get before the next request re-reads the file.
const ExtractionCacheTTL = 10 * time.Minute

// CacheExtraction stores an extraction result as JSON under "shipments:<key>".
// Cache failures are logged and ignored: the extractor is the source of truth
// and a cold cache only costs one workbook read.
func CacheExtraction(ctx context.Context, rdb *redis.Client, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("Failed to marshal extraction cache for '%s': %v", key, err)
		return
	}
	if err := rdb.Set(ctx, "shipments:"+key, data, ExtractionCacheTTL).Err(); err != nil {
		log.Printf("Failed to cache extraction '%s': %v", key, err)
	}
}

// GetCachedExtraction loads a cached extraction into dest, reporting whether
// a usable entry was found.
func GetCachedExtraction(ctx context.Context, rdb *redis.Client, key string, dest interface{}) bool {
	data, err := rdb.Get(ctx, "shipments:"+key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		log.Printf("Failed to decode extraction cache for '%s': %v", key, err)
		return false
	}
	return true
}

// InvalidateCache deletes all cached keys for the given resource type.
// Uses SCAN instead of KEYS for better performance in production.
func InvalidateCache(ctx context.Context, rdb *redis.Client, resourceType string) error {
	pattern := fmt.Sprintf("%s:*", resourceType)
	iter := rdb.Scan(ctx, 0, pattern, 0).Iterator()

	for iter.Next(ctx) {
		key := iter.Val()
		if err := rdb.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("failed to delete key %s: %v", key, err)
		}
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("error during SCAN iteration: %v", err)
	}

	return nil
}
