package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
)

type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

// CacheKey builds a short, stable key from a namespace and an arbitrary payload.
func CacheKey(namespace string, payload []byte) string {
	return namespace + ":" + strconv.FormatUint(xxhash.Sum64(payload), 16)
}
