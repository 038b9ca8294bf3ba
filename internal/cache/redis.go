package cache

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"timetrack-backend/internal/metrics"
)

// Dashboard results are memoized for a short window; every other report is
// recomputed from the live snapshot on each call.
const dashboardTTL = 2 * time.Minute

var client *redis.Client

// Init initializes the Redis connection. A failed connection is not fatal:
// every cache function degrades to a no-op when the client is nil.
func Init() error {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "redis"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
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

func dashboardKey(userID int) string {
	return fmt.Sprintf("dashboard:%d", userID)
}

// GetCachedDashboard returns the memoized dashboard JSON for a user, if any.
func GetCachedDashboard(ctx context.Context, userID int) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, dashboardKey(userID)).Bytes()
	if err != nil {
		metrics.DashboardCacheHits.WithLabelValues("miss").Inc()
		return nil, false
	}
	metrics.DashboardCacheHits.WithLabelValues("hit").Inc()
	return data, true
}

// CacheDashboard memoizes the dashboard JSON for a user.
func CacheDashboard(ctx context.Context, userID int, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, dashboardKey(userID), data, dashboardTTL)
}

// InvalidateDashboard drops the memoized dashboard after a mutation so the
// next call sees the new snapshot instead of waiting out the TTL.
func InvalidateDashboard(ctx context.Context, userID int) {
	if client == nil {
		return
	}
	client.Del(ctx, dashboardKey(userID))
}
