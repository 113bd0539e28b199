package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

const healthCheckInterval = time.Minute

// HealthSnapshot reports each dependency by name, plus when it was last probed.
type HealthSnapshot struct {
	Dependencies map[string]bool `json:"dependencies"`
	CheckedAt    time.Time       `json:"checkedAt"`
}

var (
	healthMu   sync.RWMutex
	lastHealth HealthSnapshot
)

// GetHealthStatus returns the most recent snapshot taken by the monitor.
func GetHealthStatus() HealthSnapshot {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return lastHealth
}

// StartHealthMonitor pings Mongo and the given Redis clients once immediately
// and then every minute, keeping an in-memory snapshot for /health.
func StartHealthMonitor(mongoClient *mongo.Client, redisClients map[string]*redis.Client) {
	probe := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		deps := make(map[string]bool, len(redisClients)+1)
		deps["mongo"] = mongoClient.Ping(ctx, nil) == nil
		for name, client := range redisClients {
			deps[name] = client.Ping(ctx).Err() == nil
		}

		healthMu.Lock()
		lastHealth = HealthSnapshot{Dependencies: deps, CheckedAt: time.Now()}
		healthMu.Unlock()
	}

	go func() {
		probe()
		ticker := time.NewTicker(healthCheckInterval)
		defer ticker.Stop()
		for range ticker.C {
			probe()
		}
	}()
}
