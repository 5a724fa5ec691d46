package reports

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/mmdatafocus/workshop_backend/config"
	"github.com/mmdatafocus/workshop_backend/models"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

func TestRedisCacheWithoutRedisIsAlwaysAMiss(t *testing.T) {
	config.UseRedis(nil)
	cache := NewRedisCache(time.Minute, nil)
	ctx := context.Background()

	generation, ok := cache.Generation(ctx)
	if !ok || generation != 0 {
		t.Fatalf("Generation = %d, %v; want 0, true", generation, ok)
	}
	cache.Set(ctx, generation, "dashboard", &models.DashboardStats{EmployeeCount: 3})
	var got models.DashboardStats
	if cache.Get(ctx, generation, "dashboard", &got) {
		t.Fatalf("expected a miss without redis")
	}
	cache.Invalidate(ctx)
}

// Requires a disposable redis at REDIS_ADDRESS.
func TestRedisCacheRoundTripAndInvalidate(t *testing.T) {
	addr := os.Getenv("REDIS_ADDRESS")
	if os.Getenv("INTEGRATION_TESTS") != "1" || addr == "" {
		t.Skip("set INTEGRATION_TESTS=1 and REDIS_ADDRESS to run")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	config.UseRedis(client)
	t.Cleanup(func() {
		config.UseRedis(nil)
		client.Close()
	})

	ctx := context.Background()
	cache := NewRedisCache(time.Minute, nil)
	cache.Invalidate(ctx)

	const key = "pnl:2024-01-01:2024-01-31"
	before, ok := cache.Generation(ctx)
	if !ok {
		t.Fatalf("Generation failed")
	}
	cache.Set(ctx, before, key, &models.ProfitAndLoss{Revenue: decimal.NewFromInt(170)})
	var got models.ProfitAndLoss
	if !cache.Get(ctx, before, key, &got) {
		t.Fatalf("expected a hit after Set")
	}
	if !got.Revenue.Equal(decimal.NewFromInt(170)) {
		t.Fatalf("revenue = %s, want 170", got.Revenue)
	}

	cache.Invalidate(ctx)
	after, _ := cache.Generation(ctx)
	if after <= before {
		t.Fatalf("generation %d did not advance past %d", after, before)
	}
	if cache.Get(ctx, after, key, &got) {
		t.Fatalf("expected a miss after Invalidate")
	}

	// a report computed before the write and stored after it stays unreachable
	cache.Set(ctx, before, key, &models.ProfitAndLoss{Revenue: decimal.NewFromInt(1)})
	if cache.Get(ctx, after, key, &got) {
		t.Fatalf("late write under the old generation was served")
	}
}
