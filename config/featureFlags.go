package config

import (
	"os"
	"strings"
	"time"
)

func boolFromEnv(key string) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}

// ReportCacheEnabled turns on the Redis cache for P&L and dashboard reads.
//
// Set via env:
// - ENABLE_REPORT_CACHE=true
// - REPORT_CACHE_TTL_SECONDS=60
func ReportCacheEnabled() bool {
	return boolFromEnv("ENABLE_REPORT_CACHE")
}

func ReportCacheTTL() time.Duration {
	return time.Duration(intFromEnv("REPORT_CACHE_TTL_SECONDS", 60)) * time.Second
}

// OutboxEnabled starts the dispatcher that publishes ledger events to Pub/Sub.
// Events are written to the outbox table regardless.
//
// Set via env:
// - ENABLE_OUTBOX=true
func OutboxEnabled() bool {
	return boolFromEnv("ENABLE_OUTBOX")
}

// RedisLockEnabled serialises fulfilment and payments per order across
// instances with redislock, in addition to the database row locks.
//
// Set via env:
// - ENABLE_REDIS_LOCK=true
func RedisLockEnabled() bool {
	return boolFromEnv("ENABLE_REDIS_LOCK")
}

// AuthEnabled requires an operator bearer token on write routes.
//
// Set via env:
// - ENABLE_AUTH=true
func AuthEnabled() bool {
	return boolFromEnv("ENABLE_AUTH")
}

func DefaultCountryCode() string {
	if v := strings.TrimSpace(os.Getenv("DEFAULT_COUNTRY_CODE")); v != "" {
		return strings.ToUpper(v)
	}
	return "MM"
}
