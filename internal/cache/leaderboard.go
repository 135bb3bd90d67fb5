package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Andrew-Develops/PhysiQuest/internal/domain"
	"github.com/Andrew-Develops/PhysiQuest/internal/platform/envutil"
	"github.com/Andrew-Develops/PhysiQuest/internal/platform/logger"
)

const leaderboardKey = "physiquest:leaderboard:top"

// Leaderboard caches the top-users-by-points listing in Redis. A nil
// *Leaderboard is valid and disables caching, so callers never have to
// branch on whether Redis is configured.
type Leaderboard struct {
	rdb *redis.Client
	log *logger.Logger
	ttl time.Duration
}

func NewLeaderboard(log *logger.Logger) (*Leaderboard, error) {
	cacheLog := log.With("service", "LeaderboardCache")

	addr := fmt.Sprintf("%s:%s", envutil.Str("REDIS_HOST", "localhost"), envutil.Str("REDIS_PORT", "6379"))
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     envutil.Str("REDIS_PASSWORD", ""),
		DB:           envutil.Int("REDIS_DB", 0),
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		cacheLog.Warn("Redis ping failed, leaderboard caching disabled", "addr", addr, "error", err)
		return nil, err
	}

	ttl := time.Duration(envutil.Int("LEADERBOARD_CACHE_TTL", 60)) * time.Second
	cacheLog.Info("Redis connected", "addr", addr, "ttl", ttl.String())
	return &Leaderboard{rdb: rdb, log: cacheLog, ttl: ttl}, nil
}

// Get returns the cached listing and whether it was present. Cache
// errors degrade to a miss.
func (lb *Leaderboard) Get(ctx context.Context) ([]*domain.User, bool) {
	if lb == nil {
		return nil, false
	}
	val, err := lb.rdb.Get(ctx, leaderboardKey).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		lb.log.Warn("Leaderboard cache get failed", "error", err)
		return nil, false
	}
	var users []*domain.User
	if err := json.Unmarshal([]byte(val), &users); err != nil {
		lb.log.Warn("Leaderboard cache unmarshal failed", "error", err)
		return nil, false
	}
	return users, true
}

func (lb *Leaderboard) Set(ctx context.Context, users []*domain.User) {
	if lb == nil {
		return
	}
	data, err := json.Marshal(users)
	if err != nil {
		lb.log.Warn("Leaderboard cache marshal failed", "error", err)
		return
	}
	if err := lb.rdb.Set(ctx, leaderboardKey, data, lb.ttl).Err(); err != nil {
		lb.log.Warn("Leaderboard cache set failed", "error", err)
	}
}

// Invalidate drops the cached listing. Called whenever a user balance
// changes (completion, reversal, token spend).
func (lb *Leaderboard) Invalidate(ctx context.Context) {
	if lb == nil {
		return
	}
	if err := lb.rdb.Del(ctx, leaderboardKey).Err(); err != nil {
		lb.log.Warn("Leaderboard cache invalidate failed", "error", err)
	}
}

func (lb *Leaderboard) Close() error {
	if lb == nil {
		return nil
	}
	return lb.rdb.Close()
}
