package sortedstorage

import (
	"context"

	"github.com/beka-birhanu/mindmaze-api/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

// RedisLeaderboard keeps each player's best score in a Redis sorted set.
// Implements i.SortedRank.
type RedisLeaderboard struct {
	client *redis.Client
	locker *redsync.Redsync
	key    string
}

// NewRedisLeaderboard initializes a RedisLeaderboard over the given set key.
func NewRedisLeaderboard(client *redis.Client, key string) (i.SortedRank, error) {
	board := &RedisLeaderboard{
		client: client,
		key:    key,
	}
	pool := goredis.NewPool(client)
	board.locker = redsync.New(pool)
	return board, nil
}

// SubmitBest records the score for member only if it beats the member's
// current score. The compare-and-set runs under a per-member lock so
// concurrent submissions cannot regress a best score.
func (rl *RedisLeaderboard) SubmitBest(ctx context.Context, member string, score float64) error {
	mutex := rl.locker.NewMutex(rl.key + ":submit_lock:" + member)
	if err := mutex.Lock(); err != nil {
		return err
	}
	defer func() {
		_, _ = mutex.Unlock()
	}()

	current, err := rl.client.ZScore(ctx, rl.key, member).Result()
	if err == nil && current >= score {
		return nil
	}
	if err != nil && err != redis.Nil {
		return err
	}

	return rl.client.ZAdd(ctx, rl.key, redis.Z{Score: score, Member: member}).Err()
}

// Top returns up to `n` members with the highest scores, best first.
func (rl *RedisLeaderboard) Top(ctx context.Context, n int64) ([]i.RankEntry, error) {
	if n <= 0 {
		return nil, nil
	}

	ranked, err := rl.client.ZRevRangeWithScores(ctx, rl.key, 0, n-1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]i.RankEntry, 0, len(ranked))
	for _, z := range ranked {
		member, _ := z.Member.(string)
		entries = append(entries, i.RankEntry{Member: member, Score: z.Score})
	}
	return entries, nil
}

// Count returns the number of ranked members.
func (rl *RedisLeaderboard) Count(ctx context.Context) (int64, error) {
	return rl.client.ZCard(ctx, rl.key).Result()
}
