package leaderboard

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const defaultKey = "leaderboard:xp"

type Entry struct {
	Rank    int    `json:"rank"`
	UserID  string `json:"user_id"`
	TotalXP int    `json:"total_xp"`
}

// Board keeps the global XP ranking in a Redis sorted set, score = total XP.
// A nil client turns every call into a no-op so the service degrades cleanly
// when Redis is not configured, mirroring how the event publisher is
// optional.
type Board struct {
	client *redis.Client
	key    string
}

func NewBoard(client *redis.Client) *Board {
	return &Board{client: client, key: defaultKey}
}

// Record sets the user's score to their current total XP. Best-effort: the
// caller treats failures as non-fatal.
func (b *Board) Record(ctx context.Context, userID string, totalXP int) error {
	if b.client == nil {
		return nil
	}
	return b.client.ZAdd(ctx, b.key, redis.Z{
		Score:  float64(totalXP),
		Member: userID,
	}).Err()
}

// Top returns the highest-ranked users, best first.
func (b *Board) Top(ctx context.Context, n int) ([]Entry, error) {
	if b.client == nil {
		return nil, nil
	}
	zs, err := b.client.ZRevRangeWithScores(ctx, b.key, 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(zs))
	for i, z := range zs {
		member, _ := z.Member.(string)
		entries = append(entries, Entry{
			Rank:    i + 1,
			UserID:  member,
			TotalXP: int(z.Score),
		})
	}
	return entries, nil
}

// Rank returns the user's 1-based rank, or 0 when unranked.
func (b *Board) Rank(ctx context.Context, userID string) (int, error) {
	if b.client == nil {
		return 0, nil
	}
	rank, err := b.client.ZRevRank(ctx, b.key, userID).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return int(rank) + 1, nil
}
