package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/trustabee/honey-marketplace/internal/notification/domain"
)

const keyPrefix = "notifications:"

// Inbox stores each user's notifications as a capped Redis list that expires
// ttl after the last write.
type Inbox struct {
	rdb      redis.Cmdable
	capacity int64
	ttl      time.Duration
}

func NewInbox(rdb redis.Cmdable, capacity int, ttl time.Duration) *Inbox {
	return &Inbox{rdb: rdb, capacity: int64(capacity), ttl: ttl}
}

func Key(userID string) string { return keyPrefix + userID }

func (i *Inbox) Push(ctx context.Context, n domain.Notification) error {
	raw, err := json.Marshal(n)
	if err != nil {
		return err
	}
	key := Key(n.UserID)
	_, err = i.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.LPush(ctx, key, raw)
		p.LTrim(ctx, key, 0, i.capacity-1)
		if i.ttl > 0 {
			p.Expire(ctx, key, i.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("push %s: %w", key, err)
	}
	return nil
}

func (i *Inbox) List(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	raw, err := i.rdb.LRange(ctx, Key(userID), 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", Key(userID), err)
	}
	out := make([]domain.Notification, 0, len(raw))
	for _, r := range raw {
		var n domain.Notification
		if err := json.Unmarshal([]byte(r), &n); err != nil {
			return nil, fmt.Errorf("decode notification: %w", err)
		}
		out = append(out, n)
	}
	return out, nil
}
