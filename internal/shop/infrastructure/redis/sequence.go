package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/trustabee/honey-marketplace/pkg/idgen"
)

const counterPrefix = "shop:seq:"

// Sequence is an idgen.Generator shared by every instance through Redis
// INCR counters.
type Sequence struct {
	rdb redis.Cmdable
}

func NewSequence(rdb redis.Cmdable) *Sequence {
	return &Sequence{rdb: rdb}
}

func (s *Sequence) Next(ctx context.Context, prefix string) (string, error) {
	n, err := s.rdb.Incr(ctx, counterPrefix+prefix).Result()
	if err != nil {
		return "", fmt.Errorf("incr %s counter: %w", prefix, err)
	}
	return idgen.Format(prefix, n), nil
}
