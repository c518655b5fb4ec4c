package guard

import (
	"context"
	"fmt"

	"github.com/redis/rueidis"
)

type RedisAssignGuard struct {
	client     rueidis.Client
	keyPrefix  string
	ttlSeconds int64
}

func NewRedisAssignGuard(client rueidis.Client, keyPrefix string, ttlSeconds int) *RedisAssignGuard {
	return &RedisAssignGuard{
		client:     client,
		keyPrefix:  keyPrefix,
		ttlSeconds: int64(ttlSeconds),
	}
}

func (g *RedisAssignGuard) key(taskID string) string {
	return fmt.Sprintf("%s:%s", g.keyPrefix, taskID)
}

// Acquire takes the per-task lock with SET NX EX. The TTL bounds the hold
// time if the caller dies before Release.
func (g *RedisAssignGuard) Acquire(ctx context.Context, taskID string) error {
	cmd := g.client.B().Set().
		Key(g.key(taskID)).
		Value("1").
		Nx().
		ExSeconds(g.ttlSeconds).
		Build()

	result := g.client.Do(ctx, cmd)
	if err := result.Error(); err != nil {
		if rueidis.IsRedisNil(err) {
			return ErrGuardHeld
		}
		return err
	}

	return nil
}

func (g *RedisAssignGuard) Release(ctx context.Context, taskID string) error {
	cmd := g.client.B().Del().Key(g.key(taskID)).Build()
	return g.client.Do(ctx, cmd).Error()
}
