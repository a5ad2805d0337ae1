package diagnostics

import (
	"context"
	"encoding/json"
	"time"

	"edemy/internal/qerrors"

	"github.com/golang/glog"
	"github.com/redis/go-redis/v9"
)

const DefaultChannel = "edemy-diagnostics"

// publisher is the subset of the Redis client used to publish events.
type publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisEmitter publishes each failed commit as a JSON Event on a Redis pub/sub channel.
type RedisEmitter struct {
	rdb     publisher
	channel string
	timeout time.Duration
}

func NewRedisEmitter(rdb publisher, channel string) *RedisEmitter {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisEmitter{
		rdb:     rdb,
		channel: channel,
		timeout: 2 * time.Second,
	}
}

// Emit publishes the event. Publishing is best effort: failures are logged and swallowed.
func (r *RedisEmitter) Emit(ctx context.Context, err *qerrors.ConsistencyWriteError) {
	raw, mErr := json.Marshal(NewEvent(err))
	if mErr != nil {
		glog.Warningf("failed to marshal diagnostic event: %v\n", mErr)
		return
	}

	// The request context may already be cancelled by the time a commit fails.
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	defer cancel()

	if pErr := r.rdb.Publish(pubCtx, r.channel, raw).Err(); pErr != nil {
		glog.Warningf("failed to publish diagnostic event to %s: %v\n", r.channel, pErr)
	}
}
