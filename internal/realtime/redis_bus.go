package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bbaxromov14/eduhelper/internal/logger"
	goredis "github.com/redis/go-redis/v9"
)

// RedisBus fans events out through a Redis pub/sub channel so every
// service instance sees changes made by any other.
type RedisBus struct {
	rdb     *goredis.Client
	channel string
	log     *logger.Logger
}

func NewRedisBus(ctx context.Context, addr, channel string) (*RedisBus, error) {
	if addr == "" {
		return nil, errors.New("redis address required")
	}
	if channel == "" {
		channel = "eduhelper:progress"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisBus{
		rdb:     rdb,
		channel: channel,
		log:     logger.Default().WithPrefix("redis_bus").WithField("channel", channel),
	}, nil
}

func (b *RedisBus) Publish(ctx context.Context, e Event) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channel, raw).Err()
}

func (b *RedisBus) Subscribe(ctx context.Context, h Handler) error {
	if h == nil {
		return errors.New("handler required")
	}

	sub := b.rdb.Subscribe(ctx, b.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					return
				}
				var e Event
				if err := json.Unmarshal([]byte(m.Payload), &e); err != nil {
					b.log.Warn("bad event payload: %v", err)
					continue
				}
				h(ctx, e)
			}
		}
	}()
	return nil
}

func (b *RedisBus) Close() error {
	return b.rdb.Close()
}
