package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Redis appends entries to one list per session. A nil *Redis records
// nothing, so callers can keep it unconditionally when Redis is disabled.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects to addr. If addr is empty it returns nil, nil.
func NewRedis(addr string, ttl time.Duration) (*Redis, error) {
	if addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}

	log.Infof("journal: redis connected addr=%s", addr)

	return &Redis{
		client: client,
		ttl:    ttl,
	}, nil
}

func sessionKey(session string) string {
	return fmt.Sprintf("littlebots:session:%s:turns", session)
}

func (r *Redis) Record(ctx context.Context, e Entry) error {
	if r == nil || r.client == nil {
		return nil
	}

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}

	key := sessionKey(e.Session)
	if err := r.client.RPush(ctx, key, data).Err(); err != nil {
		return fmt.Errorf("failed to append to redis: %w", err)
	}
	if r.ttl > 0 {
		if err := r.client.Expire(ctx, key, r.ttl).Err(); err != nil {
			return fmt.Errorf("failed to set ttl on %s: %w", key, err)
		}
	}
	return nil
}

// Load reads back the transcript of one session.
func (r *Redis) Load(ctx context.Context, session string) ([]Entry, error) {
	if r == nil || r.client == nil {
		return nil, fmt.Errorf("redis not configured")
	}

	raw, err := r.client.LRange(ctx, sessionKey(session), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(raw))
	for i, s := range raw {
		var e Entry
		if err := json.Unmarshal([]byte(s), &e); err != nil {
			return nil, fmt.Errorf("failed to unmarshal entry %d of %s: %w", i, session, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (r *Redis) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Close()
}
