package ledger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis keeps the visitor identities in a Redis set. The count is the set's
// cardinality, so the count invariant holds by construction and recording a
// visitor is atomic across any number of service instances.
//
// Redis does not keep an empty set, so an absent key is the initial state.
// Visitors come back sorted rather than in insertion order.
type Redis struct {
	client *redis.Client
	key    string
}

// RedisConfig holds configuration for the Redis connection.
type RedisConfig struct {
	// URL is the Redis server address (e.g., "localhost:6379").
	URL string

	// Password for Redis authentication (optional).
	Password string

	// DB is the Redis database number.
	DB int

	// Prefix namespaces the ledger key (default: "portfolio:").
	Prefix string
}

// NewRedis connects to Redis and verifies the connection with a ping.
func NewRedis(ctx context.Context, config RedisConfig) (*Redis, error) {
	if config.Prefix == "" {
		config.Prefix = "portfolio:"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.URL,
		Password: config.Password,
		DB:       config.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Redis{
		client: client,
		key:    config.Prefix + "visitors",
	}, nil
}

// Load returns every counted identity.
func (r *Redis) Load(ctx context.Context) (*Ledger, error) {
	members, err := r.client.SMembers(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis smembers failed: %w", err)
	}
	sort.Strings(members)

	l := newLedger()
	l.Visitors = append(l.Visitors, members...)
	l.Count = int64(len(members))
	return l, nil
}

// Save replaces the set with l's visitors.
func (r *Redis) Save(ctx context.Context, l *Ledger) error {
	if err := l.Validate(); err != nil {
		return err
	}
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.key)
		if len(l.Visitors) > 0 {
			members := make([]any, len(l.Visitors))
			for i, v := range l.Visitors {
				members[i] = v
			}
			pipe.SAdd(ctx, r.key, members...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save failed: %w", err)
	}
	return nil
}

// Reset deletes the set.
func (r *Redis) Reset(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("redis reset failed: %w", err)
	}
	return nil
}

// RecordVisitor adds identity to the set and reads the cardinality in one
// MULTI/EXEC block.
func (r *Redis) RecordVisitor(ctx context.Context, identity string) (Result, error) {
	var added, card *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		added = pipe.SAdd(ctx, r.key, identity)
		card = pipe.SCard(ctx, r.key)
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("redis record failed: %w", err)
	}
	return Result{Count: card.Val(), IsNewVisitor: added.Val() == 1}, nil
}

// Close releases the Redis client connection.
func (r *Redis) Close() error {
	return r.client.Close()
}
