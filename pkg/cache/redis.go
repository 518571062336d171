package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

// RedisOptions configures [NewRedisCache].
type RedisOptions struct {
	Addr     string
	Password string
	DB       int

	// Prefix is prepended to every key, e.g. "mazegen:".
	Prefix string

	// LockExpiry bounds how long a generation lock is held if its owner
	// dies. Zero means 30 seconds.
	LockExpiry time.Duration
}

// RedisCache stores entries in Redis. It also implements [Locker] with
// redsync mutexes, so server replicas generate each maze once.
type RedisCache struct {
	client *redis.Client
	locker *redsync.Redsync
	prefix string
	expiry time.Duration
}

// NewRedisCache connects to Redis and verifies the connection with PING.
func NewRedisCache(ctx context.Context, opts RedisOptions) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: ping %s: %v", ErrNetwork, opts.Addr, err)
	}
	return newRedisCache(client, opts), nil
}

func newRedisCache(client *redis.Client, opts RedisOptions) *RedisCache {
	expiry := opts.LockExpiry
	if expiry <= 0 {
		expiry = 30 * time.Second
	}
	return &RedisCache{
		client: client,
		locker: redsync.New(goredis.NewPool(client)),
		prefix: opts.Prefix,
		expiry: expiry,
	}
}

// Get retrieves a value. Connection failures are wrapped with [Retryable].
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, c.wrap(ctx, "get", err)
	}
	return data, true, nil
}

// Set stores a value with the given ttl; zero means no expiry.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.prefix+key, data, ttl).Err(); err != nil {
		return c.wrap(ctx, "set", err)
	}
	return nil
}

// Delete removes a value.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		return c.wrap(ctx, "delete", err)
	}
	return nil
}

// Lock acquires a distributed mutex for key. The returned function releases
// it; releasing an expired lock is not an error.
func (c *RedisCache) Lock(ctx context.Context, key string) (func() error, error) {
	mutex := c.locker.NewMutex(c.prefix+key+":lock", redsync.WithExpiry(c.expiry))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLockFailed, key, err)
	}
	return func() error {
		if _, err := mutex.Unlock(); err != nil && !errors.Is(err, redsync.ErrLockAlreadyExpired) {
			return err
		}
		return nil
	}, nil
}

// Close closes the Redis connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// wrap marks err as a retryable network failure unless the caller's context
// ended. Socket timeouts also satisfy context.DeadlineExceeded, so only
// ctx.Err decides.
func (c *RedisCache) wrap(ctx context.Context, op string, err error) error {
	if ctx.Err() != nil {
		return err
	}
	return Retryable(fmt.Errorf("%w: redis %s: %v", ErrNetwork, op, err))
}

var (
	_ Cache  = (*RedisCache)(nil)
	_ Locker = (*RedisCache)(nil)
)
