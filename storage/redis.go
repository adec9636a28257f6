package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/garyburd/redigo/redis"
	"github.com/pkg/errors"
)

const (
	linkedAccountsPrefix = "linked_accounts"
)

// Cache will be a generic wrapper around a Redis cache.
type Cache struct {
	*redis.Pool
	// TTL bounds how long a cached link lives, zero keeps it forever.
	TTL time.Duration
}

// NewCache will create a new cache instance and the required Redis connection pool.
func NewCache(addr string, ttl time.Duration) *Cache {
	return &Cache{
		Pool: &redis.Pool{
			MaxIdle:     3,
			MaxActive:   25,
			IdleTimeout: 240 * time.Second,
			Dial:        func() (redis.Conn, error) { return redis.DialURL(addr) },
		},
		TTL: ttl,
	}
}

func linkedAccountKey(callerID string) string {
	return fmt.Sprintf("%s:%s", linkedAccountsPrefix, callerID)
}

// LinkedName reads the linked in-game name for the caller.
func (c *Cache) LinkedName(_ context.Context, callerID string) (string, bool, error) {

	conn := c.Get()
	defer conn.Close()

	name, err := redis.String(conn.Do("GET", linkedAccountKey(callerID)))
	if err == redis.ErrNil {
		// Not linked, or evicted from the cache.
		return "", false, nil
	} else if err != nil {
		return "", false, errors.Wrap(err, "reading linked account from redis")
	}

	return name, true, nil
}

// SaveLinkedName stores the caller's linked name, replacing any previous one.
func (c *Cache) SaveLinkedName(_ context.Context, callerID, name string) error {

	conn := c.Get()
	defer conn.Close()

	var err error
	if c.TTL > 0 {
		_, err = conn.Do("SET", linkedAccountKey(callerID), name, "EX", int64(c.TTL/time.Second))
	} else {
		_, err = conn.Do("SET", linkedAccountKey(callerID), name)
	}

	return errors.Wrap(err, "saving linked account to redis")
}

// DeleteLinkedName removes the caller's link from the cache.
func (c *Cache) DeleteLinkedName(_ context.Context, callerID string) error {

	conn := c.Get()
	defer conn.Close()

	_, err := conn.Do("DEL", linkedAccountKey(callerID))

	return errors.Wrap(err, "deleting linked account from redis")
}
