package redisclient

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

const slotKeyPrefix = "slots:"

// Client wraps the Redis connection backing the slot store. Each calendar
// date maps to one set keyed slots:{YYYY-MM-DD}; set members are HH:MM
// labels.
type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis client and verifies connectivity.
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

func slotKey(date string) string {
	return slotKeyPrefix + date
}

// ListSlots returns the time labels for a date, sorted. An unknown date
// yields an empty slice, never an error state the caller has to special-case.
func (c *Client) ListSlots(ctx context.Context, date string) ([]string, error) {
	slots, err := c.rdb.SMembers(ctx, slotKey(date)).Result()
	if err != nil {
		return nil, fmt.Errorf("list slots for %s: %w", date, err)
	}
	sort.Strings(slots)
	return slots, nil
}

// AddSlot performs an idempotent union-insert of a time label into a date's
// set. Adding an already-present label is a no-op.
func (c *Client) AddSlot(ctx context.Context, date, timeLabel string) error {
	if err := c.rdb.SAdd(ctx, slotKey(date), timeLabel).Err(); err != nil {
		return fmt.Errorf("add slot %s %s: %w", date, timeLabel, err)
	}
	return nil
}

// RemoveSlot removes a time label from a date's set. SREM is a single
// conditional mutation on the set: of N concurrent removals of the same
// member, exactly one observes a removed count of 1. Returns false when the
// slot was already absent.
func (c *Client) RemoveSlot(ctx context.Context, date, timeLabel string) (bool, error) {
	removed, err := c.rdb.SRem(ctx, slotKey(date), timeLabel).Result()
	if err != nil {
		return false, fmt.Errorf("remove slot %s %s: %w", date, timeLabel, err)
	}
	return removed == 1, nil
}

// HasSlot reports whether a time label is currently present for a date.
func (c *Client) HasSlot(ctx context.Context, date, timeLabel string) (bool, error) {
	present, err := c.rdb.SIsMember(ctx, slotKey(date), timeLabel).Result()
	if err != nil {
		return false, fmt.Errorf("check slot %s %s: %w", date, timeLabel, err)
	}
	return present, nil
}

// AvailableDates scans for dates whose slot set is non-empty. Recomputed on
// every call; staleness is tolerated because the authoritative check happens
// at removal time.
func (c *Client) AvailableDates(ctx context.Context) ([]string, error) {
	var dates []string
	iter := c.rdb.Scan(ctx, 0, slotKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		count, err := c.rdb.SCard(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("count slots for %s: %w", key, err)
		}
		if count > 0 {
			dates = append(dates, strings.TrimPrefix(key, slotKeyPrefix))
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan slot keys: %w", err)
	}
	sort.Strings(dates)
	return dates, nil
}
