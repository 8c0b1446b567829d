// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/silo/internal/platform/constants"
)

// attemptStore is the slice of the Redis client the throttle uses.
type attemptStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// LoginThrottle counts failed login attempts per username+IP in a fixed
// Redis window, slowing down password guessing against the directory.
//
// # Semantics
//
// Only failed attempts count. A successful login resets the counter, and a
// blocked client stays blocked until the window key expires. The counter
// lives in Redis so the limit holds across API replicas.
type LoginThrottle struct {
	store  attemptStore
	limit  int64
	window time.Duration
}

// NewLoginThrottle creates a throttle with the platform default window.
func NewLoginThrottle(client *redis.Client) *LoginThrottle {
	return &LoginThrottle{
		store:  client,
		limit:  constants.LoginAttemptLimit,
		window: constants.LoginAttemptWindow,
	}
}

// Blocked reports whether this username+IP pair has exhausted its attempts.
func (throttle *LoginThrottle) Blocked(ctx context.Context, username, clientIP string) (bool, error) {
	count, err := throttle.store.Get(ctx, throttle.key(username, clientIP)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("auth: throttle lookup failed: %w", err)
	}

	return count >= throttle.limit, nil
}

// RecordFailure bumps the failure counter, starting the window on the first
// failure.
func (throttle *LoginThrottle) RecordFailure(ctx context.Context, username, clientIP string) error {
	key := throttle.key(username, clientIP)

	count, err := throttle.store.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("auth: throttle increment failed: %w", err)
	}

	// First failure in this window: arm the expiry.
	if count == 1 {
		if err := throttle.store.Expire(ctx, key, throttle.window).Err(); err != nil {
			return fmt.Errorf("auth: throttle expire failed: %w", err)
		}
	}

	return nil
}

// Reset clears the failure counter after a successful login.
func (throttle *LoginThrottle) Reset(ctx context.Context, username, clientIP string) error {
	if err := throttle.store.Del(ctx, throttle.key(username, clientIP)).Err(); err != nil {
		return fmt.Errorf("auth: throttle reset failed: %w", err)
	}
	return nil
}

func (throttle *LoginThrottle) key(username, clientIP string) string {
	return constants.RedisPrefixLoginAttempts + username + ":" + clientIP
}
