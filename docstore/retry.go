// Copyright (c) 2025 The Blockvote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrRetriesExhausted is returned when every attempt of a retried unit lost
// its version race. The caller should tell the user to try again; no write
// was applied by the final attempt.
var ErrRetriesExhausted = errors.New("retries exhausted on version conflict")

// Retry defaults. Three attempts with linear backoff keeps worst-case
// latency under a second while absorbing bursts of concurrent writers.
const (
	DefaultMaxAttempts = 3
	DefaultBackoff     = 100 * time.Millisecond
)

// Retrier runs read-modify-write units against a Store, retrying only on
// ErrVersionConflict. The zero value uses the defaults above.
type Retrier struct {
	MaxAttempts int
	Backoff     time.Duration
}

// Do executes op up to MaxAttempts times. op must perform a fresh read on
// every invocation; a version token from a failed attempt is stale by
// definition and must never be reused.
//
// On ErrVersionConflict, Do sleeps Backoff × attempt and re-runs op. Any
// other error aborts immediately: structural failures don't heal with
// repetition and retrying them would mask bugs. After the final conflicting
// attempt, Do returns an error wrapping ErrRetriesExhausted.
func (r Retrier) Do(ctx context.Context, op func(context.Context) error) error {
	maxAttempts := r.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	backoff := r.Backoff
	if backoff <= 0 {
		backoff = DefaultBackoff
	}

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = op(ctx)
		if err == nil || !errors.Is(err, ErrVersionConflict) {
			return err
		}
		if attempt == maxAttempts {
			break
		}
		if serr := sleep(ctx, backoff*time.Duration(attempt)); serr != nil {
			return serr
		}
	}
	return fmt.Errorf("%w after %d attempts: %v", ErrRetriesExhausted, maxAttempts, err)
}

// sleep waits for d or until ctx is done, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
