// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package importer

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer spaces outbound provider calls: one call per interval, no bursts.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer creates a [Pacer]. A non-positive interval disables pacing.
func NewPacer(interval time.Duration) *Pacer {
	if interval <= 0 {
		return &Pacer{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Pacer{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the next call may start or ctx is done.
func (pacer *Pacer) Wait(ctx context.Context) error {
	return pacer.limiter.Wait(ctx)
}
