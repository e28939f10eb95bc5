package service

import (
	"context"
	"time"
)

// Clock returns the current time. A nil Clock means time.Now.
type Clock func() time.Time

func (c Clock) Now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

// Operation names a simulated ledger or network call.
type Operation string

const (
	OpIssue     Operation = "issue"
	OpPurchase  Operation = "purchase"
	OpTransfer  Operation = "transfer"
	OpAssociate Operation = "associate"
	OpRateFetch Operation = "rate_fetch"
)

// Latency simulates the network delay of an operation. Wait returns early
// with ctx.Err() if the context ends first.
type Latency interface {
	Wait(ctx context.Context, op Operation) error
}

// NoLatency never waits.
type NoLatency struct{}

func (NoLatency) Wait(ctx context.Context, _ Operation) error {
	return ctx.Err()
}

// FixedLatency waits a configured duration per operation; unknown operations don't wait.
type FixedLatency map[Operation]time.Duration

func (l FixedLatency) Wait(ctx context.Context, op Operation) error {
	d := l[op]
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
