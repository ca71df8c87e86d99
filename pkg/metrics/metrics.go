// Package metrics defines the operation metrics recorded by the ladder services.
package metrics

import (
	"context"
	"time"
)

// OperationMetrics is recorded by every service's telemetry wrapper.
type OperationMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationSuccess(ctx context.Context, operation string)
	RecordOperationFailure(ctx context.Context, operation string)
	RecordOperationDuration(ctx context.Context, operation string, duration time.Duration)
}

// GameMetrics adds the scoring and voting counters of the game module.
type GameMetrics interface {
	OperationMetrics
	RecordVoteCast(ctx context.Context, outcome string)
	RecordPointsApplied(ctx context.Context, won bool, delta int)
	RecordRankChange(ctx context.Context, change string)
}

// LadderMetrics is recorded by the ladder configuration module.
type LadderMetrics interface {
	OperationMetrics
}

// NoOpMetrics discards everything.
type NoOpMetrics struct{}

func (NoOpMetrics) RecordOperationAttempt(context.Context, string)                 {}
func (NoOpMetrics) RecordOperationSuccess(context.Context, string)                 {}
func (NoOpMetrics) RecordOperationFailure(context.Context, string)                 {}
func (NoOpMetrics) RecordOperationDuration(context.Context, string, time.Duration) {}
func (NoOpMetrics) RecordVoteCast(context.Context, string)                         {}
func (NoOpMetrics) RecordPointsApplied(context.Context, bool, int)                 {}
func (NoOpMetrics) RecordRankChange(context.Context, string)                       {}

var (
	_ GameMetrics   = NoOpMetrics{}
	_ LadderMetrics = NoOpMetrics{}
)
