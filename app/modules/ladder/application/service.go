package ladderservice

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	gamedomain "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain"
	ladderdb "github.com/Black-And-White-Club/ladder-bot/app/modules/ladder/infrastructure/repositories"
	"github.com/Black-And-White-Club/ladder-bot/pkg/attr"
	"github.com/Black-And-White-Club/ladder-bot/pkg/metrics"
	"github.com/Black-And-White-Club/ladder-bot/pkg/results"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// LadderService implements the Service interface.
type LadderService struct {
	repo     ladderdb.Repository
	logger   *slog.Logger
	metrics  metrics.LadderMetrics
	tracer   trace.Tracer
	db       *bun.DB
	defaults gamedomain.Competition
	lobby    gamedomain.Lobby
}

// NewLadderService creates a new LadderService. defaults seed new competitions and
// lobbyDefaults fill unset lobby fields.
func NewLadderService(
	repo ladderdb.Repository,
	logger *slog.Logger,
	metrics metrics.LadderMetrics,
	tracer trace.Tracer,
	db *bun.DB,
	defaults gamedomain.Competition,
	lobbyDefaults gamedomain.Lobby,
) *LadderService {
	return &LadderService{
		repo:     repo,
		logger:   logger,
		metrics:  metrics,
		tracer:   tracer,
		db:       db,
		defaults: defaults,
		lobby:    lobbyDefaults,
	}
}

var _ Service = (*LadderService)(nil)

type operationFunc[S any] func(ctx context.Context) (results.OperationResult[S, error], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any](
	s *LadderService,
	ctx context.Context,
	operationName string,
	guildID string,
	op operationFunc[S],
) (result results.OperationResult[S, error], err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("guild_id", guildID),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.String("guild_id", guildID),
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName)
			span.RecordError(err)
			result = results.OperationResult[S, error]{}
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("guild_id", guildID),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("guild_id", guildID),
			attr.Any("failure_payload", *result.Failure),
		)
		return result, nil
	}

	s.logger.DebugContext(ctx, operationName+" completed",
		attr.String("guild_id", guildID),
		attr.ExtractCorrelationID(ctx),
	)
	s.metrics.RecordOperationSuccess(ctx, operationName)
	return result, nil
}

// runInTx runs fn inside one transaction, or directly when the service has no DB handle.
func runInTx[S any](
	s *LadderService,
	ctx context.Context,
	fn func(ctx context.Context, db bun.IDB) (results.OperationResult[S, error], error),
) (results.OperationResult[S, error], error) {
	if s.db == nil {
		return fn(ctx, nil)
	}

	var result results.OperationResult[S, error]
	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})
	return result, err
}

func reject[S any](rej *gamedomain.RejectionError) results.OperationResult[S, error] {
	return results.FailureResult[S, error](rej)
}

func ok[S any](v S) results.OperationResult[S, error] {
	return results.SuccessResult[S, error](v)
}
