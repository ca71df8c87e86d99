package gamerouter

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	gamedomain "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain"
	gameevents "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain/events"
	"github.com/Black-And-White-Club/ladder-bot/pkg/eventbus"
	"github.com/Black-And-White-Club/ladder-bot/pkg/handlerwrapper"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

// stubHandlers answers every vote with a recorded outcome and ignores the rest.
type stubHandlers struct{}

func (stubHandlers) HandleGameRecordRequested(context.Context, *gameevents.GameRecordRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	return nil, nil
}

func (stubHandlers) HandlePickingFinishRequested(context.Context, *gameevents.PickingFinishRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	return nil, nil
}

func (stubHandlers) HandleOutcomeSubmitRequested(context.Context, *gameevents.OutcomeSubmitRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	return nil, nil
}

func (stubHandlers) HandleGameUndoRequested(context.Context, *gameevents.GameUndoRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	return nil, nil
}

func (stubHandlers) HandleGameCancelRequested(context.Context, *gameevents.GameClosureRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	return nil, nil
}

func (stubHandlers) HandleGameDrawRequested(context.Context, *gameevents.GameClosureRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	return nil, nil
}

func (stubHandlers) HandleVoteCastRequested(_ context.Context, p *gameevents.VoteCastRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	return []handlerwrapper.Result{{
		Topic: gameevents.VoteCastSucceededV1,
		Payload: &gameevents.VoteCastPayloadV1{
			Ref:     p.Ref,
			UserID:  p.UserID,
			Outcome: gamedomain.VoteOutcome{Kind: gamedomain.VoteRecorded},
		},
	}}, nil
}

func (stubHandlers) HandleGameDeleteRequested(context.Context, *gameevents.GameDeleteRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	return nil, nil
}

func TestGameRouter_RoutesReplyToMetadataTopic(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	wmLogger := watermill.NewSlogLogger(logger)
	ps := gochannel.NewGoChannel(gochannel.Config{}, wmLogger)
	bus := eventbus.New(ps, ps, logger)

	router, err := message.NewRouter(message.RouterConfig{}, wmLogger)
	require.NoError(t, err)
	router.AddMiddleware(middleware.CorrelationID)

	r := NewGameRouter(logger, router, bus, bus, noop.NewTracerProvider().Tracer("test"))
	require.NoError(t, r.Configure(context.Background(), stubHandlers{}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	replies, err := bus.Subscribe(ctx, gameevents.VoteCastSucceededV1)
	require.NoError(t, err)

	go func() { _ = router.Run(ctx) }()
	t.Cleanup(func() { _ = r.Close() })
	select {
	case <-router.Running():
	case <-ctx.Done():
		t.Fatal("router did not start")
	}

	ref := gamedomain.GameRef{GuildID: "g", LobbyID: "l", GameID: 2}
	body, err := json.Marshal(gameevents.VoteCastRequestedPayloadV1{Ref: ref, UserID: "a1", Vote: "win"})
	require.NoError(t, err)
	req := message.NewMessage(watermill.NewUUID(), body)
	middleware.SetCorrelationID("corr-1", req)
	require.NoError(t, bus.Publish(gameevents.VoteCastRequestedV1, req))

	select {
	case got := <-replies:
		got.Ack()
		var payload gameevents.VoteCastPayloadV1
		require.NoError(t, json.Unmarshal(got.Payload, &payload))
		require.Equal(t, ref, payload.Ref)
		require.Equal(t, gamedomain.VoteRecorded, payload.Outcome.Kind)
		require.Equal(t, "corr-1", middleware.MessageCorrelationID(got))
	case <-ctx.Done():
		t.Fatal("no reply published")
	}
}
