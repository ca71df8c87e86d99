package ladderrouter

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	gamedomain "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain"
	ladderservice "github.com/Black-And-White-Club/ladder-bot/app/modules/ladder/application"
	ladderevents "github.com/Black-And-White-Club/ladder-bot/app/modules/ladder/domain/events"
	ladderhandlers "github.com/Black-And-White-Club/ladder-bot/app/modules/ladder/infrastructure/handlers"
	ladderdb "github.com/Black-And-White-Club/ladder-bot/app/modules/ladder/infrastructure/repositories"
	"github.com/Black-And-White-Club/ladder-bot/pkg/eventbus"
	"github.com/Black-And-White-Club/ladder-bot/pkg/metrics"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestLadderRouter_RegisterPlayerRoundTrip(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	wmLogger := watermill.NewSlogLogger(logger)
	ps := gochannel.NewGoChannel(gochannel.Config{}, wmLogger)
	bus := eventbus.New(ps, ps, logger)
	tracer := noop.NewTracerProvider().Tracer("test")

	router, err := message.NewRouter(message.RouterConfig{}, wmLogger)
	require.NoError(t, err)

	repo := ladderdb.NewFakeRepository()
	svc := ladderservice.NewLadderService(repo, logger, metrics.NoOpMetrics{}, tracer, nil,
		gamedomain.Competition{DefaultWinModifier: 10, DefaultLossModifier: 5},
		gamedomain.Lobby{Multiplier: 1, ReductionPercent: 0.5},
	)

	r := NewLadderRouter(logger, router, bus, bus, tracer)
	require.NoError(t, r.Configure(context.Background(), ladderhandlers.NewLadderHandlers(svc, logger)))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	registered, err := bus.Subscribe(ctx, ladderevents.PlayerRegisteredV1)
	require.NoError(t, err)
	failed, err := bus.Subscribe(ctx, ladderevents.PlayerRegisterFailedV1)
	require.NoError(t, err)

	go func() { _ = router.Run(ctx) }()
	t.Cleanup(func() { _ = r.Close() })
	select {
	case <-router.Running():
	case <-ctx.Done():
		t.Fatal("router did not start")
	}

	publish := func() {
		body, err := json.Marshal(ladderevents.PlayerRequestPayloadV1{GuildID: "g", UserID: "u1"})
		require.NoError(t, err)
		require.NoError(t, bus.Publish(ladderevents.PlayerRegisterRequestedV1, message.NewMessage(watermill.NewUUID(), body)))
	}

	publish()
	select {
	case got := <-registered:
		got.Ack()
		var payload ladderevents.PlayerPayloadV1
		require.NoError(t, json.Unmarshal(got.Payload, &payload))
		require.Equal(t, "u1", payload.Player.UserID)
	case <-ctx.Done():
		t.Fatal("no registered reply")
	}

	publish()
	select {
	case got := <-failed:
		got.Ack()
		var payload ladderevents.LadderFailedPayloadV1
		require.NoError(t, json.Unmarshal(got.Payload, &payload))
		require.Equal(t, "invalid_state", payload.Kind)
	case <-ctx.Done():
		t.Fatal("no failed reply")
	}
}
