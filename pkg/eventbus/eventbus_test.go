package eventbus

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/require"
)

func newTestBus(t *testing.T) *Bus {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ps := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewSlogLogger(logger))
	bus := New(ps, ps, logger)
	t.Cleanup(func() { _ = bus.Close() })
	return bus
}

func TestBus_PublishUsesMetadataTopic(t *testing.T) {
	bus := newTestBus(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	messages, err := bus.Subscribe(ctx, "game.undo.succeeded.v1")
	require.NoError(t, err)

	msg := message.NewMessage(watermill.NewUUID(), []byte(`{"game_id":3}`))
	msg.Metadata.Set(TopicMetadataKey, "game.undo.succeeded.v1")
	require.NoError(t, bus.Publish("", msg))

	select {
	case got := <-messages:
		require.Equal(t, msg.UUID, got.UUID)
		require.JSONEq(t, `{"game_id":3}`, string(got.Payload))
		got.Ack()
	case <-ctx.Done():
		t.Fatal("message was not routed to the metadata topic")
	}
}

func TestBus_PublishWithoutTopic(t *testing.T) {
	bus := newTestBus(t)

	msg := message.NewMessage(watermill.NewUUID(), []byte(`{}`))
	err := bus.Publish("", msg)
	if !errors.Is(err, ErrMissingTopic) {
		t.Fatalf("expected ErrMissingTopic, got %v", err)
	}
}
