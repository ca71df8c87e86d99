// Package eventbus connects the ladder service to NATS JetStream through watermill.
package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/ladder-bot/pkg/attr"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	nc "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// TopicMetadataKey carries the outgoing topic of a message produced by a router handler.
const TopicMetadataKey = "topic"

// StreamName is the JetStream stream that stores every ladder subject.
const StreamName = "LADDER"

// StreamSubjects are the subject filters bound to StreamName.
var StreamSubjects = []string{"game.>", "ladder.>"}

// ErrMissingTopic is returned when a message is published without an explicit or metadata topic.
var ErrMissingTopic = errors.New("eventbus: message has no topic")

// EventBus is the publisher/subscriber pair handed to routers.
type EventBus interface {
	message.Publisher
	message.Subscriber
}

// Bus routes publishes with an empty topic to the topic stored in message metadata.
type Bus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	logger     *slog.Logger
	closers    []func()
}

var _ EventBus = (*Bus)(nil)

// New wraps an existing publisher and subscriber. Tests pass a gochannel pub/sub here.
func New(publisher message.Publisher, subscriber message.Subscriber, logger *slog.Logger) *Bus {
	return &Bus{
		publisher:  publisher,
		subscriber: subscriber,
		logger:     logger,
	}
}

// Config holds the NATS connection settings.
type Config struct {
	URL          string
	CloseTimeout time.Duration
	AckWait      time.Duration
}

// NewJetStream connects to NATS, provisions the ladder stream and builds watermill pub/sub on top of it.
func NewJetStream(ctx context.Context, cfg Config, logger *slog.Logger) (*Bus, error) {
	if cfg.CloseTimeout == 0 {
		cfg.CloseTimeout = 30 * time.Second
	}
	if cfg.AckWait == 0 {
		cfg.AckWait = 30 * time.Second
	}

	options := []nc.Option{
		nc.RetryOnFailedConnect(true),
		nc.Timeout(30 * time.Second),
		nc.ReconnectWait(time.Second),
		nc.MaxReconnects(-1),
		nc.ErrorHandler(func(_ *nc.Conn, s *nc.Subscription, err error) {
			if s != nil {
				logger.Error("NATS subscription error",
					attr.String("subject", s.Subject),
					attr.Error(err),
				)
				return
			}
			logger.Error("NATS connection error", attr.Error(err))
		}),
	}

	conn, err := nc.Connect(cfg.URL, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize JetStream: %w", err)
	}

	if err := ensureStream(ctx, js, logger); err != nil {
		conn.Close()
		return nil, err
	}

	wmLogger := watermill.NewSlogLogger(logger)
	marshaler := &nats.NATSMarshaler{}

	publisher, err := nats.NewPublisher(
		nats.PublisherConfig{
			URL:         cfg.URL,
			NatsOptions: options,
			Marshaler:   marshaler,
			JetStream: nats.JetStreamConfig{
				Disabled:      false,
				AutoProvision: false,
				TrackMsgId:    true,
			},
		},
		wmLogger,
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create watermill NATS publisher: %w", err)
	}

	subscriber, err := nats.NewSubscriber(
		nats.SubscriberConfig{
			URL:              cfg.URL,
			NatsOptions:      options,
			Unmarshaler:      marshaler,
			CloseTimeout:     cfg.CloseTimeout,
			AckWaitTimeout:   cfg.AckWait,
			SubscribersCount: 1,
			JetStream: nats.JetStreamConfig{
				Disabled:      false,
				AutoProvision: false,
				SubscribeOptions: []nc.SubOpt{
					nc.DeliverNew(),
					nc.AckExplicit(),
				},
			},
		},
		wmLogger,
	)
	if err != nil {
		_ = publisher.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to create watermill NATS subscriber: %w", err)
	}

	bus := New(publisher, subscriber, logger)
	bus.closers = append(bus.closers, conn.Close)
	return bus, nil
}

func ensureStream(ctx context.Context, js jetstream.JetStream, logger *slog.Logger) error {
	_, err := js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:      StreamName,
		Subjects:  StreamSubjects,
		Retention: jetstream.LimitsPolicy,
		MaxAge:    7 * 24 * time.Hour,
	})
	if err != nil {
		return fmt.Errorf("failed to provision stream %s: %w", StreamName, err)
	}
	logger.InfoContext(ctx, "JetStream stream ready",
		attr.String("stream", StreamName),
		attr.Any("subjects", StreamSubjects),
	)
	return nil
}

// Publish sends messages to topic. When topic is empty each message is sent to its metadata topic.
func (b *Bus) Publish(topic string, messages ...*message.Message) error {
	if topic != "" {
		return b.publisher.Publish(topic, messages...)
	}

	for _, msg := range messages {
		target := msg.Metadata.Get(TopicMetadataKey)
		if target == "" {
			return fmt.Errorf("%w: message %s", ErrMissingTopic, msg.UUID)
		}
		if err := b.publisher.Publish(target, msg); err != nil {
			return fmt.Errorf("failed to publish to %s: %w", target, err)
		}
	}
	return nil
}

// Subscribe returns the message channel for topic.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	messages, err := b.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}
	return messages, nil
}

// Close shuts down the publisher, the subscriber and the NATS connection.
func (b *Bus) Close() error {
	var errs []error
	if err := b.publisher.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close publisher: %w", err))
	}
	if err := b.subscriber.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close subscriber: %w", err))
	}
	for _, closeFn := range b.closers {
		closeFn()
	}
	return errors.Join(errs...)
}
