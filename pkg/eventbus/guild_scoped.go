package eventbus

import (
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// GuildIDMetadataKey carries the guild a message belongs to.
const GuildIDMetadataKey = "guild_id"

var ErrMissingGuild = errors.New("eventbus: guildID cannot be empty for guild-scoped publish")

// FormatGuildScopedTopic appends the guild to a topic using the pattern {baseTopic}.{guildID}.
//
// Consumers subscribe with wildcards:
//   - "game.outcome.submit.succeeded.v1.*" catches all guilds
//   - "game.outcome.submit.succeeded.v1.123456789" catches one guild
func FormatGuildScopedTopic(baseTopic string, guildID string) string {
	return fmt.Sprintf("%s.%s", baseTopic, guildID)
}

// PublishWithGuildScope publishes msg to the guild-scoped form of baseTopic.
func PublishWithGuildScope(pub message.Publisher, baseTopic string, guildID string, msg *message.Message) error {
	if guildID == "" {
		return ErrMissingGuild
	}
	topic := FormatGuildScopedTopic(baseTopic, guildID)
	msg.Metadata.Set(TopicMetadataKey, topic)
	return pub.Publish(topic, msg)
}

// GuildScoped mirrors messages on selected topics to their guild-scoped subject.
// Messages without GuildIDMetadataKey are published once.
type GuildScoped struct {
	EventBus
	topics map[string]struct{}
}

var _ EventBus = (*GuildScoped)(nil)

// NewGuildScoped wraps bus so that publishes to topics are mirrored per guild.
func NewGuildScoped(bus EventBus, topics ...string) *GuildScoped {
	set := make(map[string]struct{}, len(topics))
	for _, t := range topics {
		set[t] = struct{}{}
	}
	return &GuildScoped{EventBus: bus, topics: set}
}

// Publish forwards messages unchanged, then publishes a guild-scoped copy of each mirrored one.
func (g *GuildScoped) Publish(topic string, messages ...*message.Message) error {
	if err := g.EventBus.Publish(topic, messages...); err != nil {
		return err
	}

	for _, msg := range messages {
		base := topic
		if base == "" {
			base = msg.Metadata.Get(TopicMetadataKey)
		}
		if _, ok := g.topics[base]; !ok {
			continue
		}
		guildID := msg.Metadata.Get(GuildIDMetadataKey)
		if guildID == "" {
			continue
		}

		// fresh UUID so JetStream deduplication keeps both copies
		scoped := message.NewMessage(watermill.NewUUID(), msg.Payload)
		for k, v := range msg.Metadata {
			scoped.Metadata.Set(k, v)
		}
		if err := PublishWithGuildScope(g.EventBus, base, guildID, scoped); err != nil {
			return fmt.Errorf("guild-scoped publish to %s: %w", base, err)
		}
	}
	return nil
}
