// Package attr provides the slog attribute helpers used across the ladder services.
package attr

import (
	"context"
	"fmt"
	"log/slog"
)

type correlationIDKey struct{}

// WithCorrelationID stores the correlation id of the message being processed.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// CorrelationID returns the correlation id stored in ctx, if any.
func CorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(correlationIDKey{}).(string)
	return id
}

// ExtractCorrelationID returns the correlation id as a log attribute.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	return slog.String("correlation_id", CorrelationID(ctx))
}

func String(key, value string) slog.Attr { return slog.String(key, value) }

func Int(key string, value int) slog.Attr { return slog.Int(key, value) }

func Int64(key string, value int64) slog.Attr { return slog.Int64(key, value) }

func Bool(key string, value bool) slog.Attr { return slog.Bool(key, value) }

func Float64(key string, value float64) slog.Attr { return slog.Float64(key, value) }

func Any(key string, value any) slog.Attr { return slog.Any(key, value) }

// Error logs err under the "error" key; a nil error is logged as an empty string.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

// GuildID tags a log line with the guild it concerns.
func GuildID(id string) slog.Attr { return slog.String("guild_id", id) }

// UserID tags a log line with a user id.
func UserID(id string) slog.Attr { return slog.String("user_id", id) }

// Game groups the identity of a game (guild, lobby, game number).
func Game(guildID, lobbyID string, gameID int) slog.Attr {
	return slog.Group("game",
		slog.String("guild_id", guildID),
		slog.String("lobby_id", lobbyID),
		slog.Int("game_id", gameID),
	)
}

// Stringer logs any fmt.Stringer under key.
func Stringer(key string, v fmt.Stringer) slog.Attr {
	if v == nil {
		return slog.String(key, "")
	}
	return slog.String(key, v.String())
}
