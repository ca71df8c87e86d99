package ladderdb

import (
	"context"
	"time"

	gamedomain "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain"
	"github.com/uptrace/bun"
)

// Competition is the guild scoring policy.
type Competition struct {
	bun.BaseModel `bun:"table:competitions,alias:c"`

	GuildID             string    `bun:"guild_id,pk"`
	DefaultWinModifier  int       `bun:"default_win_modifier,notnull"`
	DefaultLossModifier int       `bun:"default_loss_modifier,notnull"`
	AllowNegativeScore  bool      `bun:"allow_negative_score,notnull,default:false"`
	CreatedAt           time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt           time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// Rank is a point tier of a guild.
type Rank struct {
	bun.BaseModel `bun:"table:ranks,alias:rk"`

	GuildID      string    `bun:"guild_id,pk"`
	RoleID       string    `bun:"role_id,pk"`
	Threshold    int       `bun:"threshold,notnull"`
	WinModifier  *int      `bun:"win_modifier"`
	LossModifier *int      `bun:"loss_modifier"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// Lobby is a channel that hosts games.
type Lobby struct {
	bun.BaseModel `bun:"table:lobbies,alias:lb"`

	GuildID           string    `bun:"guild_id,pk"`
	LobbyID           string    `bun:"lobby_id,pk"`
	Multiplier        float64   `bun:"multiplier,notnull,default:1"`
	MultiplyLossValue bool      `bun:"multiply_loss_value,notnull,default:false"`
	HighLimit         *int      `bun:"high_limit"`
	ReductionPercent  float64   `bun:"reduction_percent,notnull,default:0.5"`
	CurrentGameCount  int       `bun:"current_game_count,notnull,default:0"`
	CreatedAt         time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt         time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// Player is a registered ladder participant.
type Player struct {
	bun.BaseModel `bun:"table:players,alias:p"`

	GuildID   string    `bun:"guild_id,pk"`
	UserID    string    `bun:"user_id,pk"`
	Points    int       `bun:"points,notnull,default:0"`
	Wins      int       `bun:"wins,notnull,default:0"`
	Losses    int       `bun:"losses,notnull,default:0"`
	Draws     int       `bun:"draws,notnull,default:0"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// QueuedPlayer waits in a lobby queue until teams are picked.
type QueuedPlayer struct {
	bun.BaseModel `bun:"table:lobby_queue,alias:q"`

	GuildID  string    `bun:"guild_id,pk"`
	LobbyID  string    `bun:"lobby_id,pk"`
	UserID   string    `bun:"user_id,pk"`
	QueuedAt time.Time `bun:"queued_at,nullzero,notnull,default:current_timestamp"`
}

var (
	_ bun.BeforeAppendModelHook = (*Competition)(nil)
	_ bun.BeforeAppendModelHook = (*Lobby)(nil)
	_ bun.BeforeAppendModelHook = (*Player)(nil)
)

func (c *Competition) BeforeAppendModel(_ context.Context, query bun.Query) error {
	if _, ok := query.(*bun.UpdateQuery); ok {
		c.UpdatedAt = time.Now().UTC()
	}
	return nil
}

func (l *Lobby) BeforeAppendModel(_ context.Context, query bun.Query) error {
	if _, ok := query.(*bun.UpdateQuery); ok {
		l.UpdatedAt = time.Now().UTC()
	}
	return nil
}

func (p *Player) BeforeAppendModel(_ context.Context, query bun.Query) error {
	if _, ok := query.(*bun.UpdateQuery); ok {
		p.UpdatedAt = time.Now().UTC()
	}
	return nil
}

// ToDomain converts the row to the scoring type.
func (c *Competition) ToDomain() gamedomain.Competition {
	return gamedomain.Competition{
		GuildID:             c.GuildID,
		DefaultWinModifier:  c.DefaultWinModifier,
		DefaultLossModifier: c.DefaultLossModifier,
		AllowNegativeScore:  c.AllowNegativeScore,
	}
}

// CompetitionFromDomain builds a row from the scoring type.
func CompetitionFromDomain(c gamedomain.Competition) *Competition {
	return &Competition{
		GuildID:             c.GuildID,
		DefaultWinModifier:  c.DefaultWinModifier,
		DefaultLossModifier: c.DefaultLossModifier,
		AllowNegativeScore:  c.AllowNegativeScore,
	}
}

func (r *Rank) ToDomain() gamedomain.Rank {
	return gamedomain.Rank{
		GuildID:      r.GuildID,
		RoleID:       r.RoleID,
		Threshold:    r.Threshold,
		WinModifier:  r.WinModifier,
		LossModifier: r.LossModifier,
	}
}

func RankFromDomain(r gamedomain.Rank) *Rank {
	return &Rank{
		GuildID:      r.GuildID,
		RoleID:       r.RoleID,
		Threshold:    r.Threshold,
		WinModifier:  r.WinModifier,
		LossModifier: r.LossModifier,
	}
}

func (l *Lobby) ToDomain() gamedomain.Lobby {
	return gamedomain.Lobby{
		GuildID:           l.GuildID,
		LobbyID:           l.LobbyID,
		Multiplier:        l.Multiplier,
		MultiplyLossValue: l.MultiplyLossValue,
		HighLimit:         l.HighLimit,
		ReductionPercent:  l.ReductionPercent,
		CurrentGameCount:  l.CurrentGameCount,
	}
}

func LobbyFromDomain(l gamedomain.Lobby) *Lobby {
	return &Lobby{
		GuildID:           l.GuildID,
		LobbyID:           l.LobbyID,
		Multiplier:        l.Multiplier,
		MultiplyLossValue: l.MultiplyLossValue,
		HighLimit:         l.HighLimit,
		ReductionPercent:  l.ReductionPercent,
		CurrentGameCount:  l.CurrentGameCount,
	}
}

func (p *Player) ToDomain() gamedomain.Player {
	return gamedomain.Player{
		GuildID: p.GuildID,
		UserID:  p.UserID,
		Points:  p.Points,
		Wins:    p.Wins,
		Losses:  p.Losses,
		Draws:   p.Draws,
	}
}

func PlayerFromDomain(p gamedomain.Player) *Player {
	return &Player{
		GuildID: p.GuildID,
		UserID:  p.UserID,
		Points:  p.Points,
		Wins:    p.Wins,
		Losses:  p.Losses,
		Draws:   p.Draws,
	}
}
