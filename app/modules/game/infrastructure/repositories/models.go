package gamedb

import (
	"context"
	"time"

	gamedomain "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain"
	"github.com/uptrace/bun"
)

// Game is one match of a lobby.
type Game struct {
	bun.BaseModel `bun:"table:games,alias:g"`

	GuildID      string               `bun:"guild_id,pk"`
	LobbyID      string               `bun:"lobby_id,pk"`
	GameID       int                  `bun:"game_id,pk"`
	State        gamedomain.GameState `bun:"state,notnull"`
	WinningTeam  *int                 `bun:"winning_team"`
	Comment      string               `bun:"comment"`
	Submitter    string               `bun:"submitter"`
	VoteComplete bool                 `bun:"vote_complete,notnull,default:false"`
	CreatedAt    time.Time            `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt    time.Time            `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// GameTeamPlayer places one user on one team of a game.
type GameTeamPlayer struct {
	bun.BaseModel `bun:"table:game_team_players,alias:gtp"`

	GuildID string `bun:"guild_id,pk"`
	LobbyID string `bun:"lobby_id,pk"`
	GameID  int    `bun:"game_id,pk"`
	UserID  string `bun:"user_id,pk"`
	Team    int    `bun:"team,notnull"`
}

// Vote is one participant's vote on a game.
type Vote struct {
	bun.BaseModel `bun:"table:game_votes,alias:gv"`

	GuildID   string               `bun:"guild_id,pk"`
	LobbyID   string               `bun:"lobby_id,pk"`
	GameID    int                  `bun:"game_id,pk"`
	UserID    string               `bun:"user_id,pk"`
	Value     gamedomain.VoteValue `bun:"value,notnull"`
	CreatedAt time.Time            `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// ScoreUpdate records the delta computed for one player in one game.
type ScoreUpdate struct {
	bun.BaseModel `bun:"table:score_updates,alias:su"`

	GuildID      string    `bun:"guild_id,pk"`
	LobbyID      string    `bun:"lobby_id,pk"`
	GameID       int       `bun:"game_id,pk"`
	UserID       string    `bun:"user_id,pk"`
	ModifyAmount int       `bun:"modify_amount,notnull"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

var _ bun.BeforeAppendModelHook = (*Game)(nil)

func (g *Game) BeforeAppendModel(_ context.Context, query bun.Query) error {
	if _, ok := query.(*bun.UpdateQuery); ok {
		g.UpdatedAt = time.Now().UTC()
	}
	return nil
}

// Ref returns the game key.
func (g *Game) Ref() gamedomain.GameRef {
	return gamedomain.GameRef{GuildID: g.GuildID, LobbyID: g.LobbyID, GameID: g.GameID}
}

func (g *Game) ToDomain() gamedomain.Game {
	out := gamedomain.Game{
		Ref:          g.Ref(),
		State:        g.State,
		Comment:      g.Comment,
		Submitter:    g.Submitter,
		VoteComplete: g.VoteComplete,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
	if g.WinningTeam != nil {
		t := gamedomain.TeamSelector(*g.WinningTeam)
		out.WinningTeam = &t
	}
	return out
}

// Apply copies the mutable fields of a domain game onto the row.
func (g *Game) Apply(d gamedomain.Game) {
	g.State = d.State
	g.Comment = d.Comment
	g.Submitter = d.Submitter
	g.VoteComplete = d.VoteComplete
	g.WinningTeam = nil
	if d.WinningTeam != nil {
		t := int(*d.WinningTeam)
		g.WinningTeam = &t
	}
}

func (v *Vote) ToDomain() gamedomain.Vote {
	return gamedomain.Vote{
		Ref:    gamedomain.GameRef{GuildID: v.GuildID, LobbyID: v.LobbyID, GameID: v.GameID},
		UserID: v.UserID,
		Value:  v.Value,
	}
}

func VoteFromDomain(v gamedomain.Vote) *Vote {
	return &Vote{
		GuildID: v.Ref.GuildID,
		LobbyID: v.Ref.LobbyID,
		GameID:  v.Ref.GameID,
		UserID:  v.UserID,
		Value:   v.Value,
	}
}

func (u *ScoreUpdate) ToDomain() gamedomain.ScoreUpdate {
	return gamedomain.ScoreUpdate{
		Ref:          gamedomain.GameRef{GuildID: u.GuildID, LobbyID: u.LobbyID, GameID: u.GameID},
		UserID:       u.UserID,
		ModifyAmount: u.ModifyAmount,
	}
}

func ScoreUpdateFromDomain(u gamedomain.ScoreUpdate) *ScoreUpdate {
	return &ScoreUpdate{
		GuildID:      u.Ref.GuildID,
		LobbyID:      u.Ref.LobbyID,
		GameID:       u.Ref.GameID,
		UserID:       u.UserID,
		ModifyAmount: u.ModifyAmount,
	}
}

// RosterRows flattens a roster into team rows.
func RosterRows(ref gamedomain.GameRef, roster gamedomain.Roster) []*GameTeamPlayer {
	rows := make([]*GameTeamPlayer, 0, roster.Size())
	for _, team := range []gamedomain.TeamSelector{gamedomain.Team1, gamedomain.Team2} {
		for _, userID := range roster.Team(team) {
			rows = append(rows, &GameTeamPlayer{
				GuildID: ref.GuildID,
				LobbyID: ref.LobbyID,
				GameID:  ref.GameID,
				UserID:  userID,
				Team:    int(team),
			})
		}
	}
	return rows
}
