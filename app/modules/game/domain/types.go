package gamedomain

import (
	"fmt"
	"time"
)

// GameRef identifies a game. GameID increases monotonically per lobby.
type GameRef struct {
	GuildID string `json:"guild_id"`
	LobbyID string `json:"lobby_id"`
	GameID  int    `json:"game_id"`
}

func (r GameRef) String() string {
	return fmt.Sprintf("%s/%s#%d", r.GuildID, r.LobbyID, r.GameID)
}

// TeamSelector picks one of the two rosters of a game. It is never a vote value.
type TeamSelector int

const (
	Team1 TeamSelector = 1
	Team2 TeamSelector = 2
)

// Valid reports whether t names a team.
func (t TeamSelector) Valid() bool {
	return t == Team1 || t == Team2
}

// Opponent returns the other team.
func (t TeamSelector) Opponent() TeamSelector {
	if t == Team1 {
		return Team2
	}
	return Team1
}

func (t TeamSelector) String() string {
	switch t {
	case Team1:
		return "team1"
	case Team2:
		return "team2"
	default:
		return fmt.Sprintf("team(%d)", int(t))
	}
}

// GameState is the lifecycle state of a game.
type GameState string

const (
	StateUndecided GameState = "undecided"
	StatePicking   GameState = "picking"
	StateDecided   GameState = "decided"
	StateDraw      GameState = "draw"
	StateCanceled  GameState = "canceled"
)

// RankChange classifies the tier transition of a settled player.
type RankChange string

const (
	RankChangeNone   RankChange = "none"
	RankChangeUp     RankChange = "rank_up"
	RankChangeDerank RankChange = "derank"
)

// Player is a ladder participant in one guild.
type Player struct {
	GuildID string `json:"guild_id"`
	UserID  string `json:"user_id"`
	Points  int    `json:"points"`
	Wins    int    `json:"wins"`
	Losses  int    `json:"losses"`
	Draws   int    `json:"draws"`
}

// Rank is a point tier. Nil modifiers fall back to the competition defaults.
type Rank struct {
	GuildID      string `json:"guild_id"`
	RoleID       string `json:"role_id"`
	Threshold    int    `json:"threshold"`
	WinModifier  *int   `json:"win_modifier,omitempty"`
	LossModifier *int   `json:"loss_modifier,omitempty"`
}

// Competition holds the guild wide scoring policy.
type Competition struct {
	GuildID             string `json:"guild_id"`
	DefaultWinModifier  int    `json:"default_win_modifier"`
	DefaultLossModifier int    `json:"default_loss_modifier"`
	AllowNegativeScore  bool   `json:"allow_negative_score"`
}

// Lobby holds the per channel scoring settings.
type Lobby struct {
	GuildID           string  `json:"guild_id"`
	LobbyID           string  `json:"lobby_id"`
	Multiplier        float64 `json:"multiplier"`
	MultiplyLossValue bool    `json:"multiply_loss_value"`
	HighLimit         *int    `json:"high_limit,omitempty"`
	ReductionPercent  float64 `json:"reduction_percent"`
	CurrentGameCount  int     `json:"current_game_count"`
}

// Game is one match of a lobby.
type Game struct {
	Ref          GameRef       `json:"ref"`
	State        GameState     `json:"state"`
	WinningTeam  *TeamSelector `json:"winning_team,omitempty"`
	Comment      string        `json:"comment,omitempty"`
	Submitter    string        `json:"submitter,omitempty"`
	VoteComplete bool          `json:"vote_complete"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// Vote is one participant's opinion on the outcome, relative to their own team.
type Vote struct {
	Ref    GameRef   `json:"ref"`
	UserID string    `json:"user_id"`
	Value  VoteValue `json:"value"`
}

// ScoreUpdate is the audit row of the signed delta computed for one player in one game.
type ScoreUpdate struct {
	Ref          GameRef `json:"ref"`
	UserID       string  `json:"user_id"`
	ModifyAmount int     `json:"modify_amount"`
}

// Roster holds the two teams of a game.
type Roster struct {
	Team1 []string `json:"team1"`
	Team2 []string `json:"team2"`
}

// Team returns the members of t.
func (r Roster) Team(t TeamSelector) []string {
	if t == Team2 {
		return r.Team2
	}
	return r.Team1
}

// TeamOf reports which team userID plays on.
func (r Roster) TeamOf(userID string) (TeamSelector, bool) {
	for _, id := range r.Team1 {
		if id == userID {
			return Team1, true
		}
	}
	for _, id := range r.Team2 {
		if id == userID {
			return Team2, true
		}
	}
	return 0, false
}

// Size is the combined number of participants.
func (r Roster) Size() int {
	return len(r.Team1) + len(r.Team2)
}

// Members returns both teams, team1 first.
func (r Roster) Members() []string {
	out := make([]string, 0, r.Size())
	out = append(out, r.Team1...)
	return append(out, r.Team2...)
}
