package gameevents

import gamedomain "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain"

// Request topics consumed by the game router.
const (
	GameRecordRequestedV1    = "game.record.requested.v1"
	OutcomeSubmitRequestedV1 = "game.outcome.submit.requested.v1"
	GameUndoRequestedV1      = "game.undo.requested.v1"
	GameCancelRequestedV1    = "game.cancel.requested.v1"
	GameDrawRequestedV1      = "game.draw.requested.v1"
	VoteCastRequestedV1      = "game.vote.cast.requested.v1"
	GameDeleteRequestedV1    = "game.delete.requested.v1"
	PickingFinishRequestedV1 = "game.picking.finish.requested.v1"
)

// Reply topics.
const (
	GameRecordSucceededV1    = "game.record.succeeded.v1"
	GameRecordFailedV1       = "game.record.failed.v1"
	OutcomeSubmitSucceededV1 = "game.outcome.submit.succeeded.v1"
	OutcomeSubmitFailedV1    = "game.outcome.submit.failed.v1"
	GameUndoSucceededV1      = "game.undo.succeeded.v1"
	GameUndoFailedV1         = "game.undo.failed.v1"
	GameCancelSucceededV1    = "game.cancel.succeeded.v1"
	GameCancelFailedV1       = "game.cancel.failed.v1"
	GameDrawSucceededV1      = "game.draw.succeeded.v1"
	GameDrawFailedV1         = "game.draw.failed.v1"
	VoteCastSucceededV1      = "game.vote.cast.succeeded.v1"
	VoteCastFailedV1         = "game.vote.cast.failed.v1"
	GameDeleteSucceededV1    = "game.delete.succeeded.v1"
	GameDeleteFailedV1       = "game.delete.failed.v1"
	PickingFinishSucceededV1 = "game.picking.finish.succeeded.v1"
	PickingFinishFailedV1    = "game.picking.finish.failed.v1"
)

// GuildScopedTopics are also published as {topic}.{guild_id} for per-guild consumers.
var GuildScopedTopics = []string{
	GameRecordSucceededV1,
	OutcomeSubmitSucceededV1,
	GameUndoSucceededV1,
	GameCancelSucceededV1,
	GameDrawSucceededV1,
	VoteCastSucceededV1,
	GameDeleteSucceededV1,
}

// GameRecordRequestedPayloadV1 registers a new game once teams are formed.
type GameRecordRequestedPayloadV1 struct {
	GuildID string   `json:"guild_id"`
	LobbyID string   `json:"lobby_id"`
	Team1   []string `json:"team1"`
	Team2   []string `json:"team2"`
	Picking bool     `json:"picking"`
}

// PickingFinishRequestedPayloadV1 carries the final teams of a picking game.
type PickingFinishRequestedPayloadV1 struct {
	Ref   gamedomain.GameRef `json:"ref"`
	Team1 []string           `json:"team1"`
	Team2 []string           `json:"team2"`
}

// OutcomeSubmitRequestedPayloadV1 is a moderator result.
type OutcomeSubmitRequestedPayloadV1 struct {
	Ref         gamedomain.GameRef      `json:"ref"`
	WinningTeam gamedomain.TeamSelector `json:"winning_team"`
	Comment     string                  `json:"comment,omitempty"`
	Submitter   string                  `json:"submitter"`
}

// GameUndoRequestedPayloadV1 reverts a decided game.
type GameUndoRequestedPayloadV1 struct {
	Ref       gamedomain.GameRef `json:"ref"`
	Submitter string             `json:"submitter"`
}

// GameClosureRequestedPayloadV1 is shared by cancel and draw requests.
type GameClosureRequestedPayloadV1 struct {
	Ref       gamedomain.GameRef `json:"ref"`
	Comment   string             `json:"comment,omitempty"`
	Submitter string             `json:"submitter"`
}

// VoteCastRequestedPayloadV1 carries the raw vote text as typed by the player.
type VoteCastRequestedPayloadV1 struct {
	Ref    gamedomain.GameRef `json:"ref"`
	UserID string             `json:"user_id"`
	Vote   string             `json:"vote"`
}

// GameDeleteRequestedPayloadV1 removes a game from history.
type GameDeleteRequestedPayloadV1 struct {
	Ref gamedomain.GameRef `json:"ref"`
}

// GameRecordedPayloadV1 answers GameRecordRequestedV1.
type GameRecordedPayloadV1 struct {
	Game   gamedomain.Game   `json:"game"`
	Roster gamedomain.Roster `json:"roster"`
}

// OutcomeSettledPayloadV1 answers a decided game, by moderator or by vote.
type OutcomeSettledPayloadV1 struct {
	Game    gamedomain.Game               `json:"game"`
	Winners []gamedomain.PlayerSettlement `json:"winners"`
	Losers  []gamedomain.PlayerSettlement `json:"losers"`
}

// GameUndonePayloadV1 answers GameUndoRequestedV1.
type GameUndonePayloadV1 struct {
	Game     gamedomain.Game     `json:"game"`
	Reverted []gamedomain.Player `json:"reverted"`
	Skipped  []string            `json:"skipped,omitempty"`
}

// GameClosedPayloadV1 answers cancel and draw requests.
type GameClosedPayloadV1 struct {
	Game gamedomain.Game `json:"game"`
}

// VoteCastPayloadV1 answers VoteCastRequestedV1.
type VoteCastPayloadV1 struct {
	Ref     gamedomain.GameRef     `json:"ref"`
	UserID  string                 `json:"user_id"`
	Outcome gamedomain.VoteOutcome `json:"outcome"`
}

// GameDeletedPayloadV1 answers GameDeleteRequestedV1.
type GameDeletedPayloadV1 struct {
	Ref gamedomain.GameRef `json:"ref"`
}

// GameFailedPayloadV1 is the body of every *.failed.v1 reply.
type GameFailedPayloadV1 struct {
	Ref    *gamedomain.GameRef `json:"ref,omitempty"`
	UserID string              `json:"user_id,omitempty"`
	Kind   string              `json:"kind"`
	Reason string              `json:"reason"`
}
