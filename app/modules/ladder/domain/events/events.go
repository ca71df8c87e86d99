package ladderevents

import gamedomain "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain"

// Request topics consumed by the ladder router.
const (
	CompetitionRetrieveRequestedV1 = "ladder.competition.retrieve.requested.v1"
	CompetitionUpdateRequestedV1   = "ladder.competition.update.requested.v1"
	RankListRequestedV1            = "ladder.rank.list.requested.v1"
	RankSaveRequestedV1            = "ladder.rank.save.requested.v1"
	RankDeleteRequestedV1          = "ladder.rank.delete.requested.v1"
	LobbyRetrieveRequestedV1       = "ladder.lobby.retrieve.requested.v1"
	LobbySaveRequestedV1           = "ladder.lobby.save.requested.v1"
	PlayerRetrieveRequestedV1      = "ladder.player.retrieve.requested.v1"
	PlayerRegisterRequestedV1      = "ladder.player.register.requested.v1"
	QueueJoinRequestedV1           = "ladder.queue.join.requested.v1"
	QueueListRequestedV1           = "ladder.queue.list.requested.v1"
)

// Reply topics.
const (
	CompetitionRetrievedV1      = "ladder.competition.retrieved.v1"
	CompetitionRetrieveFailedV1 = "ladder.competition.retrieve.failed.v1"
	CompetitionUpdatedV1        = "ladder.competition.updated.v1"
	CompetitionUpdateFailedV1   = "ladder.competition.update.failed.v1"
	RankListedV1                = "ladder.rank.listed.v1"
	RankListFailedV1            = "ladder.rank.list.failed.v1"
	RankSavedV1                 = "ladder.rank.saved.v1"
	RankSaveFailedV1            = "ladder.rank.save.failed.v1"
	RankDeletedV1               = "ladder.rank.deleted.v1"
	RankDeleteFailedV1          = "ladder.rank.delete.failed.v1"
	LobbyRetrievedV1            = "ladder.lobby.retrieved.v1"
	LobbyRetrieveFailedV1       = "ladder.lobby.retrieve.failed.v1"
	LobbySavedV1                = "ladder.lobby.saved.v1"
	LobbySaveFailedV1           = "ladder.lobby.save.failed.v1"
	PlayerRetrievedV1           = "ladder.player.retrieved.v1"
	PlayerRetrieveFailedV1      = "ladder.player.retrieve.failed.v1"
	PlayerRegisteredV1          = "ladder.player.registered.v1"
	PlayerRegisterFailedV1      = "ladder.player.register.failed.v1"
	QueueJoinedV1               = "ladder.queue.joined.v1"
	QueueJoinFailedV1           = "ladder.queue.join.failed.v1"
	QueueListedV1               = "ladder.queue.listed.v1"
	QueueListFailedV1           = "ladder.queue.list.failed.v1"
)

// GuildRequestPayloadV1 addresses a guild wide resource.
type GuildRequestPayloadV1 struct {
	GuildID string `json:"guild_id"`
}

// CompetitionUpdateRequestedPayloadV1 replaces the guild scoring policy.
type CompetitionUpdateRequestedPayloadV1 struct {
	Competition gamedomain.Competition `json:"competition"`
}

// RankSaveRequestedPayloadV1 creates or moves a rank.
type RankSaveRequestedPayloadV1 struct {
	Rank gamedomain.Rank `json:"rank"`
}

// RankDeleteRequestedPayloadV1 removes the rank bound to a role.
type RankDeleteRequestedPayloadV1 struct {
	GuildID string `json:"guild_id"`
	RoleID  string `json:"role_id"`
}

// LobbyRequestPayloadV1 addresses one lobby.
type LobbyRequestPayloadV1 struct {
	GuildID string `json:"guild_id"`
	LobbyID string `json:"lobby_id"`
}

// LobbySaveRequestedPayloadV1 changes lobby settings. Omitted fields are unchanged.
type LobbySaveRequestedPayloadV1 struct {
	GuildID           string   `json:"guild_id"`
	LobbyID           string   `json:"lobby_id"`
	Multiplier        *float64 `json:"multiplier,omitempty"`
	MultiplyLossValue *bool    `json:"multiply_loss_value,omitempty"`
	HighLimit         *int     `json:"high_limit,omitempty"`
	ClearHighLimit    bool     `json:"clear_high_limit,omitempty"`
	ReductionPercent  *float64 `json:"reduction_percent,omitempty"`
}

// PlayerRequestPayloadV1 addresses one player.
type PlayerRequestPayloadV1 struct {
	GuildID string `json:"guild_id"`
	UserID  string `json:"user_id"`
}

// QueueJoinRequestedPayloadV1 queues a player in a lobby.
type QueueJoinRequestedPayloadV1 struct {
	GuildID string `json:"guild_id"`
	LobbyID string `json:"lobby_id"`
	UserID  string `json:"user_id"`
}

// CompetitionPayloadV1 answers competition requests.
type CompetitionPayloadV1 struct {
	Competition gamedomain.Competition `json:"competition"`
}

// RankListPayloadV1 answers RankListRequestedV1.
type RankListPayloadV1 struct {
	GuildID string            `json:"guild_id"`
	Ranks   []gamedomain.Rank `json:"ranks"`
}

// RankPayloadV1 answers rank save and delete requests.
type RankPayloadV1 struct {
	Rank gamedomain.Rank `json:"rank"`
}

// LobbyPayloadV1 answers lobby requests.
type LobbyPayloadV1 struct {
	Lobby gamedomain.Lobby `json:"lobby"`
}

// PlayerPayloadV1 answers player requests.
type PlayerPayloadV1 struct {
	Player gamedomain.Player `json:"player"`
}

// QueuePayloadV1 lists the players waiting in a lobby, oldest first.
type QueuePayloadV1 struct {
	GuildID string   `json:"guild_id"`
	LobbyID string   `json:"lobby_id"`
	UserIDs []string `json:"user_ids"`
}

// LadderFailedPayloadV1 is the body of every ladder *.failed.v1 reply.
type LadderFailedPayloadV1 struct {
	GuildID string `json:"guild_id"`
	LobbyID string `json:"lobby_id,omitempty"`
	UserID  string `json:"user_id,omitempty"`
	Kind    string `json:"kind"`
	Reason  string `json:"reason"`
}
