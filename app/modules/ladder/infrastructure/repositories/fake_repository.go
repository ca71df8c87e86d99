package ladderdb

import (
	"context"
	"sort"

	gamedomain "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain"
	"github.com/uptrace/bun"
)

// LobbyKey indexes per lobby state of the fake.
type LobbyKey struct{ Guild, Lobby string }

// FakeRepository is an in-memory Repository for service tests. Func fields override single methods.
type FakeRepository struct {
	trace []string

	Competitions map[string]*Competition
	Ranks        map[string][]Rank
	Lobbies      map[LobbyKey]*Lobby
	Players      map[string]map[string]*Player
	Queue        map[LobbyKey][]QueuedPlayer

	UpdatePlayersFunc func(ctx context.Context, db bun.IDB, players []*Player) error
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{
		trace:        []string{},
		Competitions: map[string]*Competition{},
		Ranks:        map[string][]Rank{},
		Lobbies:      map[LobbyKey]*Lobby{},
		Players:      map[string]map[string]*Player{},
		Queue:        map[LobbyKey][]QueuedPlayer{},
	}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeRepository) record(step string) {
	f.trace = append(f.trace, step)
}

// Snapshot returns the stored player as a domain value.
func (f *FakeRepository) Snapshot(guildID, userID string) gamedomain.Player {
	return f.Players[guildID][userID].ToDomain()
}

// Reset clears the recorded trace.
func (f *FakeRepository) Reset() {
	f.trace = []string{}
}

func (f *FakeRepository) GetCompetition(ctx context.Context, db bun.IDB, guildID string) (*Competition, error) {
	f.record("GetCompetition")
	c, ok := f.Competitions[guildID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *FakeRepository) UpsertCompetition(ctx context.Context, db bun.IDB, competition *Competition) error {
	f.record("UpsertCompetition")
	cp := *competition
	f.Competitions[competition.GuildID] = &cp
	return nil
}

func (f *FakeRepository) ListRanks(ctx context.Context, db bun.IDB, guildID string) ([]Rank, error) {
	f.record("ListRanks")
	out := append([]Rank(nil), f.Ranks[guildID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].Threshold < out[j].Threshold })
	return out, nil
}

func (f *FakeRepository) UpsertRank(ctx context.Context, db bun.IDB, rank *Rank) error {
	f.record("UpsertRank")
	_ = f.DeleteRank(ctx, db, rank.GuildID, rank.RoleID)
	f.Ranks[rank.GuildID] = append(f.Ranks[rank.GuildID], *rank)
	return nil
}

func (f *FakeRepository) DeleteRank(ctx context.Context, db bun.IDB, guildID, roleID string) error {
	f.record("DeleteRank")
	kept := f.Ranks[guildID][:0]
	found := false
	for _, r := range f.Ranks[guildID] {
		if r.RoleID == roleID {
			found = true
			continue
		}
		kept = append(kept, r)
	}
	f.Ranks[guildID] = kept
	if !found {
		return ErrNoRowsAffected
	}
	return nil
}

func (f *FakeRepository) GetLobby(ctx context.Context, db bun.IDB, guildID, lobbyID string) (*Lobby, error) {
	f.record("GetLobby")
	l, ok := f.Lobbies[LobbyKey{Guild: guildID, Lobby: lobbyID}]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (f *FakeRepository) UpsertLobby(ctx context.Context, db bun.IDB, lobby *Lobby) error {
	f.record("UpsertLobby")
	cp := *lobby
	f.Lobbies[LobbyKey{Guild: lobby.GuildID, Lobby: lobby.LobbyID}] = &cp
	return nil
}

func (f *FakeRepository) NextGameNumber(ctx context.Context, db bun.IDB, guildID, lobbyID string) (int, error) {
	f.record("NextGameNumber")
	l, ok := f.Lobbies[LobbyKey{Guild: guildID, Lobby: lobbyID}]
	if !ok {
		return 0, ErrNotFound
	}
	l.CurrentGameCount++
	return l.CurrentGameCount, nil
}

func (f *FakeRepository) GetPlayer(ctx context.Context, db bun.IDB, guildID, userID string) (*Player, error) {
	f.record("GetPlayer")
	p, ok := f.Players[guildID][userID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *FakeRepository) GetPlayersForUpdate(ctx context.Context, db bun.IDB, guildID string, userIDs []string) (map[string]*Player, error) {
	f.record("GetPlayersForUpdate")
	out := make(map[string]*Player, len(userIDs))
	for _, id := range userIDs {
		if p, ok := f.Players[guildID][id]; ok {
			cp := *p
			out[id] = &cp
		}
	}
	return out, nil
}

func (f *FakeRepository) InsertPlayer(ctx context.Context, db bun.IDB, player *Player) (bool, error) {
	f.record("InsertPlayer")
	if f.Players[player.GuildID] == nil {
		f.Players[player.GuildID] = map[string]*Player{}
	}
	if _, ok := f.Players[player.GuildID][player.UserID]; ok {
		return false, nil
	}
	cp := *player
	f.Players[player.GuildID][player.UserID] = &cp
	return true, nil
}

func (f *FakeRepository) UpdatePlayers(ctx context.Context, db bun.IDB, players []*Player) error {
	f.record("UpdatePlayers")
	if f.UpdatePlayersFunc != nil {
		return f.UpdatePlayersFunc(ctx, db, players)
	}
	for _, p := range players {
		cp := *p
		f.Players[p.GuildID][p.UserID] = &cp
	}
	return nil
}

func (f *FakeRepository) EnqueuePlayer(ctx context.Context, db bun.IDB, entry *QueuedPlayer) error {
	f.record("EnqueuePlayer")
	k := LobbyKey{Guild: entry.GuildID, Lobby: entry.LobbyID}
	for _, q := range f.Queue[k] {
		if q.UserID == entry.UserID {
			return nil
		}
	}
	f.Queue[k] = append(f.Queue[k], *entry)
	return nil
}

func (f *FakeRepository) ListQueue(ctx context.Context, db bun.IDB, guildID, lobbyID string) ([]QueuedPlayer, error) {
	f.record("ListQueue")
	return append([]QueuedPlayer(nil), f.Queue[LobbyKey{Guild: guildID, Lobby: lobbyID}]...), nil
}

func (f *FakeRepository) ClearQueue(ctx context.Context, db bun.IDB, guildID, lobbyID string) (int, error) {
	f.record("ClearQueue")
	k := LobbyKey{Guild: guildID, Lobby: lobbyID}
	n := len(f.Queue[k])
	delete(f.Queue, k)
	return n, nil
}

var _ Repository = (*FakeRepository)(nil)
