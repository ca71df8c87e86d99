package gameservice

import (
	"context"
	"sort"

	gamedomain "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain"
	gamedb "github.com/Black-And-White-Club/ladder-bot/app/modules/game/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Game Repo
// ------------------------

// FakeGameRepository is an in-memory gamedb.Repository. Func fields override single methods.
type FakeGameRepository struct {
	trace []string

	games   map[gamedomain.GameRef]*gamedb.Game
	roster  map[gamedomain.GameRef][]gamedb.GameTeamPlayer
	votes   map[gamedomain.GameRef][]gamedb.Vote
	updates map[gamedomain.GameRef][]gamedb.ScoreUpdate

	GetGameForUpdateFunc   func(ctx context.Context, db bun.IDB, ref gamedomain.GameRef) (*gamedb.Game, error)
	UpdateGameFunc         func(ctx context.Context, db bun.IDB, game *gamedb.Game) error
	InsertScoreUpdatesFunc func(ctx context.Context, db bun.IDB, updates []*gamedb.ScoreUpdate) error
	DeleteGameFunc         func(ctx context.Context, db bun.IDB, ref gamedomain.GameRef) error
}

func NewFakeGameRepository() *FakeGameRepository {
	return &FakeGameRepository{
		trace:   []string{},
		games:   map[gamedomain.GameRef]*gamedb.Game{},
		roster:  map[gamedomain.GameRef][]gamedb.GameTeamPlayer{},
		votes:   map[gamedomain.GameRef][]gamedb.Vote{},
		updates: map[gamedomain.GameRef][]gamedb.ScoreUpdate{},
	}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeGameRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeGameRepository) record(step string) {
	f.trace = append(f.trace, step)
}

// seed stores a game with its roster.
func (f *FakeGameRepository) seed(ref gamedomain.GameRef, state gamedomain.GameState, roster gamedomain.Roster) {
	f.games[ref] = &gamedb.Game{GuildID: ref.GuildID, LobbyID: ref.LobbyID, GameID: ref.GameID, State: state}
	for _, row := range gamedb.RosterRows(ref, roster) {
		f.roster[ref] = append(f.roster[ref], *row)
	}
}

func (f *FakeGameRepository) game(ref gamedomain.GameRef) gamedomain.Game {
	return f.games[ref].ToDomain()
}

func (f *FakeGameRepository) InsertGame(ctx context.Context, db bun.IDB, game *gamedb.Game) error {
	f.record("InsertGame")
	cp := *game
	f.games[game.Ref()] = &cp
	return nil
}

func (f *FakeGameRepository) GetGame(ctx context.Context, db bun.IDB, ref gamedomain.GameRef) (*gamedb.Game, error) {
	f.record("GetGame")
	g, ok := f.games[ref]
	if !ok {
		return nil, gamedb.ErrNotFound
	}
	cp := *g
	return &cp, nil
}

func (f *FakeGameRepository) GetGameForUpdate(ctx context.Context, db bun.IDB, ref gamedomain.GameRef) (*gamedb.Game, error) {
	f.record("GetGameForUpdate")
	if f.GetGameForUpdateFunc != nil {
		return f.GetGameForUpdateFunc(ctx, db, ref)
	}
	g, ok := f.games[ref]
	if !ok {
		return nil, gamedb.ErrNotFound
	}
	cp := *g
	return &cp, nil
}

func (f *FakeGameRepository) LatestGame(ctx context.Context, db bun.IDB, guildID, lobbyID string) (*gamedb.Game, error) {
	f.record("LatestGame")
	games, _ := f.ListGames(ctx, db, guildID, lobbyID, 1)
	if len(games) == 0 {
		return nil, gamedb.ErrNotFound
	}
	return &games[0], nil
}

func (f *FakeGameRepository) ListGames(ctx context.Context, db bun.IDB, guildID, lobbyID string, limit int) ([]gamedb.Game, error) {
	f.record("ListGames")
	var out []gamedb.Game
	for ref, g := range f.games {
		if ref.GuildID == guildID && ref.LobbyID == lobbyID {
			out = append(out, *g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GameID > out[j].GameID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *FakeGameRepository) UpdateGame(ctx context.Context, db bun.IDB, game *gamedb.Game) error {
	f.record("UpdateGame")
	if f.UpdateGameFunc != nil {
		return f.UpdateGameFunc(ctx, db, game)
	}
	if _, ok := f.games[game.Ref()]; !ok {
		return gamedb.ErrNoRowsAffected
	}
	cp := *game
	f.games[game.Ref()] = &cp
	return nil
}

func (f *FakeGameRepository) DeleteGame(ctx context.Context, db bun.IDB, ref gamedomain.GameRef) error {
	f.record("DeleteGame")
	if f.DeleteGameFunc != nil {
		return f.DeleteGameFunc(ctx, db, ref)
	}
	if _, ok := f.games[ref]; !ok {
		return gamedb.ErrNoRowsAffected
	}
	delete(f.games, ref)
	delete(f.roster, ref)
	delete(f.votes, ref)
	delete(f.updates, ref)
	return nil
}

func (f *FakeGameRepository) InsertRoster(ctx context.Context, db bun.IDB, rows []*gamedb.GameTeamPlayer) error {
	f.record("InsertRoster")
	for _, row := range rows {
		ref := gamedomain.GameRef{GuildID: row.GuildID, LobbyID: row.LobbyID, GameID: row.GameID}
		f.roster[ref] = append(f.roster[ref], *row)
	}
	return nil
}

func (f *FakeGameRepository) DeleteRoster(ctx context.Context, db bun.IDB, ref gamedomain.GameRef) error {
	f.record("DeleteRoster")
	delete(f.roster, ref)
	return nil
}

func (f *FakeGameRepository) GetTeam(ctx context.Context, db bun.IDB, ref gamedomain.GameRef, team gamedomain.TeamSelector) ([]string, error) {
	f.record("GetTeam")
	var out []string
	for _, row := range f.roster[ref] {
		if row.Team == int(team) {
			out = append(out, row.UserID)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (f *FakeGameRepository) InsertVote(ctx context.Context, db bun.IDB, vote *gamedb.Vote) error {
	f.record("InsertVote")
	ref := gamedomain.GameRef{GuildID: vote.GuildID, LobbyID: vote.LobbyID, GameID: vote.GameID}
	f.votes[ref] = append(f.votes[ref], *vote)
	return nil
}

func (f *FakeGameRepository) ListVotes(ctx context.Context, db bun.IDB, ref gamedomain.GameRef) ([]gamedb.Vote, error) {
	f.record("ListVotes")
	return append([]gamedb.Vote(nil), f.votes[ref]...), nil
}

func (f *FakeGameRepository) InsertScoreUpdates(ctx context.Context, db bun.IDB, updates []*gamedb.ScoreUpdate) error {
	f.record("InsertScoreUpdates")
	if f.InsertScoreUpdatesFunc != nil {
		return f.InsertScoreUpdatesFunc(ctx, db, updates)
	}
	for _, u := range updates {
		ref := gamedomain.GameRef{GuildID: u.GuildID, LobbyID: u.LobbyID, GameID: u.GameID}
		f.updates[ref] = append(f.updates[ref], *u)
	}
	return nil
}

func (f *FakeGameRepository) ListScoreUpdates(ctx context.Context, db bun.IDB, ref gamedomain.GameRef) ([]gamedb.ScoreUpdate, error) {
	f.record("ListScoreUpdates")
	return append([]gamedb.ScoreUpdate(nil), f.updates[ref]...), nil
}

func (f *FakeGameRepository) DeleteScoreUpdate(ctx context.Context, db bun.IDB, ref gamedomain.GameRef, userID string) error {
	f.record("DeleteScoreUpdate")
	kept := f.updates[ref][:0]
	for _, u := range f.updates[ref] {
		if u.UserID != userID {
			kept = append(kept, u)
		}
	}
	f.updates[ref] = kept
	return nil
}

var _ gamedb.Repository = (*FakeGameRepository)(nil)
