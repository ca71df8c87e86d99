package gamehandlers

import (
	"context"

	gameservice "github.com/Black-And-White-Club/ladder-bot/app/modules/game/application"
	gamedomain "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain"
)

// ------------------------
// Fake Game Service
// ------------------------

// FakeGameService provides a programmable stub for the gameservice.Service interface.
type FakeGameService struct {
	trace []string

	RecordGameFunc    func(ctx context.Context, guildID, lobbyID string, roster gamedomain.Roster, picking bool) (gameservice.GameInfoResult, error)
	FinishPickingFunc func(ctx context.Context, ref gamedomain.GameRef, roster gamedomain.Roster) (gameservice.GameInfoResult, error)
	SubmitOutcomeFunc func(ctx context.Context, ref gamedomain.GameRef, winner gamedomain.TeamSelector, comment, submitter string) (gameservice.SettlementResult, error)
	UndoFunc          func(ctx context.Context, ref gamedomain.GameRef) (gameservice.UndoOpResult, error)
	CancelFunc        func(ctx context.Context, ref gamedomain.GameRef, comment, submitter string) (gameservice.GameResult, error)
	DrawFunc          func(ctx context.Context, ref gamedomain.GameRef, comment, submitter string) (gameservice.GameResult, error)
	CastVoteFunc      func(ctx context.Context, ref gamedomain.GameRef, voterID, vote string) (gameservice.VoteResult, error)
	GetGameFunc       func(ctx context.Context, ref gamedomain.GameRef) (gameservice.GameInfoResult, error)
	LatestGameFunc    func(ctx context.Context, guildID, lobbyID string) (gameservice.GameInfoResult, error)
	ListGamesFunc     func(ctx context.Context, guildID, lobbyID string, limit int) (gameservice.GameListResult, error)
	DeleteGameFunc    func(ctx context.Context, ref gamedomain.GameRef) (gameservice.DeleteResult, error)
}

// NewFakeGameService initializes a new FakeGameService.
func NewFakeGameService() *FakeGameService {
	return &FakeGameService{trace: []string{}}
}

func (f *FakeGameService) record(step string) {
	f.trace = append(f.trace, step)
}

// Trace returns the sequence of service methods called.
func (f *FakeGameService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeGameService) RecordGame(ctx context.Context, guildID, lobbyID string, roster gamedomain.Roster, picking bool) (gameservice.GameInfoResult, error) {
	f.record("RecordGame")
	if f.RecordGameFunc != nil {
		return f.RecordGameFunc(ctx, guildID, lobbyID, roster, picking)
	}
	return gameservice.GameInfoResult{}, nil
}

func (f *FakeGameService) FinishPicking(ctx context.Context, ref gamedomain.GameRef, roster gamedomain.Roster) (gameservice.GameInfoResult, error) {
	f.record("FinishPicking")
	if f.FinishPickingFunc != nil {
		return f.FinishPickingFunc(ctx, ref, roster)
	}
	return gameservice.GameInfoResult{}, nil
}

func (f *FakeGameService) SubmitOutcome(ctx context.Context, ref gamedomain.GameRef, winner gamedomain.TeamSelector, comment, submitter string) (gameservice.SettlementResult, error) {
	f.record("SubmitOutcome")
	if f.SubmitOutcomeFunc != nil {
		return f.SubmitOutcomeFunc(ctx, ref, winner, comment, submitter)
	}
	return gameservice.SettlementResult{}, nil
}

func (f *FakeGameService) Undo(ctx context.Context, ref gamedomain.GameRef) (gameservice.UndoOpResult, error) {
	f.record("Undo")
	if f.UndoFunc != nil {
		return f.UndoFunc(ctx, ref)
	}
	return gameservice.UndoOpResult{}, nil
}

func (f *FakeGameService) Cancel(ctx context.Context, ref gamedomain.GameRef, comment, submitter string) (gameservice.GameResult, error) {
	f.record("Cancel")
	if f.CancelFunc != nil {
		return f.CancelFunc(ctx, ref, comment, submitter)
	}
	return gameservice.GameResult{}, nil
}

func (f *FakeGameService) Draw(ctx context.Context, ref gamedomain.GameRef, comment, submitter string) (gameservice.GameResult, error) {
	f.record("Draw")
	if f.DrawFunc != nil {
		return f.DrawFunc(ctx, ref, comment, submitter)
	}
	return gameservice.GameResult{}, nil
}

func (f *FakeGameService) CastVote(ctx context.Context, ref gamedomain.GameRef, voterID, vote string) (gameservice.VoteResult, error) {
	f.record("CastVote")
	if f.CastVoteFunc != nil {
		return f.CastVoteFunc(ctx, ref, voterID, vote)
	}
	return gameservice.VoteResult{}, nil
}

func (f *FakeGameService) GetGame(ctx context.Context, ref gamedomain.GameRef) (gameservice.GameInfoResult, error) {
	f.record("GetGame")
	if f.GetGameFunc != nil {
		return f.GetGameFunc(ctx, ref)
	}
	return gameservice.GameInfoResult{}, nil
}

func (f *FakeGameService) LatestGame(ctx context.Context, guildID, lobbyID string) (gameservice.GameInfoResult, error) {
	f.record("LatestGame")
	if f.LatestGameFunc != nil {
		return f.LatestGameFunc(ctx, guildID, lobbyID)
	}
	return gameservice.GameInfoResult{}, nil
}

func (f *FakeGameService) ListGames(ctx context.Context, guildID, lobbyID string, limit int) (gameservice.GameListResult, error) {
	f.record("ListGames")
	if f.ListGamesFunc != nil {
		return f.ListGamesFunc(ctx, guildID, lobbyID, limit)
	}
	return gameservice.GameListResult{}, nil
}

func (f *FakeGameService) DeleteGame(ctx context.Context, ref gamedomain.GameRef) (gameservice.DeleteResult, error) {
	f.record("DeleteGame")
	if f.DeleteGameFunc != nil {
		return f.DeleteGameFunc(ctx, ref)
	}
	return gameservice.DeleteResult{}, nil
}

func (f *FakeGameService) VoteTypes() []gamedomain.VoteValue {
	f.record("VoteTypes")
	return gamedomain.VoteValues()
}

var _ gameservice.Service = (*FakeGameService)(nil)
