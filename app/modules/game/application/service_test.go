package gameservice

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	gamedomain "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain"
	ladderdb "github.com/Black-And-White-Club/ladder-bot/app/modules/ladder/infrastructure/repositories"
	"github.com/Black-And-White-Club/ladder-bot/pkg/metrics"
	"github.com/Black-And-White-Club/ladder-bot/pkg/results"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	testGuild = "guild-1"
	testLobby = "lobby-1"
)

var testRef = gamedomain.GameRef{GuildID: testGuild, LobbyID: testLobby, GameID: 1}

func intPtr(v int) *int { return &v }

type harness struct {
	svc    *GameService
	games  *FakeGameRepository
	ladder *ladderdb.FakeRepository
}

// newHarness builds a service over a ladder with three tiers, one lobby and four players:
// a1 gold (1000), a2 bronze (50), b1 bronze (50), b2 silver (600).
func newHarness(t *testing.T) *harness {
	t.Helper()

	games := NewFakeGameRepository()
	ladder := ladderdb.NewFakeRepository()

	ladder.Competitions[testGuild] = &ladderdb.Competition{
		GuildID:             testGuild,
		DefaultWinModifier:  10,
		DefaultLossModifier: 5,
	}
	ladder.Ranks[testGuild] = []ladderdb.Rank{
		{GuildID: testGuild, RoleID: "bronze", Threshold: 0, WinModifier: intPtr(20), LossModifier: intPtr(30)},
		{GuildID: testGuild, RoleID: "silver", Threshold: 500, WinModifier: intPtr(30), LossModifier: intPtr(20)},
		{GuildID: testGuild, RoleID: "gold", Threshold: 900, WinModifier: intPtr(50), LossModifier: intPtr(30)},
	}
	ladder.Lobbies[ladderdb.LobbyKey{Guild: testGuild, Lobby: testLobby}] = &ladderdb.Lobby{
		GuildID:          testGuild,
		LobbyID:          testLobby,
		Multiplier:       1,
		ReductionPercent: 0.5,
	}
	for id, points := range map[string]int{"a1": 1000, "a2": 50, "b1": 50, "b2": 600} {
		_, _ = ladder.InsertPlayer(context.Background(), nil, &ladderdb.Player{GuildID: testGuild, UserID: id, Points: points})
	}
	ladder.Reset()

	svc := NewGameService(
		games,
		ladder,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics.NoOpMetrics{},
		noop.NewTracerProvider().Tracer("test"),
		nil,
		gamedomain.Competition{DefaultWinModifier: 10, DefaultLossModifier: 5},
	)
	return &harness{svc: svc, games: games, ladder: ladder}
}

func twoVsTwo() gamedomain.Roster {
	return gamedomain.Roster{Team1: []string{"a1", "a2"}, Team2: []string{"b1", "b2"}}
}

// requireRejection fails unless res is a failure carrying want.
func requireRejection[S any](t *testing.T, res results.OperationResult[S, error], err error, want *gamedomain.RejectionError) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsFailure() {
		t.Fatalf("expected failure %v, got success", want)
	}
	var rej *gamedomain.RejectionError
	if !errors.As(*res.Failure, &rej) {
		t.Fatalf("failure is not a rejection: %v", *res.Failure)
	}
	if rej != want {
		t.Fatalf("rejection = %v, want %v", rej, want)
	}
}

func TestRunInTx_NoDB(t *testing.T) {
	h := newHarness(t)
	called := false
	res, err := runInTx(h.svc, context.Background(), func(ctx context.Context, db bun.IDB) (results.OperationResult[int, error], error) {
		called = db == nil
		return results.SuccessResult[int, error](7), nil
	})
	if err != nil || !called || *res.Success != 7 {
		t.Fatalf("runInTx without db: called=%v res=%v err=%v", called, res, err)
	}
}

func TestWithTelemetry_RecoversPanic(t *testing.T) {
	h := newHarness(t)
	res, err := withTelemetry(h.svc, context.Background(), "Boom", "x", func(ctx context.Context) (results.OperationResult[int, error], error) {
		panic("boom")
	})
	if err == nil {
		t.Fatal("expected error from recovered panic")
	}
	if res.IsSuccess() || res.IsFailure() {
		t.Fatalf("expected empty result, got %+v", res)
	}
}
