package gamedomain

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
)

func ladderRanks() []Rank {
	return []Rank{
		{RoleID: "bronze", Threshold: 0, WinModifier: intPtr(20), LossModifier: intPtr(30)},
		{RoleID: "silver", Threshold: 500, WinModifier: intPtr(30), LossModifier: intPtr(20)},
		{RoleID: "gold", Threshold: 900, WinModifier: intPtr(50), LossModifier: intPtr(30)},
	}
}

func TestSettlePlayer(t *testing.T) {
	comp := Competition{DefaultWinModifier: 10, DefaultLossModifier: 5}
	lobby := Lobby{Multiplier: 1}

	tests := []struct {
		name       string
		player     Player
		won        bool
		comp       Competition
		wantPoints int
		wantDelta  int
		wantChange RankChange
		wantWins   int
		wantLosses int
	}{
		{
			name:       "gold winner keeps tier",
			player:     Player{UserID: "a", Points: 1000},
			won:        true,
			comp:       comp,
			wantPoints: 1050, wantDelta: 50, wantChange: RankChangeNone, wantWins: 1,
		},
		{
			name:       "bronze loser stays above zero",
			player:     Player{UserID: "b", Points: 50},
			won:        false,
			comp:       comp,
			wantPoints: 20, wantDelta: -30, wantChange: RankChangeNone, wantLosses: 1,
		},
		{
			name:       "loss clamps to zero but records full delta",
			player:     Player{UserID: "b", Points: 20},
			won:        false,
			comp:       comp,
			wantPoints: 0, wantDelta: -30, wantChange: RankChangeNone, wantLosses: 1,
		},
		{
			name:       "loss below zero allowed",
			player:     Player{UserID: "b", Points: 20},
			won:        false,
			comp:       Competition{DefaultWinModifier: 10, DefaultLossModifier: 5, AllowNegativeScore: true},
			wantPoints: -10, wantDelta: -30, wantChange: RankChangeNone, wantLosses: 1,
		},
		{
			name:       "zero loss modifier still clamps a negative balance",
			player:     Player{UserID: "b", Points: -5},
			won:        false,
			comp:       Competition{DefaultWinModifier: 10},
			wantPoints: 0, wantDelta: 0, wantChange: RankChangeNone, wantLosses: 1,
		},
		{
			name:       "unranked winner ranks up",
			player:     Player{UserID: "c", Points: -5},
			won:        true,
			comp:       Competition{DefaultWinModifier: 10, AllowNegativeScore: true},
			wantPoints: 5, wantDelta: 10, wantChange: RankChangeUp, wantWins: 1,
		},
		{
			name:       "winner crossing threshold ranks up",
			player:     Player{UserID: "d", Points: 490},
			won:        true,
			comp:       comp,
			wantPoints: 510, wantDelta: 20, wantChange: RankChangeUp, wantWins: 1,
		},
		{
			name:       "loser crossing threshold deranks",
			player:     Player{UserID: "e", Points: 910},
			won:        false,
			comp:       comp,
			wantPoints: 880, wantDelta: -30, wantChange: RankChangeDerank, wantLosses: 1,
		},
		{
			name:       "loser landing on own threshold is not a derank",
			player:     Player{UserID: "f", Points: 520},
			won:        false,
			comp:       comp,
			wantPoints: 500, wantDelta: -20, wantChange: RankChangeNone, wantLosses: 1,
		},
		{
			name:       "loser falling out of lowest tier is not a derank",
			player:     Player{UserID: "g", Points: 10},
			won:        false,
			comp:       comp,
			wantPoints: 0, wantDelta: -30, wantChange: RankChangeNone, wantLosses: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SettlePlayer(tt.player, tt.won, ScoringContext{Lobby: lobby, Competition: tt.comp, Ranks: ladderRanks()})
			if got.Player.Points != tt.wantPoints {
				t.Errorf("points = %d, want %d", got.Player.Points, tt.wantPoints)
			}
			if got.Delta != tt.wantDelta {
				t.Errorf("delta = %d, want %d", got.Delta, tt.wantDelta)
			}
			if got.Change != tt.wantChange {
				t.Errorf("change = %s, want %s", got.Change, tt.wantChange)
			}
			if got.Player.Wins != tt.wantWins || got.Player.Losses != tt.wantLosses {
				t.Errorf("wins/losses = %d/%d, want %d/%d", got.Player.Wins, got.Player.Losses, tt.wantWins, tt.wantLosses)
			}
		})
	}
}

func TestSettleTeamSkipsMissingPlayers(t *testing.T) {
	players := map[string]Player{
		"a": {UserID: "a", Points: 100},
		"c": {UserID: "c", Points: 300},
	}
	sc := ScoringContext{Lobby: Lobby{Multiplier: 1}, Competition: Competition{DefaultWinModifier: 10, DefaultLossModifier: 5}}

	got := SettleTeam([]string{"a", "b", "c"}, players, true, sc)

	want := []PlayerSettlement{
		{Player: Player{UserID: "a", Points: 110, Wins: 1}, Delta: 10, Change: RankChangeNone},
		{Player: Player{UserID: "c", Points: 310, Wins: 1}, Delta: 10, Change: RankChangeNone},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("SettleTeam mismatch (-want +got):\n%s", diff)
	}

	ref := GameRef{GuildID: "g", LobbyID: "l", GameID: 4}
	if u := got[0].ScoreUpdate(ref); u != (ScoreUpdate{Ref: ref, UserID: "a", ModifyAmount: 10}) {
		t.Fatalf("unexpected score update %+v", u)
	}
}

func TestUnsettle(t *testing.T) {
	tests := []struct {
		name          string
		player        Player
		update        ScoreUpdate
		allowNegative bool
		want          Player
	}{
		{
			name:   "reverse win",
			player: Player{Points: 1050, Wins: 3},
			update: ScoreUpdate{ModifyAmount: 50},
			want:   Player{Points: 1000, Wins: 2},
		},
		{
			name:   "reverse loss",
			player: Player{Points: 0, Losses: 1},
			update: ScoreUpdate{ModifyAmount: -30},
			want:   Player{Points: 30, Losses: 0},
		},
		{
			name:   "zero delta counts as a win",
			player: Player{Points: 10, Wins: 1},
			update: ScoreUpdate{ModifyAmount: 0},
			want:   Player{Points: 10, Wins: 0},
		},
		{
			name:   "reverse win clamps",
			player: Player{Points: 5, Wins: 1},
			update: ScoreUpdate{ModifyAmount: 20},
			want:   Player{Points: 0, Wins: 0},
		},
		{
			name:          "reverse win may go negative when allowed",
			player:        Player{Points: 5, Wins: 1},
			update:        ScoreUpdate{ModifyAmount: 20},
			allowNegative: true,
			want:          Player{Points: -15, Wins: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Unsettle(tt.player, tt.update, tt.allowNegative)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Unsettle mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// Settling and then reversing is the identity whenever the clamp did not bite.
func TestSettleUnsettleRoundTrip(t *testing.T) {
	faker := gofakeit.New(42)

	for i := 0; i < 500; i++ {
		comp := Competition{
			DefaultWinModifier:  faker.IntRange(0, 100),
			DefaultLossModifier: faker.IntRange(0, 100),
			AllowNegativeScore:  faker.Bool(),
		}
		lobby := Lobby{
			Multiplier:        faker.Float64Range(0.1, 3),
			MultiplyLossValue: faker.Bool(),
			ReductionPercent:  faker.Float64Range(0, 1),
		}
		if faker.Bool() {
			lobby.HighLimit = intPtr(faker.IntRange(0, 2000))
		}
		before := Player{
			UserID: "p",
			Points: faker.IntRange(0, 2000),
			Wins:   faker.IntRange(0, 50),
			Losses: faker.IntRange(0, 50),
		}
		won := faker.Bool()

		s := SettlePlayer(before, won, ScoringContext{Lobby: lobby, Competition: comp, Ranks: ladderRanks()})
		if !won && s.Delta == 0 {
			// A zero point loss is indistinguishable from a win in the audit row.
			continue
		}
		clamped := !comp.AllowNegativeScore && before.Points+s.Delta < 0
		after := Unsettle(s.Player, s.ScoreUpdate(GameRef{}), comp.AllowNegativeScore)

		if clamped {
			if after.Points < 0 {
				t.Fatalf("points went negative after undo: %+v", after)
			}
			continue
		}
		if diff := cmp.Diff(before, after); diff != "" {
			t.Fatalf("iteration %d: undo did not restore player (-want +got):\n%s", i, diff)
		}
	}
}

func TestApplyDraw(t *testing.T) {
	got := ApplyDraw(Player{Points: 40, Draws: 2})
	if got.Draws != 3 || got.Points != 40 {
		t.Fatalf("unexpected draw result %+v", got)
	}
}
