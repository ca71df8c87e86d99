package gameservice

import (
	"context"
	"testing"

	gamedomain "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain"
	ladderdb "github.com/Black-And-White-Club/ladder-bot/app/modules/ladder/infrastructure/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameService_Cancel(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		state      gamedomain.GameState
		want       *gamedomain.RejectionError
		clearQueue bool
	}{
		{name: "undecided", state: gamedomain.StateUndecided},
		{name: "picking clears queue", state: gamedomain.StatePicking, clearQueue: true},
		{name: "decided", state: gamedomain.StateDecided, want: gamedomain.ErrCancelState},
		{name: "draw", state: gamedomain.StateDraw, want: gamedomain.ErrCancelState},
		{name: "canceled", state: gamedomain.StateCanceled, want: gamedomain.ErrCancelState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.games.seed(testRef, tt.state, twoVsTwo())
			_ = h.ladder.EnqueuePlayer(ctx, nil, &ladderdb.QueuedPlayer{GuildID: testGuild, LobbyID: testLobby, UserID: "c1"})

			res, err := h.svc.Cancel(ctx, testRef, "no show", "mod-1")
			if tt.want != nil {
				requireRejection(t, res, err, tt.want)
				assert.Equal(t, tt.state, h.games.game(testRef).State)
				return
			}
			require.NoError(t, err)
			require.True(t, res.IsSuccess())
			assert.Equal(t, gamedomain.StateCanceled, (*res.Success).State)
			assert.Equal(t, "no show", (*res.Success).Comment)
			assert.Equal(t, tt.clearQueue, len(h.ladder.Queue) == 0)
			assert.Equal(t, 1000, h.ladder.Snapshot(testGuild, "a1").Points)
		})
	}
}

func TestGameService_Draw(t *testing.T) {
	ctx := context.Background()

	t.Run("counts a draw for registered players", func(t *testing.T) {
		h := newHarness(t)
		h.games.seed(testRef, gamedomain.StateUndecided, gamedomain.Roster{
			Team1: []string{"a1", "ghost"},
			Team2: []string{"b1"},
		})

		res, err := h.svc.Draw(ctx, testRef, "", "mod-1")
		require.NoError(t, err)
		require.True(t, res.IsSuccess())
		assert.Equal(t, gamedomain.StateDraw, h.games.game(testRef).State)
		assert.Equal(t, 1, h.ladder.Snapshot(testGuild, "a1").Draws)
		assert.Equal(t, 1, h.ladder.Snapshot(testGuild, "b1").Draws)
		assert.Equal(t, 0, h.ladder.Snapshot(testGuild, "a2").Draws)
		assert.Empty(t, h.games.updates[testRef])
	})

	for state, want := range map[gamedomain.GameState]*gamedomain.RejectionError{
		gamedomain.StateDecided:  gamedomain.ErrAlreadyResolved,
		gamedomain.StateDraw:     gamedomain.ErrAlreadyResolved,
		gamedomain.StatePicking:  gamedomain.ErrDrawState,
		gamedomain.StateCanceled: gamedomain.ErrDrawState,
	} {
		t.Run("rejects "+string(state), func(t *testing.T) {
			h := newHarness(t)
			h.games.seed(testRef, state, twoVsTwo())
			res, err := h.svc.Draw(ctx, testRef, "", "mod-1")
			requireRejection(t, res, err, want)
		})
	}
}
