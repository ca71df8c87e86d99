package gameservice

import (
	"context"
	"testing"

	gamedomain "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain"
	ladderdb "github.com/Black-And-White-Club/ladder-bot/app/modules/ladder/infrastructure/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type castVote struct {
	voter string
	vote  string
}

func castAll(t *testing.T, h *harness, votes []castVote) VoteResult {
	t.Helper()
	var last VoteResult
	for _, v := range votes {
		res, err := h.svc.CastVote(context.Background(), testRef, v.voter, v.vote)
		require.NoError(t, err)
		require.True(t, res.IsSuccess(), "vote by %s failed: %v", v.voter, res.Failure)
		last = res
	}
	return last
}

func TestGameService_CastVote(t *testing.T) {
	ctx := context.Background()

	t.Run("first vote is recorded", func(t *testing.T) {
		h := newHarness(t)
		h.games.seed(testRef, gamedomain.StateUndecided, twoVsTwo())

		res := castAll(t, h, []castVote{{"a1", "WIN"}})
		assert.Equal(t, gamedomain.VoteRecorded, (*res.Success).Kind)
		assert.Equal(t, 1, (*res.Success).Tally.Team1Wins)
		assert.Equal(t, gamedomain.StateUndecided, h.games.game(testRef).State)
	})

	t.Run("unanimous quorum decides before the last vote", func(t *testing.T) {
		h := newHarness(t)
		h.games.seed(testRef, gamedomain.StateUndecided, twoVsTwo())

		res := castAll(t, h, []castVote{{"a1", "win"}, {"a2", "win"}, {"b1", "lose"}})
		outcome := *res.Success
		assert.Equal(t, gamedomain.VoteResolvedWin, outcome.Kind)
		require.NotNil(t, outcome.WinningTeam)
		assert.Equal(t, gamedomain.Team1, *outcome.WinningTeam)
		assert.Len(t, outcome.Settlements, 4)

		game := h.games.game(testRef)
		assert.Equal(t, gamedomain.StateDecided, game.State)
		assert.Equal(t, voteComment, game.Comment)
		assert.Equal(t, "b1", game.Submitter)
		assert.Equal(t, 1050, h.ladder.Snapshot(testGuild, "a1").Points)

		late, err := h.svc.CastVote(ctx, testRef, "b2", "lose")
		requireRejection(t, late, err, gamedomain.ErrVoteState)
	})

	t.Run("split quorum locks the game for a moderator", func(t *testing.T) {
		h := newHarness(t)
		h.games.seed(testRef, gamedomain.StateUndecided, twoVsTwo())

		res := castAll(t, h, []castVote{{"a1", "win"}, {"b1", "win"}, {"a2", "draw"}})
		assert.Equal(t, gamedomain.VoteLockedForModerator, (*res.Success).Kind)

		game := h.games.game(testRef)
		assert.True(t, game.VoteComplete)
		assert.Equal(t, gamedomain.StateUndecided, game.State)
		assert.Equal(t, 1000, h.ladder.Snapshot(testGuild, "a1").Points)

		late, err := h.svc.CastVote(ctx, testRef, "b2", "win")
		requireRejection(t, late, err, gamedomain.ErrVoteLocked)

		// A moderator can still decide.
		decided, err := h.svc.SubmitOutcome(ctx, testRef, gamedomain.Team2, "", "mod-1")
		require.NoError(t, err)
		assert.True(t, decided.IsSuccess())
	})

	t.Run("unanimous draw", func(t *testing.T) {
		h := newHarness(t)
		h.games.seed(testRef, gamedomain.StateUndecided, twoVsTwo())

		res := castAll(t, h, []castVote{{"a1", "draw"}, {"b2", "draw"}, {"b1", "draw"}})
		assert.Equal(t, gamedomain.VoteResolvedDraw, (*res.Success).Kind)
		assert.Equal(t, gamedomain.StateDraw, h.games.game(testRef).State)
		for _, id := range []string{"a1", "a2", "b1", "b2"} {
			p := h.ladder.Snapshot(testGuild, id)
			assert.Equal(t, 1, p.Draws, id)
		}
		assert.Equal(t, 1000, h.ladder.Snapshot(testGuild, "a1").Points)
	})

	t.Run("unanimous cancel", func(t *testing.T) {
		h := newHarness(t)
		h.games.seed(testRef, gamedomain.StateUndecided, twoVsTwo())

		res := castAll(t, h, []castVote{{"a1", "cancel"}, {"a2", "cancel"}, {"b2", "cancel"}})
		assert.Equal(t, gamedomain.VoteResolvedCancel, (*res.Success).Kind)
		game := h.games.game(testRef)
		assert.Equal(t, gamedomain.StateCanceled, game.State)
		assert.Equal(t, "b2", game.Submitter)
	})

	rejections := []struct {
		name  string
		setup func(h *harness)
		voter string
		vote  string
		want  *gamedomain.RejectionError
	}{
		{name: "team number", voter: "a1", vote: "1", want: gamedomain.ErrNumericVote},
		{name: "unknown value", voter: "a1", vote: "maybe", want: gamedomain.ErrUnknownVote},
		{name: "not on roster", voter: "stranger", vote: "win", want: gamedomain.ErrNotOnRoster},
		{
			name:  "second vote",
			setup: func(h *harness) { _, _ = h.svc.CastVote(context.Background(), testRef, "a1", "win") },
			voter: "a1",
			vote:  "lose",
			want:  gamedomain.ErrAlreadyVoted,
		},
		{
			name:  "picking game",
			setup: func(h *harness) { h.games.games[testRef].State = gamedomain.StatePicking },
			voter: "a1",
			vote:  "win",
			want:  gamedomain.ErrVoteState,
		},
		{
			name:  "lobby gone",
			setup: func(h *harness) { delete(h.ladder.Lobbies, ladderdb.LobbyKey{Guild: testGuild, Lobby: testLobby}) },
			voter: "a1",
			vote:  "win",
			want:  gamedomain.ErrLobbyNotFound,
		},
	}
	for _, tt := range rejections {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.games.seed(testRef, gamedomain.StateUndecided, twoVsTwo())
			if tt.setup != nil {
				tt.setup(h)
			}
			before := len(h.games.votes[testRef])

			res, err := h.svc.CastVote(ctx, testRef, tt.voter, tt.vote)
			requireRejection(t, res, err, tt.want)
			assert.Len(t, h.games.votes[testRef], before)
		})
	}

	t.Run("game not found", func(t *testing.T) {
		h := newHarness(t)
		res, err := h.svc.CastVote(ctx, testRef, "a1", "win")
		requireRejection(t, res, err, gamedomain.ErrGameNotFound)
	})
}
