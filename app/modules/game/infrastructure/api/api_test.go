package gameapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	gameservice "github.com/Black-And-White-Club/ladder-bot/app/modules/game/application"
	gamedomain "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain"
	"github.com/Black-And-White-Club/ladder-bot/pkg/results"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// queryService implements the read side of gameservice.Service. Other methods panic.
type queryService struct {
	gameservice.Service

	lastLimit int
	games     map[int]gamedomain.Game
	fail      error
}

func (s *queryService) GetGame(_ context.Context, ref gamedomain.GameRef) (gameservice.GameInfoResult, error) {
	if s.fail != nil {
		return gameservice.GameInfoResult{}, s.fail
	}
	g, ok := s.games[ref.GameID]
	if !ok {
		return results.FailureResult[*gameservice.GameInfo, error](gamedomain.ErrGameNotFound), nil
	}
	return results.SuccessResult[*gameservice.GameInfo, error](&gameservice.GameInfo{Game: g}), nil
}

func (s *queryService) LatestGame(_ context.Context, guildID, lobbyID string) (gameservice.GameInfoResult, error) {
	return results.FailureResult[*gameservice.GameInfo, error](gamedomain.ErrNoGames), nil
}

func (s *queryService) ListGames(_ context.Context, guildID, lobbyID string, limit int) (gameservice.GameListResult, error) {
	s.lastLimit = limit
	out := make([]gamedomain.Game, 0, len(s.games))
	for _, g := range s.games {
		out = append(out, g)
	}
	return results.SuccessResult[[]gamedomain.Game, error](out), nil
}

func (s *queryService) VoteTypes() []gamedomain.VoteValue {
	return gamedomain.VoteValues()
}

func newTestServer(svc *queryService, limiter *ClientLimiter) http.Handler {
	r := chi.NewRouter()
	NewHandlers(svc, slog.New(slog.NewTextHandler(io.Discard, nil))).Mount(r, limiter)
	return r
}

func TestHandlers(t *testing.T) {
	ref := gamedomain.GameRef{GuildID: "g1", LobbyID: "l1", GameID: 3}
	svc := &queryService{games: map[int]gamedomain.Game{3: {Ref: ref, State: gamedomain.StateDecided}}}
	srv := newTestServer(svc, nil)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		verify     func(t *testing.T, body []byte)
	}{
		{
			name:       "game info",
			path:       "/api/games/g1/l1/3",
			wantStatus: http.StatusOK,
			verify: func(t *testing.T, body []byte) {
				var info gameservice.GameInfo
				require.NoError(t, json.Unmarshal(body, &info))
				assert.Equal(t, ref, info.Game.Ref)
				assert.Equal(t, gamedomain.StateDecided, info.Game.State)
			},
		},
		{
			name:       "unknown game",
			path:       "/api/games/g1/l1/9",
			wantStatus: http.StatusNotFound,
			verify: func(t *testing.T, body []byte) {
				var e errorBody
				require.NoError(t, json.Unmarshal(body, &e))
				assert.Equal(t, "not_found", e.Kind)
				assert.Equal(t, gamedomain.ErrGameNotFound.Reason, e.Reason)
			},
		},
		{name: "bad game id", path: "/api/games/g1/l1/abc", wantStatus: http.StatusBadRequest},
		{name: "latest without games", path: "/api/games/g1/l1/latest", wantStatus: http.StatusNotFound},
		{name: "list", path: "/api/games/g1/l1?limit=5", wantStatus: http.StatusOK},
		{name: "bad limit", path: "/api/games/g1/l1?limit=x", wantStatus: http.StatusBadRequest},
		{
			name:       "vote types",
			path:       "/api/games/vote-types",
			wantStatus: http.StatusOK,
			verify: func(t *testing.T, body []byte) {
				assert.JSONEq(t, `{"vote_types":["win","lose","draw","cancel"]}`, string(body))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			srv.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.verify != nil {
				tt.verify(t, rr.Body.Bytes())
			}
		})
	}

	assert.Equal(t, 5, svc.lastLimit)
}

func TestHandlers_InfrastructureError(t *testing.T) {
	srv := newTestServer(&queryService{fail: errors.New("db down")}, nil)
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/games/g1/l1/1", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "db down")
}

func TestClientLimiter(t *testing.T) {
	srv := newTestServer(&queryService{}, NewClientLimiter(0.001, 2))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/games/vote-types", nil)
		req.RemoteAddr = "10.0.0.1:4000"
		rr := httptest.NewRecorder()
		srv.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	other := httptest.NewRequest(http.MethodGet, "/api/games/vote-types", nil)
	other.RemoteAddr = "10.0.0.2:4000"
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, other)
	assert.Equal(t, http.StatusOK, rr.Code)
}
