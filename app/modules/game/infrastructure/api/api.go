// Package gameapi serves read-only game queries over HTTP.
package gameapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	gameservice "github.com/Black-And-White-Club/ladder-bot/app/modules/game/application"
	gamedomain "github.com/Black-And-White-Club/ladder-bot/app/modules/game/domain"
	"github.com/Black-And-White-Club/ladder-bot/pkg/attr"
	"github.com/Black-And-White-Club/ladder-bot/pkg/results"
	"github.com/go-chi/chi/v5"
)

// Handlers exposes game queries.
type Handlers struct {
	service gameservice.Service
	logger  *slog.Logger
}

// NewHandlers creates the query handlers.
func NewHandlers(service gameservice.Service, logger *slog.Logger) *Handlers {
	return &Handlers{service: service, logger: logger}
}

// Mount registers the game routes on r under /api/games.
func (h *Handlers) Mount(r chi.Router, limiter *ClientLimiter) {
	r.Route("/api/games", func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter.Middleware)
		}
		r.Get("/vote-types", h.HandleVoteTypes)
		r.Get("/{guildID}/{lobbyID}", h.HandleListGames)
		r.Get("/{guildID}/{lobbyID}/latest", h.HandleLatestGame)
		r.Get("/{guildID}/{lobbyID}/{gameID}", h.HandleGetGame)
	})
}

type errorBody struct {
	Kind   string `json:"kind"`
	Reason string `json:"reason"`
}

func (h *Handlers) HandleVoteTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]gamedomain.VoteValue{"vote_types": h.service.VoteTypes()})
}

func (h *Handlers) HandleListGames(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Kind: "invalid_argument", Reason: "limit must be a number"})
			return
		}
		limit = n
	}

	result, err := h.service.ListGames(r.Context(), chi.URLParam(r, "guildID"), chi.URLParam(r, "lobbyID"), limit)
	respond(h, w, r, result, err)
}

func (h *Handlers) HandleLatestGame(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.LatestGame(r.Context(), chi.URLParam(r, "guildID"), chi.URLParam(r, "lobbyID"))
	respond(h, w, r, result, err)
}

func (h *Handlers) HandleGetGame(w http.ResponseWriter, r *http.Request) {
	gameID, err := strconv.Atoi(chi.URLParam(r, "gameID"))
	if err != nil || gameID <= 0 {
		writeJSON(w, http.StatusBadRequest, errorBody{Kind: "invalid_argument", Reason: "game id must be a positive number"})
		return
	}
	ref := gamedomain.GameRef{
		GuildID: chi.URLParam(r, "guildID"),
		LobbyID: chi.URLParam(r, "lobbyID"),
		GameID:  gameID,
	}
	result, err := h.service.GetGame(r.Context(), ref)
	respond(h, w, r, result, err)
}

func respond[S any](h *Handlers, w http.ResponseWriter, r *http.Request, result results.OperationResult[S, error], err error) {
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Game query failed",
			attr.String("path", r.URL.Path),
			attr.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, errorBody{Kind: "internal", Reason: "internal error"})
		return
	}
	if result.IsFailure() {
		status, body := rejectionResponse(*result.Failure)
		writeJSON(w, status, body)
		return
	}
	if !result.IsSuccess() {
		writeJSON(w, http.StatusInternalServerError, errorBody{Kind: "internal", Reason: "empty result"})
		return
	}
	writeJSON(w, http.StatusOK, *result.Success)
}

func rejectionResponse(err error) (int, errorBody) {
	rej, ok := gamedomain.AsRejection(err)
	if !ok {
		return http.StatusInternalServerError, errorBody{Kind: "internal", Reason: err.Error()}
	}
	switch {
	case errors.Is(rej, gamedomain.ErrNotFound):
		return http.StatusNotFound, errorBody{Kind: "not_found", Reason: rej.Reason}
	case errors.Is(rej, gamedomain.ErrInvalidArgument):
		return http.StatusBadRequest, errorBody{Kind: "invalid_argument", Reason: rej.Reason}
	default:
		return http.StatusConflict, errorBody{Kind: "conflict", Reason: rej.Reason}
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
