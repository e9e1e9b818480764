// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/podium/internal/domain/record"
)

// genericServerError keeps 500 bodies free of internal detail.
const genericServerError = "internal server error"

// LeaderboardHandler handles leaderboard requests.
type LeaderboardHandler struct {
	deps Dependencies
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(deps Dependencies) *LeaderboardHandler {
	return &LeaderboardHandler{deps: deps}
}

// HandleLeaderboard dispatches GET and POST /api/leaderboard. OPTIONS is
// answered by the CORS middleware before reaching this handler.
func (h *LeaderboardHandler) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r)
	case http.MethodPost:
		h.handlePost(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *LeaderboardHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	records, err := h.deps.Leaderboard(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, genericServerError)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// submitRequest mirrors the POST /api/leaderboard body. Pointer fields
// distinguish absent keys from zero values.
type submitRequest struct {
	Name  *string  `json:"name"`
	Score *float64 `json:"score"`
}

func (req submitRequest) validate() error {
	switch {
	case req.Name == nil:
		return errors.New("name must be a string")
	case req.Score == nil:
		return errors.New("score must be a number")
	}
	return nil
}

func (h *LeaderboardHandler) handlePost(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	records, err := h.deps.Submit(r.Context(), *req.Name, *req.Score)
	if err != nil {
		if errors.Is(err, record.ErrValidation) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, genericServerError)
		return
	}
	writeJSON(w, http.StatusOK, records)
}
