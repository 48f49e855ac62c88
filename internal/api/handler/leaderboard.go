package handler

import (
	"net/http"
	"strconv"

	"github.com/calebmcg/deadeye/internal/api/response"
	"github.com/calebmcg/deadeye/internal/model"
	"github.com/calebmcg/deadeye/internal/services/leaderboard"
)

const defaultLeaderboardLimit = 10

// LeaderboardHandler handles leaderboard endpoints
type LeaderboardHandler struct {
	leaderboardService *leaderboard.Service
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(leaderboardService *leaderboard.Service) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

// Get handles GET /api/v1/leaderboard?mode=&limit=
func (h *LeaderboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	modeParam := r.URL.Query().Get("mode")
	if modeParam == "" {
		modeParam = string(model.ModeArcade)
	}
	mode, err := model.ParseMode(modeParam)
	if err != nil {
		WriteError(w, err)
		return
	}

	limit := defaultLeaderboardLimit
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		limit, err = strconv.Atoi(limitParam)
		if err != nil || limit <= 0 {
			WriteError(w, NewInvalidRequestError("limit must be a positive integer"))
			return
		}
	}

	entries, err := h.leaderboardService.Query(r.Context(), mode, limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.Leaderboard{
		Mode:    string(mode),
		Entries: make([]response.LeaderboardEntry, len(entries)),
	}
	for i, entry := range entries {
		resp.Entries[i] = response.LeaderboardEntryFromModel(entry)
	}

	response.JSON(w, http.StatusOK, resp)
}
