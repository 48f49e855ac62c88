package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/calebmcg/deadeye/internal/api/middleware"
	"github.com/calebmcg/deadeye/internal/api/request"
	"github.com/calebmcg/deadeye/internal/api/response"
	"github.com/calebmcg/deadeye/internal/model"
	"github.com/calebmcg/deadeye/internal/services/session"
)

// SessionHandler handles session lifecycle endpoints
type SessionHandler struct {
	sessionService *session.Service
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService *session.Service) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// Start handles POST /api/v1/sessions
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	caller := middleware.MustGetCaller(r.Context())

	var req request.StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	mode, err := model.ParseMode(req.Mode)
	if err != nil {
		WriteError(w, err)
		return
	}

	created, err := h.sessionService.Start(r.Context(), caller.UserID, mode)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.SessionFromModel(created))
}

// AddEvent handles POST /api/v1/sessions/{id}/events
func (h *SessionHandler) AddEvent(w http.ResponseWriter, r *http.Request) {
	caller := middleware.MustGetCaller(r.Context())
	sessionID := model.SessionID(mux.Vars(r)["id"])

	var req request.AddEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	ts, err := time.Parse(time.RFC3339Nano, req.TS)
	if err != nil {
		WriteError(w, NewInvalidRequestError("ts must be a valid RFC 3339 timestamp"))
		return
	}
	if req.Payload.Hit == nil {
		WriteError(w, NewInvalidRequestError("payload.hit is required"))
		return
	}
	if req.Payload.Distance == nil {
		WriteError(w, NewInvalidRequestError("payload.distance is required"))
		return
	}

	event := model.ShotEvent{
		Kind:     model.EventKind(req.Type),
		TS:       ts,
		Hit:      *req.Payload.Hit,
		Distance: *req.Payload.Distance,
	}

	if err := h.sessionService.RecordEvent(r.Context(), sessionID, caller.UserID, event); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.EventAck{Accepted: true})
}

// Finish handles POST /api/v1/sessions/{id}/finish
func (h *SessionHandler) Finish(w http.ResponseWriter, r *http.Request) {
	caller := middleware.MustGetCaller(r.Context())
	sessionID := model.SessionID(mux.Vars(r)["id"])

	finished, err := h.sessionService.Finish(r.Context(), sessionID, caller.UserID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(finished))
}

// Get handles GET /api/v1/sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID := model.SessionID(mux.Vars(r)["id"])

	detail, err := h.sessionService.Get(r.Context(), sessionID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionDetailFromModel(detail))
}
