package handler

import (
	"encoding/json"
	"net/http"
	"net/mail"

	"github.com/calebmcg/deadeye/internal/api/request"
	"github.com/calebmcg/deadeye/internal/api/response"
	"github.com/calebmcg/deadeye/internal/services/auth"
)

// AuthHandler handles token endpoints
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Token handles POST /api/v1/auth/token
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req request.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if _, err := mail.ParseAddress(req.Email); err != nil {
		WriteError(w, NewInvalidRequestError("invalid email address"))
		return
	}

	token, _, err := h.authService.MintToken(r.Context(), req.Email)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TokenResponse{Token: token})
}
