package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mycelian/casefiles/internal/api/respond"
	"github.com/mycelian/casefiles/internal/api/validate"
	"github.com/mycelian/casefiles/internal/metrics"
	"github.com/mycelian/casefiles/internal/model"
	"github.com/mycelian/casefiles/internal/session"
)

type loginResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Login POST /api/session
func (h *handler) Login(w http.ResponseWriter, r *http.Request) {
	var req validate.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("bad_request").Inc()
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := validate.Login(req); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("bad_request").Inc()
		respond.WriteDomainError(w, err)
		return
	}

	token, user, err := h.sessions.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			metrics.LoginAttemptsTotal.WithLabelValues("invalid").Inc()
			h.log.Warn().Str("username", req.Username).Msg("Login rejected")
		}
		respond.WriteDomainError(w, err)
		return
	}
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	h.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("Session opened")
	respond.WriteJSON(w, http.StatusCreated, loginResponse{Token: token, User: user})
}

// CurrentSession GET /api/session
func (h *handler) CurrentSession(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFrom(r.Context())
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// Logout DELETE /api/session
func (h *handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout(tokenFrom(r.Context()))
	user, _ := UserFrom(r.Context())
	h.log.Info().Str("user_id", user.ID).Msg("Session closed")
	w.WriteHeader(http.StatusNoContent)
}
