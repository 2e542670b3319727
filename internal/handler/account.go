package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/profilehub/profilehub-go/internal/model"
	"github.com/profilehub/profilehub-go/internal/service"
	"github.com/profilehub/profilehub-go/internal/session"
)

// AccountHandler handles signup, login and logout.
type AccountHandler struct {
	service  *service.AccountService
	sessions *session.Manager
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(svc *service.AccountService, sessions *session.Manager) *AccountHandler {
	return &AccountHandler{service: svc, sessions: sessions}
}

// HandleSignup handles POST /api/signup requests.
func (h *AccountHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req model.SignupRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := h.service.Signup(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.sessions.SetCookie(w, res.Ticket)
	writeJSON(w, http.StatusOK, model.UserEnvelope{User: res.User})
}

// HandleLogin handles POST /api/login requests.
func (h *AccountHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := h.service.Login(r.Context(), req, h.sessions.TokenFromRequest(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.sessions.SetCookie(w, res.Ticket)
	writeJSON(w, http.StatusOK, model.UserEnvelope{User: res.User})
}

// HandleLogout handles POST /api/logout requests. It always succeeds for the client.
func (h *AccountHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context(), h.sessions.TokenFromRequest(r)); err != nil {
		slog.ErrorContext(r.Context(), "logout failed", "error", err)
	}

	h.sessions.ClearCookie(w)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// writeServiceError maps service sentinel errors to HTTP statuses.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrSignupFieldsRequired),
		errors.Is(err, service.ErrLoginFieldsRequired),
		errors.Is(err, service.ErrPasswordTooLong):
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrEmailTaken):
		writeJSON(w, http.StatusConflict, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrNotLoggedIn),
		errors.Is(err, service.ErrSessionInvalid):
		writeJSON(w, http.StatusUnauthorized, errorResponse(err.Error()))
	default:
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
	}
}
