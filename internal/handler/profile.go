package handler

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/profilehub/profilehub-go/internal/middleware"
	"github.com/profilehub/profilehub-go/internal/model"
	"github.com/profilehub/profilehub-go/internal/service"
)

// ProfileHandler handles the current user's profile.
type ProfileHandler struct {
	service *service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(svc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: svc}
}

// HandleGetMe handles GET /api/me requests.
func (h *ProfileHandler) HandleGetMe(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	user, err := h.service.GetCurrent(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, model.UserEnvelope{User: user})
}

// HandleUpdateMe handles PUT /api/me requests. Only fields whose value is a
// JSON string are applied; anything else is ignored.
func (h *ProfileHandler) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	var body json.RawMessage
	if !decodeBody(w, r, &body) {
		return
	}

	// An empty body is an empty update; anything else must be an object.
	var fields map[string]json.RawMessage
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
			writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
			return
		}
	}

	upd := model.ProfileUpdate{
		Name:   stringField(fields, "name"),
		Bio:    stringField(fields, "bio"),
		Avatar: stringField(fields, "avatar"),
	}

	user, err := h.service.UpdateCurrent(r.Context(), userID, upd)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, model.UserEnvelope{User: user})
}

// stringField returns the value of key when it holds a JSON string, else nil.
func stringField(fields map[string]json.RawMessage, key string) *string {
	raw := bytes.TrimSpace(fields[key])
	if len(raw) == 0 || raw[0] != '"' {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return &s
}
