package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"mentora-backend/internal/middleware"
	"mentora-backend/internal/models"
	"mentora-backend/internal/session"
)

type SessionHandler struct {
	store *session.Store
	auth  *middleware.SessionAuth
}

func NewSessionHandler(store *session.Store, auth *middleware.SessionAuth) *SessionHandler {
	return &SessionHandler{store: store, auth: auth}
}

type sessionCreatedResponse struct {
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expires_at"`
	Session   models.SessionView `json:"session"`
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess := h.store.Create()

	token, expiresAt, err := h.auth.IssueToken(sess.ID)
	if err != nil {
		h.store.Delete(sess.ID)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to issue session token", r))
		return
	}

	writeJSON(w, http.StatusCreated, sessionCreatedResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Session:   sess.View(),
	})
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, err := loadSession(h.store, r)
	if err != nil {
		handleControllerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.View())
}

// Delete ends the session. Its histories and artifacts are discarded.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sess, err := loadSession(h.store, r)
	if err != nil {
		handleControllerError(w, r, err)
		return
	}
	sess.Reset()
	h.store.Delete(sess.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) SwitchFeature(w http.ResponseWriter, r *http.Request) {
	var req models.SwitchFeatureRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	f, err := models.ParseFeature(req.Feature)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", map[string]string{"feature": err.Error()}, r))
		return
	}

	sess, err := loadSession(h.store, r)
	if err != nil {
		handleControllerError(w, r, err)
		return
	}

	if _, err := sess.SwitchFeatureIdle(f); err != nil {
		handleControllerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.View())
}
