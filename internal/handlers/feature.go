package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"mentora-backend/internal/controllers"
	"mentora-backend/internal/models"
	"mentora-backend/internal/session"
	"mentora-backend/internal/uploads"
)

const (
	maxJSONBody       = 1 << 20
	multipartOverhead = 1 << 20
)

type FeatureHandler struct {
	store      *session.Store
	dispatcher *controllers.Dispatcher
	policy     *uploads.Policy
}

func NewFeatureHandler(store *session.Store, dispatcher *controllers.Dispatcher, policy *uploads.Policy) *FeatureHandler {
	return &FeatureHandler{store: store, dispatcher: dispatcher, policy: policy}
}

type featureSummary struct {
	Feature       models.Feature `json:"feature"`
	Title         string         `json:"title"`
	Customizable  bool           `json:"customizable"`
	Streamable    bool           `json:"streamable"`
	AcceptsUpload bool           `json:"accepts_upload"`
}

func (h *FeatureHandler) List(w http.ResponseWriter, r *http.Request) {
	out := make([]featureSummary, 0, len(models.AllFeatures))
	for _, f := range models.AllFeatures {
		c, err := h.dispatcher.Get(f)
		if err != nil {
			continue
		}
		_, customizable := c.(controllers.Customizer)
		_, streamable := c.(controllers.Streamer)
		out = append(out, featureSummary{
			Feature:       f,
			Title:         f.Title(),
			Customizable:  customizable,
			Streamable:    streamable,
			AcceptsUpload: acceptsUpload(f),
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"features": out})
}

func acceptsUpload(f models.Feature) bool {
	switch f {
	case models.FeatureDocument, models.FeatureImage, models.FeatureAudio, models.FeatureVideo:
		return true
	}
	return false
}

func (h *FeatureHandler) feature(w http.ResponseWriter, r *http.Request) (models.Feature, *session.Session, bool) {
	f, err := models.ParseFeature(chi.URLParam(r, "feature"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Feature not found", r))
		return "", nil, false
	}

	sess, err := loadSession(h.store, r)
	if err != nil {
		handleControllerError(w, r, err)
		return "", nil, false
	}
	return f, sess, true
}

func (h *FeatureHandler) Render(w http.ResponseWriter, r *http.Request) {
	f, sess, ok := h.feature(w, r)
	if !ok {
		return
	}

	view, err := h.dispatcher.Render(sess, f)
	if err != nil {
		handleControllerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Submit accepts either a JSON body or a multipart form with a "payload"
// JSON field and an optional "file".
func (h *FeatureHandler) Submit(w http.ResponseWriter, r *http.Request) {
	f, sess, ok := h.feature(w, r)
	if !ok {
		return
	}

	sub, err := h.readSubmission(w, r)
	if err != nil {
		handleControllerError(w, r, err)
		return
	}

	view, err := h.dispatcher.Submit(r.Context(), sess, f, sub)
	if err != nil {
		handleControllerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *FeatureHandler) Customize(w http.ResponseWriter, r *http.Request) {
	f, sess, ok := h.feature(w, r)
	if !ok {
		return
	}

	var req models.CustomizeRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	view, err := h.dispatcher.Customize(r.Context(), sess, f, req)
	if err != nil {
		handleControllerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *FeatureHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	f, sess, ok := h.feature(w, r)
	if !ok {
		return
	}

	sess.ClearHistory(f)
	view, err := h.dispatcher.Render(sess, f)
	if err != nil {
		handleControllerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *FeatureHandler) UploadPolicy(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"max_bytes":  h.policy.MaxBytes,
		"max_mb":     h.policy.MaxBytes / (1024 * 1024),
		"categories": h.policy.Allowed,
		"extensions": h.policy.AllExtensions(),
	})
}

func (h *FeatureHandler) readSubmission(w http.ResponseWriter, r *http.Request) (controllers.Submission, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxJSONBody))
		if err != nil {
			return controllers.Submission{}, &controllers.InputError{Field: "payload", Message: "could not read request body"}
		}
		return controllers.Submission{Payload: body}, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.policy.MaxBytes+multipartOverhead)
	if err := r.ParseMultipartForm(h.policy.MaxBytes + multipartOverhead); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return controllers.Submission{}, &uploads.ValidationError{Code: uploads.CodeFileTooLarge, Message: "Upload exceeds the size limit"}
		}
		return controllers.Submission{}, &controllers.InputError{Field: "form", Message: "invalid multipart form"}
	}
	defer r.MultipartForm.RemoveAll()

	sub := controllers.Submission{}
	if p := r.FormValue("payload"); p != "" {
		sub.Payload = json.RawMessage(p)
	}

	file, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return sub, nil
	}
	if err != nil {
		return sub, &controllers.InputError{Field: "file", Message: "could not read uploaded file"}
	}
	defer file.Close()

	if header.Size > h.policy.MaxBytes {
		if _, err := h.policy.Validate(header.Filename, header.Size, ""); err != nil {
			return sub, err
		}
	}

	data, err := io.ReadAll(io.LimitReader(file, h.policy.MaxBytes+1))
	if err != nil {
		return sub, &controllers.InputError{Field: "file", Message: "could not read uploaded file"}
	}
	sub.Upload = &models.UploadedMedia{Name: header.Filename, Data: data}
	return sub, nil
}
