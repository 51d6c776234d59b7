// Package controllers holds one page controller per feature and the
// dispatcher that routes requests to them.
package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"mentora-backend/internal/models"
	"mentora-backend/internal/services"
	"mentora-backend/internal/session"
	"mentora-backend/internal/uploads"
)

var (
	ErrBusy           = session.ErrBusy
	ErrUnsupported    = errors.New("operation not supported by this feature")
	ErrUnknownFeature = errors.New("unknown feature")
	ErrNoArtifact     = errors.New("nothing has been generated yet")
)

// InputError reports a missing or malformed form field. The action is
// aborted before any state changes.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Generator is the slice of the generation client controllers depend on.
type Generator interface {
	GenerateText(ctx context.Context, prompt string, temperature float32, model string) models.GenerationResult
	GenerateMultimodal(ctx context.Context, prompt string, media []byte, mimeType string, temperature float32) models.GenerationResult
	StreamText(ctx context.Context, prompt string, temperature float32, onChunk func(string) error) models.GenerationResult
}

type TextExtractor interface {
	ExtractTextFromPath(path string) (string, bool, error)
}

type VideoFetcher interface {
	GetTranscript(ctx context.Context, videoID string) (string, error)
	VideoTitle(ctx context.Context, videoID string) string
	DownloadAudio(ctx context.Context, videoID string, maxBytes int64) ([]byte, string, error)
}

// Submission is one form post: a JSON payload and an optional file.
type Submission struct {
	Payload json.RawMessage
	Upload  *models.UploadedMedia
}

type Controller interface {
	Feature() models.Feature
	Render(sess *session.Session) *models.FeatureView
	HandleSubmit(ctx context.Context, sess *session.Session, sub Submission) (*models.FeatureView, error)
}

// Customizer is implemented by controllers whose stored artifact can be
// revised with a natural-language instruction.
type Customizer interface {
	HandleCustomize(ctx context.Context, sess *session.Session, req models.CustomizeRequest) (*models.FeatureView, error)
}

// Streamer is implemented by controllers that can stream their reply.
type Streamer interface {
	HandleStream(ctx context.Context, sess *session.Session, payload json.RawMessage, onChunk func(string) error) (*models.FeatureView, error)
}

type Deps struct {
	Generator   Generator
	Policy      *uploads.Policy
	TempDir     string
	Extractor   TextExtractor
	Videos      VideoFetcher
	Analyzers   map[models.MediaCategory]services.ContentAnalyzer
	Temperature float32
}

// base carries what every controller shares: its feature, dependencies,
// and the idle/processing cycle.
type base struct {
	feature models.Feature
	deps    *Deps
}

func (b *base) Feature() models.Feature {
	return b.feature
}

func (b *base) Render(sess *session.Session) *models.FeatureView {
	f := b.feature
	return &models.FeatureView{
		Feature:   f,
		Title:     f.Title(),
		State:     sess.State(f),
		History:   sess.History(f),
		Insights:  sess.Insights(f),
		LastError: sess.LastError(f),
	}
}

// exchange moves the feature to processing, runs fn, records one
// user/assistant message pair with the outcome, and returns to idle. A failed
// generation is recorded like any other reply.
func (b *base) exchange(ctx context.Context, sess *session.Session, t trigger, userText string, fn func(ctx context.Context) models.GenerationResult) (models.GenerationResult, error) {
	m := newMachine(sess, b.feature)
	if err := begin(ctx, sess, m, b.feature, t); err != nil {
		return models.GenerationResult{}, err
	}
	defer finish(ctx, sess, m, b.feature)

	result := fn(ctx)
	sess.AppendExchange(b.feature, userText, result.Text)
	sess.SetLastError(b.feature, result.Err)
	return result, nil
}

// generate sends req to the text or multimodal model depending on whether
// it carries media.
func (b *base) generate(ctx context.Context, req models.GenerationRequest) models.GenerationResult {
	if req.HasMedia() {
		return b.deps.Generator.GenerateMultimodal(ctx, req.Prompt, req.Media, req.MIMEType, req.Temperature)
	}
	return b.deps.Generator.GenerateText(ctx, req.Prompt, req.Temperature, req.Model)
}

func (b *base) textRequest(prompt string) models.GenerationRequest {
	return models.GenerationRequest{Prompt: prompt, Temperature: b.deps.Temperature}
}

func (b *base) mediaRequest(prompt string, media []byte, mimeType string) models.GenerationRequest {
	return models.GenerationRequest{Prompt: prompt, Media: media, MIMEType: mimeType, Temperature: b.deps.Temperature}
}

func decodePayload(payload json.RawMessage, v any) error {
	if len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return &InputError{Field: "payload", Message: "invalid JSON payload"}
	}
	return nil
}
