package controllers

import (
	"context"
	"encoding/json"
	"strings"

	"mentora-backend/internal/models"
	"mentora-backend/internal/prompts"
	"mentora-backend/internal/session"
)

type TutorController struct {
	base
}

func NewTutorController(deps *Deps) *TutorController {
	return &TutorController{base{feature: models.FeatureTutor, deps: deps}}
}

func (c *TutorController) parse(payload json.RawMessage) (models.TutorRequest, error) {
	var req models.TutorRequest
	if err := decodePayload(payload, &req); err != nil {
		return req, err
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		return req, &InputError{Field: "message", Message: "message is required"}
	}
	return req, nil
}

func (c *TutorController) HandleSubmit(ctx context.Context, sess *session.Session, sub Submission) (*models.FeatureView, error) {
	req, err := c.parse(sub.Payload)
	if err != nil {
		return nil, err
	}

	if _, err := c.exchange(ctx, sess, triggerSubmit, req.Message, func(ctx context.Context) models.GenerationResult {
		prompt := prompts.Tutor(req, sess.History(c.feature))
		return c.generate(ctx, c.textRequest(prompt))
	}); err != nil {
		return nil, err
	}
	return c.Render(sess), nil
}

// HandleStream answers like HandleSubmit but forwards the reply in chunks
// as the model produces it.
func (c *TutorController) HandleStream(ctx context.Context, sess *session.Session, payload json.RawMessage, onChunk func(string) error) (*models.FeatureView, error) {
	req, err := c.parse(payload)
	if err != nil {
		return nil, err
	}

	if _, err := c.exchange(ctx, sess, triggerSubmit, req.Message, func(ctx context.Context) models.GenerationResult {
		prompt := prompts.Tutor(req, sess.History(c.feature))
		return c.deps.Generator.StreamText(ctx, prompt, c.deps.Temperature, onChunk)
	}); err != nil {
		return nil, err
	}
	return c.Render(sess), nil
}
