package controllers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mentora-backend/internal/models"
	"mentora-backend/internal/prompts"
	"mentora-backend/internal/session"
)

const (
	defaultMapDepth = 3
	maxMapDepth     = 5
)

type ConceptMapController struct {
	base
}

func NewConceptMapController(deps *Deps) *ConceptMapController {
	return &ConceptMapController{base{feature: models.FeatureConceptMap, deps: deps}}
}

func (c *ConceptMapController) Render(sess *session.Session) *models.FeatureView {
	v := c.base.Render(sess)
	v.ConceptMap = sess.ConceptMap()
	return v
}

func normalizeConceptMapRequest(req *models.ConceptMapRequest) error {
	req.Topic = strings.TrimSpace(req.Topic)
	if req.Topic == "" {
		return &InputError{Field: "topic", Message: "topic is required"}
	}
	if req.Depth == 0 {
		req.Depth = defaultMapDepth
	}
	if req.Depth < 1 || req.Depth > maxMapDepth {
		return &InputError{Field: "depth", Message: fmt.Sprintf("depth must be between 1 and %d", maxMapDepth)}
	}
	if req.Style == "" {
		req.Style = "Hierarchical"
	}
	if req.DetailLevel == "" {
		req.DetailLevel = "Moderate"
	}
	return nil
}

func (c *ConceptMapController) HandleSubmit(ctx context.Context, sess *session.Session, sub Submission) (*models.FeatureView, error) {
	var req models.ConceptMapRequest
	if err := decodePayload(sub.Payload, &req); err != nil {
		return nil, err
	}
	if err := normalizeConceptMapRequest(&req); err != nil {
		return nil, err
	}

	userText := fmt.Sprintf("Create a %s concept map for %s (depth %d)", strings.ToLower(req.Style), req.Topic, req.Depth)
	if _, err := c.exchange(ctx, sess, triggerSubmit, userText, func(ctx context.Context) models.GenerationResult {
		result := c.generate(ctx, c.textRequest(prompts.ConceptMap(req)))
		if !result.Failed() {
			sess.SetConceptMap(&models.ConceptMapArtifact{
				Content:     result.Text,
				Metadata:    req.Metadata(),
				GeneratedAt: time.Now().UTC(),
			})
		}
		return result
	}); err != nil {
		return nil, err
	}
	return c.Render(sess), nil
}

func (c *ConceptMapController) HandleCustomize(ctx context.Context, sess *session.Session, req models.CustomizeRequest) (*models.FeatureView, error) {
	instruction := strings.TrimSpace(req.Instruction)
	if instruction == "" {
		return nil, &InputError{Field: "instruction", Message: "instruction is required"}
	}
	if sess.ConceptMap() == nil {
		return nil, ErrNoArtifact
	}

	if _, err := c.exchange(ctx, sess, triggerCustomize, "Customize concept map: "+instruction, func(ctx context.Context) models.GenerationResult {
		previous := sess.ConceptMap()
		result := c.generate(ctx, c.textRequest(prompts.ConceptMapCustomize(previous.Content, previous.Metadata, instruction)))
		if !result.Failed() {
			sess.SetConceptMap(&models.ConceptMapArtifact{
				Content:     result.Text,
				Metadata:    previous.Metadata,
				Revisions:   previous.Revisions + 1,
				GeneratedAt: time.Now().UTC(),
			})
		}
		return result
	}); err != nil {
		return nil, err
	}
	return c.Render(sess), nil
}
