package controllers

import (
	"context"

	"mentora-backend/internal/models"
	"mentora-backend/internal/prompts"
	"mentora-backend/internal/session"
)

var defaultImageAnalyses = []string{"Description", "Educational Concepts", "Study Notes"}

type ImageController struct {
	base
}

func NewImageController(deps *Deps) *ImageController {
	return &ImageController{base{feature: models.FeatureImage, deps: deps}}
}

func (c *ImageController) HandleSubmit(ctx context.Context, sess *session.Session, sub Submission) (*models.FeatureView, error) {
	var req models.ImageRequest
	if err := decodePayload(sub.Payload, &req); err != nil {
		return nil, err
	}
	if err := c.checkUpload(sub.Upload, models.MediaImage); err != nil {
		return nil, err
	}
	req.AnalysisTypes = withDefaults(req.AnalysisTypes, defaultImageAnalyses...)

	upload := sub.Upload
	if _, err := c.exchange(ctx, sess, triggerSubmit, describeUpload("Analyze image", upload, req.AnalysisTypes), func(ctx context.Context) models.GenerationResult {
		return c.withUpload(ctx, sess, upload, models.MediaImage, func(string) models.GenerationResult {
			return c.generate(ctx, c.mediaRequest(prompts.Image(req), upload.Data, upload.MIMEType))
		})
	}); err != nil {
		return nil, err
	}
	return c.Render(sess), nil
}
