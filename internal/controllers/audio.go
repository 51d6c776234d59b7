package controllers

import (
	"context"

	"mentora-backend/internal/models"
	"mentora-backend/internal/prompts"
	"mentora-backend/internal/session"
)

var defaultAudioAnalyses = []string{"Transcription", "Summary", "Key Points"}

type AudioController struct {
	base
}

func NewAudioController(deps *Deps) *AudioController {
	return &AudioController{base{feature: models.FeatureAudio, deps: deps}}
}

func (c *AudioController) HandleSubmit(ctx context.Context, sess *session.Session, sub Submission) (*models.FeatureView, error) {
	var req models.AudioRequest
	if err := decodePayload(sub.Payload, &req); err != nil {
		return nil, err
	}
	if err := c.checkUpload(sub.Upload, models.MediaAudio); err != nil {
		return nil, err
	}
	req.AnalysisTypes = withDefaults(req.AnalysisTypes, defaultAudioAnalyses...)

	upload := sub.Upload
	if _, err := c.exchange(ctx, sess, triggerSubmit, describeUpload("Analyze audio", upload, req.AnalysisTypes), func(ctx context.Context) models.GenerationResult {
		return c.withUpload(ctx, sess, upload, models.MediaAudio, func(string) models.GenerationResult {
			return c.generate(ctx, c.mediaRequest(prompts.Audio(req), upload.Data, upload.MIMEType))
		})
	}); err != nil {
		return nil, err
	}
	return c.Render(sess), nil
}
