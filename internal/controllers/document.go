package controllers

import (
	"context"
	"errors"
	"log"
	"path/filepath"
	"strings"

	"mentora-backend/internal/models"
	"mentora-backend/internal/prompts"
	"mentora-backend/internal/services"
	"mentora-backend/internal/session"
)

var defaultDocumentAnalyses = []string{"Summary", "Key Concepts", "Study Questions"}

type DocumentController struct {
	base
}

func NewDocumentController(deps *Deps) *DocumentController {
	return &DocumentController{base{feature: models.FeatureDocument, deps: deps}}
}

func (c *DocumentController) HandleSubmit(ctx context.Context, sess *session.Session, sub Submission) (*models.FeatureView, error) {
	var req models.DocumentRequest
	if err := decodePayload(sub.Payload, &req); err != nil {
		return nil, err
	}
	if err := c.checkUpload(sub.Upload, models.MediaDocument); err != nil {
		return nil, err
	}
	req.AnalysisTypes = withDefaults(req.AnalysisTypes, defaultDocumentAnalyses...)

	upload := sub.Upload
	if _, err := c.exchange(ctx, sess, triggerSubmit, describeUpload("Analyze document", upload, req.AnalysisTypes), func(ctx context.Context) models.GenerationResult {
		return c.withUpload(ctx, sess, upload, models.MediaDocument, func(path string) models.GenerationResult {
			return c.analyzeDocument(ctx, req, upload, path)
		})
	}); err != nil {
		return nil, err
	}
	return c.Render(sess), nil
}

// analyzeDocument inlines the extracted text. A PDF without a text layer is
// attached as-is for the multimodal model to read.
func (c *DocumentController) analyzeDocument(ctx context.Context, req models.DocumentRequest, upload *models.UploadedMedia, path string) models.GenerationResult {
	text, truncated, err := c.deps.Extractor.ExtractTextFromPath(path)
	switch {
	case err == nil:
		if truncated {
			log.Printf("Document %s truncated for prompt", upload.Name)
		}
		return c.generate(ctx, c.textRequest(prompts.Document(req, upload.Name, text)))

	case errors.Is(err, services.ErrNoText) && strings.EqualFold(filepath.Ext(upload.Name), ".pdf"):
		return c.generate(ctx, c.mediaRequest(prompts.Document(req, upload.Name, ""), upload.Data, "application/pdf"))

	case errors.Is(err, services.ErrNoText):
		return models.NewFailedResult(models.GenErrValidation, "the document contains no readable text")

	default:
		return models.NewFailedResult(models.GenErrIO, "could not read the document: "+err.Error())
	}
}
