package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"mentora-backend/internal/models"
	"mentora-backend/internal/session"
	"mentora-backend/internal/uploads"
)

// checkUpload validates an upload before any state changes or temp files.
func (b *base) checkUpload(m *models.UploadedMedia, want models.MediaCategory) error {
	if m == nil {
		return &InputError{Field: "file", Message: fmt.Sprintf("a %s file is required", want)}
	}
	_, err := b.deps.Policy.Validate(m.Name, m.Size(), want)
	return err
}

// withUpload persists m inside a temp-file scope, records analyzer insights,
// and hands the saved path to fn. Every temp file is gone when it returns.
func (b *base) withUpload(ctx context.Context, sess *session.Session, m *models.UploadedMedia, want models.MediaCategory, fn func(path string) models.GenerationResult) models.GenerationResult {
	var result models.GenerationResult
	err := uploads.WithScope(b.deps.TempDir, b.deps.Policy.MaxBytes, func(s *uploads.Scope) error {
		path, err := b.deps.Policy.Accept(s, m, want)
		if err != nil {
			return err
		}

		b.analyze(ctx, sess, want, path)
		result = fn(path)
		return nil
	})
	if err != nil {
		var verr *uploads.ValidationError
		if errors.As(err, &verr) {
			return models.NewFailedResult(models.GenErrValidation, verr.Message)
		}
		if result.Text != "" {
			// The reply is already in hand; only cleanup failed.
			log.Printf("⚠ Temp file cleanup failed: %v", err)
			return result
		}
		return models.NewFailedResult(models.GenErrIO, err.Error())
	}
	return result
}

func (b *base) analyze(ctx context.Context, sess *session.Session, category models.MediaCategory, path string) {
	a, ok := b.deps.Analyzers[category]
	if !ok {
		sess.SetInsights(b.feature, nil)
		return
	}
	insights, err := a.Analyze(ctx, path)
	if err != nil {
		log.Printf("⚠ %s analyzer failed: %v", category, err)
	}
	sess.SetInsights(b.feature, insights)
}

func withDefaults(types []string, defaults ...string) []string {
	var out []string
	for _, t := range types {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return defaults
	}
	return out
}

func describeUpload(verb string, m *models.UploadedMedia, analyses []string) string {
	return fmt.Sprintf("%s %s (%s)", verb, m.Name, strings.Join(analyses, ", "))
}
