package controllers

import (
	"context"
	"fmt"
	"log"
	"strings"

	"mentora-backend/internal/models"
	"mentora-backend/internal/prompts"
	"mentora-backend/internal/services"
	"mentora-backend/internal/session"
)

var defaultVideoAnalyses = []string{"Summary", "Key Concepts", "Timeline"}

type VideoController struct {
	base
}

func NewVideoController(deps *Deps) *VideoController {
	return &VideoController{base{feature: models.FeatureVideo, deps: deps}}
}

// HandleSubmit analyzes an uploaded video file or, when no file is sent, a
// YouTube URL.
func (c *VideoController) HandleSubmit(ctx context.Context, sess *session.Session, sub Submission) (*models.FeatureView, error) {
	var req models.VideoRequest
	if err := decodePayload(sub.Payload, &req); err != nil {
		return nil, err
	}
	req.AnalysisTypes = withDefaults(req.AnalysisTypes, defaultVideoAnalyses...)
	req.YouTubeURL = strings.TrimSpace(req.YouTubeURL)

	if sub.Upload == nil && req.YouTubeURL != "" {
		return c.handleYouTube(ctx, sess, req)
	}
	if err := c.checkUpload(sub.Upload, models.MediaVideo); err != nil {
		return nil, err
	}

	upload := sub.Upload
	if _, err := c.exchange(ctx, sess, triggerSubmit, describeUpload("Analyze video", upload, req.AnalysisTypes), func(ctx context.Context) models.GenerationResult {
		return c.withUpload(ctx, sess, upload, models.MediaVideo, func(string) models.GenerationResult {
			return c.generate(ctx, c.mediaRequest(prompts.Video(req), upload.Data, upload.MIMEType))
		})
	}); err != nil {
		return nil, err
	}
	return c.Render(sess), nil
}

func (c *VideoController) handleYouTube(ctx context.Context, sess *session.Session, req models.VideoRequest) (*models.FeatureView, error) {
	if c.deps.Videos == nil {
		return nil, ErrUnsupported
	}
	videoID, err := services.ParseVideoID(req.YouTubeURL)
	if err != nil {
		return nil, &InputError{Field: "youtube_url", Message: err.Error()}
	}

	userText := fmt.Sprintf("Analyze YouTube video %s (%s)", req.YouTubeURL, strings.Join(req.AnalysisTypes, ", "))
	if _, err := c.exchange(ctx, sess, triggerSubmit, userText, func(ctx context.Context) models.GenerationResult {
		sess.SetInsights(c.feature, nil)
		return c.analyzeYouTube(ctx, req, videoID)
	}); err != nil {
		return nil, err
	}
	return c.Render(sess), nil
}

// analyzeYouTube prefers captions and falls back to sending the audio track.
func (c *VideoController) analyzeYouTube(ctx context.Context, req models.VideoRequest, videoID string) models.GenerationResult {
	transcript, err := c.deps.Videos.GetTranscript(ctx, videoID)
	if err == nil {
		title := c.deps.Videos.VideoTitle(ctx, videoID)
		return c.generate(ctx, c.textRequest(prompts.VideoTranscript(req, title, transcript)))
	}
	log.Printf("Transcript unavailable for %s, falling back to audio: %v", videoID, err)

	audio, mimeType, err := c.deps.Videos.DownloadAudio(ctx, videoID, c.deps.Policy.MaxBytes)
	if err != nil {
		return models.NewFailedResult(models.GenErrIO, "could not fetch the video: "+err.Error())
	}
	return c.generate(ctx, c.mediaRequest(prompts.Video(req), audio, mimeType))
}
