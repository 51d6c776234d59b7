package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"mentora-backend/internal/models"
)

const (
	topP                   = 0.95
	topK                   = 40
	textMaxOutputTokens    = 8192
	mediaMaxOutputTokens   = 4096
	inlineMediaLimit       = 18 * 1024 * 1024
	fileActivationAttempts = 20
)

// safetySettings blocks medium-and-above content in every harm category the
// API scores.
var safetySettings = []*genai.SafetySetting{
	{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockMediumAndAbove},
	{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockMediumAndAbove},
	{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockMediumAndAbove},
	{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockMediumAndAbove},
}

type responseIterator interface {
	Next() (*genai.GenerateContentResponse, error)
}

type GeminiService struct {
	client          *genai.Client
	textModel       string
	multimodalModel string
	temperature     float32
	rateChan        chan struct{} // Token bucket

	newModel func(name string) *genai.GenerativeModel
	generate func(ctx context.Context, m *genai.GenerativeModel, parts ...genai.Part) (*genai.GenerateContentResponse, error)
	stream   func(ctx context.Context, m *genai.GenerativeModel, parts ...genai.Part) responseIterator
}

func NewGeminiService(apiKey, textModel, multimodalModel string, temperature float32, concurrentReqs int) (*GeminiService, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	s := newGeminiService(textModel, multimodalModel, temperature, concurrentReqs)
	s.client = client
	s.newModel = client.GenerativeModel
	return s, nil
}

func newGeminiService(textModel, multimodalModel string, temperature float32, concurrentReqs int) *GeminiService {
	if concurrentReqs < 1 {
		concurrentReqs = 1
	}

	// Token bucket for rate limiting
	rateChan := make(chan struct{}, concurrentReqs)
	for i := 0; i < concurrentReqs; i++ {
		rateChan <- struct{}{}
	}

	return &GeminiService{
		textModel:       textModel,
		multimodalModel: multimodalModel,
		temperature:     temperature,
		rateChan:        rateChan,
		generate: func(ctx context.Context, m *genai.GenerativeModel, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
			return m.GenerateContent(ctx, parts...)
		},
		stream: func(ctx context.Context, m *genai.GenerativeModel, parts ...genai.Part) responseIterator {
			return m.GenerateContentStream(ctx, parts...)
		},
	}
}

func (s *GeminiService) Close() {
	if s.client != nil {
		s.client.Close()
	}
}

// DefaultTemperature is the sampling temperature used when a caller passes a
// negative value.
func (s *GeminiService) DefaultTemperature() float32 {
	return s.temperature
}

// acquireRate blocks until a rate slot is available
func (s *GeminiService) acquireRate(ctx context.Context) error {
	select {
	case <-s.rateChan:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(5 * time.Minute):
		return fmt.Errorf("timeout waiting for Gemini rate slot")
	}
}

func (s *GeminiService) releaseRate() {
	s.rateChan <- struct{}{}
}

func (s *GeminiService) model(name string, temperature float32, maxTokens int32) *genai.GenerativeModel {
	if temperature < 0 {
		temperature = s.temperature
	}
	m := s.newModel(name)
	configureModel(m, temperature, maxTokens)
	return m
}

func configureModel(m *genai.GenerativeModel, temperature float32, maxTokens int32) {
	m.SetTemperature(temperature)
	m.SetTopP(topP)
	m.SetTopK(topK)
	m.SetMaxOutputTokens(maxTokens)
	m.SafetySettings = safetySettings
}

// GenerateText sends a text-only prompt. An empty model selects the default
// text model. Failures come back as an apologetic result, never as a panic or
// error return.
func (s *GeminiService) GenerateText(ctx context.Context, prompt string, temperature float32, model string) models.GenerationResult {
	if model == "" {
		model = s.textModel
	}
	return s.run(ctx, model, temperature, textMaxOutputTokens, genai.Text(prompt))
}

// GenerateMultimodal sends the prompt with one binary attachment to the
// multimodal model.
func (s *GeminiService) GenerateMultimodal(ctx context.Context, prompt string, media []byte, mimeType string, temperature float32) models.GenerationResult {
	if len(media) == 0 {
		return failure(models.GenErrValidation, "media payload is empty")
	}

	part, cleanup, err := s.mediaPart(ctx, media, mimeType)
	if err != nil {
		return failure(models.GenErrIO, err.Error())
	}
	defer cleanup()

	return s.run(ctx, s.multimodalModel, temperature, mediaMaxOutputTokens, genai.Text(prompt), part)
}

// StreamText streams a text-only response, handing each chunk to onChunk as
// it arrives. The returned result carries the full text.
func (s *GeminiService) StreamText(ctx context.Context, prompt string, temperature float32, onChunk func(string) error) models.GenerationResult {
	if err := s.acquireRate(ctx); err != nil {
		return failure(models.GenErrService, err.Error())
	}
	defer s.releaseRate()

	m := s.model(s.textModel, temperature, textMaxOutputTokens)
	iter := s.stream(ctx, m, genai.Text(prompt))

	var full strings.Builder
	for {
		resp, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			log.Printf("Gemini stream error: %v", err)
			return failureFromError(err)
		}

		chunk := extractText(resp)
		if chunk == "" {
			continue
		}
		full.WriteString(chunk)
		if onChunk != nil {
			if err := onChunk(chunk); err != nil {
				return failure(models.GenErrIO, fmt.Sprintf("stream delivery failed: %v", err))
			}
		}
	}

	text := strings.TrimSpace(full.String())
	if text == "" {
		return failure(models.GenErrEmpty, "the model returned an empty response")
	}
	return models.GenerationResult{Text: text}
}

func (s *GeminiService) run(ctx context.Context, model string, temperature float32, maxTokens int32, parts ...genai.Part) models.GenerationResult {
	if err := s.acquireRate(ctx); err != nil {
		return failure(models.GenErrService, err.Error())
	}
	defer s.releaseRate()

	m := s.model(model, temperature, maxTokens)
	resp, err := s.generate(ctx, m, parts...)
	if err != nil {
		log.Printf("Gemini API error (%s): %v", model, err)
		return failureFromError(err)
	}

	for i, cand := range resp.Candidates {
		if cand.FinishReason != genai.FinishReasonStop {
			log.Printf("WARNING: Gemini candidate %d stopped due to %s", i, cand.FinishReason)
		}
	}

	text := strings.TrimSpace(extractText(resp))
	if text == "" {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
			return failure(models.GenErrBlocked, fmt.Sprintf("the request was blocked (%s)", resp.PromptFeedback.BlockReason))
		}
		return failure(models.GenErrEmpty, "the model returned an empty response")
	}
	return models.GenerationResult{Text: text}
}

// mediaPart inlines small payloads and routes larger ones through the File
// API. cleanup deletes any uploaded remote file.
func (s *GeminiService) mediaPart(ctx context.Context, media []byte, mimeType string) (genai.Part, func(), error) {
	noop := func() {}
	if len(media) <= inlineMediaLimit || s.client == nil {
		return genai.Blob{MIMEType: mimeType, Data: media}, noop, nil
	}

	file, err := s.client.UploadFile(ctx, "", bytes.NewReader(media), &genai.UploadFileOptions{
		DisplayName: "mentora-upload",
		MIMEType:    mimeType,
	})
	if err != nil {
		return nil, noop, fmt.Errorf("failed to upload media to Gemini: %w", err)
	}
	cleanup := func() { s.client.DeleteFile(context.Background(), file.Name) }

	// Wait until file is active
	for i := 0; i < fileActivationAttempts && file.State != genai.FileStateActive; i++ {
		current, getErr := s.client.GetFile(ctx, file.Name)
		if getErr != nil {
			cleanup()
			return nil, noop, fmt.Errorf("failed to get uploaded file status: %w", getErr)
		}
		file = current
		if file.State == genai.FileStateFailed {
			cleanup()
			return nil, noop, fmt.Errorf("Gemini failed to process uploaded media")
		}
		if file.State == genai.FileStateActive {
			break
		}

		select {
		case <-ctx.Done():
			cleanup()
			return nil, noop, ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}

	if file.State != genai.FileStateActive {
		cleanup()
		return nil, noop, fmt.Errorf("uploaded media did not become active in time")
	}

	return genai.FileData{MIMEType: mimeType, URI: file.URI}, cleanup, nil
}

// Helper functions

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}

func failure(kind models.GenerationErrorKind, message string) models.GenerationResult {
	return models.NewFailedResult(kind, message)
}

func failureFromError(err error) models.GenerationResult {
	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return failure(models.GenErrBlocked, blocked.Error())
	}
	return failure(models.GenErrService, err.Error())
}
