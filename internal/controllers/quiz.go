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
	defaultQuestionCount = 5
	maxQuestionCount     = 50
)

type QuizController struct {
	base
}

func NewQuizController(deps *Deps) *QuizController {
	return &QuizController{base{feature: models.FeatureQuiz, deps: deps}}
}

func (c *QuizController) Render(sess *session.Session) *models.FeatureView {
	v := c.base.Render(sess)
	v.Quiz = sess.Quiz()
	return v
}

func normalizeQuizRequest(req *models.QuizRequest) error {
	req.Topic = strings.TrimSpace(req.Topic)
	if req.Topic == "" {
		return &InputError{Field: "topic", Message: "topic is required"}
	}
	if req.QuestionCount == 0 {
		req.QuestionCount = defaultQuestionCount
	}
	if req.QuestionCount < 1 || req.QuestionCount > maxQuestionCount {
		return &InputError{Field: "question_count", Message: fmt.Sprintf("question_count must be between 1 and %d", maxQuestionCount)}
	}
	if req.Difficulty == "" {
		req.Difficulty = "Intermediate"
	}
	if req.Format == "" {
		req.Format = "Multiple Choice"
	}
	return nil
}

// HandleSubmit generates a quiz and stores it with its parameters. A failed
// generation leaves any previous quiz in place.
func (c *QuizController) HandleSubmit(ctx context.Context, sess *session.Session, sub Submission) (*models.FeatureView, error) {
	var req models.QuizRequest
	if err := decodePayload(sub.Payload, &req); err != nil {
		return nil, err
	}
	if err := normalizeQuizRequest(&req); err != nil {
		return nil, err
	}

	userText := fmt.Sprintf("Generate a %d-question %s quiz on %s (%s)", req.QuestionCount, req.Format, req.Topic, req.Difficulty)
	if _, err := c.exchange(ctx, sess, triggerSubmit, userText, func(ctx context.Context) models.GenerationResult {
		result := c.generate(ctx, c.textRequest(prompts.Quiz(req)))
		if !result.Failed() {
			sess.SetQuiz(&models.QuizArtifact{
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

// HandleCustomize revises the stored quiz and replaces it in place.
func (c *QuizController) HandleCustomize(ctx context.Context, sess *session.Session, req models.CustomizeRequest) (*models.FeatureView, error) {
	instruction := strings.TrimSpace(req.Instruction)
	if instruction == "" {
		return nil, &InputError{Field: "instruction", Message: "instruction is required"}
	}
	if sess.Quiz() == nil {
		return nil, ErrNoArtifact
	}

	if _, err := c.exchange(ctx, sess, triggerCustomize, "Customize quiz: "+instruction, func(ctx context.Context) models.GenerationResult {
		previous := sess.Quiz()
		result := c.generate(ctx, c.textRequest(prompts.QuizCustomize(previous.Content, previous.Metadata, instruction)))
		if !result.Failed() {
			sess.SetQuiz(&models.QuizArtifact{
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
