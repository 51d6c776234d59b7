package prompts

import (
	"fmt"
	"strings"

	"mentora-backend/internal/models"
)

const quizPreamble = `You are an expert educational assessor who writes clear, fair quiz questions that test understanding rather than trivia.

`

func Quiz(req models.QuizRequest) string {
	var b strings.Builder

	b.WriteString(quizPreamble)

	b.WriteString(fmt.Sprintf("Create a quiz about: %s\n", strings.TrimSpace(req.Topic)))
	b.WriteString(fmt.Sprintf("Difficulty level: %s\n", strings.TrimSpace(req.Difficulty)))
	b.WriteString(fmt.Sprintf("Number of questions: %d\n", req.QuestionCount))
	b.WriteString(fmt.Sprintf("Question format: %s\n\n", strings.TrimSpace(req.Format)))

	b.WriteString("For every question include the correct answer and a one-sentence explanation.\n")
	if req.IncludeHints {
		b.WriteString("Add a short hint under each question.\n")
	}
	b.WriteString("Number the questions and put all answers in an \"Answer Key\" section at the end.\n\n")

	writeLanguage(&b, req.Language)

	if src := strings.TrimSpace(req.SourceText); src != "" {
		b.WriteString("Base every question on this material:\n---MATERIAL---\n")
		b.WriteString(src)
		b.WriteString("\n---END---\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// QuizCustomize asks for a revised quiz. The result replaces the previous one.
func QuizCustomize(previous string, meta models.QuizMetadata, instruction string) string {
	var b strings.Builder

	b.WriteString(quizPreamble)
	b.WriteString(fmt.Sprintf("Here is a %s quiz about %s (%s, %d questions):\n\n",
		meta.Format, meta.Topic, meta.Difficulty, meta.QuestionCount))
	b.WriteString("---CURRENT QUIZ---\n")
	b.WriteString(previous)
	b.WriteString("\n---END---\n\n")

	b.WriteString("Revise the quiz according to this request: ")
	b.WriteString(strings.TrimSpace(instruction))
	b.WriteString("\n\nReturn the complete revised quiz, including the Answer Key, and nothing else.")

	return b.String()
}
