package prompts

import (
	"strings"

	"mentora-backend/internal/models"
)

const tutorPreamble = `You are a patient, encouraging educational tutor. Explain ideas step by step, check understanding with short follow-up questions, and adapt examples to the student's level. Never just hand over answers to homework problems: guide the student toward them.

`

// Tutor builds the tutoring prompt. History holds earlier turns of the same
// conversation and does not include the new message.
func Tutor(req models.TutorRequest, history []models.Message) string {
	var b strings.Builder

	b.WriteString(tutorPreamble)

	writeFields(&b,
		field{"Subject", req.Subject},
		field{"Learning level", req.LearningLevel},
		field{"Preferred learning style", req.LearningStyle},
	)

	writeLanguage(&b, req.Language)
	writeHistory(&b, history)

	b.WriteString("Student: ")
	b.WriteString(strings.TrimSpace(req.Message))
	b.WriteString("\nTutor:")

	return b.String()
}
