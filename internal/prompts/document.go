package prompts

import (
	"strings"

	"mentora-backend/internal/models"
)

const documentPreamble = `You are an expert educational content analyst. Help a learner understand the document below. Be accurate, cite section names or short quotes when useful, and say so when the document does not cover something.

`

// Document builds the document analysis prompt. An empty text means the
// document travels as an attachment instead.
func Document(req models.DocumentRequest, name, text string) string {
	var b strings.Builder

	b.WriteString(documentPreamble)

	writeFields(&b,
		field{"Document", name},
		field{"Reader level", req.LearningLevel},
		field{"Focus", req.Focus},
	)

	writeTasks(&b, req.AnalysisTypes)
	if q := strings.TrimSpace(req.Question); q != "" {
		b.WriteString("Also answer this question about the document: ")
		b.WriteString(q)
		b.WriteString("\n\n")
	}
	writeLanguage(&b, req.Language)

	if strings.TrimSpace(text) == "" {
		b.WriteString("The document is attached to this request.\n")
		return b.String()
	}

	b.WriteString("---DOCUMENT START---\n")
	b.WriteString(text)
	b.WriteString("\n---DOCUMENT END---\n")

	return b.String()
}
