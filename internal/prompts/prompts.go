// Package prompts builds the text prompt for every feature. Builders are pure:
// the same parameters always produce the same string, and optional sections
// are left out entirely when their inputs are empty.
package prompts

import (
	"fmt"
	"strings"

	"mentora-backend/internal/models"
)

func writeHistory(b *strings.Builder, history []models.Message) {
	if len(history) == 0 {
		return
	}

	b.WriteString("Conversation so far:\n")
	for _, m := range history {
		switch m.Role {
		case models.RoleAssistant:
			b.WriteString("Assistant: ")
		default:
			b.WriteString("User: ")
		}
		b.WriteString(strings.TrimSpace(m.Content))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

type field struct {
	label string
	value string
}

// writeFields emits "Label: value" lines for the non-empty fields followed by
// a blank line, or nothing at all.
func writeFields(b *strings.Builder, fields ...field) {
	wrote := false
	for _, f := range fields {
		v := strings.TrimSpace(f.value)
		if v == "" {
			continue
		}
		b.WriteString(fmt.Sprintf("%s: %s\n", f.label, v))
		wrote = true
	}
	if wrote {
		b.WriteString("\n")
	}
}

// writeTasks renders one numbered instruction per requested analysis type.
func writeTasks(b *strings.Builder, tasks []string) {
	var cleaned []string
	for _, t := range tasks {
		if t = strings.TrimSpace(t); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	if len(cleaned) == 0 {
		return
	}

	b.WriteString("Provide the following analyses, each under its own heading:\n")
	for i, t := range cleaned {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, t))
	}
	b.WriteString("\n")
}

func writeLanguage(b *strings.Builder, language string) {
	language = strings.TrimSpace(language)
	if language == "" || isEnglish(language) {
		return
	}
	b.WriteString(fmt.Sprintf("Language: Respond entirely in %s.\n\n", language))
}

func isEnglish(language string) bool {
	switch strings.ToLower(language) {
	case "en", "english", "en-us", "en-gb":
		return true
	}
	return false
}
