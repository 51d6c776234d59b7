package prompts

import (
	"fmt"
	"strings"

	"mentora-backend/internal/models"
)

const conceptMapPreamble = `You are an expert in visual learning design. You build concept maps that show how ideas in a topic connect.

`

func conceptMapStyleRules(style string) string {
	switch strings.ToLower(strings.TrimSpace(style)) {
	case "network":
		return "Structure: a network where concepts may link to several others. Label every link with the relationship.\n"
	case "flowchart":
		return "Structure: a flowchart showing processes or cause and effect in order.\n"
	default:
		return "Structure: a hierarchy from the central concept down to supporting details.\n"
	}
}

func ConceptMap(req models.ConceptMapRequest) string {
	var b strings.Builder

	b.WriteString(conceptMapPreamble)
	depth := ""
	if req.Depth > 0 {
		depth = fmt.Sprintf("%d levels below the central concept", req.Depth)
	}
	writeFields(&b,
		field{"Central concept", req.Topic},
		field{"Depth", depth},
		field{"Detail level", req.DetailLevel},
	)
	b.WriteString(conceptMapStyleRules(req.Style))
	b.WriteString("Output the map as a Mermaid diagram in a ```mermaid block, then a short bullet list explaining each relationship.\n\n")

	writeLanguage(&b, req.Language)

	return strings.TrimRight(b.String(), "\n")
}

func ConceptMapCustomize(previous string, meta models.ConceptMapMetadata, instruction string) string {
	var b strings.Builder

	b.WriteString(conceptMapPreamble)
	b.WriteString(fmt.Sprintf("Here is the current concept map for %s:\n\n", meta.Topic))
	b.WriteString("---CURRENT MAP---\n")
	b.WriteString(previous)
	b.WriteString("\n---END---\n\n")

	b.WriteString("Modify the map according to this request: ")
	b.WriteString(strings.TrimSpace(instruction))
	b.WriteString("\n\nKeep the same output format and return the complete updated map.")

	return b.String()
}
