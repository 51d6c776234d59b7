package models

import "time"

type ConceptMapRequest struct {
	Topic       string `json:"topic"`
	Depth       int    `json:"depth"`
	Style       string `json:"style"` // "hierarchical" | "network" | "flowchart"
	DetailLevel string `json:"detail_level"`
	Language    string `json:"language"`
}

type ConceptMapMetadata struct {
	Topic       string `json:"topic"`
	Depth       int    `json:"depth"`
	Style       string `json:"style"`
	DetailLevel string `json:"detail_level"`
	Language    string `json:"language,omitempty"`
}

type ConceptMapArtifact struct {
	Content     string             `json:"content"`
	Metadata    ConceptMapMetadata `json:"metadata"`
	Revisions   int                `json:"revisions"`
	GeneratedAt time.Time          `json:"generated_at"`
}

func (r ConceptMapRequest) Metadata() ConceptMapMetadata {
	return ConceptMapMetadata{
		Topic:       r.Topic,
		Depth:       r.Depth,
		Style:       r.Style,
		DetailLevel: r.DetailLevel,
		Language:    r.Language,
	}
}
