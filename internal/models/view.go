package models

import "time"

type ControllerState string

const (
	StateIdle       ControllerState = "idle"
	StateProcessing ControllerState = "processing"
)

// FeatureView is what a controller renders for one feature of one session.
type FeatureView struct {
	Feature    Feature             `json:"feature"`
	Title      string              `json:"title"`
	State      ControllerState     `json:"state"`
	History    []Message           `json:"history"`
	Quiz       *QuizArtifact       `json:"quiz,omitempty"`
	ConceptMap *ConceptMapArtifact `json:"concept_map,omitempty"`
	Insights   []Insight           `json:"insights,omitempty"`
	LastError  *GenerationError    `json:"last_error,omitempty"`
}

type SessionView struct {
	ID            string                      `json:"id"`
	ActiveFeature Feature                     `json:"active_feature"`
	States        map[Feature]ControllerState `json:"states"`
	Quiz          *QuizArtifact               `json:"quiz,omitempty"`
	ConceptMap    *ConceptMapArtifact         `json:"concept_map,omitempty"`
	CreatedAt     time.Time                   `json:"created_at"`
	LastAccessAt  time.Time                   `json:"last_access_at"`
}
