package models

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single turn in a feature conversation.
type Message struct {
	Role      Role      `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// TutorRequest is the payload sent to the tutoring feature.
type TutorRequest struct {
	Message       string `json:"message"`
	Subject       string `json:"subject"`
	LearningLevel string `json:"learning_level"`
	LearningStyle string `json:"learning_style"`
	Language      string `json:"language"`
}

// CustomizeRequest carries a natural-language modification for a stored artifact.
type CustomizeRequest struct {
	Instruction string `json:"instruction"`
}

type SwitchFeatureRequest struct {
	Feature string `json:"feature"`
}
