package models

import "time"

type QuizRequest struct {
	Topic         string `json:"topic"`
	Difficulty    string `json:"difficulty"`
	QuestionCount int    `json:"question_count"`
	Format        string `json:"format"`
	SourceText    string `json:"source_text"` // optional study material to ground questions in
	IncludeHints  bool   `json:"include_hints"`
	Language      string `json:"language"`
}

type QuizMetadata struct {
	Topic         string `json:"topic"`
	Difficulty    string `json:"difficulty"`
	QuestionCount int    `json:"question_count"`
	Format        string `json:"format"`
	IncludeHints  bool   `json:"include_hints"`
	Language      string `json:"language,omitempty"`
}

// QuizArtifact is kept until regenerated or customized.
type QuizArtifact struct {
	Content     string       `json:"content"`
	Metadata    QuizMetadata `json:"metadata"`
	Revisions   int          `json:"revisions"`
	GeneratedAt time.Time    `json:"generated_at"`
}

func (r QuizRequest) Metadata() QuizMetadata {
	return QuizMetadata{
		Topic:         r.Topic,
		Difficulty:    r.Difficulty,
		QuestionCount: r.QuestionCount,
		Format:        r.Format,
		IncludeHints:  r.IncludeHints,
		Language:      r.Language,
	}
}
