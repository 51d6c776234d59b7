package models

type MediaCategory string

const (
	MediaImage    MediaCategory = "image"
	MediaAudio    MediaCategory = "audio"
	MediaVideo    MediaCategory = "video"
	MediaDocument MediaCategory = "document"
)

// UploadedMedia is owned by a controller for the duration of one request.
type UploadedMedia struct {
	Name     string        `json:"name"`
	Data     []byte        `json:"-"`
	MIMEType string        `json:"mime_type"`
	Category MediaCategory `json:"category"`
}

func (m *UploadedMedia) Size() int64 {
	return int64(len(m.Data))
}

type DocumentRequest struct {
	AnalysisTypes []string `json:"analysis_types"`
	Focus         string   `json:"focus"`
	Question      string   `json:"question"`
	LearningLevel string   `json:"learning_level"`
	Language      string   `json:"language"`
}

type ImageRequest struct {
	AnalysisTypes []string `json:"analysis_types"`
	Focus         string   `json:"focus"`
	Question      string   `json:"question"`
	LearningLevel string   `json:"learning_level"`
	Language      string   `json:"language"`
}

type AudioRequest struct {
	AnalysisTypes []string `json:"analysis_types"`
	Focus         string   `json:"focus"`
	Language      string   `json:"language"`
}

type VideoRequest struct {
	// YouTubeURL is used when no file is uploaded.
	YouTubeURL    string   `json:"youtube_url"`
	AnalysisTypes []string `json:"analysis_types"`
	Focus         string   `json:"focus"`
	Language      string   `json:"language"`
}

// Insight is one result reported by a ContentAnalyzer.
type Insight struct {
	Label       string `json:"label"`
	Value       string `json:"value"`
	Placeholder bool   `json:"placeholder"`
}
