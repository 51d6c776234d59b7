package models

// WebSocket message types
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

const (
	WSChunk     = "chunk"
	WSCompleted = "completed"
	WSError     = "error"
)

type ChunkEvent struct {
	Chunk           string `json:"chunk"`
	TotalChunksSent int    `json:"total_chunks_sent"`
}

type CompletedEvent struct {
	Feature Feature `json:"feature"`
	Text    string  `json:"text"`
}

type ErrorEvent struct {
	ErrorCode    string `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

// API Error response
type APIError struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}
