package models

type GenerationErrorKind string

const (
	GenErrService    GenerationErrorKind = "service"
	GenErrBlocked    GenerationErrorKind = "blocked"
	GenErrEmpty      GenerationErrorKind = "empty"
	GenErrIO         GenerationErrorKind = "io"
	GenErrValidation GenerationErrorKind = "validation"
)

type GenerationError struct {
	Kind    GenerationErrorKind `json:"kind"`
	Message string              `json:"message"`
}

func (e *GenerationError) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// GenerationRequest is built fresh for every call and never stored.
type GenerationRequest struct {
	Prompt      string
	Media       []byte
	MIMEType    string
	Temperature float32
	Model       string
}

func (r GenerationRequest) HasMedia() bool {
	return len(r.Media) > 0
}

// GenerationResult always carries displayable Text. When Err is set, Text is
// an apology that includes the error description.
type GenerationResult struct {
	Text string           `json:"text"`
	Err  *GenerationError `json:"error,omitempty"`
}

func (r GenerationResult) Failed() bool {
	return r.Err != nil
}

// ApologyText is the assistant turn shown in place of a failed generation.
func ApologyText(message string) string {
	return "I'm sorry, I couldn't generate a response right now. Error: " + message
}

func NewFailedResult(kind GenerationErrorKind, message string) GenerationResult {
	return GenerationResult{
		Text: ApologyText(message),
		Err:  &GenerationError{Kind: kind, Message: message},
	}
}
