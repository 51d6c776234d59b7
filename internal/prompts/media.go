package prompts

import (
	"strings"

	"mentora-backend/internal/models"
)

const imagePreamble = `You are an expert visual learning assistant. Study the attached image (diagram, chart, photo, handwritten notes, or figure) and explain what it teaches.

`

const audioPreamble = `You are an expert at turning spoken educational content into study material. Listen to the attached audio recording.

`

const videoPreamble = `You are an expert at turning educational videos into study material. Watch the attached video.

`

const videoTranscriptPreamble = `You are an expert at turning educational videos into study material. Work from the video transcript below.

`

func Image(req models.ImageRequest) string {
	var b strings.Builder

	b.WriteString(imagePreamble)
	writeFields(&b,
		field{"Learner level", req.LearningLevel},
		field{"Focus", req.Focus},
	)

	writeTasks(&b, req.AnalysisTypes)
	if q := strings.TrimSpace(req.Question); q != "" {
		b.WriteString("Also answer this question about the image: ")
		b.WriteString(q)
		b.WriteString("\n\n")
	}
	writeLanguage(&b, req.Language)

	return strings.TrimRight(b.String(), "\n")
}

func Audio(req models.AudioRequest) string {
	var b strings.Builder

	b.WriteString(audioPreamble)
	writeFields(&b, field{"Focus", req.Focus})

	writeTasks(&b, req.AnalysisTypes)
	writeLanguage(&b, req.Language)

	return strings.TrimRight(b.String(), "\n")
}

func Video(req models.VideoRequest) string {
	var b strings.Builder

	b.WriteString(videoPreamble)
	writeFields(&b, field{"Focus", req.Focus})

	writeTasks(&b, req.AnalysisTypes)
	writeLanguage(&b, req.Language)

	return strings.TrimRight(b.String(), "\n")
}

// VideoTranscript is used when a video arrives as a link and its captions
// could be fetched.
func VideoTranscript(req models.VideoRequest, source, transcript string) string {
	var b strings.Builder

	b.WriteString(videoTranscriptPreamble)
	writeFields(&b,
		field{"Source", source},
		field{"Focus", req.Focus},
	)

	writeTasks(&b, req.AnalysisTypes)
	writeLanguage(&b, req.Language)

	b.WriteString("---TRANSCRIPT START---\n")
	b.WriteString(transcript)
	b.WriteString("\n---TRANSCRIPT END---\n")

	return b.String()
}
