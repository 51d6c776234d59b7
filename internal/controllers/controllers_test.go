package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentora-backend/internal/models"
	"mentora-backend/internal/services"
	"mentora-backend/internal/session"
	"mentora-backend/internal/uploads"
)

type call struct {
	prompt   string
	media    []byte
	mimeType string
	stream   bool
}

// stubGenerator returns canned results and records every call.
type stubGenerator struct {
	mu     sync.Mutex
	calls  []call
	result models.GenerationResult
	chunks []string
	hook   func()
}

func (g *stubGenerator) record(c call) models.GenerationResult {
	g.mu.Lock()
	g.calls = append(g.calls, c)
	hook := g.hook
	g.mu.Unlock()
	if hook != nil {
		hook()
	}
	return g.result
}

func (g *stubGenerator) GenerateText(_ context.Context, prompt string, _ float32, _ string) models.GenerationResult {
	return g.record(call{prompt: prompt})
}

func (g *stubGenerator) GenerateMultimodal(_ context.Context, prompt string, media []byte, mimeType string, _ float32) models.GenerationResult {
	return g.record(call{prompt: prompt, media: media, mimeType: mimeType})
}

func (g *stubGenerator) StreamText(_ context.Context, prompt string, _ float32, onChunk func(string) error) models.GenerationResult {
	for _, c := range g.chunks {
		if err := onChunk(c); err != nil {
			return models.NewFailedResult(models.GenErrIO, err.Error())
		}
	}
	return g.record(call{prompt: prompt, stream: true})
}

func (g *stubGenerator) last(t *testing.T) call {
	t.Helper()
	g.mu.Lock()
	defer g.mu.Unlock()
	require.NotEmpty(t, g.calls)
	return g.calls[len(g.calls)-1]
}

type stubExtractor struct {
	text string
	err  error
	path string
}

func (e *stubExtractor) ExtractTextFromPath(path string) (string, bool, error) {
	e.path = path
	return e.text, false, e.err
}

type stubVideos struct {
	transcript    string
	transcriptErr error
	audio         []byte
}

func (v *stubVideos) GetTranscript(context.Context, string) (string, error) {
	return v.transcript, v.transcriptErr
}

func (v *stubVideos) VideoTitle(_ context.Context, id string) string {
	return "Title of " + id
}

func (v *stubVideos) DownloadAudio(context.Context, string, int64) ([]byte, string, error) {
	if v.audio == nil {
		return nil, "", errors.New("download blocked")
	}
	return v.audio, "audio/mp4", nil
}

func newDeps(t *testing.T, gen *stubGenerator) *Deps {
	t.Helper()
	return &Deps{
		Generator:   gen,
		Policy:      uploads.DefaultPolicy(25),
		TempDir:     t.TempDir(),
		Extractor:   &stubExtractor{text: "Cells are the basic unit of life."},
		Videos:      &stubVideos{transcript: "atoms are small"},
		Analyzers:   services.DefaultAnalyzers(),
		Temperature: 0.7,
	}
}

func payload(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func ok(text string) models.GenerationResult {
	return models.GenerationResult{Text: text}
}

func TestQuiz_StoresArtifactWithMetadata(t *testing.T) {
	gen := &stubGenerator{result: ok("QUIZ_TEXT")}
	d := NewDispatcher(newDeps(t, gen))
	sess := session.New()

	view, err := d.Submit(context.Background(), sess, models.FeatureQuiz, Submission{Payload: payload(t, models.QuizRequest{
		Topic:         "Photosynthesis",
		Difficulty:    "High School",
		QuestionCount: 5,
		Format:        "Multiple Choice",
	})})
	require.NoError(t, err)

	require.NotNil(t, view.Quiz)
	assert.Equal(t, "QUIZ_TEXT", view.Quiz.Content)
	assert.Equal(t, "Photosynthesis", view.Quiz.Metadata.Topic)
	assert.Equal(t, "High School", view.Quiz.Metadata.Difficulty)
	assert.Equal(t, 5, view.Quiz.Metadata.QuestionCount)
	assert.Equal(t, "Multiple Choice", view.Quiz.Metadata.Format)

	prompt := gen.last(t).prompt
	for _, want := range []string{"Photosynthesis", "High School", "5", "Multiple Choice"} {
		assert.Contains(t, prompt, want)
	}

	require.Len(t, view.History, 2)
	assert.Equal(t, models.RoleUser, view.History[0].Role)
	assert.Equal(t, "QUIZ_TEXT", view.History[1].Content)
	assert.Equal(t, models.StateIdle, view.State)
}

func TestGenerationFailure_AppendsOneAssistantMessage(t *testing.T) {
	gen := &stubGenerator{result: models.NewFailedResult(models.GenErrService, "upstream unavailable")}
	d := NewDispatcher(newDeps(t, gen))
	sess := session.New()

	var view *models.FeatureView
	var err error
	require.NotPanics(t, func() {
		view, err = d.Submit(context.Background(), sess, models.FeatureTutor, Submission{Payload: payload(t, models.TutorRequest{Message: "Explain gravity"})})
	})
	require.NoError(t, err)

	require.Len(t, view.History, 2)
	var assistant []models.Message
	for _, m := range view.History {
		if m.Role == models.RoleAssistant {
			assistant = append(assistant, m)
		}
	}
	require.Len(t, assistant, 1)
	assert.Contains(t, assistant[0].Content, "upstream unavailable")
	require.NotNil(t, view.LastError)
	assert.Equal(t, models.GenErrService, view.LastError.Kind)
	assert.Equal(t, models.StateIdle, view.State)
}

func TestQuiz_FailureKeepsPreviousQuiz(t *testing.T) {
	gen := &stubGenerator{result: ok("FIRST")}
	d := NewDispatcher(newDeps(t, gen))
	sess := session.New()
	req := Submission{Payload: payload(t, models.QuizRequest{Topic: "Cells"})}

	_, err := d.Submit(context.Background(), sess, models.FeatureQuiz, req)
	require.NoError(t, err)

	gen.result = models.NewFailedResult(models.GenErrService, "boom")
	view, err := d.Submit(context.Background(), sess, models.FeatureQuiz, req)
	require.NoError(t, err)
	require.NotNil(t, view.Quiz)
	assert.Equal(t, "FIRST", view.Quiz.Content)
	assert.Len(t, view.History, 4)
}

func TestQuiz_RequiresTopic(t *testing.T) {
	gen := &stubGenerator{result: ok("x")}
	d := NewDispatcher(newDeps(t, gen))
	sess := session.New()

	_, err := d.Submit(context.Background(), sess, models.FeatureQuiz, Submission{Payload: payload(t, models.QuizRequest{Topic: "  "})})
	var inErr *InputError
	require.ErrorAs(t, err, &inErr)
	assert.Equal(t, "topic", inErr.Field)
	assert.Empty(t, gen.calls)
	assert.Empty(t, sess.History(models.FeatureQuiz))
}

func TestQuiz_InvalidQuestionCount(t *testing.T) {
	d := NewDispatcher(newDeps(t, &stubGenerator{}))

	_, err := d.Submit(context.Background(), session.New(), models.FeatureQuiz, Submission{Payload: payload(t, models.QuizRequest{Topic: "Cells", QuestionCount: 500})})
	var inErr *InputError
	require.ErrorAs(t, err, &inErr)
	assert.Equal(t, "question_count", inErr.Field)
}

func TestQuiz_CustomizeReplacesInPlace(t *testing.T) {
	gen := &stubGenerator{result: ok("QUIZ_TEXT")}
	d := NewDispatcher(newDeps(t, gen))
	sess := session.New()

	_, err := d.Submit(context.Background(), sess, models.FeatureQuiz, Submission{Payload: payload(t, models.QuizRequest{Topic: "Photosynthesis", Difficulty: "High School", QuestionCount: 5, Format: "Multiple Choice"})})
	require.NoError(t, err)

	gen.result = ok("HARDER_QUIZ")
	view, err := d.Customize(context.Background(), sess, models.FeatureQuiz, models.CustomizeRequest{Instruction: "make question 1 harder"})
	require.NoError(t, err)

	require.NotNil(t, view.Quiz)
	assert.Equal(t, "HARDER_QUIZ", view.Quiz.Content)
	assert.Equal(t, 1, view.Quiz.Revisions)
	assert.Equal(t, "Photosynthesis", view.Quiz.Metadata.Topic)

	prompt := gen.last(t).prompt
	assert.Contains(t, prompt, "QUIZ_TEXT")
	assert.Contains(t, prompt, "make question 1 harder")
	assert.Len(t, view.History, 4)
}

func TestCustomize_WithoutArtifact(t *testing.T) {
	d := NewDispatcher(newDeps(t, &stubGenerator{}))

	_, err := d.Customize(context.Background(), session.New(), models.FeatureConceptMap, models.CustomizeRequest{Instruction: "add more"})
	assert.ErrorIs(t, err, ErrNoArtifact)
}

func TestCustomize_UnsupportedFeature(t *testing.T) {
	d := NewDispatcher(newDeps(t, &stubGenerator{}))

	_, err := d.Customize(context.Background(), session.New(), models.FeatureTutor, models.CustomizeRequest{Instruction: "x"})
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestConceptMap_GenerateAndCustomize(t *testing.T) {
	gen := &stubGenerator{result: ok("graph TD; A-->B")}
	d := NewDispatcher(newDeps(t, gen))
	sess := session.New()

	view, err := d.Submit(context.Background(), sess, models.FeatureConceptMap, Submission{Payload: payload(t, models.ConceptMapRequest{Topic: "Ecosystems"})})
	require.NoError(t, err)
	require.NotNil(t, view.ConceptMap)
	assert.Equal(t, 3, view.ConceptMap.Metadata.Depth)
	assert.Equal(t, "Hierarchical", view.ConceptMap.Metadata.Style)

	gen.result = ok("graph TD; A-->B; B-->C")
	view, err = d.Customize(context.Background(), sess, models.FeatureConceptMap, models.CustomizeRequest{Instruction: "add decomposers"})
	require.NoError(t, err)
	assert.Equal(t, "graph TD; A-->B; B-->C", view.ConceptMap.Content)
	assert.Equal(t, 1, view.ConceptMap.Revisions)
}

func TestSwitchingFeatures_KeepsQuiz(t *testing.T) {
	gen := &stubGenerator{result: ok("QUIZ_TEXT")}
	d := NewDispatcher(newDeps(t, gen))
	sess := session.New()

	_, err := d.Submit(context.Background(), sess, models.FeatureQuiz, Submission{Payload: payload(t, models.QuizRequest{Topic: "Photosynthesis"})})
	require.NoError(t, err)

	gen.result = ok("an answer")
	_, err = d.Submit(context.Background(), sess, models.FeatureTutor, Submission{Payload: payload(t, models.TutorRequest{Message: "hi"})})
	require.NoError(t, err)

	view, err := d.Render(sess, models.FeatureQuiz)
	require.NoError(t, err)
	require.NotNil(t, view.Quiz)
	assert.Equal(t, "QUIZ_TEXT", view.Quiz.Content)

	// Revisiting the quiz tab starts a fresh conversation.
	sess.SwitchFeature(models.FeatureQuiz)
	assert.Empty(t, sess.History(models.FeatureQuiz))
	assert.NotNil(t, sess.Quiz())
}

func TestSubmit_BusyWhileProcessing(t *testing.T) {
	gen := &stubGenerator{result: ok("first")}
	d := NewDispatcher(newDeps(t, gen))
	sess := session.New()
	tutor := Submission{Payload: payload(t, models.TutorRequest{Message: "hi"})}

	var busyErr error
	gen.hook = func() {
		gen.hook = nil
		_, busyErr = d.Submit(context.Background(), sess, models.FeatureTutor, tutor)
	}

	_, err := d.Submit(context.Background(), sess, models.FeatureTutor, tutor)
	require.NoError(t, err)
	assert.ErrorIs(t, busyErr, ErrBusy)
	assert.Len(t, sess.History(models.FeatureTutor), 2)
	assert.Equal(t, models.StateIdle, sess.State(models.FeatureTutor))
}

func TestSubmit_SessionBusyAcrossFeatures(t *testing.T) {
	gen := &stubGenerator{result: ok("first answer")}
	d := NewDispatcher(newDeps(t, gen))
	sess := session.New()
	tutor := func(msg string) Submission {
		return Submission{Payload: payload(t, models.TutorRequest{Message: msg})}
	}

	_, err := d.Submit(context.Background(), sess, models.FeatureTutor, tutor("What is a cell?"))
	require.NoError(t, err)
	sess.SetConceptMap(&models.ConceptMapArtifact{Content: "graph TD; Cell-->Nucleus"})

	var quizErr, tutorErr, customizeErr error
	gen.result = ok("second answer")
	gen.hook = func() {
		gen.hook = nil
		_, quizErr = d.Submit(context.Background(), sess, models.FeatureQuiz, Submission{Payload: payload(t, models.QuizRequest{Topic: "Cells"})})
		_, customizeErr = d.Customize(context.Background(), sess, models.FeatureConceptMap, models.CustomizeRequest{Instruction: "add more"})
		_, tutorErr = d.Submit(context.Background(), sess, models.FeatureTutor, tutor("interrupting"))
	}

	_, err = d.Submit(context.Background(), sess, models.FeatureTutor, tutor("And a nucleus?"))
	require.NoError(t, err)

	assert.ErrorIs(t, quizErr, ErrBusy)
	assert.ErrorIs(t, tutorErr, ErrBusy)
	assert.ErrorIs(t, customizeErr, ErrBusy)
	assert.Len(t, gen.calls, 2, "rejected requests never reach the model")

	history := sess.History(models.FeatureTutor)
	require.Len(t, history, 4, "earlier turns survive a rejected submit")
	assert.Equal(t, "What is a cell?", history[0].Content)
	assert.Equal(t, "And a nucleus?", history[2].Content)
	assert.Equal(t, models.FeatureTutor, sess.ActiveFeature())
	assert.Nil(t, sess.Quiz())
	assert.False(t, sess.Processing())
}

func TestSubmit_ValidationErrorKeepsActiveFeature(t *testing.T) {
	d := NewDispatcher(newDeps(t, &stubGenerator{result: ok("answer")}))
	sess := session.New()
	sess.AppendExchange(models.FeatureTutor, "q", "a")

	_, err := d.Submit(context.Background(), sess, models.FeatureQuiz, Submission{Payload: payload(t, models.QuizRequest{})})
	var inErr *InputError
	require.ErrorAs(t, err, &inErr)
	assert.Equal(t, models.FeatureTutor, sess.ActiveFeature())
	assert.Len(t, sess.History(models.FeatureTutor), 2)
}

func TestFinish_LogsFailedCompletion(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	sess := session.New()
	m := newMachine(sess, models.FeatureQuiz)
	finish(context.Background(), sess, m, models.FeatureQuiz)

	assert.Contains(t, buf.String(), "⚠")
	assert.Contains(t, buf.String(), "quiz")
	assert.Equal(t, models.StateIdle, sess.State(models.FeatureQuiz))
}

func TestTutor_IncludesHistoryInNextPrompt(t *testing.T) {
	gen := &stubGenerator{result: ok("It is 4.")}
	d := NewDispatcher(newDeps(t, gen))
	sess := session.New()

	_, err := d.Submit(context.Background(), sess, models.FeatureTutor, Submission{Payload: payload(t, models.TutorRequest{Message: "What is 2+2?"})})
	require.NoError(t, err)
	_, err = d.Submit(context.Background(), sess, models.FeatureTutor, Submission{Payload: payload(t, models.TutorRequest{Message: "And 3+3?"})})
	require.NoError(t, err)

	assert.Contains(t, gen.last(t).prompt, "User: What is 2+2?\nAssistant: It is 4.")
}

func TestTutor_RequiresMessage(t *testing.T) {
	d := NewDispatcher(newDeps(t, &stubGenerator{}))

	_, err := d.Submit(context.Background(), session.New(), models.FeatureTutor, Submission{Payload: json.RawMessage(`{"message":""}`)})
	var inErr *InputError
	assert.ErrorAs(t, err, &inErr)

	_, err = d.Submit(context.Background(), session.New(), models.FeatureTutor, Submission{Payload: json.RawMessage(`{not json`)})
	assert.ErrorAs(t, err, &inErr)
}

func TestTutor_StreamForwardsChunks(t *testing.T) {
	gen := &stubGenerator{result: ok("Hello there"), chunks: []string{"Hello", " there"}}
	d := NewDispatcher(newDeps(t, gen))
	sess := session.New()

	var got []string
	view, err := d.Stream(context.Background(), sess, models.FeatureTutor, payload(t, models.TutorRequest{Message: "hi"}), func(c string) error {
		got = append(got, c)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Hello", " there"}, got)
	require.Len(t, view.History, 2)
	assert.Equal(t, "Hello there", view.History[1].Content)
	assert.True(t, gen.last(t).stream)
}

func TestStream_UnsupportedFeature(t *testing.T) {
	d := NewDispatcher(newDeps(t, &stubGenerator{}))

	_, err := d.Stream(context.Background(), session.New(), models.FeatureQuiz, nil, func(string) error { return nil })
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestImage_SendsBlobAndCleansUp(t *testing.T) {
	gen := &stubGenerator{result: ok("a labelled diagram")}
	deps := newDeps(t, gen)
	d := NewDispatcher(deps)
	sess := session.New()

	upload := &models.UploadedMedia{Name: "cell.png", Data: []byte("\x89PNG\r\n\x1a\nrest")}
	view, err := d.Submit(context.Background(), sess, models.FeatureImage, Submission{Upload: upload})
	require.NoError(t, err)

	c := gen.last(t)
	assert.Equal(t, "image/png", c.mimeType)
	assert.Equal(t, upload.Data, c.media)
	assert.NotEmpty(t, view.Insights)
	assert.Contains(t, view.History[0].Content, "cell.png")

	entries, err := os.ReadDir(deps.TempDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temp files must be removed after the request")
}

func TestImage_RejectsDisallowedExtension(t *testing.T) {
	gen := &stubGenerator{result: ok("x")}
	d := NewDispatcher(newDeps(t, gen))
	sess := session.New()

	_, err := d.Submit(context.Background(), sess, models.FeatureImage, Submission{Upload: &models.UploadedMedia{Name: "virus.exe", Data: []byte("MZ")}})
	var verr *uploads.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, uploads.CodeUnsupportedFormat, verr.Code)
	assert.Empty(t, gen.calls)
	assert.Empty(t, sess.History(models.FeatureImage), "validation errors abort without a message pair")
}

func TestImage_RequiresFile(t *testing.T) {
	d := NewDispatcher(newDeps(t, &stubGenerator{}))

	_, err := d.Submit(context.Background(), session.New(), models.FeatureImage, Submission{})
	var inErr *InputError
	require.ErrorAs(t, err, &inErr)
	assert.Equal(t, "file", inErr.Field)
}

func TestAudio_DefaultAnalyses(t *testing.T) {
	gen := &stubGenerator{result: ok("transcript")}
	d := NewDispatcher(newDeps(t, gen))

	view, err := d.Submit(context.Background(), session.New(), models.FeatureAudio, Submission{Upload: &models.UploadedMedia{Name: "lecture.mp3", Data: []byte("ID3data")}})
	require.NoError(t, err)

	prompt := gen.last(t).prompt
	for _, want := range []string{"Transcription", "Summary", "Key Points"} {
		assert.Contains(t, prompt, want)
	}
	assert.Equal(t, "audio/mpeg", gen.last(t).mimeType)
	assert.Contains(t, view.History[0].Content, "lecture.mp3")
}

func TestDocument_InlinesExtractedText(t *testing.T) {
	gen := &stubGenerator{result: ok("summary")}
	deps := newDeps(t, gen)
	d := NewDispatcher(deps)

	_, err := d.Submit(context.Background(), session.New(), models.FeatureDocument, Submission{
		Payload: payload(t, models.DocumentRequest{Question: "What is a cell?"}),
		Upload:  &models.UploadedMedia{Name: "notes.txt", Data: []byte("Cells are the basic unit of life.")},
	})
	require.NoError(t, err)

	c := gen.last(t)
	assert.Nil(t, c.media)
	assert.Contains(t, c.prompt, "Cells are the basic unit of life.")
	assert.Contains(t, c.prompt, "What is a cell?")
	assert.Contains(t, deps.Extractor.(*stubExtractor).path, ".txt")
}

func TestDocument_ScannedPDFSentAsBlob(t *testing.T) {
	gen := &stubGenerator{result: ok("summary")}
	deps := newDeps(t, gen)
	deps.Extractor = &stubExtractor{err: services.ErrNoText}
	d := NewDispatcher(deps)

	_, err := d.Submit(context.Background(), session.New(), models.FeatureDocument, Submission{
		Upload: &models.UploadedMedia{Name: "scan.pdf", Data: []byte("%PDF-1.7 ...")},
	})
	require.NoError(t, err)

	c := gen.last(t)
	assert.Equal(t, "application/pdf", c.mimeType)
	assert.Contains(t, c.prompt, "attached")
}

func TestDocument_ExtractionFailureIsRecorded(t *testing.T) {
	gen := &stubGenerator{result: ok("unused")}
	deps := newDeps(t, gen)
	deps.Extractor = &stubExtractor{err: errors.New("corrupt zip")}
	d := NewDispatcher(deps)

	view, err := d.Submit(context.Background(), session.New(), models.FeatureDocument, Submission{
		Upload: &models.UploadedMedia{Name: "broken.docx", Data: []byte("PK")},
	})
	require.NoError(t, err)
	assert.Empty(t, gen.calls)
	require.Len(t, view.History, 2)
	assert.Contains(t, view.History[1].Content, "corrupt zip")
	require.NotNil(t, view.LastError)
	assert.Equal(t, models.GenErrIO, view.LastError.Kind)
}

func TestVideo_YouTubeTranscript(t *testing.T) {
	gen := &stubGenerator{result: ok("video summary")}
	d := NewDispatcher(newDeps(t, gen))

	view, err := d.Submit(context.Background(), session.New(), models.FeatureVideo, Submission{
		Payload: payload(t, models.VideoRequest{YouTubeURL: "https://youtu.be/dQw4w9WgXcQ"}),
	})
	require.NoError(t, err)

	c := gen.last(t)
	assert.Nil(t, c.media)
	assert.Contains(t, c.prompt, "atoms are small")
	assert.Contains(t, c.prompt, "Title of dQw4w9WgXcQ")
	assert.Equal(t, "video summary", view.History[1].Content)
}

func TestVideo_YouTubeFallsBackToAudio(t *testing.T) {
	gen := &stubGenerator{result: ok("from audio")}
	deps := newDeps(t, gen)
	deps.Videos = &stubVideos{transcriptErr: errors.New("no captions"), audio: []byte("aac")}
	d := NewDispatcher(deps)

	_, err := d.Submit(context.Background(), session.New(), models.FeatureVideo, Submission{
		Payload: payload(t, models.VideoRequest{YouTubeURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ"}),
	})
	require.NoError(t, err)

	c := gen.last(t)
	assert.Equal(t, "audio/mp4", c.mimeType)
	assert.Equal(t, []byte("aac"), c.media)
}

func TestVideo_InvalidURL(t *testing.T) {
	d := NewDispatcher(newDeps(t, &stubGenerator{}))

	_, err := d.Submit(context.Background(), session.New(), models.FeatureVideo, Submission{
		Payload: payload(t, models.VideoRequest{YouTubeURL: "https://example.com/clip"}),
	})
	var inErr *InputError
	require.ErrorAs(t, err, &inErr)
	assert.Equal(t, "youtube_url", inErr.Field)
}

func TestVideo_UploadedFile(t *testing.T) {
	gen := &stubGenerator{result: ok("scenes")}
	d := NewDispatcher(newDeps(t, gen))

	_, err := d.Submit(context.Background(), session.New(), models.FeatureVideo, Submission{
		Upload: &models.UploadedMedia{Name: "lab.mp4", Data: []byte("....ftypmp42")},
	})
	require.NoError(t, err)
	assert.Equal(t, "video/mp4", gen.last(t).mimeType)
}

func TestDispatcher_UnknownFeature(t *testing.T) {
	d := NewDispatcher(newDeps(t, &stubGenerator{}))

	_, err := d.Get(models.Feature("flashcards"))
	assert.ErrorIs(t, err, ErrUnknownFeature)

	for _, f := range models.AllFeatures {
		c, err := d.Get(f)
		require.NoError(t, err)
		assert.Equal(t, f, c.Feature())
	}
}
