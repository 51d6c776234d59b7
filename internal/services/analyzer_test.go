package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentora-backend/internal/models"
)

func TestDefaultAnalyzers_CoverEveryCategory(t *testing.T) {
	analyzers := DefaultAnalyzers()
	for _, c := range []models.MediaCategory{models.MediaImage, models.MediaAudio, models.MediaVideo, models.MediaDocument} {
		a, ok := analyzers[c]
		require.True(t, ok, c)
		assert.Equal(t, c, a.Category())
	}
}

func TestPlaceholderAnalyzer_FlagsSampleInsights(t *testing.T) {
	path := writeFile(t, "clip.mp3", make([]byte, 2048))

	insights, err := NewAudioAnalyzer().Analyze(context.Background(), path)
	require.NoError(t, err)
	require.NotEmpty(t, insights)

	assert.Equal(t, "File size", insights[0].Label)
	assert.Equal(t, "2.0 KB", insights[0].Value)
	assert.False(t, insights[0].Placeholder)
	for _, in := range insights[1:] {
		assert.True(t, in.Placeholder, in.Label)
	}
}

func TestPlaceholderAnalyzer_MissingFile(t *testing.T) {
	_, err := NewImageAnalyzer().Analyze(context.Background(), "/nonexistent/file.png")
	assert.Error(t, err)
}

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "512 B", humanSize(512))
	assert.Equal(t, "1.5 KB", humanSize(1536))
	assert.Equal(t, "25.0 MB", humanSize(25*1024*1024))
}
