package uploads

import (
	"bytes"
	"fmt"
	"net/http"
	"path/filepath"
	"sort"
	"strings"

	"mentora-backend/internal/models"
)

const (
	CodeFileTooLarge      = "FILE_TOO_LARGE"
	CodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	CodeEmptyFile         = "EMPTY_FILE"
)

// ValidationError rejects an upload before anything is written to disk.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

type Policy struct {
	MaxBytes int64
	Allowed  map[models.MediaCategory][]string
}

var defaultExtensions = map[models.MediaCategory][]string{
	models.MediaImage:    {".jpg", ".jpeg", ".png"},
	models.MediaDocument: {".pdf", ".docx", ".txt"},
	models.MediaAudio:    {".mp3", ".wav", ".m4a", ".ogg"},
	models.MediaVideo:    {".mp4", ".mov", ".avi", ".mkv"},
}

var mimeByExtension = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".m4a":  "audio/mp4",
	".ogg":  "audio/ogg",
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".mkv":  "video/x-matroska",
}

func DefaultPolicy(maxMB int) *Policy {
	allowed := make(map[models.MediaCategory][]string, len(defaultExtensions))
	for cat, exts := range defaultExtensions {
		allowed[cat] = append([]string(nil), exts...)
	}
	return &Policy{
		MaxBytes: int64(maxMB) * 1024 * 1024,
		Allowed:  allowed,
	}
}

func extension(name string) string {
	return strings.ToLower(filepath.Ext(name))
}

// CategoryOf reports which category allows the file's extension.
func (p *Policy) CategoryOf(name string) (models.MediaCategory, bool) {
	ext := extension(name)
	if ext == "" {
		return "", false
	}
	for cat, exts := range p.Allowed {
		for _, e := range exts {
			if e == ext {
				return cat, true
			}
		}
	}
	return "", false
}

// Validate checks size and extension. When want is non-empty the file must
// also belong to that category.
func (p *Policy) Validate(name string, size int64, want models.MediaCategory) (models.MediaCategory, error) {
	if size > p.MaxBytes {
		return "", &ValidationError{
			Code:    CodeFileTooLarge,
			Message: fmt.Sprintf("File size exceeds %dMB limit", p.MaxBytes/(1024*1024)),
		}
	}
	if size == 0 {
		return "", &ValidationError{Code: CodeEmptyFile, Message: "Uploaded file is empty"}
	}

	cat, ok := p.CategoryOf(name)
	if !ok || (want != "" && cat != want) {
		allowed := p.Allowed[want]
		if want == "" {
			allowed = p.AllExtensions()
		}
		return "", &ValidationError{
			Code:    CodeUnsupportedFormat,
			Message: fmt.Sprintf("File type %q not supported; allowed: %s", extension(name), strings.Join(allowed, ", ")),
		}
	}

	return cat, nil
}

func (p *Policy) AllExtensions() []string {
	var all []string
	for _, exts := range p.Allowed {
		all = append(all, exts...)
	}
	sort.Strings(all)
	return all
}

// MIMEType prefers the extension table and falls back to sniffing head.
func MIMEType(name string, head []byte) string {
	if m, ok := mimeByExtension[extension(name)]; ok {
		return m
	}
	return http.DetectContentType(head)
}

// Accept validates an in-memory upload and, only if it passes, writes it into
// the scope.
func (p *Policy) Accept(s *Scope, m *models.UploadedMedia, want models.MediaCategory) (string, error) {
	cat, err := p.Validate(m.Name, m.Size(), want)
	if err != nil {
		return "", err
	}
	m.Category = cat
	if m.MIMEType == "" {
		m.MIMEType = MIMEType(m.Name, m.Data)
	}

	return s.Save(m.Name, bytes.NewReader(m.Data))
}
