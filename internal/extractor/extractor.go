// Package extractor recovers candidate contact fields from uploaded resumes.
package extractor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/terra-clan/interview-assistant/internal/models"
)

var (
	ErrEmptyFile       = errors.New("file is empty")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrCorruptDocument = errors.New("document could not be read")
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var (
	namePattern  = regexp.MustCompile(`(?i)Name:\s*(.*)`)
	emailPattern = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
	phonePattern = regexp.MustCompile(`\+?\d{10,15}`)
)

// Document is an uploaded resume
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Extractor turns resume documents into contact fields
type Extractor struct {
	logger *slog.Logger
}

// New creates a resume extractor
func New(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

// Extract reads the document text and recovers name, email and phone.
// Fields that cannot be found are left blank.
func (e *Extractor) Extract(ctx context.Context, doc Document) (models.Profile, error) {
	if len(doc.Data) == 0 {
		return models.Profile{}, ErrEmptyFile
	}
	if err := ctx.Err(); err != nil {
		return models.Profile{}, err
	}

	kind := detectType(doc)

	var (
		text string
		err  error
	)
	switch kind {
	case MimePDF:
		text, err = pdfText(doc.Data)
	case MimeDOCX:
		text, err = docxText(doc.Data)
	default:
		return models.Profile{}, fmt.Errorf("%w: %s", ErrUnsupportedType, kind)
	}
	if err != nil {
		return models.Profile{}, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}

	profile := ParseText(text)
	e.logger.Info("resume extracted",
		"filename", doc.Filename,
		"type", kind,
		"missing", profile.MissingFields(),
	)
	return profile, nil
}

// detectType resolves the document type from its declared content type,
// then its file extension, then its content
func detectType(doc Document) string {
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(doc.ContentType, ";", 2)[0]))
	switch ct {
	case MimePDF, MimeDOCX:
		return ct
	}

	switch strings.ToLower(filepath.Ext(doc.Filename)) {
	case ".pdf":
		return MimePDF
	case ".docx":
		return MimeDOCX
	}

	detected := mimetype.Detect(doc.Data)
	switch {
	case detected.Is(MimePDF):
		return MimePDF
	case detected.Is(MimeDOCX):
		return MimeDOCX
	}

	if ct != "" && ct != "application/octet-stream" {
		return ct
	}
	return detected.String()
}

// ParseText recovers contact fields from plain resume text
func ParseText(text string) models.Profile {
	var p models.Profile

	if m := namePattern.FindStringSubmatch(text); m != nil {
		p.Name = strings.TrimSpace(m[1])
	}
	p.Email = emailPattern.FindString(text)
	p.Phone = phonePattern.FindString(text)

	return p
}
