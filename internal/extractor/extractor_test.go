package extractor

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/interview-assistant/internal/models"
)

func buildPDF(t *testing.T, lines ...string) []byte {
	t.Helper()

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetCompression(false)
	doc.AddPage()
	doc.SetFont("Helvetica", "", 12)
	for _, line := range lines {
		doc.Cell(0, 10, line)
		doc.Ln(10)
	}

	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))
	return buf.Bytes()
}

func buildDOCX(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var body bytes.Buffer
	body.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t xml:space="preserve">`)
		body.WriteString(p)
		body.WriteString(`</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write(body.Bytes())
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestParseText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want models.Profile
	}{
		{
			name: "all fields",
			text: "Name: Ada Lovelace\nEmail: ada@example.com\nPhone: +441234567890\n",
			want: models.Profile{Name: "Ada Lovelace", Email: "ada@example.com", Phone: "+441234567890"},
		},
		{
			name: "case insensitive name label",
			text: "NAME:   Grace Hopper\r\ncontact grace.hopper@navy.mil",
			want: models.Profile{Name: "Grace Hopper", Email: "grace.hopper@navy.mil"},
		},
		{
			name: "missing name",
			text: "a@b.com 1234567890",
			want: models.Profile{Email: "a@b.com", Phone: "1234567890"},
		},
		{
			name: "short digit runs are not phones",
			text: "Name: Ada\nzip 12345",
			want: models.Profile{Name: "Ada"},
		},
		{
			name: "nothing",
			text: "just some words",
			want: models.Profile{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseText(tt.text))
		})
	}
}

func TestParseText_FieldsMatchPatterns(t *testing.T) {
	inputs := []string{
		"mail me at x.y-z@sub.domain.org today, call 00441234567890123",
		"Phone: +12025550143 ext 4",
		"weird @ sign and 123 456 7890",
	}

	for _, in := range inputs {
		p := ParseText(in)
		if p.Email != "" {
			assert.Regexp(t, `^[\w.-]+@[\w.-]+\.\w+$`, p.Email)
		}
		if p.Phone != "" {
			assert.True(t, models.PhonePattern.MatchString(p.Phone), p.Phone)
		}
	}
}

func TestExtract_PDF(t *testing.T) {
	data := buildPDF(t,
		"Email: ada@example.com ",
		"Phone: +441234567890 ",
		"Name: Ada Lovelace",
	)

	p, err := New(nil).Extract(context.Background(), Document{
		Filename:    "resume.pdf",
		ContentType: MimePDF,
		Data:        data,
	})
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", p.Email)
	assert.Equal(t, "+441234567890", p.Phone)
	assert.Equal(t, "Ada Lovelace", p.Name)
}

func TestExtract_DOCX(t *testing.T) {
	data := buildDOCX(t, "Name: Ada Lovelace", "ada@example.com", "Phone 1234567890")

	p, err := New(nil).Extract(context.Background(), Document{
		Filename: "resume.docx",
		Data:     data,
	})
	require.NoError(t, err)

	assert.Equal(t, models.Profile{Name: "Ada Lovelace", Email: "ada@example.com", Phone: "1234567890"}, p)
}

func TestExtract_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     Document
		wantErr error
	}{
		{
			name:    "empty file",
			doc:     Document{Filename: "resume.pdf", ContentType: MimePDF},
			wantErr: ErrEmptyFile,
		},
		{
			name:    "plain text",
			doc:     Document{Filename: "resume.txt", ContentType: "text/plain", Data: []byte("Name: Ada")},
			wantErr: ErrUnsupportedType,
		},
		{
			name:    "corrupt pdf",
			doc:     Document{Filename: "resume.pdf", Data: []byte("%PDF-1.4 garbage")},
			wantErr: ErrCorruptDocument,
		},
		{
			name:    "docx without body",
			doc:     Document{Filename: "resume.docx", Data: []byte("not a zip")},
			wantErr: ErrCorruptDocument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(nil).Extract(context.Background(), tt.doc)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDetectType(t *testing.T) {
	pdfData := buildPDF(t, "hello")

	assert.Equal(t, MimePDF, detectType(Document{ContentType: "application/pdf; charset=binary"}))
	assert.Equal(t, MimeDOCX, detectType(Document{Filename: "CV.DOCX", ContentType: "application/octet-stream"}))
	assert.Equal(t, MimePDF, detectType(Document{Filename: "upload", Data: pdfData}))
	assert.Equal(t, "image/png", detectType(Document{Filename: "photo", ContentType: "image/png", Data: []byte{1, 2}}))
}
