package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"resume-reviewer/internal/apperrors"
	"resume-reviewer/internal/models"
)

const (
	MediaTypePDF  = "application/pdf"
	MediaTypeDOC  = "application/msword"
	MediaTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// DocumentExtractor converts an uploaded binary into plain text with
// paragraph boundaries preserved. Pure over the document bytes.
type DocumentExtractor interface {
	Extract(doc models.RawDocument) (string, error)
}

type documentExtractor struct{}

func NewDocumentExtractor() DocumentExtractor {
	return &documentExtractor{}
}

func (e *documentExtractor) Extract(doc models.RawDocument) (string, error) {
	var text string
	var err error

	switch doc.MediaType {
	case MediaTypePDF:
		text, err = extractPDFText(doc.Content)
	case MediaTypeDOC, MediaTypeDOCX:
		text, err = extractDocxText(doc.Content)
	default:
		return "", apperrors.New(apperrors.KindUnsupportedFormat,
			fmt.Sprintf("unsupported media type %q: file must be PDF or Word document", doc.MediaType))
	}

	if err != nil {
		return "", apperrors.Wrap(apperrors.KindExtractionFailure,
			fmt.Sprintf("failed to extract text from %s", doc.Filename), err)
	}

	text = CleanText(text)
	if text == "" {
		return "", apperrors.New(apperrors.KindExtractionFailure,
			fmt.Sprintf("no text content found in %s", doc.Filename))
	}

	return text, nil
}

func extractPDFText(content []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var textBuilder strings.Builder
	totalPage := reader.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single bad page should not sink the document.
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	return textBuilder.String(), nil
}

func extractDocxText(content []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return doc.Editable().GetContent(), nil
}

// CleanText collapses whitespace runs while keeping paragraph
// boundaries as single newlines.
func CleanText(text string) string {
	text = strings.TrimSpace(text)

	lines := strings.Split(text, "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
