// Package extract turns stored files into normalized plain text.
package extract

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"chatknowledge/internal/rag/ragerr"
	"chatknowledge/pkg/logger_i"

	"github.com/lu4p/cat"
)

type format int

const (
	formatUnknown format = iota
	formatPDF
	formatWordLike // docx, odt, rtf, plain text via cat
	formatCSV
)

type Extractor struct {
	logger *logger_i.Logger
}

func New() *Extractor {
	return &Extractor{logger: logger_i.NewLogger("Extractor")}
}

// Extract picks a strategy by declared media type, falling back to the
// filename extension when the type is absent or unrecognized.
func (e *Extractor) Extract(path string, mediaType string) (string, error) {
	f := byMediaType(mediaType)
	if f == formatUnknown {
		f = byExtension(path)
	}
	if f == formatUnknown {
		return "", fmt.Errorf("%w: media type %q, file %q",
			ragerr.ErrUnsupportedFormat, mediaType, filepath.Base(path))
	}

	var text string
	var err error
	switch f {
	case formatPDF:
		text, err = e.extractPDF(path)
	case formatWordLike:
		text, err = cat.File(path)
	case formatCSV:
		text, err = extractCSV(path)
	}
	if err != nil {
		return "", fmt.Errorf("%w: media type %q: %v", ragerr.ErrExtractionFailure, mediaType, err)
	}
	return Normalize(text), nil
}

func byMediaType(mediaType string) format {
	switch mediaType {
	case "application/pdf":
		return formatPDF
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/vnd.oasis.opendocument.text",
		"application/rtf",
		"text/plain":
		return formatWordLike
	case "text/csv":
		return formatCSV
	}
	return formatUnknown
}

func byExtension(path string) format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return formatPDF
	case ".docx", ".odt", ".rtf", ".txt":
		return formatWordLike
	case ".csv":
		return formatCSV
	}
	return formatUnknown
}

var blankRuns = regexp.MustCompile(`\n{3,}`)

// Normalize compacts the text cosmetically: carriage returns become
// newlines, runs of blank lines collapse to one, surrounding whitespace is
// trimmed. Content is never deduplicated.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = blankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
