package extract

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dslipak/pdf"
)

func (e *Extractor) extractPDF(path string) (string, error) {
	f, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	var pages []string
	numPages := f.NumPage()
	e.logger.Debug("extractPDF", "path", path, "number of pages", numPages)
	for i := 1; i <= numPages; i++ {
		page := f.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := protectExtract(page)
		if err != nil {
			// a bad page should not sink the document
			e.logger.Error("Error parsing page content", "page", i, "error", err)
			continue
		}
		pages = append(pages, content)
	}
	if len(pages) == 0 {
		return "", errors.New("no extractable pages")
	}
	return strings.Join(pages, "\n"), nil
}

// protectExtract guards GetPlainText, which can hang on malformed pages.
func protectExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(time.Second * 10):
		return "", errors.New("page extraction timeout")
	}
}
