package extract

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// extractCSV renders each record as a comma-joined line. Files that are not
// valid UTF-8 get one decoding retry as Latin-1 before failing.
func extractCSV(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	text, err := csvToText(strings.NewReader(string(data)))
	if err == nil && utf8.ValidString(text) {
		return text, nil
	}

	decoded, decErr := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if decErr != nil {
		if err != nil {
			return "", err
		}
		return "", decErr
	}
	return csvToText(strings.NewReader(string(decoded)))
}

func csvToText(r io.Reader) (string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var lines []string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("csv parse: %w", err)
		}
		lines = append(lines, strings.Join(record, ", "))
	}
	return strings.Join(lines, "\n"), nil
}
