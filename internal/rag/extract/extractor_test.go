package extract_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"chatknowledge/internal/rag/extract"
	"chatknowledge/internal/rag/ragerr"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"windows line endings", "a\r\nb", "a\nb"},
		{"bare carriage returns", "a\rb", "a\nb"},
		{"blank line runs collapse", "a\n\n\n\n\nb", "a\n\nb"},
		{"double newline kept", "a\n\nb", "a\n\nb"},
		{"surrounding whitespace trimmed", "  \n hello \n  ", "hello"},
		{"empty input", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := extract.Normalize(tc.input); got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestExtract_UnknownFormat(t *testing.T) {
	e := extract.New()

	_, err := e.Extract("somefile.xyz", "application/x-mystery")
	if !errors.Is(err, ragerr.ErrUnsupportedFormat) {
		t.Fatalf("got %v, want ErrUnsupportedFormat", err)
	}
}

func TestExtract_PlainTextFile(t *testing.T) {
	e := extract.New()

	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("hello\r\n\r\n\r\n\r\nworld\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	text, err := e.Extract(path, "text/plain")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if text != "hello\n\nworld" {
		t.Errorf("got %q", text)
	}
}

func TestExtract_ExtensionFallback(t *testing.T) {
	e := extract.New()

	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte("name,age\nana,30\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	// no usable media type, the .csv extension decides
	text, err := e.Extract(path, "application/octet-stream")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if text != "name, age\nana, 30" {
		t.Errorf("got %q", text)
	}
}

func TestExtract_CSVRaggedRows(t *testing.T) {
	e := extract.New()

	path := filepath.Join(t.TempDir(), "ragged.csv")
	if err := os.WriteFile(path, []byte("a,b,c\nd\ne,f\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	text, err := e.Extract(path, "text/csv")
	if err != nil {
		t.Fatalf("ragged rows should not fail extraction: %v", err)
	}
	if text != "a, b, c\nd\ne, f" {
		t.Errorf("got %q", text)
	}
}

func TestExtract_MissingFile(t *testing.T) {
	e := extract.New()

	_, err := e.Extract(filepath.Join(t.TempDir(), "gone.txt"), "text/plain")
	if !errors.Is(err, ragerr.ErrExtractionFailure) {
		t.Fatalf("got %v, want ErrExtractionFailure", err)
	}
}
