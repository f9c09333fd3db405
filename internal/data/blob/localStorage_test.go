package blob_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chatknowledge/internal/data/blob"
	"chatknowledge/internal/rag/ragerr"
)

func newStorage(t *testing.T, maxBytes int64) *blob.LocalStorage {
	t.Helper()
	s, err := blob.NewLocalStorage(t.TempDir(), maxBytes, []string{"application/pdf", "text/plain"})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestAccepts(t *testing.T) {
	s := newStorage(t, 1024)

	if !s.Accepts("application/pdf") {
		t.Error("pdf should be accepted")
	}
	if s.Accepts("image/png") {
		t.Error("png should be rejected")
	}
}

func TestSave_Roundtrip(t *testing.T) {
	s := newStorage(t, 1024)

	path, err := s.Save("report.txt", strings.NewReader("the content"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if string(data) != "the content" {
		t.Errorf("got %q", data)
	}
}

func TestSave_OversizeLeavesNoPartialFile(t *testing.T) {
	dir := t.TempDir()
	s, err := blob.NewLocalStorage(dir, 10, []string{"text/plain"})
	if err != nil {
		t.Fatal(err)
	}

	_, err = s.Save("big.txt", strings.NewReader(strings.Repeat("x", 11)))
	if !errors.Is(err, ragerr.ErrSizeLimitExceeded) {
		t.Fatalf("got %v, want ErrSizeLimitExceeded", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("partial file left behind: %v", entries)
	}
}

func TestSave_ExactLimitSucceeds(t *testing.T) {
	s := newStorage(t, 10)

	if _, err := s.Save("fits.txt", strings.NewReader(strings.Repeat("x", 10))); err != nil {
		t.Fatalf("payload at the cap should save: %v", err)
	}
}

func TestDelete_MissingFileIsFine(t *testing.T) {
	s := newStorage(t, 1024)

	if err := s.Delete(filepath.Join(t.TempDir(), "never-existed")); err != nil {
		t.Fatalf("deleting a missing file should be a no-op: %v", err)
	}
}

func TestDelete_RemovesFile(t *testing.T) {
	s := newStorage(t, 1024)

	path, err := s.Save("gone.txt", strings.NewReader("bye"))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(path); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("file still exists after delete")
	}
}
