package logger_i_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"chatknowledge/pkg/logger_i"
)

func TestWith_CarriesAttrsIntoRecords(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	log := logger_i.NewLogger("test").With("traceId", "trace-123")
	log.Warn("something happened")

	out := buf.String()
	if !strings.Contains(out, "trace-123") {
		t.Errorf("derived logger dropped its attributes: %s", out)
	}
	if !strings.Contains(out, `"component":"test"`) {
		t.Errorf("component tag missing: %s", out)
	}
}
