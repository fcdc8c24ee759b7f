package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "warn")
	l.Info("hidden")
	l.Warn("shown", "k", "v")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "k=v") || !strings.Contains(out, "tada") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestNew_UnknownLevelIsInfo(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "chatty")
	l.Debug("hidden")
	l.Info("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestOpenFile_Appends(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	for _, msg := range []string{"one", "two"} {
		f, err := OpenFile(dir)
		if err != nil {
			t.Fatalf("OpenFile: %v", err)
		}
		New(f, "info").Info(msg)
		if err := f.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	}
	b, err := os.ReadFile(filepath.Join(dir, LogFileName))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), "one") || !strings.Contains(string(b), "two") {
		t.Fatalf("expected both lines, got %q", b)
	}
}
