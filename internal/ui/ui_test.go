package ui

import (
	"strings"
	"testing"
)

func TestProgressBar(t *testing.T) {
	got := ProgressBar(1, 4, 8)
	if got != "[██░░░░░░] 1/4" {
		t.Fatalf("unexpected bar %q", got)
	}
	if got := ProgressBar(0, 0, 1); got != "[░░░░░] 0/1" {
		t.Fatalf("expected clamped bar, got %q", got)
	}
	if got := ProgressBar(9, 3, 5); !strings.HasPrefix(got, "[█████]") {
		t.Fatalf("expected full bar, got %q", got)
	}
}

func TestSetTheme_FallsBackToClassic(t *testing.T) {
	t.Cleanup(func() { SetTheme("classic") })

	SetTheme("no-such-theme")
	if Current().Name != "classic" {
		t.Fatalf("expected classic, got %q", Current().Name)
	}
	SetTheme("NEON")
	if Current().Box(true) != "◼" {
		t.Fatalf("expected neon glyphs, got %q", Current().Box(true))
	}
}

func TestPanel_ContainsContent(t *testing.T) {
	out := Panel("hello")
	if !strings.Contains(out, "hello") || len(strings.Split(out, "\n")) != 3 {
		t.Fatalf("unexpected panel:\n%s", out)
	}
}
