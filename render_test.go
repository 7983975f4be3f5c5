package main

import (
	"strings"
	"testing"

	"github.com/mrdg/patternmod/host"
	"github.com/mrdg/patternmod/pattern"
)

func TestRenderOutput(t *testing.T) {
	out := host.Output{
		Mode:     pattern.NoteReverse,
		Pattern:  pattern.Pattern{3, -1, 1},
		Envelope: pattern.Envelope{pattern.Attack, pattern.Full, pattern.Release},
	}
	got := renderOutput(out, pattern.DefaultConfig())
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("want 3 rows, got %d:\n%s", len(lines), got)
	}
	for i, want := range []string{"note-reverse", "pattern", "envelope"} {
		if !strings.HasPrefix(lines[i], want) {
			t.Errorf("row %d: want prefix %q, got %q", i, want, lines[i])
		}
	}
	if !strings.Contains(lines[1], "·") {
		t.Errorf("rest not drawn as a dot: %q", lines[1])
	}
	if !strings.Contains(lines[2], "┌─") || !strings.Contains(lines[2], "─┐") {
		t.Errorf("envelope glyphs missing: %q", lines[2])
	}
}

func TestRenderOutputWithoutEnvelope(t *testing.T) {
	out := host.Output{Mode: pattern.Identity, Pattern: pattern.Pattern{0, 1}}
	got := renderOutput(out, pattern.DefaultConfig())
	if n := strings.Count(got, "\n"); n != 1 {
		t.Errorf("want 2 rows, got:\n%s", got)
	}
}
