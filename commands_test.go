package main

import (
	"bytes"
	"math/rand/v2"
	"strings"
	"testing"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/mrdg/patternmod/host"
	"github.com/mrdg/patternmod/score"
)

func testEnv() *env {
	e := &env{out: &bytes.Buffer{}, score: score.DefaultOptions()}
	e.object = host.NewObject(host.OutletFunc(e.emit), host.WithRand(rand.New(rand.NewPCG(1, 2))))
	return e
}

func TestEval(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{
			input: "pattern 0 1 2 -1",
			want:  "pattern 0 1 2 -1",
		},
		{
			input: "mode note-reverse; pattern 0 1 2 -1",
			want:  "mode 1 note-reverse\npattern 2 1 0 -1",
		},
		{
			input: "envelope attack sustain release; mode true-reverse; pattern 0 1 2",
			want:  "mode 2 true-reverse\npattern 2 1 0\nenvelope 0 0 1 1 0 2 2 0 3",
		},
		{
			input: "envelope 0 0 0; row 2; mode 3; pattern 0 2 4",
			want:  "mode 3 inverse\npattern 0 13 11\nenvelope 0 2 0 1 2 0 2 2 0",
		},
		{
			input: "range 7; mode inverse; pattern 0 2 4",
			want:  "mode 3 inverse\npattern 0 5 3",
		},
		{
			input: "mode choice; weights 0 0 1; pattern 4 5 6",
			want:  "mode 12 choice\npattern 6",
		},
	}

	for _, test := range tests {
		e := testEnv()
		got, err := e.eval(test.input)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", test.input, err)
		}
		if got != test.want {
			t.Errorf("%q: want:\n%s\ngot:\n%s", test.input, test.want, got)
		}
	}
}

func TestEvalErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"bogus 1", "unknown command: bogus"},
		{"mode", "wrong number of arguments"},
		{"mode 1 2", "wrong number of arguments"},
		{"pattern", "need at least 1"},
		{"mode sideways", "unknown mode"},
		{"envelope attack loud", "unknown envelope tag"},
		{"pattern 0 1.5", "whole number"},
		{"mode notes-to-rests; args 1 1; pattern 0 1", "has not been set"},
		{"show", "no pattern has been sent"},
		{"range 0", "range error"},
	}

	for _, test := range tests {
		e := testEnv()
		_, err := e.eval(test.input)
		if err == nil {
			t.Errorf("%q: expected error", test.input)
			continue
		}
		if !strings.Contains(err.Error(), test.want) {
			t.Errorf("%q: want error containing %q, got %q", test.input, test.want, err)
		}
	}
}

func TestEvalKeepsEarlierResults(t *testing.T) {
	e := testEnv()
	got, err := e.eval("pattern 1 2; bogus")
	if err == nil {
		t.Fatal("expected error")
	}
	if got != "pattern 1 2" {
		t.Errorf("want results before the error, got %q", got)
	}
}

func TestConfigCommand(t *testing.T) {
	e := testEnv()
	got, err := e.eval("mode leaps; rest -3; config")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"mode: leaps", "rest: -3", "range: 15"} {
		if !strings.Contains(got, want) {
			t.Errorf("config output missing %q:\n%s", want, got)
		}
	}
}

func TestHelpListsSettings(t *testing.T) {
	e := testEnv()
	got, err := e.eval("help")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(got, "\n")
	want := "settings: args choices envelope mode range rest row scale strict weights"
	if last := lines[len(lines)-1]; last != want {
		t.Errorf("want %q, got %q", want, last)
	}
}

func TestModesCommand(t *testing.T) {
	e := testEnv()
	got, err := e.eval("modes")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(got, "\n")
	if len(lines) != 16 {
		t.Fatalf("want 16 modes, got %d", len(lines))
	}
	if !strings.Contains(lines[15], "break-sustains") {
		t.Errorf("want break-sustains last, got %q", lines[15])
	}
}

func TestMidiCommand(t *testing.T) {
	e := testEnv()
	got, err := e.eval("envelope full attack release; pattern 0 2 4; midi")
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(got, "NoteOn"); n != 2 {
		t.Errorf("want 2 note ons, got %d:\n%s", n, got)
	}
}

func TestRenderFlags(t *testing.T) {
	saved := applyInput
	defer func() { applyInput = saved }()
	applyInput.mode = "note-reverse"
	applyInput.pattern = "0 1 2 3"
	applyInput.envelope = "attack sustain sustain release"

	e := testEnv()
	if err := applyFlags(e); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := score.Write(&buf, e.last.Pattern, e.last.Envelope, e.object.Config(), e.score); err != nil {
		t.Fatal(err)
	}
	s, err := smf.ReadFrom(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Tracks) != 2 {
		t.Errorf("want 2 tracks, got %d", len(s.Tracks))
	}
}
