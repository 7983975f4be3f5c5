package score

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/mrdg/patternmod/pattern"
)

const R = pattern.DefaultRest

func TestNotes(t *testing.T) {
	cfg := pattern.DefaultConfig()
	tests := []struct {
		name string
		p    pattern.Pattern
		e    pattern.Envelope
		want []Note
	}{
		{
			name: "no envelope",
			p:    pattern.Pattern{0, R, 2, 7},
			want: []Note{{Step: 0, Length: 1, Pitch: 60}, {Step: 2, Length: 1, Pitch: 64}, {Step: 3, Length: 1, Pitch: 72}},
		},
		{
			name: "held note",
			p:    pattern.Pattern{0, 5, 5, 5, 1},
			e:    pattern.Envelope{pattern.Full, pattern.Attack, pattern.Sustain, pattern.Release, pattern.Full},
			want: []Note{{Step: 0, Length: 1, Pitch: 60}, {Step: 1, Length: 3, Pitch: 69}, {Step: 4, Length: 1, Pitch: 62}},
		},
		{
			name: "rest cuts a held note",
			p:    pattern.Pattern{4, 4, R, 4},
			e:    pattern.Envelope{pattern.Attack, pattern.Sustain, pattern.Full, pattern.Release},
			want: []Note{{Step: 0, Length: 2, Pitch: 67}, {Step: 3, Length: 1, Pitch: 67}},
		},
		{
			name: "held to the end",
			p:    pattern.Pattern{1, 1},
			e:    pattern.Envelope{pattern.Attack, pattern.Sustain},
			want: []Note{{Step: 0, Length: 2, Pitch: 62}},
		},
	}
	for _, test := range tests {
		got, err := Notes(test.p, test.e, cfg, 60)
		if err != nil {
			t.Fatalf("%s: %v", test.name, err)
		}
		if !reflect.DeepEqual(test.want, got) {
			t.Errorf("%s:\nwant: %+v\ngot:  %+v", test.name, test.want, got)
		}
	}
}

func TestNotesErrors(t *testing.T) {
	cfg := pattern.DefaultConfig()
	if _, err := Notes(pattern.Pattern{14}, nil, cfg, 120); !errors.Is(err, ErrPitchRange) {
		t.Errorf("want ErrPitchRange, got %v", err)
	}
	cfg.ScaleLength = 9
	if _, err := Notes(pattern.Pattern{1}, nil, cfg, 60); !errors.Is(err, pattern.ErrInvalidArgument) {
		t.Errorf("want ErrInvalidArgument, got %v", err)
	}
}

func TestTrack(t *testing.T) {
	opts := DefaultOptions()
	track, err := Track(
		pattern.Pattern{0, 0, 0, R},
		pattern.Envelope{pattern.Full, pattern.Attack, pattern.Release, pattern.Full},
		pattern.DefaultConfig(), opts)
	if err != nil {
		t.Fatal(err)
	}
	step := opts.StepTicks
	want := []struct {
		delta uint32
		msg   midi.Message
	}{
		{0, midi.NoteOn(0, 60, 100)},
		{step, midi.NoteOff(0, 60)},
		{0, midi.NoteOn(0, 60, 100)},
		{2 * step, midi.NoteOff(0, 60)},
	}
	if len(track) != len(want)+1 {
		t.Fatalf("want %d events and end of track, got %d", len(want), len(track))
	}
	for i, w := range want {
		ev := track[i]
		if ev.Delta != w.delta || !bytes.Equal(ev.Message, w.msg) {
			t.Errorf("event %d: want %d %v, got %d %v", i, w.delta, w.msg, ev.Delta, ev.Message)
		}
	}
	if end := track[len(track)-1]; end.Delta != step {
		t.Errorf("end of track after %d ticks, want %d", end.Delta, step)
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	p := pattern.Pattern{0, 2, 4, R, 7}
	if err := Write(&buf, p, nil, pattern.DefaultConfig(), DefaultOptions()); err != nil {
		t.Fatal(err)
	}
	s, err := smf.ReadFrom(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Tracks) != 2 {
		t.Fatalf("want 2 tracks, got %d", len(s.Tracks))
	}
	var ons int
	for _, ev := range s.Tracks[1] {
		var ch, key, vel uint8
		if midi.Message(ev.Message).GetNoteOn(&ch, &key, &vel) {
			ons++
		}
	}
	if ons != 4 {
		t.Errorf("want 4 notes, got %d", ons)
	}

	opts := DefaultOptions()
	opts.Channel = 16
	if err := Write(&buf, p, nil, pattern.DefaultConfig(), opts); !errors.Is(err, pattern.ErrInvalidArgument) {
		t.Errorf("want ErrInvalidArgument, got %v", err)
	}
}
