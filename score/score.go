// Package score turns transformed patterns into MIDI. Scale degrees are
// mapped to pitches through a scale, and the envelope decides which steps
// start, hold and end a note.
package score

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/mrdg/patternmod/pattern"
)

// Pulses per quarter note
const PPQN = 960

var ErrPitchRange = errors.New("pitch outside MIDI range")

var scales = map[int][]int{
	5:  {0, 2, 4, 7, 9},
	6:  {0, 2, 4, 6, 8, 10},
	7:  {0, 2, 4, 5, 7, 9, 11},
	8:  {0, 2, 3, 5, 6, 8, 9, 11},
	12: {0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
}

// Scale returns the semitone offsets of a scale with n degrees per octave:
// major pentatonic, whole tone, major, octatonic or chromatic.
func Scale(n int) ([]int, error) {
	s, ok := scales[n]
	if !ok {
		return nil, fmt.Errorf("%w: no scale with %d degrees", pattern.ErrInvalidArgument, n)
	}
	return s, nil
}

type Options struct {
	Root      int     // MIDI note of degree 0
	Channel   uint8   // 0-15
	Velocity  uint8   // 1-127
	BPM       float64 // tempo of the tempo track
	StepTicks uint32  // length of one step; PPQN/4 is a 16th note
}

func DefaultOptions() Options {
	return Options{
		Root:      60,
		Channel:   0,
		Velocity:  100,
		BPM:       120,
		StepTicks: PPQN / 4,
	}
}

func (o Options) validate() error {
	switch {
	case o.StepTicks == 0:
		return fmt.Errorf("%w: step length must be positive", pattern.ErrInvalidArgument)
	case o.Channel > 15:
		return fmt.Errorf("%w: channel %d", pattern.ErrInvalidArgument, o.Channel)
	case o.Velocity == 0 || o.Velocity > 127:
		return fmt.Errorf("%w: velocity %d", pattern.ErrInvalidArgument, o.Velocity)
	case o.BPM <= 0:
		return fmt.Errorf("%w: tempo %v", pattern.ErrInvalidArgument, o.BPM)
	}
	return nil
}

// Note is a pitch held for a number of steps.
type Note struct {
	Step   int // first step of the note
	Length int // number of steps held
	Pitch  int // MIDI note number
}

// Notes reads the notes played by p. Without an envelope every note lasts a
// single step. With one, an attack starts a note that sustains until its
// release, a rest, or the next attack; full steps stand alone. A sustain or
// release that follows no attack starts a note of its own.
func Notes(p pattern.Pattern, e pattern.Envelope, cfg pattern.Config, root int) ([]Note, error) {
	if err := cfg.Check(p, e); err != nil {
		return nil, err
	}
	scale, err := Scale(cfg.ScaleLength)
	if err != nil {
		return nil, err
	}
	var notes []Note
	var held *Note
	closeHeld := func() {
		if held != nil {
			notes = append(notes, *held)
			held = nil
		}
	}
	for i, v := range p {
		if cfg.IsRest(v) {
			closeHeld()
			continue
		}
		pitch := root + 12*(v/len(scale)) + scale[v%len(scale)]
		if pitch < 0 || pitch > 127 {
			return nil, fmt.Errorf("%w: degree %d at step %d is note %d", ErrPitchRange, v, i, pitch)
		}
		tag := pattern.Full
		if len(e) > 0 {
			tag = e[i]
		}
		switch tag {
		case pattern.Full:
			closeHeld()
			notes = append(notes, Note{Step: i, Length: 1, Pitch: pitch})
		case pattern.Attack:
			closeHeld()
			held = &Note{Step: i, Length: 1, Pitch: pitch}
		case pattern.Sustain, pattern.Release:
			if held == nil {
				held = &Note{Step: i, Length: 1, Pitch: pitch}
			} else {
				held.Length++
			}
			if tag == pattern.Release {
				closeHeld()
			}
		}
	}
	closeHeld()
	return notes, nil
}

type event struct {
	tick uint32
	off  bool
	msg  midi.Message
}

// Track renders p and e as one SMF track lasting len(p) steps.
func Track(p pattern.Pattern, e pattern.Envelope, cfg pattern.Config, opts Options) (smf.Track, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	notes, err := Notes(p, e, cfg, opts.Root)
	if err != nil {
		return nil, err
	}
	var events []event
	for _, n := range notes {
		start := uint32(n.Step) * opts.StepTicks
		end := uint32(n.Step+n.Length) * opts.StepTicks
		events = append(events,
			event{tick: start, msg: midi.NoteOn(opts.Channel, uint8(n.Pitch), opts.Velocity)},
			event{tick: end, off: true, msg: midi.NoteOff(opts.Channel, uint8(n.Pitch))},
		)
	}
	// note offs go first so back to back notes of one pitch don't overlap
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return events[i].off && !events[j].off
	})

	var track smf.Track
	var last uint32
	for _, ev := range events {
		track.Add(ev.tick-last, ev.msg)
		last = ev.tick
	}
	track.Close(uint32(len(p))*opts.StepTicks - last)
	return track, nil
}

// Render builds a two track SMF: tempo, then the notes of p and e.
func Render(p pattern.Pattern, e pattern.Envelope, cfg pattern.Config, opts Options) (*smf.SMF, error) {
	notes, err := Track(p, e, cfg, opts)
	if err != nil {
		return nil, err
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(PPQN)

	var tempo smf.Track
	tempo.Add(0, smf.MetaMeter(4, 4))
	tempo.Add(0, smf.MetaTempo(opts.BPM))
	tempo.Close(0)
	if err := s.Add(tempo); err != nil {
		return nil, fmt.Errorf("add tempo track: %w", err)
	}
	if err := s.Add(notes); err != nil {
		return nil, fmt.Errorf("add note track: %w", err)
	}
	return s, nil
}

// Write renders p and e and writes the SMF to w.
func Write(w io.Writer, p pattern.Pattern, e pattern.Envelope, cfg pattern.Config, opts Options) error {
	s, err := Render(p, e, cfg, opts)
	if err != nil {
		return err
	}
	_, err = s.WriteTo(w)
	return err
}
