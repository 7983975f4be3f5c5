// Package pattern transforms step patterns of scale degrees and rests
// together with the articulation of each step.
//
// A Pattern holds one value per step: either the rest sentinel of the
// active Config or a scale degree in [0, Config.MaxRange). An Envelope,
// when present, has the same length and tags every step with how it is
// articulated. All transforms return fresh slices and leave their inputs
// untouched.
package pattern

import "fmt"

const (
	DefaultRest        = -1
	DefaultMaxRange    = 15
	DefaultScaleLength = 7
)

// Pattern is a sequence of scale degrees and rests.
type Pattern []int

// Envelope is the per-step articulation of a Pattern.
type Envelope []Tag

// Tag is the articulation state of a single step. The numbering matches the
// values used by sequencer hosts for envelope matrices.
type Tag int

const (
	Full    Tag = iota // an isolated note
	Attack             // first step of a held note
	Sustain            // middle of a held note
	Release            // last step of a held note
)

var tagNames = [...]string{"full", "attack", "sustain", "release"}

func (t Tag) String() string {
	if t.valid() {
		return tagNames[t]
	}
	return fmt.Sprintf("Tag(%d)", int(t))
}

func (t Tag) valid() bool { return t >= Full && t <= Release }

// mirror returns the tag a step carries once time runs backwards.
func (t Tag) mirror() Tag {
	switch t {
	case Attack:
		return Release
	case Release:
		return Attack
	}
	return t
}

// ParseTag accepts a tag name or its number.
func ParseTag(s string) (Tag, error) {
	for i, name := range tagNames {
		if s == name || s == fmt.Sprint(i) {
			return Tag(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown envelope tag %q", ErrInvalidArgument, s)
}

// TagOf converts a host value to a Tag.
func TagOf(n int) (Tag, error) {
	if t := Tag(n); t.valid() {
		return t, nil
	}
	return 0, fmt.Errorf("%w: envelope tag %d not in 0-3", ErrInvalidArgument, n)
}

// Config bounds the values a pattern may hold. It is read by every
// transform and replaced only as a whole.
type Config struct {
	Rest        int // sentinel for a step without a note, always negative
	MaxRange    int // degrees live in [0, MaxRange)
	ScaleLength int // degrees per octave, used when rendering to pitches
}

func DefaultConfig() Config {
	return Config{
		Rest:        DefaultRest,
		MaxRange:    DefaultMaxRange,
		ScaleLength: DefaultScaleLength,
	}
}

func (c Config) Validate() error {
	if c.Rest >= 0 {
		return fmt.Errorf("%w: rest value must be negative, got %d", ErrInvalidArgument, c.Rest)
	}
	if c.MaxRange < 1 {
		return fmt.Errorf("%w: max pattern range must be positive, got %d", ErrInvalidArgument, c.MaxRange)
	}
	if c.ScaleLength < 1 {
		return fmt.Errorf("%w: scale length must be positive, got %d", ErrInvalidArgument, c.ScaleLength)
	}
	return nil
}

func (c Config) IsRest(v int) bool { return v == c.Rest }

// Rests returns the indexes of all rest steps in p.
func (c Config) Rests(p Pattern) []int {
	var idx []int
	for i, v := range p {
		if c.IsRest(v) {
			idx = append(idx, i)
		}
	}
	return idx
}

// Check reports whether p and e form a valid pair under c. An empty
// envelope is always accepted.
func (c Config) Check(p Pattern, e Envelope) error {
	if len(e) > 0 && len(e) != len(p) {
		return fmt.Errorf("%w: pattern has %d steps, envelope has %d", ErrLengthMismatch, len(p), len(e))
	}
	for i, v := range p {
		if !c.IsRest(v) && (v < 0 || v >= c.MaxRange) {
			return fmt.Errorf("%w: step %d holds %d, want rest (%d) or 0-%d",
				ErrInvalidArgument, i, v, c.Rest, c.MaxRange-1)
		}
	}
	for i, t := range e {
		if !t.valid() {
			return fmt.Errorf("%w: step %d has envelope tag %d", ErrInvalidArgument, i, int(t))
		}
	}
	return nil
}

func (p Pattern) clone() Pattern {
	if p == nil {
		return nil
	}
	return append(Pattern(nil), p...)
}

func (e Envelope) clone() Envelope {
	if len(e) == 0 {
		return nil
	}
	return append(Envelope(nil), e...)
}

// mod is the mathematical modulus, always in [0, n).
func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

func sign(n int) int {
	if n < 0 {
		return -1
	}
	return 1
}
