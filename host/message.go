// Package host adapts the pattern transforms to a patcher-style host: the
// host delivers one message at a time, settings persist between messages,
// and every pattern that arrives is transformed under the current mode and
// sent to an outlet.
package host

import "github.com/mrdg/patternmod/pattern"

// Message is one input delivered by the host.
type Message interface {
	isMessage()
}

// SetPattern delivers a pattern and triggers a transform.
type SetPattern struct {
	Pattern pattern.Pattern
}

// SetEnvelope replaces the stored envelope.
type SetEnvelope struct {
	Envelope pattern.Envelope
}

// SetMode selects the transform applied to the next pattern.
type SetMode struct {
	Mode pattern.Mode
}

// SetParam updates a named setting (args, weights, choices, rest, range,
// scale, row, strict).
type SetParam struct {
	Name   string
	Values []float64
}

func (SetPattern) isMessage()  {}
func (SetEnvelope) isMessage() {}
func (SetMode) isMessage()     {}
func (SetParam) isMessage()    {}
