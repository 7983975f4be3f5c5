package host

import (
	"github.com/mrdg/patternmod/pattern"
)

// Settings is a snapshot of every setting an Object holds.
type Settings struct {
	Rest     int       `yaml:"rest"`
	Range    int       `yaml:"range"`
	Scale    int       `yaml:"scale"`
	Mode     string    `yaml:"mode"`
	Args     []float64 `yaml:"args,omitempty"`
	Envelope []string  `yaml:"envelope,omitempty"`
	Weights  []float64 `yaml:"weights,omitempty"`
	Choices  int       `yaml:"choices"`
	Row      int       `yaml:"row"`
	Strict   bool      `yaml:"strict"`
}

func (o *Object) Settings() Settings {
	o.mu.Lock()
	defer o.mu.Unlock()
	s := Settings{
		Rest:    o.rest.Load().(int),
		Range:   o.maxRange.Load().(int),
		Scale:   o.scale.Load().(int),
		Mode:    o.mode.Load().(pattern.Mode).String(),
		Args:    o.args.Load().([]float64),
		Weights: o.weights.Load().([]float64),
		Choices: o.choices.Load().(int),
		Row:     o.row.Load().(int),
		Strict:  o.strict.Load().(bool),
	}
	for _, t := range o.envelope.Load().(pattern.Envelope) {
		s.Envelope = append(s.Envelope, t.String())
	}
	return s
}

// Messages converts s into the messages that reproduce it on an Object.
// Zero values for rest, range, scale and mode leave the defaults in place.
func (s Settings) Messages() ([]Message, error) {
	var msgs []Message
	param := func(name string, vs ...float64) {
		msgs = append(msgs, SetParam{Name: name, Values: vs})
	}
	if s.Rest != 0 {
		param(PropRest, float64(s.Rest))
	}
	if s.Range != 0 {
		param(PropRange, float64(s.Range))
	}
	if s.Scale != 0 {
		param(PropScale, float64(s.Scale))
	}
	if s.Mode != "" {
		m, err := pattern.ParseMode(s.Mode)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, SetMode{Mode: m})
	}
	if s.Args != nil {
		param(PropArgs, s.Args...)
	}
	if s.Envelope != nil {
		env := make(pattern.Envelope, len(s.Envelope))
		for i, name := range s.Envelope {
			t, err := pattern.ParseTag(name)
			if err != nil {
				return nil, err
			}
			env[i] = t
		}
		msgs = append(msgs, SetEnvelope{Envelope: env})
	}
	if s.Weights != nil {
		param(PropWeights, s.Weights...)
	}
	if s.Choices != 0 {
		param(PropChoices, float64(s.Choices))
	}
	if s.Row != 0 {
		param(PropRow, float64(s.Row))
	}
	if s.Strict {
		param(PropStrict, 1)
	}
	return msgs, nil
}

// Load sends every message that reproduces s.
func (o *Object) Load(s Settings) error {
	msgs, err := s.Messages()
	if err != nil {
		return wrap(err, "invalid settings")
	}
	for _, msg := range msgs {
		if err := o.Send(msg); err != nil {
			return err
		}
	}
	return nil
}
