package host

import (
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/mrdg/patternmod/pattern"
)

// Props stores object settings. Each key has a setter that validates a value
// before storing it, so readers only ever see accepted values. All keys must
// be registered before any reads take place.
type Props struct {
	properties map[string]*atomic.Value
	setters    map[string]setter
}

func NewProps() *Props {
	return &Props{
		properties: make(map[string]*atomic.Value),
		setters:    make(map[string]setter),
	}
}

// Set updates the property with value. The key has to be registered first using Register.
func (p *Props) Set(key string, value any) error {
	prop, ok := p.properties[key]
	if !ok {
		return fmt.Errorf("unknown property %s", key)
	}
	set, ok := p.setters[key]
	if !ok {
		return fmt.Errorf("unknown property %s", key)
	}
	if err := set(value, prop); err != nil {
		return fmt.Errorf("set property %s: %w", key, err)
	}
	return nil
}

func (p *Props) Get(key string) (any, error) {
	prop, ok := p.properties[key]
	if !ok {
		return nil, fmt.Errorf("unknown property %s", key)
	}
	return prop.Load(), nil
}

// Keys lists the registered properties in sorted order.
func (p *Props) Keys() []string {
	keys := make([]string, 0, len(p.properties))
	for k := range p.properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Register adds a new property.
func (p *Props) Register(key string, set setter, init any) (*atomic.Value, error) {
	var prop atomic.Value
	p.properties[key] = &prop
	p.setters[key] = set
	return &prop, set(init, &prop)
}

func (p *Props) MustRegister(key string, set setter, init any) *atomic.Value {
	if prop, err := p.Register(key, set, init); err != nil {
		panic(err)
	} else {
		return prop
	}
}

type setter func(val any, dest *atomic.Value) error

func setInt(min, max int) setter {
	return func(v any, dest *atomic.Value) error {
		n, err := toInt(v)
		if err != nil {
			return err
		}
		if n < min || n > max {
			return fmt.Errorf("%w: %d not in range %d-%d", pattern.ErrInvalidArgument, n, min, max)
		}
		dest.Store(n)
		return nil
	}
}

func setBool(v any, dest *atomic.Value) error {
	switch b := v.(type) {
	case bool:
		dest.Store(b)
		return nil
	case []float64:
		if len(b) == 1 {
			dest.Store(b[0] != 0)
			return nil
		}
	}
	n, err := toInt(v)
	if err != nil {
		return err
	}
	dest.Store(n != 0)
	return nil
}

func setMode(v any, dest *atomic.Value) error {
	if m, ok := v.(pattern.Mode); ok {
		if _, err := pattern.ModeOf(int(m)); err != nil {
			return err
		}
		dest.Store(m)
		return nil
	}
	n, err := toInt(v)
	if err != nil {
		return err
	}
	m, err := pattern.ModeOf(n)
	if err != nil {
		return err
	}
	dest.Store(m)
	return nil
}

func setFloats(v any, dest *atomic.Value) error {
	switch fs := v.(type) {
	case []float64:
		dest.Store(append([]float64(nil), fs...))
	case []int:
		out := make([]float64, len(fs))
		for i, n := range fs {
			out[i] = float64(n)
		}
		dest.Store(out)
	case nil:
		dest.Store([]float64(nil))
	default:
		return fmt.Errorf("value is not a list of numbers: %v", v)
	}
	return nil
}

// setWeights accepts a list of non-negative numbers. Storing nil marks the
// weights as never set.
func setWeights(v any, dest *atomic.Value) error {
	var tmp atomic.Value
	if err := setFloats(v, &tmp); err != nil {
		return err
	}
	ws := tmp.Load().([]float64)
	for i, w := range ws {
		if w < 0 {
			return fmt.Errorf("%w: weight %d is negative: %v", pattern.ErrInvalidArgument, i, w)
		}
	}
	dest.Store(ws)
	return nil
}

func setEnvelope(v any, dest *atomic.Value) error {
	switch e := v.(type) {
	case pattern.Envelope:
		dest.Store(append(pattern.Envelope(nil), e...))
		return nil
	case []float64:
		env := make(pattern.Envelope, len(e))
		for i, f := range e {
			if f != float64(int(f)) {
				return fmt.Errorf("%w: envelope tag %v is not a whole number", pattern.ErrInvalidArgument, f)
			}
			t, err := pattern.TagOf(int(f))
			if err != nil {
				return err
			}
			env[i] = t
		}
		dest.Store(env)
		return nil
	case nil:
		dest.Store(pattern.Envelope(nil))
		return nil
	}
	return fmt.Errorf("value is not an envelope: %v", v)
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("%w: %v is not a whole number", pattern.ErrInvalidArgument, n)
		}
		return int(n), nil
	case []float64:
		if len(n) == 1 {
			return toInt(n[0])
		}
	}
	return 0, fmt.Errorf("value is not an int: %v", v)
}
