package host

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"sync/atomic"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/mrdg/patternmod/pattern"
)

const (
	PropRest     = "rest"
	PropRange    = "range"
	PropScale    = "scale"
	PropMode     = "mode"
	PropArgs     = "args"
	PropEnvelope = "envelope"
	PropWeights  = "weights"
	PropChoices  = "choices"
	PropRow      = "row"
	PropStrict   = "strict"
)

// Output is what an Object sends to its outlet after a transform.
type Output struct {
	Mode     pattern.Mode
	Pattern  pattern.Pattern
	Envelope pattern.Envelope
	Row      int // matrix row the envelope is addressed to
}

// Matrix encodes the envelope as the flat "step row tag" triplets a matrix
// control expects.
func (o Output) Matrix() []int {
	out := make([]int, 0, 3*len(o.Envelope))
	for i, t := range o.Envelope {
		out = append(out, i, o.Row, int(t))
	}
	return out
}

type Outlet interface {
	Emit(Output)
}

// OutletFunc adapts a function to an Outlet.
type OutletFunc func(Output)

func (f OutletFunc) Emit(o Output) { f(o) }

// Object processes host messages one at a time. Settings live in Props and
// stay until they are replaced; a pattern message reads them all under the
// same lock that guards updates, so a transform never sees half an update.
type Object struct {
	mu     sync.Mutex
	props  *Props
	rand   pattern.Source
	outlet Outlet
	logger *slog.Logger

	rest     *atomic.Value
	maxRange *atomic.Value
	scale    *atomic.Value
	mode     *atomic.Value
	args     *atomic.Value
	envelope *atomic.Value
	weights  *atomic.Value
	choices  *atomic.Value
	row      *atomic.Value
	strict   *atomic.Value
}

type Option func(*Object)

// WithRand sets the source of randomness. The default is seeded from the
// runtime.
func WithRand(r pattern.Source) Option {
	return func(o *Object) { o.rand = r }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *Object) { o.logger = l }
}

func NewObject(outlet Outlet, opts ...Option) *Object {
	props := NewProps()
	o := &Object{
		props:    props,
		outlet:   outlet,
		rest:     props.MustRegister(PropRest, setInt(-1<<16, -1), pattern.DefaultRest),
		maxRange: props.MustRegister(PropRange, setInt(1, 1<<16), pattern.DefaultMaxRange),
		scale:    props.MustRegister(PropScale, setInt(1, 128), pattern.DefaultScaleLength),
		mode:     props.MustRegister(PropMode, setMode, pattern.Identity),
		args:     props.MustRegister(PropArgs, setFloats, nil),
		envelope: props.MustRegister(PropEnvelope, setEnvelope, nil),
		weights:  props.MustRegister(PropWeights, setWeights, nil),
		choices:  props.MustRegister(PropChoices, setInt(0, 1<<16), 1),
		row:      props.MustRegister(PropRow, setInt(0, 1<<16), 0),
		strict:   props.MustRegister(PropStrict, setBool, false),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.rand == nil {
		o.rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

// Send handles one host message. A failed message leaves settings unchanged
// and emits nothing.
func (o *Object) Send(msg Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	var err error
	switch m := msg.(type) {
	case SetPattern:
		return o.run(m.Pattern)
	case SetEnvelope:
		err = o.props.Set(PropEnvelope, m.Envelope)
	case SetMode:
		err = o.props.Set(PropMode, m.Mode)
	case SetParam:
		err = o.props.Set(m.Name, m.Values)
	default:
		err = fmt.Errorf("%w: unsupported message %T", pattern.ErrInvalidArgument, msg)
	}
	if err != nil {
		o.logger.Warn("message rejected", slog.String("message", fmt.Sprintf("%T", msg)), slog.Any("error", err))
		return wrap(err, "could not update settings")
	}
	return nil
}

func (o *Object) run(p pattern.Pattern) error {
	cfg := o.config()
	mode := o.mode.Load().(pattern.Mode)
	req := pattern.Request{
		Pattern:  p,
		Envelope: o.envelope.Load().(pattern.Envelope),
		Args:     o.args.Load().([]float64),
		Weights:  o.weights.Load().([]float64),
		Choices:  o.choices.Load().(int),
	}
	if mode.NeedsWeights() {
		req.Envelope = nil
	} else if o.strict.Load().(bool) && len(req.Envelope) == 0 {
		return wrap(fmt.Errorf("%w: envelope has not been set", pattern.ErrPrecursorNotSet), mode.String())
	}

	t, err := pattern.NewTransformer(cfg, o.rand)
	if err != nil {
		return wrap(err, "invalid configuration")
	}
	out, env, err := t.Apply(mode, req)
	if err != nil {
		o.logger.Warn("transform failed", slog.String("mode", mode.String()), slog.Any("error", err))
		return wrap(err, mode.String())
	}
	o.logger.Debug("transform applied",
		slog.String("mode", mode.String()),
		slog.Int("steps", len(p)),
		slog.Bool("envelope", len(env) > 0))
	o.outlet.Emit(Output{
		Mode:     mode,
		Pattern:  out,
		Envelope: env,
		Row:      o.row.Load().(int),
	})
	return nil
}

// Params lists the settings a SetParam message may name.
func (o *Object) Params() []string {
	return o.props.Keys()
}

// Config returns the pattern configuration currently in effect.
func (o *Object) Config() pattern.Config {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.config()
}

func (o *Object) config() pattern.Config {
	return pattern.Config{
		Rest:        o.rest.Load().(int),
		MaxRange:    o.maxRange.Load().(int),
		ScaleLength: o.scale.Load().(int),
	}
}

// wrap attaches a user facing message and a tag to err. Missing inputs are
// tagged NotFound, everything else InvalidArgument.
func wrap(err error, msg string) error {
	kind := ftag.InvalidArgument
	if errors.Is(err, pattern.ErrPrecursorNotSet) {
		kind = ftag.NotFound
	}
	return fault.Wrap(err, fmsg.With(msg), ftag.With(kind))
}
