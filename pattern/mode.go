package pattern

import (
	"fmt"
	"math"
	"strconv"
)

// Mode selects the transform a Request is run through.
type Mode int

const (
	Identity Mode = iota
	NoteReverse
	TrueReverse
	Inverse
	ReverseInverse
	RestsToNotes
	NotesToRests
	ConvertToSteps
	ConvertToLeaps
	ConstrainedChaos
	CompleteChaos
	ShuffleSteps
	WeightedChoiceOne
	WeightedChoiceMany
	RestAt
	BreakSustains
)

// Request carries everything a single transform call reads besides the
// Transformer's configuration. Weights and Choices are only read by the
// weighted choice modes.
type Request struct {
	Pattern  Pattern
	Envelope Envelope
	Args     []float64
	Weights  []float64
	Choices  int
}

type mode struct {
	name     string
	help     string
	arity    int  // number of Args expected
	envelope bool // fails with ErrPrecursorNotSet when no envelope is given
	weights  bool // fails with ErrPrecursorNotSet when no weights are given
	run      func(t *Transformer, r Request) (Pattern, Envelope, error)
}

var modes = []mode{
	Identity: {
		name: "identity",
		help: "copy the pattern unchanged",
		run: func(t *Transformer, r Request) (Pattern, Envelope, error) {
			return t.Identity(r.Pattern, r.Envelope)
		},
	},
	NoteReverse: {
		name: "note-reverse",
		help: "reverse the notes, keep rests in place",
		run: func(t *Transformer, r Request) (Pattern, Envelope, error) {
			return t.NoteReverse(r.Pattern, r.Envelope)
		},
	},
	TrueReverse: {
		name: "true-reverse",
		help: "reverse every step",
		run: func(t *Transformer, r Request) (Pattern, Envelope, error) {
			return t.TrueReverse(r.Pattern, r.Envelope)
		},
	},
	Inverse: {
		name: "inverse",
		help: "mirror each interval",
		run: func(t *Transformer, r Request) (Pattern, Envelope, error) {
			return t.Inverse(r.Pattern, r.Envelope)
		},
	},
	ReverseInverse: {
		name: "reverse-inverse",
		help: "inverse, then reverse every step",
		run: func(t *Transformer, r Request) (Pattern, Envelope, error) {
			return t.ReverseInverse(r.Pattern, r.Envelope)
		},
	},
	RestsToNotes: {
		name:  "rests-to-notes",
		help:  "p: fill rests with notes from the pattern",
		arity: 1,
		run: func(t *Transformer, r Request) (Pattern, Envelope, error) {
			return t.RestsToNotes(r.Pattern, r.Envelope, r.Args[0])
		},
	},
	NotesToRests: {
		name:     "notes-to-rests",
		help:     "p max: silence up to max notes",
		arity:    2,
		envelope: true,
		run: func(t *Transformer, r Request) (Pattern, Envelope, error) {
			max, err := intArg(r.Args, 1)
			if err != nil {
				return nil, nil, err
			}
			return t.NotesToRests(r.Pattern, r.Envelope, r.Args[0], max)
		},
	},
	ConvertToSteps: {
		name: "steps",
		help: "narrow jumps to steps of 1-2",
		run: func(t *Transformer, r Request) (Pattern, Envelope, error) {
			return t.ConvertToSteps(r.Pattern, r.Envelope)
		},
	},
	ConvertToLeaps: {
		name: "leaps",
		help: "widen steps to leaps of 3-7",
		run: func(t *Transformer, r Request) (Pattern, Envelope, error) {
			return t.ConvertToLeaps(r.Pattern, r.Envelope)
		},
	},
	ConstrainedChaos: {
		name:  "constrained-chaos",
		help:  "p min max: nudge steps by min-max",
		arity: 3,
		run: func(t *Transformer, r Request) (Pattern, Envelope, error) {
			min, err := intArg(r.Args, 1)
			if err != nil {
				return nil, nil, err
			}
			max, err := intArg(r.Args, 2)
			if err != nil {
				return nil, nil, err
			}
			return t.ConstrainedChaos(r.Pattern, r.Envelope, r.Args[0], min, max)
		},
	},
	CompleteChaos: {
		name:  "complete-chaos",
		help:  "p: replace steps with random values",
		arity: 1,
		run: func(t *Transformer, r Request) (Pattern, Envelope, error) {
			return t.CompleteChaos(r.Pattern, r.Envelope, r.Args[0])
		},
	},
	ShuffleSteps: {
		name: "shuffle",
		help: "random permutation of the steps",
		run: func(t *Transformer, r Request) (Pattern, Envelope, error) {
			return t.Shuffle(r.Pattern, r.Envelope)
		},
	},
	WeightedChoiceOne: {
		name:    "choice",
		help:    "draw one value by weight",
		weights: true,
		run: func(t *Transformer, r Request) (Pattern, Envelope, error) {
			v, err := t.ChooseOne(r.Pattern, r.Weights)
			if err != nil {
				return nil, nil, err
			}
			return Pattern{v}, nil, nil
		},
	},
	WeightedChoiceMany: {
		name:    "choices",
		help:    "draw several values by weight",
		weights: true,
		run: func(t *Transformer, r Request) (Pattern, Envelope, error) {
			vs, err := t.ChooseMany(r.Pattern, r.Weights, r.Choices)
			if err != nil {
				return nil, nil, err
			}
			return vs, nil, nil
		},
	},
	RestAt: {
		name:     "rest-at",
		help:     "i: silence step i",
		arity:    1,
		envelope: true,
		run: func(t *Transformer, r Request) (Pattern, Envelope, error) {
			i, err := intArg(r.Args, 0)
			if err != nil {
				return nil, nil, err
			}
			return t.RestAt(r.Pattern, r.Envelope, i)
		},
	},
	BreakSustains: {
		name:     "break-sustains",
		help:     "p: detach held steps",
		arity:    1,
		envelope: true,
		run: func(t *Transformer, r Request) (Pattern, Envelope, error) {
			return t.BreakSustains(r.Pattern, r.Envelope, r.Args[0])
		},
	},
}

func (m Mode) valid() bool { return m >= 0 && int(m) < len(modes) }

func (m Mode) String() string {
	if m.valid() {
		return modes[m].name
	}
	return "Mode(" + strconv.Itoa(int(m)) + ")"
}

// Help describes the mode and its arguments.
func (m Mode) Help() string {
	if m.valid() {
		return modes[m].help
	}
	return ""
}

// Arity is the number of extra arguments the mode reads.
func (m Mode) Arity() int {
	if m.valid() {
		return modes[m].arity
	}
	return 0
}

// NeedsEnvelope reports whether the mode rewrites articulation and so
// cannot run without an envelope.
func (m Mode) NeedsEnvelope() bool { return m.valid() && modes[m].envelope }

// NeedsWeights reports whether the mode samples from a weight table.
func (m Mode) NeedsWeights() bool { return m.valid() && modes[m].weights }

// Modes lists every mode in numeric order.
func Modes() []Mode {
	ms := make([]Mode, len(modes))
	for i := range ms {
		ms[i] = Mode(i)
	}
	return ms
}

// ModeOf converts a host mode number.
func ModeOf(n int) (Mode, error) {
	if m := Mode(n); m.valid() {
		return m, nil
	}
	return 0, fmt.Errorf("%w: unknown mode %d", ErrInvalidArgument, n)
}

// ParseMode accepts a mode name or number.
func ParseMode(s string) (Mode, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return ModeOf(n)
	}
	for i, m := range modes {
		if m.name == s {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown mode %q", ErrInvalidArgument, s)
}

// Apply runs the transform selected by m.
func (t *Transformer) Apply(m Mode, r Request) (Pattern, Envelope, error) {
	if !m.valid() {
		return nil, nil, fmt.Errorf("%w: unknown mode %d", ErrInvalidArgument, int(m))
	}
	mode := modes[m]
	if len(r.Args) < mode.arity {
		return nil, nil, fmt.Errorf("%w: %s: need %d arguments, got %d",
			ErrPrecursorNotSet, mode.name, mode.arity, len(r.Args))
	}
	if mode.envelope && len(r.Envelope) == 0 {
		return nil, nil, fmt.Errorf("%w: %s needs an envelope", ErrPrecursorNotSet, mode.name)
	}
	if mode.weights && r.Weights == nil {
		return nil, nil, fmt.Errorf("%w: %s needs weights", ErrPrecursorNotSet, mode.name)
	}
	return mode.run(t, r)
}

func intArg(args []float64, i int) (int, error) {
	v := args[i]
	if v != math.Trunc(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: argument %d must be a whole number, got %v", ErrInvalidArgument, i+1, v)
	}
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, fmt.Errorf("%w: argument %d out of range, got %v", ErrInvalidArgument, i+1, v)
	}
	return int(v), nil
}
