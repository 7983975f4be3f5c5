package pattern

import (
	"fmt"
	"sort"
)

// Transformer applies transforms under one configuration, drawing from one
// source of randomness. It holds no other state, so a call depends only on
// its arguments, Config and Rand.
type Transformer struct {
	Config Config
	Rand   Source
}

func NewTransformer(cfg Config, r Source) (*Transformer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Transformer{Config: cfg, Rand: r}, nil
}

// Identity copies p and e.
func (t *Transformer) Identity(p Pattern, e Envelope) (Pattern, Envelope, error) {
	if err := t.Config.Check(p, e); err != nil {
		return nil, nil, err
	}
	return p.clone(), e.clone(), nil
}

// NoteReverse reverses the order of the notes while every rest stays where
// it is.
func (t *Transformer) NoteReverse(p Pattern, e Envelope) (Pattern, Envelope, error) {
	if err := t.Config.Check(p, e); err != nil {
		return nil, nil, err
	}
	var notes []int
	for _, v := range p {
		if !t.Config.IsRest(v) {
			notes = append(notes, v)
		}
	}
	out := p.clone()
	n := len(notes) - 1
	for i, v := range p {
		if !t.Config.IsRest(v) {
			out[i] = notes[n]
			n--
		}
	}
	return out, e.clone(), nil
}

// TrueReverse plays the whole pattern backwards, rests included.
func (t *Transformer) TrueReverse(p Pattern, e Envelope) (Pattern, Envelope, error) {
	if err := t.Config.Check(p, e); err != nil {
		return nil, nil, err
	}
	return reverse(p), ReverseEnvelope(e), nil
}

func reverse(p Pattern) Pattern {
	if p == nil {
		return nil
	}
	out := make(Pattern, len(p))
	for i, v := range p {
		out[len(p)-1-i] = v
	}
	return out
}

// Inverse mirrors every interval around the note before it: a step up by n
// becomes a step down by n. The first note is kept, rests stay in place and
// results wrap into [0, MaxRange).
func (t *Transformer) Inverse(p Pattern, e Envelope) (Pattern, Envelope, error) {
	if err := t.Config.Check(p, e); err != nil {
		return nil, nil, err
	}
	return t.inverse(p), e.clone(), nil
}

func (t *Transformer) inverse(p Pattern) Pattern {
	out := p.clone()
	var prevIn, prevOut int
	started := false
	for i, v := range p {
		if t.Config.IsRest(v) {
			continue
		}
		if started {
			out[i] = mod(prevOut+(prevIn-v), t.Config.MaxRange)
		}
		started = true
		prevIn, prevOut = v, out[i]
	}
	return out
}

// ReverseInverse is TrueReverse applied to the result of Inverse.
func (t *Transformer) ReverseInverse(p Pattern, e Envelope) (Pattern, Envelope, error) {
	if err := t.Config.Check(p, e); err != nil {
		return nil, nil, err
	}
	return reverse(t.inverse(p)), ReverseEnvelope(e), nil
}

// RestsToNotes fills each rest with probability prob. New notes are drawn
// from the values already in the pattern, weighted by how often they occur;
// when that draw lands on a rest a uniformly random degree is used instead.
//
// The envelope is passed through unchanged even though steps turn into
// notes; callers that need consistent articulation must repair it.
func (t *Transformer) RestsToNotes(p Pattern, e Envelope, prob float64) (Pattern, Envelope, error) {
	if err := t.Config.Check(p, e); err != nil {
		return nil, nil, err
	}
	if err := checkProbability(prob); err != nil {
		return nil, nil, err
	}
	hist := Histogram(p)
	out := p.clone()
	for i, v := range p {
		if !t.Config.IsRest(v) || !chance(t.Rand, prob) {
			continue
		}
		note, err := hist.Sample(t.Rand)
		if err != nil {
			return nil, nil, err
		}
		if t.Config.IsRest(note) {
			if note, err = UniformInt(t.Rand, 0, t.Config.MaxRange-1); err != nil {
				return nil, nil, err
			}
		}
		out[i] = note
	}
	return out, e.clone(), nil
}

// NotesToRests silences notes from left to right, each with probability
// prob, until maxChanges notes have been silenced. The envelope around every
// new rest is repaired with MarkAsRest.
func (t *Transformer) NotesToRests(p Pattern, e Envelope, prob float64, maxChanges int) (Pattern, Envelope, error) {
	if err := t.Config.Check(p, e); err != nil {
		return nil, nil, err
	}
	if err := checkProbability(prob); err != nil {
		return nil, nil, err
	}
	if maxChanges < 0 {
		return nil, nil, fmt.Errorf("%w: max changes %d", ErrInvalidArgument, maxChanges)
	}
	out, env := p.clone(), e.clone()
	changes := 0
	for i, v := range p {
		if changes >= maxChanges {
			break
		}
		if t.Config.IsRest(v) || !chance(t.Rand, prob) {
			continue
		}
		out[i] = t.Config.Rest
		MarkAsRest(env, i)
		changes++
	}
	return out, env, nil
}

// ConvertToSteps narrows every jump of more than two degrees to a step of
// one or two degrees in the same direction.
func (t *Transformer) ConvertToSteps(p Pattern, e Envelope) (Pattern, Envelope, error) {
	return t.respace(p, e, func(d int) bool { return d > 2 || d < -2 }, 1, 2)
}

// ConvertToLeaps widens every move of one or two degrees to a leap of three
// to seven degrees in the same direction. Repeated notes are kept.
func (t *Transformer) ConvertToLeaps(p Pattern, e Envelope) (Pattern, Envelope, error) {
	return t.respace(p, e, func(d int) bool { return d != 0 && d > -3 && d < 3 }, 3, 7)
}

// respace walks the notes of p comparing each against the previous
// (possibly replaced) note. Where replace accepts the distance the note is
// moved lo-hi degrees from the previous one, keeping the direction.
func (t *Transformer) respace(p Pattern, e Envelope, replace func(dist int) bool, lo, hi int) (Pattern, Envelope, error) {
	if err := t.Config.Check(p, e); err != nil {
		return nil, nil, err
	}
	out := p.clone()
	var ref int
	started := false
	for i, v := range p {
		if t.Config.IsRest(v) {
			continue
		}
		if !started {
			started = true
			ref = v
			continue
		}
		if dist := v - ref; replace(dist) {
			n, err := UniformInt(t.Rand, lo, hi)
			if err != nil {
				return nil, nil, err
			}
			v = mod(ref+sign(dist)*n, t.Config.MaxRange)
			out[i] = v
		}
		ref = v
	}
	return out, e.clone(), nil
}

// ConstrainedChaos nudges each step, with probability prob, by a random
// amount in [min, max]. Results are clamped to the valid range, and anything
// pushed below zero becomes a rest. The envelope is passed through.
func (t *Transformer) ConstrainedChaos(p Pattern, e Envelope, prob float64, min, max int) (Pattern, Envelope, error) {
	if err := t.Config.Check(p, e); err != nil {
		return nil, nil, err
	}
	if err := checkProbability(prob); err != nil {
		return nil, nil, err
	}
	if max < min {
		return nil, nil, fmt.Errorf("%w: %d-%d", ErrInvalidRange, min, max)
	}
	out := p.clone()
	for i, v := range p {
		if !chance(t.Rand, prob) {
			continue
		}
		delta, err := UniformInt(t.Rand, min, max)
		if err != nil {
			return nil, nil, err
		}
		out[i] = t.clamp(v + delta)
	}
	return out, e.clone(), nil
}

func (t *Transformer) clamp(v int) int {
	switch {
	case v < 0:
		return t.Config.Rest
	case v > t.Config.MaxRange-1:
		return t.Config.MaxRange - 1
	}
	return v
}

// CompleteChaos replaces each step, with probability prob, by a uniformly
// random draw from [-1, MaxRange-1] where -1 stands for a rest. A rest is
// therefore drawn with probability 1/(MaxRange+1) whatever Config.Rest is.
// The envelope is passed through.
func (t *Transformer) CompleteChaos(p Pattern, e Envelope, prob float64) (Pattern, Envelope, error) {
	if err := t.Config.Check(p, e); err != nil {
		return nil, nil, err
	}
	if err := checkProbability(prob); err != nil {
		return nil, nil, err
	}
	out := p.clone()
	for i := range p {
		if !chance(t.Rand, prob) {
			continue
		}
		// -1 stands for the rest slot whatever the sentinel is
		n, err := UniformInt(t.Rand, -1, t.Config.MaxRange-1)
		if err != nil {
			return nil, nil, err
		}
		out[i] = t.clamp(n)
	}
	return out, e.clone(), nil
}

// Shuffle returns a uniformly random permutation of p. The envelope keeps
// its order and is repaired around the rests of the shuffled pattern.
func (t *Transformer) Shuffle(p Pattern, e Envelope) (Pattern, Envelope, error) {
	if err := t.Config.Check(p, e); err != nil {
		return nil, nil, err
	}
	out := Pattern(Shuffle(t.Rand, p))
	env := e.clone()
	t.Config.repairRests(out, env)
	return out, env, nil
}

// RestAt silences step index and repairs the envelope around it.
func (t *Transformer) RestAt(p Pattern, e Envelope, index int) (Pattern, Envelope, error) {
	if err := t.Config.Check(p, e); err != nil {
		return nil, nil, err
	}
	if index < 0 || index >= len(p) {
		return nil, nil, fmt.Errorf("%w: step %d outside pattern of %d steps", ErrInvalidArgument, index, len(p))
	}
	out, env := p.clone(), e.clone()
	out[index] = t.Config.Rest
	MarkAsRest(env, index)
	return out, env, nil
}

// BreakSustains detaches held steps from their notes: every step that is
// not already full becomes full with probability prob, and its neighbours
// are repaired as for a rest. The pattern is passed through.
func (t *Transformer) BreakSustains(p Pattern, e Envelope, prob float64) (Pattern, Envelope, error) {
	if err := t.Config.Check(p, e); err != nil {
		return nil, nil, err
	}
	if err := checkProbability(prob); err != nil {
		return nil, nil, err
	}
	env := e.clone()
	for i := range env {
		if env[i] != Full && chance(t.Rand, prob) {
			MarkAsRest(env, i)
		}
	}
	return p.clone(), env, nil
}

// ChooseOne draws one of values according to weights.
func (t *Transformer) ChooseOne(values []int, weights []float64) (int, error) {
	return WeightedSample(t.Rand, values, weights)
}

// ChooseMany makes k weighted draws from values.
func (t *Transformer) ChooseMany(values []int, weights []float64, k int) ([]int, error) {
	return WeightedSampleMany(t.Rand, values, weights, k)
}

// WeightTable pairs candidate values with their weights.
type WeightTable struct {
	Values  []int
	Weights []float64
}

// Histogram counts how often each value occurs in p. Values are listed in
// ascending order so draws from the table are reproducible.
func Histogram(p Pattern) WeightTable {
	counts := make(map[int]int)
	for _, v := range p {
		counts[v]++
	}
	var w WeightTable
	for v := range counts {
		w.Values = append(w.Values, v)
	}
	sort.Ints(w.Values)
	for _, v := range w.Values {
		w.Weights = append(w.Weights, float64(counts[v]))
	}
	return w
}

func (w WeightTable) Sample(r Source) (int, error) {
	return WeightedSample(r, w.Values, w.Weights)
}
