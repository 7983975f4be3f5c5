package pattern

// MarkAsRest turns step i of e into an isolated step and repairs its
// neighbours so no held note runs into or out of it: a sustaining step
// before i becomes its release, an attack before i stands alone, a
// sustaining step after i becomes a new attack and a release after i
// stands alone. e is modified in place. Indexes outside e are ignored.
func MarkAsRest(e Envelope, i int) {
	if i < 0 || i >= len(e) {
		return
	}
	e[i] = Full
	if i > 0 {
		switch e[i-1] {
		case Sustain:
			e[i-1] = Release
		case Attack:
			e[i-1] = Full
		}
	}
	if i < len(e)-1 {
		switch e[i+1] {
		case Sustain:
			e[i+1] = Attack
		case Release:
			e[i+1] = Full
		}
	}
}

// ReverseEnvelope returns e in reverse order with attacks and releases
// swapped, so held notes keep their shape when played backwards.
func ReverseEnvelope(e Envelope) Envelope {
	if len(e) == 0 {
		return nil
	}
	out := make(Envelope, len(e))
	for i, t := range e {
		out[len(e)-1-i] = t.mirror()
	}
	return out
}

// repairRests applies MarkAsRest at every rest of p.
func (c Config) repairRests(p Pattern, e Envelope) {
	if len(e) == 0 {
		return
	}
	for _, i := range c.Rests(p) {
		MarkAsRest(e, i)
	}
}
