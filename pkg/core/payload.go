package core

// Payload carries interaction-specific state along a ray lineage. It is a
// small tagged union: the zero value is the empty payload, Refraction is set
// by refractive interfaces, and Custom holds opaque state for externally
// registered behaviors.
type Payload struct {
	Refraction *RefractionState
	Custom     map[string][]byte
}

// IsEmpty reports whether the payload carries no state at all
func (p Payload) IsEmpty() bool {
	return p.Refraction == nil && len(p.Custom) == 0
}

// Clone returns a payload whose mutable parts are independent of the
// receiver. Sibling ray lineages each get their own copy, so a behavior
// mutating its carried state on one side cannot leak into the other.
func (p Payload) Clone() Payload {
	out := p
	if p.Refraction != nil {
		state := RefractionState{
			Stack: append(MediumStack(nil), p.Refraction.Stack...),
			Index: p.Refraction.Index,
		}
		out.Refraction = &state
	}
	if p.Custom != nil {
		out.Custom = make(map[string][]byte, len(p.Custom))
		for k, v := range p.Custom {
			out.Custom[k] = append([]byte(nil), v...)
		}
	}
	return out
}

// RefractionState records the nested refractive media a ray currently
// occupies and the index of refraction it is traveling through.
type RefractionState struct {
	Stack MediumStack
	Index float64
}

// MediumEntry pairs an object's z-order with its refractive index
type MediumEntry struct {
	ZOrder int
	Index  float64
}

// MediumStack is an ordered list of media sorted by descending z-order,
// unique by z-order. The first entry is the innermost (highest precedence)
// medium the ray occupies.
type MediumStack []MediumEntry

// TopIndex returns the refractive index of the innermost medium, or the
// ambient index when the stack is empty.
func (s MediumStack) TopIndex(ambient float64) float64 {
	if len(s) == 0 {
		return ambient
	}
	return s[0].Index
}

// Contains reports whether the stack holds an entry for the given z-order
func (s MediumStack) Contains(zOrder int) bool {
	for _, e := range s {
		if e.ZOrder == zOrder {
			return true
		}
	}
	return false
}

// Insert returns a copy of the stack with the entry added, keeping entries
// sorted by descending z-order. Inserting an existing z-order replaces it.
func (s MediumStack) Insert(entry MediumEntry) MediumStack {
	out := make(MediumStack, 0, len(s)+1)
	inserted := false
	for _, e := range s {
		if e.ZOrder == entry.ZOrder {
			continue
		}
		if !inserted && entry.ZOrder > e.ZOrder {
			out = append(out, entry)
			inserted = true
		}
		out = append(out, e)
	}
	if !inserted {
		out = append(out, entry)
	}
	return out
}

// Remove returns a copy of the stack without the entry for the given z-order
func (s MediumStack) Remove(zOrder int) MediumStack {
	out := make(MediumStack, 0, len(s))
	for _, e := range s {
		if e.ZOrder != zOrder {
			out = append(out, e)
		}
	}
	return out
}

// Toggle returns a copy of the stack with the entry removed if present, or
// inserted in descending z-order if absent. This models crossing the
// boundary of a refractive body: inside becomes outside and vice versa.
func (s MediumStack) Toggle(entry MediumEntry) MediumStack {
	if s.Contains(entry.ZOrder) {
		return s.Remove(entry.ZOrder)
	}
	return s.Insert(entry)
}
