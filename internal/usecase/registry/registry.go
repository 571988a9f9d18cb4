// Package registry assigns short identifiers (L3, B1, I2, S1) to the
// elements of the current page state and resolves them back to live
// elements. Identifiers are scoped to one generation: a fresh Assign
// invalidates everything before it.
package registry

import (
	"fmt"
	"strings"

	"webcli/internal/domain/entity"
)

type Registry struct {
	generation uint64
	current    map[string]entity.Element
	// seen records every identifier string ever assigned in this
	// session, so resolution can tell "page changed under you" from
	// "never existed". The domain of identifier strings is tiny, so
	// this never grows beyond the largest page seen.
	seen map[string]uint64
}

func New() *Registry {
	return &Registry{
		current: make(map[string]entity.Element),
		seen:    make(map[string]uint64),
	}
}

// Assign starts a new generation, numbers the elements in extraction
// order with per-kind counters, and returns them with identifiers set.
// Deterministic for identical input order.
func (r *Registry) Assign(elements []entity.Element) []entity.Element {
	r.generation++
	r.current = make(map[string]entity.Element, len(elements))

	counters := make(map[entity.Kind]int)
	out := make([]entity.Element, len(elements))
	for i, el := range elements {
		counters[el.Kind]++
		el.ID = fmt.Sprintf("%s%d", el.Kind.Prefix(), counters[el.Kind])
		r.current[el.ID] = el
		r.seen[el.ID] = r.generation
		out[i] = el
	}
	return out
}

// Resolve maps an identifier back to the element it names in the
// current generation. Identifiers are case-insensitive on input.
func (r *Registry) Resolve(identifier string) (entity.Element, error) {
	id := strings.ToUpper(strings.TrimSpace(identifier))

	if el, ok := r.current[id]; ok {
		return el, nil
	}
	if _, assignedBefore := r.seen[id]; assignedBefore {
		return entity.Element{}, fmt.Errorf("%w: %s was assigned by a superseded page state", entity.ErrStaleIdentifier, id)
	}
	return entity.Element{}, fmt.Errorf("%w: %s", entity.ErrUnknownIdentifier, id)
}

// Generation returns the current arena generation (0 before the first
// Assign).
func (r *Registry) Generation() uint64 {
	return r.generation
}

// Invalidate drops the current assignment without starting a new
// generation; used on session teardown.
func (r *Registry) Invalidate() {
	r.current = make(map[string]entity.Element)
}
