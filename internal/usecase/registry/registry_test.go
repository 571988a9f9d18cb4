package registry

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webcli/internal/domain/entity"
)

func sampleElements() []entity.Element {
	return []entity.Element{
		{Kind: entity.KindLink, Label: "First story"},
		{Kind: entity.KindLink, Label: "Second story"},
		{Kind: entity.KindButton, Label: "Vote"},
		{Kind: entity.KindLink, Label: "Third story"},
		{Kind: entity.KindInput, Label: "Search"},
		{Kind: entity.KindSelect, Label: "Sort"},
	}
}

func TestAssign_PerKindCounters(t *testing.T) {
	r := New()

	assigned := r.Assign(sampleElements())

	ids := make([]string, len(assigned))
	for i, el := range assigned {
		ids[i] = el.ID
	}
	assert.Equal(t, []string{"L1", "L2", "B1", "L3", "I1", "S1"}, ids)
}

func TestAssign_UniqueWithinState(t *testing.T) {
	r := New()

	var many []entity.Element
	for i := 0; i < 50; i++ {
		many = append(many,
			entity.Element{Kind: entity.KindLink, Label: fmt.Sprintf("link %d", i)},
			entity.Element{Kind: entity.KindButton, Label: fmt.Sprintf("button %d", i)},
		)
	}
	assigned := r.Assign(many)

	seen := make(map[string]bool)
	for _, el := range assigned {
		assert.False(t, seen[el.ID], "identifier %s assigned twice", el.ID)
		seen[el.ID] = true
	}
}

func TestAssign_DeterministicForSameOrder(t *testing.T) {
	a := New().Assign(sampleElements())
	b := New().Assign(sampleElements())

	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].ID, b[i].ID)
	}
}

func TestResolve_CurrentGeneration(t *testing.T) {
	r := New()
	assigned := r.Assign(sampleElements())

	el, err := r.Resolve("L2")
	require.NoError(t, err)
	assert.Equal(t, "Second story", el.Label)
	assert.Equal(t, assigned[1], el)
}

func TestResolve_CaseInsensitive(t *testing.T) {
	r := New()
	r.Assign(sampleElements())

	el, err := r.Resolve(" b1 ")
	require.NoError(t, err)
	assert.Equal(t, "Vote", el.Label)
}

func TestResolve_UnknownIdentifier(t *testing.T) {
	r := New()
	r.Assign(sampleElements())

	_, err := r.Resolve("L99")
	assert.ErrorIs(t, err, entity.ErrUnknownIdentifier)
}

func TestResolve_StaleAfterReassign(t *testing.T) {
	r := New()
	r.Assign(sampleElements())

	// Next page has only one link: L2/L3/B1/I1/S1 are gone.
	r.Assign([]entity.Element{{Kind: entity.KindLink, Label: "Only link"}})

	_, err := r.Resolve("L3")
	assert.ErrorIs(t, err, entity.ErrStaleIdentifier)

	_, err = r.Resolve("I1")
	assert.ErrorIs(t, err, entity.ErrStaleIdentifier)

	// L1 is reassigned in the new state and resolves to the new element.
	el, err := r.Resolve("L1")
	require.NoError(t, err)
	assert.Equal(t, "Only link", el.Label)

	// Never assigned in any generation.
	_, err = r.Resolve("S9")
	assert.ErrorIs(t, err, entity.ErrUnknownIdentifier)
}

func TestGeneration_Increments(t *testing.T) {
	r := New()
	assert.Equal(t, uint64(0), r.Generation())

	r.Assign(nil)
	assert.Equal(t, uint64(1), r.Generation())

	r.Assign(sampleElements())
	assert.Equal(t, uint64(2), r.Generation())
}

func TestInvalidate_CurrentDroppedSeenKept(t *testing.T) {
	r := New()
	r.Assign(sampleElements())
	r.Invalidate()

	_, err := r.Resolve("L1")
	assert.ErrorIs(t, err, entity.ErrStaleIdentifier)
}
