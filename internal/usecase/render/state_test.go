package render

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webcli/internal/domain/entity"
)

func TestMarshalState_RoundTrip(t *testing.T) {
	original := &entity.PageState{
		URL:     "https://example.com/search?q=x",
		Title:   "Results",
		Seq:     7,
		ScrollY: 420,
		Elements: []entity.Element{
			{
				ID: "L1", Kind: entity.KindLink, Label: "First result",
				Meta:   entity.ElementMeta{Href: "/r/1", Context: "snippet text"},
				Handle: struct{ x int }{1}, // live handle, must not survive
			},
			{
				ID: "I1", Kind: entity.KindInput, Label: "query",
				Meta: entity.ElementMeta{InputType: "search", Value: "x"},
			},
			{
				ID: "S1", Kind: entity.KindSelect, Label: "sort",
				Meta: entity.ElementMeta{Options: []string{"relevance", "date"}},
			},
		},
	}

	text, err := MarshalState(original)
	require.NoError(t, err)

	parsed, err := ParseState([]byte(text))
	require.NoError(t, err)

	assert.Equal(t, original.URL, parsed.URL)
	assert.Equal(t, original.Title, parsed.Title)
	assert.Equal(t, original.Seq, parsed.Seq)
	assert.Equal(t, original.ScrollY, parsed.ScrollY)
	require.Len(t, parsed.Elements, len(original.Elements))

	for i, want := range original.Elements {
		got := parsed.Elements[i]
		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, want.Kind, got.Kind)
		assert.Equal(t, want.Label, got.Label)
		assert.Equal(t, want.Meta, got.Meta)
		assert.Nil(t, got.Handle, "handles never round-trip")
	}
}

func TestMarshalState_HandleNeverSerialized(t *testing.T) {
	state := &entity.PageState{
		URL: "u", Title: "t",
		Elements: []entity.Element{
			{ID: "B1", Kind: entity.KindButton, Label: "Go", Handle: "opaque-live-handle"},
		},
	}

	text, err := MarshalState(state)
	require.NoError(t, err)

	assert.NotContains(t, text, "opaque-live-handle")
	assert.NotContains(t, text, "handle")
}

func TestDump_ElementCount(t *testing.T) {
	dump := Dump(&entity.PageState{
		Elements: []entity.Element{
			{ID: "L1", Kind: entity.KindLink, Label: "a"},
			{ID: "B1", Kind: entity.KindButton, Label: "b"},
		},
	})

	assert.Equal(t, 2, dump.ElementCount)

	data, err := json.Marshal(dump)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"element_count":2`)
}
