package render

import (
	"encoding/json"
	"fmt"

	"webcli/internal/domain/entity"
)

// StateDump is the machine-readable serialization of a page state.
// It carries every element field except the live handle, and a parse
// of its JSON reproduces them exactly.
type StateDump struct {
	URL          string           `json:"url"`
	Title        string           `json:"title"`
	Seq          uint64           `json:"seq"`
	ScrollY      int              `json:"scroll_y"`
	ElementCount int              `json:"element_count"`
	Elements     []entity.Element `json:"elements"`
}

// Dump builds the structured record for a page state.
func Dump(state *entity.PageState) StateDump {
	return StateDump{
		URL:          state.URL,
		Title:        state.Title,
		Seq:          state.Seq,
		ScrollY:      state.ScrollY,
		ElementCount: len(state.Elements),
		Elements:     state.Elements,
	}
}

// MarshalState serializes a page state as indented JSON.
func MarshalState(state *entity.PageState) (string, error) {
	data, err := json.MarshalIndent(Dump(state), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal page state: %w", err)
	}
	return string(data), nil
}

// ParseState reconstructs a page state from a dump produced by
// MarshalState. Handles are gone: the parsed state is for inspection,
// not for resolving actions.
func ParseState(data []byte) (*entity.PageState, error) {
	var dump StateDump
	if err := json.Unmarshal(data, &dump); err != nil {
		return nil, fmt.Errorf("parse page state: %w", err)
	}
	return &entity.PageState{
		URL:      dump.URL,
		Title:    dump.Title,
		Seq:      dump.Seq,
		ScrollY:  dump.ScrollY,
		Elements: dump.Elements,
	}, nil
}
