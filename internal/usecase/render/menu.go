// Package render formats a page state as the BBS-style textual menu
// and as a machine-readable state dump. Rendering is pure: same page
// state in, byte-identical text out.
package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"webcli/internal/domain/entity"
)

type Config struct {
	// Per-kind display caps. Elements beyond the cap are not lost;
	// the renderer appends a count-remaining marker with a scroll
	// hint instead of silently truncating.
	MaxLinks   int
	MaxButtons int
	MaxInputs  int
	MaxSelects int

	// LabelWidth truncates labels for display only.
	LabelWidth int
	// IDWidth left-pads identifiers so columns line up.
	IDWidth int
	// URLWidth truncates the header URL line.
	URLWidth int
}

func DefaultConfig() Config {
	return Config{
		MaxLinks:   25,
		MaxButtons: 15,
		MaxInputs:  20,
		MaxSelects: 10,
		LabelWidth: 60,
		IDWidth:    4,
		URLWidth:   70,
	}
}

// Fixed group order for the menu.
var groupOrder = []struct {
	kind   entity.Kind
	header string
	plural string
}{
	{entity.KindLink, "LINKS", "links"},
	{entity.KindButton, "BUTTONS", "buttons"},
	{entity.KindInput, "INPUT FIELDS", "inputs"},
	{entity.KindSelect, "DROPDOWNS", "selects"},
}

const rule = "------------------------------------------------------------"

type Renderer struct {
	cfg Config
}

func New(cfg Config) *Renderer {
	return &Renderer{cfg: cfg}
}

// Menu renders the full BBS-style view of a page state.
func (r *Renderer) Menu(state *entity.PageState) string {
	if state == nil {
		return "No page loaded. Use 'goto <url>' to navigate."
	}

	var b strings.Builder

	title := state.Title
	if title == "" {
		title = "(No Title)"
	}
	b.WriteString("============================================================\n")
	fmt.Fprintf(&b, " %s\n", truncate(title, r.cfg.URLWidth))
	fmt.Fprintf(&b, " %s\n", truncate(state.URL, r.cfg.URLWidth))
	b.WriteString("============================================================\n")
	fmt.Fprintf(&b, "%d interactive elements\n", len(state.Elements))

	for _, group := range groupOrder {
		elements := state.ByKind(group.kind)
		if len(elements) == 0 {
			continue
		}

		limit := r.capFor(group.kind)
		shown := elements
		if limit > 0 && len(elements) > limit {
			shown = elements[:limit]
		}

		b.WriteString("\n")
		if len(shown) < len(elements) {
			fmt.Fprintf(&b, "%s (%d total, showing first %d)\n", group.header, len(elements), len(shown))
		} else {
			fmt.Fprintf(&b, "%s (%d)\n", group.header, len(elements))
		}
		b.WriteString(rule + "\n")

		for _, el := range shown {
			b.WriteString(r.line(el))
		}

		if remaining := len(elements) - len(shown); remaining > 0 {
			fmt.Fprintf(&b, "  ... and %d more %s ('scroll down' to reveal)\n", remaining, group.plural)
		}
	}

	b.WriteString("\n" + rule + "\n")
	b.WriteString("commands: goto <url> | click <id> | fill <id> <text> | select <id> <value>\n")
	b.WriteString("          scroll up|down | back | read | state | search <query>\n")

	return b.String()
}

// line renders one element entry, plus the context snippet for links
// when extraction captured one.
func (r *Renderer) line(el entity.Element) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  [%-*s] %s", r.cfg.IDWidth, el.ID, truncate(el.Label, r.cfg.LabelWidth))

	switch el.Kind {
	case entity.KindInput:
		fmt.Fprintf(&b, " (%s)", el.Meta.InputType)
	case entity.KindLink:
		if el.Meta.Context != "" {
			b.WriteString("\n")
			fmt.Fprintf(&b, "  %-*s  %s", r.cfg.IDWidth+2, "", truncate(el.Meta.Context, r.cfg.LabelWidth))
		}
	}
	b.WriteString("\n")
	return b.String()
}

// Compact renders the minimal markdown-ish view used for LLM context.
func (r *Renderer) Compact(state *entity.PageState) string {
	if state == nil {
		return "No page loaded"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", state.Title)
	fmt.Fprintf(&b, "URL: %s\n", state.URL)

	for _, group := range groupOrder {
		elements := state.ByKind(group.kind)
		if len(elements) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n", group.header)
		limit := r.capFor(group.kind)
		for i, el := range elements {
			if limit > 0 && i >= limit {
				fmt.Fprintf(&b, "... %d more\n", len(elements)-i)
				break
			}
			fmt.Fprintf(&b, "[%s] %s\n", el.ID, truncate(el.Label, r.cfg.LabelWidth))
		}
	}

	b.WriteString("\nActions: click(id), fill(id, value), scroll(up/down)\n")
	return b.String()
}

func (r *Renderer) capFor(kind entity.Kind) int {
	switch kind {
	case entity.KindLink:
		return r.cfg.MaxLinks
	case entity.KindButton:
		return r.cfg.MaxButtons
	case entity.KindInput:
		return r.cfg.MaxInputs
	case entity.KindSelect:
		return r.cfg.MaxSelects
	}
	return 0
}

// truncate caps display width in runes; byte slicing would split
// multi-byte labels mid-rune.
func truncate(s string, width int) string {
	if width <= 0 || utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
