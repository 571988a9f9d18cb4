package entity

// Kind is the semantic category of an interactive element.
type Kind string

const (
	KindLink   Kind = "link"
	KindButton Kind = "button"
	KindInput  Kind = "input"
	KindSelect Kind = "select"
)

// Prefix returns the identifier prefix for the kind (L1, B1, I1, S1).
func (k Kind) Prefix() string {
	switch k {
	case KindLink:
		return "L"
	case KindButton:
		return "B"
	case KindInput:
		return "I"
	case KindSelect:
		return "S"
	}
	return "?"
}

// Handle is an opaque live reference into the browser engine's DOM.
// It is owned by the engine adapter; everything above it treats the
// handle as valid only until the next extraction.
type Handle any

// Action names an engine-level operation on a handle.
type Action string

const (
	ActionClick  Action = "click"
	ActionFill   Action = "fill"
	ActionSelect Action = "select"
)

// RawElement is one interactive candidate as reported by the engine,
// before classification. Attrs holds whatever attributes the engine
// exposed; Context is best-effort sibling text captured at extraction
// time (used to disambiguate near-duplicate link labels).
type RawElement struct {
	Tag     string
	Role    string
	Text    string
	Attrs   map[string]string
	Options []string
	Context string
	Handle  Handle
}

// Attr returns the named attribute or "".
func (r RawElement) Attr(name string) string {
	if r.Attrs == nil {
		return ""
	}
	return r.Attrs[name]
}

// ElementMeta carries kind-specific attributes needed for rendering
// and for disambiguating fill/select targets.
type ElementMeta struct {
	Href      string   `json:"href,omitempty"`
	InputType string   `json:"input_type,omitempty"`
	Value     string   `json:"value,omitempty"`
	Options   []string `json:"options,omitempty"`
	Context   string   `json:"context,omitempty"`
}

// Element is one classified, identified interactive unit on the
// current page. Label is stored untruncated; the renderer truncates
// for display only. The handle is never serialized.
type Element struct {
	ID     string      `json:"id"`
	Kind   Kind        `json:"kind"`
	Label  string      `json:"label"`
	Meta   ElementMeta `json:"meta"`
	Handle Handle      `json:"-"`
}
