package entity

// PageInfo is the engine's view of the current page metadata.
type PageInfo struct {
	URL     string
	Title   string
	ScrollY int
}

// PageState is an immutable snapshot of one extraction pass. Seq is a
// monotonic generation number scoped to the session; identifiers in
// Elements are valid for resolution only while this snapshot is the
// session's current state.
type PageState struct {
	URL      string    `json:"url"`
	Title    string    `json:"title"`
	Seq      uint64    `json:"seq"`
	ScrollY  int       `json:"scroll_y"`
	Elements []Element `json:"elements"`
}

// ByKind returns the elements of one kind in extraction order.
func (p *PageState) ByKind(k Kind) []Element {
	var out []Element
	for _, el := range p.Elements {
		if el.Kind == k {
			out = append(out, el)
		}
	}
	return out
}

// HistoryEntry is what `back` returns to: a URL and the scroll offset
// it was left at. Identifiers are never stored; back always triggers
// a fresh extraction.
type HistoryEntry struct {
	URL     string
	ScrollY int
}
