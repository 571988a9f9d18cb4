// Package classify maps raw extracted elements to the four semantic
// kinds and derives a human-readable label for each. Elements that
// match no kind are dropped silently; every element that survives is
// guaranteed a non-empty label.
package classify

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"webcli/internal/domain/entity"
)

type Config struct {
	// LabelBudget caps visible-text labels at classification time.
	// Stored labels are otherwise untruncated; display truncation is
	// the renderer's job.
	LabelBudget int
	// MaxOptions bounds how many select option labels are kept.
	MaxOptions int
}

func DefaultConfig() Config {
	return Config{
		LabelBudget: 60,
		MaxOptions:  12,
	}
}

// uselessHrefs are anchors that go nowhere; links carrying them are
// dropped like the elements of no known kind.
var uselessHrefs = map[string]bool{
	"#":                   true,
	"javascript:;":        true,
	"javascript:void(0)":  true,
	"javascript:void(0);": true,
}

// nonDescriptive attribute values that would make useless labels.
var nonDescriptive = map[string]bool{
	"submit": true, "button": true, "text": true, "input": true,
	"true": true, "false": true, "on": true, "off": true,
	"yes": true, "no": true, "1": true, "0": true,
	"undefined": true, "null": true,
}

type Classifier struct {
	cfg Config
}

func New(cfg Config) *Classifier {
	return &Classifier{cfg: cfg}
}

// ClassifyAll classifies a whole extraction pass, preserving order.
// Per-kind ordinals feed the last-resort label ("button-3").
func (c *Classifier) ClassifyAll(raws []entity.RawElement) []entity.Element {
	counts := make(map[entity.Kind]int)
	out := make([]entity.Element, 0, len(raws))
	for _, raw := range raws {
		el, ok := c.classify(raw, counts)
		if !ok {
			continue
		}
		counts[el.Kind]++
		out = append(out, el)
	}
	return out
}

func (c *Classifier) classify(raw entity.RawElement, counts map[entity.Kind]int) (entity.Element, bool) {
	kind, ok := inferKind(raw)
	if !ok {
		return entity.Element{}, false
	}

	meta := entity.ElementMeta{}
	switch kind {
	case entity.KindLink:
		meta.Href = raw.Attr("href")
		if uselessHrefs[meta.Href] {
			return entity.Element{}, false
		}
		meta.Context = collapseSpace(raw.Context)
	case entity.KindInput:
		meta.InputType = inputType(raw)
		meta.Value = raw.Attr("value")
	case entity.KindSelect:
		meta.Value = raw.Attr("value")
		if len(raw.Options) > c.cfg.MaxOptions {
			meta.Options = raw.Options[:c.cfg.MaxOptions]
		} else {
			meta.Options = raw.Options
		}
	}

	label := c.deriveLabel(raw, kind, counts[kind]+1)

	return entity.Element{
		Kind:   kind,
		Label:  label,
		Meta:   meta,
		Handle: raw.Handle,
	}, true
}

// inferKind maps tag/role to a kind. Submit and button inputs are
// buttons; hidden inputs disappear entirely.
func inferKind(raw entity.RawElement) (entity.Kind, bool) {
	tag := strings.ToLower(raw.Tag)
	role := strings.ToLower(raw.Role)

	switch tag {
	case "a":
		return entity.KindLink, true
	case "button":
		return entity.KindButton, true
	case "textarea":
		return entity.KindInput, true
	case "select":
		return entity.KindSelect, true
	case "input":
		switch inputType(raw) {
		case "submit", "button":
			return entity.KindButton, true
		case "hidden":
			return "", false
		default:
			return entity.KindInput, true
		}
	}

	switch role {
	case "link":
		return entity.KindLink, true
	case "button":
		return entity.KindButton, true
	case "textbox", "searchbox":
		return entity.KindInput, true
	case "listbox", "combobox":
		return entity.KindSelect, true
	}

	return "", false
}

func inputType(raw entity.RawElement) string {
	t := strings.ToLower(raw.Attr("type"))
	if t == "" {
		return "text"
	}
	return t
}

// deriveLabel applies the priority chain: accessibility label, visible
// text, placeholder/value, href path segment, structural name. The
// ordinal fallback guarantees non-emptiness.
func (c *Classifier) deriveLabel(raw entity.RawElement, kind entity.Kind, ordinal int) string {
	if label := cleanAttrLabel(raw.Attr("aria-label")); label != "" {
		return label
	}

	if text := collapseSpace(raw.Text); text != "" {
		return capLabel(text, c.cfg.LabelBudget)
	}

	for _, attr := range []string{"title", "alt", "placeholder", "value", "name"} {
		if label := cleanAttrLabel(raw.Attr(attr)); label != "" {
			return expandAbbreviation(label)
		}
	}

	if kind == entity.KindLink {
		if label := hrefLabel(raw.Attr("href")); label != "" {
			return label
		}
	}

	if label := cleanAttrLabel(raw.Attr("id")); label != "" {
		return label
	}
	if label := classHint(raw.Attr("class")); label != "" {
		return label
	}

	return fmt.Sprintf("%s-%d", kind, ordinal)
}

func cleanAttrLabel(val string) string {
	val = collapseSpace(val)
	if len(val) < 2 || nonDescriptive[strings.ToLower(val)] {
		return ""
	}
	val = strings.NewReplacer("_", " ", "-", " ").Replace(val)
	return collapseSpace(val)
}

// expandAbbreviation makes a few common form-field shorthands readable.
func expandAbbreviation(label string) string {
	switch strings.ToLower(label) {
	case "pw":
		return "password"
	case "acct":
		return "username"
	}
	return label
}

// hrefLabel extracts the last non-empty path segment of an href.
func hrefLabel(href string) string {
	switch {
	case href == "", uselessHrefs[href]:
		return ""
	case strings.HasPrefix(href, "mailto:"):
		return "Email"
	case strings.HasPrefix(href, "tel:"):
		return "Phone"
	}

	trimmed := href
	if i := strings.IndexAny(trimmed, "?#"); i >= 0 {
		trimmed = trimmed[:i]
	}
	trimmed = strings.TrimRight(trimmed, "/")

	segment := trimmed
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		segment = trimmed[i+1:]
	}
	if len(segment) < 3 || isAllDigits(segment) || strings.Contains(segment, ".") && strings.Count(segment, ".") > 1 {
		return ""
	}
	return cleanAttrLabel(segment)
}

// classHint picks a semantic token out of a class list, if any.
var semanticClasses = []string{
	"search", "login", "logout", "signin", "signup", "register",
	"submit", "close", "menu", "next", "prev", "home", "settings",
	"profile", "cart", "checkout", "download", "save", "cancel",
	"help", "share", "comment", "reply",
}

func classHint(classes string) string {
	lower := strings.ToLower(classes)
	for _, hint := range semanticClasses {
		if strings.Contains(lower, hint) {
			return hint
		}
	}
	return ""
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// capLabel counts runes; slicing bytes would cut multi-byte labels
// mid-rune.
func capLabel(s string, budget int) string {
	if budget > 0 && utf8.RuneCountInString(s) > budget {
		return strings.TrimSpace(string([]rune(s)[:budget]))
	}
	return s
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
