// Package rod implements the browser engine port on go-rod with
// optional stealth pages. Handles exposed through the port are
// *rod.Element values; they stay valid until the page mutates.
package rod

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/ysmood/gson"

	"webcli/internal/application/port/output"
	"webcli/internal/domain/entity"
)

var _ output.BrowserPort = (*BrowserAdapter)(nil)

type BrowserConfig struct {
	Headless   bool
	Stealth    bool
	NoSandbox  bool
	DevTools   bool
	SlowMotion time.Duration
	Timeout    time.Duration
	// MaxElements caps one extraction pass; pathological pages can
	// carry tens of thousands of anchors.
	MaxElements int
}

func DefaultConfig() BrowserConfig {
	return BrowserConfig{
		Headless:    true,
		Stealth:     true,
		NoSandbox:   true,
		DevTools:    false,
		SlowMotion:  0,
		Timeout:     10 * time.Second,
		MaxElements: 500,
	}
}

type BrowserAdapter struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page
	log      output.LoggerPort
	cfg      BrowserConfig
}

func NewBrowserAdapter(ctx context.Context, logger output.LoggerPort, cfg BrowserConfig) (*BrowserAdapter, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if cfg.MaxElements <= 0 {
		cfg.MaxElements = DefaultConfig().MaxElements
	}

	l := launcher.New().
		Headless(cfg.Headless).
		Devtools(cfg.DevTools).
		NoSandbox(cfg.NoSandbox).
		Delete("use-mock-keychain").
		Set("disable-web-security").
		Set("allow-running-insecure-content").
		Set("disable-setuid-sandbox")

	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().
		ControlURL(url).
		SlowMotion(cfg.SlowMotion)
	if err := browser.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("failed to connect browser: %w", err)
	}

	var page *rod.Page
	if cfg.Stealth {
		page, err = stealth.Page(browser)
	} else {
		page, err = browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	}
	if err != nil {
		_ = browser.Close()
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	logger.Debug("browser launched", "headless", cfg.Headless, "stealth", cfg.Stealth)

	return &BrowserAdapter{
		browser:  browser,
		launcher: l,
		page:     page,
		log:      logger,
		cfg:      cfg,
	}, nil
}

func (b *BrowserAdapter) Navigate(ctx context.Context, url string) error {
	page := b.page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("page load failed: %w", err)
	}
	page.WaitIdle(5 * time.Second)
	return nil
}

func (b *BrowserAdapter) Back(ctx context.Context) error {
	page := b.page.Context(ctx)
	if err := page.NavigateBack(); err != nil {
		return fmt.Errorf("history navigation failed: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("page load failed: %w", err)
	}
	page.WaitIdle(5 * time.Second)
	return nil
}

func (b *BrowserAdapter) Scroll(ctx context.Context, direction string) error {
	page := b.page.Context(ctx)
	switch strings.ToLower(strings.TrimSpace(direction)) {
	case "down":
		_, _ = page.Eval(`() => window.scrollBy(0, window.innerHeight * 0.9)`)
	case "up":
		_, _ = page.Eval(`() => window.scrollBy(0, -window.innerHeight * 0.9)`)
	default:
		return fmt.Errorf("unknown scroll direction: %s", direction)
	}
	page.WaitIdle(800 * time.Millisecond)
	return nil
}

// extraction queries, one per candidate group. Dedup by DOM path keeps
// an element that matches several groups from appearing twice.
var extractQueries = []string{
	"a[href]",
	"button, [role='button'], input[type='submit'], input[type='button']",
	"input, textarea",
	"select",
}

func (b *BrowserAdapter) Extract(ctx context.Context) ([]entity.RawElement, error) {
	page := b.page.Context(ctx).Timeout(b.cfg.Timeout)

	var result []entity.RawElement
	seen := make(map[string]bool)

	for _, query := range extractQueries {
		if len(result) >= b.cfg.MaxElements {
			break
		}
		elements, err := page.Elements(query)
		if err != nil {
			continue
		}
		for _, el := range elements {
			if len(result) >= b.cfg.MaxElements {
				break
			}
			raw, path, ok := b.describe(el)
			if !ok || seen[path] {
				continue
			}
			seen[path] = true
			result = append(result, raw)
		}
	}

	b.log.Debug("extracted elements", "count", len(result))
	return result, nil
}

// describe captures everything the classifier needs from one node.
// Returns ok=false for invisible or vanished elements.
func (b *BrowserAdapter) describe(el *rod.Element) (entity.RawElement, string, bool) {
	visible, err := el.Visible()
	if err != nil || !visible {
		return entity.RawElement{}, "", false
	}

	pathEl, err := el.ElementX("@")
	if err != nil {
		return entity.RawElement{}, "", false
	}
	path := pathEl.String()

	res, err := el.Eval(`() => {
		const o = { tag: this.tagName.toLowerCase(), attrs: {} };
		for (const a of this.attributes) o.attrs[a.name] = a.value;
		if (this.value !== undefined && typeof this.value === 'string') o.attrs.value = this.value;
		if (o.tag === 'select') {
			o.options = Array.from(this.options).map(x => x.label || x.value);
		}
		return o;
	}`)
	if err != nil {
		return entity.RawElement{}, "", false
	}

	attrs := strMap(res.Value.Get("attrs"))
	options := strSlice(res.Value.Get("options"))

	text, _ := el.Text()
	tag := res.Value.Get("tag").Str()

	raw := entity.RawElement{
		Tag:     tag,
		Role:    attrs["role"],
		Text:    strings.TrimSpace(text),
		Attrs:   attrs,
		Options: options,
		Context: b.surroundingContext(el, tag),
		Handle:  el,
	}
	return raw, path, true
}

// surroundingContext pulls a short hint from the nearest heading or
// titled container, for disambiguating lists of same-text links.
func (b *BrowserAdapter) surroundingContext(el *rod.Element, tag string) string {
	if tag != "a" {
		return ""
	}
	res, err := el.Eval(`() => {
		let n = this.parentElement;
		for (let depth = 0; n && depth < 4; depth++, n = n.parentElement) {
			const h = n.querySelector('h1,h2,h3,h4');
			if (h && h.textContent && !h.contains(this)) {
				return h.textContent.trim().slice(0, 80);
			}
		}
		return '';
	}`)
	if err != nil {
		return ""
	}
	return res.Value.Str()
}

func (b *BrowserAdapter) PageInfo(ctx context.Context) (entity.PageInfo, error) {
	page := b.page.Context(ctx)
	info, err := page.Info()
	if err != nil {
		return entity.PageInfo{}, fmt.Errorf("page info failed: %w", err)
	}

	scrollY := 0
	if res, err := page.Eval(`() => Math.round(window.scrollY)`); err == nil {
		scrollY = res.Value.Int()
	}

	return entity.PageInfo{URL: info.URL, Title: info.Title, ScrollY: scrollY}, nil
}

func (b *BrowserAdapter) HTML(ctx context.Context) (string, error) {
	html, err := b.page.Context(ctx).HTML()
	if err != nil {
		return "", fmt.Errorf("failed to get HTML: %w", err)
	}
	return html, nil
}

func (b *BrowserAdapter) Act(ctx context.Context, handle entity.Handle, action entity.Action, value string) error {
	el, ok := handle.(*rod.Element)
	if !ok || el == nil {
		return fmt.Errorf("handle is not a live element")
	}
	el = el.Context(ctx).Timeout(b.cfg.Timeout)

	switch action {
	case entity.ActionClick:
		if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
			return fmt.Errorf("click failed: %w", err)
		}
		b.page.WaitIdle(2 * time.Second)

	case entity.ActionFill:
		if err := el.SelectAllText(); err == nil {
			_ = el.Input("")
		}
		if err := el.Input(value); err != nil {
			return fmt.Errorf("input failed: %w", err)
		}

	case entity.ActionSelect:
		if err := el.Select([]string{value}, true, rod.SelectorTypeText); err != nil {
			return fmt.Errorf("select failed: %w", err)
		}
		b.page.WaitIdle(1 * time.Second)

	default:
		return fmt.Errorf("unknown action: %s", action)
	}
	return nil
}

func (b *BrowserAdapter) Attached(handle entity.Handle) bool {
	el, ok := handle.(*rod.Element)
	if !ok || el == nil {
		return false
	}
	visible, err := el.Visible()
	return err == nil && visible
}

func strMap(j gson.JSON) map[string]string {
	out := make(map[string]string)
	for k, v := range j.Map() {
		out[k] = v.Str()
	}
	return out
}

func strSlice(j gson.JSON) []string {
	var out []string
	for _, v := range j.Arr() {
		out = append(out, v.Str())
	}
	return out
}

func (b *BrowserAdapter) Close() {
	if b.browser != nil {
		_ = b.browser.Close()
	}
	if b.launcher != nil {
		b.launcher.Kill()
		b.launcher.Cleanup()
	}
}
