// Package session is the command dispatcher: a state machine over a
// single active page state. Every action with potential side effects
// produces a brand-new extraction generation; identifier stability is
// traded for correctness (no stale-handle bugs).
package session

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"webcli/internal/application/port/input"
	"webcli/internal/application/port/output"
	"webcli/internal/domain/entity"
	"webcli/internal/usecase/classify"
	"webcli/internal/usecase/history"
	"webcli/internal/usecase/registry"
	"webcli/internal/usecase/render"
)

var _ input.Commander = (*Session)(nil)

// searchEngines are the bot-friendly providers for the search command.
var searchEngines = map[string]string{
	"brave": "https://search.brave.com/search?q=%s",
	"ddg":   "https://html.duckduckgo.com/html/?q=%s",
	"searx": "https://searx.be/search?q=%s",
}

const defaultSearchEngine = "brave"

type Config struct {
	// NavTimeout bounds every engine call that may wait on network or
	// render completion.
	NavTimeout time.Duration
	// ExtractRetries is the budget of extraction attempts per command
	// before the session is considered unrecoverable and torn down.
	ExtractRetries int
	// ReadMaxLength caps read output; 0 means the DefaultConfig cap.
	ReadMaxLength int
	// SearchEngine names the default search provider.
	SearchEngine string

	Classifier classify.Config
	Renderer   render.Config
}

func DefaultConfig() Config {
	return Config{
		NavTimeout:     30 * time.Second,
		ExtractRetries: 3,
		ReadMaxLength:  5000,
		SearchEngine:   defaultSearchEngine,
		Classifier:     classify.DefaultConfig(),
		Renderer:       render.DefaultConfig(),
	}
}

// Session owns the engine + current page state + identifier registry
// triple. Commands are serialized: only one operation is in flight at
// a time.
type Session struct {
	mu sync.Mutex

	browser output.BrowserPort
	content output.ContentExtractor
	logger  output.LoggerPort
	cfg     Config

	classifier *classify.Classifier
	renderer   *render.Renderer
	registry   *registry.Registry
	history    *history.Stack

	state  *entity.PageState
	seq    uint64
	closed bool
}

func New(browser output.BrowserPort, content output.ContentExtractor, logger output.LoggerPort, cfg Config) *Session {
	if cfg.NavTimeout <= 0 {
		cfg.NavTimeout = DefaultConfig().NavTimeout
	}
	if cfg.ExtractRetries <= 0 {
		cfg.ExtractRetries = DefaultConfig().ExtractRetries
	}
	if cfg.ReadMaxLength <= 0 {
		cfg.ReadMaxLength = DefaultConfig().ReadMaxLength
	}
	if cfg.SearchEngine == "" {
		cfg.SearchEngine = defaultSearchEngine
	}
	if cfg.Classifier == (classify.Config{}) {
		cfg.Classifier = classify.DefaultConfig()
	}
	if cfg.Renderer == (render.Config{}) {
		cfg.Renderer = render.DefaultConfig()
	}

	return &Session{
		browser:    browser,
		content:    content,
		logger:     logger,
		cfg:        cfg,
		classifier: classify.New(cfg.Classifier),
		renderer:   render.New(cfg.Renderer),
		registry:   registry.New(),
		history:    history.New(),
	}
}

// Goto navigates to a URL and swaps in a fresh page state. On engine
// failure the prior state remains current; history is pushed only when
// navigation succeeded from a real prior page.
func (s *Session) Goto(ctx context.Context, rawURL string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gotoLocked(ctx, rawURL)
}

func (s *Session) gotoLocked(ctx context.Context, rawURL string) (string, error) {
	if s.closed {
		return "", entity.ErrSessionClosed
	}

	target := normalizeURL(rawURL)

	navCtx, cancel := context.WithTimeout(ctx, s.cfg.NavTimeout)
	defer cancel()
	if err := s.browser.Navigate(navCtx, target); err != nil {
		s.logger.Warn("navigation failed", "url", target, "error", err.Error())
		return "", fmt.Errorf("%w: %s: %v", entity.ErrNavigation, target, err)
	}

	prev := s.state
	next, err := s.extractLocked(ctx)
	if err != nil {
		return "", err
	}

	if prev != nil {
		s.history.Push(entity.HistoryEntry{URL: prev.URL, ScrollY: prev.ScrollY})
	}
	s.state = next

	s.logger.Info("navigated", "url", next.URL, "elements", len(next.Elements), "seq", next.Seq)
	return s.renderer.Menu(next), nil
}

// Click resolves the identifier against the current registry, acts on
// the live handle, and treats the result as an implicit re-extraction.
// Navigation caused by the click is detected by URL change only.
func (s *Session) Click(ctx context.Context, identifier string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", entity.ErrSessionClosed
	}

	el, err := s.registry.Resolve(identifier)
	if err != nil {
		return "", err
	}
	if !s.browser.Attached(el.Handle) {
		return "", fmt.Errorf("%w: %s", entity.ErrNotInteractable, el.ID)
	}

	prev := s.state

	actCtx, cancel := context.WithTimeout(ctx, s.cfg.NavTimeout)
	defer cancel()
	if err := s.browser.Act(actCtx, el.Handle, entity.ActionClick, ""); err != nil {
		return "", fmt.Errorf("%w: %s: %v", entity.ErrNotInteractable, el.ID, err)
	}

	next, err := s.extractLocked(ctx)
	if err != nil {
		return "", err
	}

	if prev != nil && next.URL != prev.URL {
		s.history.Push(entity.HistoryEntry{URL: prev.URL, ScrollY: prev.ScrollY})
	}
	s.state = next

	s.logger.Info("clicked", "id", el.ID, "url", next.URL, "seq", next.Seq)
	return s.renderer.Menu(next), nil
}

// Fill types a value into an input. The page is re-extracted: a value
// change alone rarely alters topology, but autocomplete and reactive
// forms mutate the DOM and a stale menu is worse than renumbering.
func (s *Session) Fill(ctx context.Context, identifier, value string) (string, error) {
	return s.act(ctx, identifier, value, entity.ActionFill, "fill", entity.KindInput)
}

// SelectOption picks a dropdown option by its visible label or value.
func (s *Session) SelectOption(ctx context.Context, identifier, value string) (string, error) {
	return s.act(ctx, identifier, value, entity.ActionSelect, "select", entity.KindSelect)
}

func (s *Session) act(ctx context.Context, identifier, value string, action entity.Action, verb string, want entity.Kind) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", entity.ErrSessionClosed
	}

	el, err := s.registry.Resolve(identifier)
	if err != nil {
		return "", err
	}
	if el.Kind != want {
		return "", fmt.Errorf("%w: cannot %s a %s (%s)", entity.ErrWrongKind, verb, el.Kind, el.ID)
	}
	if !s.browser.Attached(el.Handle) {
		return "", fmt.Errorf("%w: %s", entity.ErrNotInteractable, el.ID)
	}

	actCtx, cancel := context.WithTimeout(ctx, s.cfg.NavTimeout)
	defer cancel()
	if err := s.browser.Act(actCtx, el.Handle, action, value); err != nil {
		return "", fmt.Errorf("%w: %s: %v", entity.ErrNotInteractable, el.ID, err)
	}

	next, err := s.extractLocked(ctx)
	if err != nil {
		return "", err
	}
	s.state = next

	s.logger.Info(verb+" done", "id", el.ID, "seq", next.Seq)
	return s.renderer.Menu(next), nil
}

// Scroll moves the viewport and merges newly revealed elements by
// re-extracting everything: the whole page state, and its identifier
// space, is treated as new.
func (s *Session) Scroll(ctx context.Context, direction string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", entity.ErrSessionClosed
	}

	direction = strings.ToLower(strings.TrimSpace(direction))
	if direction != "up" && direction != "down" {
		return "", fmt.Errorf("unknown scroll direction: %q (want up or down)", direction)
	}

	scrollCtx, cancel := context.WithTimeout(ctx, s.cfg.NavTimeout)
	defer cancel()
	if err := s.browser.Scroll(scrollCtx, direction); err != nil {
		return "", fmt.Errorf("scroll %s: %w", direction, err)
	}

	next, err := s.extractLocked(ctx)
	if err != nil {
		return "", err
	}
	s.state = next

	s.logger.Debug("scrolled", "direction", direction, "seq", next.Seq)
	return s.renderer.Menu(next), nil
}

// Back pops the history stack and navigates to the entry. With empty
// history it reports ErrNoHistory and leaves the current state alone.
func (s *Session) Back(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", entity.ErrSessionClosed
	}

	entry, err := s.history.Pop()
	if err != nil {
		return "", err
	}

	navCtx, cancel := context.WithTimeout(ctx, s.cfg.NavTimeout)
	defer cancel()
	if err := s.browser.Back(navCtx); err != nil {
		// The entry was not consumed: restore it so a retry can work.
		s.history.Push(entry)
		return "", fmt.Errorf("%w: back to %s: %v", entity.ErrNavigation, entry.URL, err)
	}

	next, err := s.extractLocked(ctx)
	if err != nil {
		return "", err
	}
	s.state = next

	s.logger.Info("went back", "url", next.URL, "seq", next.Seq)
	return s.renderer.Menu(next), nil
}

// Read returns the best-guess main content of the current page. Low
// confidence never fails: whatever passed the filter comes back, even
// if empty.
func (s *Session) Read(ctx context.Context, maxLength int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", entity.ErrSessionClosed
	}
	if s.state == nil {
		return "", fmt.Errorf("no page loaded")
	}
	if maxLength <= 0 {
		maxLength = s.cfg.ReadMaxLength
	}

	htmlCtx, cancel := context.WithTimeout(ctx, s.cfg.NavTimeout)
	defer cancel()
	html, err := s.browser.HTML(htmlCtx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", entity.ErrExtraction, err)
	}

	text, err := s.content.Extract(html, s.state.URL)
	if err != nil {
		return "", fmt.Errorf("content extraction: %w", err)
	}

	// Rune-based so the cut never lands inside a multi-byte character.
	if runes := []rune(text); len(runes) > maxLength {
		text = fmt.Sprintf("%s\n\n... [truncated, %d more chars]", string(runes[:maxLength]), len(runes)-maxLength)
	}
	return text, nil
}

// Search navigates to a search provider with the query URL-encoded.
// Unknown engine names fall back to the default provider.
func (s *Session) Search(ctx context.Context, query, engine string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", entity.ErrSessionClosed
	}

	if engine == "" {
		engine = s.cfg.SearchEngine
	}
	pattern, ok := searchEngines[strings.ToLower(engine)]
	if !ok {
		pattern = searchEngines[defaultSearchEngine]
	}

	return s.gotoLocked(ctx, fmt.Sprintf(pattern, url.QueryEscape(query)))
}

// State returns the structured page state as JSON.
func (s *Session) State() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", entity.ErrSessionClosed
	}
	if s.state == nil {
		return "", fmt.Errorf("no page loaded")
	}
	return render.MarshalState(s.state)
}

// Render re-renders the current state without touching the engine.
func (s *Session) Render() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderer.Menu(s.state)
}

// Compact renders the minimal LLM-friendly view of the current state.
func (s *Session) Compact() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderer.Compact(s.state)
}

// Close tears down the engine and invalidates all outstanding
// identifiers. Idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
}

func (s *Session) closeLocked() {
	if s.closed {
		return
	}
	s.closed = true
	s.registry.Invalidate()
	s.state = nil
	s.browser.Close()
	s.logger.Info("session closed")
}

// extractLocked runs one extraction pass: enumerate, classify, assign,
// snapshot. Failures are retried within the budget; exhausting it
// tears the session down (the page is assumed unrecoverable).
func (s *Session) extractLocked(ctx context.Context) (*entity.PageState, error) {
	var lastErr error
	for attempt := 1; attempt <= s.cfg.ExtractRetries; attempt++ {
		state, err := s.extractOnce(ctx)
		if err == nil {
			return state, nil
		}
		lastErr = err
		s.logger.Warn("extraction attempt failed", "attempt", attempt, "error", err.Error())
	}

	s.logger.Error("extraction retry budget exhausted, closing session", "error", lastErr.Error())
	s.closeLocked()
	return nil, fmt.Errorf("%w: retry budget exhausted: %v", entity.ErrExtraction, lastErr)
}

func (s *Session) extractOnce(ctx context.Context) (*entity.PageState, error) {
	extractCtx, cancel := context.WithTimeout(ctx, s.cfg.NavTimeout)
	defer cancel()

	raws, err := s.browser.Extract(extractCtx)
	if err != nil {
		return nil, err
	}
	info, err := s.browser.PageInfo(extractCtx)
	if err != nil {
		return nil, err
	}

	elements := s.registry.Assign(s.classifier.ClassifyAll(raws))

	s.seq++
	return &entity.PageState{
		URL:      info.URL,
		Title:    info.Title,
		Seq:      s.seq,
		ScrollY:  info.ScrollY,
		Elements: elements,
	}, nil
}

// normalizeURL prefixes bare hostnames with https.
func normalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "https://" + raw
}
