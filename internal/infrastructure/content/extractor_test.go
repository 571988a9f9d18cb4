package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webcli/internal/application/port/output"
)

type testLogger struct{}

func (testLogger) Debug(string, ...any)                          {}
func (testLogger) Info(string, ...any)                           {}
func (testLogger) Warn(string, ...any)                           {}
func (testLogger) Error(string, ...any)                          {}
func (t testLogger) WithField(string, any) output.LoggerPort     { return t }
func (t testLogger) WithFields(map[string]any) output.LoggerPort { return t }
func (testLogger) Close() error                                  { return nil }

func newTestExtractor() *Extractor {
	return New(testLogger{}, DefaultConfig())
}

const articleHTML = `<html><head><title>Post</title></head><body>
<nav><a href="/">Home</a> <a href="/about">About</a> <a href="/blog">Blog</a></nav>
<article>
<h1>How I Built a Text Browser</h1>
<p>The core idea is simple: turn every interactive element on a page into a
numbered menu entry, then let short textual commands act on those numbers.
This removes the need for coordinates, selectors, or screenshots entirely.</p>
<p>Extraction happens after every action because single-page applications
mutate the DOM constantly and stale references are the main source of bugs
in browser automation. Renumbering on every step makes staleness detectable
rather than silent.</p>
</article>
<footer><a href="/privacy">Privacy</a> <a href="/terms">Terms</a></footer>
</body></html>`

func TestExtractPrefersArticleProse(t *testing.T) {
	out, err := newTestExtractor().Extract(articleHTML, "https://example.com/post")
	require.NoError(t, err)

	assert.Contains(t, out, "numbered menu entry")
	assert.Contains(t, out, "Renumbering on every step")
	assert.NotContains(t, out, "Privacy")
	assert.NotContains(t, out, "About")
}

func TestHeuristicFallbackSkipsLinkFarms(t *testing.T) {
	links := strings.Repeat(`<a href="/x">some link text here</a> `, 30)
	page := `<html><body>
<div id="menu">` + links + `</div>
<div id="content"><p>` + strings.Repeat("Real prose about the subject matter. ", 10) + `</p></div>
</body></html>`

	e := newTestExtractor()
	out, err := e.heuristic(page)
	require.NoError(t, err)

	assert.Contains(t, out, "Real prose about the subject")
	assert.NotContains(t, out, "some link text")
}

func TestHeuristicStripsBoilerplate(t *testing.T) {
	page := `<html><body><div>
<script>var x = 1;</script>
<style>.a{color:red}</style>
<p>visible paragraph text that should survive the filter step</p>
</div></body></html>`

	out, err := newTestExtractor().heuristic(page)
	require.NoError(t, err)

	assert.Contains(t, out, "visible paragraph text")
	assert.NotContains(t, out, "var x")
	assert.NotContains(t, out, "color:red")
}

func TestExtractEmptyPageIsNotAnError(t *testing.T) {
	out, err := newTestExtractor().Extract("<html><body></body></html>", "https://example.com/")
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestExtractBadURL(t *testing.T) {
	_, err := newTestExtractor().Extract("<html></html>", "://bad")
	assert.Error(t, err)
}

func TestNormalizeTextCollapsesBlankRuns(t *testing.T) {
	in := "a\n\n\n\nb   c\n\n"
	assert.Equal(t, "a\n\nb c", normalizeText(in))
}
