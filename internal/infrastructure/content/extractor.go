// Package content extracts readable main content from raw page HTML.
// The primary path is the readability port; when it yields nothing
// useful a heuristic DOM scorer takes over. Low confidence is never an
// error: whatever survived the filter is returned.
package content

import (
	"fmt"
	"net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"

	"webcli/internal/application/port/output"
)

var _ output.ContentExtractor = (*Extractor)(nil)

// Scorer rates a candidate block node; higher wins. Pluggable so the
// default density heuristic can be swapped without touching traversal.
type Scorer func(n *html.Node) float64

type Config struct {
	// MinArticleLength is the readability result length below which the
	// heuristic fallback kicks in.
	MinArticleLength int
	Scorer           Scorer
}

func DefaultConfig() Config {
	return Config{
		MinArticleLength: 140,
		Scorer:           densityScore,
	}
}

type Extractor struct {
	cfg Config
	log output.LoggerPort
}

func New(logger output.LoggerPort, cfg Config) *Extractor {
	if cfg.MinArticleLength <= 0 {
		cfg.MinArticleLength = DefaultConfig().MinArticleLength
	}
	if cfg.Scorer == nil {
		cfg.Scorer = densityScore
	}
	return &Extractor{cfg: cfg, log: logger}
}

// Extract returns the plain-text main content of the page.
func (e *Extractor) Extract(rawHTML, pageURL string) (string, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("parse page url: %w", err)
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), parsed)
	if err == nil {
		text := normalizeText(article.TextContent)
		if len(text) >= e.cfg.MinArticleLength {
			return text, nil
		}
		e.log.Debug("readability result too short, falling back",
			"url", pageURL, "length", len(text))
	} else {
		e.log.Debug("readability failed, falling back", "url", pageURL, "error", err.Error())
	}

	return e.heuristic(rawHTML)
}

// heuristic walks the DOM, scores candidate blocks by text volume vs
// link density, and returns the text of the best-scoring subtree.
func (e *Extractor) heuristic(rawHTML string) (string, error) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var best *html.Node
	var bestScore float64
	walk(doc, func(n *html.Node) {
		if !candidateTag(n) {
			return
		}
		if score := e.cfg.Scorer(n); score > bestScore {
			best, bestScore = n, score
		}
	})

	if best == nil {
		if body := findNode(doc, "body"); body != nil {
			best = body
		} else {
			best = doc
		}
	}
	return normalizeText(textOf(best)), nil
}

var boilerplateTags = map[string]bool{
	"script": true, "style": true, "noscript": true, "svg": true,
	"iframe": true, "nav": true, "header": true, "footer": true,
	"aside": true, "form": true, "button": true, "select": true,
}

func candidateTag(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.Data {
	case "article", "main", "section", "div", "td":
		return true
	}
	return false
}

// densityScore favors blocks with lots of text and few links. Anchor
// text counts against the block, so menus and link farms lose to prose
// even when they are longer.
func densityScore(n *html.Node) float64 {
	total := len(textOf(n))
	if total == 0 {
		return 0
	}
	linked := linkTextLen(n)
	density := float64(linked) / float64(total)
	return float64(total) * (1 - density) * (1 - density)
}

func linkTextLen(n *html.Node) int {
	if n.Type == html.ElementNode && n.Data == "a" {
		return len(textOf(n))
	}
	sum := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sum += linkTextLen(c)
	}
	return sum
}

// textOf collects visible text, skipping boilerplate subtrees.
func textOf(n *html.Node) string {
	var sb strings.Builder
	collectText(n, &sb)
	return sb.String()
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.ElementNode && boilerplateTags[n.Data] {
		return
	}
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		return
	}
	if n.Type == html.ElementNode && blockLevel(n.Data) {
		sb.WriteString("\n")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}

func blockLevel(tag string) bool {
	switch tag {
	case "p", "div", "article", "section", "li", "br",
		"h1", "h2", "h3", "h4", "h5", "h6", "tr", "blockquote", "pre":
		return true
	}
	return false
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func findNode(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNode(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// normalizeText collapses runs of blank lines and intra-line spaces so
// extracted prose stays compact.
func normalizeText(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := true
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			if !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		out = append(out, line)
		blank = false
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}
