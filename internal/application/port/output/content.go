package output

// ContentExtractor produces a best-guess main-content text for a page.
// It never fails on low-confidence input: whatever passed the filter
// is returned, even if empty.
type ContentExtractor interface {
	Extract(html, pageURL string) (string, error)
}
