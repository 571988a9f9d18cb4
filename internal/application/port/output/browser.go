package output

import (
	"context"

	"webcli/internal/domain/entity"
)

// BrowserPort is the engine boundary: navigation, raw element
// extraction, and actions on live handles. The core never inspects
// engine internals beyond this contract.
type BrowserPort interface {
	Navigate(ctx context.Context, url string) error
	Back(ctx context.Context) error
	Scroll(ctx context.Context, direction string) error

	// Extract enumerates interactive candidates on the rendered page.
	// Order is stable within one call but carries no cross-call
	// guarantee.
	Extract(ctx context.Context) ([]entity.RawElement, error)
	PageInfo(ctx context.Context) (entity.PageInfo, error)
	HTML(ctx context.Context) (string, error)

	// Act performs click/fill/select against a live handle obtained
	// from a prior Extract.
	Act(ctx context.Context, handle entity.Handle, action entity.Action, value string) error

	// Attached reports whether a handle still points at a visible,
	// attached node.
	Attached(handle entity.Handle) bool

	Close()
}
