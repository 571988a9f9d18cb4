package input

import "context"

// Commander is the textual command surface over one browser session.
// Every method returns the rendered text block for the resulting page
// state (or, for State/Read, the requested payload) or a typed error
// from the entity error taxonomy. Implementations serialize commands:
// only one operation is in flight at a time.
type Commander interface {
	Goto(ctx context.Context, url string) (string, error)
	Click(ctx context.Context, identifier string) (string, error)
	Fill(ctx context.Context, identifier, value string) (string, error)
	SelectOption(ctx context.Context, identifier, value string) (string, error)
	Scroll(ctx context.Context, direction string) (string, error)
	Back(ctx context.Context) (string, error)
	Read(ctx context.Context, maxLength int) (string, error)
	Search(ctx context.Context, query, engine string) (string, error)

	// State returns the machine-readable page state as JSON.
	State() (string, error)
	// Render re-renders the current page state without touching the
	// engine.
	Render() string
	// Compact renders the minimal token-budget view of the page state.
	Compact() string

	Close()
}
