package entity

import "errors"

// Command failure taxonomy. Every dispatcher operation returns one of
// these (wrapped with context) instead of letting engine errors leak
// through. Callers branch with errors.Is.
var (
	// ErrNavigation: the engine failed or timed out reaching a URL.
	// The prior page state remains current.
	ErrNavigation = errors.New("navigation failed")

	// ErrUnknownIdentifier: the identifier was never assigned in the
	// current page state (nor any earlier one).
	ErrUnknownIdentifier = errors.New("unknown identifier")

	// ErrStaleIdentifier: the identifier was assigned by a page state
	// that has since been superseded. The page changed under the caller.
	ErrStaleIdentifier = errors.New("stale identifier")

	// ErrNotInteractable: the live handle behind the identifier is no
	// longer attached or visible.
	ErrNotInteractable = errors.New("element not interactable")

	// ErrWrongKind: the action does not match the element kind, e.g.
	// fill on a link.
	ErrWrongKind = errors.New("wrong element kind")

	// ErrNoHistory: back with an empty history stack.
	ErrNoHistory = errors.New("no history")

	// ErrExtraction: the engine could not enumerate elements. Repeated
	// beyond the retry budget this terminates the session.
	ErrExtraction = errors.New("extraction failed")

	// ErrSessionClosed: the session has been torn down; all
	// identifiers are invalid.
	ErrSessionClosed = errors.New("session closed")
)
