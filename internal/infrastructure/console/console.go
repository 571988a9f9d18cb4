// Package console renders command output for interactive terminals.
// Menus get colorized group headers and identifiers; errors get a red
// marker plus a recovery hint for the common cases.
package console

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"webcli/internal/domain/entity"
)

type Presenter struct {
	out io.Writer

	header *color.Color
	ident  *color.Color
	errC   *color.Color
	dim    *color.Color
}

func NewPresenter(out io.Writer) *Presenter {
	return &Presenter{
		out:    out,
		header: color.New(color.FgCyan, color.Bold),
		ident:  color.New(color.FgYellow),
		errC:   color.New(color.FgRed),
		dim:    color.New(color.Faint),
	}
}

// ShowMenu prints a rendered menu, colorizing group headers and the
// [ID] prefixes. Input is the plain-text menu; color is additive so
// piping output elsewhere keeps it readable.
func (p *Presenter) ShowMenu(menu string) {
	for _, line := range strings.Split(menu, "\n") {
		// The renderer indents element and overflow lines; match on
		// the trimmed form and keep the indent in the output.
		trimmed := strings.TrimLeft(line, " ")
		indent := line[:len(line)-len(trimmed)]

		switch {
		case isGroupHeader(line):
			p.header.Fprintln(p.out, line)
		case strings.HasPrefix(trimmed, "["):
			if end := strings.Index(trimmed, "]"); end > 0 {
				fmt.Fprint(p.out, indent)
				p.ident.Fprint(p.out, trimmed[:end+1])
				fmt.Fprintln(p.out, trimmed[end+1:])
				continue
			}
			fmt.Fprintln(p.out, line)
		case strings.HasPrefix(trimmed, "..."):
			p.dim.Fprintln(p.out, line)
		default:
			fmt.Fprintln(p.out, line)
		}
	}
}

func (p *Presenter) ShowText(text string) {
	fmt.Fprintln(p.out, text)
}

// ShowError prints the error with a recovery hint where one exists.
func (p *Presenter) ShowError(err error) {
	p.errC.Fprintf(p.out, "! %v\n", err)
	if hint := hintFor(err); hint != "" {
		p.dim.Fprintf(p.out, "  %s\n", hint)
	}
}

func (p *Presenter) Prompt() {
	fmt.Fprint(p.out, "> ")
}

func hintFor(err error) string {
	switch {
	case errors.Is(err, entity.ErrStaleIdentifier):
		return "The page changed since that menu; run 'menu' and use the new identifiers."
	case errors.Is(err, entity.ErrUnknownIdentifier):
		return "No such identifier in the current menu."
	case errors.Is(err, entity.ErrNoHistory):
		return "There is no previous page to go back to."
	case errors.Is(err, entity.ErrWrongKind):
		return "That identifier is for a different element kind; check its prefix."
	case errors.Is(err, entity.ErrSessionClosed):
		return "The session is closed; restart webcli."
	}
	return ""
}

var groupHeaders = []string{"LINKS", "BUTTONS", "INPUT FIELDS", "DROPDOWNS"}

func isGroupHeader(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, h := range groupHeaders {
		if strings.HasPrefix(trimmed, h) {
			return true
		}
	}
	return false
}
