package console

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"webcli/internal/domain/entity"
)

func TestShowMenuKeepsEveryLine(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	p := NewPresenter(&buf)

	menu := "=== example.com ===\nLINKS (2)\n  [L1  ] First\n  [L2  ] Second\n  ... and 3 more links ('scroll down' to reveal)"
	p.ShowMenu(menu)

	out := buf.String()
	assert.Contains(t, out, "LINKS (2)")
	assert.Contains(t, out, "  [L1  ] First")
	assert.Contains(t, out, "  ... and 3 more links")
}

func TestShowMenuColorizesIndentedIdentifiers(t *testing.T) {
	old := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = old }()

	var buf bytes.Buffer
	p := NewPresenter(&buf)
	p.ShowMenu("  [L1  ] How I Built X")

	out := buf.String()
	assert.Contains(t, out, "\x1b[", "identifier styling should fire on renderer-indented lines")
	assert.Contains(t, out, "[L1  ]")
	assert.True(t, strings.HasPrefix(out, "  "), "indentation survives colorization")
}

func TestShowErrorAddsHints(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	p := NewPresenter(&buf)

	p.ShowError(fmt.Errorf("%w: L3", entity.ErrStaleIdentifier))
	assert.Contains(t, buf.String(), "run 'menu'")

	buf.Reset()
	p.ShowError(entity.ErrNoHistory)
	assert.Contains(t, buf.String(), "no previous page")

	buf.Reset()
	p.ShowError(fmt.Errorf("plain failure"))
	assert.Contains(t, buf.String(), "! plain failure")
	assert.NotContains(t, buf.String(), "  The page")
}

func TestIsGroupHeader(t *testing.T) {
	assert.True(t, isGroupHeader("LINKS (25 shown, 114 total)"))
	assert.True(t, isGroupHeader("INPUT FIELDS (2 shown)"))
	assert.False(t, isGroupHeader("[L1] LINKS are here"))
	assert.False(t, isGroupHeader(""))
}
