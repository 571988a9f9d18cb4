// Package tool exposes session commands as named tools with JSON
// argument payloads. Both outer surfaces (the CLI and the MCP server)
// dispatch through these.
package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"webcli/internal/application/port/input"
	"webcli/internal/application/port/output"
	"webcli/internal/domain/entity"
)

const (
	NameGoto   entity.ToolName = "web_goto"
	NameClick  entity.ToolName = "web_click"
	NameFill   entity.ToolName = "web_fill"
	NameSelect entity.ToolName = "web_select"
	NameScroll entity.ToolName = "web_scroll"
	NameBack   entity.ToolName = "web_back"
	NameState  entity.ToolName = "web_state"
	NameRead   entity.ToolName = "web_read"
	NameSearch entity.ToolName = "web_search"
)

// All constructs the full tool set over one session.
func All(commander input.Commander, logger output.LoggerPort) []output.ToolPort {
	return []output.ToolPort{
		NewGotoTool(commander, logger),
		NewClickTool(commander, logger),
		NewFillTool(commander, logger),
		NewSelectTool(commander, logger),
		NewScrollTool(commander, logger),
		NewBackTool(commander, logger),
		NewStateTool(commander, logger),
		NewReadTool(commander, logger),
		NewSearchTool(commander, logger),
	}
}

type GotoTool struct {
	commander input.Commander
	logger    output.LoggerPort
}

func NewGotoTool(commander input.Commander, logger output.LoggerPort) *GotoTool {
	return &GotoTool{commander: commander, logger: logger}
}

func (t *GotoTool) Name() entity.ToolName { return NameGoto }
func (t *GotoTool) Description() string {
	return "Navigate to a URL and return the numbered element menu of the resulting page"
}

func (t *GotoTool) Execute(ctx context.Context, args string) (string, error) {
	var in struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal([]byte(args), &in); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}
	if in.URL == "" {
		return "", fmt.Errorf("url is required")
	}
	return t.commander.Goto(ctx, in.URL)
}

type ClickTool struct {
	commander input.Commander
	logger    output.LoggerPort
}

func NewClickTool(commander input.Commander, logger output.LoggerPort) *ClickTool {
	return &ClickTool{commander: commander, logger: logger}
}

func (t *ClickTool) Name() entity.ToolName { return NameClick }
func (t *ClickTool) Description() string {
	return "Click an element by its menu identifier (L3, B1, ...) and return the new menu"
}

func (t *ClickTool) Execute(ctx context.Context, args string) (string, error) {
	var in struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal([]byte(args), &in); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}
	if in.ID == "" {
		return "", fmt.Errorf("id is required")
	}
	return t.commander.Click(ctx, in.ID)
}

type FillTool struct {
	commander input.Commander
	logger    output.LoggerPort
}

func NewFillTool(commander input.Commander, logger output.LoggerPort) *FillTool {
	return &FillTool{commander: commander, logger: logger}
}

func (t *FillTool) Name() entity.ToolName { return NameFill }
func (t *FillTool) Description() string {
	return "Type text into an input field identified by its menu identifier (I1, I2, ...)"
}

func (t *FillTool) Execute(ctx context.Context, args string) (string, error) {
	var in struct {
		ID    string `json:"id"`
		Value string `json:"value"`
	}
	if err := json.Unmarshal([]byte(args), &in); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}
	if in.ID == "" {
		return "", fmt.Errorf("id is required")
	}
	return t.commander.Fill(ctx, in.ID, in.Value)
}

type SelectTool struct {
	commander input.Commander
	logger    output.LoggerPort
}

func NewSelectTool(commander input.Commander, logger output.LoggerPort) *SelectTool {
	return &SelectTool{commander: commander, logger: logger}
}

func (t *SelectTool) Name() entity.ToolName { return NameSelect }
func (t *SelectTool) Description() string {
	return "Pick a dropdown option by visible label, on a select identified by S1, S2, ..."
}

func (t *SelectTool) Execute(ctx context.Context, args string) (string, error) {
	var in struct {
		ID    string `json:"id"`
		Value string `json:"value"`
	}
	if err := json.Unmarshal([]byte(args), &in); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}
	if in.ID == "" || in.Value == "" {
		return "", fmt.Errorf("id and value are required")
	}
	return t.commander.SelectOption(ctx, in.ID, in.Value)
}

type ScrollTool struct {
	commander input.Commander
	logger    output.LoggerPort
}

func NewScrollTool(commander input.Commander, logger output.LoggerPort) *ScrollTool {
	return &ScrollTool{commander: commander, logger: logger}
}

func (t *ScrollTool) Name() entity.ToolName { return NameScroll }
func (t *ScrollTool) Description() string {
	return "Scroll the page up or down and return the refreshed menu"
}

func (t *ScrollTool) Execute(ctx context.Context, args string) (string, error) {
	var in struct {
		Direction string `json:"direction"`
	}
	if err := json.Unmarshal([]byte(args), &in); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}
	return t.commander.Scroll(ctx, in.Direction)
}

type BackTool struct {
	commander input.Commander
	logger    output.LoggerPort
}

func NewBackTool(commander input.Commander, logger output.LoggerPort) *BackTool {
	return &BackTool{commander: commander, logger: logger}
}

func (t *BackTool) Name() entity.ToolName { return NameBack }
func (t *BackTool) Description() string {
	return "Go back to the previously visited page"
}

func (t *BackTool) Execute(ctx context.Context, _ string) (string, error) {
	return t.commander.Back(ctx)
}

type StateTool struct {
	commander input.Commander
	logger    output.LoggerPort
}

func NewStateTool(commander input.Commander, logger output.LoggerPort) *StateTool {
	return &StateTool{commander: commander, logger: logger}
}

func (t *StateTool) Name() entity.ToolName { return NameState }
func (t *StateTool) Description() string {
	return "Return the structured page state (URL, title, elements) as JSON"
}

func (t *StateTool) Execute(_ context.Context, _ string) (string, error) {
	return t.commander.State()
}

type ReadTool struct {
	commander input.Commander
	logger    output.LoggerPort
}

func NewReadTool(commander input.Commander, logger output.LoggerPort) *ReadTool {
	return &ReadTool{commander: commander, logger: logger}
}

func (t *ReadTool) Name() entity.ToolName { return NameRead }
func (t *ReadTool) Description() string {
	return "Extract the readable main content of the current page as plain text"
}

func (t *ReadTool) Execute(ctx context.Context, args string) (string, error) {
	var in struct {
		MaxLength int `json:"max_length"`
	}
	if args != "" {
		if err := json.Unmarshal([]byte(args), &in); err != nil {
			return "", fmt.Errorf("invalid arguments: %w", err)
		}
	}
	return t.commander.Read(ctx, in.MaxLength)
}

type SearchTool struct {
	commander input.Commander
	logger    output.LoggerPort
}

func NewSearchTool(commander input.Commander, logger output.LoggerPort) *SearchTool {
	return &SearchTool{commander: commander, logger: logger}
}

func (t *SearchTool) Name() entity.ToolName { return NameSearch }
func (t *SearchTool) Description() string {
	return "Run a web search (brave, ddg or searx) and return the results page menu"
}

func (t *SearchTool) Execute(ctx context.Context, args string) (string, error) {
	var in struct {
		Query  string `json:"query"`
		Engine string `json:"engine"`
	}
	if err := json.Unmarshal([]byte(args), &in); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}
	if in.Query == "" {
		return "", fmt.Errorf("query is required")
	}
	return t.commander.Search(ctx, in.Query, in.Engine)
}
