// Command webcli-mcp serves the browser session as MCP tools over
// stdio. Tool execution delegates to the shared tool registry, so the
// MCP surface and the CLI stay in sync by construction.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"webcli/internal/adapter/tool"
	"webcli/internal/application/port/output"
	"webcli/internal/di"
	"webcli/internal/domain/entity"
)

const (
	serverName    = "webcli"
	serverVersion = "1.0.0"
)

type GotoArgs struct {
	URL string `json:"url" jsonschema:"The URL to open"`
}

type IDArgs struct {
	ID string `json:"id" jsonschema:"Menu identifier of the element, e.g. L3 or B1"`
}

type IDValueArgs struct {
	ID    string `json:"id" jsonschema:"Menu identifier of the element, e.g. I1 or S2"`
	Value string `json:"value" jsonschema:"Text to type, or dropdown option label"`
}

type ScrollArgs struct {
	Direction string `json:"direction" jsonschema:"Scroll direction: up or down"`
}

type ReadArgs struct {
	MaxLength int `json:"max_length,omitempty" jsonschema:"Optional cap on returned characters"`
}

type SearchArgs struct {
	Query  string `json:"query" jsonschema:"Search query"`
	Engine string `json:"engine,omitempty" jsonschema:"Search engine: brave, ddg or searx"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// File logging only: stdio carries the protocol.
	container, err := di.NewContainer(ctx, di.Options{SessionName: "mcp", Quiet: true})
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer container.Close()

	server := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: serverVersion,
	}, nil)

	registry := container.Tools
	specs := toolSpecs(registry)
	mcp.AddTool(server, specs[tool.NameGoto], handler[GotoArgs](registry, tool.NameGoto))
	mcp.AddTool(server, specs[tool.NameClick], handler[IDArgs](registry, tool.NameClick))
	mcp.AddTool(server, specs[tool.NameFill], handler[IDValueArgs](registry, tool.NameFill))
	mcp.AddTool(server, specs[tool.NameSelect], handler[IDValueArgs](registry, tool.NameSelect))
	mcp.AddTool(server, specs[tool.NameScroll], handler[ScrollArgs](registry, tool.NameScroll))
	mcp.AddTool(server, specs[tool.NameBack], handler[struct{}](registry, tool.NameBack))
	mcp.AddTool(server, specs[tool.NameState], handler[struct{}](registry, tool.NameState))
	mcp.AddTool(server, specs[tool.NameRead], handler[ReadArgs](registry, tool.NameRead))
	mcp.AddTool(server, specs[tool.NameSearch], handler[SearchArgs](registry, tool.NameSearch))

	if err := server.Run(ctx, mcp.NewStdioTransport()); err != nil {
		log.Printf("server stopped: %v", err)
	}
}

// toolSpecs builds the advertised tool list from the registry's own
// definitions, so names and descriptions have a single source.
func toolSpecs(registry output.ToolRegistry) map[entity.ToolName]*mcp.Tool {
	specs := make(map[entity.ToolName]*mcp.Tool)
	for _, def := range registry.Definitions() {
		specs[def.Name] = &mcp.Tool{Name: string(def.Name), Description: def.Description}
	}
	return specs
}

// handler adapts a registry tool to a typed MCP handler. Arguments are
// re-marshaled to the registry's JSON payload form.
func handler[A any](registry output.ToolRegistry, name entity.ToolName) mcp.ToolHandlerFor[A, struct{}] {
	return func(ctx context.Context, _ *mcp.ServerSession, params *mcp.CallToolParamsFor[A]) (*mcp.CallToolResultFor[struct{}], error) {
		t, ok := registry.Get(name)
		if !ok {
			return errorResult(fmt.Sprintf("unknown tool: %s", name)), nil
		}

		payload, err := json.Marshal(params.Arguments)
		if err != nil {
			return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		out, err := t.Execute(ctx, string(payload))
		if err != nil {
			return errorResult(err.Error()), nil
		}

		return &mcp.CallToolResultFor[struct{}]{
			Content: []mcp.Content{&mcp.TextContent{Text: out}},
		}, nil
	}
}

func errorResult(msg string) *mcp.CallToolResultFor[struct{}] {
	return &mcp.CallToolResultFor[struct{}]{
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
		IsError: true,
	}
}
