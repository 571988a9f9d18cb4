package output

import (
	"context"

	"webcli/internal/domain/entity"
)

type ToolPort interface {
	Name() entity.ToolName
	Description() string
	Execute(ctx context.Context, arguments string) (string, error)
}

type ToolRegistry interface {
	Register(tool ToolPort)
	Get(name entity.ToolName) (ToolPort, bool)
	All() []ToolPort
	Definitions() []entity.ToolDefinition
}
