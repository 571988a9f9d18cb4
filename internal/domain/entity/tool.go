package entity

// ToolName identifies a command tool on the outer surface (web_goto,
// web_click, ...).
type ToolName string

// ToolDefinition is the advertised shape of a tool.
type ToolDefinition struct {
	Name        ToolName
	Description string
}
