// Package mcp provides a Model Context Protocol server for promptctl.
// It exposes the catalog, project scans and prompt generation as read-only
// tools so an agent can pull guidelines on demand.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/debendraoli/promptctl/internal/logging"
)

// Env is what the tool handlers share.
type Env struct {
	// Root is the project scanned when a tool call gives no path.
	Root   string
	Logger *zap.Logger
}

func (e *Env) logger() *zap.Logger {
	if e == nil {
		return logging.OrNop(nil)
	}
	return logging.OrNop(e.Logger)
}

// NewServer creates an MCP server with all promptctl tools registered.
func NewServer(version string, env *Env) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "promptctl",
		Version: version,
	}, nil)
	registerTools(server, env)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// registerTools adds all promptctl tools to the server.
func registerTools(server *mcp.Server, env *Env) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_catalog",
		Description: "List available languages (built-in, template overrides and custom prompts), roles, agents, sections and presets.",
		Annotations: readOnlyAnnotations(),
	}, handleListCatalog(env))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "scan_project",
		Description: "Scan a project directory and report detected languages, frameworks, config files and layout.",
		Annotations: readOnlyAnnotations(),
	}, handleScanProject(env))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "show_skillset",
		Description: "Return the complete coding guidelines for one language: every section, custom additions and hallucination guardrails.",
		Annotations: readOnlyAnnotations(),
	}, handleShowSkillset(env))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_prompt",
		Description: "Generate a context-aware prompt for a project with role, size, sections, preset and optional agent formatting.",
		Annotations: readOnlyAnnotations(),
	}, handleGeneratePrompt(env))
}
