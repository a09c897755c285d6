package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wiseyoda/gemini-code-assist-mcp/internal/templates"
)

// BugTool handles the gemini_analyze_bug MCP tool.
type BugTool struct {
	deps Deps
}

// NewBugTool creates a BugTool with its dependencies.
func NewBugTool(deps Deps) *BugTool {
	return &BugTool{deps: deps}
}

// Definition returns the MCP tool definition for registration.
func (t *BugTool) Definition() mcp.Tool {
	return mcp.NewTool("gemini_analyze_bug",
		mcp.WithDescription(
			"Analyze bugs and suggest fixes using Gemini. "+
				"Identifies root causes and proposes fixes with code examples.",
		),
		mcp.WithString("bug_description",
			mcp.Required(),
			mcp.Description("Description of the bug."),
		),
		mcp.WithString("code_context",
			mcp.Description("Relevant code snippets."),
		),
		mcp.WithString("error_logs",
			mcp.Description("Error messages and logs."),
		),
		mcp.WithString("environment",
			mcp.Description("Environment details (OS, runtime versions, etc.)."),
		),
		mcp.WithString("reproduction_steps",
			mcp.Description("Steps to reproduce the issue."),
		),
		mcp.WithString("language",
			mcp.Description("Programming language of the code context."),
		),
	)
}

// Handle processes the gemini_analyze_bug tool call.
func (t *BugTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	description := req.GetString("bug_description", "")
	if strings.TrimSpace(description) == "" {
		return mcp.NewToolResultError("bug_description is required"), nil
	}

	language := req.GetString("language", "")
	if language == "" {
		language = "unknown"
	}

	system, user, err := t.deps.Renderer.Render(templates.BugAnalysis, templates.BugAnalysisData{
		BugDescription:    description,
		ErrorLogs:         req.GetString("error_logs", ""),
		Language:          language,
		CodeContext:       req.GetString("code_context", ""),
		Environment:       req.GetString("environment", ""),
		ReproductionSteps: req.GetString("reproduction_steps", ""),
	})
	if err != nil {
		return nil, fmt.Errorf("rendering bug analysis prompt: %w", err)
	}

	res := t.deps.complete(ctx, system, user)
	if !res.Success {
		return mcp.NewToolResultError(formatFailure(res)), nil
	}

	return mcp.NewToolResultText(res.Content + fallbackNotice(res)), nil
}
