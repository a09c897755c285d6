package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wiseyoda/gemini-code-assist-mcp/internal/templates"
)

// ExplainTool handles the gemini_explain_code MCP tool.
type ExplainTool struct {
	deps Deps
}

// NewExplainTool creates an ExplainTool with its dependencies.
func NewExplainTool(deps Deps) *ExplainTool {
	return &ExplainTool{deps: deps}
}

// Definition returns the MCP tool definition for registration.
func (t *ExplainTool) Definition() mcp.Tool {
	return mcp.NewTool("gemini_explain_code",
		mcp.WithDescription(
			"Explain code functionality and implementation using Gemini. "+
				"Covers purpose, step-by-step behavior, and key patterns.",
		),
		mcp.WithString("code",
			mcp.Required(),
			mcp.Description("Code to explain."),
		),
		mcp.WithString("language",
			mcp.Description("Programming language of the code. Auto-detected when empty."),
		),
		mcp.WithString("detail_level",
			mcp.Description("How deep the explanation should go."),
			mcp.Enum("basic", "intermediate", "advanced"),
			mcp.DefaultString("intermediate"),
		),
		mcp.WithString("questions",
			mcp.Description("Specific questions about the code."),
		),
	)
}

// Handle processes the gemini_explain_code tool call.
func (t *ExplainTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code := req.GetString("code", "")
	if strings.TrimSpace(code) == "" {
		return mcp.NewToolResultError("code is required"), nil
	}

	language := req.GetString("language", "")
	if language == "" {
		language = "auto-detect"
	}

	system, user, err := t.deps.Renderer.Render(templates.CodeExplanation, templates.CodeExplanationData{
		Language:    language,
		Code:        code,
		DetailLevel: req.GetString("detail_level", "intermediate"),
		Questions:   req.GetString("questions", ""),
	})
	if err != nil {
		return nil, fmt.Errorf("rendering code explanation prompt: %w", err)
	}

	res := t.deps.complete(ctx, system, user)
	if !res.Success {
		return mcp.NewToolResultError(formatFailure(res)), nil
	}

	return mcp.NewToolResultText(res.Content + fallbackNotice(res)), nil
}
