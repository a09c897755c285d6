package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wiseyoda/gemini-code-assist-mcp/internal/review"
	"github.com/wiseyoda/gemini-code-assist-mcp/internal/templates"
)

// ReviewTool handles the gemini_review_code MCP tool.
type ReviewTool struct {
	deps Deps
}

// NewReviewTool creates a ReviewTool with its dependencies.
func NewReviewTool(deps Deps) *ReviewTool {
	return &ReviewTool{deps: deps}
}

// Definition returns the MCP tool definition for registration.
func (t *ReviewTool) Definition() mcp.Tool {
	return mcp.NewTool("gemini_review_code",
		mcp.WithDescription(
			"Analyze code quality, style, and potential issues using Gemini. "+
				"Returns a structured report with issues, suggestions, and an overall rating.",
		),
		mcp.WithString("code",
			mcp.Required(),
			mcp.Description("Code to review."),
		),
		mcp.WithString("language",
			mcp.Description("Programming language of the code. Auto-detected when empty."),
		),
		mcp.WithString("focus",
			mcp.Description("Focus area for the review."),
			mcp.Enum("general", "security", "performance", "style", "bugs"),
			mcp.DefaultString("general"),
		),
	)
}

// Handle processes the gemini_review_code tool call.
func (t *ReviewTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code := req.GetString("code", "")
	if strings.TrimSpace(code) == "" {
		return mcp.NewToolResultError("code is required"), nil
	}

	language := req.GetString("language", "")
	if language == "" {
		language = "auto-detect"
	}
	focus := req.GetString("focus", "general")

	system, user, err := t.deps.Renderer.Render(templates.CodeReview, templates.CodeReviewData{
		Language:         language,
		Code:             code,
		FocusInstruction: templates.FocusInstruction(focus),
	})
	if err != nil {
		return nil, fmt.Errorf("rendering code review prompt: %w", err)
	}

	res := t.deps.complete(ctx, system, user)
	if !res.Success {
		return mcp.NewToolResultError(formatFailure(res)), nil
	}

	report := review.Parse(res.Content)
	payload, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding review report: %w", err)
	}

	return mcp.NewToolResultText(string(payload) + fallbackNotice(res)), nil
}
