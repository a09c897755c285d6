package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wiseyoda/gemini-code-assist-mcp/internal/templates"
)

// FeaturePlanTool handles the gemini_proofread_feature_plan MCP tool.
type FeaturePlanTool struct {
	deps Deps
}

// NewFeaturePlanTool creates a FeaturePlanTool with its dependencies.
func NewFeaturePlanTool(deps Deps) *FeaturePlanTool {
	return &FeaturePlanTool{deps: deps}
}

// Definition returns the MCP tool definition for registration.
func (t *FeaturePlanTool) Definition() mcp.Tool {
	return mcp.NewTool("gemini_proofread_feature_plan",
		mcp.WithDescription(
			"Review and improve feature plans and specifications using Gemini. "+
				"Checks clarity, feasibility, missing considerations, and integration points.",
		),
		mcp.WithString("feature_plan",
			mcp.Required(),
			mcp.Description("Feature plan document to review."),
		),
		mcp.WithString("context",
			mcp.Description("Project context and constraints."),
		),
		mcp.WithString("focus_areas",
			mcp.Description("Comma-separated areas to focus on."),
			mcp.DefaultString("completeness,feasibility,clarity"),
		),
	)
}

// Handle processes the gemini_proofread_feature_plan tool call.
func (t *FeaturePlanTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	plan := req.GetString("feature_plan", "")
	if strings.TrimSpace(plan) == "" {
		return mcp.NewToolResultError("feature_plan is required"), nil
	}

	system, user, err := t.deps.Renderer.Render(templates.FeaturePlanReview, templates.FeaturePlanData{
		FeaturePlan: plan,
		Context:     req.GetString("context", ""),
		FocusAreas:  req.GetString("focus_areas", "completeness,feasibility,clarity"),
	})
	if err != nil {
		return nil, fmt.Errorf("rendering feature plan prompt: %w", err)
	}

	res := t.deps.complete(ctx, system, user)
	if !res.Success {
		return mcp.NewToolResultError(formatFailure(res)), nil
	}

	return mcp.NewToolResultText(res.Content + fallbackNotice(res)), nil
}
