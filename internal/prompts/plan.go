package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// PlanPrompt handles the gemini-plan MCP prompt. It guides the AI to
// proofread a feature plan document.
type PlanPrompt struct{}

// NewPlanPrompt creates a PlanPrompt.
func NewPlanPrompt() *PlanPrompt {
	return &PlanPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *PlanPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("gemini-plan",
		mcp.WithPromptDescription(
			"Proofread a feature plan with Gemini. Checks completeness, "+
				"feasibility, and clarity, and suggests improvements.",
		),
		mcp.WithArgument("file",
			mcp.ArgumentDescription("Path of the plan document. Leave empty to review pasted text."),
		),
		mcp.WithArgument("focus_areas",
			mcp.ArgumentDescription("Comma-separated focus areas. Default: completeness,feasibility,clarity"),
		),
	)
}

// Handle processes the gemini-plan prompt request.
func (p *PlanPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	file := argOr(req, "file", "")
	focusAreas := argOr(req, "focus_areas", "completeness,feasibility,clarity")

	source := "Ask me for the feature plan if I haven't provided it"
	if file != "" {
		source = fmt.Sprintf("Read the plan document %s", file)
	}

	text := fmt.Sprintf(
		"I want Gemini to proofread my feature plan.\n\n"+
			"Please:\n"+
			"1. %s\n"+
			"2. Summarize any project context you know into a short paragraph\n"+
			"3. Run `gemini_proofread_feature_plan` with the plan, that context, and focus_areas='%s'\n"+
			"4. Present the feedback grouped by focus area, with concrete edits I can apply",
		source, focusAreas,
	)

	return userMessage("Gemini feature plan review", text), nil
}
