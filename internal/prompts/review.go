package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// ReviewPrompt handles the gemini-review MCP prompt. It guides the AI
// to gather the target code and run the review tool.
type ReviewPrompt struct{}

// NewReviewPrompt creates a ReviewPrompt.
func NewReviewPrompt() *ReviewPrompt {
	return &ReviewPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *ReviewPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("gemini-review",
		mcp.WithPromptDescription(
			"Review code with Gemini. Gathers the code to review and runs "+
				"a structured review with issues, suggestions, and a rating.",
		),
		mcp.WithArgument("file",
			mcp.ArgumentDescription("Path of the file to review. Leave empty to review pasted code."),
		),
		mcp.WithArgument("focus",
			mcp.ArgumentDescription("Focus area: general, security, performance, style, or bugs. Default: general"),
		),
	)
}

// Handle processes the gemini-review prompt request.
func (p *ReviewPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	file := argOr(req, "file", "")
	focus := argOr(req, "focus", "general")

	var text string
	if file != "" {
		text = fmt.Sprintf(
			"I want a Gemini code review of `%s` with focus '%s'.\n\n"+
				"Please:\n"+
				"1. Read the file %s\n"+
				"2. Run `gemini_review_code` with its contents, the detected language, and focus='%s'\n"+
				"3. Summarize the issues and suggestions from the report, ordered by severity",
			file, focus, file, focus,
		)
	} else {
		text = fmt.Sprintf(
			"I want a Gemini code review with focus '%s'.\n\n"+
				"Please:\n"+
				"1. Ask me for the code to review if I haven't provided it\n"+
				"2. Run `gemini_review_code` with the code and focus='%s'\n"+
				"3. Summarize the issues and suggestions from the report, ordered by severity",
			focus, focus,
		)
	}

	return userMessage(fmt.Sprintf("Gemini code review (%s)", focus), text), nil
}
