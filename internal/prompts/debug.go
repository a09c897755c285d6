package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// DebugPrompt handles the gemini-debug MCP prompt. It guides the AI
// through collecting a bug report and running the analysis tool.
type DebugPrompt struct{}

// NewDebugPrompt creates a DebugPrompt.
func NewDebugPrompt() *DebugPrompt {
	return &DebugPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *DebugPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("gemini-debug",
		mcp.WithPromptDescription(
			"Analyze a bug with Gemini. Collects the description, logs, and "+
				"relevant code, then asks for a root-cause analysis with fixes.",
		),
		mcp.WithArgument("description",
			mcp.ArgumentDescription("Short description of the bug"),
		),
	)
}

// Handle processes the gemini-debug prompt request.
func (p *DebugPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	description := argOr(req, "description", "")

	intro := "I'm debugging an issue."
	if description != "" {
		intro = fmt.Sprintf("I'm debugging this issue: %s", description)
	}

	text := fmt.Sprintf(
		"%s\n\n"+
			"Please:\n"+
			"1. Collect from me (or from the conversation) the error logs, the relevant code, "+
			"the environment, and reproduction steps\n"+
			"2. Run `gemini_analyze_bug` with everything collected\n"+
			"3. Walk me through the root cause and the suggested fix, and propose a regression test",
		intro,
	)

	return userMessage("Gemini bug analysis", text), nil
}
