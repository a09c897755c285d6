package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// ExplainPrompt handles the gemini-explain MCP prompt.
type ExplainPrompt struct{}

// NewExplainPrompt creates an ExplainPrompt.
func NewExplainPrompt() *ExplainPrompt {
	return &ExplainPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *ExplainPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("gemini-explain",
		mcp.WithPromptDescription(
			"Explain code with Gemini: purpose, step-by-step behavior, and "+
				"the patterns it uses.",
		),
		mcp.WithArgument("file",
			mcp.ArgumentDescription("Path of the file to explain. Leave empty to explain pasted code."),
		),
		mcp.WithArgument("detail_level",
			mcp.ArgumentDescription("basic, intermediate, or advanced. Default: intermediate"),
		),
	)
}

// Handle processes the gemini-explain prompt request.
func (p *ExplainPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	file := argOr(req, "file", "")
	detail := argOr(req, "detail_level", "intermediate")

	source := "Ask me for the code if I haven't provided it"
	if file != "" {
		source = fmt.Sprintf("Read the file %s", file)
	}

	text := fmt.Sprintf(
		"I want Gemini to explain some code at the '%s' detail level.\n\n"+
			"Please:\n"+
			"1. %s\n"+
			"2. Run `gemini_explain_code` with the code, the detected language, and detail_level='%s'\n"+
			"3. Relay the explanation and point out anything surprising or error-prone",
		detail, source, detail,
	)

	return userMessage(fmt.Sprintf("Gemini code explanation (%s)", detail), text), nil
}
