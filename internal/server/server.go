// Package server wires all MCP components and creates the server
// instance.
//
// This is the composition root: it creates the concrete gateway client,
// renderer, and cache, and injects them into the tools, prompts, and
// resources that depend on abstractions. No business logic lives here.
package server

import (
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/wiseyoda/gemini-code-assist-mcp/internal/cache"
	"github.com/wiseyoda/gemini-code-assist-mcp/internal/config"
	"github.com/wiseyoda/gemini-code-assist-mcp/internal/gateway"
	"github.com/wiseyoda/gemini-code-assist-mcp/internal/prompts"
	"github.com/wiseyoda/gemini-code-assist-mcp/internal/resources"
	"github.com/wiseyoda/gemini-code-assist-mcp/internal/templates"
	"github.com/wiseyoda/gemini-code-assist-mcp/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools, prompts,
// and resources registered. This is the single place where the
// dependency graph is resolved.
func New(cfg config.Config) (*server.MCPServer, error) {
	// --- Create shared dependencies ---

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("creating template renderer: %w", err)
	}

	client := gateway.NewWithBinary(cfg.Binary, cfg.GatewayOptions())

	var responseCache *cache.Cache
	if cfg.EnableCaching {
		responseCache = cache.New(time.Duration(cfg.CacheTTLSeconds) * time.Second)
	}

	deps := tools.Deps{
		Invoker:  client,
		Renderer: renderer,
		Cache:    responseCache,
		Model:    cfg.Model,
	}

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		cfg.Name,
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register tools ---

	reviewTool := tools.NewReviewTool(deps)
	s.AddTool(reviewTool.Definition(), reviewTool.Handle)

	featurePlanTool := tools.NewFeaturePlanTool(deps)
	s.AddTool(featurePlanTool.Definition(), featurePlanTool.Handle)

	bugTool := tools.NewBugTool(deps)
	s.AddTool(bugTool.Definition(), bugTool.Handle)

	explainTool := tools.NewExplainTool(deps)
	s.AddTool(explainTool.Definition(), explainTool.Handle)

	// --- Register prompts ---

	reviewPrompt := prompts.NewReviewPrompt()
	s.AddPrompt(reviewPrompt.Definition(), reviewPrompt.Handle)

	planPrompt := prompts.NewPlanPrompt()
	s.AddPrompt(planPrompt.Definition(), planPrompt.Handle)

	debugPrompt := prompts.NewDebugPrompt()
	s.AddPrompt(debugPrompt.Definition(), debugPrompt.Handle)

	explainPrompt := prompts.NewExplainPrompt()
	s.AddPrompt(explainPrompt.Definition(), explainPrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(cfg, renderer, client)
	s.AddResource(resourceHandler.ConfigResource(), resourceHandler.HandleConfig)
	s.AddResource(resourceHandler.TemplatesResource(), resourceHandler.HandleTemplates)
	s.AddResource(resourceHandler.StatusResource(), resourceHandler.HandleStatus)

	return s, nil
}

// serverInstructions returns the system instructions that tell the AI
// how to use the Gemini tools effectively.
func serverInstructions() string {
	return `You have access to Gemini development assistance tools backed by the
Google Gemini CLI.

## Tools

- gemini_review_code: structured code review (issues, suggestions, rating).
  Returns a JSON report. Use the focus parameter to narrow the review to
  security, performance, style, or bugs.
- gemini_proofread_feature_plan: feedback on feature plans and specs —
  clarity, feasibility, missing considerations.
- gemini_analyze_bug: root-cause analysis with suggested fixes. Provide
  as much context as you have: code, logs, environment, reproduction steps.
- gemini_explain_code: explanation of what code does and how. Use
  detail_level to match the audience.

## When to use them

Use these tools to get a second, independent model's perspective:
- Before merging significant changes, run gemini_review_code
- When a plan or spec feels incomplete, run gemini_proofread_feature_plan
- When stuck on a bug, run gemini_analyze_bug with everything collected
- When onboarding to unfamiliar code, run gemini_explain_code

## Requirements

The gemini CLI must be installed and authenticated on this machine.
Check the gemini://status resource when a tool reports the CLI missing
or unauthenticated. Responses may take up to a minute for large inputs;
results for identical inputs are cached.

## Important

- Pass REAL code and documents to the tools, never placeholders
- Include the language parameter when you know it — detection is a fallback
- Review tool output is advisory: weigh it against project context before
  applying changes`
}
