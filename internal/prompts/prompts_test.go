package prompts

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func promptReq(args map[string]string) mcp.GetPromptRequest {
	req := mcp.GetPromptRequest{}
	req.Params.Arguments = args
	return req
}

func promptText(t *testing.T, result *mcp.GetPromptResult) string {
	t.Helper()
	if result == nil || len(result.Messages) != 1 {
		t.Fatalf("result should carry exactly one message, got %+v", result)
	}
	tc, ok := result.Messages[0].Content.(mcp.TextContent)
	if !ok {
		t.Fatalf("message content is %T, want TextContent", result.Messages[0].Content)
	}
	if result.Messages[0].Role != mcp.RoleUser {
		t.Errorf("role = %s, want user", result.Messages[0].Role)
	}
	return tc.Text
}

func TestReviewPrompt_WithFile(t *testing.T) {
	result, err := NewReviewPrompt().Handle(context.Background(), promptReq(map[string]string{
		"file":  "internal/server/server.go",
		"focus": "security",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	text := promptText(t, result)
	for _, want := range []string{"internal/server/server.go", "gemini_review_code", "focus='security'"} {
		if !strings.Contains(text, want) {
			t.Errorf("prompt missing %q:\n%s", want, text)
		}
	}
}

func TestReviewPrompt_Defaults(t *testing.T) {
	result, err := NewReviewPrompt().Handle(context.Background(), promptReq(nil))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	text := promptText(t, result)
	if !strings.Contains(text, "focus='general'") {
		t.Errorf("focus should default to general:\n%s", text)
	}
	if !strings.Contains(text, "Ask me for the code") {
		t.Errorf("no file given: prompt should ask for code:\n%s", text)
	}
}

func TestDebugPrompt(t *testing.T) {
	result, err := NewDebugPrompt().Handle(context.Background(), promptReq(map[string]string{
		"description": "server hangs on shutdown",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	text := promptText(t, result)
	for _, want := range []string{"server hangs on shutdown", "gemini_analyze_bug", "reproduction steps"} {
		if !strings.Contains(text, want) {
			t.Errorf("prompt missing %q:\n%s", want, text)
		}
	}
}

func TestPlanPrompt(t *testing.T) {
	result, err := NewPlanPrompt().Handle(context.Background(), promptReq(map[string]string{
		"file": "docs/plan.md",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	text := promptText(t, result)
	for _, want := range []string{"docs/plan.md", "gemini_proofread_feature_plan", "completeness,feasibility,clarity"} {
		if !strings.Contains(text, want) {
			t.Errorf("prompt missing %q:\n%s", want, text)
		}
	}
}

func TestExplainPrompt(t *testing.T) {
	result, err := NewExplainPrompt().Handle(context.Background(), promptReq(map[string]string{
		"detail_level": "advanced",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	text := promptText(t, result)
	for _, want := range []string{"gemini_explain_code", "detail_level='advanced'"} {
		if !strings.Contains(text, want) {
			t.Errorf("prompt missing %q:\n%s", want, text)
		}
	}
}

func TestDefinitions_HaveNamesAndDescriptions(t *testing.T) {
	defs := []mcp.Prompt{
		NewReviewPrompt().Definition(),
		NewDebugPrompt().Definition(),
		NewPlanPrompt().Definition(),
		NewExplainPrompt().Definition(),
	}
	seen := map[string]bool{}
	for _, d := range defs {
		if d.Name == "" || d.Description == "" {
			t.Errorf("prompt %q missing name or description", d.Name)
		}
		if seen[d.Name] {
			t.Errorf("duplicate prompt name %q", d.Name)
		}
		seen[d.Name] = true
	}
}
