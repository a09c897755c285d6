package resources

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wiseyoda/gemini-code-assist-mcp/internal/config"
	"github.com/wiseyoda/gemini-code-assist-mcp/internal/gateway"
	"github.com/wiseyoda/gemini-code-assist-mcp/internal/templates"
)

type fakeProber struct {
	result gateway.Result
}

func (f *fakeProber) VerifyAuth(context.Context) gateway.Result {
	return f.result
}

func newTestHandler(t *testing.T, probe gateway.Result) *Handler {
	t.Helper()
	renderer, err := templates.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return NewHandler(config.Default(), renderer, &fakeProber{result: probe})
}

func readReq(uri string) mcp.ReadResourceRequest {
	req := mcp.ReadResourceRequest{}
	req.Params.URI = uri
	return req
}

func resourceText(t *testing.T, contents []mcp.ResourceContents) string {
	t.Helper()
	if len(contents) != 1 {
		t.Fatalf("contents = %d items, want 1", len(contents))
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("contents[0] is %T, want TextResourceContents", contents[0])
	}
	return tc.Text
}

// --- Config resource ---

func TestHandleConfig(t *testing.T) {
	h := newTestHandler(t, gateway.Result{Success: true})

	contents, err := h.HandleConfig(context.Background(), readReq("gemini://config"))
	if err != nil {
		t.Fatalf("HandleConfig failed: %v", err)
	}

	var view map[string]any
	if err := json.Unmarshal([]byte(resourceText(t, contents)), &view); err != nil {
		t.Fatalf("config resource is not JSON: %v", err)
	}
	if view["model"] != gateway.DefaultModel {
		t.Errorf("model = %v", view["model"])
	}
	if view["fallback_model"] != gateway.DefaultFallbackModel {
		t.Errorf("fallback_model = %v", view["fallback_model"])
	}
	if view["enable_caching"] != true {
		t.Errorf("enable_caching = %v", view["enable_caching"])
	}
}

// --- Templates resource ---

func TestHandleTemplates(t *testing.T) {
	h := newTestHandler(t, gateway.Result{Success: true})

	contents, err := h.HandleTemplates(context.Background(), readReq("gemini://templates"))
	if err != nil {
		t.Fatalf("HandleTemplates failed: %v", err)
	}

	var list map[string]string
	if err := json.Unmarshal([]byte(resourceText(t, contents)), &list); err != nil {
		t.Fatalf("templates resource is not JSON: %v", err)
	}
	for _, name := range []string{templates.CodeReview, templates.FeaturePlanReview, templates.BugAnalysis, templates.CodeExplanation} {
		if list[name] == "" {
			t.Errorf("templates resource missing %s", name)
		}
	}
}

// --- Status resource ---

func TestHandleStatus_Authenticated(t *testing.T) {
	h := newTestHandler(t, gateway.Result{Success: true, Model: gateway.DefaultModel})

	contents, err := h.HandleStatus(context.Background(), readReq("gemini://status"))
	if err != nil {
		t.Fatalf("HandleStatus failed: %v", err)
	}

	var status map[string]any
	if err := json.Unmarshal([]byte(resourceText(t, contents)), &status); err != nil {
		t.Fatalf("status resource is not JSON: %v", err)
	}
	if status["authenticated"] != true {
		t.Errorf("authenticated = %v", status["authenticated"])
	}
	if status["cli_available"] != true {
		t.Errorf("cli_available = %v", status["cli_available"])
	}
	if _, present := status["error"]; present {
		t.Error("error should be absent on success")
	}
}

func TestHandleStatus_CLIMissing(t *testing.T) {
	h := newTestHandler(t, gateway.Result{
		Success:      false,
		ErrorKind:    gateway.ErrToolNotFound,
		ErrorMessage: "gemini CLI not found",
	})

	contents, err := h.HandleStatus(context.Background(), readReq("gemini://status"))
	if err != nil {
		t.Fatalf("HandleStatus failed: %v", err)
	}

	text := resourceText(t, contents)
	var status map[string]any
	if err := json.Unmarshal([]byte(text), &status); err != nil {
		t.Fatalf("status resource is not JSON: %v", err)
	}
	if status["authenticated"] != false {
		t.Errorf("authenticated = %v", status["authenticated"])
	}
	if status["cli_available"] != false {
		t.Errorf("cli_available = %v", status["cli_available"])
	}
	if !strings.Contains(text, "gemini CLI not found") {
		t.Errorf("status missing error detail: %s", text)
	}
}

func TestHandleStatus_AuthMissing(t *testing.T) {
	h := newTestHandler(t, gateway.Result{
		Success:      false,
		ErrorKind:    gateway.ErrAuthUnavailable,
		ErrorMessage: "credentials missing",
	})

	contents, err := h.HandleStatus(context.Background(), readReq("gemini://status"))
	if err != nil {
		t.Fatalf("HandleStatus failed: %v", err)
	}

	var status map[string]any
	if err := json.Unmarshal([]byte(resourceText(t, contents)), &status); err != nil {
		t.Fatalf("status resource is not JSON: %v", err)
	}
	// CLI is present, credentials are not.
	if status["cli_available"] != true {
		t.Errorf("cli_available = %v, want true", status["cli_available"])
	}
	if status["authenticated"] != false {
		t.Errorf("authenticated = %v, want false", status["authenticated"])
	}
}
