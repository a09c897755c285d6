package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wiseyoda/gemini-code-assist-mcp/internal/config"
	"github.com/wiseyoda/gemini-code-assist-mcp/internal/gateway"
	"github.com/wiseyoda/gemini-code-assist-mcp/internal/templates"
)

type fakeInvoker struct {
	result     gateway.Result
	authResult gateway.Result
	calls      int
	lastReq    gateway.Request
}

func (f *fakeInvoker) Invoke(_ context.Context, req gateway.Request) gateway.Result {
	f.calls++
	f.lastReq = req
	return f.result
}

func (f *fakeInvoker) VerifyAuth(context.Context) gateway.Result {
	return f.authResult
}

// newTestApp builds an App whose formatter writes into buffers.
func newTestApp(t *testing.T, invoker Invoker, jsonOutput bool) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	renderer, err := templates.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	formatter := NewFormatter(jsonOutput, true)
	formatter.out = out
	formatter.err = errOut

	return &App{
		Cfg:      config.Default(),
		Client:   invoker,
		Renderer: renderer,
		Out:      formatter,
	}, out, errOut
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

// --- Review ---

func TestApp_Review_StructuredOutput(t *testing.T) {
	content := "```json\n" + `{"summary": "fine", "issues": [{"line": 2, "severity": "warning", "message": "shadowed err"}], "suggestions": ["split the function"], "rating": "7/10"}` + "\n```"
	fake := &fakeInvoker{result: gateway.Result{Success: true, Content: content, Model: gateway.DefaultModel}}
	app, out, _ := newTestApp(t, fake, false)

	file := writeTempFile(t, "main.go", "package main")
	err := app.Review(context.Background(), ReviewOptions{File: file, Focus: "bugs"})
	if err != nil {
		t.Fatalf("Review failed: %v", err)
	}

	text := out.String()
	for _, want := range []string{"Review Summary", "fine", "shadowed err", "split the function", "7/10"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}

	// Language detected from the file extension.
	if !strings.Contains(fake.lastReq.UserPrompt, "```go") {
		t.Error("language not detected from .go extension")
	}
	if !strings.Contains(fake.lastReq.UserPrompt, "logical errors") {
		t.Error("bugs focus not applied")
	}
}

func TestApp_Review_JSONOutput(t *testing.T) {
	fake := &fakeInvoker{result: gateway.Result{Success: true, Content: "plain text review", Model: gateway.DefaultModel}}
	app, out, _ := newTestApp(t, fake, true)

	file := writeTempFile(t, "main.go", "package main")
	if err := app.Review(context.Background(), ReviewOptions{File: file}); err != nil {
		t.Fatalf("Review failed: %v", err)
	}

	var report map[string]any
	if err := json.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatalf("JSON mode should emit valid JSON: %v\n%s", err, out.String())
	}
	if report["summary"] != "plain text review" {
		t.Errorf("summary = %v", report["summary"])
	}
}

func TestApp_Review_GatewayFailure(t *testing.T) {
	fake := &fakeInvoker{result: gateway.Result{
		Success:      false,
		ErrorKind:    gateway.ErrTimeout,
		ErrorMessage: "gemini did not finish within 1m0s",
	}}
	app, _, _ := newTestApp(t, fake, false)

	file := writeTempFile(t, "main.go", "package main")
	err := app.Review(context.Background(), ReviewOptions{File: file})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "timeout") {
		t.Errorf("error should name the kind: %v", err)
	}
}

func TestApp_Review_SavesOutput(t *testing.T) {
	fake := &fakeInvoker{result: gateway.Result{Success: true, Content: "raw model output", Model: gateway.DefaultModel}}
	app, _, _ := newTestApp(t, fake, false)

	file := writeTempFile(t, "main.go", "package main")
	outPath := filepath.Join(t.TempDir(), "report.txt")
	if err := app.Review(context.Background(), ReviewOptions{File: file, Output: outPath}); err != nil {
		t.Fatalf("Review failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("output file not written: %v", err)
	}
	if string(data) != "raw model output" {
		t.Errorf("saved content = %q", data)
	}
}

// --- Feature ---

func TestApp_Feature(t *testing.T) {
	fake := &fakeInvoker{result: gateway.Result{Success: true, Content: "add a rollout plan", Model: gateway.DefaultModel}}
	app, out, _ := newTestApp(t, fake, false)

	file := writeTempFile(t, "plan.md", "# Export feature")
	err := app.Feature(context.Background(), FeatureOptions{
		File:       file,
		Context:    "analytics dashboard",
		FocusAreas: "completeness",
	})
	if err != nil {
		t.Fatalf("Feature failed: %v", err)
	}

	if !strings.Contains(out.String(), "add a rollout plan") {
		t.Errorf("output missing review content:\n%s", out.String())
	}
	if !strings.Contains(fake.lastReq.UserPrompt, "# Export feature") {
		t.Error("plan content missing from prompt")
	}
	if !strings.Contains(fake.lastReq.UserPrompt, "Context: analytics dashboard") {
		t.Error("context missing from prompt")
	}
}

// --- Bug ---

func TestApp_Bug(t *testing.T) {
	fake := &fakeInvoker{result: gateway.Result{Success: true, Content: "nil map write", Model: gateway.DefaultModel}}
	app, out, _ := newTestApp(t, fake, false)

	codeFile := writeTempFile(t, "store.go", "m[\"k\"] = v")
	err := app.Bug(context.Background(), BugOptions{
		Description: "panic: assignment to entry in nil map",
		CodeFile:    codeFile,
		Environment: "go 1.25",
	})
	if err != nil {
		t.Fatalf("Bug failed: %v", err)
	}

	if !strings.Contains(out.String(), "nil map write") {
		t.Errorf("output missing analysis:\n%s", out.String())
	}
	// Language detected from the code file.
	if !strings.Contains(fake.lastReq.UserPrompt, "```go") {
		t.Error("language not detected from code file")
	}
}

func TestApp_Bug_RequiresDescription(t *testing.T) {
	fake := &fakeInvoker{result: gateway.Result{Success: true, Content: "x"}}
	app, _, _ := newTestApp(t, fake, false)

	if err := app.Bug(context.Background(), BugOptions{}); err == nil {
		t.Fatal("expected error for missing description")
	}
	if fake.calls != 0 {
		t.Errorf("invoker called %d times, want 0", fake.calls)
	}
}

// --- Explain ---

func TestApp_Explain(t *testing.T) {
	fake := &fakeInvoker{result: gateway.Result{Success: true, Content: "it reverses the slice", Model: gateway.DefaultModel}}
	app, out, _ := newTestApp(t, fake, false)

	file := writeTempFile(t, "rev.py", "xs.reverse()")
	err := app.Explain(context.Background(), ExplainOptions{
		File:        file,
		DetailLevel: "basic",
	})
	if err != nil {
		t.Fatalf("Explain failed: %v", err)
	}

	if !strings.Contains(out.String(), "it reverses the slice") {
		t.Errorf("output missing explanation:\n%s", out.String())
	}
	if !strings.Contains(fake.lastReq.UserPrompt, "python") {
		t.Error("language not detected from .py extension")
	}
	if !strings.Contains(fake.lastReq.UserPrompt, "Detail level: basic") {
		t.Error("detail level not passed through")
	}
}

// --- Status ---

func TestApp_Status_Unauthenticated(t *testing.T) {
	fake := &fakeInvoker{authResult: gateway.Result{
		Success:      false,
		ErrorKind:    gateway.ErrAuthUnavailable,
		ErrorMessage: "credentials missing",
	}}
	app, out, _ := newTestApp(t, fake, false)

	err := app.Status(context.Background())
	if err == nil {
		t.Fatal("unauthenticated status should return an error")
	}

	text := out.String()
	if !strings.Contains(text, "Authenticated  no") {
		t.Errorf("status output missing auth state:\n%s", text)
	}
	if !strings.Contains(text, "credentials missing") {
		t.Errorf("status output missing error detail:\n%s", text)
	}
}

// --- Config / Templates ---

func TestApp_Config(t *testing.T) {
	app, out, _ := newTestApp(t, &fakeInvoker{}, false)

	if err := app.Config(); err != nil {
		t.Fatalf("Config failed: %v", err)
	}
	text := out.String()
	for _, want := range []string{gateway.DefaultModel, gateway.DefaultFallbackModel, "60s"} {
		if !strings.Contains(text, want) {
			t.Errorf("config output missing %q:\n%s", want, text)
		}
	}
}

func TestApp_Templates(t *testing.T) {
	app, out, _ := newTestApp(t, &fakeInvoker{}, false)

	if err := app.Templates(); err != nil {
		t.Fatalf("Templates failed: %v", err)
	}
	text := out.String()
	for _, want := range []string{templates.CodeReview, templates.BugAnalysis} {
		if !strings.Contains(text, want) {
			t.Errorf("templates output missing %q:\n%s", want, text)
		}
	}
}

// --- Fallback notice ---

func TestApp_FallbackWarning(t *testing.T) {
	fake := &fakeInvoker{result: gateway.Result{
		Success:      true,
		Content:      "answer",
		Model:        "fallback-model",
		FallbackUsed: true,
	}}
	app, out, _ := newTestApp(t, fake, false)

	file := writeTempFile(t, "plan.md", "plan")
	if err := app.Feature(context.Background(), FeatureOptions{File: file}); err != nil {
		t.Fatalf("Feature failed: %v", err)
	}
	if !strings.Contains(out.String(), "fallback model fallback-model") {
		t.Errorf("fallback warning missing:\n%s", out.String())
	}
}
