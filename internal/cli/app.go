package cli

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/wiseyoda/gemini-code-assist-mcp/internal/config"
	"github.com/wiseyoda/gemini-code-assist-mcp/internal/gateway"
	"github.com/wiseyoda/gemini-code-assist-mcp/internal/review"
	"github.com/wiseyoda/gemini-code-assist-mcp/internal/templates"
)

// Invoker is the gateway surface the CLI depends on.
type Invoker interface {
	Invoke(ctx context.Context, req gateway.Request) gateway.Result
	VerifyAuth(ctx context.Context) gateway.Result
}

// App holds the resolved dependencies shared by every command.
type App struct {
	Cfg      config.Config
	Client   Invoker
	Renderer templates.Renderer
	Out      *Formatter

	ShowPrompts bool
	Verbose     bool
}

// ReviewOptions are the flags of the review command.
type ReviewOptions struct {
	File     string
	Language string
	Focus    string
	Output   string
}

// Review runs a code review and prints the structured report.
func (a *App) Review(ctx context.Context, opts ReviewOptions) error {
	code, err := ReadFileOrStdin(opts.File, a.Cfg.MaxFileSizeBytes())
	if err != nil {
		return err
	}

	language := opts.Language
	if language == "" {
		language = DetectLanguage(opts.File)
	}
	if language == "" {
		language = "auto-detect"
	}

	if a.Verbose {
		a.Out.Info(fmt.Sprintf("Reviewing %d bytes of %s code (focus: %s)", len(code), language, opts.Focus))
	}

	system, user, err := a.Renderer.Render(templates.CodeReview, templates.CodeReviewData{
		Language:         language,
		Code:             code,
		FocusInstruction: templates.FocusInstruction(opts.Focus),
	})
	if err != nil {
		return err
	}

	res := a.Client.Invoke(ctx, gateway.Request{SystemPrompt: system, UserPrompt: user})
	if !res.Success {
		return failureErr(res)
	}
	a.noteFallback(res)

	report := review.Parse(res.Content)
	if err := a.Out.ReviewReport(report); err != nil {
		return err
	}
	if a.ShowPrompts {
		a.Out.Prompts(system, user, res.Content)
	}
	if opts.Output != "" {
		return SaveOutput(res.Content, opts.Output)
	}
	return nil
}

// FeatureOptions are the flags of the feature command.
type FeatureOptions struct {
	File       string
	Context    string
	FocusAreas string
	Output     string
}

// Feature proofreads a feature plan document.
func (a *App) Feature(ctx context.Context, opts FeatureOptions) error {
	plan, err := ReadFileOrStdin(opts.File, a.Cfg.MaxFileSizeBytes())
	if err != nil {
		return err
	}

	system, user, err := a.Renderer.Render(templates.FeaturePlanReview, templates.FeaturePlanData{
		FeaturePlan: plan,
		Context:     opts.Context,
		FocusAreas:  opts.FocusAreas,
	})
	if err != nil {
		return err
	}

	res := a.Client.Invoke(ctx, gateway.Request{SystemPrompt: system, UserPrompt: user})
	if !res.Success {
		return failureErr(res)
	}
	a.noteFallback(res)

	if err := a.Out.Text("Feature Plan Review", "review", res.Content); err != nil {
		return err
	}
	if a.ShowPrompts {
		a.Out.Prompts(system, user, res.Content)
	}
	if opts.Output != "" {
		return SaveOutput(res.Content, opts.Output)
	}
	return nil
}

// BugOptions are the flags of the bug command.
type BugOptions struct {
	Description string
	CodeFile    string
	LogsFile    string
	Environment string
	Steps       string
	Language    string
	Output      string
}

// Bug analyzes a bug report.
func (a *App) Bug(ctx context.Context, opts BugOptions) error {
	if opts.Description == "" {
		return errors.New("a bug description is required (--description)")
	}

	codeContext := ""
	if opts.CodeFile != "" {
		var err error
		codeContext, err = ReadFileOrStdin(opts.CodeFile, a.Cfg.MaxFileSizeBytes())
		if err != nil {
			return err
		}
	}

	logs := ""
	if opts.LogsFile != "" {
		var err error
		logs, err = ReadFileOrStdin(opts.LogsFile, a.Cfg.MaxFileSizeBytes())
		if err != nil {
			return err
		}
	}

	language := opts.Language
	if language == "" {
		language = DetectLanguage(opts.CodeFile)
	}
	if language == "" {
		language = "unknown"
	}

	system, user, err := a.Renderer.Render(templates.BugAnalysis, templates.BugAnalysisData{
		BugDescription:    opts.Description,
		ErrorLogs:         logs,
		Language:          language,
		CodeContext:       codeContext,
		Environment:       opts.Environment,
		ReproductionSteps: opts.Steps,
	})
	if err != nil {
		return err
	}

	res := a.Client.Invoke(ctx, gateway.Request{SystemPrompt: system, UserPrompt: user})
	if !res.Success {
		return failureErr(res)
	}
	a.noteFallback(res)

	if err := a.Out.Text("Bug Analysis", "analysis", res.Content); err != nil {
		return err
	}
	if a.ShowPrompts {
		a.Out.Prompts(system, user, res.Content)
	}
	if opts.Output != "" {
		return SaveOutput(res.Content, opts.Output)
	}
	return nil
}

// ExplainOptions are the flags of the explain command.
type ExplainOptions struct {
	File        string
	Language    string
	DetailLevel string
	Questions   string
	Output      string
}

// Explain asks for a code explanation.
func (a *App) Explain(ctx context.Context, opts ExplainOptions) error {
	code, err := ReadFileOrStdin(opts.File, a.Cfg.MaxFileSizeBytes())
	if err != nil {
		return err
	}

	language := opts.Language
	if language == "" {
		language = DetectLanguage(opts.File)
	}
	if language == "" {
		language = "auto-detect"
	}

	system, user, err := a.Renderer.Render(templates.CodeExplanation, templates.CodeExplanationData{
		Language:    language,
		Code:        code,
		DetailLevel: opts.DetailLevel,
		Questions:   opts.Questions,
	})
	if err != nil {
		return err
	}

	res := a.Client.Invoke(ctx, gateway.Request{SystemPrompt: system, UserPrompt: user})
	if !res.Success {
		return failureErr(res)
	}
	a.noteFallback(res)

	if err := a.Out.Text("Code Explanation", "explanation", res.Content); err != nil {
		return err
	}
	if a.ShowPrompts {
		a.Out.Prompts(system, user, res.Content)
	}
	if opts.Output != "" {
		return SaveOutput(res.Content, opts.Output)
	}
	return nil
}

// Status probes the gemini CLI and prints availability.
func (a *App) Status(ctx context.Context) error {
	_, lookErr := exec.LookPath(a.Cfg.Binary)
	probe := a.Client.VerifyAuth(ctx)

	values := map[string]string{
		"Binary":        a.Cfg.Binary,
		"CLI available": yesNo(lookErr == nil),
		"Authenticated": yesNo(probe.Success),
		"Model":         a.Cfg.Model,
		"Fallback":      a.Cfg.FallbackModel,
	}
	keys := []string{"Binary", "CLI available", "Authenticated", "Model", "Fallback"}
	if !probe.Success {
		values["Error"] = probe.ErrorMessage
		keys = append(keys, "Error")
	}

	if err := a.Out.KeyValues("Gemini CLI Status", keys, values); err != nil {
		return err
	}
	if !probe.Success {
		return failureErr(probe)
	}
	return nil
}

// Config prints the effective configuration.
func (a *App) Config() error {
	keys := []string{
		"Name", "Version", "Binary", "Model", "Fallback model",
		"Timeout", "Caching", "Cache TTL", "Max file size", "Max context files",
	}
	values := map[string]string{
		"Name":              a.Cfg.Name,
		"Version":           a.Cfg.Version,
		"Binary":            a.Cfg.Binary,
		"Model":             a.Cfg.Model,
		"Fallback model":    a.Cfg.FallbackModel,
		"Timeout":           fmt.Sprintf("%ds", a.Cfg.TimeoutSeconds),
		"Caching":           yesNo(a.Cfg.EnableCaching),
		"Cache TTL":         fmt.Sprintf("%ds", a.Cfg.CacheTTLSeconds),
		"Max file size":     fmt.Sprintf("%.1f MB", a.Cfg.MaxFileSizeMB),
		"Max context files": strconv.Itoa(a.Cfg.MaxContextFiles),
	}
	return a.Out.KeyValues("Configuration", keys, values)
}

// Templates prints the available prompt templates.
func (a *App) Templates() error {
	list := a.Renderer.List()
	keys := make([]string, 0, len(list))
	for _, name := range []string{
		templates.CodeReview,
		templates.FeaturePlanReview,
		templates.BugAnalysis,
		templates.CodeExplanation,
	} {
		if _, ok := list[name]; ok {
			keys = append(keys, name)
		}
	}
	return a.Out.KeyValues("Prompt Templates", keys, list)
}

// noteFallback surfaces a fallback retry to the user.
func (a *App) noteFallback(res gateway.Result) {
	if res.FallbackUsed {
		a.Out.Warning(fmt.Sprintf("primary model rejected; response from fallback model %s", res.Model))
	}
}

// failureErr converts a gateway failure into a command error.
func failureErr(res gateway.Result) error {
	return fmt.Errorf("%s: %s", res.ErrorKind, res.ErrorMessage)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
