// Package templates owns the prompt pairs sent to the gemini CLI.
//
// Each operation has a fixed system prompt and an embedded user
// template. Rendering substitutes caller data into the user template;
// the system prompt never varies per call.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

//go:embed prompts/*.tmpl
var promptFS embed.FS

// Template names. Each maps to a file under prompts/.
const (
	CodeReview        = "code_review.tmpl"
	FeaturePlanReview = "feature_plan_review.tmpl"
	BugAnalysis       = "bug_analysis.tmpl"
	CodeExplanation   = "code_explanation.tmpl"
)

// CodeReviewData fills the code review user template.
type CodeReviewData struct {
	Language         string
	Code             string
	FocusInstruction string
}

// FeaturePlanData fills the feature plan review user template.
type FeaturePlanData struct {
	FeaturePlan string
	Context     string
	FocusAreas  string
}

// BugAnalysisData fills the bug analysis user template.
type BugAnalysisData struct {
	BugDescription    string
	ErrorLogs         string
	Language          string
	CodeContext       string
	Environment       string
	ReproductionSteps string
}

// CodeExplanationData fills the code explanation user template.
type CodeExplanationData struct {
	Language    string
	Code        string
	DetailLevel string
	Questions   string
}

var systemPrompts = map[string]string{
	CodeReview: "You are an expert code reviewer. Analyze the provided code for:\n" +
		"1. Code quality and style issues\n" +
		"2. Potential bugs and security vulnerabilities\n" +
		"3. Performance optimizations\n" +
		"4. Best practices and maintainability\n\n" +
		"Provide specific, actionable feedback with line numbers when possible. " +
		"Format your response as structured JSON with sections for issues, " +
		"suggestions, and overall assessment.",

	FeaturePlanReview: "You are a senior software architect and product manager. " +
		"Review the provided feature plan for:\n" +
		"1. Clarity and completeness of requirements\n" +
		"2. Technical feasibility and implementation approach\n" +
		"3. Missing considerations (security, performance, testing)\n" +
		"4. User experience and edge cases\n" +
		"5. Dependencies and integration points\n\n" +
		"Provide constructive feedback to improve the plan.",

	BugAnalysis: "You are a debugging expert. Analyze the provided bug report and code to:\n" +
		"1. Identify the root cause of the issue\n" +
		"2. Explain why the bug occurs\n" +
		"3. Suggest specific fixes with code examples\n" +
		"4. Recommend preventive measures\n" +
		"5. Consider edge cases and testing strategies\n\n" +
		"Be thorough but concise in your analysis.",

	CodeExplanation: "You are a technical educator. Explain the provided code in a clear, " +
		"comprehensive way that helps others understand:\n" +
		"1. What the code does (high-level purpose)\n" +
		"2. How it works (step-by-step breakdown)\n" +
		"3. Key concepts and patterns used\n" +
		"4. Important implementation details\n" +
		"5. Potential improvements or alternatives\n\n" +
		"Adjust your explanation level based on the requested detail level.",
}

var descriptions = map[string]string{
	CodeReview:        "Template for code review and analysis",
	FeaturePlanReview: "Template for reviewing feature plans and specifications",
	BugAnalysis:       "Template for analyzing bugs and suggesting fixes",
	CodeExplanation:   "Template for explaining code functionality",
}

// focusInstructions maps a review focus keyword to the instruction
// appended to the code review prompt.
var focusInstructions = map[string]string{
	"security":    "Focus specifically on security vulnerabilities and potential exploits.",
	"performance": "Focus on performance optimizations and bottlenecks.",
	"style":       "Focus on code style, formatting, and best practices.",
	"bugs":        "Focus on potential bugs and logical errors.",
	"general":     "Provide a comprehensive review covering all aspects.",
}

// FocusInstruction returns the review instruction for a focus keyword.
// Unknown keywords fall back to the general instruction.
func FocusInstruction(focus string) string {
	if instr, ok := focusInstructions[focus]; ok {
		return instr
	}
	return focusInstructions["general"]
}

// Renderer produces the (system, user) prompt pair for an operation.
type Renderer interface {
	Render(name string, data any) (system, user string, err error)
	List() map[string]string
}

// EmbedRenderer renders prompts from the embedded template set.
type EmbedRenderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*EmbedRenderer, error) {
	tmpl, err := template.ParseFS(promptFS, "prompts/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing embedded prompt templates: %w", err)
	}
	return &EmbedRenderer{tmpl: tmpl}, nil
}

// Render instantiates the named user template with data and returns it
// together with the operation's system prompt.
func (r *EmbedRenderer) Render(name string, data any) (string, string, error) {
	system, ok := systemPrompts[name]
	if !ok {
		return "", "", fmt.Errorf("unknown prompt template %q", name)
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return system, buf.String(), nil
}

// List maps template names to their descriptions, for the templates
// resource.
func (r *EmbedRenderer) List() map[string]string {
	out := make(map[string]string, len(descriptions))
	for name, desc := range descriptions {
		out[name] = desc
	}
	return out
}
