// Package review turns raw model output into a structured code review
// report. Models are asked for JSON but don't always comply, so parsing
// degrades gracefully: fenced JSON when present, plain text otherwise.
package review

import (
	"encoding/json"
	"strings"
)

// Issue is one identified problem in the reviewed code.
type Issue struct {
	Line     int    `json:"line,omitempty"`
	Severity string `json:"severity,omitempty"`
	Message  string `json:"message"`
}

// Suggestion is one proposed improvement.
type Suggestion struct {
	Line       int    `json:"line,omitempty"`
	Suggestion string `json:"suggestion"`
}

// Report is the structured outcome of a code review.
type Report struct {
	Summary     string       `json:"summary"`
	Issues      []Issue      `json:"issues"`
	Suggestions []Suggestion `json:"suggestions"`
	Rating      string       `json:"rating"`
}

// rawReport accepts the loose shapes models actually emit: issues and
// suggestions may be strings or objects with varying key names.
type rawReport struct {
	Summary     string            `json:"summary"`
	Issues      []json.RawMessage `json:"issues"`
	Suggestions []json.RawMessage `json:"suggestions"`
	Rating      string            `json:"rating"`
}

// Parse extracts a Report from model output. It never fails: output
// without a parseable JSON block becomes a text-form report.
func Parse(content string) Report {
	jsonBlock, ok := extractJSONBlock(content)
	if !ok {
		return textReport(content)
	}

	var raw rawReport
	if err := json.Unmarshal([]byte(jsonBlock), &raw); err != nil {
		return fallbackReport(content)
	}

	report := Report{
		Summary:     raw.Summary,
		Issues:      make([]Issue, 0, len(raw.Issues)),
		Suggestions: make([]Suggestion, 0, len(raw.Suggestions)),
		Rating:      raw.Rating,
	}
	if report.Summary == "" {
		report.Summary = "Code review completed"
	}
	if report.Rating == "" {
		report.Rating = "Review completed"
	}

	for _, item := range raw.Issues {
		report.Issues = append(report.Issues, normalizeIssue(item))
	}
	for _, item := range raw.Suggestions {
		if s, ok := normalizeSuggestion(item); ok {
			report.Suggestions = append(report.Suggestions, s)
		}
	}
	return report
}

// extractJSONBlock returns the contents of the first ```json fenced
// block. A fence with no closing marker reports not found.
func extractJSONBlock(content string) (string, bool) {
	const fence = "```json"
	start := strings.Index(content, fence)
	if start == -1 {
		return "", false
	}
	rest := content[start+len(fence):]
	end := strings.Index(rest, "```")
	if end == -1 {
		return "", false
	}
	return strings.TrimSpace(rest[:end]), true
}

// textReport shapes non-JSON output: truncated summary, each line kept
// as a suggestion.
func textReport(content string) Report {
	report := Report{
		Summary: truncate(content, 500),
		Issues:  []Issue{},
		Rating:  "Review completed",
	}
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		report.Suggestions = append(report.Suggestions, Suggestion{Suggestion: line})
	}
	if report.Suggestions == nil {
		report.Suggestions = []Suggestion{}
	}
	return report
}

// fallbackReport shapes output whose JSON block failed to parse: the
// whole response is preserved as a single suggestion.
func fallbackReport(content string) Report {
	return Report{
		Summary:     truncate(content, 200),
		Issues:      []Issue{},
		Suggestions: []Suggestion{{Suggestion: content}},
		Rating:      "Review completed (text format)",
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// normalizeIssue accepts a bare string or an object. Objects may name
// the text "message" or "issue" and may carry line and severity.
func normalizeIssue(item json.RawMessage) Issue {
	var s string
	if err := json.Unmarshal(item, &s); err == nil {
		return Issue{Message: s}
	}

	var obj struct {
		Line     json.Number `json:"line"`
		Severity string      `json:"severity"`
		Message  string      `json:"message"`
		Issue    string      `json:"issue"`
	}
	if err := json.Unmarshal(item, &obj); err != nil {
		return Issue{Message: string(item)}
	}

	msg := obj.Message
	if msg == "" {
		msg = obj.Issue
	}
	if msg == "" {
		msg = string(item)
	}
	line, _ := obj.Line.Int64()
	return Issue{Line: int(line), Severity: obj.Severity, Message: msg}
}

// normalizeSuggestion accepts a bare string or an object with
// "suggestion" or "text". Empty items are dropped.
func normalizeSuggestion(item json.RawMessage) (Suggestion, bool) {
	var s string
	if err := json.Unmarshal(item, &s); err == nil {
		if s == "" {
			return Suggestion{}, false
		}
		return Suggestion{Suggestion: s}, true
	}

	var obj struct {
		Line       json.Number `json:"line"`
		Suggestion string      `json:"suggestion"`
		Text       string      `json:"text"`
	}
	if err := json.Unmarshal(item, &obj); err != nil {
		return Suggestion{Suggestion: string(item)}, true
	}

	text := obj.Suggestion
	if text == "" {
		text = obj.Text
	}
	if text == "" {
		text = string(item)
	}
	line, _ := obj.Line.Int64()
	return Suggestion{Line: int(line), Suggestion: text}, true
}
