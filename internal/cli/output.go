// Package cli implements the command-line companion to the MCP server.
// It drives the same gateway and templates from a terminal, with styled
// or JSON output.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/wiseyoda/gemini-code-assist-mcp/internal/review"
)

// Formatter renders command output. In JSON mode all decorative output
// is suppressed and results are printed as JSON documents.
type Formatter struct {
	json bool
	out  io.Writer
	err  io.Writer

	successStyle lipgloss.Style
	errorStyle   lipgloss.Style
	warnStyle    lipgloss.Style
	infoStyle    lipgloss.Style
	titleStyle   lipgloss.Style
	dimStyle     lipgloss.Style
}

// NewFormatter creates a Formatter writing to stdout/stderr. Color is
// used only on a TTY and never when noColor is set.
func NewFormatter(jsonOutput, noColor bool) *Formatter {
	f := &Formatter{
		json: jsonOutput,
		out:  os.Stdout,
		err:  os.Stderr,
	}

	color := !noColor && isatty.IsTerminal(os.Stdout.Fd())
	if color {
		f.successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
		f.errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		f.warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
		f.infoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
		f.titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
		f.dimStyle = lipgloss.NewStyle().Faint(true)
	} else {
		plain := lipgloss.NewStyle()
		f.successStyle, f.errorStyle, f.warnStyle = plain, plain, plain
		f.infoStyle, f.titleStyle, f.dimStyle = plain, plain, plain
	}
	return f
}

// Success prints a success line, except in JSON mode.
func (f *Formatter) Success(message string) {
	if f.json {
		return
	}
	fmt.Fprintln(f.out, f.successStyle.Render("✓ "+message))
}

// Error prints an error line to stderr, except in JSON mode.
func (f *Formatter) Error(message string) {
	if f.json {
		return
	}
	fmt.Fprintln(f.err, f.errorStyle.Render("✗ "+message))
}

// Warning prints a warning line, except in JSON mode.
func (f *Formatter) Warning(message string) {
	if f.json {
		return
	}
	fmt.Fprintln(f.out, f.warnStyle.Render("! "+message))
}

// Info prints an informational line, except in JSON mode.
func (f *Formatter) Info(message string) {
	if f.json {
		return
	}
	fmt.Fprintln(f.out, f.infoStyle.Render("• "+message))
}

// JSON prints v as an indented JSON document.
func (f *Formatter) JSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	fmt.Fprintln(f.out, string(data))
	return nil
}

// Section prints a titled block of text.
func (f *Formatter) Section(title, body string) {
	fmt.Fprintln(f.out, f.titleStyle.Render(title))
	fmt.Fprintln(f.out, f.dimStyle.Render(strings.Repeat("─", 60)))
	fmt.Fprintln(f.out, body)
	fmt.Fprintln(f.out)
}

// ReviewReport prints a structured code review.
func (f *Formatter) ReviewReport(report review.Report) error {
	if f.json {
		return f.JSON(report)
	}

	f.Section("Review Summary", report.Summary)

	if len(report.Issues) > 0 {
		var sb strings.Builder
		for _, issue := range report.Issues {
			loc := ""
			if issue.Line > 0 {
				loc = fmt.Sprintf("line %d, ", issue.Line)
			}
			severity := issue.Severity
			if severity == "" {
				severity = "note"
			}
			fmt.Fprintf(&sb, "- [%s%s] %s\n", loc, severity, issue.Message)
		}
		f.Section("Issues", strings.TrimRight(sb.String(), "\n"))
	}

	if len(report.Suggestions) > 0 {
		var sb strings.Builder
		for i, s := range report.Suggestions {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, s.Suggestion)
		}
		f.Section("Suggestions", strings.TrimRight(sb.String(), "\n"))
	}

	fmt.Fprintln(f.out, f.titleStyle.Render("Rating: ")+report.Rating)
	return nil
}

// Text prints a free-form result under a title, or as JSON with the
// given key.
func (f *Formatter) Text(title, key, content string) error {
	if f.json {
		return f.JSON(map[string]string{key: content})
	}
	f.Section(title, content)
	return nil
}

// Prompts prints the prompt/response exchange for --show-prompts.
func (f *Formatter) Prompts(system, user, response string) {
	if f.json {
		return
	}
	f.Section("System Prompt", system)
	f.Section("User Prompt", user)
	f.Section("Raw Response", response)
}

// KeyValues prints aligned key/value pairs under a title, preserving
// the given order.
func (f *Formatter) KeyValues(title string, keys []string, values map[string]string) error {
	if f.json {
		return f.JSON(values)
	}
	width := 0
	for _, k := range keys {
		if len(k) > width {
			width = len(k)
		}
	}
	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, "%-*s  %s\n", width, k, values[k])
	}
	f.Section(title, strings.TrimRight(sb.String(), "\n"))
	return nil
}
