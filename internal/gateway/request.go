package gateway

import (
	"fmt"
	"os"
	"strings"
)

// Request describes one call to the gemini CLI. It is a per-call value:
// built by the transport, consumed by Invoke, then discarded.
type Request struct {
	// SystemPrompt carries the instructions fixed for the operation type.
	SystemPrompt string

	// UserPrompt is the instantiated template content. Variable
	// substitution happens in the caller, not here.
	UserPrompt string

	// Context is optional free-form background inserted between the
	// system and user sections.
	Context string

	// Files lists paths whose contents are passed to the CLI on stdin
	// via a scoped temporary file.
	Files []string

	Options Options
}

// composePrompt flattens the structured request into the single prompt
// string the gemini CLI accepts via -p.
func composePrompt(req Request) string {
	var b strings.Builder
	b.WriteString("System: ")
	b.WriteString(req.SystemPrompt)
	b.WriteString("\n\n")
	if req.Context != "" {
		b.WriteString("Context:\n")
		b.WriteString(req.Context)
		b.WriteString("\n\n")
	}
	b.WriteString("User: ")
	b.WriteString(req.UserPrompt)
	return b.String()
}

// writeContextFile concatenates the request's files into a temporary
// file with per-file headers. Unreadable files are noted inline rather
// than failing the whole invocation. The caller owns removal.
func writeContextFile(files []string) (string, error) {
	tmp, err := os.CreateTemp("", "gemini-context-*.txt")
	if err != nil {
		return "", fmt.Errorf("creating context temp file: %w", err)
	}

	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(tmp, "--- %s (Error: %v) ---\n\n", path, err)
			continue
		}
		fmt.Fprintf(tmp, "--- %s ---\n", path)
		tmp.Write(data)
		tmp.WriteString("\n\n")
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("closing context temp file: %w", err)
	}
	return tmp.Name(), nil
}
