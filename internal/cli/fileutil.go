package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
)

// extensionLanguages maps file extensions to the language names the
// prompt templates expect.
var extensionLanguages = map[string]string{
	".py":    "python",
	".js":    "javascript",
	".ts":    "typescript",
	".jsx":   "javascript",
	".tsx":   "typescript",
	".java":  "java",
	".cpp":   "cpp",
	".c":     "c",
	".h":     "c",
	".hpp":   "cpp",
	".cs":    "csharp",
	".php":   "php",
	".rb":    "ruby",
	".go":    "go",
	".rs":    "rust",
	".swift": "swift",
	".kt":    "kotlin",
	".scala": "scala",
	".sh":    "bash",
	".bash":  "bash",
	".zsh":   "bash",
	".ps1":   "powershell",
	".r":     "r",
	".sql":   "sql",
	".html":  "html",
	".css":   "css",
	".scss":  "scss",
	".xml":   "xml",
	".json":  "json",
	".yaml":  "yaml",
	".yml":   "yaml",
	".toml":  "toml",
	".md":    "markdown",
	".tex":   "latex",
}

// specialFilenames covers files identified by name rather than
// extension.
var specialFilenames = map[string]string{
	"dockerfile": "dockerfile",
	"makefile":   "makefile",
	"rakefile":   "rakefile",
}

// DetectLanguage guesses the programming language from a file path.
// Returns empty when unknown.
func DetectLanguage(path string) string {
	if path == "" {
		return ""
	}
	if lang, ok := specialFilenames[strings.ToLower(filepath.Base(path))]; ok {
		return lang
	}
	return extensionLanguages[strings.ToLower(filepath.Ext(path))]
}

// ReadFileOrStdin reads the whole content of path, or of stdin when
// path is empty. maxBytes > 0 caps file size.
func ReadFileOrStdin(path string, maxBytes int64) (string, error) {
	if path == "" {
		if isatty.IsTerminal(os.Stdin.Fd()) {
			fmt.Fprintln(os.Stderr, "Reading from stdin (Ctrl+D to finish):")
		}
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory, not a file", path)
	}
	if maxBytes > 0 && info.Size() > maxBytes {
		return "", fmt.Errorf("%s is %d bytes, over the %d byte limit", path, info.Size(), maxBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// ReadFiles reads and combines multiple files with per-file headers.
func ReadFiles(paths []string, maxBytes int64, maxFiles int) (string, error) {
	if maxFiles > 0 && len(paths) > maxFiles {
		return "", fmt.Errorf("%d files given, limit is %d", len(paths), maxFiles)
	}

	var sb strings.Builder
	for _, path := range paths {
		content, err := ReadFileOrStdin(path, maxBytes)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&sb, "--- %s ---\n%s\n\n", path, content)
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

// SaveOutput writes content to path.
func SaveOutput(content, path string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("saving to %s: %w", path, err)
	}
	fmt.Fprintf(os.Stderr, "Output saved to: %s\n", path)
	return nil
}
