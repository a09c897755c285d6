// gemini-cli runs the same AI-assisted review, bug analysis, and
// explanation workflows as the MCP server, directly from a terminal.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/wiseyoda/gemini-code-assist-mcp/internal/cli"
	"github.com/wiseyoda/gemini-code-assist-mcp/internal/config"
	"github.com/wiseyoda/gemini-code-assist-mcp/internal/gateway"
	"github.com/wiseyoda/gemini-code-assist-mcp/internal/server"
	"github.com/wiseyoda/gemini-code-assist-mcp/internal/templates"
)

var (
	flagConfig        string
	flagModel         string
	flagFallbackModel string
	flagSandbox       bool
	flagDebug         bool
	flagVerbose       bool
	flagJSON          bool
	flagNoColor       bool
	flagShowPrompts   bool
	flagTimeout       int

	app *cli.App
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gemini-cli",
		Short:         "AI-assisted code review and analysis via the Gemini CLI",
		Long:          "gemini-cli sends code, feature plans, and bug reports to Google's Gemini CLI\nand formats the responses for the terminal.",
		Version:       server.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			app, err = buildApp()
			return err
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flagConfig, "config", os.Getenv("GEMINI_MCP_CONFIG"), "path to a YAML config file")
	pf.StringVarP(&flagModel, "model", "m", "", "model to use (overrides config)")
	pf.StringVar(&flagFallbackModel, "fallback-model", "", "fallback model on rejection (overrides config)")
	pf.BoolVarP(&flagSandbox, "sandbox", "s", false, "run gemini in sandbox mode")
	pf.BoolVarP(&flagDebug, "debug", "d", false, "pass the debug flag to gemini")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "print progress details")
	pf.BoolVar(&flagJSON, "json", false, "emit machine-readable JSON")
	pf.BoolVar(&flagNoColor, "no-color", false, "disable colored output")
	pf.BoolVar(&flagShowPrompts, "show-prompts", false, "print the prompts sent to gemini")
	pf.IntVar(&flagTimeout, "timeout", 0, "gemini timeout in seconds (overrides config)")

	root.AddCommand(
		reviewCmd(),
		featureCmd(),
		bugCmd(),
		explainCmd(),
		statusCmd(),
		configCmd(),
		templatesCmd(),
		versionCmd(),
	)
	return root
}

// buildApp resolves configuration and wires the shared dependencies.
func buildApp() (*cli.App, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: could not load .env: %v\n", err)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if flagModel != "" {
		cfg.Model = flagModel
	}
	if flagFallbackModel != "" {
		cfg.FallbackModel = flagFallbackModel
	}
	if flagSandbox {
		cfg.Sandbox = true
	}
	if flagDebug {
		cfg.Debug = true
	}
	if flagTimeout > 0 {
		cfg.TimeoutSeconds = flagTimeout
	}

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("loading prompt templates: %w", err)
	}

	return &cli.App{
		Cfg:         cfg,
		Client:      gateway.NewWithBinary(cfg.Binary, cfg.GatewayOptions()),
		Renderer:    renderer,
		Out:         cli.NewFormatter(flagJSON, flagNoColor),
		ShowPrompts: flagShowPrompts,
		Verbose:     flagVerbose,
	}, nil
}

func reviewCmd() *cobra.Command {
	var opts cli.ReviewOptions
	cmd := &cobra.Command{
		Use:   "review [file]",
		Short: "Review code for issues and improvements",
		Long:  "Review code from a file or stdin. The focus narrows the review to\nsecurity, performance, style, or bugs.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.File = args[0]
			}
			return app.Review(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.Language, "language", "l", "", "programming language (detected from the filename by default)")
	cmd.Flags().StringVarP(&opts.Focus, "focus", "f", "general", "review focus: general, security, performance, style, bugs")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "save the raw response to a file")
	return cmd
}

func featureCmd() *cobra.Command {
	var opts cli.FeatureOptions
	cmd := &cobra.Command{
		Use:   "feature [file]",
		Short: "Proofread a feature plan or design document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.File = args[0]
			}
			return app.Feature(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.Context, "context", "c", "", "project context for the review")
	cmd.Flags().StringVar(&opts.FocusAreas, "focus-areas", "completeness,feasibility,clarity", "comma-separated areas to focus on")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "save the raw response to a file")
	return cmd
}

func bugCmd() *cobra.Command {
	var opts cli.BugOptions
	cmd := &cobra.Command{
		Use:   "bug",
		Short: "Analyze a bug and suggest fixes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Bug(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.Description, "description", "D", "", "description of the bug (required)")
	cmd.Flags().StringVar(&opts.CodeFile, "code", "", "file with the relevant code")
	cmd.Flags().StringVar(&opts.LogsFile, "logs", "", "file with error logs or a stack trace")
	cmd.Flags().StringVarP(&opts.Environment, "environment", "e", "", "runtime environment details")
	cmd.Flags().StringVar(&opts.Steps, "steps", "", "steps to reproduce")
	cmd.Flags().StringVarP(&opts.Language, "language", "l", "", "programming language (detected from --code by default)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "save the raw response to a file")
	return cmd
}

func explainCmd() *cobra.Command {
	var opts cli.ExplainOptions
	cmd := &cobra.Command{
		Use:   "explain [file]",
		Short: "Explain what a piece of code does",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.File = args[0]
			}
			return app.Explain(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.Language, "language", "l", "", "programming language (detected from the filename by default)")
	cmd.Flags().StringVar(&opts.DetailLevel, "detail", "intermediate", "detail level: basic, intermediate, advanced")
	cmd.Flags().StringVarP(&opts.Questions, "questions", "q", "", "specific questions about the code")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "save the raw response to a file")
	return cmd
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check gemini CLI availability and authentication",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Status(cmd.Context())
		},
	}
}

func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Config()
		},
	}
}

func templatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the available prompt templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Templates()
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("gemini-cli v%s\n", server.Version)
		},
	}
}
