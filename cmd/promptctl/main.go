// Package main provides the entry point for the promptctl CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/debendraoli/promptctl/internal/config"
	"github.com/debendraoli/promptctl/internal/envfile"
	"github.com/debendraoli/promptctl/internal/logging"
	"github.com/debendraoli/promptctl/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type loggerKey struct{}

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// useColor combines --color with TTY detection on stdout.
func useColor(cmd *cobra.Command) bool {
	mode := ""
	if flag := cmd.Root().PersistentFlags().Lookup("color"); flag != nil {
		mode = flag.Value.String()
	}
	return output.ResolveColorMode(mode, output.IsTTY(cmd.OutOrStdout()))
}

// newPrinter returns a printer for cmd with errors routed to stderr.
func newPrinter(cmd *cobra.Command) *output.Printer {
	return output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).
		WithStderr(cmd.ErrOrStderr())
}

// loggerFrom returns the logger built in PersistentPreRunE, or a no-op logger
// for commands executed directly in tests.
func loggerFrom(cmd *cobra.Command) *zap.Logger {
	if ctx := cmd.Context(); ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok {
			return logger
		}
	}
	return zap.NewNop()
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the promptctl CLI.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "promptctl",
		Short: "Generate coding guidelines for AI agents",
		Long: `promptctl - Generate context-aware instruction files for AI coding agents.

promptctl scans a project, detects its languages and frameworks, and builds
prompts from curated language templates:
  - Pick a role (developer, reviewer, security, ...) and a size
  - Merge your team's rules from .promptctl.toml
  - Write the result where your agent looks for it
    (CLAUDE.md, AGENTS.md, .github/copilot-instructions.md, ...)
  - Install native per-language hooks for Claude Code, Cursor and Copilot

All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if isJSONMode(cmd) {
				printer := output.NewPrinter(cmd.OutOrStdout(), true, false)
				err := output.NewUserError("no command specified. Run 'promptctl --help' for usage")
				printer.Error(err)
				return err
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if _, err := output.ParseColorMode(cmd.Root().PersistentFlags().Lookup("color").Value.String()); err != nil {
			return output.NewUserError(err.Error())
		}
		loadEnvFiles()

		verbose, _ := cmd.Flags().GetBool("verbose")
		logger, err := logging.New(logging.Options{Verbose: verbose})
		if err != nil {
			return output.NewSystemErrorWithCause("setting up logging", err)
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		cmd.SetContext(context.WithValue(ctx, loggerKey{}, logger))
		return nil
	}
	cmd.PersistentPostRun = func(cmd *cobra.Command, _ []string) {
		_ = loggerFrom(cmd).Sync()
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("color", output.ColorAuto, "Color output: auto, always or never")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Debug logging on stderr")

	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// loadEnvFiles loads .env.local from the working directory, then the env file
// in the config directory. Variables already set always take precedence.
func loadEnvFiles() {
	cwd, _ := os.Getwd()
	_ = envfile.Load(envfile.Paths(config.Dir(), cwd)...)
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "project", Title: "Project Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "agent", Title: "Agent Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "admin", Title: "Admin Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	addGroupedCommand(cmd, newListCmd(), "core")
	addGroupedCommand(cmd, newShowCmd(), "core")
	addGroupedCommand(cmd, newGenerateCmd(), "core")
	addGroupedCommand(cmd, newEmitCmd(), "core")

	addGroupedCommand(cmd, newScanCmd(), "project")
	addGroupedCommand(cmd, newInitCmd(), "project")
	addGroupedCommand(cmd, newCleanCmd(), "project")
	addGroupedCommand(cmd, newWatchCmd(), "project")

	addGroupedCommand(cmd, newHooksCmd(), "agent")
	addGroupedCommand(cmd, newAgentsCmd(), "agent")
	addGroupedCommand(cmd, newServeCmd(), "agent")

	addGroupedCommand(cmd, newRolesCmd(), "admin")
	addGroupedCommand(cmd, newSectionsCmd(), "admin")
	addGroupedCommand(cmd, newPresetCmd(), "admin")
	addGroupedCommand(cmd, newConfigCmd(), "admin")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
