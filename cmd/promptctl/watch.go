package main

import (
	"context"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/debendraoli/promptctl/internal/config"
	"github.com/debendraoli/promptctl/internal/watch"
)

// newWatchCmd creates the watch command.
func newWatchCmd() *cobra.Command {
	flags := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "watch <agent>",
		Short: "Regenerate an agent's file when config or manifests change",
		Long: `Emit the agent's instruction file, then keep it current.

The file is rewritten when .promptctl.toml, .promptctl-presets.toml, a project
manifest (go.mod, Cargo.toml, package.json, ...) or a template override under
.promptctl/templates changes. Stop with Ctrl-C.

Examples:
  promptctl watch claude
  promptctl watch codex --preset daily`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args[0], flags)
		},
	}

	addGenerateFlags(cmd, flags, false)
	return cmd
}

func runWatch(cmd *cobra.Command, agentName string, flags *generateFlags) error {
	printer := newPrinter(cmd)
	logger := loggerFrom(cmd)

	agent, err := parseAgent(agentName, "watch")
	if err != nil {
		return fail(printer, err)
	}

	regenerate := func() error {
		// Reload so config and manifest edits are picked up.
		proj, err := loadProject(cmd, flags.path)
		if err != nil {
			return err
		}
		res, err := emitAgent(cmd, agent, proj, flags, false, true, false)
		if err != nil {
			return err
		}
		printer.Step(true, "Wrote %s (~%d tokens)", res.Path, res.Tokens)
		warnBudget(printer, res.Result)
		return nil
	}

	if err := regenerate(); err != nil {
		return fail(printer, err)
	}

	root, err := projectRoot(flags.path)
	if err != nil {
		return fail(printer, err)
	}
	opts := []watch.Option{watch.WithLogger(logger), watch.WithTemplatesDir(config.TemplatesDir())}
	if cfgPath := config.Find(root); cfgPath != "" {
		opts = append(opts, watch.WithConfigPath(cfgPath))
	}
	w := watch.New(root, opts...)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	printer.Hint("Watching %s for changes (Ctrl-C to stop)", root)
	return w.Run(ctx, func(path string) error {
		printer.Step(false, "%s changed", filepath.Base(path))
		err := regenerate()
		if err != nil {
			printer.Error(err)
		}
		return err
	})
}
