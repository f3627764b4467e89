package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/debendraoli/promptctl/internal/agents"
	"github.com/debendraoli/promptctl/internal/setup"
)

// newCleanCmd creates the clean command.
func newCleanCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "clean <agent>",
		Short: "Remove promptctl files for an agent",
		Long: `Remove the agent's instruction file and every promptctl hook file.
Non-promptctl entries in .claude/settings.json are kept.

Examples:
  promptctl clean claude
  promptctl clean cursor --path ./service`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := newPrinter(cmd)

			agent, err := parseAgent(args[0], "clean")
			if err != nil {
				return fail(printer, err)
			}
			root, err := projectRoot(path)
			if err != nil {
				return fail(printer, err)
			}

			removed, err := cleanAgent(agent, root)
			if err != nil {
				return fail(printer, err)
			}

			if printer.IsJSON() {
				return printer.WriteJSON(map[string]any{"agent": agent.Name(), "removed": removed})
			}
			if len(removed) == 0 {
				printer.Hint("No promptctl files found for %s.", agent.DisplayName())
				return nil
			}
			plural := "s"
			if len(removed) == 1 {
				plural = ""
			}
			printer.Step(true, "Removed %d file%s:", len(removed), plural)
			for _, p := range removed {
				printer.Removed(p)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "Project directory (default: current directory)")
	return cmd
}

// cleanAgent removes the project instruction file and the agent's hooks.
func cleanAgent(agent agents.Agent, root string) ([]string, error) {
	removed := []string{}

	path, ok, err := agent.Remove(root, false)
	if err != nil {
		return removed, fmt.Errorf("removing %s: %w", path, err)
	}
	if ok {
		removed = append(removed, path)
	}

	if agents.SupportsHooks(agent) {
		env, err := setup.Get(agent.Name())
		if err != nil {
			return removed, err
		}
		hooks, err := env.Remove(root)
		removed = append(removed, hooks...)
		if err != nil {
			return removed, err
		}
	}
	return removed, nil
}
