package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/debendraoli/promptctl/internal/agents"
	"github.com/debendraoli/promptctl/internal/output"
	"github.com/debendraoli/promptctl/internal/roles"
	"github.com/debendraoli/promptctl/internal/setup"
)

// newHooksCmd creates the hooks parent command with subcommands.
func newHooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hooks",
		Short: "Manage native agent hooks",
		Long: `Manage per-language hook files that agents load natively.

  claude   .claude/hooks/promptctl-*.sh and .claude/settings.json
  cursor   .cursor/rules/promptctl-<lang>.mdc
  copilot  .github/instructions/promptctl-<lang>.instructions.md

Subcommands:
  install  Write hook files for the detected languages
  remove   Delete promptctl hook files
  list     Show installed hook files

Examples:
  promptctl hooks list
  promptctl hooks install cursor
  promptctl hooks install claude --role reviewer --force
  promptctl hooks remove copilot`,
	}

	cmd.AddCommand(newHooksInstallCmd())
	cmd.AddCommand(newHooksRemoveCmd())
	cmd.AddCommand(newHooksListCmd())
	return cmd
}

// hookEnvFor resolves an agent name to its hook environment.
func hookEnvFor(name string) (agents.Agent, setup.HookEnv, error) {
	agent, err := agents.Parse(name)
	if err != nil {
		return "", nil, output.NewUserError(err.Error())
	}
	env, err := setup.Get(agent.Name())
	if err != nil {
		return "", nil, output.NewUserError(err.Error())
	}
	return agent, env, nil
}

// newHooksInstallCmd creates the hooks install subcommand.
func newHooksInstallCmd() *cobra.Command {
	var (
		path   string
		role   string
		force  bool
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "install <agent>",
		Short: "Install hook files for an agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := newPrinter(cmd)

			agent, env, err := hookEnvFor(args[0])
			if err != nil {
				return fail(printer, err)
			}
			r, err := roles.Parse(role)
			if err != nil {
				return fail(printer, err)
			}
			proj, err := loadProject(cmd, path)
			if err != nil {
				return fail(printer, err)
			}

			if dryRun {
				previews := env.Preview(proj.Root, proj.Index.LanguageNames())
				if printer.IsJSON() {
					return printer.WriteJSON(map[string]any{"agent": agent.Name(), "dry_run": true, "files": previews})
				}
				printer.Step(false, "Dry run, would write:")
				for _, p := range previews {
					printer.Bullet(p, "")
				}
				return nil
			}

			files, err := installHooks(cmd, agent, proj, r.Name, force)
			if err != nil {
				if errors.Is(err, setup.ErrNoLanguages) {
					return fail(printer, output.NewUserError(err.Error()))
				}
				return fail(printer, err)
			}

			if printer.IsJSON() {
				return printer.WriteJSON(map[string]any{"agent": agent.Name(), "files": files})
			}
			printer.Step(true, "Installed %s hooks:", env.DisplayName())
			for _, f := range files {
				printer.Bullet(f.Path, "— "+f.Description)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "Project directory (default: current directory)")
	cmd.Flags().StringVarP(&role, "role", "r", roles.DefaultName, "Role passed to promptctl show")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing hook files")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the files that would be written")
	return cmd
}

// newHooksRemoveCmd creates the hooks remove subcommand.
func newHooksRemoveCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "remove <agent>",
		Short: "Remove promptctl hook files for an agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := newPrinter(cmd)

			agent, env, err := hookEnvFor(args[0])
			if err != nil {
				return fail(printer, err)
			}
			root, err := projectRoot(path)
			if err != nil {
				return fail(printer, err)
			}
			removed, err := env.Remove(root)
			if err != nil {
				return fail(printer, err)
			}

			if printer.IsJSON() {
				if removed == nil {
					removed = []string{}
				}
				return printer.WriteJSON(map[string]any{"agent": agent.Name(), "removed": removed})
			}
			if len(removed) == 0 {
				printer.Hint("No promptctl hooks found for %s.", env.DisplayName())
				return nil
			}
			printer.Step(true, "Removed %s hooks:", env.DisplayName())
			for _, p := range removed {
				printer.Removed(p)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "Project directory (default: current directory)")
	return cmd
}

// hooksListEntry is one agent's installed files.
type hooksListEntry struct {
	Agent string   `json:"agent"`
	Files []string `json:"files"`
}

// newHooksListCmd creates the hooks list subcommand.
func newHooksListCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show installed hook files for every agent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)

			root, err := projectRoot(path)
			if err != nil {
				return fail(printer, err)
			}

			var entries []hooksListEntry
			for _, env := range setup.All() {
				files, err := env.List(root)
				if err != nil {
					return fail(printer, err)
				}
				if files == nil {
					files = []string{}
				}
				entries = append(entries, hooksListEntry{Agent: env.Name(), Files: files})
			}

			if printer.IsJSON() {
				return printer.WriteJSON(entries)
			}
			for i, e := range entries {
				if i > 0 {
					printer.Println()
				}
				env, _ := setup.Get(e.Agent)
				printer.Section(env.DisplayName())
				if len(e.Files) == 0 {
					printer.Hint("  not installed")
					continue
				}
				for _, f := range e.Files {
					printer.Bullet(f, "")
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "Project directory (default: current directory)")
	return cmd
}
