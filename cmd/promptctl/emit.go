package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/debendraoli/promptctl/internal/agents"
	"github.com/debendraoli/promptctl/internal/compose"
	"github.com/debendraoli/promptctl/internal/output"
)

// emitFlags holds the flags that only emit takes.
type emitFlags struct {
	generateFlags
	global bool
	force  bool
	dryRun bool
	quiet  bool
}

// newEmitCmd creates the emit command.
func newEmitCmd() *cobra.Command {
	flags := &emitFlags{}

	cmd := &cobra.Command{
		Use:   "emit <agent>",
		Short: "Write a generated prompt to an agent's instruction file",
		Long: `Generate a prompt and write it where the agent looks for instructions.

  copilot  .github/copilot-instructions.md
  claude   CLAUDE.md
  cursor   .cursor/rules/promptctl.mdc
  codex    AGENTS.md
  aider    CONVENTIONS.md

Takes the same flags as generate. An existing file is kept unless --force is
given; --global writes to the agent's file under your home directory.

Examples:
  promptctl emit claude
  promptctl emit copilot --size minimal --force
  promptctl emit codex --global --preset daily
  promptctl emit cursor --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEmit(cmd, args[0], flags)
		},
	}

	addGenerateFlags(cmd, &flags.generateFlags, false)
	cmd.Flags().BoolVarP(&flags.global, "global", "g", false, "Write to the agent's global file under $HOME")
	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite an existing file")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Print the target and content without writing")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "Only report errors")

	return cmd
}

// parseAgent rejects raw, which has no instruction file.
func parseAgent(name, verb string) (agents.Agent, error) {
	agent, err := agents.Parse(name)
	if err != nil {
		return "", output.NewUserError(err.Error())
	}
	if agent == agents.Raw {
		return "", output.NewUserError(fmt.Sprintf("cannot %s for 'raw' agent, pick a real agent", verb))
	}
	return agent, nil
}

// emitResult is the JSON output of emit.
type emitResult struct {
	*compose.Result
	Path    string `json:"path"`
	Written bool   `json:"written"`
}

func runEmit(cmd *cobra.Command, agentName string, flags *emitFlags) error {
	printer := newPrinter(cmd)

	agent, err := parseAgent(agentName, "emit")
	if err != nil {
		return fail(printer, err)
	}
	flags.agent = agent.Name()

	proj, err := loadProject(cmd, flags.path)
	if err != nil {
		return fail(printer, err)
	}
	res, err := emitAgent(cmd, agent, proj, &flags.generateFlags, flags.global, flags.force || flags.dryRun, flags.dryRun)
	if err != nil {
		return fail(printer, err)
	}

	if printer.IsJSON() {
		return printer.WriteJSON(res)
	}
	if flags.dryRun {
		printer.Step(false, "Dry run, would write to:")
		printer.Bullet(res.Path, "")
		printer.Println()
		printer.Println(res.Content)
		return nil
	}
	if !flags.quiet {
		printer.Step(true, "Wrote %s instructions to %s", agent.DisplayName(), res.Path)
		printer.Hint("  ~%d tokens", res.Tokens)
	}
	warnBudget(printer, res.Result)
	return nil
}

// emitAgent generates the prompt for agent and writes it unless dryRun.
func emitAgent(cmd *cobra.Command, agent agents.Agent, proj *project, flags *generateFlags, global, force, dryRun bool) (*emitResult, error) {
	opts, err := flags.options(cmd, proj)
	if err != nil {
		return nil, err
	}
	opts.Agent = agent.Name()

	res, err := proj.Composer.Generate(opts, proj.Index)
	if err != nil {
		return nil, err
	}

	if dryRun {
		path, err := agent.Path(proj.Root, global)
		if err != nil {
			return nil, output.NewUserError(noPathMessage(agent, err))
		}
		return &emitResult{Result: res, Path: path}, nil
	}

	path, err := agent.Emit(res.Content, proj.Root, global, force)
	if err != nil {
		if errors.Is(err, agents.ErrNoFilePath) {
			return nil, output.NewUserError(noPathMessage(agent, err))
		}
		return nil, err
	}
	return &emitResult{Result: res, Path: path, Written: true}, nil
}

func noPathMessage(agent agents.Agent, err error) string {
	return fmt.Sprintf("%s: %v", agent.DisplayName(), err)
}
