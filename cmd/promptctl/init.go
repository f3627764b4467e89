package main

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/debendraoli/promptctl/internal/agents"
	"github.com/debendraoli/promptctl/internal/compose"
	"github.com/debendraoli/promptctl/internal/config"
	"github.com/debendraoli/promptctl/internal/fsutil"
	"github.com/debendraoli/promptctl/internal/indexer"
	"github.com/debendraoli/promptctl/internal/output"
	"github.com/debendraoli/promptctl/internal/prompt"
	"github.com/debendraoli/promptctl/internal/roles"
	"github.com/debendraoli/promptctl/internal/setup"
)

// initFlags holds the command-line flags for the init command.
type initFlags struct {
	role   string
	path   string
	force  bool
	dryRun bool
	global bool
}

// initResult is the JSON output of init.
type initResult struct {
	Agent     string           `json:"agent"`
	Path      string           `json:"path"`
	Tokens    int              `json:"tokens"`
	Languages []string         `json:"languages"`
	Hooks     []setup.HookFile `json:"hooks,omitempty"`
	Config    string           `json:"config,omitempty"`
	DryRun    bool             `json:"dry_run"`
	Content   string           `json:"content,omitempty"`
}

// newInitCmd creates the init command.
func newInitCmd() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init <agent>",
		Short: "Set up promptctl for an agent in this project",
		Long: `Set up promptctl for an agent in one step.

This command:
  - Scans the project for languages and frameworks
  - Writes the agent's instruction file with the role, project context and
    generic guardrails
  - Installs native per-language hooks for claude, cursor and copilot, so
    the full skillset for each language is loaded on demand
  - Creates .promptctl.toml for your team's rules if it does not exist

Examples:
  promptctl init claude
  promptctl init cursor --role reviewer
  promptctl init copilot --dry-run
  promptctl init codex --global`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.role, "role", "r", roles.DefaultName, "Role for the instruction file")
	cmd.Flags().StringVarP(&flags.path, "path", "p", "", "Project directory (default: current directory)")
	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing files")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Show what would be written without writing")
	cmd.Flags().BoolVarP(&flags.global, "global", "g", false, "Write the instruction file under $HOME")

	return cmd
}

func runInit(cmd *cobra.Command, agentName string, flags *initFlags) error {
	printer := newPrinter(cmd)

	agent, err := parseAgent(agentName, "init")
	if err != nil {
		return fail(printer, err)
	}
	role, err := roles.Parse(flags.role)
	if err != nil {
		return fail(printer, err)
	}
	proj, err := loadProject(cmd, flags.path)
	if err != nil {
		return fail(printer, err)
	}

	idx := proj.Index
	languages := idx.LanguageNames()
	primary := ""
	if l := idx.PrimaryLanguage(); l != nil {
		primary = l.Name
	}
	content := agent.Format(compose.BuildAgentPrompt(role, idx), primary)

	if flags.dryRun {
		return initDryRun(printer, agent, proj, flags, languages, content)
	}

	if !printer.IsJSON() {
		printer.Step(false, "Scanning %s...", proj.Root)
		printDetected(printer, idx)
		printer.Println()
	}

	result := &initResult{Agent: agent.Name(), Languages: languages, Tokens: prompt.EstimateTokens(content)}

	result.Path, err = agent.Emit(content, proj.Root, flags.global, flags.force)
	if err != nil {
		if errors.Is(err, agents.ErrNoFilePath) {
			return fail(printer, output.NewUserError(noPathMessage(agent, err)))
		}
		return fail(printer, err)
	}
	printer.Step(true, "Wrote %s instructions to %s", agent.DisplayName(), result.Path)
	printer.Hint("  ~%d tokens", result.Tokens)

	if agents.SupportsHooks(agent) {
		hooks, err := installHooks(cmd, agent, proj, role.Name, flags.force)
		switch {
		case errors.Is(err, setup.ErrNoLanguages):
			if !printer.IsJSON() {
				printer.Warn("%v", err)
			}
		case err != nil:
			return fail(printer, err)
		}
		result.Hooks = hooks
		if len(hooks) > 0 && !printer.IsJSON() {
			printer.Println()
			printer.Step(true, "Installed %s hooks:", agent.DisplayName())
			for _, h := range hooks {
				printer.Bullet(h.Path, "— "+h.Description)
			}
		}
	}

	if !flags.global && !fsutil.Exists(filepath.Join(proj.Root, config.FileName)) {
		path, err := config.Init(proj.Root, false)
		if err != nil {
			return fail(printer, err)
		}
		result.Config = path
		if !printer.IsJSON() {
			printer.Println()
		}
		printer.Step(true, "Created %s for custom prompts", config.FileName)
	}

	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}
	printer.Println()
	return printer.Success(map[string]any{"message": "Done! " + agent.DisplayName() + " will now use promptctl guidelines."})
}

// installHooks builds skillsets for the detected languages and installs the
// agent's hook files.
func installHooks(cmd *cobra.Command, agent agents.Agent, proj *project, role string, force bool) ([]setup.HookFile, error) {
	env, err := setup.Get(agent.Name())
	if err != nil {
		return nil, err
	}
	languages := proj.Index.LanguageNames()
	return env.Install(proj.Root, setup.Request{
		Languages: languages,
		Role:      role,
		Skillsets: proj.Composer.BuildSkillsets(cmd.Context(), languages, proj.Index),
		Force:     force,
		Logger:    loggerFrom(cmd),
	})
}

func printDetected(printer *output.Printer, idx *indexer.Index) {
	var names []string
	for _, l := range idx.SortedLanguages() {
		if l.Version != "" {
			names = append(names, l.Name+" "+l.Version)
		} else {
			names = append(names, l.Name)
		}
	}
	if len(names) > 0 {
		printer.Step(true, "Detected: %s", strings.Join(names, ", "))
	}
	if len(idx.Frameworks) > 0 {
		printer.Step(true, "Frameworks: %s", strings.Join(idx.FrameworkNames(), ", "))
	}
}

func initDryRun(printer *output.Printer, agent agents.Agent, proj *project, flags *initFlags, languages []string, content string) error {
	path, err := agent.Path(proj.Root, flags.global)
	if err != nil {
		return fail(printer, output.NewUserError(noPathMessage(agent, err)))
	}

	var previews []string
	if env, err := setup.Get(agent.Name()); err == nil {
		previews = env.Preview(proj.Root, languages)
	}

	if printer.IsJSON() {
		result := &initResult{
			Agent:     agent.Name(),
			Path:      path,
			Tokens:    prompt.EstimateTokens(content),
			Languages: languages,
			DryRun:    true,
			Content:   content,
		}
		for _, p := range previews {
			result.Hooks = append(result.Hooks, setup.HookFile{Path: p})
		}
		return printer.WriteJSON(result)
	}

	printer.Step(false, "Dry run, would write to:")
	printer.Bullet(path, "")
	for _, p := range previews {
		printer.Bullet(p, "")
	}
	printer.Println()
	printer.Println(content)
	return nil
}
