package main

import (
	"github.com/spf13/cobra"

	"github.com/debendraoli/promptctl/internal/compose"
	"github.com/debendraoli/promptctl/internal/output"
	"github.com/debendraoli/promptctl/internal/presets"
	"github.com/debendraoli/promptctl/internal/prompt"
	"github.com/debendraoli/promptctl/internal/roles"
)

// generateFlags are shared by generate, emit and watch.
type generateFlags struct {
	role         string
	language     string
	path         string
	format       string
	size         string
	sections     []string
	smart        bool
	preset       string
	agent        string
	noGuardrails bool
}

// addGenerateFlags registers the prompt selection flags. withAgent adds
// --agent, which emit and watch take as an argument instead.
func addGenerateFlags(cmd *cobra.Command, f *generateFlags, withAgent bool) {
	cmd.Flags().StringVarP(&f.role, "role", "r", roles.DefaultName, "Role (see 'promptctl roles')")
	cmd.Flags().StringVarP(&f.language, "language", "l", "", "Language (auto-detected when omitted)")
	cmd.Flags().StringVarP(&f.path, "path", "p", "", "Project directory (default: current directory)")
	cmd.Flags().StringVar(&f.format, "format", string(compose.FormatMarkdown), "Output format: markdown or plain")
	cmd.Flags().StringVarP(&f.size, "size", "s", string(prompt.DefaultSize), "Prompt size: minimal, compact or full")
	cmd.Flags().StringSliceVar(&f.sections, "sections", nil, "Explicit sections, comma separated (overrides --size)")
	cmd.Flags().BoolVar(&f.smart, "smart", false, "Add sections based on the project scan")
	cmd.Flags().StringVar(&f.preset, "preset", "", "Apply a saved or built-in preset")
	cmd.Flags().BoolVar(&f.noGuardrails, "no-guardrails", false, "Omit hallucination guardrails")
	if withAgent {
		cmd.Flags().StringVarP(&f.agent, "agent", "a", "", "Format for an agent: copilot, claude, cursor, codex, aider")
	}
}

// options resolves flags, preset and config defaults into compose options.
// Explicit flags win over the preset, which wins over [defaults].
func (f *generateFlags) options(cmd *cobra.Command, proj *project) (compose.Options, error) {
	opts := compose.Options{
		Role:         f.role,
		Language:     f.language,
		Size:         f.size,
		Sections:     f.sections,
		Smart:        f.smart,
		Agent:        f.agent,
		Format:       f.format,
		NoGuardrails: f.noGuardrails,
	}
	changed := cmd.Flags().Changed
	compose.ApplyDefaults(&opts, proj.Config.Settings(), changed)

	if f.preset != "" {
		store, err := loadPresets(proj.Root)
		if err != nil {
			return opts, err
		}
		p, ok := store.Get(f.preset)
		if !ok {
			return opts, output.NewUserError((&presets.NotFoundError{Name: f.preset}).Error())
		}
		compose.ApplyPreset(&opts, p, changed)
	}
	return opts, nil
}

// newGenerateCmd creates the generate command.
func newGenerateCmd() *cobra.Command {
	flags := &generateFlags{}
	var pretty bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a prompt for the current project",
		Long: `Generate a context-aware prompt and print it to stdout.

The prompt opens with the role, summarizes the detected project, then adds the
language guidelines selected by --size or --sections, your custom rules from
.promptctl.toml and hallucination guardrails. The token estimate goes to
stderr so the prompt itself can be piped.

Values are resolved as: flags, then --preset, then [defaults] in
.promptctl.toml, then built-in defaults.

Examples:
  promptctl generate                          # Detect language, compact size
  promptctl generate -l rust -r reviewer      # Rust review prompt
  promptctl generate --sections testing,types # Only these sections
  promptctl generate --preset security        # Built-in security preset
  promptctl generate --agent claude           # Wrap for CLAUDE.md
  promptctl generate --pretty                 # Render markdown in the terminal`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, flags, pretty)
		},
	}

	addGenerateFlags(cmd, flags, true)
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Render markdown when writing to a terminal")

	return cmd
}

func runGenerate(cmd *cobra.Command, flags *generateFlags, pretty bool) error {
	printer := newPrinter(cmd)

	proj, err := loadProject(cmd, flags.path)
	if err != nil {
		return fail(printer, err)
	}
	opts, err := flags.options(cmd, proj)
	if err != nil {
		return fail(printer, err)
	}
	res, err := proj.Composer.Generate(opts, proj.Index)
	if err != nil {
		return fail(printer, err)
	}

	if printer.IsJSON() {
		return printer.WriteJSON(res)
	}

	if pretty && printer.IsTTY() && opts.Format != string(compose.FormatPlain) {
		if err := printer.Markdown(res.Content); err != nil {
			return fail(printer, err)
		}
	} else {
		printer.Print("%s", res.Content)
	}
	printer.Hint("~%d tokens", res.Tokens)
	warnBudget(printer, res)
	return nil
}

// warnBudget warns when a prompt is larger than its agent recommends.
func warnBudget(printer *output.Printer, res *compose.Result) {
	if !res.OverBudget {
		return
	}
	printer.Warn("prompt is ~%d tokens, over the ~%d recommended for %s (try --size minimal or --sections)",
		res.Tokens, res.Budget, res.Agent)
}
