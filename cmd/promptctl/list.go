package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/debendraoli/promptctl/internal/agents"
	"github.com/debendraoli/promptctl/internal/config"
	"github.com/debendraoli/promptctl/internal/prompt"
	"github.com/debendraoli/promptctl/internal/roles"
	"github.com/debendraoli/promptctl/internal/setup"
)

// languageEntry is one row of the language catalog.
type languageEntry struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Source      string `json:"source"`
	Custom      bool   `json:"custom"`
}

// catalogLanguages merges template languages with custom-only config prompts.
func catalogLanguages(loader *prompt.Loader, cfg *config.Config) []languageEntry {
	var out []languageEntry
	seen := map[string]bool{}
	for _, t := range loader.List() {
		seen[t.Language] = true
		_, custom := cfg.Prompt(t.Language)
		out = append(out, languageEntry{Name: t.Language, Description: t.Description, Source: t.Source, Custom: custom})
	}
	for _, lang := range cfg.CustomLanguages() {
		if seen[lang] {
			continue
		}
		p, _ := cfg.Prompt(lang)
		out = append(out, languageEntry{Name: lang, Description: p.Description, Source: "config", Custom: true})
	}
	return out
}

// newListCmd creates the list command.
func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List languages, agents and roles",
		Long: `List everything promptctl can generate: built-in languages, template
overrides and custom prompts from .promptctl.toml, supported agents with their
instruction files, and roles.`,
		Args: cobra.NoArgs,
		RunE: runList,
	}
}

func runList(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)

	root, err := projectRoot("")
	if err != nil {
		return fail(printer, err)
	}
	cfg, _, err := config.Load(root)
	if err != nil {
		return fail(printer, err)
	}
	langs := catalogLanguages(prompt.NewLoader(root), cfg)

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"languages": langs,
			"agents":    agentRows(),
			"roles":     roles.All(),
		})
	}

	printer.Section("Languages:")
	for _, l := range langs {
		note := ""
		if l.Description != "" {
			note = "- " + l.Description
		}
		if l.Source != prompt.SourceBuiltin {
			note = strings.TrimSpace(note + " (" + l.Source + ")")
		}
		printer.Bullet(l.Name, note)
	}

	printer.Println()
	printer.Section("Agents:")
	for _, a := range agents.All() {
		printer.Bullet(a.Name(), "→ "+a.InstructionFile())
	}

	printer.Println()
	printer.Section("Roles:")
	for _, r := range roles.All() {
		printer.Bullet(r.Name, "- "+r.Description)
	}

	printer.Println()
	printer.Hint("Use 'promptctl init <agent>' to set up your project.")
	return nil
}

// agentRow is the JSON form of an agent.
type agentRow struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	File        string   `json:"file"`
	GlobalFile  string   `json:"global_file,omitempty"`
	TokenBudget int      `json:"token_budget"`
	Hooks       []string `json:"hooks,omitempty"`
	Aliases     []string `json:"aliases,omitempty"`
}

func agentRows() []agentRow {
	var rows []agentRow
	for _, a := range agents.All() {
		row := agentRow{
			Name:        a.Name(),
			DisplayName: a.DisplayName(),
			File:        a.InstructionFile(),
			GlobalFile:  a.GlobalInstructionFile(),
			TokenBudget: a.TokenBudget(),
			Aliases:     a.Aliases(),
		}
		if env, err := setup.Get(a.Name()); err == nil {
			row.Hooks = env.Preview(".", []string{"<lang>"})
		}
		rows = append(rows, row)
	}
	return rows
}

// newAgentsCmd creates the agents command.
func newAgentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "agents",
		Short: "Show supported agents and where their files go",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)
			rows := agentRows()
			if printer.IsJSON() {
				return printer.WriteJSON(rows)
			}

			table := make([][]string, 0, len(rows))
			for _, r := range rows {
				hooks := "-"
				if len(r.Hooks) > 0 {
					hooks = "yes"
				}
				global := r.GlobalFile
				if global == "" {
					global = "-"
				} else {
					global = "~/" + global
				}
				table = append(table, []string{r.Name, r.DisplayName, r.File, global, strconv.Itoa(r.TokenBudget), hooks})
			}
			printer.Table([]string{"Agent", "Product", "File", "Global", "Budget", "Hooks"}, table)
			return nil
		},
	}
}

// newRolesCmd creates the roles command.
func newRolesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roles",
		Short: "List roles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)
			if printer.IsJSON() {
				return printer.WriteJSON(roles.All())
			}
			rows := make([][]string, 0)
			for _, r := range roles.All() {
				rows = append(rows, []string{r.Name, strings.Join(r.Aliases, ", "), r.Description})
			}
			printer.Table([]string{"Role", "Aliases", "Description"}, rows)
			return nil
		},
	}
}

// sectionRow is one template section.
type sectionRow struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Sizes       []string `json:"sizes"`
}

// newSectionsCmd creates the sections command.
func newSectionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sections",
		Short: "List template sections and the sizes that include them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)

			var rows []sectionRow
			for _, s := range prompt.AllSections() {
				row := sectionRow{Name: string(s), Description: s.Description()}
				for _, size := range prompt.Sizes() {
					for _, in := range size.Sections() {
						if in == s {
							row.Sizes = append(row.Sizes, string(size))
						}
					}
				}
				rows = append(rows, row)
			}

			if printer.IsJSON() {
				return printer.WriteJSON(rows)
			}
			table := make([][]string, 0, len(rows))
			for _, r := range rows {
				table = append(table, []string{r.Name, strings.Join(r.Sizes, ", "), r.Description})
			}
			printer.Table([]string{"Section", "Sizes", "Description"}, table)
			return nil
		},
	}
}
