package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/debendraoli/promptctl/internal/output"
	"github.com/debendraoli/promptctl/internal/presets"
	"github.com/debendraoli/promptctl/internal/prompt"
	"github.com/debendraoli/promptctl/internal/roles"
)

// newPresetCmd creates the preset parent command with subcommands.
func newPresetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Manage saved prompt presets",
		Long: `Manage presets: named combinations of role, size, sections and smart mode.

Built-in presets: quick, review, security, learn, perf, daily. Saved presets
live in ~/.promptctl-presets.toml; a .promptctl-presets.toml in the project
takes precedence when reading.

Examples:
  promptctl preset list
  promptctl preset show review
  promptctl preset save api --role reviewer --sections error-handling,testing
  promptctl generate --preset api
  promptctl preset delete api`,
	}

	cmd.AddCommand(newPresetListCmd())
	cmd.AddCommand(newPresetShowCmd())
	cmd.AddCommand(newPresetSaveCmd())
	cmd.AddCommand(newPresetDeleteCmd())
	return cmd
}

func loadPresetsCwd() (*presets.Store, error) {
	root, err := projectRoot("")
	if err != nil {
		return nil, err
	}
	return loadPresets(root)
}

// newPresetListCmd creates the preset list subcommand.
func newPresetListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List built-in and saved presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)

			store, err := loadPresetsCwd()
			if err != nil {
				return fail(printer, err)
			}
			entries := store.List()
			if printer.IsJSON() {
				return printer.WriteJSON(entries)
			}

			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				kind := "saved"
				switch {
				case e.Builtin:
					kind = "built-in"
				case e.Overrides:
					kind = "saved (overrides built-in)"
				}
				rows = append(rows, []string{e.Name, kind, presetSummary(e.Preset), e.Preset.Description})
			}
			printer.Table([]string{"Preset", "Kind", "Settings", "Description"}, rows)
			return nil
		},
	}
}

func presetSummary(p presets.Preset) string {
	var parts []string
	if p.Role != "" {
		parts = append(parts, "role="+p.Role)
	}
	if p.Language != "" {
		parts = append(parts, "language="+p.Language)
	}
	if len(p.Sections) > 0 {
		parts = append(parts, "sections="+strings.Join(p.Sections, ","))
	} else if p.Size != "" {
		parts = append(parts, "size="+string(p.Size))
	}
	if p.Smart {
		parts = append(parts, "smart")
	}
	return strings.Join(parts, " ")
}

// newPresetShowCmd creates the preset show subcommand.
func newPresetShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a preset's settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := newPrinter(cmd)

			store, err := loadPresetsCwd()
			if err != nil {
				return fail(printer, err)
			}
			p, ok := store.Get(args[0])
			if !ok {
				return fail(printer, &presets.NotFoundError{Name: args[0]})
			}
			if printer.IsJSON() {
				return printer.WriteJSON(map[string]any{"name": strings.ToLower(args[0]), "preset": p})
			}

			printer.Section(strings.ToLower(args[0]))
			if p.Description != "" {
				printer.KeyValue("Description", p.Description)
			}
			printer.KeyValue("Role", orDefault(p.Role, roles.DefaultName))
			if p.Language != "" {
				printer.KeyValue("Language", p.Language)
			}
			printer.KeyValue("Size", string(p.ParsedSize()))
			if sections := p.ParsedSections(); len(sections) > 0 {
				names := make([]string, len(sections))
				for i, sec := range sections {
					names[i] = sec.String()
				}
				printer.KeyValue("Sections", strings.Join(names, ", "))
			}
			printer.KeyValue("Smart", fmt.Sprintf("%t", p.Smart))
			return nil
		},
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// newPresetSaveCmd creates the preset save subcommand.
func newPresetSaveCmd() *cobra.Command {
	var (
		p     presets.Preset
		size  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save a preset to ~/.promptctl-presets.toml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := newPrinter(cmd)

			if err := validatePreset(&p, size); err != nil {
				return fail(printer, err)
			}
			store, err := loadPresetsCwd()
			if err != nil {
				return fail(printer, err)
			}
			if err := store.Set(args[0], p, force); err != nil {
				return fail(printer, output.NewConflictError(err.Error()))
			}
			path, err := store.Save()
			if err != nil {
				return fail(printer, output.NewSystemErrorWithCause(err.Error(), err))
			}

			if printer.IsJSON() {
				return printer.WriteJSON(map[string]any{"name": strings.ToLower(args[0]), "path": path, "preset": p})
			}
			printer.Step(true, "Saved preset '%s' to %s", strings.ToLower(args[0]), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&p.Description, "description", "d", "", "Short description")
	cmd.Flags().StringVarP(&p.Role, "role", "r", "", "Role")
	cmd.Flags().StringVarP(&p.Language, "language", "l", "", "Language")
	cmd.Flags().StringVarP(&size, "size", "s", string(prompt.DefaultSize), "Size: minimal, compact or full")
	cmd.Flags().StringSliceVar(&p.Sections, "sections", nil, "Sections, comma separated")
	cmd.Flags().BoolVar(&p.Smart, "smart", false, "Enable smart section selection")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing preset")
	return cmd
}

// validatePreset checks names before anything is written.
func validatePreset(p *presets.Preset, size string) error {
	if p.Role != "" {
		r, err := roles.Parse(p.Role)
		if err != nil {
			return output.NewUserError(err.Error())
		}
		p.Role = r.Name
	}
	s, err := prompt.ParseSize(size)
	if err != nil {
		return output.NewUserError(err.Error())
	}
	p.Size = s
	sections, err := prompt.ParseSections(p.Sections)
	if err != nil {
		return output.NewUserError(err.Error())
	}
	p.Sections = p.Sections[:0]
	for _, sec := range sections {
		p.Sections = append(p.Sections, string(sec))
	}
	if len(p.Sections) == 0 {
		p.Sections = nil
	}
	p.Language = strings.ToLower(p.Language)
	return nil
}

// newPresetDeleteCmd creates the preset delete subcommand.
func newPresetDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Delete a saved preset",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := newPrinter(cmd)

			store, err := loadPresetsCwd()
			if err != nil {
				return fail(printer, err)
			}
			name := strings.ToLower(args[0])
			if _, err := store.Remove(name); err != nil {
				if _, builtin := presets.Builtins()[name]; builtin {
					return fail(printer, output.NewUserError(fmt.Sprintf("cannot delete built-in preset '%s'", name)))
				}
				return fail(printer, err)
			}
			path, err := store.Save()
			if err != nil {
				return fail(printer, output.NewSystemErrorWithCause(err.Error(), err))
			}

			if printer.IsJSON() {
				return printer.WriteJSON(map[string]any{"name": name, "path": path, "deleted": true})
			}
			printer.Step(true, "Deleted preset '%s'", name)
			return nil
		},
	}
}
