package main

import (
	"github.com/spf13/cobra"

	"github.com/debendraoli/promptctl/internal/config"
	"github.com/debendraoli/promptctl/internal/presets"
)

// newConfigCmd creates the config parent command with subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage .promptctl.toml",
		Long: `Manage promptctl configuration.

.promptctl.toml is looked up from the current directory upwards, then in your
home directory. It holds [defaults] for generate and emit, and [prompts.<lang>]
tables that merge your team's rules into a language's guidelines.

Defaults can also come from PROMPTCTL_ROLE, PROMPTCTL_SIZE, PROMPTCTL_AGENT,
PROMPTCTL_SMART and PROMPTCTL_GUARDRAILS, or a .env.local file.`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigPathCmd())
	cmd.AddCommand(newConfigShowCmd())
	return cmd
}

// newConfigInitCmd creates the config init subcommand.
func newConfigInitCmd() *cobra.Command {
	var (
		path  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter .promptctl.toml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)

			root, err := projectRoot(path)
			if err != nil {
				return fail(printer, err)
			}
			written, err := config.Init(root, force)
			if err != nil {
				return fail(printer, err)
			}
			if printer.IsJSON() {
				return printer.WriteJSON(map[string]any{"path": written})
			}
			printer.Step(true, "Created %s", written)
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "Directory to write into (default: current directory)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	return cmd
}

// newConfigPathCmd creates the config path subcommand.
func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show which config files are in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)

			root, err := projectRoot("")
			if err != nil {
				return fail(printer, err)
			}
			cfgPath := config.Find(root)
			store, err := loadPresets(root)
			if err != nil {
				return fail(printer, err)
			}

			if printer.IsJSON() {
				return printer.WriteJSON(map[string]any{
					"config":       cfgPath,
					"config_dir":   config.Dir(),
					"templates":    config.TemplatesDir(),
					"presets":      store.Path(),
					"presets_save": store.SavePath(),
				})
			}
			printer.KeyValue("Config", orDefault(cfgPath, "(none, using defaults)"))
			printer.KeyValue("Config dir", config.Dir())
			printer.KeyValue("Templates", config.TemplatesDir())
			printer.KeyValue(presets.FileName, orDefault(store.Path(), "(none, built-ins only)"))
			return nil
		},
	}
}

// newConfigShowCmd creates the config show subcommand.
func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)

			root, err := projectRoot("")
			if err != nil {
				return fail(printer, err)
			}
			cfg, path, err := config.Load(root)
			if err != nil {
				return fail(printer, err)
			}
			if cfg == nil {
				cfg = &config.Config{Defaults: config.EnvDefaults()}
			}

			if printer.IsJSON() {
				return printer.WriteJSON(map[string]any{"path": path, "config": cfg})
			}
			rendered, err := config.Render(cfg)
			if err != nil {
				return fail(printer, err)
			}
			if path != "" {
				printer.Hint("# %s", path)
			} else {
				printer.Hint("# no %s found, showing defaults", config.FileName)
			}
			printer.Print("%s", rendered)
			return nil
		},
	}
}
