package main

import (
	"github.com/spf13/cobra"

	"github.com/debendraoli/promptctl/internal/prompt"
	"github.com/debendraoli/promptctl/internal/roles"
)

// newShowCmd creates the show command.
func newShowCmd() *cobra.Command {
	var roleName string
	var pretty bool

	cmd := &cobra.Command{
		Use:   "show <language>",
		Short: "Print the complete skillset for a language",
		Long: `Print every guideline section for a language, your custom rules from
.promptctl.toml and the language's hallucination guardrails.

This is what agent hooks load at session start.

Examples:
  promptctl show go
  promptctl show rust --role reviewer`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := newPrinter(cmd)

			var role *roles.Role
			if roleName != "" {
				r, err := roles.Parse(roleName)
				if err != nil {
					return fail(printer, err)
				}
				role = &r
			}

			proj, err := loadProject(cmd, "")
			if err != nil {
				return fail(printer, err)
			}
			content, err := proj.Composer.Show(args[0], role, proj.Index)
			if err != nil {
				return fail(printer, err)
			}

			if printer.IsJSON() {
				return printer.WriteJSON(map[string]any{
					"language": args[0],
					"content":  content,
					"tokens":   prompt.EstimateTokens(content),
				})
			}
			if pretty {
				if err := printer.Markdown(content + "\n"); err != nil {
					return fail(printer, err)
				}
				return nil
			}
			printer.Println(content)
			return nil
		},
	}

	cmd.Flags().StringVarP(&roleName, "role", "r", "", "Prefix the skillset with a role")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Render markdown when writing to a terminal")
	return cmd
}
