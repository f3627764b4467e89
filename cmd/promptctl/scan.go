package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/debendraoli/promptctl/internal/indexer"
)

// newScanCmd creates the scan command.
func newScanCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Show what promptctl detects in a project",
		Long: `Scan a project and show detected languages, frameworks, config files and
layout. This is the context every generated prompt starts from.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)

			root, err := projectRoot(path)
			if err != nil {
				return fail(printer, err)
			}
			idx := indexer.Scan(root, indexer.WithLogger(loggerFrom(cmd)))

			if printer.IsJSON() {
				return printer.WriteJSON(idx)
			}

			printer.Step(false, "Scanned %s", root)
			printer.Println()

			langs := idx.SortedLanguages()
			if len(langs) == 0 {
				printer.Hint("No supported languages detected.")
			} else {
				rows := make([][]string, 0, len(langs))
				for _, l := range langs {
					version := l.Version
					if version == "" {
						version = "-"
					}
					rows = append(rows, []string{l.Name, strconv.Itoa(l.FileCount), version, strings.Join(l.Extensions, ", ")})
				}
				printer.Table([]string{"Language", "Files", "Version", "Extensions"}, rows)
			}

			if len(idx.Frameworks) > 0 {
				printer.Println()
				printer.Section("Frameworks:")
				for _, f := range idx.Frameworks {
					printer.Bullet(f.Name, "("+string(f.Category)+", "+f.ConfigFile+")")
				}
			}

			if len(idx.ConfigFiles) > 0 {
				printer.Println()
				printer.Section("Config files:")
				for _, f := range idx.ConfigFiles {
					printer.Bullet(f, "")
				}
			}

			printer.Println()
			printer.Section("Structure:")
			printer.KeyValue("Layout", structureSummary(idx.Structure))
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "Project directory (default: current directory)")
	return cmd
}

func structureSummary(s indexer.Structure) string {
	var parts []string
	flags := []struct {
		on   bool
		name string
	}{
		{s.HasSrc, "src"},
		{s.HasTests, "tests"},
		{s.HasDocs, "docs"},
		{s.HasCI, "ci"},
	}
	for _, f := range flags {
		if f.on {
			parts = append(parts, f.name)
		}
	}
	if len(s.TopLevelDirs) > 0 {
		parts = append(parts, "dirs: "+strings.Join(s.TopLevelDirs, " "))
	}
	if len(parts) == 0 {
		return "flat"
	}
	return strings.Join(parts, ", ")
}
