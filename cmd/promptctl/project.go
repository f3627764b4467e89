package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/debendraoli/promptctl/internal/compose"
	"github.com/debendraoli/promptctl/internal/config"
	"github.com/debendraoli/promptctl/internal/indexer"
	"github.com/debendraoli/promptctl/internal/output"
	"github.com/debendraoli/promptctl/internal/presets"
)

// project bundles what most commands need about the working project.
type project struct {
	Root       string
	Config     *config.Config
	ConfigPath string
	Composer   *compose.Composer
	Index      *indexer.Index
}

// projectRoot turns --path (or the working directory) into an absolute
// directory path.
func projectRoot(path string) (string, error) {
	if path == "" {
		path = "."
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", output.NewSystemErrorWithCause(fmt.Sprintf("cannot read %s", abs), err)
	}
	if !info.IsDir() {
		return "", output.NewUserError(fmt.Sprintf("not a directory: %s", abs))
	}
	return abs, nil
}

// loadProject resolves the root, loads .promptctl.toml and scans the tree.
func loadProject(cmd *cobra.Command, path string) (*project, error) {
	root, err := projectRoot(path)
	if err != nil {
		return nil, err
	}
	cfg, cfgPath, err := config.Load(root)
	if err != nil {
		return nil, output.NewUserError(err.Error())
	}
	logger := loggerFrom(cmd)
	return &project{
		Root:       root,
		Config:     cfg,
		ConfigPath: cfgPath,
		Composer:   compose.New(root, cfg, logger),
		Index:      indexer.Scan(root, indexer.WithLogger(logger)),
	}, nil
}

// loadPresets reads the preset store for root.
func loadPresets(root string) (*presets.Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, output.NewSystemErrorWithCause("cannot find home directory", err)
	}
	store, err := presets.Load(root, home)
	if err != nil {
		return nil, output.NewUserError(err.Error())
	}
	return store, nil
}

// fail prints err through the printer and returns it classified for the
// exit code.
func fail(printer *output.Printer, err error) error {
	exitErr := output.Classify(err)
	printer.Error(exitErr)
	return exitErr
}
