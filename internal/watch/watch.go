// Package watch re-runs a callback when promptctl inputs change: config and
// preset files, project manifests and template overrides.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/debendraoli/promptctl/internal/config"
	"github.com/debendraoli/promptctl/internal/indexer"
	"github.com/debendraoli/promptctl/internal/presets"
	"github.com/debendraoli/promptctl/internal/prompt"
)

// DefaultDebounce batches rapid saves into one callback.
const DefaultDebounce = 300 * time.Millisecond

// Watcher watches a project for changes that affect generated prompts.
type Watcher struct {
	root       string
	configDir  string
	templates  []string
	debounce   time.Duration
	logger     *zap.Logger
	watchNames map[string]bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before the callback runs.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithConfigPath also watches the directory holding the config file, when
// it lives outside the project.
func WithConfigPath(path string) Option {
	return func(w *Watcher) {
		if path != "" {
			w.configDir = filepath.Dir(path)
		}
	}
}

// WithTemplatesDir adds a template override directory.
func WithTemplatesDir(dir string) Option {
	return func(w *Watcher) {
		if dir != "" {
			w.templates = append(w.templates, dir)
		}
	}
}

// New creates a watcher for root.
func New(root string, opts ...Option) *Watcher {
	w := &Watcher{
		root:      root,
		templates: []string{prompt.ProjectTemplatesDir(root)},
		debounce:  DefaultDebounce,
		logger:    zap.NewNop(),
		watchNames: map[string]bool{
			config.FileName:  true,
			presets.FileName: true,
		},
	}
	for _, name := range indexer.ManifestFiles {
		w.watchNames[name] = true
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Relevant reports whether a change to path should trigger the callback.
func (w *Watcher) Relevant(path string) bool {
	if w.watchNames[filepath.Base(path)] {
		return true
	}
	for _, dir := range w.templates {
		if strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// Dirs returns the directories Run will watch. Missing directories are
// skipped.
func (w *Watcher) Dirs() []string {
	candidates := append([]string{w.root, w.configDir}, w.templates...)
	var dirs []string
	for _, dir := range candidates {
		if dir == "" || slices.Contains(dirs, dir) {
			continue
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		dirs = append(dirs, dir)
	}
	return dirs
}

// Run blocks until ctx is done, calling onChange once per burst of relevant
// events. Callback errors are logged and watching continues.
func (w *Watcher) Run(ctx context.Context, onChange func(path string) error) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer func() {
		if err := fw.Close(); err != nil {
			w.logger.Debug("closing watcher", zap.Error(err))
		}
	}()

	dirs := w.Dirs()
	if len(dirs) == 0 {
		return fmt.Errorf("nothing to watch under %s", w.root)
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		w.logger.Debug("watching", zap.String("dir", dir))
	}

	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending string
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !w.Relevant(event.Name) {
				continue
			}
			w.logger.Debug("change", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			pending = event.Name
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				w.logger.Warn("watch events overflowed", zap.Error(err))
				continue
			}
			w.logger.Warn("watch error", zap.Error(err))

		case <-timerC:
			timerC = nil
			if err := onChange(pending); err != nil {
				w.logger.Error("regenerating after change", zap.String("path", pending), zap.Error(err))
			}
		}
	}
}
