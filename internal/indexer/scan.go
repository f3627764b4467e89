package indexer

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"
)

// DefaultMaxDepth is how many directory levels below the root are read.
const DefaultMaxDepth = 10

var defaultIgnoredDirs = []string{"node_modules", "target", "vendor", "dist", "build", "__pycache__"}

var extensionLanguages = map[string]string{
	"rs":      "rust",
	"go":      "go",
	"leo":     "leo",
	"aleo":    "leo",
	"py":      "python",
	"pyi":     "python",
	"ts":      "typescript",
	"tsx":     "typescript",
	"js":      "javascript",
	"jsx":     "javascript",
	"mjs":     "javascript",
	"cjs":     "javascript",
	"rb":      "ruby",
	"java":    "java",
	"kt":      "kotlin",
	"kts":     "kotlin",
	"swift":   "swift",
	"c":       "c",
	"h":       "c",
	"cpp":     "cpp",
	"cc":      "cpp",
	"cxx":     "cpp",
	"hpp":     "cpp",
	"zig":     "zig",
	"ex":      "elixir",
	"exs":     "elixir",
	"erl":     "erlang",
	"hrl":     "erlang",
	"hs":      "haskell",
	"ml":      "ocaml",
	"mli":     "ocaml",
	"scala":   "scala",
	"sc":      "scala",
	"clj":     "clojure",
	"cljs":    "clojure",
	"cljc":    "clojure",
	"lua":     "lua",
	"sh":      "shell",
	"bash":    "shell",
	"zsh":     "shell",
	"sql":     "sql",
	"proto":   "protobuf",
	"graphql": "graphql",
	"gql":     "graphql",
}

var configFileNames = []string{
	"Cargo.toml", "go.mod", "package.json", "program.json", "pyproject.toml",
	"requirements.txt", "tsconfig.json", "vite.config.ts", "webpack.config.js",
	"Makefile", "Dockerfile", "docker-compose.yml", ".env", ".env.example",
}

// LanguageForExtension maps a file extension (with or without the leading
// dot) to a language name.
func LanguageForExtension(ext string) (string, bool) {
	lang, ok := extensionLanguages[strings.TrimPrefix(ext, ".")]
	return lang, ok
}

// Option configures a scan.
type Option func(*scanner)

// WithLogger sets the logger used for skipped directories.
func WithLogger(logger *zap.Logger) Option {
	return func(s *scanner) {
		if logger != nil {
			s.log = logger
		}
	}
}

// WithMaxDepth overrides DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(s *scanner) {
		if depth >= 0 {
			s.maxDepth = depth
		}
	}
}

// WithIgnore adds directory names to skip.
func WithIgnore(names ...string) Option {
	return func(s *scanner) {
		s.ignored = append(s.ignored, names...)
	}
}

type scanner struct {
	log      *zap.Logger
	maxDepth int
	ignored  []string
	exts     map[string]map[string]struct{}
	idx      *Index
}

// Scan indexes the project at root. It never fails: unreadable entries are
// skipped.
func Scan(root string, opts ...Option) *Index {
	s := &scanner{
		log:      zap.NewNop(),
		maxDepth: DefaultMaxDepth,
		ignored:  slices.Clone(defaultIgnoredDirs),
		exts:     make(map[string]map[string]struct{}),
		idx: &Index{
			Root:        root,
			Languages:   make(map[string]*Language),
			Frameworks:  []Framework{},
			ConfigFiles: []string{},
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.walk(root)
	s.finishLanguages()
	s.detectFrameworks(root)
	s.scanStructure(root)

	s.log.Debug("scanned project",
		zap.String("root", root),
		zap.Strings("languages", s.idx.LanguageNames()),
		zap.Int("files", s.idx.TotalFiles()),
		zap.Int("frameworks", len(s.idx.Frameworks)),
	)
	return s.idx
}

func (s *scanner) walk(root string) {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.log.Debug("skipping unreadable path", zap.String("path", path), zap.Error(err))
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}

		name := d.Name()
		if strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if slices.Contains(s.ignored, name) || s.depth(root, path) > s.maxDepth {
				return filepath.SkipDir
			}
			return nil
		}

		if isFile(path, d) {
			s.processFile(path, name)
		}
		return nil
	})
	if err != nil {
		s.log.Debug("walk stopped", zap.String("root", root), zap.Error(err))
	}
}

func (s *scanner) depth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return 0
	}
	return len(strings.Split(rel, string(filepath.Separator)))
}

// isFile follows symlinks so linked sources are counted.
func isFile(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func (s *scanner) processFile(path, name string) {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if lang, ok := LanguageForExtension(ext); ok {
		info := s.language(lang)
		info.FileCount++
		if s.exts[lang] == nil {
			s.exts[lang] = make(map[string]struct{})
		}
		s.exts[lang][ext] = struct{}{}
	}

	if slices.Contains(configFileNames, name) {
		s.idx.ConfigFiles = append(s.idx.ConfigFiles, path)
	}
}

func (s *scanner) language(name string) *Language {
	info, ok := s.idx.Languages[name]
	if !ok {
		info = &Language{Name: name, Extensions: []string{}}
		s.idx.Languages[name] = info
	}
	return info
}

func (s *scanner) finishLanguages() {
	for lang, set := range s.exts {
		exts := make([]string, 0, len(set))
		for ext := range set {
			exts = append(exts, ext)
		}
		slices.Sort(exts)
		s.idx.Languages[lang].Extensions = exts
	}
}

func (s *scanner) scanStructure(root string) {
	st := &s.idx.Structure
	st.TopLevelDirs = []string{}

	entries, err := os.ReadDir(root)
	if err != nil {
		s.log.Debug("reading project root", zap.String("root", root), zap.Error(err))
	}
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		st.TopLevelDirs = append(st.TopLevelDirs, name)
		switch name {
		case "src", "lib":
			st.HasSrc = true
		case "test", "tests", "spec", "__tests__":
			st.HasTests = true
		case "docs", "doc", "documentation":
			st.HasDocs = true
		}
	}
	slices.Sort(st.TopLevelDirs)

	for _, ci := range []string{".github/workflows", ".gitlab-ci.yml", ".circleci/config.yml", "Jenkinsfile", ".travis.yml"} {
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(ci))); err == nil {
			st.HasCI = true
			break
		}
	}
}
