package indexer

import (
	"cmp"
	"slices"
	"strings"
)

// Category groups detected frameworks.
type Category string

// Framework categories.
const (
	CategoryWeb      Category = "web"
	CategoryCLI      Category = "cli"
	CategoryLibrary  Category = "library"
	CategoryTesting  Category = "testing"
	CategoryBuild    Category = "build"
	CategoryDatabase Category = "database"
	CategoryOther    Category = "other"
)

// Index is the result of scanning a project.
type Index struct {
	Root        string               `json:"root"`
	Languages   map[string]*Language `json:"languages"`
	Frameworks  []Framework          `json:"frameworks"`
	ConfigFiles []string             `json:"config_files"`
	Structure   Structure            `json:"structure"`
}

// Language counts the files seen for one language.
type Language struct {
	Name       string   `json:"name"`
	FileCount  int      `json:"file_count"`
	Extensions []string `json:"extensions"`
	Version    string   `json:"version,omitempty"`
}

// Framework is a library or tool detected from a manifest.
type Framework struct {
	Name       string   `json:"name"`
	Category   Category `json:"category"`
	ConfigFile string   `json:"config_file,omitempty"`
}

// Structure summarizes the top-level layout.
type Structure struct {
	HasSrc       bool     `json:"has_src"`
	HasTests     bool     `json:"has_tests"`
	HasDocs      bool     `json:"has_docs"`
	HasCI        bool     `json:"has_ci"`
	TopLevelDirs []string `json:"top_level_dirs"`
}

// SortedLanguages orders languages by file count, most first, then by name.
func (idx *Index) SortedLanguages() []*Language {
	if idx == nil {
		return nil
	}
	langs := make([]*Language, 0, len(idx.Languages))
	for _, l := range idx.Languages {
		langs = append(langs, l)
	}
	slices.SortFunc(langs, func(a, b *Language) int {
		if c := cmp.Compare(b.FileCount, a.FileCount); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return langs
}

// PrimaryLanguage returns the language with the most files, or nil.
// Ties resolve to the lexicographically smallest name.
func (idx *Index) PrimaryLanguage() *Language {
	langs := idx.SortedLanguages()
	if len(langs) == 0 {
		return nil
	}
	return langs[0]
}

// LanguageNames returns the detected language names, sorted.
func (idx *Index) LanguageNames() []string {
	if idx == nil {
		return nil
	}
	names := make([]string, 0, len(idx.Languages))
	for name := range idx.Languages {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// TotalFiles sums file counts over all languages.
func (idx *Index) TotalFiles() int {
	if idx == nil {
		return 0
	}
	total := 0
	for _, l := range idx.Languages {
		total += l.FileCount
	}
	return total
}

// HasFramework reports whether a framework was detected, ignoring case.
func (idx *Index) HasFramework(name string) bool {
	if idx == nil {
		return false
	}
	return slices.ContainsFunc(idx.Frameworks, func(f Framework) bool {
		return strings.EqualFold(f.Name, name)
	})
}

// FrameworkNames returns framework names in detection order.
func (idx *Index) FrameworkNames() []string {
	if idx == nil {
		return nil
	}
	names := make([]string, 0, len(idx.Frameworks))
	for _, f := range idx.Frameworks {
		names = append(names, f.Name)
	}
	return names
}

// ContextString summarizes the project for inclusion in a prompt.
// Empty parts are omitted; an empty index yields "".
func (idx *Index) ContextString() string {
	if idx == nil {
		return ""
	}
	var parts []string

	if langs := idx.SortedLanguages(); len(langs) > 0 {
		names := make([]string, 0, 3)
		for _, l := range langs[:min(3, len(langs))] {
			if l.Version != "" {
				names = append(names, l.Name+" "+l.Version)
			} else {
				names = append(names, l.Name)
			}
		}
		parts = append(parts, "Languages: "+strings.Join(names, ", "))
	}

	if len(idx.Frameworks) > 0 {
		parts = append(parts, "Frameworks: "+strings.Join(idx.FrameworkNames(), ", "))
	}

	var has []string
	if idx.Structure.HasTests {
		has = append(has, "tests")
	}
	if idx.Structure.HasDocs {
		has = append(has, "docs")
	}
	if idx.Structure.HasCI {
		has = append(has, "CI")
	}
	if len(has) > 0 {
		parts = append(parts, "Has: "+strings.Join(has, ", "))
	}

	return strings.Join(parts, "\n")
}
