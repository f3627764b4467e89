package prompt

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed templates/*.md
var builtinFS embed.FS

func loadBuiltin(lang string) (*Template, error) {
	path := "templates/" + lang + ".md"
	data, err := builtinFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading builtin template %s: %w", path, err)
	}
	tmpl, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing builtin template %s: %w", path, err)
	}
	return tmpl, nil
}

// BuiltinLanguages lists the languages with an embedded template.
func BuiltinLanguages() []string {
	var langs []string
	for _, info := range listBuiltins() {
		langs = append(langs, info.Language)
	}
	return langs
}

func listBuiltins() []TemplateInfo {
	entries, err := builtinFS.ReadDir("templates")
	if err != nil {
		return nil
	}

	var templates []TemplateInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		lang := strings.TrimSuffix(entry.Name(), ".md")
		tmpl, err := loadBuiltin(lang)
		if err != nil {
			continue
		}
		templates = append(templates, TemplateInfo{
			Language:    lang,
			Description: tmpl.Description,
			Version:     tmpl.Version,
			Source:      SourceBuiltin,
		})
	}
	return templates
}
