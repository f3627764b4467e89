package indexer

import (
	"os"
	"path/filepath"
	"strings"
)

type frameworkRule struct {
	key      string
	name     string
	category Category
}

var rustFrameworks = []frameworkRule{
	{"tokio", "Tokio", CategoryWeb},
	{"axum", "Axum", CategoryWeb},
	{"actix-web", "Actix Web", CategoryWeb},
	{"rocket", "Rocket", CategoryWeb},
	{"warp", "Warp", CategoryWeb},
	{"hyper", "Hyper", CategoryWeb},
	{"clap", "Clap", CategoryCLI},
	{"serde", "Serde", CategoryLibrary},
	{"sqlx", "SQLx", CategoryDatabase},
	{"diesel", "Diesel", CategoryDatabase},
	{"sea-orm", "SeaORM", CategoryDatabase},
	{"tracing", "Tracing", CategoryLibrary},
	{"anyhow", "Anyhow", CategoryLibrary},
	{"thiserror", "Thiserror", CategoryLibrary},
}

var goFrameworks = []frameworkRule{
	{"github.com/gin-gonic/gin", "Gin", CategoryWeb},
	{"github.com/labstack/echo", "Echo", CategoryWeb},
	{"github.com/gofiber/fiber", "Fiber", CategoryWeb},
	{"github.com/gorilla/mux", "Gorilla Mux", CategoryWeb},
	{"github.com/go-chi/chi", "Chi", CategoryWeb},
	{"github.com/spf13/cobra", "Cobra", CategoryCLI},
	{"github.com/urfave/cli", "urfave/cli", CategoryCLI},
	{"gorm.io/gorm", "GORM", CategoryDatabase},
	{"github.com/jmoiron/sqlx", "sqlx", CategoryDatabase},
	{"entgo.io/ent", "Ent", CategoryDatabase},
	{"github.com/stretchr/testify", "Testify", CategoryTesting},
}

var nodeFrameworks = []frameworkRule{
	{"react", "React", CategoryWeb},
	{"next", "Next.js", CategoryWeb},
	{"vue", "Vue", CategoryWeb},
	{"nuxt", "Nuxt", CategoryWeb},
	{"svelte", "Svelte", CategoryWeb},
	{"express", "Express", CategoryWeb},
	{"fastify", "Fastify", CategoryWeb},
	{"nestjs", "NestJS", CategoryWeb},
	{"hono", "Hono", CategoryWeb},
	{"prisma", "Prisma", CategoryDatabase},
	{"drizzle", "Drizzle", CategoryDatabase},
	{"jest", "Jest", CategoryTesting},
	{"vitest", "Vitest", CategoryTesting},
	{"mocha", "Mocha", CategoryTesting},
	{"commander", "Commander", CategoryCLI},
	{"yargs", "Yargs", CategoryCLI},
}

var pythonFrameworks = []frameworkRule{
	{"django", "Django", CategoryWeb},
	{"flask", "Flask", CategoryWeb},
	{"fastapi", "FastAPI", CategoryWeb},
	{"starlette", "Starlette", CategoryWeb},
	{"pytest", "Pytest", CategoryTesting},
	{"sqlalchemy", "SQLAlchemy", CategoryDatabase},
	{"pydantic", "Pydantic", CategoryLibrary},
	{"click", "Click", CategoryCLI},
	{"typer", "Typer", CategoryCLI},
}

// ManifestFiles are the root-level files framework detection reads.
var ManifestFiles = []string{"Cargo.toml", "go.mod", "package.json", "program.json", "pyproject.toml", "requirements.txt"}

func (s *scanner) detectFrameworks(root string) {
	if content, ok := s.readRoot(root, "Cargo.toml"); ok {
		s.detectRust(root, content)
	}
	if content, ok := s.readRoot(root, "go.mod"); ok {
		s.detectGo(root, content)
	}
	if exists(filepath.Join(root, "program.json")) {
		s.detectLeo(root)
	}
	if content, ok := s.readRoot(root, "package.json"); ok {
		s.detectNode(root, content)
	}
	if exists(filepath.Join(root, "pyproject.toml")) || exists(filepath.Join(root, "requirements.txt")) {
		s.detectPython(root)
	}
}

func (s *scanner) readRoot(root, name string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(root, name)) // #nosec G304 -- fixed manifest names under the scan root
	if err != nil {
		return "", false
	}
	return string(data), true
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (s *scanner) add(rules []frameworkRule, configFile string, match func(key string) bool) {
	for _, r := range rules {
		if match(r.key) {
			s.idx.Frameworks = append(s.idx.Frameworks, Framework{Name: r.name, Category: r.category, ConfigFile: configFile})
		}
	}
}

func (s *scanner) detectRust(root, content string) {
	if lang, ok := s.idx.Languages["rust"]; ok {
		for line := range strings.Lines(content) {
			if strings.Contains(line, "rust-version") {
				if fields := strings.Split(line, `"`); len(fields) > 1 {
					lang.Version = fields[1]
				}
				break
			}
		}
	}
	s.add(rustFrameworks, filepath.Join(root, "Cargo.toml"), func(key string) bool {
		return strings.Contains(content, key)
	})
}

func (s *scanner) detectGo(root, content string) {
	if lang, ok := s.idx.Languages["go"]; ok {
		for line := range strings.Lines(content) {
			if strings.HasPrefix(line, "go ") {
				lang.Version = strings.TrimSpace(strings.TrimPrefix(line, "go "))
				break
			}
		}
	}
	s.add(goFrameworks, filepath.Join(root, "go.mod"), func(key string) bool {
		return strings.Contains(content, key)
	})
}

func (s *scanner) detectLeo(root string) {
	path := filepath.Join(root, "program.json")
	lang := s.language("leo")
	if content, ok := s.readRoot(root, "program.json"); ok {
		for line := range strings.Lines(content) {
			if strings.Contains(line, `"version"`) {
				if fields := strings.Split(line, `"`); len(fields) > 3 {
					lang.Version = fields[3]
				}
				break
			}
		}
	}
	s.idx.Frameworks = append(s.idx.Frameworks, Framework{Name: "Aleo", Category: CategoryOther, ConfigFile: path})
}

func (s *scanner) detectNode(root, content string) {
	s.add(nodeFrameworks, filepath.Join(root, "package.json"), func(key string) bool {
		return strings.Contains(content, `"`+key+`"`) || strings.Contains(content, "'"+key+"'")
	})
}

func (s *scanner) detectPython(root string) {
	var b strings.Builder
	for _, name := range []string{"pyproject.toml", "requirements.txt", "setup.py", "Pipfile"} {
		if content, ok := s.readRoot(root, name); ok {
			b.WriteString(content)
			b.WriteByte('\n')
		}
	}
	content := strings.ToLower(b.String())
	s.add(pythonFrameworks, "", func(key string) bool {
		return strings.Contains(content, key)
	})
}
