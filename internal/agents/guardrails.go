package agents

import "strings"

const commonGuardrails = `## Hallucination Prevention

- **Never invent APIs, functions, or types** that do not exist in the language or library version specified above.
- **Never fabricate crate, package, or module names**. Only reference dependencies that are documented and published.
- **If you are unsure whether a feature exists**, say so explicitly rather than guessing. Prefer linking to official docs.
- **Pin to the language version** declared in project config (Cargo.toml, go.mod, package.json, etc.) — do not assume newer features.
- **Do not hallucinate CLI flags, compiler options, or toolchain features** that do not exist for the specified version.
- **Verify struct fields, enum variants, and trait/interface methods** before referencing them — do not assume from memory.
- **When suggesting dependencies**, only suggest crates/packages you are confident exist and are actively maintained.
- **Prefer standard library solutions** over third-party when the stdlib provides equivalent functionality.
- **Quote error messages exactly** when referencing compiler or runtime errors — do not paraphrase.`

var languageGuardrails = map[string]string{
	"rust": "- Do not reference unstable features or nightly-only APIs unless the project explicitly uses nightly.\n" +
		"- Do not invent trait implementations — verify a type actually implements a trait before calling its methods.\n" +
		"- Do not fabricate `unsafe` justifications — every `unsafe` block must have a real, auditable safety comment.",
	"go": "- Do not reference Go generics syntax from versions prior to 1.18 or features beyond the go.mod version.\n" +
		"- Do not invent methods on standard library types — verify with `go doc`.\n" +
		"- Do not fabricate build tags or linker flags.",
	"typescript": "- Do not invent TypeScript compiler options — verify against the tsconfig.json reference.\n" +
		"- Do not reference DOM APIs in Node.js contexts or vice versa without checking the environment.\n" +
		"- Do not fabricate type utility names — verify they exist in `typescript` or `@types/*` packages.",
	"solidity": "- Assume every external caller is a malicious contract — apply adversarial mindset.\n" +
		"- Enforce Checks-Effects-Interactions (CEI) pattern on every state-changing function that makes external calls.\n" +
		"- Every public/external state-changing function MUST have explicit access control — missing modifiers are critical vulnerabilities.\n" +
		"- Do not reference Solidity features from versions higher than the pragma specifies.\n" +
		"- Do not invent EIPs or precompile addresses — verify they exist on the target chain.\n" +
		"- Do not hallucinate storage slot layouts, ABI encoding details, or OpenZeppelin API surfaces.",
	"leo": "- Do not invent Leo/Aleo instructions, opcodes, or record fields that do not exist.\n" +
		"- Do not fabricate program IDs or deployment addresses.\n" +
		"- Do not reference Aleo network features that are not yet on mainnet.",
}

var languageAliases = map[string]string{
	"ts":  "typescript",
	"sol": "solidity",
}

// GenericGuardrails closes every base instruction file. Language-specific
// guardrails belong to the per-language skillsets.
const GenericGuardrails = `## Hallucination Prevention

- **Never invent APIs, functions, or types** that do not exist in the language or library version.
- **Never fabricate package or module names**. Only reference dependencies that are documented and published.
- **If you are unsure whether a feature exists**, say so explicitly rather than guessing.
- **Pin to the language version** declared in project config (Cargo.toml, go.mod, package.json, etc.).
- **Do not hallucinate CLI flags, compiler options, or toolchain features**.
- **Verify struct fields, enum variants, and trait/interface methods** before referencing them.
- **When suggesting dependencies**, only suggest packages you are confident exist and are maintained.
- **Prefer standard library solutions** over third-party when the stdlib provides equivalent functionality.
- **Quote error messages exactly** when referencing compiler or runtime errors.
`

func canonicalLanguage(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if full, ok := languageAliases[lang]; ok {
		return full
	}
	return lang
}

// Guardrails returns the hallucination-prevention block for lang. Unknown
// languages get only the common bullets.
func Guardrails(lang string) string {
	out := commonGuardrails
	if extra, ok := languageGuardrails[canonicalLanguage(lang)]; ok {
		out += "\n" + extra
	}
	return out
}

// Globs pairs the file globs an agent should scope a language to with a
// human-readable extension list.
type Globs struct {
	Patterns   string
	Extensions string
}

var languageGlobs = map[string]Globs{
	"rust":       {Patterns: "**/*.rs", Extensions: ".rs"},
	"go":         {Patterns: "**/*.go", Extensions: ".go"},
	"typescript": {Patterns: "**/*.ts,**/*.tsx", Extensions: ".ts/.tsx"},
	"solidity":   {Patterns: "**/*.sol", Extensions: ".sol"},
	"leo":        {Patterns: "**/*.leo", Extensions: ".leo"},
}

// LanguageGlobs reports the globs for lang, if hooks can target it.
func LanguageGlobs(lang string) (Globs, bool) {
	g, ok := languageGlobs[canonicalLanguage(lang)]
	return g, ok
}
