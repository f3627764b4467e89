// Package setup installs and removes agent-native hooks: the files an AI
// coding agent loads on its own, inside its loop, as opposed to the static
// instruction file written by emit.
//
// Each supported agent is a HookEnv in a small registry:
//
//	env, err := setup.Get("cursor")
//	files, err := env.Install(root, setup.Request{Languages: langs, Role: "developer", Skillsets: skills})
//	removed, err := env.Remove(root)
//
// # Claude Code
//
// Two scripts under .claude/hooks plus SessionStart and PreToolUse entries
// merged into .claude/settings.json. Existing settings are preserved.
//
// # Cursor and Copilot
//
// One rule file per detected language, scoped by file globs:
// .cursor/rules/promptctl-<lang>.mdc and
// .github/instructions/promptctl-<lang>.instructions.md.
package setup
