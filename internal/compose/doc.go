// Package compose turns a role, a language and a project scan into prompt
// text. It is shared by the CLI commands, the watcher and the MCP server.
//
// Two kinds of output exist. A skillset is the self-contained guidance for
// one language (template sections, custom merge, language guardrails) and is
// what `show` prints and hooks embed. An agent prompt is the base instruction
// file written by `init`: role, project context and generic guardrails only.
// Generate sits between the two for `generate` and `emit`.
package compose
