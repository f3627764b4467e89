// Package output renders promptctl command results and maps errors to exit codes.
//
// Every command builds a Printer from its cobra output stream:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), colorEnabled(cmd))
//
// In JSON mode results are written with Success or WriteJSON and errors as
// {"error": "...", "code": N}. In human mode the lipgloss styles are applied
// only when colors are enabled, so piped output stays free of ANSI codes.
//
// # Exit Codes
//
//	output.ExitSuccess     // 0
//	output.ExitUserError   // 1: unknown language, role, agent, preset, bad flag
//	output.ExitSystemError // 2: I/O failures
//	output.ExitConflict    // 3: target exists and --force was not given
//
// Library packages return plain errors; Classify turns them into ExitError
// values at the command boundary.
package output
