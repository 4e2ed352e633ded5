// Package output renders gitobj command results for people and for tools.
//
// # Printer
//
// Every command writes through a Printer, which switches between styled
// text and JSON on the --json flag:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonFlag, output.IsTTY(cmd.OutOrStdout()))
//
//	printer.Section("commit " + sha)
//	printer.KeyValue("Author", author.String())
//	printer.Table([]string{"MODE", "TYPE", "SHA", "NAME"}, rows)
//
//	// JSON mode
//	printer.WriteJSON(objectView)
//
// Styles come from lipgloss and are dropped when stdout is not a terminal
// or --color=never is given.
//
// # Exit Codes
//
//	output.ExitSuccess     // 0
//	output.ExitUserError   // 1: bad arguments, unknown object, unsupported type
//	output.ExitSystemError // 2: git failed, was killed or timed out
//
// FromError turns errors from internal/git into an *ExitError carrying the
// right code; Printer.Error renders it as {"error": "...", "code": N} in
// JSON mode.
package output
