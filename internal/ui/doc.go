// Package ui provides terminal output for the rainbar CLI.
//
// Commands that run once and exit (preview, scan, check-update, config
// init) print through these components: a Header naming the command and
// its parameters, a Result box for the outcome, and WindowTable for the
// forecast window with a color swatch per slot.
//
// Example:
//
//	fmt.Println(ui.NewHeader("Forecast Preview", "rainbar preview", []ui.Param{
//	    {Key: "Provider", Value: "weathergov"},
//	}).Render())
//	fmt.Println(ui.WindowTable(window, 9, frames))
//
// # Logging Integration
//
// Zap output goes to stderr and is silent unless RAINBAR_LOG_LEVEL is set,
// so the styled output stays clean.
package ui
