// Package ui styles terminal output with lipgloss.
//
// The package-level [Palette] provides title, success, error, warning and help styles used by the CLI for
// headers, status lines and the runtime footer. [PrintProgress] renders export progress updates as they arrive.
package ui
