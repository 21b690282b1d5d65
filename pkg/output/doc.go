// Package output renders command results for the zoimods CLI.
//
// Four formats are supported: term (styled with lipgloss), text (the same
// layout without styling), json and yaml. FormatAuto picks term or text
// depending on whether the output is a color capable terminal.
package output
