package main

import (
	"strings"

	"github.com/fatih/color"

	"intellenum-generator/internal/diagnostic"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	codeColor    = color.New(color.Faint)
	hintColor    = color.New(color.FgGreen)
)

func severityColor(s diagnostic.Severity) *color.Color {
	switch s {
	case diagnostic.SeverityError:
		return errorColor
	case diagnostic.SeverityWarning:
		return warningColor
	default:
		return infoColor
	}
}

// formatDiagnostic renders d as "pos: severity: message [code]", followed by
// one indented line per suggestion.
func formatDiagnostic(d diagnostic.Diagnostic) string {
	var b strings.Builder

	if d.Pos.IsValid() {
		b.WriteString(d.Pos.String())
		b.WriteString(": ")
	}

	b.WriteString(severityColor(d.Severity).Sprint(d.Severity.String() + ":"))
	b.WriteString(" ")
	b.WriteString(d.Message)

	if d.Code != "" {
		b.WriteString(" ")
		b.WriteString(codeColor.Sprint("[" + d.Code + "]"))
	}

	for _, s := range d.Suggestions {
		b.WriteString("\n\t")
		b.WriteString(hintColor.Sprint("hint:"))
		b.WriteString(" ")
		b.WriteString(s)
	}

	return b.String()
}
