// ============================================================================
// pl2 - Embeddable Command Language Engine
// ============================================================================
//
// Package:     cmd
// Description: Terminal rendering of diagnostics, advisories and stats
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package cmd

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	mdwerror "github.com/msto63/pl2/foundation/core/error"
	"github.com/msto63/pl2/foundation/pl2/diag"
	"github.com/msto63/pl2/foundation/pl2/executor"
)

// Colors - Same palette as the TUI components
var (
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
)

var (
	locationStyle = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle    = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	warningStyle  = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	okStyle       = lipgloss.NewStyle().Foreground(colorSuccess)
	detailStyle   = lipgloss.NewStyle().Foreground(colorMuted).PaddingLeft(2)
)

// renderError renders core diagnostics in their canonical shape and host
// errors with their details.
func renderError(err error) string {
	if d, ok := diag.AsError(err); ok {
		return renderDiag(d)
	}

	var e *mdwerror.Error
	if !errors.As(err, &e) {
		return errorStyle.Render("error:") + " " + err.Error()
	}

	var b strings.Builder
	b.WriteString(errorStyle.Render("error:"))
	b.WriteString(" ")
	b.WriteString(e.Error())
	details := e.Details()
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString("\n")
		b.WriteString(detailStyle.Render(fmt.Sprintf("%s: %v", k, details[k])))
	}
	return b.String()
}

func renderDiag(d *diag.Error) string {
	loc := fmt.Sprintf("in file %s:%d:", d.Source.FileName, d.Source.Line)
	label := fmt.Sprintf("error[%d]:", d.Code())
	return locationStyle.Render(loc) + " " + errorStyle.Render(label) + " " + d.Reason()
}

func renderAdvisory(a diag.Advisory) string {
	loc := fmt.Sprintf("in file %s:%d:", a.Source.FileName, a.Source.Line)
	return locationStyle.Render(loc) + " " + warningStyle.Render("warning:") + " " + a.Command + ": " + a.Message
}

func renderOK(msg string) string {
	return okStyle.Render("ok") + " " + msg
}

func renderStats(s executor.Stats) string {
	return locationStyle.Render(fmt.Sprintf("steps=%d scans=%d cache_hits=%d advisories=%d duration=%s",
		s.Steps, s.Scans, s.CacheHits, s.Advisories, s.Duration.Round(time.Microsecond)))
}
