// ============================================================================
// pl2 - Embeddable Command Language Engine
// ============================================================================
//
// Package:     repl
// Description: Styles for the REPL TUI
// Author:      Mike Stoffels
// Created:     2025-12-07
// License:     MIT
// ============================================================================

package repl

import (
	"github.com/charmbracelet/lipgloss"
)

// Color Palette - Same as other TUI components for consistency
var (
	ColorPrimary = lipgloss.Color("#8B5CF6") // Violet
	ColorSuccess = lipgloss.Color("#10B981") // Emerald
	ColorWarning = lipgloss.Color("#F59E0B") // Amber
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorMuted   = lipgloss.Color("#6B7280") // Gray
	ColorText    = lipgloss.Color("#F8FAFC") // Slate 50
	ColorBgPanel = lipgloss.Color("#1E293B") // Slate 800
)

var (
	LogoStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	InputEchoStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)

	OutputStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	StatusBarStyle = lipgloss.NewStyle().
			Background(ColorBgPanel).
			Foreground(ColorText).
			Padding(0, 1)

	StatusOKStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)
