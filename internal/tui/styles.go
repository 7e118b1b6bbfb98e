// Copyright (c) 2026 Passgen Team
// Passgen - password generation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// package tui provides the terminal user interface for Passgen.
// This file defines the shared lipgloss styles.
package tui // import "github.com/toeirei/passgen/internal/tui"

import "github.com/charmbracelet/lipgloss"

// colorPalette defines the core colors used in the TUI.
const (
	colorSubtle    = lipgloss.Color("240") // Muted gray
	colorHighlight = lipgloss.Color("81")  // Teal/cyan
	colorSpecial   = lipgloss.Color("208") // Orange for warnings
	colorError     = lipgloss.Color("196")
	colorSuccess   = lipgloss.Color("40")
	colorWhite     = lipgloss.Color("231")
)

var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Foreground(colorHighlight).
			Bold(true).
			Padding(0, 0, 1, 0)

	helpStyle    = lipgloss.NewStyle().Foreground(colorSubtle)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	warningStyle = lipgloss.NewStyle().Foreground(colorSpecial)

	// Form rows
	labelStyle        = lipgloss.NewStyle().Width(22)
	rowStyle          = lipgloss.NewStyle()
	focusedRowStyle   = lipgloss.NewStyle().Foreground(colorHighlight).Bold(true)
	disabledItemStyle = lipgloss.NewStyle().Foreground(colorSubtle)
	symbolOnStyle     = lipgloss.NewStyle().Foreground(colorWhite).Background(colorHighlight)
	symbolOffStyle    = lipgloss.NewStyle().Foreground(colorSubtle)
	symbolCursorStyle = lipgloss.NewStyle().Underline(true).Bold(true)

	buttonStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(lipgloss.Color("237")).
			Padding(0, 3).
			MarginTop(1)

	activeButtonStyle = buttonStyle.
				Background(colorHighlight).
				Underline(true)

	resultsBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(0, 1).
			MarginTop(1)

	selectedResultStyle = lipgloss.NewStyle().Foreground(colorHighlight)

	statusMessageStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Foreground(colorWhite).
				Background(colorHighlight)
)
