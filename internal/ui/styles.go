package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	ColorPrimary = lipgloss.Color("#0078D4") // Azure blue

	ColorSuccess = lipgloss.Color("#10B981") // Green
	ColorWarning = lipgloss.Color("#F59E0B") // Amber
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorInfo    = lipgloss.Color("#3B82F6") // Blue

	// Change-type colors
	ColorAdd  = lipgloss.Color("#10B981") // Green
	ColorEdit = lipgloss.Color("#F59E0B") // Amber

	ColorText       = lipgloss.Color("#F3F4F6") // Light gray
	ColorTextMuted  = lipgloss.Color("#9CA3AF") // Gray
	ColorTextBright = lipgloss.Color("#FFFFFF") // White

	ColorBorder = lipgloss.Color("#374151") // Medium gray
)

// Message styles
var (
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorInfo)
)

// Text styles
var (
	BoldStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorTextBright)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	HighlightStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)
)

// Table styles
var (
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorTextBright)

	TableCellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	TableBorderStyle = lipgloss.NewStyle().
				Foreground(ColorBorder)
)

// Tree styles
var (
	TreeRootStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	TreeEnumeratorStyle = lipgloss.NewStyle().
				Foreground(ColorBorder)
)

// Change-type styles
var (
	ChangeAddStyle = lipgloss.NewStyle().
			Foreground(ColorAdd).
			Bold(true)

	ChangeEditStyle = lipgloss.NewStyle().
			Foreground(ColorEdit)
)

// GetChangeStyle returns the style for a change type
func GetChangeStyle(changeType string) lipgloss.Style {
	switch changeType {
	case "add":
		return ChangeAddStyle
	case "edit":
		return ChangeEditStyle
	default:
		return DimStyle
	}
}
