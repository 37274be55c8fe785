package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	accent = lipgloss.Color("#F28C28")
	info   = lipgloss.Color("#3B82F6")
	subtle = lipgloss.Color("#888888")

	// SuccessStyle marks completed actions.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	// WarningStyle marks skipped work.
	WarningStyle = lipgloss.NewStyle().
			Foreground(accent)

	// SubtleStyle is used for secondary details.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(subtle)
)

// NewHuhTheme returns the orange/blue theme shared by all forms.
func NewHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = t.Focused.Title.Foreground(accent).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(subtle)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(info)
	t.Focused.MultiSelectSelector = t.Focused.MultiSelectSelector.Foreground(info)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(info)
	t.Focused.SelectedPrefix = t.Focused.SelectedPrefix.Foreground(accent)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Background(accent)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(lipgloss.Color("#FF0000"))

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())

	return t
}
