package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	huh "github.com/charmbracelet/huh"
)

// Confirm asks a yes/no question. Aborting the form counts as no.
func Confirm(title, description string) (bool, error) {
	confirmed := false

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&confirmed),
		),
	).
		WithTheme(NewHuhTheme()).
		WithShowHelp(true).
		WithProgramOptions(tea.WithAltScreen())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}

	return confirmed, nil
}
