// Package move is the interactive flow for moving modules between
// profiles.
package move

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	huh "github.com/charmbracelet/huh"
	"github.com/jakoblorz/go-aptprofile/internal/partition"
	"github.com/jakoblorz/go-aptprofile/internal/tui"
)

// newProfileValue is the target option that creates a profile on the fly.
const newProfileValue = "\x00new"

// Flow asks for a source profile, modules and a target profile, then moves
// the modules in the store.
type Flow struct {
	store *partition.Store
	theme *huh.Theme
	run   func(*huh.Form) error
}

// Result captures the successful output of the flow.
type Result struct {
	From    string
	To      string
	Created bool
	Moved   []string
	Skipped []string
}

// NewFlow constructs a Flow with the shared huh theme.
func NewFlow(store *partition.Store) *Flow {
	return &Flow{
		store: store,
		theme: tui.NewHuhTheme(),
		run:   (*huh.Form).Run,
	}
}

// Run executes the forms sequentially. from may be nil to ask for it. A
// nil result without error means the user aborted.
func (f *Flow) Run(from *partition.Profile) (*Result, error) {
	result, err := f.run1(from)
	if errors.Is(err, huh.ErrUserAborted) {
		return nil, nil
	}
	return result, err
}

func (f *Flow) run1(from *partition.Profile) (*Result, error) {
	if from == nil {
		var err error
		if from, err = f.selectSource(); err != nil {
			return nil, err
		}
	}

	modules, err := f.selectModules(from)
	if err != nil {
		return nil, err
	}
	if len(modules) == 0 {
		return &Result{From: from.Name}, nil
	}

	targetID, newName, err := f.selectTarget(from, modules)
	if err != nil {
		return nil, err
	}

	return f.apply(from, modules, targetID, newName)
}

func (f *Flow) apply(from *partition.Profile, modules []string, targetID, newName string) (*Result, error) {
	result := &Result{From: from.Name}

	var to *partition.Profile
	if targetID == newProfileValue {
		created, err := f.store.CreateProfile(newName)
		if err != nil {
			return nil, err
		}
		to = created
		result.Created = true
	} else {
		to = profileByID(f.store, targetID)
		if to == nil {
			return nil, fmt.Errorf("failed to move modules: target %w", partition.ErrUnknownProfile)
		}
	}
	result.To = to.Name

	moved, err := f.store.MoveMembers(modules, from, to)
	if err != nil {
		return nil, err
	}
	result.Moved = moved.Moved
	result.Skipped = moved.Skipped
	return result, nil
}

func (f *Flow) selectSource() (*partition.Profile, error) {
	opts := sourceOptions(f.store)
	if len(opts) == 0 {
		return nil, fmt.Errorf("no profile has modules to move")
	}

	id := opts[0].Value
	keyMap := huh.NewDefaultKeyMap()
	keyMap.Select.Filter.SetEnabled(false)
	keyMap.Select.Submit.SetKeys("enter", " ")
	keyMap.Select.Submit.SetHelp("space/enter", "continue")

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Options(opts...).
				Value(&id),
		).
			Title("Source Profile").
			Description("Move modules out of which profile?"),
	).
		WithTheme(f.theme).
		WithShowHelp(true).
		WithProgramOptions(tea.WithAltScreen()).
		WithKeyMap(keyMap)

	if err := f.run(form); err != nil {
		return nil, err
	}

	return profileByID(f.store, id), nil
}

func (f *Flow) selectModules(from *partition.Profile) ([]string, error) {
	opts := moduleOptions(f.store, from)
	if len(opts) == 0 {
		return nil, fmt.Errorf("profile %s has no modules", from.Name)
	}

	selected := make([]string, 0, len(opts))

	keyMap := huh.NewDefaultKeyMap()
	keyMap.MultiSelect.Toggle.SetKeys(" ")
	keyMap.MultiSelect.Toggle.SetHelp("space", "toggle")
	keyMap.MultiSelect.Submit.SetKeys("enter")
	keyMap.MultiSelect.Submit.SetHelp("enter", "continue")

	form := huh.NewForm(
		huh.NewGroup(
			newModuleMultiSelect(&selected).
				Options(opts...),
		).
			Title("Modules").
			Description(fmt.Sprintf("Select modules to move out of %s.", from.Name)),
	).
		WithTheme(f.theme).
		WithShowHelp(true).
		WithProgramOptions(tea.WithAltScreen()).
		WithKeyMap(keyMap)

	if err := f.run(form); err != nil {
		return nil, err
	}

	return selected, nil
}

func (f *Flow) selectTarget(from *partition.Profile, modules []string) (string, string, error) {
	opts := targetOptions(f.store, from)
	target := opts[0].Value
	name := ""

	keyMap := huh.NewDefaultKeyMap()
	keyMap.Select.Filter.SetEnabled(false)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Options(opts...).
				Value(&target),
		).
			Title("Target Profile").
			Description(fmt.Sprintf("Move %d module(s) to", len(modules))),
		huh.NewGroup(
			huh.NewInput().
				Title("Profile name").
				Value(&name).
				Validate(func(v string) error {
					return f.store.ValidateName(v, nil)
				}),
		).
			WithHideFunc(func() bool { return target != newProfileValue }),
	).
		WithTheme(f.theme).
		WithShowHelp(true).
		WithProgramOptions(tea.WithAltScreen()).
		WithKeyMap(keyMap)

	if err := f.run(form); err != nil {
		return "", "", err
	}

	return target, name, nil
}

// sourceOptions lists profiles that have something to move.
func sourceOptions(store *partition.Store) []huh.Option[string] {
	var opts []huh.Option[string]
	for _, p := range allProfiles(store) {
		n := len(movable(store, p))
		if n == 0 {
			continue
		}
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s (%d)", p.Name, n), p.ID))
	}
	return opts
}

// moduleOptions lists the modules that can leave from. Stored references
// to modules missing from the workspace are offered too, so they can be
// cleaned up.
func moduleOptions(store *partition.Store, from *partition.Profile) []huh.Option[string] {
	stale := make(map[string]struct{})
	if !from.IsDefault() {
		for _, m := range store.StaleMembers(from) {
			stale[m] = struct{}{}
		}
	}

	var opts []huh.Option[string]
	for _, m := range movable(store, from) {
		label := m
		if _, ok := stale[m]; ok {
			label = m + " (missing)"
		}
		opts = append(opts, huh.NewOption(label, m))
	}
	return opts
}

// targetOptions lists every profile except from, then the option to create
// a new one.
func targetOptions(store *partition.Store, from *partition.Profile) []huh.Option[string] {
	var opts []huh.Option[string]
	for _, p := range allProfiles(store) {
		if p == from {
			continue
		}
		opts = append(opts, huh.NewOption(p.Name, p.ID))
	}
	return append(opts, huh.NewOption("+ New profile…", newProfileValue))
}

func movable(store *partition.Store, p *partition.Profile) []string {
	if p.IsDefault() {
		return store.ComputedMembers(p)
	}
	modules := p.Members()
	partition.SortModules(modules)
	return modules
}

func allProfiles(store *partition.Store) []*partition.Profile {
	return append([]*partition.Profile{store.DefaultProfile()}, store.ExplicitProfiles()...)
}

func profileByID(store *partition.Store, id string) *partition.Profile {
	for _, p := range allProfiles(store) {
		if p.ID == id {
			return p
		}
	}
	return nil
}
