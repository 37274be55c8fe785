package move

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	huh "github.com/charmbracelet/huh"
)

// moduleMultiSelect is a MultiSelect that toggles the hovered module when
// submit is pressed with nothing selected, so a single module can be moved
// with one keystroke.
type moduleMultiSelect struct {
	*huh.MultiSelect[string]
	keymap *huh.KeyMap
}

func newModuleMultiSelect(selected *[]string) *moduleMultiSelect {
	return &moduleMultiSelect{
		MultiSelect: huh.NewMultiSelect[string]().Value(selected),
	}
}

func (m *moduleMultiSelect) Options(options ...huh.Option[string]) *moduleMultiSelect {
	m.MultiSelect.Options(options...)
	return m
}

func (m *moduleMultiSelect) WithKeyMap(k *huh.KeyMap) huh.Field {
	m.keymap = k
	m.MultiSelect.WithKeyMap(k)
	return m
}

func (m *moduleMultiSelect) KeyBinds() []key.Binding {
	binds := m.MultiSelect.KeyBinds()
	if m.keymap == nil {
		return binds
	}

	submitKeys := m.keymap.MultiSelect.Submit.Keys()
	if len(submitKeys) == 0 {
		return binds
	}

	desc := "move selected"
	if m.selectedCount() == 0 {
		desc = "move hovered"
	}

	for i := range binds {
		if !sameKeys(binds[i].Keys(), submitKeys) {
			continue
		}
		helpKey := binds[i].Help().Key
		if helpKey == "" {
			helpKey = submitKeys[0]
		}
		binds[i].SetHelp(helpKey, desc)
		break
	}

	return binds
}

func (m *moduleMultiSelect) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.keymap != nil &&
		key.Matches(keyMsg, m.keymap.MultiSelect.Submit) && m.selectedCount() == 0 {
		if _, hovered := m.MultiSelect.Hovered(); hovered {
			toggle, ok := keyMsgForBinding(m.keymap.MultiSelect.Toggle)
			if !ok {
				toggle = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
			}
			model, cmd := m.MultiSelect.Update(toggle)
			m.MultiSelect = model.(*huh.MultiSelect[string])
			cmds = append(cmds, cmd)
		}
	}

	model, cmd := m.MultiSelect.Update(msg)
	m.MultiSelect = model.(*huh.MultiSelect[string])
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *moduleMultiSelect) selectedCount() int {
	value, ok := m.MultiSelect.GetValue().([]string)
	if !ok {
		return 0
	}
	return len(value)
}

func keyMsgForBinding(binding key.Binding) (tea.KeyMsg, bool) {
	for _, label := range binding.Keys() {
		if msg, ok := keyMsgFromLabel(label); ok {
			return msg, true
		}
	}
	return tea.KeyMsg{}, false
}

func keyMsgFromLabel(label string) (tea.KeyMsg, bool) {
	switch label {
	case " ", "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, true
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}, true
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}, true
	case "esc", "escape":
		return tea.KeyMsg{Type: tea.KeyEsc}, true
	}

	if runes := []rune(label); len(runes) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: runes}, true
	}

	return tea.KeyMsg{}, false
}

func sameKeys(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
