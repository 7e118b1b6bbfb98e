// Copyright (c) 2026 Passgen Team
// Passgen - password generation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/toeirei/passgen/internal/i18n"
)

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Toggle   key.Binding
	Generate key.Binding
	Copy     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// newKeyMap builds the bindings with help text in the active language.
func newKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "shift+tab"), key.WithHelp("↑/shift+tab", i18n.T("help.up"))),
		Down:     key.NewBinding(key.WithKeys("down", "tab"), key.WithHelp("↓/tab", i18n.T("help.down"))),
		Left:     key.NewBinding(key.WithKeys("left"), key.WithHelp("←", i18n.T("help.left"))),
		Right:    key.NewBinding(key.WithKeys("right"), key.WithHelp("→", i18n.T("help.right"))),
		Toggle:   key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", i18n.T("help.toggle"))),
		Generate: key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", i18n.T("help.generate"))),
		Copy:     key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", i18n.T("help.copy"))),
		Help:     key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", i18n.T("help.more"))),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", i18n.T("help.quit"))),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Generate, k.Copy, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Toggle, k.Generate, k.Copy},
		{k.Help, k.Quit},
	}
}
