// Copyright (c) 2026 Passgen Team
// Passgen - password generation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/passgen/internal/i18n"
	"github.com/toeirei/passgen/internal/logging"
	"github.com/toeirei/passgen/internal/model"
	"github.com/toeirei/passgen/internal/ui"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case configLoadedMsg:
		if msg.err != nil {
			logging.Errorf("loading saved configuration: %v", msg.err)
			m.setStatus(i18n.T("tui.load_failed", ui.ErrorMessage(msg.err)), errorStyle)
			return m, nil
		}
		next := waitForConfig(msg.updates)
		if m.loaded && (m.pendingSaves > 0 || msg.cfg.Equal(m.cfg)) {
			return m, next
		}
		m.cfg = msg.cfg
		m.loaded = true
		if !m.available(m.focus) {
			m.focus = rowSymbols
		}
		m.syncInputs()
		return m, next

	case configSavedMsg:
		if m.pendingSaves > 0 {
			m.pendingSaves--
		}
		if msg.err != nil {
			logging.Warnf("saving configuration: %v", msg.err)
			m.setStatus(i18n.T("tui.save_failed", ui.ErrorMessage(msg.err)), errorStyle)
		}
		return m, nil

	case passwordsMsg:
		m.generating = false
		if msg.err != nil {
			m.results = nil
			m.setStatus(ui.ErrorMessage(msg.err), errorStyle)
			if m.focus == rowResults {
				m.focus = rowGenerate
			}
			return m, nil
		}
		m.results = msg.passwords
		m.resultCursor = 0
		m.resultAlg = msg.cfg.RandomAlgorithm
		if ui.HasFallback(msg.passwords) {
			m.setStatus(ui.FallbackWarning(msg.cfg.RandomAlgorithm), warningStyle)
		} else {
			m.setStatus(i18n.T("tui.generated", len(msg.passwords)), successStyle)
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.setStatus(i18n.T("tui.copy_failed", ui.ErrorMessage(msg.err)), errorStyle)
		} else {
			m.setStatus(i18n.T("tui.copied"), successStyle)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Cursor blinking and other messages for the focused input.
	if in := m.focusedInput(); in != nil {
		var cmd tea.Cmd
		*in, cmd = in.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Generate):
		return m.startGenerate()
	case key.Matches(msg, m.keys.Copy):
		cmd := m.copySelected()
		return m, cmd
	case key.Matches(msg, m.keys.Up):
		if m.focus == rowResults && m.resultCursor > 0 {
			m.resultCursor--
			return m, nil
		}
		cmd := m.moveFocus(-1)
		return m, cmd
	case key.Matches(msg, m.keys.Down):
		if m.focus == rowResults && m.resultCursor < len(m.results)-1 {
			m.resultCursor++
			return m, nil
		}
		cmd := m.moveFocus(1)
		return m, cmd
	}

	if in := m.focusedInput(); in != nil {
		if msg.Type == tea.KeyEnter {
			cmd := m.moveFocus(1)
			return m, cmd
		}
		var cmd tea.Cmd
		*in, cmd = in.Update(msg)
		apply := m.applyInput()
		return m, tea.Batch(cmd, apply)
	}

	switch {
	case key.Matches(msg, m.keys.Left):
		cmd := m.step(-1)
		return m, cmd
	case key.Matches(msg, m.keys.Right):
		cmd := m.step(1)
		return m, cmd
	case key.Matches(msg, m.keys.Toggle):
		return m.toggle()
	}
	return m, nil
}

// focusedInput returns the text input of the focused row, if it has one.
func (m *Model) focusedInput() *textinput.Model {
	switch m.focus {
	case rowLength:
		return &m.lengthInput
	case rowPasswordCount:
		return &m.countInput
	case rowCustomSymbols:
		return &m.customInput
	default:
		return nil
	}
}

// available reports whether r can take focus right now.
func (m Model) available(r row) bool {
	switch r {
	case rowSelectAll, rowSymbolGrid, rowCustomSymbols:
		return m.cfg.UseSymbols
	case rowResults:
		return len(m.results) > 0
	default:
		return true
	}
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	next := m.focus
	for i := 0; i < int(numRows); i++ {
		next = row((int(next) + delta + int(numRows)) % int(numRows))
		if m.available(next) {
			break
		}
	}
	return m.setFocus(next)
}

func (m *Model) setFocus(r row) tea.Cmd {
	if in := m.focusedInput(); in != nil {
		in.Blur()
	}
	// Leaving a number field shows the clamped value that is actually used.
	m.syncInputs()
	m.focus = r
	if in := m.focusedInput(); in != nil {
		in.CursorEnd()
		return in.Focus()
	}
	return nil
}

// applyInput copies the focused input into the configuration. Unparsable
// numbers leave the configuration unchanged; parsable ones are clamped.
func (m *Model) applyInput() tea.Cmd {
	next := m.cfg
	switch m.focus {
	case rowLength:
		sanitize(&m.lengthInput)
		n, err := strconv.Atoi(m.lengthInput.Value())
		if err != nil {
			return nil
		}
		next = next.WithLength(n)
	case rowPasswordCount:
		sanitize(&m.countInput)
		n, err := strconv.Atoi(m.countInput.Value())
		if err != nil {
			return nil
		}
		next = next.WithCount(n)
	case rowCustomSymbols:
		v := m.customInput.Value()
		next = next.With(func(c *model.PasswordConfig) { c.CustomSymbols = v })
	}
	return m.update(next)
}

func sanitize(in *textinput.Model) {
	if v := digitsOnly(in.Value()); v != in.Value() {
		in.SetValue(v)
	}
}

// update replaces the configuration and saves it when it changed.
func (m *Model) update(next model.PasswordConfig) tea.Cmd {
	if next.Equal(m.cfg) {
		return nil
	}
	m.cfg = next
	if !m.available(m.focus) {
		m.focus = rowSymbols
	}
	return m.saveCmd()
}

func (m *Model) step(delta int) tea.Cmd {
	switch m.focus {
	case rowSymbolGrid:
		n := len(model.SymbolCatalog)
		m.symbolCursor = (m.symbolCursor + delta + n) % n
	case rowAlgorithm:
		return m.update(m.cfg.With(func(c *model.PasswordConfig) {
			c.RandomAlgorithm = cycleAlgorithm(c.RandomAlgorithm, delta)
		}))
	}
	return nil
}

func cycleAlgorithm(cur model.RandomAlgorithm, delta int) model.RandomAlgorithm {
	algs := model.RandomAlgorithms
	idx := 0
	for i, a := range algs {
		if a == cur {
			idx = i
		}
	}
	return algs[(idx+delta+len(algs))%len(algs)]
}

func (m Model) toggle() (tea.Model, tea.Cmd) {
	var next model.PasswordConfig
	switch m.focus {
	case rowUppercase:
		next = m.cfg.With(func(c *model.PasswordConfig) { c.UseUppercase = !c.UseUppercase })
	case rowLowercase:
		next = m.cfg.With(func(c *model.PasswordConfig) { c.UseLowercase = !c.UseLowercase })
	case rowNumbers:
		next = m.cfg.With(func(c *model.PasswordConfig) { c.UseNumbers = !c.UseNumbers })
	case rowSymbols:
		next = m.cfg.With(func(c *model.PasswordConfig) { c.UseSymbols = !c.UseSymbols })
	case rowSelectAll:
		next = m.cfg.WithAllSymbols(!m.cfg.AllSymbolsSelected())
	case rowSymbolGrid:
		sym := model.SymbolCatalog[m.symbolCursor]
		next = m.cfg.WithSymbolSelected(sym, !m.cfg.HasSymbol(sym))
	case rowAvoidRepeat:
		next = m.cfg.With(func(c *model.PasswordConfig) { c.AvoidRepeatingChars = !c.AvoidRepeatingChars })
	case rowAlgorithm:
		cmd := m.step(1)
		return m, cmd
	case rowGenerate:
		return m.startGenerate()
	case rowResults:
		cmd := m.copySelected()
		return m, cmd
	default:
		return m, nil
	}
	cmd := m.update(next)
	return m, cmd
}

func (m Model) startGenerate() (tea.Model, tea.Cmd) {
	if m.generating {
		return m, nil
	}
	m.generating = true
	m.setStatus(i18n.T("tui.generating"), helpStyle)
	return m, m.generateCmd()
}

func (m *Model) copySelected() tea.Cmd {
	if len(m.results) == 0 {
		m.setStatus(i18n.T("tui.nothing_to_copy"), helpStyle)
		return nil
	}
	return m.copyCmd(m.results[m.resultCursor].Value)
}

func (m *Model) setStatus(text string, style lipgloss.Style) {
	m.status = text
	m.statusStyle = style
}
