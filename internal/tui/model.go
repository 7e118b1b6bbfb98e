// Copyright (c) 2026 Passgen Team
// Passgen - password generation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/passgen/internal/clipboard"
	"github.com/toeirei/passgen/internal/model"
	"github.com/toeirei/passgen/internal/ui"
)

// row identifies a focusable line of the form.
type row int

const (
	rowLength row = iota
	rowPasswordCount
	rowUppercase
	rowLowercase
	rowNumbers
	rowSymbols
	rowSelectAll
	rowSymbolGrid
	rowCustomSymbols
	rowAvoidRepeat
	rowAlgorithm
	rowGenerate
	rowResults
	numRows
)

// symbolsPerLine is how many catalog symbols the grid shows per line.
const symbolsPerLine = 15

// ConfigRepository streams and saves the password configuration. Watch
// sends the current configuration first, then every saved change, and
// closes the channel when ctx is done.
type ConfigRepository interface {
	Watch(ctx context.Context) (<-chan model.PasswordConfig, error)
	Save(ctx context.Context, cfg model.PasswordConfig) error
}

// Options wires the TUI to its collaborators.
type Options struct {
	Prefs     ConfigRepository
	Generator ui.Generator
	// Clipboard defaults to clipboard.Disabled.
	Clipboard clipboard.Sink
}

// Messages
type (
	configLoadedMsg struct {
		cfg     model.PasswordConfig
		err     error
		updates <-chan model.PasswordConfig
	}
	configSavedMsg struct{ err error }
	passwordsMsg   struct {
		cfg       model.PasswordConfig
		passwords []model.GeneratedPassword
		err       error
	}
	copiedMsg struct{ err error }
)

// Model is the password generator screen.
type Model struct {
	ctx  context.Context
	opts Options

	cfg    model.PasswordConfig
	loaded bool
	focus  row
	// pendingSaves counts saves not yet acknowledged; watched values that
	// arrive meanwhile are echoes of older edits.
	pendingSaves int

	symbolCursor int
	lengthInput  textinput.Model
	countInput   textinput.Model
	customInput  textinput.Model

	results      []model.GeneratedPassword
	resultCursor int
	resultAlg    model.RandomAlgorithm
	generating   bool

	status      string
	statusStyle lipgloss.Style

	keys  keyMap
	help  help.Model
	width int
}

// New builds the model. Init subscribes to the saved configuration.
func New(ctx context.Context, opts Options) Model {
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.Disabled{}
	}
	m := Model{
		ctx:         ctx,
		opts:        opts,
		cfg:         model.DefaultPasswordConfig(),
		keys:        newKeyMap(),
		help:        help.New(),
		lengthInput: newNumberInput(9),
		countInput:  newNumberInput(2),
		customInput: textinput.New(),
	}
	m.customInput.CharLimit = 256
	m.customInput.Width = 30
	m.customInput.Prompt = ""
	m.syncInputs()
	m.lengthInput.Focus()
	return m
}

func newNumberInput(limit int) textinput.Model {
	t := textinput.New()
	t.Prompt = ""
	t.CharLimit = limit
	t.Width = 12
	return t
}

// digitsOnly drops everything but ASCII digits.
func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r < '0' || r > '9' {
			return -1
		}
		return r
	}, s)
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.watchCmd())
}

func (m Model) watchCmd() tea.Cmd {
	if m.opts.Prefs == nil {
		return nil
	}
	repo, ctx := m.opts.Prefs, m.ctx
	return func() tea.Msg {
		updates, err := repo.Watch(ctx)
		if err != nil {
			return configLoadedMsg{err: err}
		}
		return waitForConfig(updates)()
	}
}

// waitForConfig delivers the next watched configuration. The handler
// re-arms it, so the model keeps listening until the channel closes.
func waitForConfig(updates <-chan model.PasswordConfig) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		cfg, ok := <-updates
		if !ok {
			return nil
		}
		return configLoadedMsg{cfg: cfg, updates: updates}
	}
}

func (m *Model) saveCmd() tea.Cmd {
	if m.opts.Prefs == nil || !m.cfg.IsValid() {
		return nil
	}
	m.pendingSaves++
	repo, ctx, cfg := m.opts.Prefs, m.ctx, m.cfg
	return func() tea.Msg {
		return configSavedMsg{err: repo.Save(ctx, cfg)}
	}
}

func (m Model) generateCmd() tea.Cmd {
	gen, ctx, cfg := m.opts.Generator, m.ctx, m.cfg
	return func() tea.Msg {
		passwords, err := gen.Run(ctx, cfg)
		return passwordsMsg{cfg: cfg, passwords: passwords, err: err}
	}
}

func (m Model) copyCmd(text string) tea.Cmd {
	sink := m.opts.Clipboard
	return func() tea.Msg {
		return copiedMsg{err: sink.Write(text)}
	}
}

// syncInputs rewrites the text inputs from the configuration.
func (m *Model) syncInputs() {
	m.lengthInput.SetValue(strconv.Itoa(m.cfg.Length))
	m.countInput.SetValue(strconv.Itoa(m.cfg.Count))
	m.customInput.SetValue(m.cfg.CustomSymbols)
}

// Config returns the configuration currently shown.
func (m Model) Config() model.PasswordConfig { return m.cfg }

// Results returns the passwords of the last successful batch.
func (m Model) Results() []model.GeneratedPassword { return m.results }

// Run starts the TUI and blocks until the user quits.
func Run(ctx context.Context, opts Options) error {
	_, err := tea.NewProgram(New(ctx, opts), tea.WithContext(ctx), tea.WithAltScreen()).Run()
	return err
}
