// Copyright (c) 2026 Passgen Team
// Passgen - password generation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/toeirei/passgen/internal/i18n"
	"github.com/toeirei/passgen/internal/model"
	"github.com/toeirei/passgen/internal/ui"
)

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(i18n.T("tui.title")))
	b.WriteString("\n")

	b.WriteString(m.line(rowLength, i18n.T("tui.length"), m.lengthInput.View()))
	b.WriteString(m.line(rowPasswordCount, i18n.T("tui.count"), m.countInput.View()))
	b.WriteString(m.line(rowUppercase, i18n.T("tui.uppercase"), checkbox(m.cfg.UseUppercase)))
	b.WriteString(m.line(rowLowercase, i18n.T("tui.lowercase"), checkbox(m.cfg.UseLowercase)))
	b.WriteString(m.line(rowNumbers, i18n.T("tui.numbers"), checkbox(m.cfg.UseNumbers)))
	b.WriteString(m.line(rowSymbols, i18n.T("tui.symbols"), checkbox(m.cfg.UseSymbols)))
	if m.cfg.UseSymbols {
		b.WriteString(m.line(rowSelectAll, i18n.T("tui.select_all"), checkbox(m.cfg.AllSymbolsSelected())))
		b.WriteString(m.line(rowSymbolGrid, i18n.T("tui.symbol_catalog"), m.symbolGrid()))
		b.WriteString(m.line(rowCustomSymbols, i18n.T("tui.custom_symbols"), m.customInput.View()))
	}
	b.WriteString(m.line(rowAvoidRepeat, i18n.T("tui.avoid_repeat"), checkbox(m.cfg.AvoidRepeatingChars)))
	b.WriteString(m.line(rowAlgorithm, i18n.T("tui.algorithm"), "‹ "+ui.AlgorithmLabel(m.cfg.RandomAlgorithm)+" ›"))

	if err := m.cfg.Check(); err != nil {
		b.WriteString(warningStyle.Render(ui.ErrorMessage(err)))
		b.WriteString("\n")
	}

	button := buttonStyle
	if m.focus == rowGenerate {
		button = activeButtonStyle
	}
	b.WriteString(button.Render(i18n.T("tui.generate")))
	b.WriteString("\n")

	if len(m.results) > 0 {
		b.WriteString(m.resultsView())
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return docStyle.Render(b.String())
}

func (m Model) line(r row, label, value string) string {
	style := rowStyle
	marker := "  "
	if m.focus == r {
		style = focusedRowStyle
		marker = "> "
	}
	return style.Render(marker+labelStyle.Render(label)) + value + "\n"
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

// symbolGrid renders the catalog, highlighting selected symbols and the
// cursor when the grid has focus.
func (m Model) symbolGrid() string {
	var lines []string
	var cur []string
	for i, sym := range model.SymbolCatalog {
		style := symbolOffStyle
		if m.cfg.HasSymbol(sym) {
			style = symbolOnStyle
		}
		if m.focus == rowSymbolGrid && i == m.symbolCursor {
			style = style.Inherit(symbolCursorStyle)
		}
		cur = append(cur, style.Render(sym))
		if len(cur) == symbolsPerLine {
			lines = append(lines, strings.Join(cur, " "))
			cur = nil
		}
	}
	if len(cur) > 0 {
		lines = append(lines, strings.Join(cur, " "))
	}
	indent := strings.Repeat(" ", 2+lipgloss.Width(labelStyle.Render("")))
	return strings.Join(lines, "\n"+indent)
}

func (m Model) resultsView() string {
	var rows []string
	header := i18n.T("tui.results", len(m.results))
	if ui.HasFallback(m.results) {
		header = AlignFooter(header, warningStyle.Render("⚠ "+i18n.T("tui.fallback_badge")), 40)
	}
	rows = append(rows, header)
	inner := max(m.viewWidth()-boxChrome, minResultWidth+resultPrefix)
	valueWidth := inner - resultPrefix
	for i, p := range m.results {
		line := fmt.Sprintf("%2d. %s", i+1, truncate(p.Value, valueWidth))
		if m.focus == rowResults && i == m.resultCursor {
			line = selectedResultStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		rows = append(rows, line)
	}
	if m.focus != rowResults {
		rows = append(rows, disabledItemStyle.Render(truncate(i18n.T("tui.results_hint"), inner)))
	}
	return resultsBoxStyle.Render(strings.Join(rows, "\n"))
}

const (
	// defaultWidth is assumed until the first tea.WindowSizeMsg.
	defaultWidth = 80
	// boxChrome is the document margin plus the results box border and
	// padding; resultPrefix is the cursor and index in front of a value.
	boxChrome      = 8
	resultPrefix   = 6
	minResultWidth = 8
)

func (m Model) viewWidth() int {
	if m.width > 0 {
		return m.width
	}
	return defaultWidth
}

// truncate shortens s to width cells, ending in an ellipsis when cut. Only
// the first width+1 runes are looked at, so huge values stay cheap.
func truncate(s string, width int) string {
	n := 0
	for i := range s {
		if n > width {
			s = s[:i]
			break
		}
		n++
	}
	return ansi.Truncate(s, width, "…")
}
