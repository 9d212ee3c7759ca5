package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/aretw0/docprotocol/pkg/app"
	"github.com/aretw0/docprotocol/pkg/core"
)

const dateLayout = "02/01/2006"

// View renders the current screen.
func (m Model) View() string {
	state := m.app.Snapshot()

	var b strings.Builder
	b.WriteString(m.renderHeader(state.View))
	b.WriteString("\n\n")

	switch state.View {
	case app.ViewDashboard:
		b.WriteString(m.renderDashboard())
	case app.ViewList:
		b.WriteString(m.renderList())
	case app.ViewNew:
		b.WriteString(m.renderForm(state.Draft))
	case app.ViewAssist:
		b.WriteString(m.renderAssist(state.Busy))
	}

	b.WriteString("\n")
	if state.Notice != "" {
		b.WriteString(m.styles.Notice.Render(state.Notice))
		b.WriteString("\n")
	}
	b.WriteString(m.renderHelp(state.View))
	return b.String()
}

func (m Model) renderHeader(current app.View) string {
	tabs := make([]string, 0, len(app.Views))
	for _, v := range app.Views {
		style := m.styles.Tab
		if v == current {
			style = m.styles.ActiveTab
		}
		tabs = append(tabs, style.Render(v.Label()))
	}
	title := m.styles.Title.Render("DocProtocol")
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", strings.Join(tabs, " "))
}

func (m Model) renderDashboard() string {
	cards := []string{
		m.card("Total", m.stats.Total),
		m.card(core.StatusPending.Label(), m.stats.Pending),
		m.card(core.StatusSigned.Label(), m.stats.Signed),
		m.card(core.StatusDelivered.Label(), m.stats.Delivered),
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	b.WriteString("\n\nRecentes\n")
	if len(m.recent) == 0 {
		b.WriteString(m.styles.Muted.Render("Nenhum protocolo registrado."))
		b.WriteString("\n")
	}
	for _, p := range m.recent {
		b.WriteString(m.row(p, false))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) card(label string, value int) string {
	return m.styles.Card.Render(label + "\n" + m.styles.CardValue.Render(fmt.Sprint(value)))
}

func (m Model) renderList() string {
	var b strings.Builder
	if m.searching || m.search.Value() != "" {
		b.WriteString("/ ")
		b.WriteString(m.search.View())
		b.WriteString("\n\n")
	}
	if len(m.visible) == 0 {
		b.WriteString(m.styles.Muted.Render("Nenhum protocolo encontrado."))
		b.WriteString("\n")
	}
	for i, p := range m.visible {
		b.WriteString(m.row(p, i == m.cursor))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) row(p core.Protocol, selected bool) string {
	prefix := "  "
	text := fmt.Sprintf("%-13s %-40s %-24s %-8s %s",
		p.Code, truncate(p.Title, 40), truncate(p.Sender, 24), p.Type.Label(), p.CreatedAt.Format(dateLayout))
	if selected {
		prefix = "> "
		text = m.styles.Selected.Render(text)
	}
	return prefix + text + " " + m.styles.Badge(p.Status)
}

func (m Model) renderForm(d core.Draft) string {
	var b strings.Builder
	for i, input := range m.form {
		b.WriteString(m.styles.Label.Render(fieldLabels[i]))
		b.WriteString(input.View())
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Label.Render("Tipo"))
	b.WriteString(d.Type.Label())
	b.WriteString("\n")
	if d.Priority != "" {
		b.WriteString(m.styles.Label.Render("Prioridade"))
		b.WriteString(string(d.Priority))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderAssist(busy bool) string {
	var b strings.Builder
	if !m.app.HasAssistant() {
		b.WriteString(m.styles.Muted.Render("Defina GEMINI_API_KEY para habilitar o assistente."))
		b.WriteString("\n\n")
	}
	b.WriteString(m.prompt.View())
	b.WriteString("\n")
	if busy {
		b.WriteString(m.styles.Muted.Render("Processando com IA..."))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderHelp(v app.View) string {
	var bindings []key.Binding
	switch v {
	case app.ViewList:
		if m.searching {
			bindings = []key.Binding{m.keys.Confirm, m.keys.Back}
		} else {
			bindings = []key.Binding{m.keys.Up, m.keys.Down, m.keys.Search, m.keys.Sign, m.keys.Deliver, m.keys.Cancel, m.keys.NextTab, m.keys.Quit}
		}
	case app.ViewNew:
		bindings = []key.Binding{m.keys.NextField, m.keys.ToggleType, m.keys.Submit, m.keys.Back}
	case app.ViewAssist:
		bindings = []key.Binding{m.keys.Confirm, m.keys.Back}
	default:
		bindings = []key.Binding{m.keys.TabList, m.keys.TabNew, m.keys.TabAssist, m.keys.NextTab, m.keys.Quit}
	}

	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		h := binding.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return m.styles.Help.Render(strings.Join(parts, " • "))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
