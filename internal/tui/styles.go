package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/aretw0/docprotocol/pkg/core"
)

// Styles holds the lipgloss styles used by the views.
type Styles struct {
	Title     lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Card      lipgloss.Style
	CardValue lipgloss.Style
	Label     lipgloss.Style
	Muted     lipgloss.Style
	Selected  lipgloss.Style
	Notice    lipgloss.Style
	Help      lipgloss.Style
	Badges    map[core.Status]lipgloss.Style
}

// DefaultStyles is the built-in dark-terminal palette.
func DefaultStyles() Styles {
	badge := lipgloss.NewStyle().Padding(0, 1).Bold(true)
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C9CFF")),
		Tab:       lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245")),
		ActiveTab: lipgloss.NewStyle().Padding(0, 1).Bold(true).Underline(true).Foreground(lipgloss.Color("#FFFFFF")),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2).
			MarginRight(1),
		CardValue: lipgloss.NewStyle().Bold(true),
		Label:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Width(14),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD866")),
		Notice:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FF9E64")),
		Help:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Badges: map[core.Status]lipgloss.Style{
			core.StatusPending:   badge.Foreground(lipgloss.Color("#1A1A1A")).Background(lipgloss.Color("#FFD866")),
			core.StatusSigned:    badge.Foreground(lipgloss.Color("#1A1A1A")).Background(lipgloss.Color("#78DCE8")),
			core.StatusDelivered: badge.Foreground(lipgloss.Color("#1A1A1A")).Background(lipgloss.Color("#A9DC76")),
			core.StatusCancelled: badge.Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#FF6188")),
		},
	}
}

// Badge renders a status label with its color.
func (s Styles) Badge(status core.Status) string {
	style, ok := s.Badges[status]
	if !ok {
		return status.Label()
	}
	return style.Render(status.Label())
}
