package views

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Cyclone1070/patchpane/internal/config"
)

var (
	UserMessageStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	AssistantMessageStyle = lipgloss.NewStyle()

	AddedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	RemovedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	ContextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	// Intra-line change emphasis on top of Added/Removed.
	HighlightStyle = lipgloss.NewStyle().Underline(true)

	BannerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	StatusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	TitleStyle    = lipgloss.NewStyle().Bold(true)
	SelectedStyle = lipgloss.NewStyle().Reverse(true)
)

// Configure applies the configured color palette.
func Configure(cfg config.UIConfig) {
	UserMessageStyle = UserMessageStyle.Foreground(lipgloss.Color(cfg.ColorPrimary))
	AddedStyle = AddedStyle.Foreground(lipgloss.Color(cfg.ColorAdded))
	RemovedStyle = RemovedStyle.Foreground(lipgloss.Color(cfg.ColorRemoved))
	ContextStyle = ContextStyle.Foreground(lipgloss.Color(cfg.ColorContext))
	BannerStyle = BannerStyle.Foreground(lipgloss.Color(cfg.ColorError))
	StatusStyle = StatusStyle.Foreground(lipgloss.Color(cfg.ColorContext))
}
