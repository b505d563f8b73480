package views

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Cyclone1070/patchpane/internal/ui/models"
	"github.com/Cyclone1070/patchpane/internal/ui/services"
)

// RenderRoot renders the complete UI layout.
func RenderRoot(s models.State, renderer services.MarkdownRenderer) string {
	var main string
	if s.ShowReview {
		main = RenderReview(s)
	} else {
		main = RenderChat(s, renderer)
	}

	sections := []string{main}
	if banner := RenderBanner(s); banner != "" {
		sections = append(sections, banner)
	}
	sections = append(sections, RenderInput(s), RenderStatus(s))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
