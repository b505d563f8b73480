package views

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/patchpane/internal/ui/models"
)

// RenderStatus renders the status bar.
func RenderStatus(s models.State) string {
	left := "Ready"
	if s.Busy {
		dots := strings.Repeat(".", s.DotCount)
		left = fmt.Sprintf("%s Thinking%s", s.Spinner.View(), dots)
	} else if s.StatusMessage != "" {
		left = s.StatusMessage
	}

	right := fmt.Sprintf("~%d tokens", s.TokenCount)
	if len(s.Edits) > 0 && !s.ShowReview {
		right = fmt.Sprintf("%d pending edits (tab to review)  %s", len(s.Edits), right)
	}

	return StatusStyle.Render(fmt.Sprintf("%s  |  %s", left, right))
}

// RenderBanner renders the inline error banner, or nothing.
func RenderBanner(s models.State) string {
	if s.Banner == "" {
		return ""
	}
	return BannerStyle.Render("! " + s.Banner)
}
