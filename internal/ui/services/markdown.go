// Package services provides rendering helpers used by the views.
package services

import (
	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer renders markdown for the terminal.
type MarkdownRenderer interface {
	Render(content string, width int) (string, error)
}

// GlamourRenderer implements MarkdownRenderer with glamour, recreating the
// term renderer when the wrap width changes.
type GlamourRenderer struct {
	width    int
	renderer *glamour.TermRenderer
}

// NewGlamourRenderer creates a GlamourRenderer.
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{}
}

func (g *GlamourRenderer) Render(content string, width int) (string, error) {
	if width < 10 {
		width = 10
	}
	if g.renderer == nil || g.width != width {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", err
		}
		g.renderer = renderer
		g.width = width
	}
	return g.renderer.Render(content)
}

// RenderMarkdown renders content, falling back to plain text when the
// renderer errors or panics (glamour can panic on pathological input).
func RenderMarkdown(content string, width int, renderer MarkdownRenderer) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = content
			err = nil
		}
	}()

	if renderer == nil || content == "" {
		return content, nil
	}
	rendered, err := renderer.Render(content, width)
	if err != nil {
		return content, err
	}
	return rendered, nil
}
