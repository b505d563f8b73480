package views

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Cyclone1070/patchpane/internal/ui/models"
)

func TestRenderRoot_ChatState(t *testing.T) {
	messages := []models.Message{{Role: "user", Content: "Hi"}}
	renderer := &MockMarkdownRenderer{}

	vp := createTestViewport()
	vp.SetContent(FormatChatContent(messages, 76, renderer))

	state := models.State{
		Width:    80,
		Height:   24,
		Messages: messages,
		Input:    createTestTextInput("typing..."),
		Viewport: vp,
	}

	result := RenderRoot(state, renderer)

	assert.Contains(t, result, "Hi")
	assert.Contains(t, result, "typing...")
	assert.Contains(t, result, "Ready")
}

func TestRenderRoot_ReviewState(t *testing.T) {
	state := models.State{
		Width:      80,
		Height:     24,
		ShowReview: true,
		Edits: []models.ReviewEdit{
			{ID: "1", DisplayPath: "src/a.ts", Action: "update", NewContent: "x\n"},
		},
		Input:    createTestTextInput(""),
		Viewport: createTestViewport(),
	}

	result := RenderRoot(state, &MockMarkdownRenderer{})

	assert.Contains(t, result, "Pending edits (1)")
	assert.Contains(t, result, "src/a.ts")
}

func TestRenderRoot_WithBanner(t *testing.T) {
	state := models.State{
		Width:    80,
		Height:   24,
		Banner:   "model service unavailable",
		Input:    createTestTextInput(""),
		Viewport: createTestViewport(),
	}

	result := RenderRoot(state, &MockMarkdownRenderer{})
	assert.Contains(t, result, "! model service unavailable")
}
