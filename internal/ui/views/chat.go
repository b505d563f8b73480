package views

import (
	"strings"

	"github.com/Cyclone1070/patchpane/internal/ui/models"
	"github.com/Cyclone1070/patchpane/internal/ui/services"
)

// RenderChat renders the message history.
func RenderChat(s models.State, renderer services.MarkdownRenderer) string {
	if len(s.Messages) == 0 {
		return ContextStyle.Render("No messages yet. Type a question to start.")
	}
	return s.Viewport.View()
}

// FormatChatContent formats the messages for the viewport.
func FormatChatContent(messages []models.Message, width int, renderer services.MarkdownRenderer) string {
	var lines []string
	for _, msg := range messages {
		if msg.Role == "user" {
			lines = append(lines, UserMessageStyle.Render("You: "+msg.Content))
		} else {
			rendered, err := services.RenderMarkdown(msg.Content, width, renderer)
			if err != nil {
				lines = append(lines, AssistantMessageStyle.Render(msg.Content))
			} else {
				lines = append(lines, AssistantMessageStyle.Render(rendered))
			}
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
