package views

import "github.com/Cyclone1070/patchpane/internal/ui/models"

// RenderInput renders the text input line.
func RenderInput(s models.State) string {
	return s.Input.View()
}
