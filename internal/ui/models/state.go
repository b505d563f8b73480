// Package models holds the UI state shared between the update loop and the
// views.
package models

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
)

// Message is one chat transcript entry.
type Message struct {
	Role    string
	Content string
}

// ReviewEdit is the UI snapshot of a pending edit.
type ReviewEdit struct {
	ID              string
	DisplayPath     string
	Action          string
	OriginalContent string
	NewContent      string
}

// State is the complete UI state.
type State struct {
	Input    textinput.Model
	Viewport viewport.Model
	Spinner  spinner.Model

	Width  int
	Height int

	Messages []Message

	// Busy is true while a question is in flight.
	Busy     bool
	DotCount int

	StatusMessage string
	TokenCount    int

	// Banner is a non-fatal error shown inline; cleared on the next submit.
	Banner string

	// Review pane state.
	Edits         []ReviewEdit
	SelectedIndex int
	ShowReview    bool
	CopyNotice    string
}

// SelectedEdit returns the edit under the cursor, or nil.
func (s *State) SelectedEdit() *ReviewEdit {
	if s.SelectedIndex < 0 || s.SelectedIndex >= len(s.Edits) {
		return nil
	}
	return &s.Edits[s.SelectedIndex]
}
