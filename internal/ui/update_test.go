package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/Cyclone1070/patchpane/internal/ui/models"
)

func createTestModel() BubbleTeaModel {
	channels := NewUIChannels()
	return newBubbleTeaModel(channels, &MockMarkdownRenderer{})
}

func TestInit_ReturnsCommands(t *testing.T) {
	model := createTestModel()
	cmd := model.Init()
	assert.NotNil(t, cmd)
}

func TestUpdate_KeyEnter_SendsAskCommand(t *testing.T) {
	model := createTestModel()
	model.state.Input.SetValue("fix the parser")

	cmdChan := make(chan UICommand, 1)
	model.commandChan = cmdChan

	msg := tea.KeyMsg{Type: tea.KeyEnter}
	newModel, _ := model.Update(msg)
	m := newModel.(BubbleTeaModel)

	assert.Equal(t, "", m.state.Input.Value())
	assert.True(t, m.state.Busy)
	assert.Len(t, m.state.Messages, 1)
	assert.Equal(t, "user", m.state.Messages[0].Role)
	assert.Equal(t, "fix the parser", m.state.Messages[0].Content)

	select {
	case cmd := <-cmdChan:
		assert.Equal(t, CommandAsk, cmd.Type)
		assert.Equal(t, "fix the parser", cmd.Args["question"])
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Timeout waiting for ask command")
	}
}

func TestUpdate_KeyEnter_IgnoredWhileBusy(t *testing.T) {
	model := createTestModel()
	model.state.Busy = true
	model.state.Input.SetValue("another question")

	cmdChan := make(chan UICommand, 1)
	model.commandChan = cmdChan

	msg := tea.KeyMsg{Type: tea.KeyEnter}
	newModel, _ := model.Update(msg)
	m := newModel.(BubbleTeaModel)

	assert.Empty(t, m.state.Messages)
	assert.Len(t, cmdChan, 0)
}

func TestUpdate_KeyEnter_ClearsBanner(t *testing.T) {
	model := createTestModel()
	model.state.Banner = "previous error"
	model.state.Input.SetValue("retry")
	model.commandChan = make(chan UICommand, 1)

	newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m := newModel.(BubbleTeaModel)

	assert.Empty(t, m.state.Banner)
}

func TestUpdate_MessageReceived_AppendsAssistantMessage(t *testing.T) {
	model := createTestModel()
	model.state.Busy = true

	newModel, cmd := model.Update(messageReceivedMsg("Here is the answer."))
	m := newModel.(BubbleTeaModel)

	assert.False(t, m.state.Busy)
	assert.Len(t, m.state.Messages, 1)
	assert.Equal(t, "assistant", m.state.Messages[0].Role)
	assert.Equal(t, "Here is the answer.", m.state.Messages[0].Content)
	assert.NotNil(t, cmd) // re-arms the listener
}

func TestUpdate_ErrorReceived_SetsBanner(t *testing.T) {
	model := createTestModel()
	model.state.Busy = true

	newModel, _ := model.Update(errorReceivedMsg("network error: request failed"))
	m := newModel.(BubbleTeaModel)

	assert.False(t, m.state.Busy)
	assert.Equal(t, "network error: request failed", m.state.Banner)
}

func TestUpdate_StatusReceived_SetsStatusMessage(t *testing.T) {
	model := createTestModel()

	newModel, _ := model.Update(statusUpdateMsg{message: "Accepted src/a.ts"})
	m := newModel.(BubbleTeaModel)

	assert.Equal(t, "Accepted src/a.ts", m.state.StatusMessage)
}

func TestUpdate_EditsReceived_ClampsSelection(t *testing.T) {
	model := createTestModel()
	model.state.SelectedIndex = 4

	edits := []models.ReviewEdit{{ID: "1", DisplayPath: "a.go", Action: "update"}}
	newModel, _ := model.Update(editsReceivedMsg(edits))
	m := newModel.(BubbleTeaModel)

	assert.Equal(t, 0, m.state.SelectedIndex)
	assert.Equal(t, edits, m.state.Edits)
}

func TestUpdate_EditsReceived_EmptyClosesReview(t *testing.T) {
	model := createTestModel()
	model.state.ShowReview = true
	model.state.Edits = []models.ReviewEdit{{ID: "1", DisplayPath: "a.go", Action: "update"}}

	newModel, _ := model.Update(editsReceivedMsg(nil))
	m := newModel.(BubbleTeaModel)

	assert.False(t, m.state.ShowReview)
	assert.Empty(t, m.state.Edits)
}

func TestUpdate_TokenCountReceived(t *testing.T) {
	model := createTestModel()

	newModel, _ := model.Update(tokenCountMsg(1500))
	m := newModel.(BubbleTeaModel)

	assert.Equal(t, 1500, m.state.TokenCount)
}

func TestUpdate_CtrlC_Quits(t *testing.T) {
	model := createTestModel()
	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.NotNil(t, cmd)
}

func TestUpdate_Tab_OpensReviewWhenEditsExist(t *testing.T) {
	model := createTestModel()
	model.state.Edits = []models.ReviewEdit{{ID: "1", DisplayPath: "a.go", Action: "update"}}

	newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyTab})
	m := newModel.(BubbleTeaModel)

	assert.True(t, m.state.ShowReview)
}

func TestUpdate_Tab_NoEditsStaysInChat(t *testing.T) {
	model := createTestModel()

	newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyTab})
	m := newModel.(BubbleTeaModel)

	assert.False(t, m.state.ShowReview)
}

func reviewModel() BubbleTeaModel {
	model := createTestModel()
	model.state.ShowReview = true
	model.state.Edits = []models.ReviewEdit{
		{ID: "edit-1", DisplayPath: "a.go", Action: "update"},
		{ID: "edit-2", DisplayPath: "b.go", Action: "delete"},
	}
	return model
}

func TestReview_Escape_ClosesReview(t *testing.T) {
	model := reviewModel()

	newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m := newModel.(BubbleTeaModel)

	assert.False(t, m.state.ShowReview)
}

func TestReview_MoveSelection_SendsSelectCommand(t *testing.T) {
	model := reviewModel()
	cmdChan := make(chan UICommand, 1)
	model.commandChan = cmdChan

	newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m := newModel.(BubbleTeaModel)

	assert.Equal(t, 1, m.state.SelectedIndex)

	select {
	case cmd := <-cmdChan:
		assert.Equal(t, CommandSelect, cmd.Type)
		assert.Equal(t, "edit-2", cmd.Args["id"])
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Timeout waiting for select command")
	}
}

func TestReview_MoveSelection_StopsAtBounds(t *testing.T) {
	model := reviewModel()
	model.commandChan = make(chan UICommand, 2)

	newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	m := newModel.(BubbleTeaModel)
	assert.Equal(t, 0, m.state.SelectedIndex)

	m.state.SelectedIndex = 1
	newModel, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m = newModel.(BubbleTeaModel)
	assert.Equal(t, 1, m.state.SelectedIndex)
}

func TestReview_Accept_SendsAcceptCommand(t *testing.T) {
	model := reviewModel()
	cmdChan := make(chan UICommand, 1)
	model.commandChan = cmdChan

	model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})

	select {
	case cmd := <-cmdChan:
		assert.Equal(t, CommandAccept, cmd.Type)
		assert.Equal(t, "edit-1", cmd.Args["id"])
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Timeout waiting for accept command")
	}
}

func TestReview_Reject_SendsRejectCommand(t *testing.T) {
	model := reviewModel()
	model.state.SelectedIndex = 1
	cmdChan := make(chan UICommand, 1)
	model.commandChan = cmdChan

	model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})

	select {
	case cmd := <-cmdChan:
		assert.Equal(t, CommandReject, cmd.Type)
		assert.Equal(t, "edit-2", cmd.Args["id"])
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Timeout waiting for reject command")
	}
}

func TestUpdate_WindowSize_ResizesViewport(t *testing.T) {
	model := createTestModel()

	newModel, _ := model.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m := newModel.(BubbleTeaModel)

	assert.Equal(t, 100, m.state.Width)
	assert.Equal(t, 40, m.state.Height)
	assert.Equal(t, 100, m.state.Viewport.Width)
	assert.Equal(t, 34, m.state.Viewport.Height)
}
