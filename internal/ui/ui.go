// Package ui is the channel-driven Bubble Tea front end. The app loop talks
// to it exclusively through UIChannels; the UI never touches the engine or
// the store directly.
package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Cyclone1070/patchpane/internal/ui/models"
	"github.com/Cyclone1070/patchpane/internal/ui/services"
)

// UICommand is a loosely-typed request sent from the UI to the app loop.
type UICommand struct {
	Type string
	Args map[string]string
}

const (
	CommandAsk    = "ask"
	CommandAccept = "accept"
	CommandReject = "reject"
	CommandSelect = "select"
)

type statusMsg struct {
	message string
}

// UIChannels holds the channels for UI communication.
type UIChannels struct {
	// App loop -> UI
	MessageChan chan string
	ErrorChan   chan string
	StatusChan  chan statusMsg
	EditsChan   chan []models.ReviewEdit
	TokenChan   chan int

	// UI -> app loop
	CommandChan chan UICommand

	ReadyChan chan struct{} // Signals when UI is ready to accept requests
}

// NewUIChannels creates a new UIChannels struct with default buffers.
func NewUIChannels() *UIChannels {
	return &UIChannels{
		MessageChan: make(chan string, 10),
		ErrorChan:   make(chan string, 10),
		StatusChan:  make(chan statusMsg, 10),
		EditsChan:   make(chan []models.ReviewEdit, 10),
		TokenChan:   make(chan int, 10),
		CommandChan: make(chan UICommand, 10),
		ReadyChan:   make(chan struct{}),
	}
}

// UI implements the front end using Bubble Tea.
type UI struct {
	program  *tea.Program
	channels *UIChannels
}

// NewUI creates a new Bubble Tea UI.
func NewUI(channels *UIChannels, renderer services.MarkdownRenderer) *UI {
	model := newBubbleTeaModel(channels, renderer)
	return &UI{
		program:  tea.NewProgram(model, tea.WithAltScreen()),
		channels: channels,
	}
}

// Start runs the UI program; it blocks until the user quits.
func (u *UI) Start() error {
	_, err := u.program.Run()
	return err
}

// Quit asks the program to exit.
func (u *UI) Quit() {
	u.program.Quit()
}

// WriteMessage shows an assistant reply.
func (u *UI) WriteMessage(content string) {
	select {
	case u.channels.MessageChan <- content:
	default:
		// Drop if channel is full
	}
}

// WriteError shows a non-fatal inline banner; the chat stays usable.
func (u *UI) WriteError(message string) {
	select {
	case u.channels.ErrorChan <- message:
	default:
	}
}

// WriteStatus updates the status line.
func (u *UI) WriteStatus(message string) {
	select {
	case u.channels.StatusChan <- statusMsg{message: message}:
	default:
	}
}

// WriteEdits replaces the review pane's edit snapshot.
func (u *UI) WriteEdits(edits []models.ReviewEdit) {
	select {
	case u.channels.EditsChan <- edits:
	default:
	}
}

// WriteTokenCount updates the token estimate in the status bar.
func (u *UI) WriteTokenCount(count int) {
	select {
	case u.channels.TokenChan <- count:
	default:
	}
}

// Commands returns the command channel.
func (u *UI) Commands() <-chan UICommand {
	return u.channels.CommandChan
}

// Ready returns a channel that is closed when the UI is ready.
func (u *UI) Ready() <-chan struct{} {
	return u.channels.ReadyChan
}
