package ui

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Cyclone1070/patchpane/internal/diff"
	"github.com/Cyclone1070/patchpane/internal/ui/models"
	"github.com/Cyclone1070/patchpane/internal/ui/services"
	"github.com/Cyclone1070/patchpane/internal/ui/views"
)

// BubbleTeaModel implements tea.Model.
type BubbleTeaModel struct {
	state models.State

	renderer services.MarkdownRenderer

	// App loop -> UI
	messageChan <-chan string
	errorChan   <-chan string
	statusChan  <-chan statusMsg
	editsChan   <-chan []models.ReviewEdit
	tokenChan   <-chan int

	// UI -> app loop
	commandChan chan<- UICommand

	readyChan chan<- struct{}
}

// newBubbleTeaModel creates a new Bubble Tea model.
func newBubbleTeaModel(channels *UIChannels, renderer services.MarkdownRenderer) BubbleTeaModel {
	ti := textinput.New()
	ti.Placeholder = "Ask about your code..."
	ti.Focus()

	vp := viewport.New(80, 20)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return BubbleTeaModel{
		state: models.State{
			Input:    ti,
			Viewport: vp,
			Spinner:  sp,
			Messages: []models.Message{},
		},
		renderer:    renderer,
		messageChan: channels.MessageChan,
		errorChan:   channels.ErrorChan,
		statusChan:  channels.StatusChan,
		editsChan:   channels.EditsChan,
		tokenChan:   channels.TokenChan,
		commandChan: channels.CommandChan,
		readyChan:   channels.ReadyChan,
	}
}

// Internal messages
type tickMsg time.Time
type messageReceivedMsg string
type errorReceivedMsg string
type statusUpdateMsg statusMsg
type editsReceivedMsg []models.ReviewEdit
type tokenCountMsg int

// Init initializes the model.
func (m BubbleTeaModel) Init() tea.Cmd {
	if m.readyChan != nil {
		close(m.readyChan)
	}

	return tea.Batch(
		textinput.Blink,
		m.state.Spinner.Tick,
		tick(),
		listenForMessages(m.messageChan),
		listenForErrors(m.errorChan),
		listenForStatus(m.statusChan),
		listenForEdits(m.editsChan),
		listenForTokenCounts(m.tokenChan),
	)
}

// View renders the UI.
func (m BubbleTeaModel) View() string {
	return views.RenderRoot(m.state, m.renderer)
}

// Update handles messages.
func (m BubbleTeaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		m.state.Viewport.Width = msg.Width
		m.state.Viewport.Height = msg.Height - 6 // Reserve space for input and status
		m.updateViewport()

	case tickMsg:
		m.state.DotCount = (m.state.DotCount + 1) % 4
		var cmd tea.Cmd
		m.state.Spinner, cmd = m.state.Spinner.Update(msg)
		return m, tea.Batch(cmd, tick())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.state.Spinner, cmd = m.state.Spinner.Update(msg)
		return m, cmd

	case messageReceivedMsg:
		m.state.Messages = append(m.state.Messages, models.Message{
			Role:    "assistant",
			Content: string(msg),
		})
		m.state.Busy = false
		m.updateViewport()
		return m, listenForMessages(m.messageChan)

	case errorReceivedMsg:
		m.state.Banner = string(msg)
		m.state.Busy = false
		return m, listenForErrors(m.errorChan)

	case statusUpdateMsg:
		m.state.StatusMessage = msg.message
		return m, listenForStatus(m.statusChan)

	case editsReceivedMsg:
		m.state.Edits = []models.ReviewEdit(msg)
		if m.state.SelectedIndex >= len(m.state.Edits) {
			m.state.SelectedIndex = 0
		}
		if len(m.state.Edits) == 0 {
			m.state.ShowReview = false
		}
		return m, listenForEdits(m.editsChan)

	case tokenCountMsg:
		m.state.TokenCount = int(msg)
		return m, listenForTokenCounts(m.tokenChan)
	}

	var cmd tea.Cmd
	m.state.Input, cmd = m.state.Input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles keyboard input.
func (m BubbleTeaModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.state.ShowReview {
		return m.handleReviewKey(msg)
	}

	switch msg.String() {
	case "tab":
		if len(m.state.Edits) > 0 {
			m.state.ShowReview = true
			m.state.CopyNotice = ""
		}
		return m, nil

	case "enter":
		if !m.state.Busy && m.state.Input.Value() != "" {
			question := m.state.Input.Value()
			m.state.Messages = append(m.state.Messages, models.Message{
				Role:    "user",
				Content: question,
			})
			m.state.Banner = ""
			m.state.Busy = true
			m.updateViewport()

			m.sendCommand(UICommand{
				Type: CommandAsk,
				Args: map[string]string{"question": question},
			})
			m.state.Input.SetValue("")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.state.Input, cmd = m.state.Input.Update(msg)
	return m, cmd
}

// handleReviewKey handles keys while the review pane is open.
func (m BubbleTeaModel) handleReviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "tab":
		m.state.ShowReview = false

	case "up", "k":
		if m.state.SelectedIndex > 0 {
			m.state.SelectedIndex--
			m.syncSelection()
		}

	case "down", "j":
		if m.state.SelectedIndex < len(m.state.Edits)-1 {
			m.state.SelectedIndex++
			m.syncSelection()
		}

	case "a":
		if e := m.state.SelectedEdit(); e != nil {
			m.sendCommand(UICommand{
				Type: CommandAccept,
				Args: map[string]string{"id": e.ID},
			})
		}

	case "r":
		if e := m.state.SelectedEdit(); e != nil {
			m.sendCommand(UICommand{
				Type: CommandReject,
				Args: map[string]string{"id": e.ID},
			})
		}

	case "c":
		if e := m.state.SelectedEdit(); e != nil {
			unified := diff.Unified(e.DisplayPath, e.OriginalContent, e.NewContent)
			if err := clipboard.WriteAll(unified); err != nil {
				m.state.CopyNotice = "copy failed"
			} else {
				m.state.CopyNotice = "copied"
			}
		}
	}
	return m, nil
}

// syncSelection tells the app loop which edit is under the cursor.
func (m *BubbleTeaModel) syncSelection() {
	if e := m.state.SelectedEdit(); e != nil {
		m.sendCommand(UICommand{
			Type: CommandSelect,
			Args: map[string]string{"id": e.ID},
		})
	}
}

// sendCommand never blocks the render loop; commands are dropped when the
// app loop has fallen behind.
func (m *BubbleTeaModel) sendCommand(cmd UICommand) {
	select {
	case m.commandChan <- cmd:
	default:
	}
}

// updateViewport updates the viewport content.
func (m *BubbleTeaModel) updateViewport() {
	content := views.FormatChatContent(m.state.Messages, m.state.Width-4, m.renderer)
	m.state.Viewport.SetContent(content)
	m.state.Viewport.GotoBottom()
}

// Helper commands for listening to channels
func listenForMessages(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		return messageReceivedMsg(<-ch)
	}
}

func listenForErrors(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		return errorReceivedMsg(<-ch)
	}
}

func listenForStatus(ch <-chan statusMsg) tea.Cmd {
	return func() tea.Msg {
		return statusUpdateMsg(<-ch)
	}
}

func listenForEdits(ch <-chan []models.ReviewEdit) tea.Cmd {
	return func() tea.Msg {
		return editsReceivedMsg(<-ch)
	}
}

func listenForTokenCounts(ch <-chan int) tea.Cmd {
	return func() tea.Msg {
		return tokenCountMsg(<-ch)
	}
}

func tick() tea.Cmd {
	return tea.Tick(300*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
