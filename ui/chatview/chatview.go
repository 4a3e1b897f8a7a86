// Package chatview is the bubbletea front-end for a chat.Conversation.
package chatview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.design/x/clipboard"

	"snake-np/chat"
)

const (
	headerHeight = 2
	inputHeight  = 3
	footerHeight = 2
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0EA5E9"))
	userLabel   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0EA5E9"))
	modelLabel  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#10B981"))
	userBody    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F8FAFC")).Background(lipgloss.Color("#0284C7")).Padding(0, 1)
	modelBody   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E2E8F0")).Background(lipgloss.Color("#334155")).Padding(0, 1)
	likedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F43F5E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#64748B"))
	spinnerText = lipgloss.NewStyle().Foreground(lipgloss.Color("#38BDF8"))
)

type keyMap struct {
	Send   key.Binding
	Stop   key.Binding
	Like   key.Binding
	Copy   key.Binding
	Scroll key.Binding
	Quit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Send:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		Stop:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "stop")),
		Like:   key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "like last reply")),
		Copy:   key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy last reply")),
		Scroll: key.NewBinding(key.WithKeys("pgup", "pgdown"), key.WithHelp("pgup/pgdn", "scroll")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

type chunkMsg struct {
	ex   chat.Exchange
	text string
}

type doneMsg struct {
	ex  chat.Exchange
	err error
}

type Model struct {
	conv     *chat.Conversation
	streamer chat.Streamer
	keys     keyMap

	input    textarea.Model
	viewport viewport.Model
	spinner  spinner.Model

	width  int
	height int
	ready  bool

	cancel    context.CancelFunc
	stream    *stream
	clipboard ClipboardWriter
	status    string
	notice    string
}

// ClipboardWriter puts text on the clipboard
type ClipboardWriter func(text string) error

var (
	clipboardOnce sync.Once
	clipboardErr  error
)

func systemClipboard(text string) error {
	clipboardOnce.Do(func() { clipboardErr = clipboard.Init() })
	if clipboardErr != nil {
		return fmt.Errorf("clipboard unavailable: %w", clipboardErr)
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

// stream is the reply currently being received
type stream struct {
	ex   chat.Exchange
	out  <-chan string
	errc <-chan error
}

func New(conv *chat.Conversation, streamer chat.Streamer) *Model {
	ta := textarea.New()
	ta.Placeholder = "Ask NP Chatbot anything..."
	ta.Focus()
	ta.CharLimit = 4000
	ta.SetHeight(inputHeight)
	ta.ShowLineNumbers = false
	ta.Prompt = "▍ "
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.KeyMap.InsertNewline.SetEnabled(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerText

	return &Model{
		conv:      conv,
		streamer:  streamer,
		keys:      defaultKeys(),
		input:     ta,
		spinner:   sp,
		width:     80,
		height:    24,
		clipboard: systemClipboard,
	}
}

// SetClipboard replaces the system clipboard
func (m *Model) SetClipboard(w ClipboardWriter) {
	m.clipboard = w
}

func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.stop()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Stop):
			m.stop()
			return m, nil
		case key.Matches(msg, m.keys.Like):
			m.likeLast()
			return m, nil
		case key.Matches(msg, m.keys.Copy):
			m.copyLast()
			return m, nil
		case key.Matches(msg, m.keys.Scroll):
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		case key.Matches(msg, m.keys.Send):
			return m, m.send()
		}

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case chunkMsg:
		m.conv.Append(msg.ex, msg.text)
		m.refresh()
		return m, m.wait()

	case doneMsg:
		if err := m.conv.Finish(msg.ex, msg.err); err != nil {
			m.status = err.Error()
		}
		m.stop()
		m.stream = nil
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.conv.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// send starts streaming a reply to the input. Chunks come back one
// command at a time so the conversation is only touched from Update.
func (m *Model) send() tea.Cmd {
	ex, err := m.conv.Begin(m.input.Value())
	if err != nil {
		if errors.Is(err, chat.ErrBusy) {
			m.status = "Wait for the reply or press esc to stop it."
		}
		return nil
	}
	m.input.Reset()
	m.status = ""
	m.notice = ""

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	out := make(chan string)
	errc := make(chan error, 1)
	history := m.conv.History(ex)
	go func() {
		errc <- m.streamer.Stream(ctx, history, out)
		close(out)
	}()

	m.stream = &stream{ex: ex, out: out, errc: errc}
	m.refresh()
	return tea.Batch(m.wait(), m.spinner.Tick)
}

// wait blocks for the next fragment of the current stream
func (m *Model) wait() tea.Cmd {
	st := m.stream
	if st == nil {
		return nil
	}
	return func() tea.Msg {
		text, ok := <-st.out
		if !ok {
			return doneMsg{ex: st.ex, err: <-st.errc}
		}
		return chunkMsg{ex: st.ex, text: text}
	}
}

func (m *Model) stop() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

func (m *Model) likeLast() {
	reply, ok := m.conv.LastReply()
	if !ok {
		return
	}
	if _, err := m.conv.Like(reply.ID); err != nil {
		m.status = err.Error()
	}
	m.refresh()
}

func (m *Model) copyLast() {
	reply, ok := m.conv.LastReply()
	if !ok {
		return
	}
	if err := m.clipboard(reply.Display()); err != nil {
		m.status = err.Error()
		return
	}
	m.status = ""
	m.notice = "Copied to clipboard."
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	vh := h - headerHeight - inputHeight - footerHeight - 1
	if vh < 1 {
		vh = 1
	}
	if !m.ready {
		m.viewport = viewport.New(w, vh)
		m.ready = true
	} else {
		m.viewport.Width = w
		m.viewport.Height = vh
	}
	m.input.SetWidth(w)
	m.refresh()
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	var b strings.Builder
	for _, msg := range m.conv.Messages() {
		b.WriteString(renderMessage(msg, m.width*3/4))
		b.WriteString("\n\n")
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

func renderMessage(msg chat.Message, width int) string {
	if width < 10 {
		width = 10
	}
	if msg.Sender == chat.User {
		return lipgloss.JoinVertical(lipgloss.Left,
			userLabel.Render("You"),
			userBody.Width(width).Render(msg.Display()))
	}
	label := modelLabel.Render("NP Chatbot")
	if msg.Feedback == chat.Liked {
		label += " " + likedStyle.Render("♥")
	}
	text := msg.Display()
	if text == "" {
		text = "…"
	}
	return lipgloss.JoinVertical(lipgloss.Left, label, modelBody.Width(width).Render(text))
}

func (m *Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	status := helpStyle.Render(fmt.Sprintf("%s send • %s stop • %s like • %s copy • %s quit",
		m.keys.Send.Help().Key, m.keys.Stop.Help().Key, m.keys.Like.Help().Key, m.keys.Copy.Help().Key, m.keys.Quit.Help().Key))
	if m.notice != "" {
		status = helpStyle.Render(m.notice)
	}
	if m.conv.Busy() {
		status = m.spinner.View() + spinnerText.Render(" NP Chatbot is typing...")
	}
	if m.status != "" {
		status = errorStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("NP Chatbot"),
		"",
		m.viewport.View(),
		status,
		m.input.View(),
	)
}

// Status is the last error or notice shown under the transcript
func (m *Model) Status() string {
	return m.status
}
