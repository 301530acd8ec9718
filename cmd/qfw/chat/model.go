// Package chat provides the interactive TUI for the medical query
// firewall: an append-only, decision-tagged transcript over a single
// text input. One request is in flight at a time; responses for stale
// requests are discarded.
package chat

import (
	"context"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"qfw/cmd/qfw/ui"
	"qfw/internal/client"
)

// Sender is the slice of the API client the chat screen needs.
type Sender interface {
	Chat(ctx context.Context, text string) (*client.ChatResponse, error)
}

// Entry is one transcript item.
type Entry struct {
	Role     string // "user", "firewall", "error"
	Decision client.Decision
	Text     string // user text, safe_response, llm_response, or error text
	Warning  string
	Explain  string // pretty-printed explain payload
}

// Model is the bubbletea model for the chat screen.
type Model struct {
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	styles   ui.Styles
	renderer *glamour.TermRenderer

	api       Sender
	timeout   time.Duration
	sessionID string

	history   []Entry
	isLoading bool
	reqSeq    int // generation counter; stale responses never render

	width  int
	height int
	ready  bool

	// pick selects the sample question index; swapped out in tests.
	pick func(n int) int
}

// New creates the chat model. sessionID is shown in the footer so a
// reviewer can match the session against the audit log.
func New(api Sender, styles ui.Styles, timeout time.Duration, sessionID string) Model {
	input := textinput.New()
	input.Placeholder = "Ask a health question..."
	input.Prompt = "> "
	input.CharLimit = 2000
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return Model{
		input:     input,
		spinner:   sp,
		styles:    styles,
		api:       api,
		timeout:   timeout,
		sessionID: sessionID,
		pick:      rand.IntN,
	}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// History returns the transcript entries (oldest first).
func (m Model) History() []Entry {
	return m.history
}

// appendEntry adds one transcript entry and scrolls to the newest.
func (m *Model) appendEntry(e Entry) {
	m.history = append(m.history, e)
	m.refreshViewport()
}

func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderHistory())
	m.viewport.GotoBottom()
}

// submit starts the send flow. Empty-after-trim input is a no-op, and
// the send key is inert while a request is in flight.
func (m *Model) submit() tea.Cmd {
	text := strings.TrimSpace(m.input.Value())
	if text == "" || m.isLoading {
		return nil
	}

	m.appendEntry(Entry{Role: "user", Text: text})
	m.input.Reset()
	m.isLoading = true
	m.reqSeq++

	return tea.Batch(m.spinner.Tick, sendChat(m.api, m.timeout, text, m.reqSeq))
}

// fillSample puts a random canned question into the input field.
func (m *Model) fillSample() {
	m.input.SetValue(m.sampleQuestion())
	m.input.CursorEnd()
}

// rebuildRenderer sizes the markdown renderer to the viewport width.
func (m *Model) rebuildRenderer() {
	wrap := m.width - 6
	if wrap < 20 {
		wrap = 20
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		// Plain-text fallback; safeRenderMarkdown handles nil.
		m.renderer = nil
		return
	}
	m.renderer = renderer
}
