package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"qfw/internal/client"
)

// View renders the full chat screen.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	header := m.renderHeader()
	content := m.styles.Content.Render(m.viewport.View())

	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.styles.Theme.Accent).
		Padding(0, 1)
	inputArea := inputStyle.Render(m.input.View())

	footer := m.renderFooter()

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		content,
		inputArea,
		footer,
	)
}

func (m Model) renderHeader() string {
	title := m.styles.Header.Render(" qfw ")
	subtitle := m.styles.Muted.Render(" medical query firewall")

	var status string
	if m.isLoading {
		status = lipgloss.JoinHorizontal(lipgloss.Center, m.spinner.View(), " ", m.styles.Badge.Render("Screening..."))
	} else {
		status = m.styles.Success.Render("Ready")
	}

	line := lipgloss.JoinHorizontal(lipgloss.Center, title, subtitle, "  ", status)
	return lipgloss.JoinVertical(lipgloss.Left, line, m.styles.RenderDivider(m.width))
}

func (m Model) renderFooter() string {
	help := "Enter: send | Ctrl+E: sample question | ↑/↓: scroll | Esc: quit"
	if m.sessionID != "" {
		help += " | session " + shortSessionID(m.sessionID)
	}
	return lipgloss.NewStyle().MarginTop(1).Render(m.styles.Muted.Render(help))
}

// shortSessionID truncates a UUID to its first group for display.
func shortSessionID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// renderHistory renders the append-only transcript, one divider after
// every entry.
func (m Model) renderHistory() string {
	var sb strings.Builder
	for _, e := range m.history {
		sb.WriteString(m.renderEntry(e))
		sb.WriteString("\n")
		sb.WriteString(m.styles.RenderDivider(m.dividerWidth()))
		sb.WriteString("\n\n")
	}
	return sb.String()
}

func (m Model) renderEntry(e Entry) string {
	switch e.Role {
	case "user":
		label := m.styles.Bold.Foreground(m.styles.Theme.Primary).Render("You")
		return label + "\n" + m.styles.UserInput.Render(e.Text)

	case "error":
		label := m.styles.Error.Render("Error")
		return label + "\n" + m.styles.Body.Render(e.Text)

	default: // "firewall"
		return m.renderDecision(e)
	}
}

// renderDecision renders a firewall answer under its decision badge.
// Unrecognized decisions take the allow path.
func (m Model) renderDecision(e Entry) string {
	var sb strings.Builder

	switch e.Decision {
	case client.DecisionBlock:
		sb.WriteString(m.styles.BlockBadge.Render("BLOCKED"))
		sb.WriteString("\n")
		sb.WriteString(m.styles.Body.Render(e.Text))
	case client.DecisionWarn:
		sb.WriteString(m.styles.WarnBadge.Render("WARNING"))
		sb.WriteString("\n")
		sb.WriteString(m.styles.Warning.Render(e.Warning))
		sb.WriteString("\n")
		sb.WriteString(m.safeRenderMarkdown(e.Text))
	default:
		sb.WriteString(m.styles.AllowBadge.Render("ALLOWED"))
		sb.WriteString("\n")
		sb.WriteString(m.safeRenderMarkdown(e.Text))
	}

	if e.Explain != "" {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Explain.Render(e.Explain))
	}
	return sb.String()
}

// safeRenderMarkdown renders markdown with panic recovery; glamour can
// choke on odd terminal capabilities.
func (m Model) safeRenderMarkdown(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = content
		}
	}()

	if m.renderer != nil && content != "" {
		rendered, err := m.renderer.Render(content)
		if err == nil {
			return strings.TrimRight(rendered, "\n")
		}
	}
	return content
}

func (m Model) dividerWidth() int {
	w := m.viewport.Width - 4
	if w < 1 {
		w = 1
	}
	return w
}
