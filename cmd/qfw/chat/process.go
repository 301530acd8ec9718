package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"qfw/internal/client"
)

// chatResponseMsg delivers a decision-tagged response for request seq.
type chatResponseMsg struct {
	seq  int
	resp *client.ChatResponse
}

// chatErrMsg delivers a failed round trip for request seq. Every failure
// mode of the request lands here; nothing is left to surface as an
// unhandled error.
type chatErrMsg struct {
	seq int
	err error
}

// sendChat performs the single POST and resumes the event loop with
// either a response or an error message.
func sendChat(api Sender, timeout time.Duration, text string, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		resp, err := api.Chat(ctx, text)
		if err != nil {
			return chatErrMsg{seq: seq, err: err}
		}
		return chatResponseMsg{seq: seq, resp: resp}
	}
}

// entryFromResponse maps a response onto a transcript entry. BLOCK
// carries the safe response, WARN carries the warning plus the model
// answer, and everything else (ALLOW included) takes the allow path.
func entryFromResponse(resp *client.ChatResponse) Entry {
	e := Entry{
		Role:     "firewall",
		Decision: resp.Decision,
		Explain:  prettyExplain(resp.Explain),
	}
	switch resp.Decision {
	case client.DecisionBlock:
		e.Text = resp.SafeResponse
	case client.DecisionWarn:
		e.Text = resp.LLMResponse
		e.Warning = resp.Warning
	default:
		e.Text = resp.LLMResponse
	}
	return e
}

// prettyExplain re-indents the raw explain payload for display.
func prettyExplain(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
