package chat

import (
	"strings"
	"testing"

	"qfw/cmd/qfw/ui"
	"qfw/internal/client"
)

func TestRenderEntryBlock(t *testing.T) {
	m := newReadyModel(t, &fakeSender{})
	out := m.renderEntry(Entry{
		Role:     "firewall",
		Decision: client.DecisionBlock,
		Text:     "Please consult a professional.",
		Explain:  `{"matched_rules": ["dose-change"]}`,
	})
	if !strings.Contains(out, "BLOCKED") {
		t.Error("block entry must carry the blocking label")
	}
	if !strings.Contains(out, "Please consult a professional.") {
		t.Error("block entry must show the safe response")
	}
	if !strings.Contains(out, "dose-change") {
		t.Error("block entry must show the explain dump")
	}
}

func TestRenderEntryWarn(t *testing.T) {
	m := newReadyModel(t, &fakeSender{})
	out := m.renderEntry(Entry{
		Role:     "firewall",
		Decision: client.DecisionWarn,
		Text:     "Take with food.",
		Warning:  "This query appears risky.",
	})
	if !strings.Contains(out, "WARNING") {
		t.Error("warn entry must carry the warning label")
	}
	if !strings.Contains(out, "This query appears risky.") {
		t.Error("warn entry must show the warning")
	}
	if !strings.Contains(out, "Take with food.") {
		t.Error("warn entry must show the model answer")
	}
}

func TestRenderEntryUnknownDecisionTakesAllowPath(t *testing.T) {
	m := newReadyModel(t, &fakeSender{})
	for _, d := range []client.Decision{client.DecisionAllow, "REVIEW", ""} {
		out := m.renderEntry(Entry{Role: "firewall", Decision: d, Text: "answer"})
		if !strings.Contains(out, "ALLOWED") {
			t.Errorf("decision %q must take the allow path", d)
		}
		if !strings.Contains(out, "answer") {
			t.Errorf("decision %q must show the model answer", d)
		}
	}
}

func TestRenderEntryUser(t *testing.T) {
	m := newReadyModel(t, &fakeSender{})
	out := m.renderEntry(Entry{Role: "user", Text: "is aspirin safe?"})
	if !strings.Contains(out, "You") {
		t.Error("user entry must carry the You label")
	}
	if !strings.Contains(out, "is aspirin safe?") {
		t.Error("user entry must show the text")
	}
}

func TestRenderHistorySeparatesEntries(t *testing.T) {
	m := newReadyModel(t, &fakeSender{})
	m.appendEntry(Entry{Role: "user", Text: "q1"})
	m.appendEntry(Entry{Role: "firewall", Decision: client.DecisionAllow, Text: "a1"})

	out := m.renderHistory()
	if strings.Count(out, "─") < 2*m.dividerWidth() {
		t.Error("each entry must be followed by a divider")
	}
	if strings.Index(out, "q1") > strings.Index(out, "a1") {
		t.Error("transcript must be append-only, oldest first")
	}
}

func TestFooterShowsSessionID(t *testing.T) {
	m := newReadyModel(t, &fakeSender{})
	if !strings.Contains(m.renderFooter(), "session 11111111") {
		t.Error("footer should show the short session id")
	}

	anon := New(&fakeSender{}, ui.NewStyles(ui.LightTheme()), 0, "")
	if strings.Contains(anon.renderFooter(), "session") {
		t.Error("footer should omit the session label without an id")
	}
}

func TestShortSessionID(t *testing.T) {
	if got := shortSessionID("11111111-2222-3333-4444-555555555555"); got != "11111111" {
		t.Errorf("shortSessionID = %q", got)
	}
	if got := shortSessionID("nodash"); got != "nodash" {
		t.Errorf("shortSessionID = %q", got)
	}
}

func TestViewBeforeReady(t *testing.T) {
	m := New(&fakeSender{}, ui.NewStyles(ui.LightTheme()), 0, "")
	if m.View() != "Initializing..." {
		t.Error("unready model should render the boot placeholder")
	}
}

func TestSafeRenderMarkdownNilRenderer(t *testing.T) {
	m := New(&fakeSender{}, ui.NewStyles(ui.LightTheme()), 0, "")
	if got := m.safeRenderMarkdown("plain **text**"); got != "plain **text**" {
		t.Errorf("nil renderer should pass content through, got %q", got)
	}
}
