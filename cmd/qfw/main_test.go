package main

import (
	"encoding/json"
	"testing"

	"qfw/internal/config"
)

func TestResolveAuditOptions(t *testing.T) {
	c := config.DefaultConfig()
	c.Admin.AuditLimit = 500
	c.Admin.AuditFile = "audit_logs.json"

	tests := []struct {
		name      string
		limit     int
		out       string
		wantLimit int
		wantOut   string
	}{
		{"defaults from config", 0, "", 500, "audit_logs.json"},
		{"flag overrides limit", 25, "", 25, "audit_logs.json"},
		{"flag overrides path", 0, "dump.json", 500, "dump.json"},
		{"negative limit falls back", -1, "", 500, "audit_logs.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, out := resolveAuditOptions(tt.limit, tt.out, c)
			if limit != tt.wantLimit || out != tt.wantOut {
				t.Errorf("resolveAuditOptions(%d, %q) = (%d, %q), want (%d, %q)",
					tt.limit, tt.out, limit, out, tt.wantLimit, tt.wantOut)
			}
		})
	}
}

func TestPrettyJSON(t *testing.T) {
	got := prettyJSON(json.RawMessage(`[{"id":"r1"}]`))
	want := "[\n  {\n    \"id\": \"r1\"\n  }\n]"
	if got != want {
		t.Errorf("prettyJSON = %q, want %q", got, want)
	}
	// Invalid payloads degrade to raw text instead of vanishing.
	if prettyJSON(json.RawMessage("not json")) != "not json" {
		t.Error("invalid JSON should pass through")
	}
}

func TestCommandWiring(t *testing.T) {
	for _, name := range []string{"chat", "audit", "rules", "review", "status"} {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}
