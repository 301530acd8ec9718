package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "View and replace the firewall rule list",
}

var rulesGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the current rules",
	RunE:  runRulesGet,
}

var rulesSetCmd = &cobra.Command{
	Use:   "set <file>",
	Short: "Replace the rules with a local JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runRulesSet,
}

func runRulesGet(cmd *cobra.Command, args []string) error {
	raw, err := newAPIClient().Rules(cmd.Context())
	if err != nil {
		return fail(err)
	}
	fmt.Println(prettyJSON(raw))
	return nil
}

func runRulesSet(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fail(fmt.Errorf("read rules file: %w", err))
	}

	// The server rejects anything but a list; catch that locally before
	// replacing live rules with a half-valid payload.
	var rules []json.RawMessage
	if err := json.Unmarshal(data, &rules); err != nil {
		return fail(fmt.Errorf("rules file must contain a JSON array: %w", err))
	}

	if err := newAPIClient().UpdateRules(cmd.Context(), json.RawMessage(data)); err != nil {
		return fail(err)
	}
	printSuccess(fmt.Sprintf("Uploaded %d rules from %s", len(rules), args[0]))
	return nil
}

// prettyJSON re-indents a raw payload for terminal display.
func prettyJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

func init() {
	rulesCmd.AddCommand(rulesGetCmd)
	rulesCmd.AddCommand(rulesSetCmd)
}
