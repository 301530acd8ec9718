package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show server health and decision counters",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	api := newAPIClient()

	h, err := api.Health(cmd.Context())
	if err != nil {
		return fail(err)
	}
	if h.Status == "ok" {
		printSuccess(fmt.Sprintf("Server is up (%d requests served)", h.Requests))
	} else {
		fmt.Println(styles.Warning.Render(fmt.Sprintf("Server status: %s", h.Status)))
	}

	// Counters live behind the admin key; health alone is still useful.
	if !api.HasAdminKey() {
		fmt.Println(styles.Muted.Render("Set QFW_ADMIN_KEY to see decision counters."))
		return nil
	}

	m, err := api.Metrics(cmd.Context())
	if err != nil {
		return fail(err)
	}
	fmt.Printf("  allowed: %d\n  warned:  %d\n  blocked: %d\n", m.Allowed, m.Warned, m.Blocked)
	if m.LastRequest != "" {
		fmt.Println(styles.Muted.Render("  last request: " + m.LastRequest))
	}
	return nil
}
