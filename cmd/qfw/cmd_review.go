package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"qfw/internal/client"
)

var reviewLimit int

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Work the WARN review queue",
}

var reviewListCmd = &cobra.Command{
	Use:   "list",
	Short: "List WARN-flagged records awaiting review",
	RunE:  runReviewList,
}

var reviewDecideCmd = &cobra.Command{
	Use:   "decide <id> <allow|block|ignore>",
	Short: "Record a reviewer verdict for one record",
	Args:  cobra.ExactArgs(2),
	RunE:  runReviewDecide,
}

func runReviewList(cmd *cobra.Command, args []string) error {
	page, err := newAPIClient().ReviewQueue(cmd.Context(), reviewLimit)
	if err != nil {
		return fail(err)
	}

	if page.Count == 0 {
		fmt.Println(styles.Muted.Render("Review queue is empty."))
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIMESTAMP\tQUERY\tWARN HITS\tVERDICT")
	for _, rec := range page.WarnItems {
		verdict := rec.ReviewerDecision
		if verdict == "" {
			verdict = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			rec.ID, rec.Timestamp, rec.MaskedText,
			strings.Join(rec.WarnHits, ","), verdict)
	}
	if err := w.Flush(); err != nil {
		return fail(err)
	}
	fmt.Println(styles.Muted.Render(fmt.Sprintf("%d records awaiting review", page.Count)))
	return nil
}

func runReviewDecide(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fail(fmt.Errorf("invalid audit id %q", args[0]))
	}
	action := args[1]
	if !client.ValidReviewAction(action) {
		return fail(fmt.Errorf("invalid action %q (valid: %s)", action, strings.Join(client.ReviewActions, ", ")))
	}

	if err := newAPIClient().SetReviewDecision(cmd.Context(), id, action); err != nil {
		return fail(err)
	}
	printSuccess(fmt.Sprintf("Recorded %q for audit record %d", action, id))
	return nil
}

func init() {
	reviewListCmd.Flags().IntVar(&reviewLimit, "limit", 200, "maximum records to scan")

	reviewCmd.AddCommand(reviewListCmd)
	reviewCmd.AddCommand(reviewDecideCmd)
}
