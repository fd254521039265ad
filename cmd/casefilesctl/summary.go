package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSummaryCmd() *cobra.Command {
	var dismiss bool
	var status bool
	cmd := &cobra.Command{
		Use:   "summarize RECORD_ID",
		Short: "Generate an analyst summary for a case file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireToken(); err != nil {
				return err
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()

			id := args[0]
			switch {
			case dismiss:
				return c.DismissSummary(ctx, id)
			case status:
				t, err := c.SummaryStatus(ctx, id)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), t)
			}

			t, err := c.Summarize(ctx, id)
			if err != nil {
				return err
			}
			if !t.Finished() {
				return fmt.Errorf("summary for %s still running; check later with --status", id)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Text)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dismiss, "dismiss", false, "Clear a finished summary")
	cmd.Flags().BoolVar(&status, "status", false, "Show the summary task state without starting one")
	return cmd
}
