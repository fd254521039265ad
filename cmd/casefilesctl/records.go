package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mycelian/casefiles/client"
)

func newRecordsCmd() *cobra.Command {
	recordsCmd := &cobra.Command{Use: "records", Short: "Case file operations"}

	var query string
	var asJSON bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List case files, optionally filtered by name or area",
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
			recs, err := c.ListRecords(ctx, query)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), recs)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tAREA\tSTATUS\tCATEGORY\tCREATED")
			for _, r := range recs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.CriminalName, r.CrimeSceneArea, r.Status, r.Category, r.DateCreated)
			}
			return tw.Flush()
		},
	}
	listCmd.Flags().StringVarP(&query, "query", "q", "", "Case-insensitive match on criminal name or area")
	listCmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	recordsCmd.AddCommand(listCmd)

	var draft client.RecordDraft
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Open a new case file",
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
			res, err := c.CreateRecord(ctx, draft)
			if err != nil {
				return err
			}
			if !res.Persisted {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning:", res.Warning)
			}
			return printJSON(cmd.OutOrStdout(), res.Record)
		},
	}
	createCmd.Flags().StringVarP(&draft.CriminalName, "name", "n", "", "Criminal name (required)")
	createCmd.Flags().StringVar(&draft.CrimeSceneArea, "area", "", "Crime scene area (required)")
	createCmd.Flags().StringVar(&draft.InvestigationProcess, "process", "", "Investigation process notes (required)")
	createCmd.Flags().StringVarP(&draft.Status, "status", "s", client.StatusActive, `Status: "Active", "Closed" or "Cold Case"`)
	createCmd.Flags().StringVarP(&draft.Category, "category", "c", "Theft", "Category, e.g. Theft, Espionage, Fraud, Cybercrime, Homicide")
	_ = createCmd.MarkFlagRequired("name")
	_ = createCmd.MarkFlagRequired("area")
	_ = createCmd.MarkFlagRequired("process")
	recordsCmd.AddCommand(createCmd)

	getCmd := &cobra.Command{
		Use:   "get RECORD_ID",
		Short: "Show one case file",
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
			rec, err := c.GetRecord(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), rec)
		},
	}
	recordsCmd.AddCommand(getCmd)

	return recordsCmd
}

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show case counts and the most recent files",
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
			d, err := c.Dashboard(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total: %d  Active: %d  Closed: %d  Cold Case: %d\n",
				d.Stats.Total, d.Stats.Active, d.Stats.Closed, d.Stats.ColdCase)
			fmt.Fprintln(out, "Recent:")
			for _, r := range d.Recent {
				fmt.Fprintf(out, "  %s  %s (%s)  %s\n", r.DateCreated, r.CriminalName, r.Status, r.ID)
			}
			return nil
		},
	}
}
