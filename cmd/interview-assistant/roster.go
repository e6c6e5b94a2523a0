package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/terra-clan/interview-assistant/internal/dashboard"
	"github.com/terra-clan/interview-assistant/internal/store"
)

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Print the ranked candidate roster",
	Long:  "Reads the persisted candidate store and prints every candidate ranked by score. With --export the roster is also written as an .xlsx spreadsheet.",
	RunE:  runRoster,
}

var rosterExport string

func init() {
	rosterCmd.Flags().StringVarP(&rosterExport, "export", "e", "", "Path to write the roster spreadsheet (.xlsx)")
	rootCmd.AddCommand(rosterCmd)
}

func runRoster(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig(os.Stderr)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	persister, err := openPersister(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer persister.Close()

	st, err := store.Open(ctx, persister, logger)
	if err != nil {
		return fmt.Errorf("failed to open candidate store: %w", err)
	}
	defer st.Close()

	rows := dashboard.Rank(st.Candidates())
	if err := printRoster(cmd.OutOrStdout(), rows); err != nil {
		return err
	}

	if rosterExport == "" {
		return nil
	}

	buf, err := dashboard.ExportXLSX(rows)
	if err != nil {
		return fmt.Errorf("failed to export roster: %w", err)
	}
	if err := os.WriteFile(rosterExport, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", rosterExport, err)
	}
	logger.Info("roster exported", "path", rosterExport, "candidates", len(rows))
	return nil
}

func printRoster(w io.Writer, rows []dashboard.Row) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No candidates yet.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tNAME\tEMAIL\tPHONE\tSCORE\tANSWERED\tCOMPLETED")
	for _, r := range rows {
		completed := "no"
		if r.Completed {
			completed = "yes"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d/%d\t%s\n",
			r.Rank, r.Name, r.Email, r.Phone, r.Score, r.Answered, r.Total, completed)
	}
	return tw.Flush()
}
