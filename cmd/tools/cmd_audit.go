package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentx/slack-summarizer/internal/audit"
	"github.com/agentx/slack-summarizer/internal/database"
	"github.com/agentx/slack-summarizer/internal/repository/postgres"
)

func auditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show recent /summarize invocations",
		Args:  cobra.NoArgs,
		RunE:  runAudit,
	}
	cmd.Flags().Int("limit", 20, "Number of records to show")
	cmd.Flags().Bool("json", false, "Output machine-readable JSON")
	return cmd
}

func runAudit(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	asJSON, _ := cmd.Flags().GetBool("json")

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	if err := requireDatabase(cfg); err != nil {
		return err
	}

	db, err := database.NewConnection(cmd.Context(), cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	auditService := audit.NewService(postgres.NewInvocationRepository(db.DB), logger)
	records, err := auditService.Recent(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("list invocations: %w", err)
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CREATED\tUSER\tCHANNEL\tOUTCOME\tMESSAGES\tDURATION")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			r.CreatedAt.Format(time.RFC3339), r.UserID, r.ChannelID, r.Outcome, r.MessageCount,
			time.Duration(r.DurationMs)*time.Millisecond)
	}
	return w.Flush()
}
