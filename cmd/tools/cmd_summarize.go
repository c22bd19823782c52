package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentx/slack-summarizer/internal/providers/openai"
	"github.com/agentx/slack-summarizer/internal/services"
	"github.com/agentx/slack-summarizer/internal/slackapi"
)

func summarizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Summarize a channel from the terminal",
		Long: `Fetch the channel history with thread replies, then print the summary.
With --dry-run the transcript is printed and the completion API is not called.
With --deliver the summary is also sent to --user by direct message.`,
		Args: cobra.NoArgs,
		RunE: runSummarize,
	}
	cmd.Flags().String("channel", "", "Channel ID to summarize (required)")
	cmd.Flags().String("user", "", "User ID to deliver the summary to")
	cmd.Flags().Bool("dry-run", false, "Print the transcript without summarizing")
	cmd.Flags().Bool("deliver", false, "DM the summary to --user")
	_ = cmd.MarkFlagRequired("channel")
	return cmd
}

func runSummarize(cmd *cobra.Command, _ []string) error {
	channelID, _ := cmd.Flags().GetString("channel")
	userID, _ := cmd.Flags().GetString("user")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	deliver, _ := cmd.Flags().GetBool("deliver")

	if deliver && userID == "" {
		return fmt.Errorf("--deliver requires --user")
	}

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	slackClient, err := slackapi.NewClient(cfg.Slack.BotToken)
	if err != nil {
		return err
	}
	completer, err := openai.NewProvider(cfg.Completion)
	if err != nil {
		return err
	}
	svc, err := services.NewServices(cfg, services.Dependencies{
		History:   slackClient,
		Threads:   slackClient,
		Users:     slackClient,
		Sender:    slackClient,
		Completer: completer,
	}, logger)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	messages := svc.Fetcher.Fetch(ctx, channelID, time.Now())
	if len(messages) == 0 {
		return fmt.Errorf("no messages found in the past %s", services.DescribeWindow(svc.Fetcher.Lookback()))
	}

	transcript := services.FormatTranscript(messages)
	if dryRun {
		fmt.Fprintln(cmd.OutOrStdout(), transcript)
		return nil
	}

	summary, err := svc.Summary.Summarize(ctx, transcript)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), summary)

	if deliver {
		if err := slackClient.SendDirectMessage(ctx, userID, summary); err != nil {
			return fmt.Errorf("deliver summary: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Delivered summary of %d messages to %s\n", len(messages), userID)
	}
	return nil
}
