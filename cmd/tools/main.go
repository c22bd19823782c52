package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "summarizer-tools",
		Short:         "Operator tools for the Slack summarizer",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(summarizeCmd())
	root.AddCommand(migrateCmd())
	root.AddCommand(auditCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
