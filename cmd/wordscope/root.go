package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for wordscope.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wordscope",
		Short: "Japanese word frequency analysis for web pages",
		Long: `wordscope fetches web pages, extracts the text of the title, h1, h2 and body,
tokenizes it with the kagome morphological analyzer and reports the most
frequent nouns per page and across pages.

Run "wordscope serve" for the HTTP API or "wordscope analyze" for one-off
reports on the command line.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .wordscope in current or home directory)")
	cmd.PersistentFlags().Bool("json-logs", false, "Write logs as JSON")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
