package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/nao1215/wordscope/internal/config"
	"github.com/nao1215/wordscope/internal/report"
	"github.com/spf13/cobra"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <url> [url...]",
		Short: "Analyze the word frequencies of web pages",
		Long: `Analyze fetches each URL, tokenizes the title, h1, h2 and body text and
prints the most frequent nouns.

With one URL the page report is printed. With several URLs every page is
analyzed and the words are also aggregated across pages.

Examples:
  # Analyze a single page
  wordscope analyze https://example.com/

  # Compare several pages and write a Markdown report
  wordscope analyze -m -o report.md https://example.com/a https://example.com/b

  # Output JSON, reading only the main article of each page
  wordscope analyze --json --extract-mode readability https://example.com/`,
		Args: cobra.ArbitraryArgs,
		RunE: runAnalyzeCmd,
	}

	addAnalysisFlags(cmd)

	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Targets = args

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if err := cfg.ValidateTargets(); err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg, slog.LevelWarn)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runAnalyze(ctx, cfg, cmd.OutOrStdout(), logger)
}

// runAnalyze analyzes cfg.Targets and writes the report.
func runAnalyze(ctx context.Context, cfg *config.Config, stdout io.Writer, logger *slog.Logger) error {
	svc, err := newServices(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.Error("failed to close page cache", "error", err)
		}
	}()

	logger.Info("starting analysis", "targets", cfg.Targets, "concurrency", cfg.Concurrency)
	start := time.Now()

	if len(cfg.Targets) == 1 {
		page, err := svc.analyzer.AnalyzePage(ctx, cfg.Targets[0])
		if err != nil {
			return fmt.Errorf("failed to analyze %s: %w", cfg.Targets[0], err)
		}
		logger.Info("analysis completed", "elapsed", time.Since(start).Round(time.Millisecond))
		return writeReport(cfg, stdout, func(w report.Writer) (int, error) {
			return w.WritePage(page)
		})
	}

	batch := svc.batch.Run(ctx, cfg.Targets)
	logger.Info("analysis completed",
		"succeeded", batch.SuccessCount,
		"failed", batch.ErrorCount,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return writeReport(cfg, stdout, func(w report.Writer) (int, error) {
		return w.WriteBatch(batch)
	})
}

// writeReport picks the destination and format from cfg and calls write.
func writeReport(cfg *config.Config, stdout io.Writer, write func(report.Writer) (int, error)) error {
	output := stdout
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	var w report.Writer
	switch {
	case cfg.JSONReport:
		w = report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		w = report.NewMarkdownWriter(output)
	default:
		w = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}

	if _, err := write(w); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
