package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	ledgerUseCase "github.com/viralspark/gateway/internal/ledger/usecase"
)

// RunCleanUsageRecords deletes usage records older than the specified number
// of days. Supports dry-run mode to preview deletion count and both text/JSON
// output formats.
//
// Requirements: Database must be migrated and accessible.
func RunCleanUsageRecords(
	ctx context.Context,
	usageUseCase ledgerUseCase.UsageUseCase,
	logger *slog.Logger,
	writer io.Writer,
	days int,
	dryRun bool,
	format string,
) error {
	if days < 0 {
		return fmt.Errorf("days must be a positive number, got: %d", days)
	}

	logger.Info("cleaning usage records",
		slog.Int("days", days),
		slog.Bool("dry_run", dryRun),
	)

	retention := time.Duration(days) * 24 * time.Hour
	count, err := usageUseCase.Prune(ctx, retention, dryRun)
	if err != nil {
		return fmt.Errorf("failed to delete usage records: %w", err)
	}

	if format == "json" {
		outputCleanJSON(writer, count, days, dryRun)
	} else {
		outputCleanText(writer, count, days, dryRun)
	}

	logger.Info("cleanup completed",
		slog.Int64("count", count),
		slog.Int("days", days),
		slog.Bool("dry_run", dryRun),
	)

	return nil
}

// outputCleanText outputs the result in human-readable text format.
func outputCleanText(writer io.Writer, count int64, days int, dryRun bool) {
	if dryRun {
		fmt.Fprintf(writer, "Dry-run mode: Would delete %d usage record(s) older than %d day(s)\n", count, days)
	} else {
		fmt.Fprintf(writer, "Successfully deleted %d usage record(s) older than %d day(s)\n", count, days)
	}
}

// outputCleanJSON outputs the result in JSON format for machine consumption.
func outputCleanJSON(writer io.Writer, count int64, days int, dryRun bool) {
	result := map[string]interface{}{
		"count":   count,
		"days":    days,
		"dry_run": dryRun,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(writer, "failed to marshal JSON: %v\n", err)
		return
	}

	fmt.Fprintln(writer, string(jsonBytes))
}
