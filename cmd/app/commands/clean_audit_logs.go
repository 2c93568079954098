package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	authUseCase "github.com/allisson/schoolsite/internal/auth/usecase"
)

// cleanResult is the machine readable outcome of clean-audit-logs.
type cleanResult struct {
	Count  int64     `json:"count"`
	Days   int       `json:"days"`
	Cutoff time.Time `json:"cutoff"`
	DryRun bool      `json:"dry_run"`
}

// RunCleanAuditLogs prunes audit logs older than days. With dryRun set the
// matching logs are only counted.
func RunCleanAuditLogs(
	ctx context.Context,
	auditLogUseCase authUseCase.AuditLogUseCase,
	logger *slog.Logger,
	writer io.Writer,
	days int,
	dryRun bool,
	format string,
) error {
	if days < 0 {
		return fmt.Errorf("days must be a positive number, got: %d", days)
	}

	result := cleanResult{
		Days:   days,
		Cutoff: time.Now().UTC().AddDate(0, 0, -days).Truncate(time.Second),
		DryRun: dryRun,
	}

	logger.Info("cleaning audit logs", slog.Int("days", days), slog.Bool("dry_run", dryRun))

	count, err := auditLogUseCase.DeleteOlderThan(ctx, days, dryRun)
	if err != nil {
		return fmt.Errorf("failed to delete audit logs: %w", err)
	}
	result.Count = count

	logger.Info("audit log cleanup completed", slog.Int64("count", count), slog.Bool("dry_run", dryRun))

	if format == "json" {
		return writeJSON(writer, result)
	}

	verb := "Deleted"
	if dryRun {
		verb = "Dry run: would delete"
	}
	_, _ = fmt.Fprintf(writer, "%s %d audit log(s) created before %s (%d day(s) ago)\n",
		verb, result.Count, result.Cutoff.Format(dateTimeLayout), result.Days)
	return nil
}
