package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"

	authUseCase "github.com/allisson/schoolsite/internal/auth/usecase"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// verifyResult is the machine readable outcome of verify-audit-logs.
type verifyResult struct {
	Since         time.Time   `json:"since"`
	Until         time.Time   `json:"until"`
	TotalChecked  int64       `json:"total_checked"`
	SignedCount   int64       `json:"signed_count"`
	UnsignedCount int64       `json:"unsigned_count"`
	ValidCount    int64       `json:"valid_count"`
	InvalidCount  int64       `json:"invalid_count"`
	InvalidLogs   []uuid.UUID `json:"invalid_logs"`
	Passed        bool        `json:"passed"`
}

// RunVerifyAuditLogs recomputes the HMAC signature of every audit log created
// between since and until. The signing key is derived from the session secret,
// so the command needs the SESSION_SECRET the server ran with.
//
// A date-only until covers that whole day. Any invalid signature makes the
// command fail after the report is written.
func RunVerifyAuditLogs(
	ctx context.Context,
	auditLogUseCase authUseCase.AuditLogUseCase,
	logger *slog.Logger,
	writer io.Writer,
	since, until string,
	format string,
) error {
	start, _, err := parseDate(since)
	if err != nil {
		return fmt.Errorf("invalid start date: %w", err)
	}

	end, dateOnly, err := parseDate(until)
	if err != nil {
		return fmt.Errorf("invalid end date: %w", err)
	}
	if dateOnly {
		end = end.Add(24*time.Hour - time.Microsecond)
	}

	if !end.After(start) {
		return fmt.Errorf("end date must be after start date")
	}

	logger.Info("verifying audit logs", slog.Time("since", start), slog.Time("until", end))

	report, err := auditLogUseCase.VerifyBatch(ctx, start, end)
	if err != nil {
		return fmt.Errorf("failed to verify audit logs: %w", err)
	}

	result := verifyResult{
		Since:         start,
		Until:         end,
		TotalChecked:  report.TotalChecked,
		SignedCount:   report.SignedCount,
		UnsignedCount: report.UnsignedCount,
		ValidCount:    report.ValidCount,
		InvalidCount:  report.InvalidCount,
		InvalidLogs:   report.InvalidLogs,
		Passed:        report.InvalidCount == 0,
	}
	if result.InvalidLogs == nil {
		result.InvalidLogs = []uuid.UUID{}
	}

	if format == "json" {
		if err := writeJSON(writer, result); err != nil {
			return err
		}
	} else {
		writeVerifyText(writer, result)
	}

	logger.Info("audit log verification completed",
		slog.Int64("total_checked", result.TotalChecked),
		slog.Int64("valid", result.ValidCount),
		slog.Int64("invalid", result.InvalidCount),
		slog.Int64("unsigned", result.UnsignedCount),
	)

	if !result.Passed {
		return fmt.Errorf("integrity check failed: %d invalid signature(s)", result.InvalidCount)
	}
	return nil
}

// parseDate accepts "YYYY-MM-DD" or "YYYY-MM-DD HH:MM:SS" in UTC. dateOnly
// reports whether the time of day was omitted.
func parseDate(value string) (t time.Time, dateOnly bool, err error) {
	if t, err = time.Parse(dateTimeLayout, value); err == nil {
		return t, false, nil
	}
	if t, err = time.Parse(dateLayout, value); err == nil {
		return t, true, nil
	}
	return time.Time{}, false, fmt.Errorf("expected YYYY-MM-DD or YYYY-MM-DD HH:MM:SS, got %q", value)
}

func writeVerifyText(writer io.Writer, result verifyResult) {
	_, _ = fmt.Fprintf(writer, "Audit log verification %s to %s\n\n",
		result.Since.Format(dateTimeLayout), result.Until.Format(dateTimeLayout))

	tw := tabwriter.NewWriter(writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Checked\t%d\n", result.TotalChecked)
	_, _ = fmt.Fprintf(tw, "Signed\t%d\n", result.SignedCount)
	_, _ = fmt.Fprintf(tw, "Unsigned\t%d\n", result.UnsignedCount)
	_, _ = fmt.Fprintf(tw, "Valid\t%d\n", result.ValidCount)
	_, _ = fmt.Fprintf(tw, "Invalid\t%d\n", result.InvalidCount)
	_ = tw.Flush()

	switch {
	case !result.Passed:
		_, _ = fmt.Fprintf(writer, "\n%d audit log(s) have been tampered with or signed with another key:\n",
			result.InvalidCount)
		for _, id := range result.InvalidLogs {
			_, _ = fmt.Fprintf(writer, "  %s\n", id)
		}
		_, _ = fmt.Fprintln(writer, "\nResult: FAILED")
	case result.TotalChecked == 0:
		_, _ = fmt.Fprintln(writer, "\nResult: no audit logs in range")
	default:
		_, _ = fmt.Fprintln(writer, "\nResult: PASSED")
	}
}
