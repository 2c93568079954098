package commands

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	authUseCase "github.com/allisson/schoolsite/internal/auth/usecase"
)

// RunListAdmins prints one page of admin accounts.
func RunListAdmins(
	ctx context.Context,
	adminUseCase authUseCase.AdminUseCase,
	writer io.Writer,
	offset, limit int,
	format string,
) error {
	if offset < 0 || limit < 1 {
		return fmt.Errorf("offset must be >= 0 and limit >= 1")
	}

	admins, err := adminUseCase.List(ctx, offset, limit)
	if err != nil {
		return fmt.Errorf("failed to list admins: %w", err)
	}

	summaries := make([]adminSummary, 0, len(admins))
	for _, admin := range admins {
		summaries = append(summaries, adminSummary{
			ID:       admin.ID,
			Email:    admin.Email,
			Name:     admin.Name,
			Role:     admin.Role,
			IsActive: admin.IsActive,
		})
	}

	if format == "json" {
		return writeJSON(writer, summaries)
	}

	if len(summaries) == 0 {
		_, _ = fmt.Fprintln(writer, "No admins found")
		return nil
	}

	tw := tabwriter.NewWriter(writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tEMAIL\tNAME\tROLE\tACTIVE")
	for _, s := range summaries {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\n", s.ID, s.Email, s.Name, s.Role, s.IsActive)
	}
	return tw.Flush()
}
