// Package commands contains CLI command implementations for the application.
package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"

	"github.com/allisson/schoolsite/internal/app"
	authDomain "github.com/allisson/schoolsite/internal/auth/domain"
)

// IOTuple holds reader and writer for commands, allowing for testing.
type IOTuple struct {
	Reader io.Reader
	Writer io.Writer
}

// DefaultIO returns an IOTuple with os.Stdin and os.Stdout.
func DefaultIO() IOTuple {
	return IOTuple{
		Reader: os.Stdin,
		Writer: os.Stdout,
	}
}

// closeContainer closes all resources in the container and logs any errors.
func closeContainer(container *app.Container, logger *slog.Logger) {
	if err := container.Shutdown(context.Background()); err != nil {
		logger.Error("failed to shutdown container", slog.Any("error", err))
	}
}

// closeMigrate closes the migration instance and logs any errors.
func closeMigrate(migrate *migrate.Migrate, logger *slog.Logger) {
	sourceError, databaseError := migrate.Close()
	if sourceError != nil || databaseError != nil {
		logger.Error(
			"failed to close the migrate",
			slog.Any("source_error", sourceError),
			slog.Any("database_error", databaseError),
		)
	}
}

// promptPassword asks for a password twice and returns it when both entries match.
func promptPassword(io IOTuple) (string, error) {
	if io.Reader == nil {
		return "", fmt.Errorf("password is required")
	}
	reader := bufio.NewReader(io.Reader)

	_, _ = fmt.Fprint(io.Writer, "Password: ")
	password, err := readLine(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	_, _ = fmt.Fprint(io.Writer, "Confirm password: ")
	confirmation, err := readLine(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read password confirmation: %w", err)
	}

	if password != confirmation {
		return "", fmt.Errorf("passwords do not match")
	}
	return password, nil
}

func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// parseRole converts a CLI role name into a domain role.
func parseRole(value string) (authDomain.Role, error) {
	role := authDomain.Role(strings.ToLower(strings.TrimSpace(value)))
	if !role.Valid() {
		return "", fmt.Errorf("invalid role: %s (valid options: superadmin, admin, editor)", value)
	}
	return role, nil
}

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(writer io.Writer, v any) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return nil
}

// adminSummary is the CLI view of an admin.
type adminSummary struct {
	ID       string          `json:"id"`
	Email    string          `json:"email"`
	Name     string          `json:"name"`
	Role     authDomain.Role `json:"role"`
	IsActive bool            `json:"is_active"`
}

// outputAdmin writes the admin summary in text or JSON format.
func outputAdmin(writer io.Writer, heading string, admin *authDomain.Admin, format string) error {
	summary := adminSummary{
		ID:       admin.ID,
		Email:    admin.Email,
		Name:     admin.Name,
		Role:     admin.Role,
		IsActive: admin.IsActive,
	}
	if format == "json" {
		return writeJSON(writer, summary)
	}

	_, _ = fmt.Fprintf(writer, "\n%s\n", heading)
	_, _ = fmt.Fprintf(writer, "ID:     %s\n", summary.ID)
	_, _ = fmt.Fprintf(writer, "Email:  %s\n", summary.Email)
	_, _ = fmt.Fprintf(writer, "Name:   %s\n", summary.Name)
	_, _ = fmt.Fprintf(writer, "Role:   %s\n", summary.Role)
	_, _ = fmt.Fprintf(writer, "Active: %t\n", summary.IsActive)
	return nil
}
