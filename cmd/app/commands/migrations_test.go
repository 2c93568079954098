package commands

import (
	"io"
	"io/fs"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/schoolsite/migrations"
)

func TestRunMigrations(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("invalid-driver", func(t *testing.T) {
		err := RunMigrations(logger, "sqlite", "sqlite://school.db")
		require.Error(t, err)
		require.Contains(t, err.Error(), "unsupported database driver")
	})

	t.Run("invalid-connection-string", func(t *testing.T) {
		err := RunMigrations(logger, "postgres", "invalid-connection-string")
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to create migrate instance")
	})
}

func TestEmbeddedMigrations_DriversInSync(t *testing.T) {
	names := func(dir string) []string {
		entries, err := fs.ReadDir(migrations.FS, dir)
		require.NoError(t, err)
		out := make([]string, 0, len(entries))
		for _, entry := range entries {
			out = append(out, entry.Name())
		}
		return out
	}

	postgres := names("postgresql")
	mysql := names("mysql")

	require.NotEmpty(t, postgres)
	assert.Equal(t, postgres, mysql)
	for _, name := range postgres {
		assert.True(t,
			strings.HasSuffix(name, ".up.sql") || strings.HasSuffix(name, ".down.sql"),
			"unexpected migration file %s", name)
	}
}
