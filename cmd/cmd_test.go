package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	err := rootCmd.ExecuteContext(ctx)
	return buf.String(), err
}

func TestCLIWorkflow(t *testing.T) {
	db := filepath.Join(t.TempDir(), "flashiz.db")

	out, err := execute(t, "", "user", "add", "alice", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Created alice")

	// The first card unlocks two achievements; their cards are written by
	// the dispatcher while the command prints its own result.
	out, err = execute(t, "", "card", "add", "dog", "собака", "--db", db, "--user", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "+5 XP")
	assert.Contains(t, out, "Первые шаги")

	// Reveal, type 5, submit.
	out, err = execute(t, "\r5\r", "study", "--db", db, "--user", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "Session complete")
	assert.Contains(t, out, "dog → собака")

	out, err = execute(t, "", "stats", "--db", db, "--user", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "Total XP")
	assert.Contains(t, out, "Level 2")

	out, err = execute(t, "", "inbox", "--db", db, "--user", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "Первые шаги")

	out, err = execute(t, "", "achievements", "--db", db, "--user", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "Первые шаги")

	_, err = execute(t, "", "reset", "--db", db)
	assert.ErrorContains(t, err, "--yes")
}

func TestCatalogList(t *testing.T) {
	out, err := execute(t, "", "catalog", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "first_steps")
	assert.Contains(t, out, "15 achievements")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "привет ...", truncate("привет мир!", 10))
}
