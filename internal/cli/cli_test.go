package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifySchemaCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := NewVerifySchemaCommand()
	cmd.Out = &out
	require.NoError(t, cmd.ParseFlags([]string{"-db", filepath.Join(t.TempDir(), "cli.db")}))

	require.NoError(t, cmd.Run())

	assert.Contains(t, out.String(), "Schema OK")
	assert.Contains(t, out.String(), "division")
}

func TestStatsCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := NewStatsCommand()
	cmd.Out = &out
	require.NoError(t, cmd.ParseFlags([]string{"-db", filepath.Join(t.TempDir(), "cli.db")}))

	require.NoError(t, cmd.Run())

	assert.Contains(t, out.String(), "Users:     0")
	assert.Contains(t, out.String(), "Skills:    16")
	assert.Contains(t, out.String(), "Exchanges: 0")
}

func TestCommandsDefaultDatabasePath(t *testing.T) {
	stats := NewStatsCommand()
	require.NoError(t, stats.ParseFlags(nil))
	assert.Equal(t, "./skill_exchange.db", stats.DatabasePath)

	verify := NewVerifySchemaCommand()
	require.NoError(t, verify.ParseFlags(nil))
	assert.Equal(t, "./skill_exchange.db", verify.DatabasePath)
}
