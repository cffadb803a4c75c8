package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := rootCommand()

	names := make([]string, 0, len(cmd.Commands()))
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"up", "down", "status"}, names)
}

func TestMigrationCommand_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	cmd := rootCommand()
	cmd.SetArgs([]string{"up"})
	cmd.SetOut(&discard{})
	cmd.SetErr(&discard{})

	require.Error(t, cmd.Execute())
}

func TestMigrationCommand_RejectsArgs(t *testing.T) {
	cmd := rootCommand()
	cmd.SetArgs([]string{"status", "extra"})
	cmd.SetOut(&discard{})
	cmd.SetErr(&discard{})

	require.Error(t, cmd.Execute())
}

type discard struct{}

func (*discard) Write(p []byte) (int, error) { return len(p), nil }
