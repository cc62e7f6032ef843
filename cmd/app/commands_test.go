package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCommands(t *testing.T) {
	cmds := getCommands("test")

	names := make(map[string]bool, len(cmds))
	for _, cmd := range cmds {
		require.NotEmpty(t, cmd.Usage, cmd.Name)
		require.NotNil(t, cmd.Action, cmd.Name)
		assert.False(t, names[cmd.Name], "duplicate command %s", cmd.Name)
		names[cmd.Name] = true
	}

	for _, name := range []string{
		"server",
		"migrate",
		"create-pii-key",
		"check-national-id",
		"lookup-national-id",
		"reveal-national-id",
		"mark-session",
		"open-session",
		"issue-token",
	} {
		assert.True(t, names[name], "missing command %s", name)
	}
}
