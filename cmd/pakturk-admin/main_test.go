package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommands_Registered(t *testing.T) {
	cmds := commands()

	for _, name := range []string{"migrate", "db-seed", "ping"} {
		cmd, ok := cmds[name]
		require.True(t, ok, "command %s should be registered", name)
		assert.Equal(t, name, cmd.name)
		assert.NotEmpty(t, cmd.description)
		assert.NotNil(t, cmd.run)
	}
}

func TestCommands_UnknownNameAbsent(t *testing.T) {
	_, ok := commands()["db-reset"]
	assert.False(t, ok)
}
