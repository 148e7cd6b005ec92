package cmd

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Tree(t *testing.T) {
	root := NewRootCommand()

	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["migrate"])
	assert.True(t, names["admin"])

	migrate, _, err := root.Find([]string{"migrate", "down"})
	require.NoError(t, err)
	steps := migrate.Flags().Lookup("steps")
	require.NotNil(t, steps)
	assert.Equal(t, "1", steps.DefValue)

	create, _, err := root.Find([]string{"admin", "create"})
	require.NoError(t, err)
	assert.Equal(t, "admin", create.Flags().Lookup("role").DefValue)
}

func TestAdminCreate_RequiresFlags(t *testing.T) {
	root := NewRootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"admin", "create", "--email", "ops@gomotor.test"})

	err := root.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "name", "password" not set`)
}
