package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := NewRootCommand()

	for _, name := range []string{"serve", "migrate", "seed", "sweep-overdue"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestSweepRejectsMalformedDate(t *testing.T) {
	root := NewRootCommand()
	root.SetArgs([]string{"sweep-overdue", "--as-of", "31/12/2025"})
	root.SetOut(new(nopWriter))
	root.SetErr(new(nopWriter))

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--as-of")
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
