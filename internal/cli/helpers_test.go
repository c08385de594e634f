package cli

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/scorekeeper/internal/engine"
)

// testCLI runs commands against one temporary database.
type testCLI struct {
	t    *testing.T
	db   string
	opts *RootOptions
}

func newTestCLI(t *testing.T, ids ...string) *testCLI {
	t.Helper()
	if len(ids) == 0 {
		ids = []string{"m1"}
	}
	return &testCLI{
		t:    t,
		db:   filepath.Join(t.TempDir(), "test.db"),
		opts: &RootOptions{IDGenerator: engine.NewFixedGenerator(ids...)},
	}
}

// run executes the root command with --db prepended and returns stdout.
func (c *testCLI) run(args ...string) (string, error) {
	c.t.Helper()
	cmd := newRootCommand(c.opts)
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--db", c.db}, args...))
	err := cmd.Execute()
	return buf.String(), err
}

func (c *testCLI) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err, "output: %s", out)
	return out
}
