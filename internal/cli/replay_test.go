package cli

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/scorekeeper/internal/store"
)

func TestReplay_Consistent(t *testing.T) {
	c := newTestCLI(t)
	c.mustRun("new", "alice", "bob")
	for range 5 {
		c.mustRun("point", "m1", "bob")
	}

	out := c.mustRun("replay", "m1")
	assert.Contains(t, out, "Replayed 5 event(s) of match m1")
	assert.Contains(t, out, "✓ Replay matches the stored match")

	out = c.mustRun("--format", "json", "replay", "m1")
	var resp struct {
		Status string        `json:"status"`
		Data   ReplaySummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, ReplaySummary{
		MatchID:     "m1",
		Events:      5,
		StoredScore: "0-1",
		Score:       "0-1",
		Consistent:  true,
	}, resp.Data)
}

// tamper overwrites the stored snapshot without logging an event.
func tamper(t *testing.T, db, id string) {
	t.Helper()
	ctx := context.Background()
	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()

	m, err := st.Find(ctx, id)
	require.NoError(t, err)
	m.Seq = 99
	_, err = st.Save(ctx, m)
	require.NoError(t, err)
}

func TestReplay_Diverged(t *testing.T) {
	c := newTestCLI(t)
	c.mustRun("new", "alice", "bob")
	c.mustRun("point", "m1", "alice")
	tamper(t, c.db, "m1")

	out, err := c.run("replay", "m1")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ Replay diverged")

	out, err = c.run("--format", "json", "replay", "m1")
	require.Error(t, err)
	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E_REPLAY_DIVERGED", resp.Error.Code)
}

func TestReplay_UnknownMatch(t *testing.T) {
	c := newTestCLI(t)
	_, err := c.run("replay", "nope")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
