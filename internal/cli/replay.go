package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/scorekeeper/internal/service"
)

// ReplaySummary is the printable outcome of a replay.
type ReplaySummary struct {
	MatchID     string `json:"match_id"`
	Events      int    `json:"events"`
	StoredScore string `json:"stored_score"`
	Score       string `json:"score"`
	Consistent  bool   `json:"consistent"`
}

func newReplaySummary(id string, r *service.ReplayResult) ReplaySummary {
	return ReplaySummary{
		MatchID:     id,
		Events:      r.Events,
		StoredScore: r.StoredScore,
		Score:       r.Score,
		Consistent:  r.Consistent,
	}
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "replay <match-id>",
		Short: "Replay the event log of a match",
		Long: `Rebuild a match from its stored event log and compare the result with
the stored snapshot.

Exit codes:
  0 - The replayed match equals the stored snapshot
  1 - The replay diverged
  2 - Command error (match or database not found, etc.)

Examples:
  scorekeeper replay 0192f1c4-7d1e-7c3a-9a57-5b9d3c1e2f00
  scorekeeper replay 0192f1c4-7d1e-7c3a-9a57-5b9d3c1e2f00 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, func(s *session) error {
				f := newFormatter(rootOpts, cmd)
				r, err := s.scoring.Replay(cmd.Context(), args[0])
				if err != nil {
					return f.fail("failed to replay match", err)
				}
				return outputReplay(f, newReplaySummary(args[0], r))
			})
		},
	}
}

func outputReplay(f *OutputFormatter, summary ReplaySummary) error {
	if f.Format == "json" && !summary.Consistent {
		if err := f.encode(CLIResponse{
			Status: "error",
			Data:   summary,
			Error: &CLIError{
				Code:    "E_REPLAY_DIVERGED",
				Message: "replayed match differs from the stored snapshot",
			},
		}); err != nil {
			return err
		}
		return NewExitError(ExitFailure, "replay diverged")
	}

	if err := f.Success(summary, summary.writeText); err != nil {
		return err
	}
	if !summary.Consistent {
		return NewExitError(ExitFailure, "replay diverged")
	}
	return nil
}

func (s ReplaySummary) writeText(w io.Writer) {
	fmt.Fprintf(w, "Replayed %d event(s) of match %s\n", s.Events, s.MatchID)
	fmt.Fprintf(w, "  Stored:   %s\n", s.StoredScore)
	fmt.Fprintf(w, "  Replayed: %s\n", s.Score)
	if s.Consistent {
		fmt.Fprintln(w, "✓ Replay matches the stored match")
		return
	}
	fmt.Fprintln(w, "✗ Replay diverged from the stored match")
}
