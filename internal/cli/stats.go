package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/scorekeeper/internal/stats"
)

// StatsResult holds the statistics of one match.
type StatsResult struct {
	MatchID    string            `json:"match_id"`
	Players    []string          `json:"players"`
	Statistics []stats.Statistic `json:"statistics"`
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <match-id>",
		Short: "Show match statistics",
		Long: `Evaluate the built-in statistics over a stored match.

Statistics: points won, aces, double faults, winners, errors, games won,
service holds, breaks, tiebreaks won and sets won, each per player. Stroke
statistics only count points recorded stroke by stroke.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, func(s *session) error {
				f := newFormatter(rootOpts, cmd)
				m, err := s.scoring.Match(cmd.Context(), args[0])
				if err != nil {
					return f.fail("failed to read match", err)
				}
				st, err := s.scoring.Statistics(cmd.Context(), args[0])
				if err != nil {
					return f.fail("failed to evaluate statistics", err)
				}

				result := StatsResult{MatchID: m.ID, Statistics: st}
				for _, p := range m.Players {
					result.Players = append(result.Players, p.ID)
				}
				return f.Success(result, result.writeText)
			})
		},
	}
}

func (r StatsResult) writeText(w io.Writer) {
	width := 0
	for _, s := range r.Statistics {
		width = max(width, len(s.Name))
	}
	fmt.Fprintf(w, "%-*s  %s\n", width, "", strings.Join(r.Players, "  "))
	for _, s := range r.Statistics {
		counts := make([]string, len(r.Players))
		for i, p := range r.Players {
			counts[i] = fmt.Sprintf("%*d", len(p), s.Get(p))
		}
		fmt.Fprintf(w, "%-*s  %s\n", width, s.Name, strings.Join(counts, "  "))
	}
}
