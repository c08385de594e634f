package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/scorekeeper/internal/compiler"
	"github.com/roach88/scorekeeper/internal/model"
	"github.com/roach88/scorekeeper/internal/store"
)

// ScoreView is the printable state of a match.
type ScoreView struct {
	ID      string       `json:"id"`
	Players []string     `json:"players"`
	Status  model.Status `json:"status"`
	Score   string       `json:"score"`
	Game    string       `json:"game,omitempty"`
	Server  string       `json:"server,omitempty"`
	Winner  string       `json:"winner,omitempty"`
	Seq     int64        `json:"seq"`
}

func newScoreView(m *model.Match) ScoreView {
	v := ScoreView{
		ID:     m.ID,
		Status: m.State(),
		Score:  m.Score().String(),
		Winner: m.Winner,
		Seq:    m.Seq,
	}
	for _, p := range m.Players {
		v.Players = append(v.Players, p.ID)
	}
	if g := m.CurrentGame(); g != nil && m.State() != model.StatusComplete {
		v.Game = g.Score.String()
		v.Server = m.Players[g.Server].ID
	}
	return v
}

func (v ScoreView) writeText(w io.Writer) {
	fmt.Fprintf(w, "Match %s (%s): %s\n", v.ID, strings.Join(v.Players, " vs "), v.Status)
	if v.Score != "" {
		fmt.Fprintf(w, "Score: %s\n", v.Score)
	}
	if v.Game != "" {
		fmt.Fprintf(w, "Game: %s (%s serving)\n", v.Game, v.Server)
	}
	if v.Winner != "" {
		fmt.Fprintf(w, "Winner: %s\n", v.Winner)
	}
}

// NewOptions holds flags for the new command.
type NewOptions struct {
	*RootOptions
	RulesFile string
}

// NewNewCommand creates the new command.
func NewNewCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &NewOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "new <player> <player>",
		Short: "Create a match",
		Long: `Create a singles match and print its ID.

Players are given as an ID, optionally followed by a display name:
alice or "alice=Alice Smith". The first player serves first unless the
rules say otherwise.

Rules are read from a CUE file. Omitted fields take their defaults
(best of 3, six-game sets, advantage scoring, tiebreak in every set).

Examples:
  scorekeeper new alice bob
  scorekeeper new "alice=Alice Smith" "bob=Bob Jones" --rules ./rules.cue`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.RulesFile, "rules", "", "path to a CUE rules file")

	return cmd
}

func runNew(opts *NewOptions, args []string, cmd *cobra.Command) error {
	rules := model.DefaultRules()
	if opts.RulesFile != "" {
		var err error
		rules, err = compiler.LoadRules(opts.RulesFile)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load rules", err)
		}
	}

	players := make([]model.Player, len(args))
	for i, arg := range args {
		id, name, _ := strings.Cut(arg, "=")
		players[i] = model.NewPlayer(id, name)
	}

	return withSession(opts.RootOptions, func(s *session) error {
		f := newFormatter(opts.RootOptions, cmd)
		m, err := s.scoring.CreateMatch(cmd.Context(), players, rules)
		if err != nil {
			return f.fail("failed to create match", err)
		}
		v := newScoreView(m)
		return f.Success(v, func(w io.Writer) {
			fmt.Fprintf(w, "%s\n", m.ID)
		})
	})
}

// NewPointCommand creates the point command.
func NewPointCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "point <match-id> <winner>",
		Short: "Record a point",
		Long: `Record a point won by a player and print the new score.

Example:
  scorekeeper point 0192f1c4-7d1e-7c3a-9a57-5b9d3c1e2f00 alice`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, func(s *session) error {
				m, err := s.scoring.RecordPoint(cmd.Context(), args[0], args[1])
				return printUpdate(rootOpts, cmd, m, err)
			})
		},
	}
}

// NewStrokeCommand creates the stroke command.
func NewStrokeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stroke <match-id> <player> <outcome>",
		Short: "Record a stroke",
		Long: `Record one stroke of a rally and print the new score.

Outcomes: in_play, fault, ace, winner, out, double_fault.
A winner or ace wins the point for the striker, a double fault loses it,
and a shot hit out gives it to the player who hit the stroke before.

Example:
  scorekeeper stroke 0192f1c4-7d1e-7c3a-9a57-5b9d3c1e2f00 alice ace`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			outcome, err := model.ParseOutcome(args[2])
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid outcome", err)
			}
			return withSession(rootOpts, func(s *session) error {
				m, err := s.scoring.RecordStroke(cmd.Context(), args[0], model.Stroke{
					Player:  args[1],
					Outcome: outcome,
				})
				return printUpdate(rootOpts, cmd, m, err)
			})
		},
	}
}

// printUpdate prints the match after an event. An event that was applied
// but failed afterwards still prints the stored score before the error.
func printUpdate(opts *RootOptions, cmd *cobra.Command, m *model.Match, err error) error {
	f := newFormatter(opts, cmd)
	if err != nil {
		if m != nil && opts.Format != "json" {
			newScoreView(m).writeText(cmd.OutOrStdout())
		}
		return f.fail("failed to record event", err)
	}
	v := newScoreView(m)
	return f.Success(v, v.writeText)
}

// NewScoreCommand creates the score command.
func NewScoreCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "score <match-id>",
		Short:         "Show the score of a match",
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
				v := newScoreView(m)
				return f.Success(v, v.writeText)
			})
		},
	}
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List stored matches",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, func(s *session) error {
				return runList(rootOpts, s.store, cmd)
			})
		},
	}
}

func runList(opts *RootOptions, st *store.Store, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd)
	matches, err := st.List(cmd.Context())
	if err != nil {
		return f.fail("failed to list matches", err)
	}
	return f.Success(matches, func(w io.Writer) {
		if len(matches) == 0 {
			fmt.Fprintln(w, "No matches found.")
			return
		}
		for _, m := range matches {
			line := fmt.Sprintf("%s  %-11s  %s", m.ID, m.Status, m.Score)
			if m.Winner != "" {
				line += "  winner: " + m.Winner
			}
			fmt.Fprintln(w, strings.TrimRight(line, " "))
		}
	})
}
