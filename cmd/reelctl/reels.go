package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/reelpanel/internal/domain"
	"github.com/MrSnakeDoc/reelpanel/internal/reelstore"
	"github.com/MrSnakeDoc/reelpanel/internal/view"
)

var listCmd = &cobra.Command{
	Use:     "list [query]",
	Aliases: []string{"ls"},
	Short:   "List reels, optionally filtered by link, keyword or reward",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		printTable(cmd.OutOrStdout(), view.Build(backend.Store.Snapshot(), query))
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add <link> <keyword> [reward]",
	Short: "Add a reel (keyword is stored upper-cased)",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		reward := ""
		if len(args) == 3 {
			reward = args[2]
		}

		reel, err := backend.Store.Create(cmd.Context(), args[0], args[1], reward)
		if err != nil {
			return fmt.Errorf("failed to add reel: %w", err)
		}

		green := color.New(color.FgGreen).SprintFunc()
		if reel.ID != 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "%s added reel %d (%s)\n", green("✓"), reel.ID, reel.Keyword)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s added reel %s\n", green("✓"), reel.Keyword)
		}
		return nil
	},
}

var toggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Flip a reel between active and inactive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if _, ok := backend.Store.Get(id); !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "no reel with id %d\n", id)
			return nil
		}

		if err := backend.Store.ToggleStatus(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to toggle reel: %w", err)
		}
		reel, _ := backend.Store.Get(id)
		fmt.Fprintf(cmd.OutOrStdout(), "reel %d is now %s\n", id, statusLabel(reel.Status))
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a reel after confirmation",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if _, ok := backend.Store.Get(id); !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "no reel with id %d\n", id)
			return nil
		}

		yes, _ := cmd.Flags().GetBool("yes")
		var confirmer reelstore.Confirmer = promptConfirmer{in: cmd.InOrStdin(), out: cmd.OutOrStdout()}
		if yes {
			confirmer = reelstore.Confirmed(true)
		}

		err = backend.Store.Delete(cmd.Context(), id, confirmer)
		if errors.Is(err, reelstore.ErrCancelled) {
			fmt.Fprintln(cmd.OutOrStdout(), "cancelled")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to delete reel: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted reel %d\n", id)
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show collection counters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st := backend.Store.Stats()
		bold := color.New(color.Bold).SprintFunc()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "total:       %s\n", bold(st.Total))
		fmt.Fprintf(out, "active:      %s\n", bold(st.Active))
		fmt.Fprintf(out, "inactive:    %s\n", bold(st.Inactive))
		fmt.Fprintf(out, "with reward: %s\n", bold(st.WithReward))
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid reel id %q", s)
	}
	return id, nil
}

func statusLabel(s domain.Status) string {
	if s == domain.StatusActive {
		return color.GreenString(string(s))
	}
	return color.YellowString(string(s))
}

func printTable(w io.Writer, page view.Page) {
	faint := color.New(color.Faint).SprintFunc()

	if page.Table.Empty() {
		fmt.Fprintln(w, page.Table.Placeholder)
	}
	for _, row := range page.Table.Rows {
		reward := row.Reward
		if reward == "" {
			reward = faint("-")
		}
		fmt.Fprintf(w, "%s  %-8s  %-12s  %s  %s\n",
			faint(row.IDString()), statusLabel(row.Status), row.Keyword, row.Link, reward)
	}

	st := page.Stats
	fmt.Fprintln(w, faint(fmt.Sprintf("%d total, %d active, %d inactive, %d with reward",
		st.Total, st.Active, st.Inactive, st.WithReward)))
}
