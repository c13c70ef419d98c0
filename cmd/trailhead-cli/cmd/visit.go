package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"trailhead/internal/application"
	"trailhead/internal/application/commands"
	"trailhead/internal/graph"
)

func newVisitCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "visit <node>",
		Short: "Make a node the current one",
		Long: `Record a node as current in the navigation history. The node that was
current before becomes the previous one.

Example:
  trailhead-cli visit Website`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.NewVisitCommand(s.graph(), args[0]).Execute(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}
}

func newBackCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "back",
		Short: "Return to the previous node",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.NewBackCommand(s.graph()).Execute(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}
}

func newWhereCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "where",
		Short: "Show the current and previous nodes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := commands.NewWhereCommand(s.graph()).Execute(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if res.Current == nil {
				fmt.Fprintln(out, "No current node")
				return nil
			}
			fmt.Fprintf(out, "current:  %s\n", res.CurrentPath)
			if res.Previous != nil {
				fmt.Fprintf(out, "previous: %s\n", res.PreviousPath)
			}
			return nil
		},
	}
}

func newHistoryCmd(s *session) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent navigation history, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			recs, err := s.graph().RecentHistory(ctx, limit)
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No history")
				return nil
			}

			for _, rec := range recs {
				name := rec.CurrentNodeID + " (deleted)"
				n, err := s.graph().GetNode(ctx, rec.CurrentNodeID)
				switch {
				case err == nil:
					name = n.Name
				case !errors.Is(err, application.ErrNotFound):
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", rec.Timestamp.Local().Format("2006-01-02 15:04"), name)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", graph.DefaultHistoryLimit, "number of records")
	return cmd
}
