package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"trailhead/internal/application/commands"
)

func newContextCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "context",
		Short: "Manage contexts",
		Long: `A context is a named set of nodes. While a context is current, tree
output marks its members and the context filter shows only them.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "create <name>",
			Short: "Create a context",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				c, err := s.contexts().CreateContext(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created context %s\n%s\n", c.Name, c.ID)
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List contexts, marking the current one",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				all, err := s.contexts().ListContexts(ctx)
				if err != nil {
					return err
				}
				cur, err := s.contexts().CurrentContext(ctx)
				if err != nil {
					return err
				}
				if len(all) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No contexts")
					return nil
				}
				for _, c := range all {
					marker := "  "
					if cur != nil && cur.ID == c.ID {
						marker = "* "
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s%s (%d nodes)\n", marker, c.Name, len(c.MemberNodeIDs))
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "use <context>",
			Short: "Make a context current",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				c, err := s.contexts().GetContext(ctx, args[0])
				if err != nil {
					return err
				}
				if err := s.contexts().UseContext(ctx, c.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Using context %s\n", c.Name)
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Clear the current context",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := s.contexts().ClearCurrent(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "No current context")
				return nil
			},
		},
		newMembershipCmd(s, "add", "Add a node to a context", false),
		newMembershipCmd(s, "remove", "Remove a node from a context", true),
	)
	return cmd
}

func newMembershipCmd(s *session, use, short string, remove bool) *cobra.Command {
	var contextRef string

	cmd := &cobra.Command{
		Use:   use + " <node>",
		Short: short,
		Long:  short + ". Without --context the current context is used.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			membership := commands.NewContextMembershipCommand(s.graph(), s.contexts(), contextRef, args[0], remove)
			msg, err := membership.Execute(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}

	cmd.Flags().StringVarP(&contextRef, "context", "c", "", "context id or name")
	return cmd
}
