package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"trailhead/internal/application/commands"
)

func newLinkCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "link <parent> <child>",
		Short: "Add a parent to a node",
		Long: `Add a parent -> child relationship. Links that would close a cycle
are rejected.

Example:
  trailhead-cli link Marketing Launch`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.NewLinkCommand(s.graph(), args[0], args[1]).Execute(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}
}

func newUnlinkCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "unlink <parent> <child>",
		Short: "Remove a parent from a node",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.NewUnlinkCommand(s.graph(), args[0], args[1]).Execute(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}
}

func newMoveCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "move <node> [parent...]",
		Short: "Replace the parents of a node",
		Long: `Replace every parent of a node with the given ones. With no parents
the node moves to the top level.

Examples:
  trailhead-cli move Launch Website
  trailhead-cli move Launch`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.NewMoveCommand(s.graph(), args[0], args[1:]).Execute(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}
}
