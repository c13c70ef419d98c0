package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"trailhead/internal/application/commands"
)

func newDeleteCmd(s *session) *cobra.Command {
	var cascade bool

	cmd := &cobra.Command{
		Use:   "delete <node>",
		Short: "Delete a node",
		Long: `Delete a node and all its relationships.

A node with children is only deleted with --cascade, which also removes
every node reachable below it, including nodes that have other parents.

Warning: This operation cannot be undone.

Examples:
  trailhead-cli delete Scratch
  trailhead-cli delete Website --cascade`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.NewDeleteCommand(s.graph(), args[0], cascade).Execute(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}

	cmd.Flags().BoolVar(&cascade, "cascade", false, "also delete every descendant")
	return cmd
}
