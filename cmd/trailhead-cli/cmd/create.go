package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"trailhead/internal/application/commands"
)

func newCreateCmd(s *session) *cobra.Command {
	var (
		parents []string
		temp    bool
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new node",
		Long: `Create a new node, optionally under one or more parents.

Parents are given by id or by a unique name (case-insensitive).
Without --parent the node is created at the top level.

Examples:
  trailhead-cli create "Website" --parent Projects
  trailhead-cli create "Launch" --parent Website --parent Marketing
  trailhead-cli create "Scratch" --temp`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			createCmd := commands.NewCreateNodeCommand(s.graph(), args[0], parents, temp)
			result, err := createCmd.Execute(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			fmt.Fprintln(cmd.OutOrStdout(), result.Node.ID)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&parents, "parent", "p", nil, "parent id or name (repeatable)")
	cmd.Flags().BoolVar(&temp, "temp", false, "mark the node as temporary")
	return cmd
}

func newRenameCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <node> <new-name>",
		Short: "Rename a node",
		Long: `Rename a node given by id or unique name.

Example:
  trailhead-cli rename Website "Company website"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.NewRenameCommand(s.graph(), args[0], args[1]).Execute(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}
}
