package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"trailhead/internal/config"
	"trailhead/internal/logger"
	"trailhead/internal/ports"
	"trailhead/internal/setup"
)

// session holds what the persistent pre-run opened for the subcommands
type session struct {
	app      *setup.App
	closeLog func()

	driver   string
	dbPath   string
	logLevel string
}

func (s *session) graph() ports.NodeGraph {
	return s.app.Graph
}

func (s *session) contexts() ports.ContextStore {
	return s.app.Contexts
}

func (s *session) open(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("driver") {
		cfg.Driver = s.driver
	}
	if cmd.Flags().Changed("db") {
		cfg.Driver = config.DriverSQLite
		cfg.DBPath = s.dbPath
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = s.logLevel
	}

	log, closeLog, err := logger.Open(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		return err
	}

	app, err := setup.Open(cmd.Context(), cfg, log.Named("cli"))
	if err != nil {
		closeLog()
		return err
	}
	log.Debug("store opened", zap.String("driver", cfg.Driver), zap.String("command", cmd.CommandPath()))

	s.app = app
	s.closeLog = closeLog
	return nil
}

func (s *session) close() error {
	var err error
	if s.app != nil {
		err = s.app.Close()
		s.app = nil
	}
	if s.closeLog != nil {
		s.closeLog()
		s.closeLog = nil
	}
	return err
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	s := &session{}

	root := &cobra.Command{
		Use:   "trailhead-cli",
		Short: "CLI for navigating a graph of projects, topics and trails",
		Long: `trailhead-cli manages a hierarchy of nodes (projects, trails, topics,
modes and tags) where a node may have several parents.

It provides commands to create and link nodes, print filtered trees,
move around with a visit history and group nodes into contexts.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip initialization for help commands
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}
			return s.open(cmd)
		},
	}

	root.PersistentFlags().StringVar(&s.driver, "driver", config.DriverSQLite, "storage driver (sqlite or postgres)")
	root.PersistentFlags().StringVar(&s.dbPath, "db", config.DefaultDBPath(), "path to the sqlite database")
	root.PersistentFlags().StringVar(&s.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(
		newCreateCmd(s),
		newRenameCmd(s),
		newDeleteCmd(s),
		newLinkCmd(s),
		newUnlinkCmd(s),
		newMoveCmd(s),
		newTreeCmd(s),
		newShowCmd(s),
		newVisitCmd(s),
		newBackCmd(s),
		newWhereCmd(s),
		newHistoryCmd(s),
		newSearchCmd(s),
		newContextCmd(s),
	)
	closeAfterRun(root, s)
	return root
}

// closeAfterRun releases the session after every leaf command, including
// failed ones, which PersistentPostRunE would skip.
func closeAfterRun(cmd *cobra.Command, s *session) {
	for _, c := range cmd.Commands() {
		closeAfterRun(c, s)
	}
	if cmd.RunE == nil {
		return
	}
	run := cmd.RunE
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		err := run(cmd, args)
		if cerr := s.close(); err == nil {
			err = cerr
		}
		return err
	}
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
