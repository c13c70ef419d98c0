package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	mcpadapter "trailhead/internal/adapters/mcp"
	"trailhead/internal/config"
	"trailhead/internal/logger"
	"trailhead/internal/setup"
)

func main() {
	dbFlag := flag.String("db", "", "path to the sqlite database (overrides config)")
	flag.Parse()

	if err := run(*dbFlag); err != nil {
		fmt.Fprintf(os.Stderr, "trailhead-mcp: %v\n", err)
		os.Exit(1)
	}
}

func run(dbPath string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if dbPath != "" {
		cfg.Driver = config.DriverSQLite
		cfg.DBPath = dbPath
	}

	// stdout carries the protocol; logs go to stderr unless a file is set
	log, closeLog, err := logger.Open(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	app, err := setup.Open(context.Background(), cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	mcpServer := server.NewMCPServer(
		"trailhead-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, app.Graph, app.Contexts)
	mcpadapter.RegisterWriteTools(mcpServer, app.Graph, app.Contexts)

	log.Info("serving mcp over stdio", zap.String("driver", cfg.Driver))
	if err := server.ServeStdio(mcpServer); err != nil {
		log.Error("mcp server stopped", zap.Error(err))
		return err
	}
	return nil
}
