package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/aretw0/palisade/internal/cli"
	mcpadapter "github.com/aretw0/palisade/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the palisade engine as an MCP server over stdio, so AI agents
can evaluate transitions and inspect the route table as tools.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts := optionsFromFlags(cmd)
		logger := cli.CreateLogger(opts.Debug)

		engine, _, err := cli.NewEngine(opts, logger)
		if err != nil {
			log.Fatalf("Error initializing palisade: %v", err)
		}

		srv := mcpadapter.NewServer(engine)

		// Logs must not corrupt JSON-RPC on stdout.
		log.SetOutput(os.Stderr)
		slog.SetDefault(logger)
		slog.Info("starting palisade MCP server (stdio)")

		if err := srv.ServeStdio(); err != nil {
			slog.Error("MCP server execution failed", "err", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
