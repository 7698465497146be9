// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package serve implements the serve command, the MCP server entrypoint.
package serve

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/DanielaRosenn/uipath-mcp/internal/config"
	"github.com/DanielaRosenn/uipath-mcp/internal/log"
	"github.com/DanielaRosenn/uipath-mcp/internal/mcp/server"
	"github.com/DanielaRosenn/uipath-mcp/internal/orchestrator"
)

// NewCommand creates the serve command
func NewCommand(version string) *cobra.Command {
	var (
		logLevel string
		httpAddr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the UiPath Orchestrator MCP server",
		Long: `Start the UiPath Orchestrator MCP (Model Context Protocol) server.

The server exposes Orchestrator entities (folders, robots, queues, jobs,
assets, logs) and derived analytics (queue statistics, job statistics,
process performance, dashboard summaries) as MCP tools.

It runs in stdio mode by default, which is suitable for integration with
AI assistants via their MCP configuration:

  {
    "mcpServers": {
      "uipath": {
        "command": "uipath-mcp",
        "args": ["serve"],
        "env": {
          "UIPATH_URL": "https://cloud.uipath.com/myorg",
          "UIPATH_TENANT": "MyTenant",
          "UIPATH_CLIENT_ID": "...",
          "UIPATH_CLIENT_SECRET": "..."
        }
      }
    }
  }

With --http the server instead listens on the given address, serving the
MCP protocol at /mcp and Prometheus metrics at /metrics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(version, logLevel, httpAddr)
		},
	}

	cmd.Flags().StringVar(&logLevel, "log-level", "", "Logging verbosity (debug, info, warn, error); overrides LOG_LEVEL")
	cmd.Flags().StringVar(&httpAddr, "http", "", "Serve over HTTP on this address (e.g. :8080) instead of stdio")

	return cmd
}

func runServe(version, logLevel, httpAddr string) error {
	// Logs go to stderr so they cannot interfere with the MCP stdio
	// protocol on stdout.
	logCfg := log.FromEnv()
	if logLevel != "" {
		logCfg.Level = logLevel
	}
	logger := log.New(logCfg)

	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	client := orchestrator.New(cfg, logger)

	srv, err := server.NewServer(server.ServerConfig{
		Name:    "uipath-mcp",
		Version: version,
		Client:  client,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nReceived shutdown signal, shutting down gracefully...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			fmt.Fprintf(os.Stderr, "Error during shutdown: %v\n", err)
		}

		cancel()
	}()

	if httpAddr != "" {
		return srv.RunHTTP(ctx, httpAddr)
	}
	return srv.Run(ctx)
}
