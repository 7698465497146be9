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

// Package server implements an MCP server that exposes UiPath Orchestrator
// functionality as tools and resources.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/DanielaRosenn/uipath-mcp/internal/observability"
	"github.com/DanielaRosenn/uipath-mcp/internal/orchestrator"
)

// Server wraps the MCP server and provides Orchestrator tools.
type Server struct {
	mcpServer   *server.MCPServer
	name        string
	version     string
	client      *orchestrator.Client
	rateLimiter *RateLimiter
	logger      *slog.Logger
}

// ServerConfig configures the MCP server.
type ServerConfig struct {
	// Name is the server name (default: "uipath-mcp").
	Name string

	// Version is the uipath-mcp version.
	Version string

	// Client is the Orchestrator API client tools call into.
	Client *orchestrator.Client

	// Logger receives server logs. It must write somewhere other than
	// stdout so it cannot interfere with the MCP stdio protocol.
	Logger *slog.Logger
}

// NewServer creates a new MCP server instance.
func NewServer(config ServerConfig) (*Server, error) {
	if config.Name == "" {
		config.Name = "uipath-mcp"
	}
	if config.Version == "" {
		config.Version = "dev"
	}
	if config.Client == nil {
		return nil, fmt.Errorf("orchestrator client is required")
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	mcpServer := server.NewMCPServer(config.Name, config.Version,
		server.WithResourceCapabilities(false, true),
	)

	// Rate limiter (10 writes/min, 120 calls/min). Writes are the calls
	// that change Orchestrator state: starting and stopping jobs, adding
	// queue items.
	rateLimiter := NewRateLimiter(10, 120)

	s := &Server{
		mcpServer:   mcpServer,
		name:        config.Name,
		version:     config.Version,
		client:      config.Client,
		rateLimiter: rateLimiter,
		logger:      config.Logger,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// registerTools registers all Orchestrator tools with the MCP server.
func (s *Server) registerTools() {
	s.registerFolderTools()
	s.registerRobotTools()
	s.registerAssetTools()
	s.registerQueueTools()
	s.registerJobTools()
	s.registerLogTools()
	s.registerAdminTools()
}

// Run starts the MCP server using stdio transport.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("Starting UiPath MCP server", slog.String("version", s.version))

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}

	return nil
}

// RunHTTP serves the MCP server over streamable HTTP on addr, with
// Prometheus metrics mounted at /metrics.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	s.logger.Info("Starting UiPath MCP server over HTTP",
		slog.String("version", s.version),
		slog.String("addr", addr))

	mux := http.NewServeMux()
	mux.Handle("/mcp", server.NewStreamableHTTPServer(s.mcpServer))
	mux.Handle("/metrics", promhttp.Handler())

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("MCP HTTP server error: %w", err)
		}
		return nil
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down UiPath MCP server")
	// The mcp-go server doesn't have an explicit shutdown method.
	// Returning from ServeStdio() is sufficient.
	return nil
}

// handleTool wraps a tool body with the shared per-call concerns: the call
// rate limit, metrics, and error-to-result conversion.
func (s *Server) handleTool(tool string, body func(ctx context.Context, request mcp.CallToolRequest) (any, error)) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if !s.rateLimiter.AllowCall() {
			observability.RecordToolCall(tool, "rate_limited")
			return errorResponse("Rate limit exceeded. Please try again later."), nil
		}

		result, err := body(ctx, request)
		if err != nil {
			observability.RecordToolCall(tool, "error")
			s.logger.Warn("tool call failed", slog.String("tool", tool), slog.Any("error", err))
			return errorResponse(toolErrorMessage(err)), nil
		}

		observability.RecordToolCall(tool, "ok")
		return jsonResponse(result)
	}
}

// toolErrorMessage renders an Orchestrator error for the MCP client. The
// typed errors carry enough context on their own; anything else is passed
// through as-is.
func toolErrorMessage(err error) string {
	var notFound *orchestrator.NotFoundError
	if errors.As(err, &notFound) {
		return notFound.Error()
	}

	var authErr *orchestrator.AuthenticationError
	if errors.As(err, &authErr) {
		return fmt.Sprintf("Authentication with Orchestrator failed: %v. Check the configured client credentials.", authErr)
	}

	var apiErr *orchestrator.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("Orchestrator API error: %v", apiErr)
	}

	return err.Error()
}

// Helper function to create error response
func errorResponse(message string) *mcp.CallToolResult {
	return mcp.NewToolResultError(message)
}

// Helper function to create success response
func textResponse(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

// jsonResponse marshals v as indented JSON into a text result.
func jsonResponse(v any) (*mcp.CallToolResult, error) {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResponse(fmt.Sprintf("Failed to encode result: %v", err)), nil
	}
	return textResponse(string(encoded)), nil
}
