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

package server

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// registerAdminTools registers the licensing, statistics, and dashboard
// tools.
func (s *Server) registerAdminTools() {
	// Tool: uipath_get_license
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "uipath_get_license",
		Description: "Get the tenant's license snapshot: allowed and consumed runtime capacity, expiry.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleTool("uipath_get_license", s.handleGetLicense))

	// Tool: uipath_get_count_stats
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "uipath_get_count_stats",
		Description: "Get tenant-level entity counts (processes, assets, queues) as title/count pairs.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleTool("uipath_get_count_stats", s.handleGetCountStats))

	// Tool: uipath_get_sessions_stats
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "uipath_get_sessions_stats",
		Description: "Get robot session counts grouped by state as title/count pairs.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleTool("uipath_get_sessions_stats", s.handleGetSessionsStats))

	// Tool: uipath_get_dashboard_summary
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "uipath_get_dashboard_summary",
		Description: "Get a combined dashboard: job statistics plus queue item totals sampled from the first few queues.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"folder_id": folderIDProperty(),
			},
		},
	}, s.handleTool("uipath_get_dashboard_summary", s.handleGetDashboardSummary))
}

// handleGetLicense implements the uipath_get_license tool
func (s *Server) handleGetLicense(ctx context.Context, request mcp.CallToolRequest) (any, error) {
	return s.client.GetLicense(ctx)
}

// handleGetCountStats implements the uipath_get_count_stats tool
func (s *Server) handleGetCountStats(ctx context.Context, request mcp.CallToolRequest) (any, error) {
	return s.client.GetCountStats(ctx)
}

// handleGetSessionsStats implements the uipath_get_sessions_stats tool
func (s *Server) handleGetSessionsStats(ctx context.Context, request mcp.CallToolRequest) (any, error) {
	return s.client.GetSessionsStats(ctx)
}

// handleGetDashboardSummary implements the uipath_get_dashboard_summary tool
func (s *Server) handleGetDashboardSummary(ctx context.Context, request mcp.CallToolRequest) (any, error) {
	return s.client.GetDashboardSummary(ctx, folderArg(request))
}
