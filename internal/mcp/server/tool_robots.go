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
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/DanielaRosenn/uipath-mcp/internal/orchestrator"
)

// registerRobotTools registers the robot, machine, and session tools.
func (s *Server) registerRobotTools() {
	// Tool: uipath_list_robots
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "uipath_list_robots",
		Description: "List robots. With a folder scope the folder's own robots are listed; without one, the tenant's robots.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"folder_id": folderIDProperty(),
				"top":       pagingProperties(100)["top"],
				"skip":      pagingProperties(100)["skip"],
			},
		},
	}, s.handleTool("uipath_list_robots", s.handleListRobots))

	// Tool: uipath_list_machines
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "uipath_list_machines",
		Description: "List the tenant's machines (robot hosts) with their runtime slot allocations.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: pagingProperties(100),
		},
	}, s.handleTool("uipath_list_machines", s.handleListMachines))

	// Tool: uipath_list_sessions
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "uipath_list_sessions",
		Description: "List robot runtime sessions, most recently reporting first. Shows robot connectivity and responsiveness.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"folder_id": folderIDProperty(),
				"top":       pagingProperties(100)["top"],
				"skip":      pagingProperties(100)["skip"],
				"state": map[string]any{
					"type":        "string",
					"description": "Filter by session state (e.g. 'Available', 'Busy', 'Disconnected')",
				},
				"robot_name": map[string]any{
					"type":        "string",
					"description": "Filter by the owning robot's name",
				},
			},
		},
	}, s.handleTool("uipath_list_sessions", s.handleListSessions))

	// Tool: uipath_get_robot_asset
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "uipath_get_robot_asset",
		Description: "Resolve an asset value as one robot sees it, honoring per-robot overrides.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"robot_id": map[string]any{
					"type":        "number",
					"description": "Robot ID the asset is resolved for",
				},
				"asset_name": map[string]any{
					"type":        "string",
					"description": "Name of the asset to resolve",
				},
				"folder_id": folderIDProperty(),
			},
			Required: []string{"robot_id", "asset_name"},
		},
	}, s.handleTool("uipath_get_robot_asset", s.handleGetRobotAsset))
}

// handleListRobots implements the uipath_list_robots tool
func (s *Server) handleListRobots(ctx context.Context, request mcp.CallToolRequest) (any, error) {
	return s.client.ListRobots(ctx, orchestrator.ListRobotsOptions{
		FolderID: folderArg(request),
		Top:      int(intArg(request, "top", 0)),
		Skip:     int(intArg(request, "skip", 0)),
	})
}

// handleListMachines implements the uipath_list_machines tool
func (s *Server) handleListMachines(ctx context.Context, request mcp.CallToolRequest) (any, error) {
	return s.client.ListMachines(ctx, orchestrator.ListMachinesOptions{
		Top:  int(intArg(request, "top", 0)),
		Skip: int(intArg(request, "skip", 0)),
	})
}

// handleListSessions implements the uipath_list_sessions tool
func (s *Server) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (any, error) {
	return s.client.ListSessions(ctx, orchestrator.ListSessionsOptions{
		FolderID:  folderArg(request),
		Top:       int(intArg(request, "top", 0)),
		Skip:      int(intArg(request, "skip", 0)),
		State:     request.GetString("state", ""),
		RobotName: request.GetString("robot_name", ""),
	})
}

// handleGetRobotAsset implements the uipath_get_robot_asset tool
func (s *Server) handleGetRobotAsset(ctx context.Context, request mcp.CallToolRequest) (any, error) {
	robotID := intArg(request, "robot_id", 0)
	if robotID <= 0 {
		return nil, fmt.Errorf("a positive 'robot_id' argument is required")
	}
	assetName, err := request.RequireString("asset_name")
	if err != nil {
		return nil, fmt.Errorf("missing or invalid 'asset_name' argument")
	}
	return s.client.GetRobotAsset(ctx, robotID, assetName, folderArg(request))
}
