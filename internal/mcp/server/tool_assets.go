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

	"github.com/DanielaRosenn/uipath-mcp/internal/orchestrator"
)

// registerAssetTools registers the asset tools.
func (s *Server) registerAssetTools() {
	// Tool: uipath_list_assets
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "uipath_list_assets",
		Description: "List assets (configuration and credential entries) in a folder, ordered by name. Credential values are never returned.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"folder_id": folderIDProperty(),
				"top":       pagingProperties(100)["top"],
				"skip":      pagingProperties(100)["skip"],
				"name": map[string]any{
					"type":        "string",
					"description": "Filter by exact asset name",
				},
			},
		},
	}, s.handleTool("uipath_list_assets", s.handleListAssets))
}

// handleListAssets implements the uipath_list_assets tool
func (s *Server) handleListAssets(ctx context.Context, request mcp.CallToolRequest) (any, error) {
	return s.client.ListAssets(ctx, orchestrator.ListAssetsOptions{
		FolderID: folderArg(request),
		Top:      int(intArg(request, "top", 0)),
		Skip:     int(intArg(request, "skip", 0)),
		Name:     request.GetString("name", ""),
	})
}
