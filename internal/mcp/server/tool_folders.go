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

// registerFolderTools registers the folder tools.
func (s *Server) registerFolderTools() {
	// Tool: uipath_list_folders
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "uipath_list_folders",
		Description: "List the tenant's folders (organization units) with their IDs. Folder IDs scope most other tools.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: pagingProperties(100),
		},
	}, s.handleTool("uipath_list_folders", s.handleListFolders))

	// Tool: uipath_get_folder_overview
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "uipath_get_folder_overview",
		Description: "Get a health snapshot of one folder: jobs by state, queue count, release count, and robot count.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"folder_id": map[string]any{
					"type":        "number",
					"description": "Folder (organization unit) ID to summarize",
				},
			},
			Required: []string{"folder_id"},
		},
	}, s.handleTool("uipath_get_folder_overview", s.handleFolderOverview))
}

// handleListFolders implements the uipath_list_folders tool
func (s *Server) handleListFolders(ctx context.Context, request mcp.CallToolRequest) (any, error) {
	return s.client.ListFolders(ctx, orchestrator.ListFoldersOptions{
		Top:  int(intArg(request, "top", 0)),
		Skip: int(intArg(request, "skip", 0)),
	})
}

// handleFolderOverview implements the uipath_get_folder_overview tool
func (s *Server) handleFolderOverview(ctx context.Context, request mcp.CallToolRequest) (any, error) {
	folderID := folderArg(request)
	if folderID <= 0 {
		return nil, fmt.Errorf("a positive 'folder_id' argument is required")
	}
	return s.client.GetFolderOverview(ctx, folderID)
}
