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
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/DanielaRosenn/uipath-mcp/internal/orchestrator"
)

const (
	foldersResourceURI   = "uipath://folders"
	dashboardResourceURI = "uipath://dashboard"
)

// registerResources registers the read-only MCP resources. Resources give
// clients ambient context (folder topology, tenant health) without a tool
// call round-trip.
func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(
		foldersResourceURI,
		"Orchestrator folders",
		mcp.WithResourceDescription("The tenant's folders (organization units) with their IDs"),
		mcp.WithMIMEType("application/json"),
	), s.readFoldersResource)

	s.mcpServer.AddResource(mcp.NewResource(
		dashboardResourceURI,
		"Orchestrator dashboard",
		mcp.WithResourceDescription("Tenant dashboard: job statistics and sampled queue item totals"),
		mcp.WithMIMEType("application/json"),
	), s.readDashboardResource)
}

// readFoldersResource serves the uipath://folders resource.
func (s *Server) readFoldersResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	page, err := s.client.ListFolders(ctx, orchestrator.ListFoldersOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing folders: %w", err)
	}
	return jsonResourceContents(foldersResourceURI, page)
}

// readDashboardResource serves the uipath://dashboard resource.
func (s *Server) readDashboardResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	summary, err := s.client.GetDashboardSummary(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("building dashboard summary: %w", err)
	}
	return jsonResourceContents(dashboardResourceURI, summary)
}

// jsonResourceContents marshals v as the single JSON content of a resource.
func jsonResourceContents(uri string, v any) ([]mcp.ResourceContents, error) {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding resource contents: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(encoded),
		},
	}, nil
}
