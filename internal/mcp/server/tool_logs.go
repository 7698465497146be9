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

// registerLogTools registers the robot log and audit log tools.
func (s *Server) registerLogTools() {
	// Tool: uipath_list_robot_logs
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "uipath_list_robot_logs",
		Description: "List robot execution logs, newest first. Filter by level, job, machine, or time range.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"folder_id": folderIDProperty(),
				"top":       pagingProperties(100)["top"],
				"skip":      pagingProperties(100)["skip"],
				"level": map[string]any{
					"type":        "string",
					"description": "Filter by log level (Trace, Info, Warn, Error, Fatal)",
				},
				"job_key": map[string]any{
					"type":        "string",
					"description": "Restrict to one job's logs by its key",
				},
				"machine_name": map[string]any{
					"type":        "string",
					"description": "Filter by the emitting machine's name",
				},
				"from": map[string]any{
					"type":        "string",
					"description": "Earliest TimeStamp (RFC 3339)",
				},
				"to": map[string]any{
					"type":        "string",
					"description": "Latest TimeStamp (RFC 3339)",
				},
			},
		},
	}, s.handleTool("uipath_list_robot_logs", s.handleListRobotLogs))

	// Tool: uipath_list_audit_logs
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "uipath_list_audit_logs",
		Description: "List tenant audit log entries, newest first. Filter by component, action, or time range.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"top":  pagingProperties(100)["top"],
				"skip": pagingProperties(100)["skip"],
				"component": map[string]any{
					"type":        "string",
					"description": "Filter by the emitting component",
				},
				"action": map[string]any{
					"type":        "string",
					"description": "Filter by the audited action name",
				},
				"from": map[string]any{
					"type":        "string",
					"description": "Earliest ExecutionTime (RFC 3339)",
				},
				"to": map[string]any{
					"type":        "string",
					"description": "Latest ExecutionTime (RFC 3339)",
				},
			},
		},
	}, s.handleTool("uipath_list_audit_logs", s.handleListAuditLogs))
}

// handleListRobotLogs implements the uipath_list_robot_logs tool
func (s *Server) handleListRobotLogs(ctx context.Context, request mcp.CallToolRequest) (any, error) {
	return s.client.ListRobotLogs(ctx, orchestrator.ListRobotLogsOptions{
		FolderID:    folderArg(request),
		Top:         int(intArg(request, "top", 0)),
		Skip:        int(intArg(request, "skip", 0)),
		Level:       request.GetString("level", ""),
		JobKey:      request.GetString("job_key", ""),
		MachineName: request.GetString("machine_name", ""),
		From:        request.GetString("from", ""),
		To:          request.GetString("to", ""),
	})
}

// handleListAuditLogs implements the uipath_list_audit_logs tool
func (s *Server) handleListAuditLogs(ctx context.Context, request mcp.CallToolRequest) (any, error) {
	return s.client.ListAuditLogs(ctx, orchestrator.ListAuditLogsOptions{
		Top:       int(intArg(request, "top", 0)),
		Skip:      int(intArg(request, "skip", 0)),
		Component: request.GetString("component", ""),
		Action:    request.GetString("action", ""),
		From:      request.GetString("from", ""),
		To:        request.GetString("to", ""),
	})
}
