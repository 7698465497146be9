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

// registerQueueTools registers the queue tools.
func (s *Server) registerQueueTools() {
	// Tool: uipath_list_queues
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "uipath_list_queues",
		Description: "List queue definitions in a folder.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"folder_id": folderIDProperty(),
			},
		},
	}, s.handleTool("uipath_list_queues", s.handleListQueues))

	// Tool: uipath_get_queue
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "uipath_get_queue",
		Description: "Look up one queue definition by its exact name.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"queue_name": map[string]any{
					"type":        "string",
					"description": "Exact queue name",
				},
				"folder_id": folderIDProperty(),
			},
			Required: []string{"queue_name"},
		},
	}, s.handleTool("uipath_get_queue", s.handleGetQueue))

	// Tool: uipath_list_queue_items
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "uipath_list_queue_items",
		Description: "List queue items (transactions), newest first. Filter by queue, status, reference, or creation time range.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"folder_id": folderIDProperty(),
				"top":       pagingProperties(50)["top"],
				"skip":      pagingProperties(50)["skip"],
				"queue_definition_id": map[string]any{
					"type":        "number",
					"description": "Restrict to one queue by its definition ID",
				},
				"status": map[string]any{
					"type":        "string",
					"description": "Filter by item status (New, InProgress, Successful, Failed, Abandoned, Retried)",
				},
				"reference": map[string]any{
					"type":        "string",
					"description": "Filter by exact business reference",
				},
				"from": map[string]any{
					"type":        "string",
					"description": "Earliest CreationTime (RFC 3339)",
				},
				"to": map[string]any{
					"type":        "string",
					"description": "Latest CreationTime (RFC 3339)",
				},
			},
		},
	}, s.handleTool("uipath_list_queue_items", s.handleListQueueItems))

	// Tool: uipath_add_queue_item
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "uipath_add_queue_item",
		Description: "Add a new work item to a queue. This creates a transaction that robots will process.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"queue_name": map[string]any{
					"type":        "string",
					"description": "Name of the target queue",
				},
				"specific_content": map[string]any{
					"type":        "object",
					"description": "The item's business data as key/value pairs",
				},
				"reference": map[string]any{
					"type":        "string",
					"description": "Optional business reference for the item",
				},
				"priority": map[string]any{
					"type":        "string",
					"description": "Item priority: Low, Normal, or High (default: Normal)",
				},
				"defer_date": map[string]any{
					"type":        "string",
					"description": "Earliest processing time (RFC 3339)",
				},
				"due_date": map[string]any{
					"type":        "string",
					"description": "Processing deadline (RFC 3339)",
				},
				"folder_id": folderIDProperty(),
			},
			Required: []string{"queue_name", "specific_content"},
		},
	}, s.handleTool("uipath_add_queue_item", s.handleAddQueueItem))

	// Tool: uipath_get_queue_stats
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "uipath_get_queue_stats",
		Description: "Count one queue's items by status and compute its success rate over completed items.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"queue_name": map[string]any{
					"type":        "string",
					"description": "Exact queue name",
				},
				"folder_id": folderIDProperty(),
			},
			Required: []string{"queue_name"},
		},
	}, s.handleTool("uipath_get_queue_stats", s.handleGetQueueStats))
}

// handleListQueues implements the uipath_list_queues tool
func (s *Server) handleListQueues(ctx context.Context, request mcp.CallToolRequest) (any, error) {
	return s.client.ListQueues(ctx, folderArg(request))
}

// handleGetQueue implements the uipath_get_queue tool
func (s *Server) handleGetQueue(ctx context.Context, request mcp.CallToolRequest) (any, error) {
	name, err := request.RequireString("queue_name")
	if err != nil {
		return nil, fmt.Errorf("missing or invalid 'queue_name' argument")
	}
	queue, err := s.client.GetQueueByName(ctx, name, folderArg(request))
	if err != nil {
		return nil, err
	}
	if queue == nil {
		return nil, &orchestrator.NotFoundError{Resource: "queue", Name: name}
	}
	return queue, nil
}

// handleListQueueItems implements the uipath_list_queue_items tool
func (s *Server) handleListQueueItems(ctx context.Context, request mcp.CallToolRequest) (any, error) {
	return s.client.ListQueueItems(ctx, orchestrator.ListQueueItemsOptions{
		FolderID:          folderArg(request),
		Top:               int(intArg(request, "top", 0)),
		Skip:              int(intArg(request, "skip", 0)),
		QueueDefinitionID: intArg(request, "queue_definition_id", 0),
		Status:            request.GetString("status", ""),
		Reference:         request.GetString("reference", ""),
		From:              request.GetString("from", ""),
		To:                request.GetString("to", ""),
	})
}

// handleAddQueueItem implements the uipath_add_queue_item tool
func (s *Server) handleAddQueueItem(ctx context.Context, request mcp.CallToolRequest) (any, error) {
	if !s.rateLimiter.AllowWrite() {
		return nil, fmt.Errorf("rate limit exceeded for state-changing calls, please try again later")
	}

	queueName, err := request.RequireString("queue_name")
	if err != nil {
		return nil, fmt.Errorf("missing or invalid 'queue_name' argument")
	}
	content := objectArg(request, "specific_content")
	if content == nil {
		return nil, fmt.Errorf("missing or invalid 'specific_content' argument")
	}

	return s.client.AddQueueItem(ctx, orchestrator.AddQueueItemOptions{
		FolderID:        folderArg(request),
		QueueName:       queueName,
		SpecificContent: content,
		Reference:       request.GetString("reference", ""),
		Priority:        request.GetString("priority", ""),
		DeferDate:       request.GetString("defer_date", ""),
		DueDate:         request.GetString("due_date", ""),
	})
}

// handleGetQueueStats implements the uipath_get_queue_stats tool
func (s *Server) handleGetQueueStats(ctx context.Context, request mcp.CallToolRequest) (any, error) {
	name, err := request.RequireString("queue_name")
	if err != nil {
		return nil, fmt.Errorf("missing or invalid 'queue_name' argument")
	}
	return s.client.GetQueueStats(ctx, name, folderArg(request))
}
