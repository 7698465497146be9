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

// registerJobTools registers the job, release, and schedule tools.
func (s *Server) registerJobTools() {
	// Tool: uipath_list_jobs
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "uipath_list_jobs",
		Description: "List jobs (process executions), newest first. Filter by state, process name, or creation time range.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"folder_id": folderIDProperty(),
				"top":       pagingProperties(50)["top"],
				"skip":      pagingProperties(50)["skip"],
				"state": map[string]any{
					"type":        "string",
					"description": "Filter by job state (Pending, Running, Successful, Faulted, Stopped, Terminated)",
				},
				"release_name": map[string]any{
					"type":        "string",
					"description": "Filter by the process (release) name",
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
	}, s.handleTool("uipath_list_jobs", s.handleListJobs))

	// Tool: uipath_start_job
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "uipath_start_job",
		Description: "Start a process by release name or key. Returns the created job records.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"release": map[string]any{
					"type":        "string",
					"description": "Release name or key of the process to start",
				},
				"strategy": map[string]any{
					"type":        "string",
					"description": "Robot allocation strategy (default: ModernJobsCount)",
				},
				"jobs_count": map[string]any{
					"type":        "number",
					"description": "Number of job instances to create (default: 1)",
				},
				"input_arguments": map[string]any{
					"type":        "object",
					"description": "Input argument values passed to the process",
				},
				"folder_id": folderIDProperty(),
			},
			Required: []string{"release"},
		},
	}, s.handleTool("uipath_start_job", s.handleStartJob))

	// Tool: uipath_stop_job
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "uipath_stop_job",
		Description: "Stop a running job. SoftStop lets the process reach a safe stopping point; Kill terminates immediately.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"job_id": map[string]any{
					"type":        "number",
					"description": "ID of the job to stop",
				},
				"strategy": map[string]any{
					"type":        "string",
					"description": "Stop strategy: SoftStop or Kill (default: SoftStop)",
				},
				"folder_id": folderIDProperty(),
			},
			Required: []string{"job_id"},
		},
	}, s.handleTool("uipath_stop_job", s.handleStopJob))

	// Tool: uipath_list_releases
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "uipath_list_releases",
		Description: "List releases (deployed process versions) in a folder. Release names and keys identify processes for uipath_start_job.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"folder_id": folderIDProperty(),
			},
		},
	}, s.handleTool("uipath_list_releases", s.handleListReleases))

	// Tool: uipath_list_schedules
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "uipath_list_schedules",
		Description: "List process schedules (time triggers) with their cron expressions and enabled state.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"folder_id": folderIDProperty(),
				"top":       pagingProperties(100)["top"],
				"skip":      pagingProperties(100)["skip"],
			},
		},
	}, s.handleTool("uipath_list_schedules", s.handleListSchedules))

	// Tool: uipath_get_job_stats
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "uipath_get_job_stats",
		Description: "Count jobs by state and compute the overall success rate over completed jobs.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"folder_id": folderIDProperty(),
			},
		},
	}, s.handleTool("uipath_get_job_stats", s.handleGetJobStats))

	// Tool: uipath_list_faulted_jobs
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "uipath_list_faulted_jobs",
		Description: "List recently faulted jobs with their error info and computed durations. Useful for failure triage.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"folder_id": folderIDProperty(),
				"top":       pagingProperties(50)["top"],
				"release_name": map[string]any{
					"type":        "string",
					"description": "Restrict to one process (release) name",
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
	}, s.handleTool("uipath_list_faulted_jobs", s.handleListFaultedJobs))

	// Tool: uipath_get_process_performance
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "uipath_get_process_performance",
		Description: "Analyze recent executions of one process: success rate, duration statistics, and the latest job records.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"release_name": map[string]any{
					"type":        "string",
					"description": "Process (release) name to analyze",
				},
				"limit": map[string]any{
					"type":        "number",
					"description": "How many recent jobs to analyze (default: 100)",
				},
				"folder_id": folderIDProperty(),
			},
			Required: []string{"release_name"},
		},
	}, s.handleTool("uipath_get_process_performance", s.handleProcessPerformance))
}

// handleListJobs implements the uipath_list_jobs tool
func (s *Server) handleListJobs(ctx context.Context, request mcp.CallToolRequest) (any, error) {
	return s.client.ListJobs(ctx, orchestrator.ListJobsOptions{
		FolderID:    folderArg(request),
		Top:         int(intArg(request, "top", 0)),
		Skip:        int(intArg(request, "skip", 0)),
		State:       request.GetString("state", ""),
		ReleaseName: request.GetString("release_name", ""),
		From:        request.GetString("from", ""),
		To:          request.GetString("to", ""),
	})
}

// handleStartJob implements the uipath_start_job tool
func (s *Server) handleStartJob(ctx context.Context, request mcp.CallToolRequest) (any, error) {
	if !s.rateLimiter.AllowWrite() {
		return nil, fmt.Errorf("rate limit exceeded for state-changing calls, please try again later")
	}

	release, err := request.RequireString("release")
	if err != nil {
		return nil, fmt.Errorf("missing or invalid 'release' argument")
	}

	return s.client.StartJob(ctx, orchestrator.StartJobOptions{
		FolderID:       folderArg(request),
		Release:        release,
		Strategy:       request.GetString("strategy", ""),
		JobsCount:      int(intArg(request, "jobs_count", 0)),
		InputArguments: objectArg(request, "input_arguments"),
	})
}

// handleStopJob implements the uipath_stop_job tool
func (s *Server) handleStopJob(ctx context.Context, request mcp.CallToolRequest) (any, error) {
	if !s.rateLimiter.AllowWrite() {
		return nil, fmt.Errorf("rate limit exceeded for state-changing calls, please try again later")
	}

	jobID := intArg(request, "job_id", 0)
	if jobID <= 0 {
		return nil, fmt.Errorf("a positive 'job_id' argument is required")
	}

	strategy := request.GetString("strategy", "")
	if err := s.client.StopJob(ctx, jobID, strategy, folderArg(request)); err != nil {
		return nil, err
	}
	return map[string]any{"stopped": true, "jobId": jobID}, nil
}

// handleListReleases implements the uipath_list_releases tool
func (s *Server) handleListReleases(ctx context.Context, request mcp.CallToolRequest) (any, error) {
	return s.client.ListReleases(ctx, folderArg(request))
}

// handleListSchedules implements the uipath_list_schedules tool
func (s *Server) handleListSchedules(ctx context.Context, request mcp.CallToolRequest) (any, error) {
	return s.client.ListSchedules(ctx, orchestrator.ListSchedulesOptions{
		FolderID: folderArg(request),
		Top:      int(intArg(request, "top", 0)),
		Skip:     int(intArg(request, "skip", 0)),
	})
}

// handleGetJobStats implements the uipath_get_job_stats tool
func (s *Server) handleGetJobStats(ctx context.Context, request mcp.CallToolRequest) (any, error) {
	return s.client.GetJobStats(ctx, folderArg(request))
}

// handleListFaultedJobs implements the uipath_list_faulted_jobs tool
func (s *Server) handleListFaultedJobs(ctx context.Context, request mcp.CallToolRequest) (any, error) {
	return s.client.ListFaultedJobs(ctx, orchestrator.FaultedJobsOptions{
		FolderID:    folderArg(request),
		Top:         int(intArg(request, "top", 0)),
		ReleaseName: request.GetString("release_name", ""),
		From:        request.GetString("from", ""),
		To:          request.GetString("to", ""),
	})
}

// handleProcessPerformance implements the uipath_get_process_performance tool
func (s *Server) handleProcessPerformance(ctx context.Context, request mcp.CallToolRequest) (any, error) {
	releaseName, err := request.RequireString("release_name")
	if err != nil {
		return nil, fmt.Errorf("missing or invalid 'release_name' argument")
	}
	limit := int(intArg(request, "limit", 0))
	return s.client.GetProcessPerformance(ctx, releaseName, limit, folderArg(request))
}
