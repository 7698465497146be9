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
	"github.com/mark3labs/mcp-go/mcp"
)

// Numeric tool arguments arrive as JSON numbers (float64) or occasionally
// as strings, depending on the client. These helpers normalize both.

// intArg extracts an integer argument, returning def when absent.
func intArg(request mcp.CallToolRequest, key string, def int64) int64 {
	args := request.GetArguments()
	if args == nil {
		return def
	}
	switch v := args[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	}
	return def
}

// folderArg extracts the folder_id argument shared by most tools. Zero
// means "use the configured default folder, if any".
func folderArg(request mcp.CallToolRequest) int64 {
	return intArg(request, "folder_id", 0)
}

// objectArg extracts a JSON object argument, or nil when absent.
func objectArg(request mcp.CallToolRequest, key string) map[string]any {
	args := request.GetArguments()
	if args == nil {
		return nil
	}
	if obj, ok := args[key].(map[string]any); ok {
		return obj
	}
	return nil
}

// folderIDProperty is the schema fragment shared by folder-scoped tools.
func folderIDProperty() map[string]any {
	return map[string]any{
		"type":        "number",
		"description": "Folder (organization unit) ID to scope the request to. Omit to use the configured default folder.",
	}
}

// pagingProperties returns the shared $top/$skip schema fragments.
func pagingProperties(defaultTop int) map[string]any {
	return map[string]any{
		"top": map[string]any{
			"type":        "number",
			"description": "Maximum number of records to return",
			"default":     defaultTop,
		},
		"skip": map[string]any{
			"type":        "number",
			"description": "Number of records to skip, for pagination",
		},
	}
}
