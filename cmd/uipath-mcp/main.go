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

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/DanielaRosenn/uipath-mcp/internal/commands/serve"
	versioncmd "github.com/DanielaRosenn/uipath-mcp/internal/commands/version"
)

// Version information (injected via ldflags at build time)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	root := &cobra.Command{
		Use:   "uipath-mcp",
		Short: "MCP server for UiPath Orchestrator",
		Long: `uipath-mcp exposes a UiPath Orchestrator tenant to AI assistants over
the Model Context Protocol: entity listings, queue and job management,
and derived analytics.

Configuration is read from the environment:
  UIPATH_URL              Organization endpoint, e.g. https://cloud.uipath.com/myorg
  UIPATH_TENANT           Tenant name
  UIPATH_CLIENT_ID        External application client ID
  UIPATH_CLIENT_SECRET    External application client secret
  UIPATH_FOLDER_ID        Optional default folder scope
  UIPATH_TLS_SKIP_VERIFY  Set to "true" to skip TLS verification (self-hosted labs only)`,
		SilenceUsage: true,
	}

	root.AddCommand(serve.NewCommand(version))
	root.AddCommand(versioncmd.NewCommand(version, commit, buildDate))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
