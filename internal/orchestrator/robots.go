package orchestrator

import (
	"context"
	"fmt"
	"net/http"
)

// ListRobotsOptions control the robot listing.
type ListRobotsOptions struct {
	// FolderID scopes the listing. When a folder is resolved the request
	// dispatches to the folder's own robot sub-route; the remote API
	// models folder robots as a separate endpoint, not a filter.
	FolderID int64
	// Top is the page size. Default 100.
	Top int
	// Skip is the page offset. Default 0.
	Skip int
}

// ListRobots lists robots, folder-scoped when a folder is resolved.
func (c *Client) ListRobots(ctx context.Context, opts ListRobotsOptions) (*Page[Robot], error) {
	if opts.Top <= 0 {
		opts.Top = 100
	}

	folderID := c.resolveFolder(opts.FolderID)
	path := "/Robots"
	if folderID > 0 {
		path = fmt.Sprintf("/Folders(%d)/Robots", folderID)
	}

	return getList[Robot](ctx, c, path, buildQuery(listOptions{
		top:   opts.Top,
		skip:  opts.Skip,
		count: true,
	}), folderID)
}

// ListMachinesOptions control the machine listing.
type ListMachinesOptions struct {
	// Top is the page size. Default 100.
	Top int
	// Skip is the page offset. Default 0.
	Skip int
}

// ListMachines lists the tenant's machines.
func (c *Client) ListMachines(ctx context.Context, opts ListMachinesOptions) (*Page[Machine], error) {
	if opts.Top <= 0 {
		opts.Top = 100
	}
	return getList[Machine](ctx, c, "/Machines", buildQuery(listOptions{
		top:   opts.Top,
		skip:  opts.Skip,
		count: true,
	}), 0)
}

// ListSessionsOptions control the session listing.
type ListSessionsOptions struct {
	FolderID int64
	// Top is the page size. Default 100.
	Top int
	// Skip is the page offset. Default 0.
	Skip int
	// State filters by session state (e.g. "Available", "Busy").
	State string
	// RobotName filters by the owning robot's name.
	RobotName string
}

// ListSessions lists robot runtime sessions.
func (c *Client) ListSessions(ctx context.Context, opts ListSessionsOptions) (*Page[Session], error) {
	if opts.Top <= 0 {
		opts.Top = 100
	}

	var predicates []string
	if opts.State != "" {
		predicates = append(predicates, eqFilter("State", opts.State))
	}
	if opts.RobotName != "" {
		predicates = append(predicates, eqFilter("RobotName", opts.RobotName))
	}

	return listWithFallback[Session](ctx, c, "/Sessions", listOptions{
		folderID: c.resolveFolder(opts.FolderID),
		top:      opts.Top,
		skip:     opts.Skip,
		orderBy:  "ReportingTime desc",
		filter:   andFilter(predicates...),
		count:    true,
	}, fallbackDropCount)
}

// GetRobotAsset resolves an asset value for a specific robot by composite
// key through the parametrized lookup route.
func (c *Client) GetRobotAsset(ctx context.Context, robotID int64, assetName string, folderID int64) (*Asset, error) {
	path := fmt.Sprintf(
		"/Assets/UiPath.Server.Configuration.OData.GetRobotAssetByRobotId(robotId=%d,assetName='%s')",
		robotID, escapeValue(assetName),
	)

	var asset Asset
	if err := c.execute(ctx, http.MethodGet, path, nil, nil, c.resolveFolder(folderID), &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}
