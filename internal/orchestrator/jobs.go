package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// ListJobsOptions control the job listing.
type ListJobsOptions struct {
	FolderID int64
	// Top is the page size. Default 50.
	Top int
	// Skip is the page offset. Default 0.
	Skip int
	// State filters by job state (Pending, Running, Successful, Faulted,
	// Stopped, Terminated).
	State string
	// ReleaseName filters by the release (process) name.
	ReleaseName string
	// From and To bound CreationTime (RFC 3339).
	From string
	To   string
	// OrderBy overrides the default ordering of "CreationTime desc".
	OrderBy string
}

// ListJobs lists jobs. Like queue items, the route historically rejects
// $count combined with $orderby; on that rejection the query retries once
// without either and the returned total count is unknown.
func (c *Client) ListJobs(ctx context.Context, opts ListJobsOptions) (*Page[Job], error) {
	if opts.Top <= 0 {
		opts.Top = 50
	}
	if opts.OrderBy == "" {
		opts.OrderBy = "CreationTime desc"
	}

	var predicates []string
	if opts.State != "" {
		predicates = append(predicates, eqFilter("State", opts.State))
	}
	if opts.ReleaseName != "" {
		predicates = append(predicates, eqFilter("ReleaseName", opts.ReleaseName))
	}
	predicates = append(predicates, timeRangeFilter("CreationTime", opts.From, opts.To))

	return listWithFallback[Job](ctx, c, "/Jobs", listOptions{
		folderID: c.resolveFolder(opts.FolderID),
		top:      opts.Top,
		skip:     opts.Skip,
		orderBy:  opts.OrderBy,
		filter:   andFilter(predicates...),
		count:    true,
	}, fallbackDropCountAndOrder)
}

// StartJobOptions describe a job start request.
type StartJobOptions struct {
	FolderID int64
	// Release is the release name or key to execute. Required.
	Release string
	// Strategy is the robot allocation strategy. Default ModernJobsCount.
	Strategy string
	// JobsCount is how many job instances to create. Default 1.
	JobsCount int
	// InputArguments are passed to the process; they are serialized into
	// the JSON-string form the start route expects.
	InputArguments map[string]any
}

// startJobsEnvelope is the start action's request shape.
type startJobsEnvelope struct {
	StartInfo startInfo `json:"startInfo"`
}

type startInfo struct {
	ReleaseKey     string `json:"ReleaseKey"`
	Strategy       string `json:"Strategy"`
	JobsCount      int    `json:"JobsCount"`
	InputArguments string `json:"InputArguments,omitempty"`
}

// StartJob resolves the release and starts job instances for it. Returns
// the created job records. A release that cannot be resolved yields a
// *NotFoundError.
func (c *Client) StartJob(ctx context.Context, opts StartJobOptions) ([]Job, error) {
	if opts.Strategy == "" {
		opts.Strategy = "ModernJobsCount"
	}
	if opts.JobsCount <= 0 {
		opts.JobsCount = 1
	}

	release, err := c.GetReleaseByNameOrKey(ctx, opts.Release, opts.FolderID)
	if err != nil {
		return nil, err
	}
	if release == nil {
		return nil, &NotFoundError{Resource: "release", Name: opts.Release}
	}

	info := startInfo{
		ReleaseKey: release.Key,
		Strategy:   opts.Strategy,
		JobsCount:  opts.JobsCount,
	}
	if len(opts.InputArguments) > 0 {
		raw, err := json.Marshal(opts.InputArguments)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal input arguments: %w", err)
		}
		info.InputArguments = string(raw)
	}

	var result odataPage[Job]
	err = c.execute(ctx, http.MethodPost, "/Jobs/UiPath.Server.Configuration.OData.StartJobs",
		nil, startJobsEnvelope{StartInfo: info}, c.resolveFolder(opts.FolderID), &result)
	if err != nil {
		return nil, err
	}
	return result.Value, nil
}

// Job stop strategies.
const (
	StopStrategySoft = "SoftStop"
	StopStrategyKill = "Kill"
)

// StopJob posts a stop strategy to a job's action route. Strategy defaults
// to SoftStop.
func (c *Client) StopJob(ctx context.Context, jobID int64, strategy string, folderID int64) error {
	if strategy == "" {
		strategy = StopStrategySoft
	}
	path := fmt.Sprintf("/Jobs(%d)/UiPath.Server.Configuration.OData.StopJob", jobID)
	body := map[string]string{"strategy": strategy}
	return c.execute(ctx, http.MethodPost, path, nil, body, c.resolveFolder(folderID), nil)
}

// ListReleases lists the releases visible in the resolved folder scope as
// a bare sequence; the route is not paginated.
func (c *Client) ListReleases(ctx context.Context, folderID int64) ([]Release, error) {
	page, err := getList[Release](ctx, c, "/Releases", nil, c.resolveFolder(folderID))
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// GetReleaseByNameOrKey resolves a release by exact key first, then by
// exact name only when the key lookup returned nothing. A missing release
// is an explicit absence (nil, nil).
func (c *Client) GetReleaseByNameOrKey(ctx context.Context, nameOrKey string, folderID int64) (*Release, error) {
	folder := c.resolveFolder(folderID)

	for _, field := range []string{"Key", "Name"} {
		page, err := getList[Release](ctx, c, "/Releases", buildQuery(listOptions{
			top:    1,
			filter: eqFilter(field, nameOrKey),
		}), folder)
		if err != nil {
			return nil, err
		}
		if len(page.Items) > 0 {
			return &page.Items[0], nil
		}
	}
	return nil, nil
}

// ListSchedulesOptions control the process schedule listing.
type ListSchedulesOptions struct {
	FolderID int64
	// Top is the page size. Default 100.
	Top int
	// Skip is the page offset. Default 0.
	Skip int
}

// ListSchedules lists process schedules.
func (c *Client) ListSchedules(ctx context.Context, opts ListSchedulesOptions) (*Page[ProcessSchedule], error) {
	if opts.Top <= 0 {
		opts.Top = 100
	}
	return listWithFallback[ProcessSchedule](ctx, c, "/ProcessSchedules", listOptions{
		folderID: c.resolveFolder(opts.FolderID),
		top:      opts.Top,
		skip:     opts.Skip,
		orderBy:  "Name asc",
		count:    true,
	}, fallbackDropCount)
}
