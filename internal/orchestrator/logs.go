package orchestrator

import "context"

// ListRobotLogsOptions control the robot log listing.
type ListRobotLogsOptions struct {
	FolderID int64
	// Top is the page size. Default 100.
	Top int
	// Skip is the page offset. Default 0.
	Skip int
	// Level filters by log level (Trace, Info, Warn, Error, Fatal).
	Level string
	// JobKey filters to one job's logs.
	JobKey string
	// MachineName filters by the emitting machine.
	MachineName string
	// From and To bound TimeStamp (RFC 3339).
	From string
	To   string
}

// ListRobotLogs lists robot execution logs, newest first.
func (c *Client) ListRobotLogs(ctx context.Context, opts ListRobotLogsOptions) (*Page[RobotLog], error) {
	if opts.Top <= 0 {
		opts.Top = 100
	}

	var predicates []string
	if opts.Level != "" {
		predicates = append(predicates, eqFilter("Level", opts.Level))
	}
	if opts.JobKey != "" {
		predicates = append(predicates, eqFilter("JobKey", opts.JobKey))
	}
	if opts.MachineName != "" {
		predicates = append(predicates, eqFilter("MachineName", opts.MachineName))
	}
	predicates = append(predicates, timeRangeFilter("TimeStamp", opts.From, opts.To))

	return getList[RobotLog](ctx, c, "/RobotLogs", buildQuery(listOptions{
		top:     opts.Top,
		skip:    opts.Skip,
		orderBy: "TimeStamp desc",
		filter:  andFilter(predicates...),
	}), c.resolveFolder(opts.FolderID))
}

// ListAuditLogsOptions control the audit log listing.
type ListAuditLogsOptions struct {
	// Top is the page size. Default 100.
	Top int
	// Skip is the page offset. Default 0.
	Skip int
	// Component filters by the emitting component.
	Component string
	// Action filters by the audited action name.
	Action string
	// From and To bound ExecutionTime (RFC 3339).
	From string
	To   string
}

// ListAuditLogs lists tenant audit entries, newest first.
func (c *Client) ListAuditLogs(ctx context.Context, opts ListAuditLogsOptions) (*Page[AuditLog], error) {
	if opts.Top <= 0 {
		opts.Top = 100
	}

	var predicates []string
	if opts.Component != "" {
		predicates = append(predicates, eqFilter("Component", opts.Component))
	}
	if opts.Action != "" {
		predicates = append(predicates, eqFilter("Action", opts.Action))
	}
	predicates = append(predicates, timeRangeFilter("ExecutionTime", opts.From, opts.To))

	return listWithFallback[AuditLog](ctx, c, "/AuditLogs", listOptions{
		top:     opts.Top,
		skip:    opts.Skip,
		orderBy: "ExecutionTime desc",
		filter:  andFilter(predicates...),
		count:   true,
	}, fallbackDropCount)
}
