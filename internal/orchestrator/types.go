package orchestrator

import "encoding/json"

// Entity records mirror Orchestrator's wire shapes. Fields the client does
// not interpret are passed through untouched; only durations and rates are
// computed locally.

// Folder is an organization unit within a tenant.
type Folder struct {
	ID                 int64  `json:"Id"`
	Key                string `json:"Key,omitempty"`
	DisplayName        string `json:"DisplayName"`
	FullyQualifiedName string `json:"FullyQualifiedName,omitempty"`
	Description        string `json:"Description,omitempty"`
	FolderType         string `json:"FolderType,omitempty"`
	ProvisionType      string `json:"ProvisionType,omitempty"`
}

// Robot is a registered robot runtime.
type Robot struct {
	ID          int64  `json:"Id"`
	Name        string `json:"Name"`
	MachineName string `json:"MachineName,omitempty"`
	MachineID   int64  `json:"MachineId,omitempty"`
	Username    string `json:"Username,omitempty"`
	Type        string `json:"Type,omitempty"`
	Description string `json:"Description,omitempty"`
}

// Machine is a host a robot runs on.
type Machine struct {
	ID             int64  `json:"Id"`
	Name           string `json:"Name"`
	Type           string `json:"Type,omitempty"`
	NonProductionSlots int `json:"NonProductionSlots,omitempty"`
	UnattendedSlots    int `json:"UnattendedSlots,omitempty"`
	Description    string `json:"Description,omitempty"`
}

// Session is a live connection record for a robot runtime.
type Session struct {
	ID              int64  `json:"Id"`
	State           string `json:"State,omitempty"`
	RobotName       string `json:"RobotName,omitempty"`
	HostMachineName string `json:"HostMachineName,omitempty"`
	ReportingTime   string `json:"ReportingTime,omitempty"`
	IsUnresponsive  bool   `json:"IsUnresponsive,omitempty"`
}

// Asset is a named configuration or credential value.
type Asset struct {
	ID          int64  `json:"Id"`
	Name        string `json:"Name"`
	ValueType   string `json:"ValueType,omitempty"`
	ValueScope  string `json:"ValueScope,omitempty"`
	StringValue string `json:"StringValue,omitempty"`
	IntValue    int64  `json:"IntValue,omitempty"`
	BoolValue   bool   `json:"BoolValue,omitempty"`
	Description string `json:"Description,omitempty"`
}

// RobotLog is a log line emitted by a robot run.
type RobotLog struct {
	ID          int64  `json:"Id"`
	Level       string `json:"Level,omitempty"`
	Message     string `json:"Message,omitempty"`
	TimeStamp   string `json:"TimeStamp,omitempty"`
	ProcessName string `json:"ProcessName,omitempty"`
	RobotName   string `json:"RobotName,omitempty"`
	JobKey      string `json:"JobKey,omitempty"`
	MachineID   int64  `json:"MachineId,omitempty"`
}

// QueueDefinition is a durable work-item buffer.
type QueueDefinition struct {
	ID                       int64  `json:"Id"`
	Name                     string `json:"Name"`
	Description              string `json:"Description,omitempty"`
	MaxNumberOfRetries       int    `json:"MaxNumberOfRetries,omitempty"`
	AcceptAutomaticallyRetry bool   `json:"AcceptAutomaticallyRetry,omitempty"`
	CreationTime             string `json:"CreationTime,omitempty"`
}

// QueueItem is one transactional entry in a queue.
type QueueItem struct {
	ID                int64           `json:"Id"`
	QueueDefinitionID int64           `json:"QueueDefinitionId,omitempty"`
	Status            string          `json:"Status,omitempty"`
	Reference         string          `json:"Reference,omitempty"`
	Priority          string          `json:"Priority,omitempty"`
	CreationTime      string          `json:"CreationTime,omitempty"`
	StartProcessing   string          `json:"StartProcessing,omitempty"`
	EndProcessing     string          `json:"EndProcessing,omitempty"`
	DeferDate         string          `json:"DeferDate,omitempty"`
	DueDate           string          `json:"DueDate,omitempty"`
	RetryNumber       int             `json:"RetryNumber,omitempty"`
	SpecificContent   map[string]any  `json:"SpecificContent,omitempty"`
	Output            json.RawMessage `json:"Output,omitempty"`
	ProcessingException json.RawMessage `json:"ProcessingException,omitempty"`
}

// Job is one execution instance of a release.
type Job struct {
	ID             int64           `json:"Id"`
	Key            string          `json:"Key,omitempty"`
	State          string          `json:"State,omitempty"`
	ReleaseName    string          `json:"ReleaseName,omitempty"`
	CreationTime   string          `json:"CreationTime,omitempty"`
	StartTime      string          `json:"StartTime,omitempty"`
	EndTime        string          `json:"EndTime,omitempty"`
	Source         string          `json:"Source,omitempty"`
	Info           string          `json:"Info,omitempty"`
	InputArguments string          `json:"InputArguments,omitempty"`
	OutputArguments json.RawMessage `json:"OutputArguments,omitempty"`
	HostMachineName string         `json:"HostMachineName,omitempty"`
}

// Release is a published, versioned automation process definition.
type Release struct {
	ID             int64  `json:"Id"`
	Key            string `json:"Key"`
	Name           string `json:"Name"`
	ProcessKey     string `json:"ProcessKey,omitempty"`
	ProcessVersion string `json:"ProcessVersion,omitempty"`
	Description    string `json:"Description,omitempty"`
	IsLatestVersion bool  `json:"IsLatestVersion,omitempty"`
}

// ProcessSchedule is a cron-style trigger for a release.
type ProcessSchedule struct {
	ID               int64  `json:"Id"`
	Name             string `json:"Name"`
	ReleaseName      string `json:"ReleaseName,omitempty"`
	Enabled          bool   `json:"Enabled,omitempty"`
	StartProcessCron string `json:"StartProcessCron,omitempty"`
	TimeZoneID       string `json:"TimeZoneId,omitempty"`
}

// AuditLog is one administrative audit entry.
type AuditLog struct {
	ID            int64  `json:"Id"`
	ServiceName   string `json:"ServiceName,omitempty"`
	MethodName    string `json:"MethodName,omitempty"`
	Component     string `json:"Component,omitempty"`
	Action        string `json:"Action,omitempty"`
	UserName      string `json:"UserName,omitempty"`
	ExecutionTime string `json:"ExecutionTime,omitempty"`
	DisplayName   string `json:"DisplayName,omitempty"`
	Parameters    string `json:"Parameters,omitempty"`
}

// LicenseInfo is the tenant's license snapshot.
type LicenseInfo struct {
	HostLicenseID  int64           `json:"HostLicenseId,omitempty"`
	ID             int64           `json:"Id,omitempty"`
	ExpireDate     int64           `json:"ExpireDate,omitempty"`
	IsExpired      bool            `json:"IsExpired,omitempty"`
	Allowed        json.RawMessage `json:"Allowed,omitempty"`
	Used           json.RawMessage `json:"Used,omitempty"`
}

// CountStat is one entry from the non-OData statistics routes.
type CountStat struct {
	Title string `json:"title"`
	Count int64  `json:"count"`
}

// Page is one page of a collection listing. TotalCount is nil when the
// server could not produce an exact count for the requested query shape
// (see the query fallback in query.go).
type Page[T any] struct {
	Items      []T    `json:"items"`
	TotalCount *int64 `json:"totalCount"`
}

// Derived aggregates. These are computed on every call from freshly
// fetched records and never stored.

// QueueStats summarizes a queue's items by status.
type QueueStats struct {
	QueueName     string           `json:"queueName"`
	TotalItems    int64            `json:"totalItems"`
	ItemsByStatus map[string]int64 `json:"itemsByStatus"`
	// SuccessRate is successful/(successful+failed)*100, or null when
	// that denominator is zero.
	SuccessRate *float64 `json:"successRate"`
}

// JobStats summarizes jobs by state.
type JobStats struct {
	TotalJobs      int64    `json:"totalJobs"`
	PendingJobs    int64    `json:"pendingJobs"`
	RunningJobs    int64    `json:"runningJobs"`
	SuccessfulJobs int64    `json:"successfulJobs"`
	FaultedJobs    int64    `json:"faultedJobs"`
	StoppedJobs    int64    `json:"stoppedJobs"`
	SuccessRate    *float64 `json:"successRate"`
}

// FaultedJobSummary describes one faulted job with its computed duration.
type FaultedJobSummary struct {
	ID              int64  `json:"id"`
	Key             string `json:"key,omitempty"`
	ReleaseName     string `json:"releaseName,omitempty"`
	StartTime       string `json:"startTime,omitempty"`
	EndTime         string `json:"endTime,omitempty"`
	Info            string `json:"info,omitempty"`
	HostMachineName string `json:"hostMachineName,omitempty"`
	// DurationSeconds is round((end-start)/1s), or null when either
	// timestamp is absent or unparseable.
	DurationSeconds *int64 `json:"durationSeconds"`
}

// ProcessPerformance summarizes recent executions of one release.
type ProcessPerformance struct {
	ProcessName        string   `json:"processName"`
	JobsAnalyzed       int      `json:"jobsAnalyzed"`
	SuccessfulJobs     int64    `json:"successfulJobs"`
	FaultedJobs        int64    `json:"faultedJobs"`
	StoppedJobs        int64    `json:"stoppedJobs"`
	RunningJobs        int64    `json:"runningJobs"`
	PendingJobs        int64    `json:"pendingJobs"`
	SuccessRate        *float64 `json:"successRate"`
	AvgDurationSeconds *int64   `json:"avgDurationSeconds"`
	MinDurationSeconds *int64   `json:"minDurationSeconds"`
	MaxDurationSeconds *int64   `json:"maxDurationSeconds"`
	RecentJobs         []Job    `json:"recentJobs"`
}

// FolderOverview summarizes the health of one folder.
type FolderOverview struct {
	FolderID    int64            `json:"folderId"`
	FolderName  string           `json:"folderName"`
	JobsByState map[string]int64 `json:"jobsByState"`
	QueueCount  int              `json:"queueCount"`
	ReleaseCount int             `json:"releaseCount"`
	RobotCount  int              `json:"robotCount"`
}

// DashboardSummary is the tenant-wide dashboard aggregate. Queue item
// totals are sampled from the first few queues only (see
// dashboardQueueSample), not a full aggregation.
type DashboardSummary struct {
	QueueCount         int              `json:"queueCount"`
	SampledQueues      int              `json:"sampledQueues"`
	QueueItemsByStatus map[string]int64 `json:"queueItemsByStatus"`
	QueueSuccessRate   *float64         `json:"queueSuccessRate"`
	Jobs               *JobStats        `json:"jobs"`
}
