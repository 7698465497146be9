package orchestrator

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"
)

// Aggregation limits. The sampling cap and fallback/scan limits come from
// operational experience with large tenants; they are deliberate and must
// not be silently widened.
const (
	// dashboardQueueSample caps how many queues contribute per-queue
	// statistics to the dashboard summary. The dashboard samples, it
	// does not aggregate the whole tenant.
	dashboardQueueSample = 5

	// fallbackJobFetch is the raw-record ceiling for the client-side job
	// tally when per-state counting degrades.
	fallbackJobFetch = 1000

	// overviewScanLimit bounds the folder-name scan and the job fetch in
	// the folder overview.
	overviewScanLimit = 1000

	// overviewRobotFetch bounds the robot fetch in the folder overview.
	overviewRobotFetch = 100

	// performanceDefaultLimit is the default number of recent jobs
	// analyzed for process performance.
	performanceDefaultLimit = 100

	// performanceRecentJobs is how many raw job records accompany the
	// process performance metrics.
	performanceRecentJobs = 10
)

// queueItemStatuses is the fixed status set counted by queue statistics,
// in query order.
var queueItemStatuses = []string{"New", "InProgress", "Successful", "Failed", "Abandoned"}

// jobStates is the fixed state set counted by job statistics, in query
// order. Stopped and Terminated fold into one stopped counter.
var jobStates = []string{"Pending", "Running", "Successful", "Faulted", "Stopped", "Terminated"}

// computeDuration returns round(end-start) in whole seconds, or nil when
// either timestamp is absent or unparseable.
func computeDuration(startTime, endTime string) *int64 {
	if startTime == "" || endTime == "" {
		return nil
	}
	start, err := time.Parse(time.RFC3339, startTime)
	if err != nil {
		return nil
	}
	end, err := time.Parse(time.RFC3339, endTime)
	if err != nil {
		return nil
	}
	seconds := int64(math.Round(end.Sub(start).Seconds()))
	return &seconds
}

// successRate returns successful/(successful+failed)*100, or nil when the
// denominator is zero. A rate over no data is undefined, never 0 or 100.
func successRate(successful, failed int64) *float64 {
	total := successful + failed
	if total == 0 {
		return nil
	}
	rate := float64(successful) / float64(total) * 100
	return &rate
}

// GetQueueStats counts one queue's items by status and derives the success
// rate. Each status is counted with its own top=1 query, relying on the
// returned count rather than item bodies; the five queries run in the
// fixed status order.
func (c *Client) GetQueueStats(ctx context.Context, queueName string, folderID int64) (*QueueStats, error) {
	queue, err := c.GetQueueByName(ctx, queueName, folderID)
	if err != nil {
		return nil, err
	}
	if queue == nil {
		return nil, &NotFoundError{Resource: "queue", Name: queueName}
	}
	return c.queueStats(ctx, queue, folderID)
}

// queueStats counts items for an already-resolved queue definition.
func (c *Client) queueStats(ctx context.Context, queue *QueueDefinition, folderID int64) (*QueueStats, error) {
	stats := &QueueStats{
		QueueName:     queue.Name,
		ItemsByStatus: make(map[string]int64, len(queueItemStatuses)),
	}

	for _, status := range queueItemStatuses {
		page, err := c.ListQueueItems(ctx, ListQueueItemsOptions{
			FolderID:          folderID,
			Top:               1,
			QueueDefinitionID: queue.ID,
			Status:            status,
		})
		if err != nil {
			return nil, err
		}

		count := int64(len(page.Items))
		if page.TotalCount != nil {
			count = *page.TotalCount
		}
		stats.ItemsByStatus[status] = count
		stats.TotalItems += count
	}

	stats.SuccessRate = successRate(stats.ItemsByStatus["Successful"], stats.ItemsByStatus["Failed"])
	return stats, nil
}

// GetJobStats counts jobs by state. The primary strategy is one count-only
// query per state; if any count comes back unknown (the query fallback
// fired) or any query fails, the per-state strategy is abandoned entirely
// and the result is a client-side tally over a bounded raw fetch, never a
// partial sum.
func (c *Client) GetJobStats(ctx context.Context, folderID int64) (*JobStats, error) {
	counts := make(map[string]int64, len(jobStates))
	for _, state := range jobStates {
		page, err := c.ListJobs(ctx, ListJobsOptions{
			FolderID: folderID,
			Top:      1,
			State:    state,
		})
		if err != nil || page.TotalCount == nil {
			c.logger.Debug("per-state job counting degraded, tallying raw jobs", "state", state)
			return c.jobStatsFromRawFetch(ctx, folderID)
		}
		counts[state] = *page.TotalCount
	}
	return jobStatsFromCounts(counts), nil
}

// jobStatsFromRawFetch tallies job states client-side over up to
// fallbackJobFetch records.
func (c *Client) jobStatsFromRawFetch(ctx context.Context, folderID int64) (*JobStats, error) {
	page, err := c.ListJobs(ctx, ListJobsOptions{
		FolderID: folderID,
		Top:      fallbackJobFetch,
	})
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(jobStates))
	for _, job := range page.Items {
		counts[job.State]++
	}
	return jobStatsFromCounts(counts), nil
}

// jobStatsFromCounts folds per-state counts into the stats shape.
func jobStatsFromCounts(counts map[string]int64) *JobStats {
	stats := &JobStats{
		PendingJobs:    counts["Pending"],
		RunningJobs:    counts["Running"],
		SuccessfulJobs: counts["Successful"],
		FaultedJobs:    counts["Faulted"],
		StoppedJobs:    counts["Stopped"] + counts["Terminated"],
	}
	stats.TotalJobs = stats.PendingJobs + stats.RunningJobs + stats.SuccessfulJobs +
		stats.FaultedJobs + stats.StoppedJobs
	stats.SuccessRate = successRate(stats.SuccessfulJobs, stats.FaultedJobs)
	return stats
}

// FaultedJobsOptions control the faulted-job summary listing.
type FaultedJobsOptions struct {
	FolderID int64
	// Top is the page size. Default 50.
	Top int
	// ReleaseName optionally narrows to one release.
	ReleaseName string
	// From and To bound CreationTime (RFC 3339).
	From string
	To   string
}

// ListFaultedJobs lists faulted jobs as summaries with computed durations.
func (c *Client) ListFaultedJobs(ctx context.Context, opts FaultedJobsOptions) ([]FaultedJobSummary, error) {
	page, err := c.ListJobs(ctx, ListJobsOptions{
		FolderID:    opts.FolderID,
		Top:         opts.Top,
		State:       "Faulted",
		ReleaseName: opts.ReleaseName,
		From:        opts.From,
		To:          opts.To,
	})
	if err != nil {
		return nil, err
	}

	summaries := make([]FaultedJobSummary, 0, len(page.Items))
	for _, job := range page.Items {
		summaries = append(summaries, FaultedJobSummary{
			ID:              job.ID,
			Key:             job.Key,
			ReleaseName:     job.ReleaseName,
			StartTime:       job.StartTime,
			EndTime:         job.EndTime,
			Info:            job.Info,
			HostMachineName: job.HostMachineName,
			DurationSeconds: computeDuration(job.StartTime, job.EndTime),
		})
	}
	return summaries, nil
}

// GetProcessPerformance analyzes up to limit recent jobs of one release:
// per-state partition, success rate over completed (successful+faulted)
// jobs only, and duration metrics over successful jobs.
func (c *Client) GetProcessPerformance(ctx context.Context, releaseName string, limit int, folderID int64) (*ProcessPerformance, error) {
	if limit <= 0 {
		limit = performanceDefaultLimit
	}

	page, err := c.ListJobs(ctx, ListJobsOptions{
		FolderID:    folderID,
		Top:         limit,
		ReleaseName: releaseName,
	})
	if err != nil {
		return nil, err
	}

	perf := &ProcessPerformance{
		ProcessName:  releaseName,
		JobsAnalyzed: len(page.Items),
	}

	var durations []int64
	for _, job := range page.Items {
		switch job.State {
		case "Successful":
			perf.SuccessfulJobs++
			if d := computeDuration(job.StartTime, job.EndTime); d != nil {
				durations = append(durations, *d)
			}
		case "Faulted":
			perf.FaultedJobs++
		case "Stopped", "Terminated":
			perf.StoppedJobs++
		case "Running":
			perf.RunningJobs++
		case "Pending":
			perf.PendingJobs++
		}
	}

	perf.SuccessRate = successRate(perf.SuccessfulJobs, perf.FaultedJobs)

	if len(durations) > 0 {
		var sum, minD, maxD int64
		minD, maxD = durations[0], durations[0]
		for _, d := range durations {
			sum += d
			if d < minD {
				minD = d
			}
			if d > maxD {
				maxD = d
			}
		}
		avg := int64(math.Round(float64(sum) / float64(len(durations))))
		perf.AvgDurationSeconds = &avg
		perf.MinDurationSeconds = &minD
		perf.MaxDurationSeconds = &maxD
	}

	recent := page.Items
	if len(recent) > performanceRecentJobs {
		recent = recent[:performanceRecentJobs]
	}
	perf.RecentJobs = recent

	return perf, nil
}

// GetFolderOverview assembles a health snapshot for one folder. The four
// sub-fetches run concurrently and each is individually fault-tolerant: a
// failed sub-fetch contributes an empty result instead of failing the
// overview.
func (c *Client) GetFolderOverview(ctx context.Context, folderID int64) (*FolderOverview, error) {
	overview := &FolderOverview{
		FolderID:    folderID,
		FolderName:  fmt.Sprintf("Folder %d", folderID),
		JobsByState: map[string]int64{"Pending": 0, "Running": 0, "Successful": 0, "Faulted": 0, "Stopped": 0},
	}

	folders, err := c.ListFolders(ctx, ListFoldersOptions{Top: overviewScanLimit})
	if err != nil {
		return nil, err
	}
	for _, folder := range folders.Items {
		if folder.ID == folderID {
			overview.FolderName = folder.DisplayName
			break
		}
	}

	var (
		jobs     []Job
		queues   []QueueDefinition
		releases []Release
		robots   []Robot
	)

	var group errgroup.Group
	group.Go(func() error {
		if page, err := c.ListJobs(ctx, ListJobsOptions{FolderID: folderID, Top: overviewScanLimit}); err == nil {
			jobs = page.Items
		} else {
			c.logger.Warn("folder overview job fetch failed", "error", err)
		}
		return nil
	})
	group.Go(func() error {
		if list, err := c.ListQueues(ctx, folderID); err == nil {
			queues = list
		} else {
			c.logger.Warn("folder overview queue fetch failed", "error", err)
		}
		return nil
	})
	group.Go(func() error {
		if list, err := c.ListReleases(ctx, folderID); err == nil {
			releases = list
		} else {
			c.logger.Warn("folder overview release fetch failed", "error", err)
		}
		return nil
	})
	group.Go(func() error {
		if page, err := c.ListRobots(ctx, ListRobotsOptions{FolderID: folderID, Top: overviewRobotFetch}); err == nil {
			robots = page.Items
		} else {
			c.logger.Warn("folder overview robot fetch failed", "error", err)
		}
		return nil
	})
	_ = group.Wait()

	for _, job := range jobs {
		state := job.State
		if state == "Terminated" {
			state = "Stopped"
		}
		if _, ok := overview.JobsByState[state]; ok {
			overview.JobsByState[state]++
		}
	}
	overview.QueueCount = len(queues)
	overview.ReleaseCount = len(releases)
	overview.RobotCount = len(robots)

	return overview, nil
}

// GetDashboardSummary assembles the tenant dashboard: job statistics plus
// queue item totals sampled from the first dashboardQueueSample queues.
func (c *Client) GetDashboardSummary(ctx context.Context, folderID int64) (*DashboardSummary, error) {
	queues, err := c.ListQueues(ctx, folderID)
	if err != nil {
		return nil, err
	}

	jobStats, err := c.GetJobStats(ctx, folderID)
	if err != nil {
		return nil, err
	}

	summary := &DashboardSummary{
		QueueCount:         len(queues),
		QueueItemsByStatus: make(map[string]int64, len(queueItemStatuses)),
		Jobs:               jobStats,
	}

	sample := queues
	if len(sample) > dashboardQueueSample {
		sample = sample[:dashboardQueueSample]
	}
	summary.SampledQueues = len(sample)

	for i := range sample {
		stats, err := c.queueStats(ctx, &sample[i], folderID)
		if err != nil {
			return nil, err
		}
		for status, count := range stats.ItemsByStatus {
			summary.QueueItemsByStatus[status] += count
		}
	}

	summary.QueueSuccessRate = successRate(
		summary.QueueItemsByStatus["Successful"],
		summary.QueueItemsByStatus["Failed"],
	)

	return summary, nil
}
