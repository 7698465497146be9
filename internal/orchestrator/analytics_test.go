package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDuration(t *testing.T) {
	d := computeDuration("2024-01-01T10:00:00Z", "2024-01-01T10:02:00Z")
	require.NotNil(t, d)
	assert.EqualValues(t, 120, *d)

	assert.Nil(t, computeDuration("", "2024-01-01T10:02:00Z"))
	assert.Nil(t, computeDuration("2024-01-01T10:00:00Z", ""))
	assert.Nil(t, computeDuration("not-a-time", "2024-01-01T10:02:00Z"))
	assert.Nil(t, computeDuration("2024-01-01T10:00:00Z", "also bad"))

	// Sub-second difference rounds to the nearest whole second.
	d = computeDuration("2024-01-01T10:00:00Z", "2024-01-01T10:00:01.4Z")
	require.NotNil(t, d)
	assert.EqualValues(t, 1, *d)
}

func TestSuccessRate_NullOnNoData(t *testing.T) {
	assert.Nil(t, successRate(0, 0))

	rate := successRate(5, 5)
	require.NotNil(t, rate)
	assert.EqualValues(t, 50, *rate)

	rate = successRate(3, 0)
	require.NotNil(t, rate)
	assert.EqualValues(t, 100, *rate)
}

// registerQueueItemCounts serves per-status counts for queue item count
// queries, keyed by "queueID/status".
func registerQueueItemCounts(backend *testBackend, counts map[string]int64) *[]string {
	var mu sync.Mutex
	var order []string
	backend.Mux.HandleFunc(odataPrefix+"/QueueItems", func(w http.ResponseWriter, r *http.Request) {
		filter := r.URL.Query().Get("$filter")
		var queueID int64
		var status string
		fmt.Sscanf(filter, "QueueDefinitionId eq %d and Status eq '%s", &queueID, &status)
		status = strings.TrimSuffix(status, "'")

		mu.Lock()
		order = append(order, status)
		mu.Unlock()

		writeODataPage(w, counts[fmt.Sprintf("%d/%s", queueID, status)], []QueueItem{})
	})
	return &order
}

func TestGetQueueStats_Scenario(t *testing.T) {
	backend := newTestBackend(t)

	backend.Mux.HandleFunc(odataPrefix+"/QueueDefinitions", func(w http.ResponseWriter, r *http.Request) {
		writeODataPage(w, -1, []QueueDefinition{{ID: 5, Name: "Orders"}})
	})
	order := registerQueueItemCounts(backend, map[string]int64{
		"5/New":        10,
		"5/Successful": 5,
		"5/Failed":     5,
	})

	c := backend.client(t)
	stats, err := c.GetQueueStats(context.Background(), "Orders", 0)
	require.NoError(t, err)

	assert.EqualValues(t, 20, stats.TotalItems)
	require.NotNil(t, stats.SuccessRate)
	assert.EqualValues(t, 50, *stats.SuccessRate)
	assert.EqualValues(t, 10, stats.ItemsByStatus["New"])

	// The five count queries run in the fixed status order.
	assert.Equal(t, queueItemStatuses, *order)
}

func TestGetQueueStats_UnknownQueue(t *testing.T) {
	backend := newTestBackend(t)
	backend.Mux.HandleFunc(odataPrefix+"/QueueDefinitions", func(w http.ResponseWriter, r *http.Request) {
		writeODataPage(w, -1, []QueueDefinition{})
	})

	c := backend.client(t)
	_, err := c.GetQueueStats(context.Background(), "Missing", 0)

	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "queue", notFound.Resource)
}

func TestGetQueueStats_NoCompletedItems(t *testing.T) {
	backend := newTestBackend(t)

	backend.Mux.HandleFunc(odataPrefix+"/QueueDefinitions", func(w http.ResponseWriter, r *http.Request) {
		writeODataPage(w, -1, []QueueDefinition{{ID: 5, Name: "Orders"}})
	})
	registerQueueItemCounts(backend, map[string]int64{"5/New": 7})

	c := backend.client(t)
	stats, err := c.GetQueueStats(context.Background(), "Orders", 0)
	require.NoError(t, err)

	assert.EqualValues(t, 7, stats.TotalItems)
	assert.Nil(t, stats.SuccessRate, "rate over zero completed items is undefined, not 0")
}

func TestGetJobStats_PerStateCounts(t *testing.T) {
	backend := newTestBackend(t)

	counts := map[string]int64{
		"Pending": 1, "Running": 2, "Successful": 30,
		"Faulted": 10, "Stopped": 3, "Terminated": 4,
	}
	backend.Mux.HandleFunc(odataPrefix+"/Jobs", func(w http.ResponseWriter, r *http.Request) {
		filter := r.URL.Query().Get("$filter")
		for state, count := range counts {
			if filter == eqFilter("State", state) {
				writeODataPage(w, count, []Job{})
				return
			}
		}
		writeODataPage(w, 0, []Job{})
	})

	c := backend.client(t)
	stats, err := c.GetJobStats(context.Background(), 0)
	require.NoError(t, err)

	assert.EqualValues(t, 50, stats.TotalJobs)
	assert.EqualValues(t, 7, stats.StoppedJobs, "Stopped and Terminated fold together")
	require.NotNil(t, stats.SuccessRate)
	assert.EqualValues(t, 75, *stats.SuccessRate)
}

func TestGetJobStats_FallbackMatchesRawTally(t *testing.T) {
	backend := newTestBackend(t)

	// Every counted query is rejected, so per-state counting degrades to
	// unknown totals and the stats must come from one raw tally, not a
	// partial sum of whichever state queries "succeeded".
	jobs := []Job{
		{ID: 1, State: "Successful"}, {ID: 2, State: "Successful"},
		{ID: 3, State: "Faulted"},
		{ID: 4, State: "Terminated"}, {ID: 5, State: "Stopped"},
		{ID: 6, State: "Running"},
	}
	var rawFetches int
	backend.Mux.HandleFunc(odataPrefix+"/Jobs", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("$count") != "" {
			writeInvalidOData(w)
			return
		}
		if q.Get("$filter") == "" {
			rawFetches++
			assert.Equal(t, "1000", q.Get("$top"))
			writeODataPage(w, -1, jobs)
			return
		}
		// Degraded per-state queries return items without a count.
		writeODataPage(w, -1, []Job{})
	})

	c := backend.client(t)
	stats, err := c.GetJobStats(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, 1, rawFetches)
	assert.EqualValues(t, 6, stats.TotalJobs)
	assert.EqualValues(t, 2, stats.SuccessfulJobs)
	assert.EqualValues(t, 1, stats.FaultedJobs)
	assert.EqualValues(t, 2, stats.StoppedJobs)
	assert.EqualValues(t, 1, stats.RunningJobs)
	require.NotNil(t, stats.SuccessRate)
	assert.InDelta(t, 66.67, *stats.SuccessRate, 0.01)
}

func TestListFaultedJobs_Durations(t *testing.T) {
	backend := newTestBackend(t)

	backend.Mux.HandleFunc(odataPrefix+"/Jobs", func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Query().Get("$filter"), "State eq 'Faulted'")
		writeODataPage(w, 2, []Job{
			{ID: 1, State: "Faulted", StartTime: "2024-01-01T10:00:00Z", EndTime: "2024-01-01T10:02:00Z", ReleaseName: "Invoice Bot"},
			{ID: 2, State: "Faulted", StartTime: "2024-01-01T10:00:00Z"},
		})
	})

	c := backend.client(t)
	summaries, err := c.ListFaultedJobs(context.Background(), FaultedJobsOptions{})
	require.NoError(t, err)

	require.Len(t, summaries, 2)
	require.NotNil(t, summaries[0].DurationSeconds)
	assert.EqualValues(t, 120, *summaries[0].DurationSeconds)
	assert.Nil(t, summaries[1].DurationSeconds, "missing end time yields a null duration")
}

func TestGetProcessPerformance(t *testing.T) {
	backend := newTestBackend(t)

	var jobs []Job
	for i := 0; i < 12; i++ {
		jobs = append(jobs, Job{ID: int64(i + 1), State: "Successful",
			StartTime: "2024-01-01T10:00:00Z", EndTime: "2024-01-01T10:01:00Z"})
	}
	jobs[0].EndTime = "2024-01-01T10:03:00Z" // 180s
	jobs[1] = Job{ID: 2, State: "Faulted"}
	jobs[2] = Job{ID: 3, State: "Terminated"}
	jobs[3] = Job{ID: 4, State: "Running"}

	backend.Mux.HandleFunc(odataPrefix+"/Jobs", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "100", r.URL.Query().Get("$top"))
		assert.Contains(t, r.URL.Query().Get("$filter"), "ReleaseName eq 'Invoice Bot'")
		writeODataPage(w, int64(len(jobs)), jobs)
	})

	c := backend.client(t)
	perf, err := c.GetProcessPerformance(context.Background(), "Invoice Bot", 0, 0)
	require.NoError(t, err)

	assert.Equal(t, 12, perf.JobsAnalyzed)
	assert.EqualValues(t, 9, perf.SuccessfulJobs)
	assert.EqualValues(t, 1, perf.FaultedJobs)
	assert.EqualValues(t, 1, perf.StoppedJobs)
	assert.EqualValues(t, 1, perf.RunningJobs)

	require.NotNil(t, perf.SuccessRate)
	assert.EqualValues(t, 90, *perf.SuccessRate)

	// 8 jobs at 60s, one at 180s: avg rounds to 73, min 60, max 180.
	require.NotNil(t, perf.AvgDurationSeconds)
	assert.EqualValues(t, 73, *perf.AvgDurationSeconds)
	assert.EqualValues(t, 60, *perf.MinDurationSeconds)
	assert.EqualValues(t, 180, *perf.MaxDurationSeconds)

	assert.Len(t, perf.RecentJobs, performanceRecentJobs)
}

func TestGetFolderOverview_FaultTolerantFetches(t *testing.T) {
	backend := newTestBackend(t)

	backend.Mux.HandleFunc(odataPrefix+"/Folders", func(w http.ResponseWriter, r *http.Request) {
		writeODataPage(w, 2, []Folder{
			{ID: 1, DisplayName: "Shared"},
			{ID: 8, DisplayName: "Finance"},
		})
	})
	backend.Mux.HandleFunc(odataPrefix+"/Jobs", func(w http.ResponseWriter, r *http.Request) {
		writeODataPage(w, 3, []Job{
			{ID: 1, State: "Successful"},
			{ID: 2, State: "Terminated"},
			{ID: 3, State: "Running"},
		})
	})
	backend.Mux.HandleFunc(odataPrefix+"/QueueDefinitions", func(w http.ResponseWriter, r *http.Request) {
		writeODataPage(w, -1, []QueueDefinition{{ID: 1, Name: "Orders"}})
	})
	backend.Mux.HandleFunc(odataPrefix+"/Releases", func(w http.ResponseWriter, r *http.Request) {
		writeODataPage(w, -1, []Release{{ID: 1, Key: "k", Name: "P"}, {ID: 2, Key: "k2", Name: "P2"}})
	})
	// The robot fetch fails; the overview must still assemble.
	backend.Mux.HandleFunc(odataPrefix+"/Folders(8)/Robots", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	c := backend.client(t)
	overview, err := c.GetFolderOverview(context.Background(), 8)
	require.NoError(t, err)

	assert.Equal(t, "Finance", overview.FolderName)
	assert.EqualValues(t, 1, overview.JobsByState["Successful"])
	assert.EqualValues(t, 1, overview.JobsByState["Stopped"], "Terminated folds into Stopped")
	assert.EqualValues(t, 1, overview.JobsByState["Running"])
	assert.Equal(t, 1, overview.QueueCount)
	assert.Equal(t, 2, overview.ReleaseCount)
	assert.Equal(t, 0, overview.RobotCount)
}

func TestGetFolderOverview_UnknownFolderName(t *testing.T) {
	backend := newTestBackend(t)

	backend.Mux.HandleFunc(odataPrefix+"/Folders", func(w http.ResponseWriter, r *http.Request) {
		writeODataPage(w, 0, []Folder{})
	})
	for _, route := range []string{"/Jobs", "/QueueDefinitions", "/Releases", "/Robots"} {
		backend.Mux.HandleFunc(odataPrefix+route, func(w http.ResponseWriter, r *http.Request) {
			writeODataPage(w, 0, []any{})
		})
	}
	backend.Mux.HandleFunc(odataPrefix+"/Folders(3)/Robots", func(w http.ResponseWriter, r *http.Request) {
		writeODataPage(w, 0, []Robot{})
	})

	c := backend.client(t)
	overview, err := c.GetFolderOverview(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Folder 3", overview.FolderName)
}

func TestGetDashboardSummary_SamplingCap(t *testing.T) {
	backend := newTestBackend(t)

	var queues []QueueDefinition
	for i := 1; i <= 12; i++ {
		queues = append(queues, QueueDefinition{ID: int64(i), Name: fmt.Sprintf("Q%d", i)})
	}
	backend.Mux.HandleFunc(odataPrefix+"/QueueDefinitions", func(w http.ResponseWriter, r *http.Request) {
		writeODataPage(w, -1, queues)
	})
	backend.Mux.HandleFunc(odataPrefix+"/Jobs", func(w http.ResponseWriter, r *http.Request) {
		writeODataPage(w, 0, []Job{})
	})

	var mu sync.Mutex
	queriedQueues := map[string]bool{}
	itemQueries := 0
	backend.Mux.HandleFunc(odataPrefix+"/QueueItems", func(w http.ResponseWriter, r *http.Request) {
		var queueID int64
		fmt.Sscanf(r.URL.Query().Get("$filter"), "QueueDefinitionId eq %d", &queueID)

		mu.Lock()
		itemQueries++
		queriedQueues[fmt.Sprintf("%d", queueID)] = true
		mu.Unlock()

		count := int64(0)
		if queueID == 1 {
			count = 4 // Q1 has 4 items per status
		}
		writeODataPage(w, count, []QueueItem{})
	})

	c := backend.client(t)
	summary, err := c.GetDashboardSummary(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, 12, summary.QueueCount)
	assert.Equal(t, dashboardQueueSample, summary.SampledQueues)
	assert.Equal(t, 5*len(queueItemStatuses), itemQueries,
		"only the first five queues may be sampled")
	assert.Len(t, queriedQueues, 5)
	assert.NotContains(t, queriedQueues, "6")

	assert.EqualValues(t, 4, summary.QueueItemsByStatus["Successful"])
	require.NotNil(t, summary.QueueSuccessRate)
	assert.EqualValues(t, 50, *summary.QueueSuccessRate)
}
