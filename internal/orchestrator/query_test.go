package orchestrator

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQuery(t *testing.T) {
	query := buildQuery(listOptions{
		top:     50,
		skip:    25,
		orderBy: "CreationTime desc",
		filter:  "State eq 'Running'",
		count:   true,
	})

	assert.Equal(t, "50", query.Get("$top"))
	assert.Equal(t, "25", query.Get("$skip"))
	assert.Equal(t, "CreationTime desc", query.Get("$orderby"))
	assert.Equal(t, "State eq 'Running'", query.Get("$filter"))
	assert.Equal(t, "true", query.Get("$count"))
}

func TestBuildQuery_OmitsEmpty(t *testing.T) {
	query := buildQuery(listOptions{top: 10})
	assert.Len(t, query, 1)
}

func TestEscapeValue_DoublesQuotes(t *testing.T) {
	assert.Equal(t, "O''Brien''s Queue", escapeValue("O'Brien's Queue"))
	assert.Equal(t, "plain", escapeValue("plain"))
}

func TestEqFilter(t *testing.T) {
	assert.Equal(t, "Name eq 'It''s mine'", eqFilter("Name", "It's mine"))
}

func TestAndFilter_SkipsEmpty(t *testing.T) {
	assert.Equal(t, "a eq 'x' and b eq 'y'", andFilter("a eq 'x'", "", "b eq 'y'"))
	assert.Equal(t, "", andFilter("", ""))
}

func TestTimeRangeFilter(t *testing.T) {
	assert.Equal(t,
		"CreationTime ge 2024-01-01T00:00:00Z and CreationTime le 2024-02-01T00:00:00Z",
		timeRangeFilter("CreationTime", "2024-01-01T00:00:00Z", "2024-02-01T00:00:00Z"))
	assert.Equal(t, "CreationTime ge 2024-01-01T00:00:00Z",
		timeRangeFilter("CreationTime", "2024-01-01T00:00:00Z", ""))
	assert.Equal(t, "", timeRangeFilter("CreationTime", "", ""))
}

func TestListWithFallback_WideDropsCountAndOrder(t *testing.T) {
	backend := newTestBackend(t)

	var queries []map[string]string
	backend.Mux.HandleFunc(odataPrefix+"/QueueItems", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		queries = append(queries, map[string]string{
			"count":   q.Get("$count"),
			"orderby": q.Get("$orderby"),
		})
		if q.Get("$count") != "" {
			writeInvalidOData(w)
			return
		}
		writeODataPage(w, -1, []QueueItem{{ID: 1}, {ID: 2}})
	})

	c := backend.client(t)
	page, err := c.ListQueueItems(context.Background(), ListQueueItemsOptions{})
	require.NoError(t, err)

	require.Len(t, queries, 2)
	assert.Equal(t, "true", queries[0]["count"])
	assert.Equal(t, "CreationTime desc", queries[0]["orderby"])
	assert.Empty(t, queries[1]["count"])
	assert.Empty(t, queries[1]["orderby"])

	// The degraded result still returns the item set; the total is unknown.
	assert.Len(t, page.Items, 2)
	assert.Nil(t, page.TotalCount)
}

func TestListWithFallback_NarrowKeepsOrderCountsLocally(t *testing.T) {
	backend := newTestBackend(t)

	var queries []map[string]string
	backend.Mux.HandleFunc(odataPrefix+"/Assets", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		queries = append(queries, map[string]string{
			"count":   q.Get("$count"),
			"orderby": q.Get("$orderby"),
		})
		if q.Get("$count") != "" {
			writeInvalidOData(w)
			return
		}
		writeODataPage(w, -1, []Asset{{ID: 1}, {ID: 2}, {ID: 3}})
	})

	c := backend.client(t)
	page, err := c.ListAssets(context.Background(), ListAssetsOptions{})
	require.NoError(t, err)

	require.Len(t, queries, 2)
	assert.Equal(t, "Name asc", queries[1]["orderby"], "narrow fallback keeps ordering")
	assert.Empty(t, queries[1]["count"])

	require.NotNil(t, page.TotalCount)
	assert.EqualValues(t, 3, *page.TotalCount, "narrow fallback counts the returned page locally")
}

func TestListWithFallback_OtherErrorsPropagate(t *testing.T) {
	backend := newTestBackend(t)

	calls := 0
	backend.Mux.HandleFunc(odataPrefix+"/Jobs", func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusForbidden)
	})

	c := backend.client(t)
	_, err := c.ListJobs(context.Background(), ListJobsOptions{})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, 1, calls, "non-query errors must not be retried")
}
