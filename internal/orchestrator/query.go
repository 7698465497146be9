package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// listOptions are the OData query options shared by the collection
// listings. Per-operation defaults are applied before this is encoded.
type listOptions struct {
	folderID int64
	top      int
	skip     int
	orderBy  string
	filter   string
	count    bool
}

// buildQuery encodes the options as OData query parameters.
func buildQuery(opts listOptions) url.Values {
	query := url.Values{}
	if opts.top > 0 {
		query.Set("$top", strconv.Itoa(opts.top))
	}
	if opts.skip > 0 {
		query.Set("$skip", strconv.Itoa(opts.skip))
	}
	if opts.orderBy != "" {
		query.Set("$orderby", opts.orderBy)
	}
	if opts.filter != "" {
		query.Set("$filter", opts.filter)
	}
	if opts.count {
		query.Set("$count", "true")
	}
	return query
}

// escapeValue quotes a value for interpolation into an OData string
// literal: embedded single quotes are doubled.
func escapeValue(value string) string {
	return strings.ReplaceAll(value, "'", "''")
}

// eqFilter builds a `field eq 'value'` predicate.
func eqFilter(field, value string) string {
	return fmt.Sprintf("%s eq '%s'", field, escapeValue(value))
}

// andFilter joins non-empty predicates with `and`.
func andFilter(predicates ...string) string {
	var parts []string
	for _, p := range predicates {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " and ")
}

// timeRangeFilter builds `field ge from and field le to` over RFC 3339
// timestamps, omitting whichever bound is empty.
func timeRangeFilter(field, from, to string) string {
	var parts []string
	if from != "" {
		parts = append(parts, fmt.Sprintf("%s ge %s", field, from))
	}
	if to != "" {
		parts = append(parts, fmt.Sprintf("%s le %s", field, to))
	}
	return strings.Join(parts, " and ")
}

// fallbackMode selects how a listing degrades when the server rejects its
// query options. Orchestrator historically rejects $count combined with
// $orderby on some routes; the first request always carries the full
// options and only an unsupported-query rejection triggers a single retry.
type fallbackMode int

const (
	// fallbackNone propagates every error unchanged.
	fallbackNone fallbackMode = iota

	// fallbackDropCountAndOrder retries without $count and $orderby; the
	// result's total count becomes unknown. Used for queue items and jobs.
	fallbackDropCountAndOrder

	// fallbackDropCount retries without $count only and substitutes the
	// returned page's local count. Used for sessions, assets, schedules
	// and audit logs.
	fallbackDropCount
)

// listWithFallback fetches a collection page, degrading the query options
// per mode when the server rejects them. Any error other than an
// unsupported-query rejection propagates without a retry.
func listWithFallback[T any](ctx context.Context, c *Client, path string, opts listOptions, mode fallbackMode) (*Page[T], error) {
	page, err := getList[T](ctx, c, path, buildQuery(opts), opts.folderID)
	if err == nil {
		return page, nil
	}

	var apiErr *APIError
	if mode == fallbackNone || !errors.As(err, &apiErr) || !apiErr.UnsupportedQuery {
		return nil, err
	}

	retry := opts
	retry.count = false
	if mode == fallbackDropCountAndOrder {
		retry.orderBy = ""
	}

	c.logger.Debug("query options rejected, retrying degraded",
		"route", path,
		"mode", int(mode),
	)

	page, err = getList[T](ctx, c, path, buildQuery(retry), retry.folderID)
	if err != nil {
		return nil, err
	}

	if mode == fallbackDropCount {
		local := int64(len(page.Items))
		page.TotalCount = &local
	} else {
		page.TotalCount = nil
	}
	return page, nil
}
