package orchestrator

import (
	"context"
	"fmt"
	"net/http"
)

// ListQueues lists the queue definitions visible in the resolved folder
// scope as a bare sequence; the route is not paginated.
func (c *Client) ListQueues(ctx context.Context, folderID int64) ([]QueueDefinition, error) {
	page, err := getList[QueueDefinition](ctx, c, "/QueueDefinitions", nil, c.resolveFolder(folderID))
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// GetQueueByName looks a queue definition up by exact name. A missing
// queue is an explicit absence (nil, nil), not an error; the boundary
// layer converts it into a user-facing failure.
func (c *Client) GetQueueByName(ctx context.Context, name string, folderID int64) (*QueueDefinition, error) {
	page, err := getList[QueueDefinition](ctx, c, "/QueueDefinitions", buildQuery(listOptions{
		top:    1,
		filter: eqFilter("Name", name),
	}), c.resolveFolder(folderID))
	if err != nil {
		return nil, err
	}
	if len(page.Items) == 0 {
		return nil, nil
	}
	return &page.Items[0], nil
}

// ListQueueItemsOptions control the queue item listing.
type ListQueueItemsOptions struct {
	FolderID int64
	// Top is the page size. Default 50.
	Top int
	// Skip is the page offset. Default 0.
	Skip int
	// QueueDefinitionID filters to one queue.
	QueueDefinitionID int64
	// Status filters by item status (New, InProgress, Successful, Failed,
	// Abandoned, Retried).
	Status string
	// Reference filters by exact business reference.
	Reference string
	// From and To bound CreationTime (RFC 3339).
	From string
	To   string
}

// ListQueueItems lists queue items. The route historically rejects $count
// combined with $orderby; on that rejection the query retries once without
// either and the returned total count is unknown.
func (c *Client) ListQueueItems(ctx context.Context, opts ListQueueItemsOptions) (*Page[QueueItem], error) {
	if opts.Top <= 0 {
		opts.Top = 50
	}

	var predicates []string
	if opts.QueueDefinitionID > 0 {
		predicates = append(predicates, fmt.Sprintf("QueueDefinitionId eq %d", opts.QueueDefinitionID))
	}
	if opts.Status != "" {
		predicates = append(predicates, eqFilter("Status", opts.Status))
	}
	if opts.Reference != "" {
		predicates = append(predicates, eqFilter("Reference", opts.Reference))
	}
	predicates = append(predicates, timeRangeFilter("CreationTime", opts.From, opts.To))

	return listWithFallback[QueueItem](ctx, c, "/QueueItems", listOptions{
		folderID: c.resolveFolder(opts.FolderID),
		top:      opts.Top,
		skip:     opts.Skip,
		orderBy:  "CreationTime desc",
		filter:   andFilter(predicates...),
		count:    true,
	}, fallbackDropCountAndOrder)
}

// Queue item priorities accepted by AddQueueItem.
const (
	PriorityLow    = "Low"
	PriorityNormal = "Normal"
	PriorityHigh   = "High"
)

// AddQueueItemOptions describe a new queue item.
type AddQueueItemOptions struct {
	FolderID int64
	// QueueName names the target queue. Required.
	QueueName string
	// SpecificContent is the item's business data. Required.
	SpecificContent map[string]any
	// Reference is an optional business reference.
	Reference string
	// Priority is Low, Normal or High. Default Normal.
	Priority string
	// DeferDate and DueDate are optional RFC 3339 timestamps.
	DeferDate string
	DueDate   string
}

// addQueueItemEnvelope is the action route's request shape.
type addQueueItemEnvelope struct {
	ItemData queueItemData `json:"itemData"`
}

type queueItemData struct {
	Name            string         `json:"Name"`
	Priority        string         `json:"Priority"`
	SpecificContent map[string]any `json:"SpecificContent"`
	Reference       string         `json:"Reference,omitempty"`
	DeferDate       string         `json:"DeferDate,omitempty"`
	DueDate         string         `json:"DueDate,omitempty"`
}

// AddQueueItem creates one queue item via the action-style route.
func (c *Client) AddQueueItem(ctx context.Context, opts AddQueueItemOptions) (*QueueItem, error) {
	if opts.Priority == "" {
		opts.Priority = PriorityNormal
	}

	envelope := addQueueItemEnvelope{
		ItemData: queueItemData{
			Name:            opts.QueueName,
			Priority:        opts.Priority,
			SpecificContent: opts.SpecificContent,
			Reference:       opts.Reference,
			DeferDate:       opts.DeferDate,
			DueDate:         opts.DueDate,
		},
	}

	var item QueueItem
	err := c.execute(ctx, http.MethodPost, "/Queues/UiPathODataSvc.AddQueueItem",
		nil, envelope, c.resolveFolder(opts.FolderID), &item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}
