package orchestrator

import "context"

// ListAssetsOptions control the asset listing.
type ListAssetsOptions struct {
	FolderID int64
	// Top is the page size. Default 100.
	Top int
	// Skip is the page offset. Default 0.
	Skip int
	// Name filters by exact asset name.
	Name string
}

// ListAssets lists assets visible in the resolved folder scope.
func (c *Client) ListAssets(ctx context.Context, opts ListAssetsOptions) (*Page[Asset], error) {
	if opts.Top <= 0 {
		opts.Top = 100
	}

	filter := ""
	if opts.Name != "" {
		filter = eqFilter("Name", opts.Name)
	}

	return listWithFallback[Asset](ctx, c, "/Assets", listOptions{
		folderID: c.resolveFolder(opts.FolderID),
		top:      opts.Top,
		skip:     opts.Skip,
		orderBy:  "Name asc",
		filter:   filter,
		count:    true,
	}, fallbackDropCount)
}
