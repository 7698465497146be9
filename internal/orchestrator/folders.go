package orchestrator

import "context"

// ListFoldersOptions control the folder listing.
type ListFoldersOptions struct {
	// Top is the page size. Default 100.
	Top int
	// Skip is the page offset. Default 0.
	Skip int
}

// ListFolders lists the tenant's folders (organization units).
func (c *Client) ListFolders(ctx context.Context, opts ListFoldersOptions) (*Page[Folder], error) {
	if opts.Top <= 0 {
		opts.Top = 100
	}
	return getList[Folder](ctx, c, "/Folders", buildQuery(listOptions{
		top:   opts.Top,
		skip:  opts.Skip,
		count: true,
	}), 0)
}
