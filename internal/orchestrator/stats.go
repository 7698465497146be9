package orchestrator

import (
	"context"
	"net/http"
)

// GetLicense fetches the tenant's license snapshot.
func (c *Client) GetLicense(ctx context.Context) (*LicenseInfo, error) {
	var license LicenseInfo
	err := c.execute(ctx, http.MethodGet,
		"/Settings/UiPath.Server.Configuration.OData.GetLicense", nil, nil, 0, &license)
	if err != nil {
		return nil, err
	}
	return &license, nil
}

// GetCountStats fetches the tenant-wide entity counts. Unlike the
// collection routes this returns a plain JSON array, not an OData page.
func (c *Client) GetCountStats(ctx context.Context) ([]CountStat, error) {
	var stats []CountStat
	err := c.execute(ctx, http.MethodGet,
		"/Stats/UiPath.Server.Configuration.OData.GetCountStats", nil, nil, 0, &stats)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// GetSessionsStats fetches per-state robot session counts from the
// non-OData statistics surface.
func (c *Client) GetSessionsStats(ctx context.Context) ([]CountStat, error) {
	var stats []CountStat
	err := c.execute(ctx, http.MethodGet,
		"/Stats/UiPath.Server.Configuration.OData.GetSessionsStats", nil, nil, 0, &stats)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
