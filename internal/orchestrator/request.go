package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/DanielaRosenn/uipath-mcp/internal/log"
	"github.com/DanielaRosenn/uipath-mcp/internal/observability"
)

// folderHeader carries the active organization unit on scoped requests.
const folderHeader = "X-UIPATH-OrganizationUnitId"

// execute dispatches one authenticated request against the OData root.
// folderID is the already-resolved scope; zero means unscoped. On 2xx the
// body is unmarshaled into out (when non-nil); on any other status it
// returns an *APIError carrying the status and body text.
func (c *Client) execute(ctx context.Context, method, path string, query url.Values, body any, folderID int64, out any) error {
	token, err := c.ensureToken(ctx)
	if err != nil {
		return err
	}

	requestURL := c.cfg.APIBaseURL + path
	if len(query) > 0 {
		requestURL += "?" + encodeQuery(query)
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if folderID > 0 {
		req.Header.Set(folderHeader, strconv.FormatInt(folderID, 10))
	}

	requestID := uuid.NewString()
	logger := log.WithRequestID(c.logger, requestID)
	logger.Debug("dispatching request",
		"method", method,
		log.RouteKey, path,
		log.FolderKey, folderID,
	)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		observability.RecordAPIRequest(method, "error", time.Since(start).Seconds())
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	observability.RecordAPIRequest(method, strconv.Itoa(resp.StatusCode), time.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	logger.Debug("request completed",
		log.StatusKey, resp.StatusCode,
		log.DurationKey, time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, string(respBody))
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// encodeQuery serializes query parameters with literal spaces encoded as
// %20. The OData parser treats spaces in filter expressions as significant
// and rejects the form-encoded plus sign.
func encodeQuery(query url.Values) string {
	return strings.ReplaceAll(query.Encode(), "+", "%20")
}

// odataPage is the wire shape of an OData collection response.
type odataPage[T any] struct {
	Count *int64 `json:"@odata.count"`
	Value []T    `json:"value"`
}

// getList fetches one page of a collection route.
func getList[T any](ctx context.Context, c *Client, path string, query url.Values, folderID int64) (*Page[T], error) {
	var page odataPage[T]
	if err := c.execute(ctx, http.MethodGet, path, query, nil, folderID, &page); err != nil {
		return nil, err
	}
	return &Page[T]{Items: page.Value, TotalCount: page.Count}, nil
}
