package orchestrator

import (
	"context"
	"errors"
	"time"

	"golang.org/x/oauth2"

	"github.com/DanielaRosenn/uipath-mcp/internal/observability"
)

// tokenExpiryBuffer is subtracted from the token expiry when deciding
// whether the cached token is still usable. A token within the buffer of
// its expiry is refreshed before use.
const tokenExpiryBuffer = 5 * time.Minute

// ensureToken returns a usable bearer token, performing a client-credentials
// exchange when no cached token exists or the cached one is inside the
// expiry buffer. A failed exchange is not retried; it surfaces immediately
// as an *AuthenticationError.
func (c *Client) ensureToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != nil && c.token.Expiry.After(c.now().Add(tokenExpiryBuffer)) {
		return c.token.AccessToken, nil
	}

	// Route the exchange through this client's transport so the TLS
	// settings apply to the identity server too.
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)

	tok, err := c.creds.Token(ctx)
	if err != nil {
		observability.RecordTokenRefresh("failure")
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			status := 0
			if retrieveErr.Response != nil {
				status = retrieveErr.Response.StatusCode
			}
			return "", &AuthenticationError{
				StatusCode: status,
				Body:       string(retrieveErr.Body),
				Cause:      err,
			}
		}
		return "", &AuthenticationError{Cause: err}
	}

	observability.RecordTokenRefresh("success")
	c.logger.Debug("token refreshed", "expires_at", tok.Expiry)
	c.token = tok
	return tok.AccessToken, nil
}
