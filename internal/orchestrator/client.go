// Package orchestrator implements the UiPath Orchestrator API client: token
// lifecycle, OData query construction, folder-scoped request dispatch, the
// per-entity operations, and the composite analytics built on top of them.
package orchestrator

import (
	"crypto/tls"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/DanielaRosenn/uipath-mcp/internal/config"
	"github.com/DanielaRosenn/uipath-mcp/internal/log"
)

// tokenScopes is the fixed permission set requested on every token
// exchange, covering every entity family the client reaches.
const tokenScopes = "OR.Execution OR.Queues OR.Folders OR.Jobs OR.Assets " +
	"OR.Robots OR.Machines OR.Monitoring OR.Settings OR.Audit OR.License"

// Client is an authenticated Orchestrator API client. The cached token pair
// is the only mutable state; everything else is immutable after New. A
// single Client is safe for concurrent use.
type Client struct {
	cfg        *config.Config
	httpClient *http.Client
	creds      *clientcredentials.Config
	logger     *slog.Logger

	mu    sync.Mutex
	token *oauth2.Token

	// now is time.Now outside of tests.
	now func() time.Time
}

// New creates a Client from a finalized configuration.
func New(cfg *config.Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		cfg:        cfg,
		httpClient: newHTTPClient(cfg.TLSSkipVerify),
		creds: &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
			Scopes:       strings.Fields(tokenScopes),
			AuthStyle:    oauth2.AuthStyleInParams,
		},
		logger: log.WithComponent(logger, "orchestrator"),
		now:    time.Now,
	}
}

// newHTTPClient builds the transport for one client instance. TLS
// verification is a per-client setting, never a process-wide toggle:
// concurrent clients with different needs must not interfere.
func newHTTPClient(skipVerify bool) *http.Client {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: skipVerify,
		},
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	// No client-wide deadline: callers control cancellation through the
	// request context.
	return &http.Client{Transport: transport}
}

// resolveFolder applies the folder scoping precedence: explicit per-call
// value, then the configured default, then unscoped.
func (c *Client) resolveFolder(folderID int64) int64 {
	if folderID > 0 {
		return folderID
	}
	return c.cfg.DefaultFolderID
}
