package orchestrator

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/DanielaRosenn/uipath-mcp/internal/config"
)

// odataPrefix is where the fake Orchestrator mounts its OData root, given
// the test configuration below.
const odataPrefix = "/myorg/TestTenant/orchestrator_/odata"

// testBackend is a fake identity server plus Orchestrator API. Route
// handlers are registered on Mux under odataPrefix; the token endpoint is
// pre-registered and counts exchanges.
type testBackend struct {
	Mux            *http.ServeMux
	Server         *httptest.Server
	TokenExchanges atomic.Int64

	// TokenHandler, when set, replaces the default token endpoint.
	TokenHandler http.HandlerFunc
}

func newTestBackend(t *testing.T) *testBackend {
	t.Helper()

	backend := &testBackend{Mux: http.NewServeMux()}
	backend.Mux.HandleFunc("/myorg/identity_/connect/token", func(w http.ResponseWriter, r *http.Request) {
		backend.TokenExchanges.Add(1)
		if backend.TokenHandler != nil {
			backend.TokenHandler(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"test-token","token_type":"Bearer","expires_in":3600}`)
	})

	backend.Server = httptest.NewServer(backend.Mux)
	t.Cleanup(backend.Server.Close)
	return backend
}

// client builds a Client wired to the fake backend.
func (b *testBackend) client(t *testing.T) *Client {
	t.Helper()

	cfg := &config.Config{
		BaseURL:      b.Server.URL + "/myorg",
		Tenant:       "TestTenant",
		ClientID:     "test-client",
		ClientSecret: "test-secret",
	}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize config: %v", err)
	}
	return New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// writeODataPage writes an OData collection response, including the count
// only when non-negative.
func writeODataPage(w http.ResponseWriter, count int64, items any) {
	w.Header().Set("Content-Type", "application/json")
	payload := map[string]any{"value": items}
	if count >= 0 {
		payload["@odata.count"] = count
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// writeInvalidOData rejects the request the way Orchestrator rejects
// unsupported query options.
func writeInvalidOData(w http.ResponseWriter) {
	w.WriteHeader(http.StatusBadRequest)
	fmt.Fprint(w, `{"message":"Invalid OData query options: $count is not supported with $orderby"}`)
}
