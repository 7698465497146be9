package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureToken_ExchangesOnce(t *testing.T) {
	backend := newTestBackend(t)
	c := backend.client(t)

	tok, err := c.ensureToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "test-token", tok)
	assert.EqualValues(t, 1, backend.TokenExchanges.Load())

	// Second call reuses the cached token: zero further network calls.
	tok, err = c.ensureToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "test-token", tok)
	assert.EqualValues(t, 1, backend.TokenExchanges.Load())
}

func TestEnsureToken_RefreshBoundary(t *testing.T) {
	backend := newTestBackend(t)
	c := backend.client(t)

	now := time.Now()
	c.now = func() time.Time { return now }

	// A token expiring exactly at now+5min is inside the buffer and must
	// be refreshed.
	c.token = &oauth2.Token{AccessToken: "stale", Expiry: now.Add(5 * time.Minute)}
	tok, err := c.ensureToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "test-token", tok)
	assert.EqualValues(t, 1, backend.TokenExchanges.Load())

	// A token with more than 5 minutes left is reused unchanged.
	c.token = &oauth2.Token{AccessToken: "fresh", Expiry: now.Add(5*time.Minute + time.Second)}
	tok, err = c.ensureToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh", tok)
	assert.EqualValues(t, 1, backend.TokenExchanges.Load())
}

func TestEnsureToken_ExchangeFailure(t *testing.T) {
	backend := newTestBackend(t)
	backend.TokenHandler = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":"invalid_client","error_description":"client authentication failed"}`)
	}

	c := backend.client(t)
	_, err := c.ensureToken(context.Background())

	var authErr *AuthenticationError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
	assert.Contains(t, authErr.Body, "invalid_client")

	// The error must never leak credential material.
	assert.NotContains(t, authErr.Error(), "test-secret")
}

func TestEnsureToken_SendsClientCredentialsForm(t *testing.T) {
	backend := newTestBackend(t)

	var grantType, clientID, scope string
	backend.TokenHandler = func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		grantType = r.PostForm.Get("grant_type")
		clientID = r.PostForm.Get("client_id")
		scope = r.PostForm.Get("scope")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"test-token","token_type":"Bearer","expires_in":3600}`)
	}

	c := backend.client(t)
	_, err := c.ensureToken(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "client_credentials", grantType)
	assert.Equal(t, "test-client", clientID)
	assert.Contains(t, scope, "OR.Jobs")
	assert.Contains(t, scope, "OR.License")
}
