// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads and validates the UiPath Orchestrator connection
// settings from the process environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// Environment variable names read by FromEnv.
const (
	EnvURL           = "UIPATH_URL"
	EnvTenant        = "UIPATH_TENANT"
	EnvClientID      = "UIPATH_CLIENT_ID"
	EnvClientSecret  = "UIPATH_CLIENT_SECRET"
	EnvFolderID      = "UIPATH_FOLDER_ID"
	EnvTLSSkipVerify = "UIPATH_TLS_SKIP_VERIFY"
)

// Config holds the Orchestrator connection settings. It is immutable after
// construction; the derived URLs are computed once by Finalize.
type Config struct {
	// BaseURL is the organization-scoped Orchestrator endpoint,
	// e.g. https://cloud.uipath.com/myorg.
	BaseURL string

	// Tenant is the tenant identifier within the organization.
	Tenant string

	// ClientID and ClientSecret are the external-application credentials
	// used for the client-credentials token exchange.
	ClientID     string
	ClientSecret string

	// DefaultFolderID scopes requests that do not carry an explicit
	// folder. Zero means unscoped (tenant-wide).
	DefaultFolderID int64

	// TLSSkipVerify disables certificate verification on this client's
	// transport only. It must never become process-global state.
	TLSSkipVerify bool

	// APIBaseURL is the derived OData root,
	// e.g. https://cloud.uipath.com/myorg/mytenant/orchestrator_/odata.
	APIBaseURL string

	// TokenURL is the derived identity-server token endpoint,
	// e.g. https://cloud.uipath.com/myorg/identity_/connect/token.
	TokenURL string
}

// ConfigError represents a configuration problem.
type ConfigError struct {
	// Key is the configuration key that has the problem (e.g. "UIPATH_URL").
	Key string

	// Reason explains what's wrong with the configuration.
	Reason string

	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("config error at %s: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("config error: %s", e.Reason)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// FromEnv reads the configuration from environment variables and finalizes
// the derived URLs.
func FromEnv() (*Config, error) {
	cfg := &Config{
		BaseURL:      strings.TrimSpace(os.Getenv(EnvURL)),
		Tenant:       strings.TrimSpace(os.Getenv(EnvTenant)),
		ClientID:     strings.TrimSpace(os.Getenv(EnvClientID)),
		ClientSecret: strings.TrimSpace(os.Getenv(EnvClientSecret)),
	}

	if raw := os.Getenv(EnvFolderID); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, &ConfigError{Key: EnvFolderID, Reason: "must be an integer", Cause: err}
		}
		cfg.DefaultFolderID = id
	}

	if raw := os.Getenv(EnvTLSSkipVerify); raw == "true" || raw == "1" {
		cfg.TLSSkipVerify = true
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Finalize validates the required fields and computes the derived URLs.
// It is called by FromEnv and must be called once on hand-built configs.
func (c *Config) Finalize() error {
	if c.BaseURL == "" {
		return &ConfigError{Key: EnvURL, Reason: "is required"}
	}
	if c.Tenant == "" {
		return &ConfigError{Key: EnvTenant, Reason: "is required"}
	}
	if c.ClientID == "" {
		return &ConfigError{Key: EnvClientID, Reason: "is required"}
	}
	if c.ClientSecret == "" {
		return &ConfigError{Key: EnvClientSecret, Reason: "is required"}
	}

	base := strings.TrimRight(c.BaseURL, "/")
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return &ConfigError{Key: EnvURL, Reason: "must be an absolute URL", Cause: err}
	}

	c.APIBaseURL = base + "/" + c.Tenant + "/orchestrator_/odata"

	// The identity server lives under the organization path: scheme+host
	// plus the first path segment of the base endpoint.
	org := ""
	if segs := strings.SplitN(strings.Trim(u.Path, "/"), "/", 2); len(segs) > 0 && segs[0] != "" {
		org = "/" + segs[0]
	}
	c.TokenURL = u.Scheme + "://" + u.Host + org + "/identity_/connect/token"

	return nil
}
