// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package backend is the gateway's client for the identity backend.

The backend exposes two HTTP surfaces behind one base URL: the auth API under
/auth/v1 (sessions, sign-up, OAuth, recovery, admin users) and the data API
under /rest/v1 (the profiles table). Every call carries the project's
`apikey` header and an `Authorization` bearer that is either the anon key, a
user's access token, or the service role key.

Error Model:

  - Non-2xx responses become a typed [*AuthError] carrying the status and the
    backend's verbatim message.
  - Transport failures are plain wrapped errors.
  - [ToAppError] maps both onto the gateway error taxonomy.
*/
package backend

import (
	"context"
	"net/http"
	"strings"

	"github.com/taibuivan/authgate/internal/platform/constants"
)

// Config holds everything needed to build a [Client].
type Config struct {
	BaseURL        string
	AnonKey        string
	ServiceRoleKey string

	// HTTPClient overrides the default client; tests point it at httptest servers.
	HTTPClient *http.Client

	// Events receives auth lifecycle notifications. A private hub is created when nil.
	Events *Events
}

// Client talks to the backend auth and data APIs.
//
// # Concurrency
//
// Client is safe for concurrent use; it holds no per-request state.
type Client struct {
	baseURL        string
	anonKey        string
	serviceRoleKey string
	httpClient     *http.Client
	events         *Events
}

// NewClient constructs a [Client] from cfg.
func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: constants.BackendTimeout}
	}

	events := cfg.Events
	if events == nil {
		events = NewEvents()
	}

	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		anonKey:        cfg.AnonKey,
		serviceRoleKey: strings.TrimSpace(cfg.ServiceRoleKey),
		httpClient:     httpClient,
		events:         events,
	}
}

// BaseURL returns the backend base URL without a trailing slash.
func (client *Client) BaseURL() string {
	return client.baseURL
}

// HasServiceRole reports whether privileged admin calls can be made.
func (client *Client) HasServiceRole() bool {
	return client.serviceRoleKey != ""
}

// Events returns the hub this client publishes to.
func (client *Client) Events() *Events {
	return client.events
}

// Ping checks that the auth API answers.
func (client *Client) Ping(ctx context.Context) error {
	response, err := client.doRequest(ctx, http.MethodGet, "/auth/v1/health", nil, nil, client.anon(), nil)
	if err != nil {
		return err
	}
	return decodeJSON(response, nil)
}
