// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire gateway.

It defines default timeouts, rate limits, cookie names and the fixed route
segments that are shared between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Cookies: Bridge cookie, backend session pair, OAuth flow and locale cookies.
  - Routes: Logical destinations used by the redirect router and the guard.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "authgate"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 15 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second

	// BackendTimeout bounds every round-trip to the identity backend.
	BackendTimeout = 10 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 20.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 40

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Cookies

const (
	// BridgeCookieName carries the backend access token for server-rendered pages.
	BridgeCookieName = "sb-access-token"

	// BridgeCookieMaxAge is the fixed lifetime of the bridge cookie.
	BridgeCookieMaxAge = 8 * time.Hour

	// SessionAccessCookieName holds the access token obtained by the backend code exchange.
	SessionAccessCookieName = "sb-auth-token"

	// SessionRefreshCookieName holds the matching refresh token.
	SessionRefreshCookieName = "sb-refresh-token"

	// SessionRefreshCookieMaxAge is the lifetime of the refresh token cookie.
	SessionRefreshCookieMaxAge = 30 * 24 * time.Hour

	// FlowCookieName identifies a pending OAuth flow between redirect and callback.
	FlowCookieName = "sb-flow-id"

	// FlowTTL bounds how long an OAuth PKCE verifier waits for its callback.
	FlowTTL = 10 * time.Minute

	// SignupFlowCookieName identifies the flow behind a pending confirmation email.
	SignupFlowCookieName = "sb-signup-flow-id"

	// RecoveryFlowCookieName identifies the flow behind a pending recovery email.
	RecoveryFlowCookieName = "sb-recovery-flow-id"

	// EmailFlowTTL matches the backend's default email link lifetime.
	EmailFlowTTL = 1 * time.Hour

	// FlowQueryParam names the flow kind carried through the callback URL.
	FlowQueryParam = "flow"

	// LocaleCookieName stores the user's language preference.
	LocaleCookieName = "locale"

	// LocaleCookieMaxAge keeps the language preference for a year.
	LocaleCookieMaxAge = 365 * 24 * time.Hour
)

// # Routes

const (
	// RootPath is the site root the guard redirects away from.
	RootPath = "/"

	// StudioPath is the downstream application entry the guard sends signed-in users to.
	StudioPath = "/studio"

	// SuccessPath is the handoff page that converts a backend session into the bridge cookie.
	SuccessPath = "/auth-success"

	// UpdatePasswordPath is where password recovery links land.
	UpdatePasswordPath = "/update-password"

	// VerifyEmailPath is shown after sign-up while confirmation is pending.
	VerifyEmailPath = "/verify-email"

	// CallbackPath receives OAuth and recovery codes from the backend.
	CallbackPath = "/auth/callback"

	// SetCookiePath is the bridge endpoint.
	SetCookiePath = "/api/set-auth-cookie"
)

// # Session Refresh

const (
	// SessionRefreshMargin refreshes access tokens that expire within this window.
	SessionRefreshMargin = 60 * time.Second
)

// # HTTP Headers

const (
	HeaderXRequestID     = "X-Request-ID"
	HeaderXRealIP        = "X-Real-IP"
	HeaderXForwardedFor  = "X-Forwarded-For"
	HeaderXForwardedHost = "X-Forwarded-Host"
	HeaderXForwardedProt = "X-Forwarded-Proto"
	HeaderOrigin         = "Origin"
	HeaderContentType    = "Content-Type"

	// MIMEApplicationJSON is the only media type JSON endpoints accept.
	MIMEApplicationJSON = "application/json"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldSuccess = "success"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixFlow = "auth:pkce_flow:"
)
