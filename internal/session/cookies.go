// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session owns the backend session cookie pair and the PKCE flow cookie.

The pair (access + refresh token) is written by the OAuth/recovery code exchange
and by the route guard's refresh. It is distinct from the bridge cookie the
downstream application reads, which is minted from the pair's access token.
*/
package session

import (
	"net/http"
	"time"

	"github.com/taibuivan/authgate/internal/backend"
	"github.com/taibuivan/authgate/internal/platform/constants"
)

// defaultAccessLifetime is used when the backend omits expires_in.
const defaultAccessLifetime = time.Hour

// Pair is the backend session as carried by the browser.
type Pair struct {
	AccessToken  string
	RefreshToken string
}

// Empty reports whether neither token is present.
func (pair Pair) Empty() bool {
	return pair.AccessToken == "" && pair.RefreshToken == ""
}

// Cookies reads and writes the session cookies.
type Cookies struct {
	secure bool
}

// NewCookies creates a cookie codec. secure marks cookies HTTPS-only.
func NewCookies(secure bool) *Cookies {
	return &Cookies{secure: secure}
}

// Read returns the pair present on request.
func (cookies *Cookies) Read(request *http.Request) Pair {
	return Pair{
		AccessToken:  readCookie(request, constants.SessionAccessCookieName),
		RefreshToken: readCookie(request, constants.SessionRefreshCookieName),
	}
}

// Write stores session as the cookie pair.
func (cookies *Cookies) Write(writer http.ResponseWriter, session *backend.Session) {
	lifetime := session.Lifetime()
	if lifetime <= 0 {
		lifetime = defaultAccessLifetime
	}

	cookies.set(writer, constants.SessionAccessCookieName, session.AccessToken, lifetime)
	if session.RefreshToken != "" {
		cookies.set(writer, constants.SessionRefreshCookieName, session.RefreshToken, constants.SessionRefreshCookieMaxAge)
	}
}

// Clear expires both cookies of the pair.
func (cookies *Cookies) Clear(writer http.ResponseWriter) {
	cookies.expire(writer, constants.SessionAccessCookieName)
	cookies.expire(writer, constants.SessionRefreshCookieName)
}

// # Flow Cookies

// FlowKind separates PKCE flows so that starting one never orphans another.
type FlowKind string

const (
	FlowOAuth    FlowKind = "oauth"
	FlowSignup   FlowKind = "signup"
	FlowRecovery FlowKind = "recovery"
)

// ParseFlowKind maps a callback's flow parameter to a kind. Unknown values are OAuth.
func ParseFlowKind(value string) FlowKind {
	switch FlowKind(value) {
	case FlowSignup:
		return FlowSignup
	case FlowRecovery:
		return FlowRecovery
	}
	return FlowOAuth
}

// TTL is how long a flow of this kind stays redeemable.
func (kind FlowKind) TTL() time.Duration {
	if kind == FlowOAuth {
		return constants.FlowTTL
	}
	return constants.EmailFlowTTL
}

func (kind FlowKind) cookieName() string {
	switch kind {
	case FlowSignup:
		return constants.SignupFlowCookieName
	case FlowRecovery:
		return constants.RecoveryFlowCookieName
	}
	return constants.FlowCookieName
}

// WriteFlow remembers the pending PKCE flow id of kind.
func (cookies *Cookies) WriteFlow(writer http.ResponseWriter, kind FlowKind, flowID string) {
	cookies.set(writer, kind.cookieName(), flowID, kind.TTL())
}

// ReadFlow returns the pending PKCE flow id of kind, or "".
func (cookies *Cookies) ReadFlow(request *http.Request, kind FlowKind) string {
	return readCookie(request, kind.cookieName())
}

// ClearFlow forgets the pending PKCE flow of kind.
func (cookies *Cookies) ClearFlow(writer http.ResponseWriter, kind FlowKind) {
	cookies.expire(writer, kind.cookieName())
}

func (cookies *Cookies) set(writer http.ResponseWriter, name, value string, maxAge time.Duration) {
	http.SetCookie(writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   cookies.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (cookies *Cookies) expire(writer http.ResponseWriter, name string) {
	http.SetCookie(writer, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cookies.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func readCookie(request *http.Request, name string) string {
	cookie, err := request.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
