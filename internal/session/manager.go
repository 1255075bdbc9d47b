// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/taibuivan/authgate/internal/backend"
	"github.com/taibuivan/authgate/internal/platform/constants"
	"github.com/taibuivan/authgate/internal/platform/ctxutil"
	"github.com/taibuivan/authgate/internal/platform/sec"
)

// Refresher trades a refresh token for a new session.
type Refresher interface {
	RefreshSession(context context.Context, refreshToken string) (*backend.Session, error)
}

// RefreshFunc adapts a function to [Refresher].
type RefreshFunc func(context context.Context, refreshToken string) (*backend.Session, error)

// RefreshSession implements [Refresher].
func (fn RefreshFunc) RefreshSession(context context.Context, refreshToken string) (*backend.Session, error) {
	return fn(context, refreshToken)
}

// State is an authenticated request's view of its backend session.
type State struct {
	AccessToken string
	Claims      *sec.AccessClaims
	Refreshed   bool
}

// Manager loads the session pair, refreshing it when the access token is
// missing or about to expire.
//
// # Concurrency
//
// Manager holds no per-request state; every call re-reads the cookies.
type Manager struct {
	cookies   *Cookies
	refresher Refresher
	inspector *sec.TokenInspector
	margin    time.Duration
	now       func() time.Time
}

// NewManager constructs a [Manager].
func NewManager(cookies *Cookies, refresher Refresher, inspector *sec.TokenInspector) *Manager {
	return &Manager{
		cookies:   cookies,
		refresher: refresher,
		inspector: inspector,
		margin:    constants.SessionRefreshMargin,
		now:       time.Now,
	}
}

// Cookies returns the codec the manager writes through.
func (manager *Manager) Cookies() *Cookies {
	return manager.cookies
}

/*
Load returns the request's session, or nil when the request is anonymous.

Description: A valid access token that is not within the refresh margin is used
as is. Otherwise, if a refresh token exists, the backend is asked for a new
session and the pair is rewritten. A failed refresh clears the pair.

Parameters:
  - writer: http.ResponseWriter (receives rewritten or cleared cookies)
  - request: *http.Request

Returns:
  - *State: nil for anonymous requests
*/
func (manager *Manager) Load(writer http.ResponseWriter, request *http.Request) *State {
	context := request.Context()
	pair := manager.cookies.Read(request)
	if pair.Empty() {
		return nil
	}

	now := manager.now()
	var claims *sec.AccessClaims
	if pair.AccessToken != "" {
		inspected, err := manager.inspector.Inspect(pair.AccessToken)
		if err == nil {
			claims = inspected
			if !claims.ExpiresWithin(manager.margin, now) {
				return &State{AccessToken: pair.AccessToken, Claims: claims}
			}
		}
	}

	if pair.RefreshToken == "" {
		// Still usable for the few seconds left in the margin.
		if claims != nil && !claims.ExpiresWithin(0, now) {
			return &State{AccessToken: pair.AccessToken, Claims: claims}
		}
		manager.cookies.Clear(writer)
		return nil
	}

	refreshed, err := manager.refresher.RefreshSession(context, pair.RefreshToken)
	if err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "session_refresh_failed", slog.Any("error", err))
		manager.cookies.Clear(writer)
		return nil
	}

	manager.cookies.Write(writer, refreshed)

	state := &State{AccessToken: refreshed.AccessToken, Refreshed: true}
	if inspected, err := manager.inspector.Inspect(refreshed.AccessToken); err == nil {
		state.Claims = inspected
	} else {
		state.Claims = &sec.AccessClaims{Email: refreshed.User.Email}
		state.Claims.Subject = refreshed.User.ID
	}

	return state
}
