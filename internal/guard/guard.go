// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package guard gates the site root, the sign-in prefix and the studio by
session presence.

Decision table (after the session has been loaded and, if needed, refreshed):

	path        session   outcome
	/           yes       302 /studio
	/           no        302 {prefix}
	{prefix}    any       pass
	/studio     any       pass

Requests outside the matched paths are not inspected at all. Nothing is cached
between requests.
*/
package guard

import (
	"net/http"
	"strings"

	"github.com/taibuivan/authgate/internal/platform/constants"
	"github.com/taibuivan/authgate/internal/platform/ctxutil"
	"github.com/taibuivan/authgate/internal/platform/respond"
	"github.com/taibuivan/authgate/internal/session"
)

// SessionLoader yields the request's backend session, or nil.
type SessionLoader interface {
	Load(writer http.ResponseWriter, request *http.Request) *session.State
}

// Guard is the route-gating middleware.
type Guard struct {
	sessions SessionLoader
	prefix   string
}

// New constructs a [Guard] for the given mount prefix.
func New(sessions SessionLoader, prefix string) *Guard {
	return &Guard{sessions: sessions, prefix: prefix}
}

// Matches reports whether path is gated.
func (guard *Guard) Matches(path string) bool {
	switch {
	case path == constants.RootPath:
		return true
	case guard.prefix != "" && (path == guard.prefix || path == guard.prefix+"/"):
		return true
	case path == constants.StudioPath || strings.HasPrefix(path, constants.StudioPath+"/"):
		return true
	}
	return false
}

// Middleware applies the decision table.
func (guard *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		path := request.URL.Path
		if !guard.Matches(path) {
			next.ServeHTTP(writer, request)
			return
		}

		state := guard.sessions.Load(writer, request)
		if state != nil {
			request = request.WithContext(ctxutil.WithSession(request.Context(), state.Claims))
		}

		if path == constants.RootPath {
			switch {
			case state != nil:
				respond.Redirect(writer, request, constants.StudioPath)
				return
			case guard.prefix != "":
				respond.Redirect(writer, request, guard.prefix)
				return
			}
		}

		next.ServeHTTP(writer, request)
	})
}
