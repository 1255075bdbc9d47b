// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package bridge converts a backend access token into the httpOnly cookie that
server-rendered pages and the downstream application read.

Architecture:

  - Writer: the only code path that sets the bridge cookie.
  - Handler: POST /api/set-auth-cookie and the GET /auth-success handoff.
  - Client: a Go caller for the endpoint, used by services that mint cookies remotely.

The bridge never validates the token it is handed; the backend remains the
authority when the token is later used.
*/
package bridge

import (
	"net/http"

	"github.com/taibuivan/authgate/internal/platform/constants"
)

// Writer sets the bridge cookie.
type Writer struct {
	secure bool
}

// NewWriter creates a [Writer]. secure marks the cookie HTTPS-only.
func NewWriter(secure bool) *Writer {
	return &Writer{secure: secure}
}

// SetCookie writes token as the bridge cookie. A later call in the same
// browser replaces the earlier value.
func (writer *Writer) SetCookie(response http.ResponseWriter, token string) {
	http.SetCookie(response, &http.Cookie{
		Name:     constants.BridgeCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(constants.BridgeCookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   writer.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
