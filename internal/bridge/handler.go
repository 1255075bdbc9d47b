// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package bridge

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/authgate/internal/platform/apperr"
	"github.com/taibuivan/authgate/internal/platform/constants"
	"github.com/taibuivan/authgate/internal/platform/ctxutil"
	"github.com/taibuivan/authgate/internal/platform/i18n"
	requestutil "github.com/taibuivan/authgate/internal/platform/request"
	"github.com/taibuivan/authgate/internal/platform/respond"
	"github.com/taibuivan/authgate/internal/session"
)

// SessionLoader yields the request's backend session, or nil.
type SessionLoader interface {
	Load(writer http.ResponseWriter, request *http.Request) *session.State
}

// Handler implements the bridge endpoints.
type Handler struct {
	writer     *Writer
	sessions   SessionLoader
	studioPath string
}

// NewHandler constructs a new [Handler].
func NewHandler(writer *Writer, sessions SessionLoader, studioPath string) *Handler {
	return &Handler{writer: writer, sessions: sessions, studioPath: studioPath}
}

// Routes registers the bridge routes on a router mounted at the prefix.
func (handler *Handler) Routes(router chi.Router) {
	router.Post(constants.SetCookiePath, handler.setAuthCookie)
	router.Get(constants.SuccessPath, handler.authSuccess)
}

type setCookieRequest struct {
	Token string `json:"token"`
}

type setCookieResponse struct {
	Success bool `json:"success"`
}

/*
POST /api/set-auth-cookie.

Description: Stores the supplied access token in the httpOnly bridge cookie.
Only application/json bodies are accepted, which keeps cross-site forms from
planting a token.

Request:
  - token: string

Response:
  - 200: {success: true}
  - 400: ErrValidation (malformed JSON, missing or blank token)
  - 415: Content-Type is not application/json
  - 500: ErrInternal (recovered by middleware)
*/
func (handler *Handler) setAuthCookie(writer http.ResponseWriter, request *http.Request) {
	var input setCookieRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if strings.TrimSpace(input.Token) == "" {
		locale := ctxutil.GetLocale(request.Context())
		respond.Error(writer, request, apperr.ValidationError(i18n.T(locale, i18n.KeyTokenMissing)))
		return
	}

	handler.writer.SetCookie(writer, input.Token)
	respond.OK(writer, setCookieResponse{Success: true})
}

/*
GET /auth-success.

Description: Handoff after OAuth or email confirmation. Reads the backend
session established by the callback exchange, mints the bridge cookie from it
and sends the browser to the studio.

Response:
  - 302: studio path
  - 401: ErrUnauthorized when no session exists
*/
func (handler *Handler) authSuccess(writer http.ResponseWriter, request *http.Request) {
	state := handler.sessions.Load(writer, request)
	if state == nil {
		locale := ctxutil.GetLocale(request.Context())
		respond.Error(writer, request, apperr.Unauthorized(i18n.T(locale, i18n.KeyNoSessionFound)))
		return
	}

	handler.writer.SetCookie(writer, state.AccessToken)

	ctxutil.GetLogger(request.Context()).InfoContext(request.Context(), "bridge_cookie_minted",
		slog.String("user_id", state.Claims.UserID()),
		slog.Bool("refreshed", state.Refreshed),
	)

	respond.Redirect(writer, request, handler.studioPath)
}
