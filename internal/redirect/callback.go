// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redirect

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/authgate/internal/backend"
	"github.com/taibuivan/authgate/internal/platform/constants"
	"github.com/taibuivan/authgate/internal/platform/ctxutil"
	"github.com/taibuivan/authgate/internal/platform/respond"
	"github.com/taibuivan/authgate/internal/session"
)

// CodeExchanger completes a PKCE flow.
type CodeExchanger interface {
	ExchangeCode(context context.Context, code, flowID string) (*backend.Session, error)
}

// RecoveryNotifier publishes the password recovery event.
type RecoveryNotifier interface {
	NotifyPasswordRecovery(user backend.User)
}

// CallbackHandler serves GET /auth/callback.
type CallbackHandler struct {
	exchanger CodeExchanger
	notifier  RecoveryNotifier
	cookies   *session.Cookies
	origins   OriginPolicy
	prefix    string
}

// NewCallbackHandler constructs a new [CallbackHandler].
func NewCallbackHandler(
	exchanger CodeExchanger,
	notifier RecoveryNotifier,
	cookies *session.Cookies,
	origins OriginPolicy,
	prefix string,
) *CallbackHandler {
	return &CallbackHandler{
		exchanger: exchanger,
		notifier:  notifier,
		cookies:   cookies,
		origins:   origins,
		prefix:    prefix,
	}
}

// Routes registers the callback route on a router mounted at the prefix.
func (handler *CallbackHandler) Routes(router chi.Router) {
	router.Get(constants.CallbackPath, handler.callback)
}

/*
GET /auth/callback?code=&next=&flow=.

Description: Exchanges the code for a backend session (once, when present),
stores it as the session cookie pair and redirects to next under the prefix.
Only the flow cookie of the named kind is read and cleared, so other pending
flows survive.
A failed exchange is logged and the redirect still happens; the destination
page is responsible for noticing the missing session.

Response:
  - 302: BuildCallbackURL(origin, prefix, next)
*/
func (handler *CallbackHandler) callback(writer http.ResponseWriter, request *http.Request) {
	context := request.Context()
	logger := ctxutil.GetLogger(context)

	query := request.URL.Query()
	next := SanitizeNext(query.Get("next"), handler.prefix)

	if code := strings.TrimSpace(query.Get("code")); code != "" {
		kind := session.ParseFlowKind(query.Get(constants.FlowQueryParam))
		flowID := handler.cookies.ReadFlow(request, kind)
		handler.cookies.ClearFlow(writer, kind)

		established, err := handler.exchanger.ExchangeCode(context, code, flowID)
		if err != nil {
			logger.WarnContext(context, "auth_callback_exchange_failed",
				slog.String("next", next),
				slog.String("flow", string(kind)),
				slog.Any("error", err),
			)
		} else {
			handler.cookies.Write(writer, established)
			if next == constants.UpdatePasswordPath {
				handler.notifier.NotifyPasswordRecovery(established.User)
			}
			logger.InfoContext(context, "auth_callback_exchanged",
				slog.String("user_id", established.User.ID),
				slog.String("next", next),
			)
		}
	} else if description := query.Get("error_description"); description != "" {
		logger.WarnContext(context, "auth_callback_provider_error",
			slog.String("error", query.Get("error")),
			slog.String("error_description", description),
		)
	}

	respond.Redirect(writer, request, BuildCallbackURL(handler.origins.Origin(request), handler.prefix, next))
}
