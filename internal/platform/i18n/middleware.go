// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package i18n

import (
	"net/http"

	"github.com/taibuivan/authgate/internal/platform/ctxutil"
)

// Middleware resolves the locale once per request and stores it in the context.
// A locale chosen through the query parameter is persisted as a cookie.
func Middleware(fallback string, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			locale, persist := Resolve(request, fallback)
			if persist {
				SetCookie(writer, locale, secure)
			}
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithLocale(request.Context(), locale)))
		})
	}
}
