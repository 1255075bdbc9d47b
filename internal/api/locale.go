// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/authgate/internal/platform/apperr"
	"github.com/taibuivan/authgate/internal/platform/ctxutil"
	"github.com/taibuivan/authgate/internal/platform/i18n"
	requestutil "github.com/taibuivan/authgate/internal/platform/request"
	"github.com/taibuivan/authgate/internal/platform/respond"
)

// LocaleHandler exposes the locale preference endpoints.
type LocaleHandler struct {
	secure bool
}

// NewLocaleHandler constructs a new [LocaleHandler].
func NewLocaleHandler(secure bool) *LocaleHandler {
	return &LocaleHandler{secure: secure}
}

// Routes registers the locale routes on router.
func (handler *LocaleHandler) Routes(router chi.Router) {
	router.Get("/api/locale", handler.getLocale)
	router.Post("/api/locale", handler.setLocale)
}

type localeResponse struct {
	Locale    string   `json:"locale"`
	Supported []string `json:"supported"`
}

type setLocaleRequest struct {
	Locale string `json:"locale"`
}

/*
GET /api/locale.

Description: Returns the locale resolved for this request.

Response:
  - 200: localeResponse
*/
func (handler *LocaleHandler) getLocale(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, localeResponse{
		Locale:    ctxutil.GetLocale(request.Context()),
		Supported: i18n.Supported(),
	})
}

/*
POST /api/locale.

Description: Persists the language preference in the locale cookie.

Request:
  - locale: "zh" | "en"

Response:
  - 200: localeResponse
  - 400: ErrValidation
*/
func (handler *LocaleHandler) setLocale(writer http.ResponseWriter, request *http.Request) {
	var input setLocaleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	locale, ok := i18n.Parse(input.Locale)
	if !ok {
		current := ctxutil.GetLocale(request.Context())
		respond.Error(writer, request, apperr.ValidationError(i18n.T(current, i18n.KeyUnsupportedLocale), apperr.FieldError{
			Field:   "locale",
			Message: i18n.T(current, i18n.KeyUnsupportedLocale),
		}))
		return
	}

	i18n.SetCookie(writer, locale, handler.secure)
	respond.OK(writer, localeResponse{Locale: locale, Supported: i18n.Supported()})
}
