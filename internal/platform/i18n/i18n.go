// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package i18n resolves the request language and renders server-emitted messages.
//
// # Resolution Order
//
// The `lang` query parameter wins, then the locale cookie, then the
// Accept-Language header matched against the supported tags, then the default.
package i18n

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/taibuivan/authgate/internal/platform/constants"
)

// LangParam is the query parameter used to select a language.
const LangParam = "lang"

// Supported locales.
const (
	LocaleZH = "zh"
	LocaleEN = "en"
)

var (
	supportedTags = []language.Tag{language.Chinese, language.English}
	matcher       = language.NewMatcher(supportedTags)
)

// Supported returns the supported locale codes in preference order.
func Supported() []string {
	return []string{LocaleZH, LocaleEN}
}

// Parse maps a raw value onto a supported locale.
func Parse(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	switch base.String() {
	case LocaleZH:
		return LocaleZH, true
	case LocaleEN:
		return LocaleEN, true
	}
	return "", false
}

// Normalize returns value if supported, otherwise fallback.
func Normalize(value, fallback string) string {
	if locale, ok := Parse(value); ok {
		return locale
	}
	if locale, ok := Parse(fallback); ok {
		return locale
	}
	return LocaleZH
}

// Resolve determines the best locale for the request.
// The bool reports whether the query parameter chose it and should be persisted.
func Resolve(request *http.Request, fallback string) (string, bool) {
	if locale, ok := Parse(request.URL.Query().Get(LangParam)); ok {
		return locale, true
	}

	if cookie, err := request.Cookie(constants.LocaleCookieName); err == nil {
		if locale, ok := Parse(cookie.Value); ok {
			return locale, false
		}
	}

	if accept := strings.TrimSpace(request.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			_, index, confidence := matcher.Match(tags...)
			if confidence != language.No {
				return Supported()[index], false
			}
		}
	}

	return Normalize("", fallback), false
}

// Printer returns a message printer for locale.
func Printer(locale string) *message.Printer {
	if locale == LocaleEN {
		return message.NewPrinter(language.English)
	}
	return message.NewPrinter(language.Chinese)
}

// T renders key in locale.
func T(locale, key string, args ...any) string {
	return Printer(locale).Sprintf(key, args...)
}

// SetCookie persists the selected locale on the response.
func SetCookie(writer http.ResponseWriter, locale string, secure bool) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.LocaleCookieName,
		Value:    locale,
		Path:     "/",
		MaxAge:   int(constants.LocaleCookieMaxAge.Seconds()),
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
