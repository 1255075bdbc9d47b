// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package i18n_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/authgate/internal/platform/constants"
	"github.com/taibuivan/authgate/internal/platform/ctxutil"
	"github.com/taibuivan/authgate/internal/platform/i18n"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		cookie      string
		accept      string
		wantLocale  string
		wantPersist bool
	}{
		{"query wins", "/?lang=en", "zh", "zh-CN", "en", true},
		{"cookie before header", "/", "en", "zh-CN", "en", false},
		{"accept language", "/", "", "en-US,en;q=0.9", "en", false},
		{"accept language chinese region", "/", "", "zh-CN,zh;q=0.9", "zh", false},
		{"unsupported header falls back", "/", "", "fr-FR", "zh", false},
		{"invalid query ignored", "/?lang=xx", "", "", "zh", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.cookie != "" {
				request.AddCookie(&http.Cookie{Name: constants.LocaleCookieName, Value: tt.cookie})
			}
			if tt.accept != "" {
				request.Header.Set("Accept-Language", tt.accept)
			}

			locale, persist := i18n.Resolve(request, "zh")
			assert.Equal(t, tt.wantLocale, locale)
			assert.Equal(t, tt.wantPersist, persist)
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "en", i18n.Normalize("en-GB", "zh"))
	assert.Equal(t, "en", i18n.Normalize("", "en"))
	assert.Equal(t, "zh", i18n.Normalize("de", "de"))
}

func TestT(t *testing.T) {
	assert.Equal(t, "Passwords do not match", i18n.T("en", i18n.KeyPasswordMismatch))
	assert.Equal(t, "密码不匹配", i18n.T("zh", i18n.KeyPasswordMismatch))
	assert.Equal(t, "Password must be at least 8 characters", i18n.T("en", i18n.KeyPasswordTooShort, 8))
	assert.Equal(t, "密码至少需要8个字符", i18n.T("zh", i18n.KeyPasswordTooShort, 8))
}

func TestMiddleware(t *testing.T) {
	var seen string
	handler := i18n.Middleware("zh", false)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetLocale(request.Context())
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/?lang=en", nil))

	assert.Equal(t, "en", seen)
	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, constants.LocaleCookieName, cookies[0].Name)
	assert.Equal(t, "en", cookies[0].Value)
}
