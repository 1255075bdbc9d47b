// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/authgate/internal/auth"
	"github.com/taibuivan/authgate/internal/bridge"
	"github.com/taibuivan/authgate/internal/platform/constants"
	"github.com/taibuivan/authgate/internal/platform/ctxutil"
	"github.com/taibuivan/authgate/internal/platform/sec"
	"github.com/taibuivan/authgate/internal/redirect"
	"github.com/taibuivan/authgate/internal/session"
)

type fakeLoader struct {
	state *session.State
}

func (loader fakeLoader) Load(http.ResponseWriter, *http.Request) *session.State {
	return loader.state
}

func signedIn() *session.State {
	claims := &sec.AccessClaims{Email: "a@b.co"}
	claims.Subject = "user-1"
	return &session.State{AccessToken: "user-token", Claims: claims}
}

type testServer struct {
	router  http.Handler
	service *auth.Service
	backend *fakeBackend
}

func newTestServer(client *fakeBackend, profiles *fakeProfiles, loader auth.SessionLoader, features auth.Features) *testServer {
	service, _ := newService(client, profiles, features)
	handler := auth.NewHandler(service, loader, session.NewCookies(false), bridge.NewWriter(false), redirect.OriginPolicy{}, "/login", "/studio/")

	router := chi.NewRouter()
	router.Route("/login", handler.Routes)
	return &testServer{router: router, service: service, backend: client}
}

func (server *testServer) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var request *http.Request
	if body == "" {
		request = httptest.NewRequest(method, path, nil)
	} else {
		request = httptest.NewRequest(method, path, strings.NewReader(body))
		request.Header.Set(constants.HeaderContentType, "application/json")
	}
	request.Host = "app.example"
	for i := 0; i+1 < len(headers); i += 2 {
		request.Header.Set(headers[i], headers[i+1])
	}
	request = request.WithContext(ctxutil.WithLocale(request.Context(), "en"))

	recorder := httptest.NewRecorder()
	server.router.ServeHTTP(recorder, request)
	return recorder
}

func cookieNamed(recorder *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func decode(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	return payload
}

func TestHandler_SignIn(t *testing.T) {
	t.Run("success writes both cookies", func(t *testing.T) {
		server := newTestServer(&fakeBackend{}, &fakeProfiles{}, fakeLoader{}, auth.Features{})

		recorder := server.do(http.MethodPost, "/login/api/auth/sign-in", `{"identifier":"user@example.com","password":"password123"}`)
		require.Equal(t, http.StatusOK, recorder.Code)

		payload := decode(t, recorder)
		assert.Equal(t, true, payload["success"])
		assert.Equal(t, "/studio/", payload["redirect"])

		bridgeCookie := cookieNamed(recorder, constants.BridgeCookieName)
		require.NotNil(t, bridgeCookie)
		assert.Equal(t, "access", bridgeCookie.Value)
		assert.NotNil(t, cookieNamed(recorder, constants.SessionAccessCookieName))
		assert.NotNil(t, cookieNamed(recorder, constants.SessionRefreshCookieName))
	})

	t.Run("short password", func(t *testing.T) {
		client := &fakeBackend{}
		server := newTestServer(client, &fakeProfiles{}, fakeLoader{}, auth.Features{})

		recorder := server.do(http.MethodPost, "/login/api/auth/sign-in", `{"identifier":"user@example.com","password":"short"}`)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, "Validation failed", decode(t, recorder)["error"])
		assert.Zero(t, client.signInCalls)
		assert.Nil(t, cookieNamed(recorder, constants.BridgeCookieName))
	})

	t.Run("unknown username", func(t *testing.T) {
		client := &fakeBackend{}
		server := newTestServer(client, &fakeProfiles{}, fakeLoader{}, auth.Features{})

		recorder := server.do(http.MethodPost, "/login/api/auth/sign-in", `{"identifier":"ghost","password":"password123"}`)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.Equal(t, "Username not found", decode(t, recorder)["error"])
		assert.Zero(t, client.signInCalls)
	})

	t.Run("malformed body", func(t *testing.T) {
		server := newTestServer(&fakeBackend{}, &fakeProfiles{}, fakeLoader{}, auth.Features{})

		recorder := server.do(http.MethodPost, "/login/api/auth/sign-in", `{"identifier":`)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestHandler_SignUp(t *testing.T) {
	t.Run("pending with flow cookie", func(t *testing.T) {
		profiles := &fakeProfiles{}
		server := newTestServer(&fakeBackend{}, profiles, fakeLoader{}, auth.Features{})

		recorder := server.do(http.MethodPost, "/login/api/auth/sign-up",
			`{"email":"new@example.com","username":"newbie","password":"password123","confirm_password":"password123"}`)
		require.Equal(t, http.StatusCreated, recorder.Code)

		payload := decode(t, recorder)
		assert.Equal(t, "pending", payload["status"])
		assert.Equal(t, "/login/verify-email", payload["redirect"])
		assert.NotNil(t, cookieNamed(recorder, constants.SignupFlowCookieName))
		assert.Nil(t, cookieNamed(recorder, constants.FlowCookieName))
		assert.Len(t, profiles.inserted, 1)
		assert.Equal(t, "http://app.example/login/auth/callback?flow=signup&next=%2Fauth-success", server.backend.signUpParams.RedirectTo)
	})

	t.Run("mismatched confirmation", func(t *testing.T) {
		client := &fakeBackend{}
		server := newTestServer(client, &fakeProfiles{}, fakeLoader{}, auth.Features{})

		recorder := server.do(http.MethodPost, "/login/api/auth/sign-up",
			`{"email":"new@example.com","username":"newbie","password":"password123","confirm_password":"password124"}`)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		details, ok := decode(t, recorder)["details"].([]any)
		require.True(t, ok)
		require.Len(t, details, 1)
		assert.Equal(t, "confirm_password", details[0].(map[string]any)["field"])
		assert.Empty(t, client.signUpParams.Email)
	})
}

func TestHandler_OAuth(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		server := newTestServer(&fakeBackend{}, &fakeProfiles{}, fakeLoader{}, auth.Features{Google: true})

		recorder := server.do(http.MethodGet, "/login/api/auth/oauth/google", "")
		assert.Equal(t, http.StatusFound, recorder.Code)
		assert.True(t, strings.HasPrefix(recorder.Header().Get("Location"), "https://backend.example/auth/v1/authorize?"))

		flow := cookieNamed(recorder, constants.FlowCookieName)
		require.NotNil(t, flow)
		assert.True(t, flow.HttpOnly)
	})

	t.Run("disabled", func(t *testing.T) {
		server := newTestServer(&fakeBackend{}, &fakeProfiles{}, fakeLoader{}, auth.Features{})

		recorder := server.do(http.MethodGet, "/login/api/auth/oauth/google", "")
		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.Nil(t, cookieNamed(recorder, constants.FlowCookieName))
	})
}

func TestHandler_ResetPassword(t *testing.T) {
	server := newTestServer(&fakeBackend{}, &fakeProfiles{}, fakeLoader{}, auth.Features{})

	recorder := server.do(http.MethodPost, "/login/api/auth/reset-password", `{"email":"a@b.co"}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "sent", decode(t, recorder)["status"])
	assert.Equal(t, "a@b.co", server.backend.recoverParams.Email)

	flow := cookieNamed(recorder, constants.RecoveryFlowCookieName)
	require.NotNil(t, flow)
	assert.Equal(t, int(constants.EmailFlowTTL.Seconds()), flow.MaxAge)

	recorder = server.do(http.MethodPost, "/login/api/auth/reset-password", `{"email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandler_ResetPasswordIgnoresForwardedHost(t *testing.T) {
	server := newTestServer(&fakeBackend{}, &fakeProfiles{}, fakeLoader{}, auth.Features{})

	recorder := server.do(http.MethodPost, "/login/api/auth/reset-password", `{"email":"a@b.co"}`,
		"X-Forwarded-Host", "evil.example",
		"X-Forwarded-Proto", "https",
	)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "http://app.example/login/auth/callback?flow=recovery&next=%2Fupdate-password", server.backend.recoverParams.RedirectTo)
}

func TestHandler_OAuthKeepsPendingRecovery(t *testing.T) {
	server := newTestServer(&fakeBackend{}, &fakeProfiles{}, fakeLoader{}, auth.Features{GitHub: true})

	recovery := cookieNamed(server.do(http.MethodPost, "/login/api/auth/reset-password", `{"email":"a@b.co"}`), constants.RecoveryFlowCookieName)
	require.NotNil(t, recovery)

	recorder := server.do(http.MethodGet, "/login/api/auth/oauth/github", "")
	require.Equal(t, http.StatusFound, recorder.Code)
	require.NotNil(t, cookieNamed(recorder, constants.FlowCookieName))
	assert.Nil(t, cookieNamed(recorder, constants.RecoveryFlowCookieName))

	_, err := server.service.ExchangeCode(enContext(), "recovery-code", recovery.Value)
	require.NoError(t, err)
	assert.Equal(t, "recovery-code", server.backend.exchangeCode)
}

func TestHandler_UpdatePassword(t *testing.T) {
	body := `{"password":"password123","confirm_password":"password123"}`

	t.Run("requires a session", func(t *testing.T) {
		server := newTestServer(&fakeBackend{}, &fakeProfiles{}, fakeLoader{}, auth.Features{})

		recorder := server.do(http.MethodPost, "/login/api/auth/update-password", body)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Equal(t, "No valid session found", decode(t, recorder)["error"])
	})

	t.Run("updates with the session token", func(t *testing.T) {
		server := newTestServer(&fakeBackend{}, &fakeProfiles{}, fakeLoader{state: signedIn()}, auth.Features{})

		recorder := server.do(http.MethodPost, "/login/api/auth/update-password", body)
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "updated", decode(t, recorder)["status"])
		assert.Equal(t, "user-token", server.backend.updateToken)
	})
}

func TestHandler_UpdatePasswordPage(t *testing.T) {
	anonymous := newTestServer(&fakeBackend{}, &fakeProfiles{}, fakeLoader{}, auth.Features{})
	recorder := anonymous.do(http.MethodGet, "/login/update-password", "")
	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/login", recorder.Header().Get("Location"))

	authenticated := newTestServer(&fakeBackend{}, &fakeProfiles{}, fakeLoader{state: signedIn()}, auth.Features{})
	recorder = authenticated.do(http.MethodGet, "/login/update-password", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	user := decode(t, recorder)["user"].(map[string]any)
	assert.Equal(t, "user-1", user["id"])
	assert.Equal(t, "a@b.co", user["email"])
}

func TestHandler_Features(t *testing.T) {
	server := newTestServer(&fakeBackend{}, &fakeProfiles{}, fakeLoader{}, auth.Features{GitHub: true, AdminCreate: true})

	recorder := server.do(http.MethodGet, "/login/api/features", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	payload := decode(t, recorder)
	assert.Equal(t, true, payload["github"])
	assert.Equal(t, false, payload["google"])
	assert.Equal(t, true, payload["admin_create"])
}
