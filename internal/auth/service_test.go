// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/authgate/internal/auth"
	"github.com/taibuivan/authgate/internal/backend"
	"github.com/taibuivan/authgate/internal/identity"
	"github.com/taibuivan/authgate/internal/platform/apperr"
	"github.com/taibuivan/authgate/internal/platform/constants"
	"github.com/taibuivan/authgate/internal/platform/ctxutil"
)

// # Fakes

type fakeBackend struct {
	signInCalls   int
	signInEmail   string
	signInErr     error
	signUpParams  backend.SignUpParams
	signUpResult  *backend.SignUpResult
	signUpErr     error
	recoverParams backend.RecoverParams
	updateToken   string
	exchangeCode  string
	exchangeVerif string
	refreshCalls  int
}

func (fake *fakeBackend) SignInWithPassword(_ context.Context, email, _ string) (*backend.Session, error) {
	fake.signInCalls++
	fake.signInEmail = email
	if fake.signInErr != nil {
		return nil, fake.signInErr
	}
	return &backend.Session{
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresIn:    3600,
		User:         backend.User{ID: "user-1", Email: email},
	}, nil
}

func (fake *fakeBackend) SignUp(_ context.Context, params backend.SignUpParams) (*backend.SignUpResult, error) {
	fake.signUpParams = params
	if fake.signUpErr != nil {
		return nil, fake.signUpErr
	}
	if fake.signUpResult != nil {
		return fake.signUpResult, nil
	}
	return &backend.SignUpResult{User: backend.User{ID: "user-2", Email: params.Email}}, nil
}

func (fake *fakeBackend) AuthorizeURL(params backend.AuthorizeParams) string {
	query := url.Values{
		"provider":              {params.Provider},
		"redirect_to":           {params.RedirectTo},
		"code_challenge":        {params.CodeChallenge},
		"code_challenge_method": {params.Method},
	}
	return "https://backend.example/auth/v1/authorize?" + query.Encode()
}

func (fake *fakeBackend) ResetPasswordForEmail(_ context.Context, params backend.RecoverParams) error {
	fake.recoverParams = params
	return nil
}

func (fake *fakeBackend) UpdateUser(_ context.Context, accessToken string, _ backend.UserAttributes) (*backend.User, error) {
	fake.updateToken = accessToken
	return &backend.User{ID: "user-1"}, nil
}

func (fake *fakeBackend) ExchangeCodeForSession(_ context.Context, code, verifier string) (*backend.Session, error) {
	fake.exchangeCode = code
	fake.exchangeVerif = verifier
	return &backend.Session{AccessToken: "access", User: backend.User{ID: "user-1"}}, nil
}

func (fake *fakeBackend) RefreshSession(context.Context, string) (*backend.Session, error) {
	fake.refreshCalls++
	return &backend.Session{AccessToken: "fresh"}, nil
}

type fakeProfiles struct {
	emails   map[string]string
	inserted []backend.Profile
	token    string
	err      error
}

func (fake *fakeProfiles) FindEmailByUsername(_ context.Context, username string) (string, error) {
	email, ok := fake.emails[username]
	if !ok {
		return "", identity.ErrIdentifierNotFound
	}
	return email, nil
}

func (fake *fakeProfiles) InsertProfile(_ context.Context, accessToken string, profile backend.Profile) error {
	fake.token = accessToken
	if fake.err != nil {
		return fake.err
	}
	fake.inserted = append(fake.inserted, profile)
	return nil
}

func newService(client *fakeBackend, profiles *fakeProfiles, features auth.Features) (*auth.Service, *auth.MemoryFlowStore) {
	flows := auth.NewMemoryFlowStore()
	return auth.NewService(client, identity.NewResolver(profiles), profiles, flows, "/login", features), flows
}

func enContext() context.Context {
	return ctxutil.WithLocale(context.Background(), "en")
}

// # Sign-in

func TestSignInWithIdentifier(t *testing.T) {
	t.Run("email dispatches directly", func(t *testing.T) {
		client := &fakeBackend{}
		service, _ := newService(client, &fakeProfiles{}, auth.Features{})

		session, err := service.SignInWithIdentifier(enContext(), "user@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, "access", session.AccessToken)
		assert.Equal(t, "user@example.com", client.signInEmail)
	})

	t.Run("username resolves to email", func(t *testing.T) {
		client := &fakeBackend{}
		profiles := &fakeProfiles{emails: map[string]string{"alice": "alice@example.com"}}
		service, _ := newService(client, profiles, auth.Features{})

		_, err := service.SignInWithIdentifier(enContext(), "alice", "password123")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", client.signInEmail)
	})

	t.Run("username miss never signs in", func(t *testing.T) {
		client := &fakeBackend{}
		service, _ := newService(client, &fakeProfiles{}, auth.Features{})

		_, err := service.SignInWithIdentifier(enContext(), "ghost", "password123")
		require.Error(t, err)
		assert.True(t, apperr.HasCode(err, apperr.CodeIdentifierNotFound))
		assert.Equal(t, "Username not found", err.Error())
		assert.Zero(t, client.signInCalls)
	})

	t.Run("short password rejected before network", func(t *testing.T) {
		client := &fakeBackend{}
		service, _ := newService(client, &fakeProfiles{}, auth.Features{})

		_, err := service.SignInWithIdentifier(enContext(), "user@example.com", "short")
		require.Error(t, err)
		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, apperr.CodeValidation, appError.Code)
		require.Len(t, appError.Details, 1)
		assert.Equal(t, "password", appError.Details[0].Field)
		assert.Zero(t, client.signInCalls)
	})

	t.Run("malformed email rejected", func(t *testing.T) {
		client := &fakeBackend{}
		service, _ := newService(client, &fakeProfiles{}, auth.Features{})

		_, err := service.SignInWithIdentifier(enContext(), "user@nowhere", "password123")
		assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
		assert.Zero(t, client.signInCalls)
	})

	t.Run("backend rejection passes through", func(t *testing.T) {
		client := &fakeBackend{signInErr: &backend.AuthError{Status: 400, Code: "invalid_credentials", Message: "Invalid login credentials"}}
		service, _ := newService(client, &fakeProfiles{}, auth.Features{})

		_, err := service.SignInWithIdentifier(enContext(), "user@example.com", "password123")
		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, apperr.CodeBackendAuth, appError.Code)
		assert.Equal(t, "Invalid login credentials", appError.Message)
		assert.Equal(t, 400, appError.HTTPStatus)
	})

	t.Run("transport failure is internal", func(t *testing.T) {
		client := &fakeBackend{signInErr: errors.New("dial tcp: refused")}
		service, _ := newService(client, &fakeProfiles{}, auth.Features{})

		_, err := service.SignIn(enContext(), "user@example.com", "password123")
		assert.True(t, apperr.HasCode(err, apperr.CodeInternal))
	})
}

// # Sign-up

func TestSignUp(t *testing.T) {
	t.Run("links the profile and binds a flow", func(t *testing.T) {
		client := &fakeBackend{}
		profiles := &fakeProfiles{}
		service, flows := newService(client, profiles, auth.Features{})

		pending, err := service.SignUp(enContext(), auth.SignUpInput{
			Email:    "new@example.com",
			Username: "newbie",
			Password: "password123",
			Origin:   "https://app.example",
		})
		require.NoError(t, err)

		assert.Equal(t, "user-2", pending.User.ID)
		assert.Equal(t, "https://app.example/login/auth/callback?flow=signup&next=%2Fauth-success", client.signUpParams.RedirectTo)
		assert.Equal(t, "newbie", client.signUpParams.Data["username"])
		assert.NotEmpty(t, client.signUpParams.CodeChallenge)
		require.Len(t, profiles.inserted, 1)
		assert.Equal(t, backend.Profile{ID: "user-2", Email: "new@example.com", Username: "newbie"}, profiles.inserted[0])
		assert.Empty(t, profiles.token)
		assert.Equal(t, 1, flows.Len())
	})

	t.Run("uses the new session token when confirmation is off", func(t *testing.T) {
		client := &fakeBackend{signUpResult: &backend.SignUpResult{
			User:    backend.User{ID: "user-3"},
			Session: &backend.Session{AccessToken: "fresh-token"},
		}}
		profiles := &fakeProfiles{}
		service, _ := newService(client, profiles, auth.Features{})

		_, err := service.SignUp(enContext(), auth.SignUpInput{Email: "a@b.co", Username: "ab", Password: "password123"})
		require.NoError(t, err)
		assert.Equal(t, "fresh-token", profiles.token)
	})

	t.Run("profile failure is surfaced", func(t *testing.T) {
		profiles := &fakeProfiles{err: apperr.Conflict("duplicate")}
		service, _ := newService(&fakeBackend{}, profiles, auth.Features{})

		_, err := service.SignUp(enContext(), auth.SignUpInput{Email: "a@b.co", Username: "taken", Password: "password123"})
		assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
	})

	t.Run("backend rejection skips the profile write", func(t *testing.T) {
		client := &fakeBackend{signUpErr: &backend.AuthError{Status: 422, Message: "User already registered"}}
		profiles := &fakeProfiles{}
		service, _ := newService(client, profiles, auth.Features{})

		_, err := service.SignUp(enContext(), auth.SignUpInput{Email: "a@b.co", Username: "ab", Password: "password123"})
		assert.Equal(t, "User already registered", err.Error())
		assert.Empty(t, profiles.inserted)
	})
}

// # OAuth

func TestSignInWithOAuth(t *testing.T) {
	t.Run("disabled provider", func(t *testing.T) {
		service, flows := newService(&fakeBackend{}, &fakeProfiles{}, auth.Features{GitHub: false})

		_, err := service.SignInWithOAuth(enContext(), "github", "https://app.example")
		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, 404, appError.HTTPStatus)
		assert.Zero(t, flows.Len())
	})

	t.Run("unknown provider", func(t *testing.T) {
		service, _ := newService(&fakeBackend{}, &fakeProfiles{}, auth.Features{GitHub: true, Google: true})

		_, err := service.SignInWithOAuth(enContext(), "gitlab", "https://app.example")
		assert.Error(t, err)
	})

	t.Run("enabled provider round-trips through the callback", func(t *testing.T) {
		client := &fakeBackend{}
		service, _ := newService(client, &fakeProfiles{}, auth.Features{GitHub: true})

		outbound, err := service.SignInWithOAuth(enContext(), "GitHub", "https://app.example")
		require.NoError(t, err)

		parsed, err := url.Parse(outbound.URL)
		require.NoError(t, err)
		assert.Equal(t, "github", parsed.Query().Get("provider"))
		assert.Equal(t, "https://app.example/login/auth/callback?flow=oauth&next=%2Fauth-success", parsed.Query().Get("redirect_to"))
		challenge := parsed.Query().Get("code_challenge")
		assert.Len(t, challenge, 43)

		_, err = service.ExchangeCode(enContext(), "auth-code", outbound.FlowID)
		require.NoError(t, err)
		assert.Equal(t, "auth-code", client.exchangeCode)
		assert.Len(t, client.exchangeVerif, 43)

		_, err = service.ExchangeCode(enContext(), "auth-code", outbound.FlowID)
		assert.ErrorIs(t, err, auth.ErrFlowNotFound)
	})
}

func TestExchangeCode_WithoutFlow(t *testing.T) {
	client := &fakeBackend{}
	service, _ := newService(client, &fakeProfiles{}, auth.Features{})

	_, err := service.ExchangeCode(enContext(), "auth-code", "")
	assert.ErrorIs(t, err, auth.ErrFlowNotFound)
	assert.Empty(t, client.exchangeCode)
}

// # Recovery

func TestResetPasswordForEmail(t *testing.T) {
	client := &fakeBackend{}
	service, flows := newService(client, &fakeProfiles{}, auth.Features{})

	flowID, err := service.ResetPasswordForEmail(enContext(), "a@b.co", "https://app.example")
	require.NoError(t, err)
	assert.NotEmpty(t, flowID)
	assert.Equal(t, "a@b.co", client.recoverParams.Email)
	assert.Equal(t, "https://app.example/login/auth/callback?flow=recovery&next=%2Fupdate-password", client.recoverParams.RedirectTo)
	assert.Equal(t, 1, flows.Len())
}

type recordingFlows struct {
	*auth.MemoryFlowStore
	ttls []time.Duration
}

func (flows *recordingFlows) Save(context context.Context, flowID, verifier string, ttl time.Duration) error {
	flows.ttls = append(flows.ttls, ttl)
	return flows.MemoryFlowStore.Save(context, flowID, verifier, ttl)
}

func TestFlowLifetimes(t *testing.T) {
	client := &fakeBackend{}
	flows := &recordingFlows{MemoryFlowStore: auth.NewMemoryFlowStore()}
	service := auth.NewService(client, identity.NewResolver(&fakeProfiles{}), &fakeProfiles{}, flows, "/login", auth.Features{GitHub: true})

	recoveryID, err := service.ResetPasswordForEmail(enContext(), "a@b.co", "https://app.example")
	require.NoError(t, err)
	_, err = service.SignUp(enContext(), auth.SignUpInput{Email: "new@example.com", Username: "newbie", Password: "password123", Origin: "https://app.example"})
	require.NoError(t, err)
	_, err = service.SignInWithOAuth(enContext(), "github", "https://app.example")
	require.NoError(t, err)

	assert.Equal(t, []time.Duration{constants.EmailFlowTTL, constants.EmailFlowTTL, constants.FlowTTL}, flows.ttls)

	// Later flows leave the recovery verifier redeemable.
	_, err = service.ExchangeCode(enContext(), "recovery-code", recoveryID)
	require.NoError(t, err)
	assert.Equal(t, "recovery-code", client.exchangeCode)
}

func TestUpdatePassword(t *testing.T) {
	client := &fakeBackend{}
	service, _ := newService(client, &fakeProfiles{}, auth.Features{})

	_, err := service.UpdatePassword(enContext(), "", "password123")
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))

	user, err := service.UpdatePassword(enContext(), "user-token", "password123")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "user-token", client.updateToken)
}

func TestRefresh(t *testing.T) {
	client := &fakeBackend{}
	service, _ := newService(client, &fakeProfiles{}, auth.Features{})

	session, err := service.Refresh(enContext(), "refresh")
	require.NoError(t, err)
	assert.Equal(t, "fresh", session.AccessToken)
	assert.Equal(t, 1, client.refreshCalls)
}
