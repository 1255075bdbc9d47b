// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the credential authenticator and its HTTP surface.

Architecture:

  - Service: sign-in by email, username or either; sign-up with profile linking;
    OAuth redirects; password recovery; code exchange and refresh.
  - FlowStore: PKCE verifiers waiting for their callback (memory or Redis).
  - Handler: JSON endpoints under the mount prefix.

All session material comes from the backend. The gateway never hashes or checks
passwords itself.
*/
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/taibuivan/authgate/internal/backend"
	"github.com/taibuivan/authgate/internal/identity"
	"github.com/taibuivan/authgate/internal/platform/apperr"
	"github.com/taibuivan/authgate/internal/platform/constants"
	"github.com/taibuivan/authgate/internal/platform/ctxutil"
	"github.com/taibuivan/authgate/internal/platform/i18n"
	"github.com/taibuivan/authgate/internal/platform/sec"
	"github.com/taibuivan/authgate/internal/platform/validate"
	"github.com/taibuivan/authgate/internal/redirect"
	"github.com/taibuivan/authgate/internal/session"
)

// # Dependencies

// Backend is the subset of the backend client the service drives.
type Backend interface {
	SignInWithPassword(context context.Context, email, password string) (*backend.Session, error)
	SignUp(context context.Context, params backend.SignUpParams) (*backend.SignUpResult, error)
	AuthorizeURL(params backend.AuthorizeParams) string
	ResetPasswordForEmail(context context.Context, params backend.RecoverParams) error
	UpdateUser(context context.Context, accessToken string, attributes backend.UserAttributes) (*backend.User, error)
	ExchangeCodeForSession(context context.Context, authCode, codeVerifier string) (*backend.Session, error)
	RefreshSession(context context.Context, refreshToken string) (*backend.Session, error)
}

var _ Backend = (*backend.Client)(nil)

// OAuth providers.
const (
	ProviderGitHub = "github"
	ProviderGoogle = "google"
)

// Features are the operator switches exposed to the sign-in page.
type Features struct {
	GitHub      bool `json:"github"`
	Google      bool `json:"google"`
	AdminCreate bool `json:"admin_create"`
}

// ProviderEnabled reports whether provider may be used for OAuth.
func (features Features) ProviderEnabled(provider string) bool {
	switch provider {
	case ProviderGitHub:
		return features.GitHub
	case ProviderGoogle:
		return features.Google
	}
	return false
}

// Service implements the credential authenticator.
type Service struct {
	backend  Backend
	resolver *identity.Resolver
	profiles identity.ProfileStore
	flows    FlowStore
	prefix   string
	features Features
}

// NewService constructs a new [Service].
func NewService(
	client Backend,
	resolver *identity.Resolver,
	profiles identity.ProfileStore,
	flows FlowStore,
	prefix string,
	features Features,
) *Service {
	return &Service{
		backend:  client,
		resolver: resolver,
		profiles: profiles,
		flows:    flows,
		prefix:   prefix,
		features: features,
	}
}

// Features returns the configured switches.
func (service *Service) Features() Features {
	return service.features
}

// # Sign-in

// SignIn authenticates an email and password.
func (service *Service) SignIn(context context.Context, email, password string) (*backend.Session, error) {
	session, err := service.backend.SignInWithPassword(context, email, password)
	if err != nil {
		return nil, backend.ToAppError(err)
	}
	return session, nil
}

/*
SignInWithUsername resolves username to its email and then signs in.

Description: A resolution miss returns IDENTIFIER_NOT_FOUND and the backend
sign-in is never attempted.

Parameters:
  - context: context.Context
  - username: string
  - password: string

Returns:
  - *backend.Session: The established session
  - error: IdentifierNotFound, BackendAuth or Internal
*/
func (service *Service) SignInWithUsername(context context.Context, username, password string) (*backend.Session, error) {
	email, err := service.resolver.ResolveToEmail(context, username)
	if err != nil {
		if errors.Is(err, identity.ErrIdentifierNotFound) {
			return nil, apperr.IdentifierNotFound(i18n.T(ctxutil.GetLocale(context), i18n.KeyUsernameNotFound))
		}
		return nil, backend.ToAppError(err)
	}

	return service.SignIn(context, email, password)
}

// SignInWithIdentifier classifies identifier, checks its shape and dispatches.
func (service *Service) SignInWithIdentifier(context context.Context, identifier, password string) (*backend.Session, error) {
	parsed := identity.Parse(identifier)

	v := validate.New(ctxutil.GetLocale(context))
	v.Required("identifier", parsed.Value)
	if parsed.Kind == identity.KindEmail {
		v.Email("identifier", parsed.Value)
	} else {
		v.Username("identifier", parsed.Value)
	}
	v.Required("password", password).Password("password", password)
	if err := v.Err(); err != nil {
		return nil, err
	}

	if parsed.Kind == identity.KindEmail {
		return service.SignIn(context, parsed.Value, password)
	}
	return service.SignInWithUsername(context, parsed.Value, password)
}

// # Sign-up

// SignUpInput holds a new account's details.
type SignUpInput struct {
	Email    string
	Username string
	Password string
	Origin   string
}

// Pending is a sign-up waiting for email confirmation.
type Pending struct {
	User backend.User

	// FlowID names the verifier the confirmation link is exchanged with.
	FlowID string
}

/*
SignUp registers the account and links its username.

Description: The backend sends a confirmation email whose link returns through
the callback with next=/auth-success. The profile row is written right after.
There is no rollback: when the profile write fails the backend user remains and
the error is returned.

Parameters:
  - context: context.Context
  - input: SignUpInput

Returns:
  - *Pending: The created user and its flow id
  - error: BackendAuth, Conflict (username taken) or Internal
*/
func (service *Service) SignUp(context context.Context, input SignUpInput) (*Pending, error) {
	logger := ctxutil.GetLogger(context)

	flowID, pkce, err := service.startFlow(context, session.FlowSignup)
	if err != nil {
		return nil, err
	}

	result, err := service.backend.SignUp(context, backend.SignUpParams{
		Email:         input.Email,
		Password:      input.Password,
		RedirectTo:    redirect.AuthCallbackURL(input.Origin, service.prefix, constants.SuccessPath, session.FlowSignup),
		Data:          map[string]any{"username": input.Username},
		CodeChallenge: pkce.Challenge,
		Method:        pkce.Method,
	})
	if err != nil {
		return nil, backend.ToAppError(err)
	}

	var accessToken string
	if result.Session != nil {
		accessToken = result.Session.AccessToken
	}

	err = service.profiles.InsertProfile(context, accessToken, backend.Profile{
		ID:       result.User.ID,
		Email:    input.Email,
		Username: input.Username,
	})
	if err != nil {
		logger.ErrorContext(context, "signup_profile_link_failed",
			slog.String("user_id", result.User.ID),
			slog.Any("error", err),
		)
		return nil, backend.ToAppError(err)
	}

	return &Pending{User: result.User, FlowID: flowID}, nil
}

// # OAuth

// Redirect is an outbound redirect bound to a pending flow.
type Redirect struct {
	URL    string
	FlowID string
}

// SignInWithOAuth returns the backend authorize URL for an enabled provider.
func (service *Service) SignInWithOAuth(context context.Context, provider, origin string) (*Redirect, error) {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if !service.features.ProviderEnabled(provider) {
		return nil, apperr.FeatureDisabled(i18n.T(ctxutil.GetLocale(context), i18n.KeyProviderDisabled))
	}

	flowID, pkce, err := service.startFlow(context, session.FlowOAuth)
	if err != nil {
		return nil, err
	}

	target := service.backend.AuthorizeURL(backend.AuthorizeParams{
		Provider:      provider,
		RedirectTo:    redirect.AuthCallbackURL(origin, service.prefix, constants.SuccessPath, session.FlowOAuth),
		CodeChallenge: pkce.Challenge,
		Method:        pkce.Method,
	})

	return &Redirect{URL: target, FlowID: flowID}, nil
}

// # Recovery

// ResetPasswordForEmail sends a recovery link that lands on /update-password.
// The returned flow id must reach the browser for the link to be exchanged.
func (service *Service) ResetPasswordForEmail(context context.Context, email, origin string) (string, error) {
	flowID, pkce, err := service.startFlow(context, session.FlowRecovery)
	if err != nil {
		return "", err
	}

	err = service.backend.ResetPasswordForEmail(context, backend.RecoverParams{
		Email:         email,
		RedirectTo:    redirect.AuthCallbackURL(origin, service.prefix, constants.UpdatePasswordPath, session.FlowRecovery),
		CodeChallenge: pkce.Challenge,
		Method:        pkce.Method,
	})
	if err != nil {
		return "", backend.ToAppError(err)
	}

	return flowID, nil
}

// UpdatePassword changes the password of the session's user.
func (service *Service) UpdatePassword(context context.Context, accessToken, password string) (*backend.User, error) {
	if accessToken == "" {
		return nil, apperr.Unauthorized(i18n.T(ctxutil.GetLocale(context), i18n.KeyNoSessionFound))
	}

	user, err := service.backend.UpdateUser(context, accessToken, backend.UserAttributes{Password: password})
	if err != nil {
		return nil, backend.ToAppError(err)
	}
	return user, nil
}

// # Session Lifecycle

// ExchangeCode completes the flow named by flowID with code.
func (service *Service) ExchangeCode(context context.Context, code, flowID string) (*backend.Session, error) {
	if flowID == "" {
		return nil, ErrFlowNotFound
	}

	verifier, err := service.flows.Take(context, flowID)
	if err != nil {
		return nil, err
	}

	session, err := service.backend.ExchangeCodeForSession(context, code, verifier)
	if err != nil {
		return nil, backend.ToAppError(err)
	}
	return session, nil
}

// Refresh trades a refresh token for a new session.
func (service *Service) Refresh(context context.Context, refreshToken string) (*backend.Session, error) {
	session, err := service.backend.RefreshSession(context, refreshToken)
	if err != nil {
		return nil, backend.ToAppError(err)
	}
	return session, nil
}

// startFlow stores a fresh verifier for as long as a flow of kind may take to return.
func (service *Service) startFlow(context context.Context, kind session.FlowKind) (string, *sec.PKCE, error) {
	pkce, err := sec.NewPKCE()
	if err != nil {
		return "", nil, apperr.Internal(fmt.Errorf("auth_pkce_failed: %w", err))
	}

	flowID := uuid.NewString()
	if err := service.flows.Save(context, flowID, pkce.Verifier, kind.TTL()); err != nil {
		return "", nil, apperr.Internal(err)
	}

	return flowID, pkce, nil
}
