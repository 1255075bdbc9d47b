// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package backend

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// # Token Grants

// SignInWithPassword exchanges an email and password for a session.
func (client *Client) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	session, err := client.tokenGrant(ctx, "password", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	client.emit(EventSignedIn, session.User)
	return session, nil
}

// RefreshSession trades a refresh token for a new session.
func (client *Client) RefreshSession(ctx context.Context, refreshToken string) (*Session, error) {
	session, err := client.tokenGrant(ctx, "refresh_token", map[string]string{
		"refresh_token": refreshToken,
	})
	if err != nil {
		return nil, err
	}

	client.emit(EventTokenRefreshed, session.User)
	return session, nil
}

// ExchangeCodeForSession completes a PKCE flow started by [Client.AuthorizeURL]
// or by an email link.
func (client *Client) ExchangeCodeForSession(ctx context.Context, authCode, codeVerifier string) (*Session, error) {
	session, err := client.tokenGrant(ctx, "pkce", map[string]string{
		"auth_code":     authCode,
		"code_verifier": codeVerifier,
	})
	if err != nil {
		return nil, err
	}

	client.emit(EventSignedIn, session.User)
	return session, nil
}

func (client *Client) tokenGrant(ctx context.Context, grantType string, payload map[string]string) (*Session, error) {
	query := url.Values{"grant_type": {grantType}}

	response, err := client.doRequest(ctx, http.MethodPost, "/auth/v1/token", query, payload, client.anon(), nil)
	if err != nil {
		return nil, err
	}

	var session Session
	if err := decodeJSON(response, &session); err != nil {
		return nil, err
	}

	return &session, nil
}

// # Registration

// signUpResponse covers both shapes: a session when confirmation is disabled,
// or the bare user while confirmation is pending.
type signUpResponse struct {
	Session
	ID    string `json:"id"`
	Email string `json:"email"`
}

// SignUp registers a password account.
func (client *Client) SignUp(ctx context.Context, params SignUpParams) (*SignUpResult, error) {
	var query url.Values
	if params.RedirectTo != "" {
		query = url.Values{"redirect_to": {params.RedirectTo}}
	}

	payload := map[string]any{
		"email":    params.Email,
		"password": params.Password,
	}
	if len(params.Data) > 0 {
		payload["data"] = params.Data
	}
	withChallenge(payload, params.CodeChallenge, params.Method)

	response, err := client.doRequest(ctx, http.MethodPost, "/auth/v1/signup", query, payload, client.anon(), nil)
	if err != nil {
		return nil, err
	}

	var decoded signUpResponse
	if err := decodeJSON(response, &decoded); err != nil {
		return nil, err
	}

	result := &SignUpResult{User: decoded.User}
	if result.User.ID == "" {
		result.User = User{ID: decoded.ID, Email: decoded.Email}
	}
	if decoded.AccessToken != "" {
		session := decoded.Session
		result.Session = &session
	}

	client.emit(EventSignedUp, result.User)
	return result, nil
}

// withChallenge adds PKCE fields so the emailed link carries an exchangeable code.
func withChallenge(payload map[string]any, challenge, method string) {
	if challenge == "" {
		return
	}
	payload["code_challenge"] = challenge
	payload["code_challenge_method"] = strings.ToLower(method)
}

// # OAuth

// AuthorizeURL builds the provider redirect. No request is made.
func (client *Client) AuthorizeURL(params AuthorizeParams) string {
	query := url.Values{"provider": {params.Provider}}
	if params.RedirectTo != "" {
		query.Set("redirect_to", params.RedirectTo)
	}
	if params.CodeChallenge != "" {
		query.Set("code_challenge", params.CodeChallenge)
		query.Set("code_challenge_method", strings.ToLower(params.Method))
	}
	return client.url("/auth/v1/authorize", query)
}

// # Recovery

// ResetPasswordForEmail asks the backend to mail a recovery link.
func (client *Client) ResetPasswordForEmail(ctx context.Context, params RecoverParams) error {
	var query url.Values
	if params.RedirectTo != "" {
		query = url.Values{"redirect_to": {params.RedirectTo}}
	}

	payload := map[string]any{"email": params.Email}
	withChallenge(payload, params.CodeChallenge, params.Method)

	response, err := client.doRequest(ctx, http.MethodPost, "/auth/v1/recover", query, payload, client.anon(), nil)
	if err != nil {
		return err
	}

	return decodeJSON(response, nil)
}

// UpdateUser changes attributes of the user owning accessToken.
func (client *Client) UpdateUser(ctx context.Context, accessToken string, attributes UserAttributes) (*User, error) {
	response, err := client.doRequest(ctx, http.MethodPut, "/auth/v1/user", nil, attributes, client.user(accessToken), nil)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(response, &user); err != nil {
		return nil, err
	}

	client.emit(EventUserUpdated, user)
	return &user, nil
}

// NotifyPasswordRecovery publishes a recovery event for a session obtained
// through a recovery link.
func (client *Client) NotifyPasswordRecovery(user User) {
	client.emit(EventPasswordRecovery, user)
}
