// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package backend

import "time"

// User is the subset of the backend user record the gateway reads.
type User struct {
	ID               string         `json:"id"`
	Email            string         `json:"email"`
	Role             string         `json:"role,omitempty"`
	EmailConfirmedAt *time.Time     `json:"email_confirmed_at,omitempty"`
	AppMetadata      map[string]any `json:"app_metadata,omitempty"`
	UserMetadata     map[string]any `json:"user_metadata,omitempty"`
}

// Session is a backend-issued token pair. It is held only for the request
// that obtained it.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at"`
	User         User   `json:"user"`
}

// Lifetime returns how long the access token stays valid.
func (session *Session) Lifetime() time.Duration {
	return time.Duration(session.ExpiresIn) * time.Second
}

// SignUpParams describes a new password account.
type SignUpParams struct {
	Email    string
	Password string

	// RedirectTo is where the confirmation email link lands.
	RedirectTo string

	// Data is stored as the user's metadata.
	Data map[string]any

	// CodeChallenge binds the confirmation link to a PKCE verifier.
	CodeChallenge string
	Method        string
}

// RecoverParams describes a password recovery request.
type RecoverParams struct {
	Email         string
	RedirectTo    string
	CodeChallenge string
	Method        string
}

// SignUpResult is the outcome of a sign-up. Session is nil while email
// confirmation is pending.
type SignUpResult struct {
	User    User
	Session *Session
}

// UserAttributes are the fields a signed-in user may change.
type UserAttributes struct {
	Password string `json:"password,omitempty"`
	Email    string `json:"email,omitempty"`
}

// AdminUserParams describes a user created with the service role.
type AdminUserParams struct {
	Email        string         `json:"email"`
	Password     string         `json:"password"`
	EmailConfirm bool           `json:"email_confirm"`
	AppMetadata  map[string]any `json:"app_metadata,omitempty"`
	UserMetadata map[string]any `json:"user_metadata,omitempty"`
}

// Profile is a row of the public profiles table.
type Profile struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Username  string     `json:"username"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// AuthorizeParams describes an OAuth authorization redirect.
type AuthorizeParams struct {
	Provider      string
	RedirectTo    string
	CodeChallenge string
	Method        string
}
