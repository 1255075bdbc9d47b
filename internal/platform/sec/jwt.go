// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides token inspection and cryptographic helpers.
//
// # Architecture
//
// The gateway never issues tokens itself; access tokens are minted by the identity
// backend. This package isolates the code that reads those tokens (expiry, subject,
// roles) and the random material needed for PKCE flows.
package sec

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformedToken is returned when a token cannot be parsed at all.
var ErrMalformedToken = errors.New("sec: malformed access token")

// AppMetadata mirrors the backend's server-controlled user metadata.
type AppMetadata struct {
	Provider string   `json:"provider,omitempty"`
	Roles    []string `json:"roles,omitempty"`
}

// AccessClaims represents the payload of a backend-issued access token.
//
// Only the claims the gateway acts on are mapped; everything else is ignored.
type AccessClaims struct {
	jwt.RegisteredClaims

	Email       string      `json:"email,omitempty"`
	Role        string      `json:"role,omitempty"`
	SessionID   string      `json:"session_id,omitempty"`
	AppMetadata AppMetadata `json:"app_metadata"`
}

// UserID returns the backend user id carried in the subject claim.
func (claims *AccessClaims) UserID() string {
	return claims.Subject
}

// ExpiresWithin reports whether the token is expired or will expire within margin.
// Tokens without an exp claim are treated as already expired.
func (claims *AccessClaims) ExpiresWithin(margin time.Duration, now time.Time) bool {
	if claims.ExpiresAt == nil {
		return true
	}
	return !now.Add(margin).Before(claims.ExpiresAt.Time)
}

// HasRole reports whether the app metadata grants role.
func (claims *AccessClaims) HasRole(role UserRole) bool {
	for _, granted := range claims.AppMetadata.Roles {
		if UserRole(granted) == role {
			return true
		}
	}
	return false
}

// TokenInspector reads backend access tokens.
//
// When a signing secret is configured the HS256 signature is verified; otherwise
// the token is decoded without verification and the backend remains the authority
// that rejects forged tokens on use.
type TokenInspector struct {
	secret []byte
}

// NewTokenInspector creates a [TokenInspector]. An empty secret disables signature checks.
func NewTokenInspector(secret string) *TokenInspector {
	inspector := &TokenInspector{}
	if trimmed := strings.TrimSpace(secret); trimmed != "" {
		inspector.secret = []byte(trimmed)
	}
	return inspector
}

// Verifies reports whether signatures are checked.
func (inspector *TokenInspector) Verifies() bool {
	return len(inspector.secret) > 0
}

// Inspect parses tokenString and returns its claims.
//
// Expiry is deliberately not enforced here: callers decide between refreshing
// and rejecting via [AccessClaims.ExpiresWithin].
func (inspector *TokenInspector) Inspect(tokenString string) (*AccessClaims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, ErrMalformedToken
	}

	claims := &AccessClaims{}

	if !inspector.Verifies() {
		parser := jwt.NewParser()
		if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
		}
		return claims, nil
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return inspector.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("sec: invalid access token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("sec: invalid access token signature")
	}

	return claims, nil
}
