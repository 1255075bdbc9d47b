// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// PKCEMethod is the only challenge method the backend is asked to use.
const PKCEMethod = "s256"

// verifierBytes yields a 43-character verifier, the RFC 7636 minimum length.
const verifierBytes = 32

// GenerateSecureToken returns a URL-safe random string built from n random bytes.
func GenerateSecureToken(n int) (string, error) {
	buffer := make([]byte, n)
	if _, err := rand.Read(buffer); err != nil {
		return "", fmt.Errorf("sec: failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buffer), nil
}

// PKCE holds a code verifier and its derived S256 challenge.
type PKCE struct {
	Verifier  string
	Challenge string
	Method    string
}

// NewPKCE generates a fresh verifier/challenge pair.
func NewPKCE() (*PKCE, error) {
	verifier, err := GenerateSecureToken(verifierBytes)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to generate PKCE verifier: %w", err)
	}
	return &PKCE{
		Verifier:  verifier,
		Challenge: ChallengeS256(verifier),
		Method:    PKCEMethod,
	}, nil
}

// ChallengeS256 computes BASE64URL(SHA256(verifier)).
func ChallengeS256(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
