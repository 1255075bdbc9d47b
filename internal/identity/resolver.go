// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/taibuivan/authgate/internal/backend"
)

// ErrIdentifierNotFound is returned when a username matches no profile.
var ErrIdentifierNotFound = errors.New("identity: identifier not found")

// Resolver maps usernames to the emails the backend authenticates.
type Resolver struct {
	directory Directory
}

// NewResolver constructs a [Resolver] over directory.
func NewResolver(directory Directory) *Resolver {
	return &Resolver{directory: directory}
}

/*
ResolveToEmail returns the email linked to username.

Description: A single exact-match lookup. Blank input and directory misses both
yield ErrIdentifierNotFound; any other failure is wrapped and returned.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - string: The linked email
  - error: ErrIdentifierNotFound or directory failures
*/
func (resolver *Resolver) ResolveToEmail(context context.Context, username string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", ErrIdentifierNotFound
	}

	email, err := resolver.directory.FindEmailByUsername(context, username)
	if err != nil {
		if errors.Is(err, ErrIdentifierNotFound) || errors.Is(err, backend.ErrProfileNotFound) {
			return "", ErrIdentifierNotFound
		}
		return "", fmt.Errorf("identity_resolve_failed: %w", err)
	}

	return email, nil
}
