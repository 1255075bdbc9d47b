// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package identity

import (
	"context"

	"github.com/taibuivan/authgate/internal/backend"
)

// # Profile Data Access

// Directory is the read side of the profile store.
type Directory interface {

	/*
		FindEmailByUsername returns the email of the profile with exactly this username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - string: The linked email
		  - error: ErrIdentifierNotFound (or backend.ErrProfileNotFound) on a miss
	*/
	FindEmailByUsername(context context.Context, username string) (string, error)
}

// ProfileStore adds the write used right after sign-up.
type ProfileStore interface {
	Directory

	/*
		InsertProfile links a username to a new backend user.

		Parameters:
		  - context: context.Context
		  - accessToken: string (the new user's token, empty while confirmation is pending)
		  - profile: backend.Profile

		Returns:
		  - error: Conflict on a taken username, or storage errors
	*/
	InsertProfile(context context.Context, accessToken string, profile backend.Profile) error
}

var _ ProfileStore = (*backend.Client)(nil)
