// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/authgate/internal/backend"
	"github.com/taibuivan/authgate/internal/platform/database/schema"
	"github.com/taibuivan/authgate/internal/platform/dberr"
)

// dbtx is the subset of [pgxpool.Pool] the directory needs.
type dbtx interface {
	QueryRow(context context.Context, sql string, args ...any) pgx.Row
	Exec(context context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresDirectory implements [ProfileStore] directly against the profiles table.
type PostgresDirectory struct {
	pool dbtx
}

// NewPostgresDirectory creates a PostgreSQL-backed [ProfileStore].
func NewPostgresDirectory(pool dbtx) *PostgresDirectory {
	return &PostgresDirectory{pool: pool}
}

var (
	findEmailQuery = fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 LIMIT 1`,
		schema.Profiles.Email, schema.Profiles.Table, schema.Profiles.Username)

	insertProfileQuery = fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)`,
		schema.Profiles.Table, schema.Profiles.ID, schema.Profiles.Email, schema.Profiles.Username)
)

/*
FindEmailByUsername retrieves the email linked to an exact username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - string: The linked email
  - error: ErrIdentifierNotFound or database errors
*/
func (repository *PostgresDirectory) FindEmailByUsername(context context.Context, username string) (string, error) {
	var email string
	err := repository.pool.QueryRow(context, findEmailQuery, username).Scan(&email)
	if err != nil {
		wrapped := dberr.Wrap(err, "postgres_profile_find_email_failed")
		if errors.Is(wrapped, dberr.ErrNotFound) {
			return "", ErrIdentifierNotFound
		}
		return "", wrapped
	}

	return email, nil
}

/*
InsertProfile persists a new profile row.

Description: The access token is ignored; the pool's own role is trusted.

Parameters:
  - context: context.Context
  - accessToken: string
  - profile: backend.Profile

Returns:
  - error: apperr.Conflict on a duplicate username or email, or database errors
*/
func (repository *PostgresDirectory) InsertProfile(context context.Context, _ string, profile backend.Profile) error {
	_, err := repository.pool.Exec(context, insertProfileQuery, profile.ID, profile.Email, profile.Username)
	return dberr.Wrap(err, "postgres_profile_insert_failed")
}
