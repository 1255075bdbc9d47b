// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/authgate/internal/platform/apperr"
	"github.com/taibuivan/authgate/internal/platform/dberr"
)

func TestWrap(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "noop"))
	assert.ErrorIs(t, dberr.Wrap(pgx.ErrNoRows, "find"), dberr.ErrNotFound)

	unique := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "profiles_username_key"}
	conflict := apperr.As(dberr.Wrap(unique, "insert"))
	require.NotNil(t, conflict)
	assert.Equal(t, http.StatusConflict, conflict.HTTPStatus)
	assert.Contains(t, conflict.Message, "profiles_username_key")

	internal := apperr.As(dberr.Wrap(errors.New("connection reset"), "find"))
	require.NotNil(t, internal)
	assert.Equal(t, apperr.CodeInternal, internal.Code)
}
