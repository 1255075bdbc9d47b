// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package admin bootstraps administrator accounts with the backend service role.

The service role key never leaves the server. Without it the endpoint fails
loudly instead of falling back to the anon key.
*/
package admin

import (
	"context"
	"errors"
	"net/http"

	"github.com/taibuivan/authgate/internal/backend"
	"github.com/taibuivan/authgate/internal/platform/apperr"
	"github.com/taibuivan/authgate/internal/platform/ctxutil"
	"github.com/taibuivan/authgate/internal/platform/i18n"
	"github.com/taibuivan/authgate/internal/platform/sec"
)

// Creator is the privileged half of the backend client.
type Creator interface {
	HasServiceRole() bool
	AdminCreateUser(context context.Context, params backend.AdminUserParams) (*backend.User, error)
}

var _ Creator = (*backend.Client)(nil)

// Service creates confirmed admin users.
type Service struct {
	creator Creator
}

// NewService constructs a new [Service].
func NewService(creator Creator) *Service {
	return &Service{creator: creator}
}

// Ready reports whether the service role key is configured.
func (service *Service) Ready() bool {
	return service.creator.HasServiceRole()
}

/*
Create registers an email-confirmed user carrying the admin role.

Parameters:
  - context: context.Context
  - email: string
  - password: string

Returns:
  - *backend.User: The created user
  - error: Configuration (no key), BackendAuth (400, verbatim) or Internal
*/
func (service *Service) Create(context context.Context, email, password string) (*backend.User, error) {
	locale := ctxutil.GetLocale(context)
	if !service.Ready() {
		return nil, apperr.Configuration(i18n.T(locale, i18n.KeyAdminKeyMissing))
	}

	user, err := service.creator.AdminCreateUser(context, backend.AdminUserParams{
		Email:        email,
		Password:     password,
		EmailConfirm: true,
		AppMetadata: map[string]any{
			"provider": sec.ProviderEmail,
			"roles":    []string{string(sec.RoleAdmin)},
		},
		UserMetadata: map[string]any{},
	})
	if err != nil {
		if errors.Is(err, backend.ErrServiceRoleMissing) {
			return nil, apperr.Configuration(i18n.T(locale, i18n.KeyAdminKeyMissing))
		}
		if authError, ok := backend.AsAuthError(err); ok {
			return nil, apperr.BackendAuth(http.StatusBadRequest, authError.Message, err)
		}
		return nil, apperr.Internal(err)
	}

	return user, nil
}
