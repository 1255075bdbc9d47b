// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package backend

import (
	"context"
	"net/http"
)

// AdminCreateUser creates a user with the service role key.
// It fails with [ErrServiceRoleMissing] without touching the network when no key is configured.
func (client *Client) AdminCreateUser(ctx context.Context, params AdminUserParams) (*User, error) {
	if !client.HasServiceRole() {
		return nil, ErrServiceRoleMissing
	}

	response, err := client.doRequest(ctx, http.MethodPost, "/auth/v1/admin/users", nil, params, client.serviceRole(), nil)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(response, &user); err != nil {
		return nil, err
	}

	client.emit(EventAdminUserCreated, user)
	return &user, nil
}
