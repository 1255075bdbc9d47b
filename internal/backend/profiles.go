// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package backend

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

const profilesPath = "/rest/v1/profiles"

// dataCredential prefers the service role so lookups are not subject to row policies.
func (client *Client) dataCredential() credential {
	if client.HasServiceRole() {
		return client.serviceRole()
	}
	return client.anon()
}

// FindEmailByUsername returns the email of the profile whose username matches exactly.
func (client *Client) FindEmailByUsername(ctx context.Context, username string) (string, error) {
	query := url.Values{
		"select":   {"email"},
		"username": {"eq." + username},
		"limit":    {"1"},
	}

	response, err := client.doRequest(ctx, http.MethodGet, profilesPath, query, nil, client.dataCredential(), nil)
	if err != nil {
		return "", err
	}

	var rows []Profile
	if err := decodeJSON(response, &rows); err != nil {
		return "", err
	}

	if len(rows) == 0 || strings.TrimSpace(rows[0].Email) == "" {
		return "", ErrProfileNotFound
	}

	return rows[0].Email, nil
}

// InsertProfile links a username to a freshly created user.
// accessToken is used when the caller holds the new user's session.
func (client *Client) InsertProfile(ctx context.Context, accessToken string, profile Profile) error {
	auth := client.dataCredential()
	if accessToken != "" && !client.HasServiceRole() {
		auth = client.user(accessToken)
	}

	payload := map[string]string{
		"id":       profile.ID,
		"email":    profile.Email,
		"username": profile.Username,
	}

	response, err := client.doRequest(ctx, http.MethodPost, profilesPath, nil, payload, auth,
		map[string]string{"Prefer": "return=minimal"})
	if err != nil {
		return err
	}

	return decodeJSON(response, nil)
}
