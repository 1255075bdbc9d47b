// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// credential selects which bearer a request is sent with.
type credential struct {
	bearer     string
	privileged bool
}

func (client *Client) anon() credential {
	return credential{bearer: client.anonKey}
}

func (client *Client) serviceRole() credential {
	return credential{bearer: client.serviceRoleKey, privileged: true}
}

func (client *Client) user(accessToken string) credential {
	return credential{bearer: accessToken}
}

// url builds a complete URL by appending path and query to the base URL.
func (client *Client) url(path string, query url.Values) string {
	target := client.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return target
}

// doRequest performs a JSON request against the backend.
//
// The apikey header carries the anon key, or the service role key for
// privileged calls.
func (client *Client) doRequest(
	ctx context.Context,
	method, path string,
	query url.Values,
	payload any,
	auth credential,
	headers map[string]string,
) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("backend: failed to encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, client.url(path, query), body)
	if err != nil {
		return nil, fmt.Errorf("backend: failed to create request: %w", err)
	}

	apiKey := client.anonKey
	if auth.privileged {
		apiKey = client.serviceRoleKey
	}

	request.Header.Set("Accept", "application/json")
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if apiKey != "" {
		request.Header.Set("apikey", apiKey)
	}
	if auth.bearer != "" {
		request.Header.Set("Authorization", "Bearer "+auth.bearer)
	}
	for key, value := range headers {
		request.Header.Set(key, value)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("backend: failed to send request: %w", err)
	}

	return response, nil
}

// decodeJSON decodes a 2xx response into target, or returns an [*AuthError].
// A nil target discards the body.
func decodeJSON(response *http.Response, target any) error {
	defer response.Body.Close()

	bodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("backend: failed to read response body: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return parseErrorResponse(response.StatusCode, bodyBytes)
	}

	if target == nil || len(bytes.TrimSpace(bodyBytes)) == 0 {
		return nil
	}

	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("backend: failed to decode response: %w", err)
	}

	return nil
}
