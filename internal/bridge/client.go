// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/taibuivan/authgate/internal/platform/constants"
)

// Client calls the bridge endpoint of a running gateway.
type Client struct {
	BaseURL    string
	Prefix     string
	HTTPClient *http.Client
}

// NewClient creates a [Client] for the gateway at baseURL mounted under prefix.
func NewClient(baseURL, prefix string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Prefix:     prefix,
		HTTPClient: &http.Client{Timeout: constants.BackendTimeout},
	}
}

// MintError is a non-200 answer from the bridge endpoint.
type MintError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *MintError) Error() string {
	return fmt.Sprintf("bridge: mint failed with status %d: %s", e.Status, e.Message)
}

// Mint issues a single POST that sets the bridge cookie and returns that cookie.
// When HTTPClient has a cookie jar the cookie is stored there as well.
func (client *Client) Mint(ctx context.Context, token string) (*http.Cookie, error) {
	body, err := json.Marshal(setCookieRequest{Token: token})
	if err != nil {
		return nil, fmt.Errorf("bridge: failed to encode request: %w", err)
	}

	endpoint := client.BaseURL + client.Prefix + constants.SetCookiePath
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("bridge: failed to create request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := client.HTTPClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("bridge: failed to send request: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		var envelope struct {
			Error string `json:"error"`
		}
		raw, _ := io.ReadAll(response.Body)
		if json.Unmarshal(raw, &envelope) != nil || envelope.Error == "" {
			envelope.Error = strings.TrimSpace(string(raw))
		}
		return nil, &MintError{Status: response.StatusCode, Message: envelope.Error}
	}

	for _, cookie := range response.Cookies() {
		if cookie.Name == constants.BridgeCookieName {
			return cookie, nil
		}
	}

	return nil, fmt.Errorf("bridge: response carried no %s cookie", constants.BridgeCookieName)
}
