// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/authgate/internal/platform/apperr"
	"github.com/taibuivan/authgate/internal/platform/constants"
	"github.com/taibuivan/authgate/internal/platform/validate"
)

// maxBodyBytes caps JSON bodies; auth payloads are tiny.
const maxBodyBytes = 64 << 10

// ErrNotJSON rejects bodies not declared as application/json. A cross-site
// HTML form can only send urlencoded, multipart or text/plain bodies, so
// this keeps forms on other sites from driving the JSON endpoints.
var ErrNotJSON = apperr.UnsupportedMediaType("Content-Type must be application/json")

/*
DecodeJSON reads the request body and decodes it into the target structure.
The request must declare Content-Type: application/json.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: ErrNotJSON for another media type, validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if !IsJSON(request) {
		return ErrNotJSON
	}
	if request.Body == nil {
		return validate.ErrInvalidJSON
	}
	body := http.MaxBytesReader(nil, request.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// IsJSON reports whether the request declares a JSON body. Parameters such as
// charset are allowed.
func IsJSON(request *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(request.Header.Get(constants.HeaderContentType))
	return err == nil && mediaType == constants.MIMEApplicationJSON
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}
