// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/authgate/internal/platform/apperr"
	"github.com/taibuivan/authgate/internal/platform/ctxutil"
	"github.com/taibuivan/authgate/internal/platform/i18n"
	requestutil "github.com/taibuivan/authgate/internal/platform/request"
	"github.com/taibuivan/authgate/internal/platform/respond"
)

// Handler serves the admin bootstrap endpoint.
type Handler struct {
	service *Service
	enabled bool
}

// NewHandler constructs a new [Handler]. A disabled handler answers 404.
func NewHandler(service *Service, enabled bool) *Handler {
	return &Handler{service: service, enabled: enabled}
}

// Routes registers POST /api/admin/create.
func (handler *Handler) Routes(router chi.Router) {
	router.Post("/api/admin/create", handler.create)
}

type createRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type createdUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type createResponse struct {
	Message string      `json:"message"`
	User    createdUser `json:"user"`
}

/*
POST /api/admin/create.

Description: Creates a confirmed admin user. The key check comes before the
body is read so a misconfigured server never reaches the backend.

Request:
  - email: string
  - password: string

Response:
  - 200: createResponse
  - 400: Missing fields or backend rejection
  - 404: Disabled by configuration
  - 500: Service role key missing
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	context := request.Context()
	locale := ctxutil.GetLocale(context)
	logger := ctxutil.GetLogger(context)

	if !handler.enabled {
		respond.Error(writer, request, apperr.FeatureDisabled(i18n.T(locale, i18n.KeyAdminCreateDisabled)))
		return
	}

	if !handler.service.Ready() {
		respond.Error(writer, request, apperr.Configuration(i18n.T(locale, i18n.KeyAdminKeyMissing)))
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if strings.TrimSpace(input.Email) == "" || input.Password == "" {
		respond.Error(writer, request, apperr.ValidationError(i18n.T(locale, i18n.KeyAdminFieldsMissing)))
		return
	}

	user, err := handler.service.Create(context, strings.TrimSpace(input.Email), input.Password)
	if err != nil {
		logger.ErrorContext(context, "admin_create_failed", slog.Any("error", err))
		respond.Error(writer, request, err)
		return
	}

	logger.InfoContext(context, "admin_created", slog.String("user_id", user.ID))
	respond.OK(writer, createResponse{
		Message: i18n.T(locale, i18n.KeyAdminCreateSuccess),
		User:    createdUser{ID: user.ID, Email: user.Email},
	})
}
