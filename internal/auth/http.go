// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/authgate/internal/bridge"
	"github.com/taibuivan/authgate/internal/identity"
	"github.com/taibuivan/authgate/internal/platform/apperr"
	"github.com/taibuivan/authgate/internal/platform/constants"
	"github.com/taibuivan/authgate/internal/platform/ctxutil"
	"github.com/taibuivan/authgate/internal/platform/i18n"
	requestutil "github.com/taibuivan/authgate/internal/platform/request"
	"github.com/taibuivan/authgate/internal/platform/respond"
	"github.com/taibuivan/authgate/internal/platform/validate"
	"github.com/taibuivan/authgate/internal/redirect"
	"github.com/taibuivan/authgate/internal/session"
)

// SessionLoader yields the request's backend session, or nil.
type SessionLoader interface {
	Load(writer http.ResponseWriter, request *http.Request) *session.State
}

// Handler implements the authentication endpoints.
//
// # Scope
//
// Every route is registered relative to the mount prefix.
type Handler struct {
	service    *Service
	sessions   SessionLoader
	cookies    *session.Cookies
	bridge     *bridge.Writer
	origins    redirect.OriginPolicy
	prefix     string
	studioPath string
}

// NewHandler constructs a new [Handler].
func NewHandler(
	service *Service,
	sessions SessionLoader,
	cookies *session.Cookies,
	bridgeWriter *bridge.Writer,
	origins redirect.OriginPolicy,
	prefix, studioPath string,
) *Handler {
	return &Handler{
		service:    service,
		sessions:   sessions,
		cookies:    cookies,
		bridge:     bridgeWriter,
		origins:    origins,
		prefix:     prefix,
		studioPath: studioPath,
	}
}

// Routes registers the authentication routes.
//
// # Endpoints
//   - POST /api/auth/sign-in
//   - POST /api/auth/sign-up
//   - GET  /api/auth/oauth/{provider}
//   - POST /api/auth/reset-password
//   - POST /api/auth/update-password
//   - GET  /api/features
//   - GET  /update-password
func (handler *Handler) Routes(router chi.Router) {
	router.Route("/api/auth", func(r chi.Router) {
		r.Post("/sign-in", handler.signIn)
		r.Post("/sign-up", handler.signUp)
		r.Get("/oauth/{provider}", handler.oauth)
		r.Post("/reset-password", handler.resetPassword)
		r.Post("/update-password", handler.updatePassword)
	})
	router.Get("/api/features", handler.features)
	router.Get(constants.UpdatePasswordPath, handler.updatePasswordPage)
}

// # Sign-in

type signInRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type signInResponse struct {
	Success  bool   `json:"success"`
	Redirect string `json:"redirect"`
}

/*
POST /api/auth/sign-in.

Description: Signs in with an email or a username. On success the backend
session pair and the bridge cookie are both written.

Request:
  - identifier: string (email or username)
  - password: string

Response:
  - 200: signInResponse
  - 400: Validation or backend rejection
  - 404: Username not found
*/
func (handler *Handler) signIn(writer http.ResponseWriter, request *http.Request) {
	context := request.Context()
	logger := ctxutil.GetLogger(context)

	var input signInRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	established, err := handler.service.SignInWithIdentifier(context, input.Identifier, input.Password)
	if err != nil {
		if !apperr.HasCode(err, apperr.CodeValidation) {
			logger.WarnContext(context, "signin_failed",
				slog.String("kind", string(identity.Classify(input.Identifier))),
				slog.Any("error", err),
			)
		}
		respond.Error(writer, request, err)
		return
	}

	handler.cookies.Write(writer, established)
	handler.bridge.SetCookie(writer, established.AccessToken)

	logger.InfoContext(context, "signin_succeeded", slog.String("user_id", established.User.ID))
	respond.OK(writer, signInResponse{Success: true, Redirect: handler.studioPath})
}

// # Sign-up

type signUpRequest struct {
	Email           string `json:"email"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type statusResponse struct {
	Status   string `json:"status"`
	Redirect string `json:"redirect,omitempty"`
}

/*
POST /api/auth/sign-up.

Description: Registers a password account and links its username. The user
must confirm their email before signing in.

Request:
  - email, username, password, confirm_password: string

Response:
  - 201: {status: "pending", redirect}
  - 400: Validation or backend rejection
  - 409: Username taken
*/
func (handler *Handler) signUp(writer http.ResponseWriter, request *http.Request) {
	context := request.Context()

	var input signUpRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := validate.New(ctxutil.GetLocale(context))
	v.Required("email", input.Email).Email("email", input.Email)
	v.Required("username", input.Username).Username("username", input.Username)
	v.Required("password", input.Password).Password("password", input.Password)
	v.Matches("confirm_password", input.Password, input.ConfirmPassword)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	pending, err := handler.service.SignUp(context, SignUpInput{
		Email:    input.Email,
		Username: input.Username,
		Password: input.Password,
		Origin:   handler.origins.Origin(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.cookies.WriteFlow(writer, session.FlowSignup, pending.FlowID)
	respond.Created(writer, statusResponse{Status: "pending", Redirect: handler.prefix + constants.VerifyEmailPath})
}

// # OAuth

/*
GET /api/auth/oauth/{provider}.

Description: Starts a PKCE flow and redirects to the backend's authorize
endpoint. The flow id travels in a short-lived cookie.

Response:
  - 302: Backend authorize URL
  - 404: Provider disabled or unknown
*/
func (handler *Handler) oauth(writer http.ResponseWriter, request *http.Request) {
	outbound, err := handler.service.SignInWithOAuth(request.Context(), requestutil.Param(request, "provider"), handler.origins.Origin(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.cookies.WriteFlow(writer, session.FlowOAuth, outbound.FlowID)
	respond.Redirect(writer, request, outbound.URL)
}

// # Recovery

type resetPasswordRequest struct {
	Email string `json:"email"`
}

/*
POST /api/auth/reset-password.

Description: Mails a recovery link that lands on /update-password. The flow
id is kept in its own cookie for as long as the link stays valid.

Response:
  - 200: {status: "sent"}
  - 400: Validation or backend rejection
*/
func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	context := request.Context()

	var input resetPasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := validate.New(ctxutil.GetLocale(context))
	v.Required("email", input.Email).Email("email", input.Email)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	flowID, err := handler.service.ResetPasswordForEmail(context, input.Email, handler.origins.Origin(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.cookies.WriteFlow(writer, session.FlowRecovery, flowID)
	respond.OK(writer, statusResponse{Status: "sent"})
}

type updatePasswordRequest struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

/*
POST /api/auth/update-password.

Description: Sets a new password for the signed-in user, typically right after
a recovery link was exchanged.

Response:
  - 200: {status: "updated"}
  - 400: Validation or backend rejection
  - 401: No backend session
*/
func (handler *Handler) updatePassword(writer http.ResponseWriter, request *http.Request) {
	context := request.Context()

	var input updatePasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := validate.New(ctxutil.GetLocale(context))
	v.Required("password", input.Password).Password("password", input.Password)
	v.Matches("confirm_password", input.Password, input.ConfirmPassword)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	state := handler.sessions.Load(writer, request)
	if state == nil {
		respond.Error(writer, request, apperr.Unauthorized(i18n.T(ctxutil.GetLocale(context), i18n.KeyNoSessionFound)))
		return
	}

	user, err := handler.service.UpdatePassword(context, state.AccessToken, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	ctxutil.GetLogger(context).InfoContext(context, "password_updated", slog.String("user_id", user.ID))
	respond.OK(writer, statusResponse{Status: "updated"})
}

type sessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

/*
GET /update-password.

Description: Page-level session check for the password form. Anonymous visitors
are sent back to the sign-in page.

Response:
  - 200: {user: {id, email}}
  - 302: Sign-in page
*/
func (handler *Handler) updatePasswordPage(writer http.ResponseWriter, request *http.Request) {
	state := handler.sessions.Load(writer, request)
	if state == nil || state.Claims == nil {
		target := handler.prefix
		if target == "" {
			target = constants.RootPath
		}
		respond.Redirect(writer, request, target)
		return
	}

	respond.OK(writer, map[string]sessionUser{
		"user": {ID: state.Claims.UserID(), Email: state.Claims.Email},
	})
}

// GET /api/features returns the provider and admin switches.
func (handler *Handler) features(writer http.ResponseWriter, _ *http.Request) {
	respond.OK(writer, handler.service.Features())
}
