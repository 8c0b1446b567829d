// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/silo/internal/platform/apperr"
	"github.com/taibuivan/silo/internal/platform/constants"
	"github.com/taibuivan/silo/internal/platform/respond"
	"github.com/taibuivan/silo/internal/platform/validate"
)

// Form field names of the password login flow.
const (
	fieldUsername = "username"
	fieldPassword = "password"
)

// # Definitions & Constructors

// Handler implements the authentication HTTP endpoints.
//
// All three endpoints live on the public-path allow-list; the handler itself
// decides who gets tokens.
type Handler struct {
	authService     *Service
	refreshTokenTTL time.Duration
}

// NewHandler constructs a new [Handler].
//
// refreshTokenTTL bounds the refresh cookie lifetime; it must match the TTL
// the token service signs into refresh tokens.
func NewHandler(service *Service, refreshTokenTTL time.Duration) *Handler {
	return &Handler{
		authService:     service,
		refreshTokenTTL: refreshTokenTTL,
	}
}

// Routes returns a [chi.Router] with the authentication endpoints.
//
// # Endpoints
//   - POST /login   : Exchanges directory credentials for a token pair.
//   - POST /refresh : Exchanges the refresh cookie for a new access token.
//   - POST /logout  : Clears the refresh cookie.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)
	router.Post("/logout", handler.logout)

	return router
}

// tokenResponse is the wire shape shared by login and refresh, kept
// compatible with OAuth2 password-flow clients.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

/*
Login authenticates directory credentials and establishes a session.

POST /api/v1/auth/login

Description: Accepts a form-encoded username/password pair (OAuth2 password
flow style), verifies it against the directory, sets the refresh token as a
scoped HttpOnly cookie, and returns the access token in the body.

Request:
  - Body: application/x-www-form-urlencoded (username, password)

Response:
  - 200: tokenResponse: Access token, token_type "bearer"
  - 401: ErrUnauthorized: Bad credentials, unknown user, or group refusal
  - 403: ErrForbidden: Account exists locally but is deactivated
  - 429: ErrRateLimited: Too many failed attempts in the window
  - 503: ErrServiceUnavailable: Directory unreachable
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	if err := request.ParseForm(); err != nil {
		respond.Error(writer, request, apperr.ValidationError("Malformed form body"))
		return
	}

	username := request.PostFormValue(fieldUsername)
	password := request.PostFormValue(fieldPassword)

	validator := &validate.Validator{}
	validator.Required(fieldUsername, username)
	validator.Required(fieldPassword, password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Login(request.Context(), username, password, clientIP(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setRefreshCookie(writer, result.RefreshToken)

	respond.JSON(writer, http.StatusOK, tokenResponse{
		AccessToken: result.AccessToken,
		TokenType:   "bearer",
	})
}

/*
Refresh issues a new access token using the refresh cookie.

POST /api/v1/auth/refresh

Description: Reads the refresh token from its cookie, verifies it, and
returns a fresh access token. The refresh token itself is not rotated.

Response:
  - 200: tokenResponse: New access token
  - 401: ErrUnauthorized: Missing, expired or wrong-kind token
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	cookie, err := request.Cookie(constants.RefreshTokenCookieName)
	if err != nil || cookie.Value == "" {
		respond.Error(writer, request, apperr.Unauthorized("Missing refresh token"))
		return
	}

	accessToken, err := handler.authService.Refresh(request.Context(), cookie.Value)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusOK, tokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
	})
}

/*
Logout ends the session from the client's point of view.

POST /api/v1/auth/logout

Description: Clears the refresh cookie. Outstanding access tokens stay valid
until they expire naturally; there is no server-side revocation list.

Response:
  - 200: Logged out confirmation
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    "",
		Path:     constants.RefreshTokenCookiePath,
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	respond.JSON(writer, http.StatusOK, map[string]string{
		"detail": "Logged out",
	})
}

// setRefreshCookie writes the refresh token as a hardened cookie scoped to
// the auth endpoints, so the browser never sends it anywhere else.
func (handler *Handler) setRefreshCookie(writer http.ResponseWriter, refreshToken string) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    refreshToken,
		Path:     constants.RefreshTokenCookiePath,
		MaxAge:   int(handler.refreshTokenTTL.Seconds()),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// clientIP extracts the caller's address, respecting common proxy headers.
//
// X-Forwarded-For carries the whole proxy chain ("client, proxy1, ..."); only
// the first element identifies the client, and using the full header would
// split one client's throttle counter across routes.
func clientIP(request *http.Request) string {
	if ip := request.Header.Get(constants.HeaderXRealIP); ip != "" {
		return ip
	}
	if forwarded := request.Header.Get(constants.HeaderXForwardedFor); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	return request.RemoteAddr
}
