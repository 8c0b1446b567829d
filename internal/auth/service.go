// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/taibuivan/silo/internal/platform/apperr"
	"github.com/taibuivan/silo/internal/platform/constants"
	"github.com/taibuivan/silo/internal/platform/ctxutil"
	"github.com/taibuivan/silo/internal/platform/sec"
)

// # Contracts & Types

// TokenProvider defines the contract for minting and verifying bearer tokens.
// Satisfied by [*sec.TokenService].
type TokenProvider interface {
	IssueAccessToken(subject string) (string, error)
	IssueRefreshToken(subject string) (string, error)
	Verify(tokenString string, expected sec.TokenKind) (string, error)
}

// Account is the auth-relevant slice of the locally persisted user.
type Account struct {
	ID       int
	Username string
	IsActive bool
}

// AccountProvider lazily materializes local accounts for directory users.
//
// The first successful directory login creates the local row (with the
// default role); later logins return the existing one. Implemented by the
// user service.
type AccountProvider interface {
	ProvisionDirectoryAccount(ctx context.Context, username, email, fullName string) (*Account, error)
}

// Throttle guards the login endpoint against password guessing.
// Satisfied by [*LoginThrottle].
type Throttle interface {
	Blocked(ctx context.Context, username, clientIP string) (bool, error)
	RecordFailure(ctx context.Context, username, clientIP string) error
	Reset(ctx context.Context, username, clientIP string) error
}

// Service implements the authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to the verifier error
// mapping or the token flows must be reviewed by the security team.
type Service struct {
	verifier Verifier
	tokens   TokenProvider
	accounts AccountProvider
	throttle Throttle
}

// NewService constructs a new [Service] with its dependencies.
func NewService(verifier Verifier, tokens TokenProvider, accounts AccountProvider, throttle Throttle) *Service {
	return &Service{
		verifier: verifier,
		tokens:   tokens,
		accounts: accounts,
		throttle: throttle,
	}
}

// # Login Flow

// LoginResult carries the credentials of a successful login.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	Account      *Account
}

/*
Login verifies directory credentials and issues a token pair.

Description: Runs the throttle gate, delegates the actual password check to
the directory, lazily provisions the local account, and mints one access and
one refresh token with the account ID as subject.

Parameters:
  - ctx: context.Context
  - username: directory login name
  - password: raw password, passed through to the directory bind
  - clientIP: origin address, used only for throttle bookkeeping

Returns:
  - *LoginResult: tokens plus the resolved account
  - err: Unauthorized, Forbidden, RateLimited or ServiceUnavailable
*/
func (service *Service) Login(ctx context.Context, username, password, clientIP string) (*LoginResult, error) {
	logger := ctxutil.GetLogger(ctx)

	// Throttle gate. Redis faults fail open: a cache outage must not take
	// down all logins, it only drops the brute-force protection.
	if blocked, err := service.throttle.Blocked(ctx, username, clientIP); err != nil {
		logger.Warn("login_throttle_unavailable", slog.Any("error", err))
	} else if blocked {
		return nil, apperr.RateLimited(int(constants.LoginAttemptWindow.Seconds()))
	}

	identity, err := service.verifier.Authenticate(ctx, username, password)
	if err != nil {
		return nil, service.mapVerifierError(ctx, err, username, clientIP)
	}

	account, err := service.accounts.ProvisionDirectoryAccount(ctx, identity.Username, identity.Email, identity.DisplayName)
	if err != nil {
		return nil, fmt.Errorf("auth_service_provision_failed: %w", err)
	}

	if !account.IsActive {
		return nil, apperr.Forbidden("User is inactive")
	}

	subject := strconv.Itoa(account.ID)

	accessToken, err := service.tokens.IssueAccessToken(subject)
	if err != nil {
		return nil, fmt.Errorf("auth_service_access_token_failed: %w", err)
	}

	refreshToken, err := service.tokens.IssueRefreshToken(subject)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	// Successful login wipes the failure counter.
	if err := service.throttle.Reset(ctx, username, clientIP); err != nil {
		logger.Warn("login_throttle_reset_failed", slog.Any("error", err))
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Account:      account,
	}, nil
}

// mapVerifierError converts the verifier taxonomy into client-facing errors.
//
// # Mapping
//
//   - Bad password / unknown user → 401 with one shared message, so probing
//     cannot tell the two apart. Both count as a failed attempt.
//   - Group and access refusals → 401 without revealing which group check
//     failed.
//   - Timeouts and unclassified faults → 503: the directory is down, the
//     credentials were never judged.
func (service *Service) mapVerifierError(ctx context.Context, err error, username, clientIP string) error {
	logger := ctxutil.GetLogger(ctx)

	switch {
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrUserNotFound):
		logger.Info("login_rejected", slog.String("username", username), slog.Any("error", err))
		if throttleErr := service.throttle.RecordFailure(ctx, username, clientIP); throttleErr != nil {
			logger.Warn("login_throttle_record_failed", slog.Any("error", throttleErr))
		}
		return apperr.Unauthorized("Invalid credentials")

	case errors.Is(err, ErrNotAllowed), errors.Is(err, ErrBindNotAllowed):
		logger.Warn("login_not_allowed", slog.String("username", username), slog.Any("error", err))
		return apperr.Unauthorized("Not allowed to fetch user data")

	case errors.Is(err, ErrBind):
		logger.Error("login_bind_error", slog.String("username", username), slog.Any("error", err))
		return apperr.Unauthorized("Error binding user")

	case errors.Is(err, ErrAuthTimeout):
		logger.Error("login_directory_timeout", slog.String("username", username), slog.Any("error", err))
		return apperr.ServiceUnavailable("Service unavailable. Please contact your system administrator.")

	default:
		logger.Error("login_directory_error", slog.String("username", username), slog.Any("error", err))
		return apperr.ServiceUnavailable("Error authenticating user")
	}
}

// # Token Refresh

/*
Refresh exchanges a valid refresh token for a fresh access token.

Description: Purely stateless — the refresh token's signature, expiry and
kind are the only things checked; no database round trip happens. A user
deactivated after login keeps refreshing until the refresh token expires,
but every API call still re-checks the active flag in the middleware.

Returns:
  - string: new access token
  - err: Unauthorized when the refresh token is missing its mark
*/
func (service *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	subject, err := service.tokens.Verify(refreshToken, sec.TokenKindRefresh)
	if err != nil {
		return "", apperr.Unauthorized("Invalid or expired refresh token")
	}

	accessToken, err := service.tokens.IssueAccessToken(subject)
	if err != nil {
		return "", fmt.Errorf("auth_service_refresh_access_failed: %w", err)
	}

	return accessToken, nil
}
