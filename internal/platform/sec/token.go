// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides the security primitives of the platform: signed
// bearer tokens and the permission evaluation used on every request.
//
// # Architecture
//
// This package isolates security-sensitive code from the domain logic. It
// acts as an Infrastructure service injected into the Application layer via
// small interfaces (see [middleware.TokenVerifier]).
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenKind discriminates access tokens from refresh tokens.
//
// The kind is embedded in the signed payload so an access token can never be
// replayed against the refresh endpoint, and vice versa.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// ErrInvalidToken is returned by [TokenService.Verify] for every rejection:
// bad signature, malformed payload, elapsed expiry, or kind mismatch.
//
// Callers do not need to distinguish these cases — the client-side remedy is
// always to re-authenticate — so collapsing them avoids leaking which check
// failed.
var ErrInvalidToken = errors.New("sec: invalid token")

// TokenClaims is the payload embedded inside every Silo JWT.
type TokenClaims struct {
	jwt.RegisteredClaims

	// Kind marks the token as access or refresh ("type" on the wire,
	// matching what existing Silo clients expect).
	Kind TokenKind `json:"type"`
}

// TokenService signs and verifies time-limited bearer tokens using a single
// shared HMAC secret.
//
// # Statelessness
//
// Token validity is fully determined by signature and expiry. There is no
// revocation list: logout clears the client cookie but already-issued access
// tokens stay valid until natural expiry. Simplicity over immediate
// revocability is a deliberate trade-off.
type TokenService struct {
	secret     []byte
	method     jwt.SigningMethod
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenService creates a TokenService.
//
// # Parameters
//   - secret: The shared signing secret. Leaking it is total compromise.
//   - algorithm: HMAC algorithm identifier ("HS256", "HS384" or "HS512").
//   - issuer: The 'iss' claim stamped on every token.
//   - accessTTL / refreshTTL: Lifetimes for the two token kinds.
func NewTokenService(secret, algorithm, issuer string, accessTTL, refreshTTL time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("sec: signing secret must not be empty")
	}

	method := jwt.GetSigningMethod(algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok || method == nil {
		return nil, fmt.Errorf("sec: unsupported signing algorithm %q (HMAC variants only)", algorithm)
	}

	return &TokenService{
		secret:     []byte(secret),
		method:     method,
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

// IssueAccessToken mints a short-lived access token for the given subject.
func (service *TokenService) IssueAccessToken(subject string) (string, error) {
	return service.issue(subject, TokenKindAccess, service.accessTTL)
}

// IssueRefreshToken mints a long-lived refresh token for the given subject.
func (service *TokenService) IssueRefreshToken(subject string) (string, error) {
	return service.issue(subject, TokenKindRefresh, service.refreshTTL)
}

// issue signs a token embedding subject, kind, issued-at and expiry.
//
// Timestamps are numeric seconds-since-epoch in UTC (one-second precision),
// which is what jwt.NumericDate serializes to.
func (service *TokenService) issue(subject string, kind TokenKind, timeToLive time.Duration) (string, error) {
	currentTime := time.Now().UTC()
	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		Kind: kind,
	}

	token := jwt.NewWithClaims(service.method, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks signature, expiry and kind, returning the embedded subject.
//
// # Returns
//   - The subject string on success.
//   - [ErrInvalidToken] on any failure (see its doc for why they collapse).
func (service *TokenService) Verify(tokenString string, expected TokenKind) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Reject algorithm confusion: only the configured HMAC method is
		// acceptable, never "none" or an asymmetric scheme.
		if token.Method.Alg() != service.method.Alg() {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}

	if claims.Kind != expected || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
