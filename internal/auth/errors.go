// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "errors"

// # Verification Error Taxonomy
//
// The verifier reports failures through these sentinels so the service layer
// can choose the right HTTP status without parsing directory error strings.
// Callers test with [errors.Is]; the wrapped cause keeps the raw directory
// diagnostic for logs.
var (
	// ErrInvalidCredentials: the directory rejected the password for an
	// existing user.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrUserNotFound: the search under the base DN returned no entry for
	// the username.
	ErrUserNotFound = errors.New("auth: user not found in directory")

	// ErrNotAllowed: the user exists but belongs to none of the configured
	// allowed groups.
	ErrNotAllowed = errors.New("auth: user is not in an allowed group")

	// ErrBindNotAllowed: the directory refused access to the user's data
	// (insufficient access rights on search or bind).
	ErrBindNotAllowed = errors.New("auth: not allowed to fetch user data")

	// ErrBind: the directory reported a protocol-level bind failure that is
	// neither bad credentials nor an access refusal.
	ErrBind = errors.New("auth: directory bind failed")

	// ErrAuthTimeout: the directory was unreachable or did not answer in
	// time. Surfaces as 503, never as 401.
	ErrAuthTimeout = errors.New("auth: directory timeout")

	// ErrAuthentication: any verifier failure that fits no other sentinel.
	// Fail closed: treated as an infrastructure problem, not a bad password.
	ErrAuthentication = errors.New("auth: authentication failed")
)
