// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements directory-backed authentication for the Silo API.

Silo never stores passwords. Credentials are verified against the corporate
LDAP directory; the local database only tracks which directory users exist,
whether they are active, and which roles they hold.

Architecture:

  - Verifier: Checks a username/password pair against the directory and
    returns the directory's view of the user.
  - Service: Orchestrates the login flow (verify, provision the local
    account, mint tokens) and the stateless refresh flow.
  - Handler: The HTTP delivery layer (login, refresh, logout).
  - LoginThrottle: Redis-backed fixed-window counter that slows down
    password guessing.
*/
package auth

import "context"

// DirectoryIdentity is the directory's view of an authenticated user,
// captured from the search entry that preceded the password bind.
type DirectoryIdentity struct {
	// Username as stored in the directory (falls back to the login name
	// when the attribute is absent).
	Username string

	// Email from the configured mail attribute; may be empty.
	Email string

	// DisplayName from the configured display-name attribute; may be empty.
	DisplayName string

	// Groups the user belongs to. Values are carried verbatim (group DNs
	// for memberOf-style attributes); duplicates are tolerated.
	Groups []string
}

// Verifier checks a credential pair against an identity source.
//
// # Contract
//
// A nil error means the password is correct for an existing, allowed user.
// Every failure is one of the package sentinels (possibly wrapped); see
// errors.go for the taxonomy. Implementations must never treat an
// infrastructure fault as a credential failure.
type Verifier interface {
	Authenticate(ctx context.Context, username, password string) (*DirectoryIdentity, error)
}
