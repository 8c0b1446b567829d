// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"strings"

	"github.com/taibuivan/silo/pkg/glob"
)

// PermissionMap maps URL path glob patterns to the HTTP methods a role may
// use on matching paths.
//
// Patterns are absolute (always start with '/'; the bootstrapped admin
// wildcard "*" is the one exception) and use [glob] semantics: '*' matches
// any run of characters including '/', '?' matches exactly one character,
// and the whole path must match. Method names are compared upper-cased.
type PermissionMap map[string][]string

// Allows reports whether this map grants the given method on the given path.
func (permissions PermissionMap) Allows(method, path string) bool {
	method = strings.ToUpper(method)

	for pattern, methods := range permissions {
		if !glob.Match(pattern, path) {
			continue
		}
		for _, allowed := range methods {
			if strings.ToUpper(allowed) == method {
				return true
			}
		}
	}

	return false
}

// Principal is the authenticated actor for the duration of a request.
//
// It is constructed by the authentication middleware after token
// verification and role lookup, attached to the request context, and
// discarded when the request ends. It is never persisted.
type Principal struct {
	// UserID is the stable subject identifier (the persisted user's
	// primary key).
	UserID int

	// Username is the directory login name, carried for logging.
	Username string

	// Grants holds the permission map of every role assigned to the user.
	Grants []PermissionMap
}

// Allowed decides whether the principal may perform method on path.
//
// # Decision Procedure
//
// Default-deny: the first grant across any role that matches both path and
// method wins; exhausting all grants without a match denies. Because every
// rule is purely additive, the result is independent of role iteration
// order — granting via any one role is sufficient.
func (principal *Principal) Allowed(method, path string) bool {
	if principal == nil {
		return false
	}

	// Stored patterns are absolute; tolerate callers passing "item/1".
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	for _, grant := range principal.Grants {
		if grant.Allows(method, path) {
			return true
		}
	}

	return false
}
