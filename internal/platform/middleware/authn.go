// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/taibuivan/silo/internal/platform/apperr"
	"github.com/taibuivan/silo/internal/platform/constants"
	"github.com/taibuivan/silo/internal/platform/ctxutil"
	"github.com/taibuivan/silo/internal/platform/respond"
	"github.com/taibuivan/silo/internal/platform/sec"
	"github.com/taibuivan/silo/pkg/glob"
)

// TokenVerifier defines the interface needed to verify bearer tokens.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the concrete
// [sec.TokenService], allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {
	Verify(tokenString string, expected sec.TokenKind) (string, error)
}

// PrincipalResolver loads the full security principal for a token subject.
//
// Implemented by the user service: the subject is the stringified user ID
// minted at login. The resolver looks the user up, checks the active flag,
// and gathers the permission grants of every assigned role.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, subject string) (*sec.Principal, error)
}

// Authenticate enforces bearer-token authentication and permission checks on
// every request outside the public allow-list.
//
// # Flow
//  1. Strip the /api/v1 prefix and match the path against publicPaths; a hit
//     proceeds anonymously with no further checks.
//  2. Require an 'Authorization: Bearer <token>' header; absence or a
//     malformed value aborts with HTTP 401.
//  3. Verify the token via [TokenVerifier], demanding an access token. A
//     refresh token presented here is rejected like any invalid token.
//  4. Resolve the subject into a [*sec.Principal]. An unknown or deactivated
//     user aborts with HTTP 401 — deliberately indistinguishable from a bad
//     token, so probing responses leak nothing about account state.
//  5. Check the principal's grants against method and stripped path; a miss
//     aborts with HTTP 403.
//  6. Inject the principal into the request context for downstream handlers.
//
// # Parameters
//   - verifier: Verifies token signature, expiry and kind.
//   - resolver: Loads the principal behind a verified subject.
//   - publicPaths: Glob patterns (prefix-stripped) exempt from authentication.
func Authenticate(verifier TokenVerifier, resolver PrincipalResolver, publicPaths []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Public Path Exemption ──────────────────────────────────────
			matchPath := stripAPIPrefix(request.URL.Path)
			if glob.MatchAny(publicPaths, matchPath) {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Header Extraction ──────────────────────────────────────────
			authHeader := request.Header.Get(constants.HeaderAuthorization)
			if authHeader == "" {
				respond.Error(writer, request, apperr.Unauthorized("Not authenticated"))
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			subject, err := verifier.Verify(parts[1], sec.TokenKindAccess)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Could not validate credentials"))
				return
			}

			// ── 4. Principal Resolution ───────────────────────────────────────
			principal, err := resolver.ResolvePrincipal(request.Context(), subject)
			if err != nil || principal == nil {
				// Same status and message as a bad token on purpose.
				respond.Error(writer, request, apperr.Unauthorized("Could not validate credentials"))
				return
			}

			// ── 5. Permission Check ───────────────────────────────────────────
			if !principal.Allowed(request.Method, matchPath) {
				respond.Error(writer, request, apperr.Forbidden("Not enough permissions"))
				return
			}

			// ── 6. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithPrincipal(request.Context(), principal)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// stripAPIPrefix removes the versioned mount point from a request path so it
// can be compared against stored permission and public-path patterns, which
// are written without the prefix.
func stripAPIPrefix(path string) string {
	stripped, found := strings.CutPrefix(path, constants.APIPrefix)
	if !found || (stripped != "" && !strings.HasPrefix(stripped, "/")) {
		// Not under the prefix (or a lookalike such as "/api/v10"): leave as-is.
		return path
	}
	if stripped == "" {
		stripped = "/"
	}
	return stripped
}
