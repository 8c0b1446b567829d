// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/silo/internal/platform/ctxutil"
	"github.com/taibuivan/silo/internal/platform/middleware"
	"github.com/taibuivan/silo/internal/platform/sec"
)

// # Test Doubles

type stubVerifier struct {
	subject string
	err     error

	gotToken string
	gotKind  sec.TokenKind
}

func (s *stubVerifier) Verify(tokenString string, expected sec.TokenKind) (string, error) {
	s.gotToken = tokenString
	s.gotKind = expected
	return s.subject, s.err
}

type stubResolver struct {
	principal *sec.Principal
	err       error

	gotSubject string
}

func (s *stubResolver) ResolvePrincipal(_ context.Context, subject string) (*sec.Principal, error) {
	s.gotSubject = subject
	return s.principal, s.err
}

// defaultPublicPaths mirrors the production default configuration.
var defaultPublicPaths = []string{"/auth/*", "/version"}

func adminPrincipal() *sec.Principal {
	return &sec.Principal{
		UserID:   1,
		Username: "admin",
		Grants: []sec.PermissionMap{
			{"*": {"GET", "POST", "PUT", "PATCH", "DELETE"}},
		},
	}
}

func memberPrincipal() *sec.Principal {
	return &sec.Principal{
		UserID:   7,
		Username: "jdoe",
		Grants: []sec.PermissionMap{
			{"/user/myinfo": {"GET"}},
		},
	}
}

// serve runs a request through the Authenticate middleware and records both
// the response and the principal the downstream handler observed.
func serve(t *testing.T, verifier *stubVerifier, resolver *stubResolver, request *http.Request) (*httptest.ResponseRecorder, bool, *sec.Principal) {
	t.Helper()

	var handlerCalled bool
	var seenPrincipal *sec.Principal

	inner := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		handlerCalled = true
		seenPrincipal = ctxutil.GetPrincipal(request.Context())
		writer.WriteHeader(http.StatusOK)
	})

	recorder := httptest.NewRecorder()
	middleware.Authenticate(verifier, resolver, defaultPublicPaths)(inner).ServeHTTP(recorder, request)

	return recorder, handlerCalled, seenPrincipal
}

func errorMessage(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()

	var envelope struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return envelope.Error
}

// # Tests

/*
TestAuthenticate_PublicPaths verifies that allow-listed paths bypass every
authentication check, with and without the API prefix.
*/
func TestAuthenticate_PublicPaths(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"login_with_prefix", "/api/v1/auth/login"},
		{"refresh_with_prefix", "/api/v1/auth/refresh"},
		{"version_with_prefix", "/api/v1/version"},
		{"version_without_prefix", "/version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &stubVerifier{err: errors.New("must not be called")}
			resolver := &stubResolver{err: errors.New("must not be called")}

			request := httptest.NewRequest(http.MethodPost, tt.path, nil)
			recorder, handlerCalled, principal := serve(t, verifier, resolver, request)

			assert.Equal(t, http.StatusOK, recorder.Code)
			assert.True(t, handlerCalled)
			assert.Nil(t, principal, "public requests must stay anonymous")
			assert.Empty(t, verifier.gotToken, "verifier must not run for public paths")
		})
	}
}

/*
TestAuthenticate_MissingOrMalformedHeader checks that requests without a
usable Authorization header are rejected with 401 before any token parsing.
*/
func TestAuthenticate_MissingOrMalformedHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"wrong_scheme", "Basic dXNlcjpwYXNz"},
		{"bare_token", "sometoken"},
		{"too_many_parts", "Bearer abc def"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &stubVerifier{subject: "jdoe"}
			resolver := &stubResolver{principal: adminPrincipal()}

			request := httptest.NewRequest(http.MethodGet, "/api/v1/item/1", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}

			recorder, handlerCalled, _ := serve(t, verifier, resolver, request)

			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
			assert.False(t, handlerCalled)
			assert.Empty(t, verifier.gotToken)
		})
	}
}

/*
TestAuthenticate_InvalidToken verifies a failing verifier yields 401 and that
the middleware demands an access token specifically.
*/
func TestAuthenticate_InvalidToken(t *testing.T) {
	verifier := &stubVerifier{err: sec.ErrInvalidToken}
	resolver := &stubResolver{principal: adminPrincipal()}

	request := httptest.NewRequest(http.MethodGet, "/api/v1/item/1", nil)
	request.Header.Set("Authorization", "Bearer not-a-real-token")

	recorder, handlerCalled, _ := serve(t, verifier, resolver, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.False(t, handlerCalled)
	assert.Equal(t, "not-a-real-token", verifier.gotToken)
	assert.Equal(t, sec.TokenKindAccess, verifier.gotKind, "middleware must demand access tokens")
	assert.Equal(t, "Could not validate credentials", errorMessage(t, recorder))
	assert.Empty(t, resolver.gotSubject, "resolver must not run for invalid tokens")
}

/*
TestAuthenticate_UnknownUser verifies that a valid token whose subject cannot
be resolved (deleted or deactivated user) is rejected with the exact same
status and message as a bad token.
*/
func TestAuthenticate_UnknownUser(t *testing.T) {
	tests := []struct {
		name      string
		principal *sec.Principal
		err       error
	}{
		{"resolver_error", nil, errors.New("user not found")},
		{"nil_principal", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &stubVerifier{subject: "404"}
			resolver := &stubResolver{principal: tt.principal, err: tt.err}

			request := httptest.NewRequest(http.MethodGet, "/api/v1/item/1", nil)
			request.Header.Set("Authorization", "Bearer valid-token")

			recorder, handlerCalled, _ := serve(t, verifier, resolver, request)

			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
			assert.False(t, handlerCalled)
			assert.Equal(t, "404", resolver.gotSubject)
			assert.Equal(t, "Could not validate credentials", errorMessage(t, recorder),
				"unknown user must be indistinguishable from a bad token")
		})
	}
}

/*
TestAuthenticate_PermissionCheck exercises the authorization decision for a
member with the default grant and for an admin with the wildcard grant.
*/
func TestAuthenticate_PermissionCheck(t *testing.T) {
	tests := []struct {
		name       string
		principal  *sec.Principal
		method     string
		path       string
		wantStatus int
	}{
		{"member_allowed_myinfo", memberPrincipal(), http.MethodGet, "/api/v1/user/myinfo", http.StatusOK},
		{"member_denied_other_path", memberPrincipal(), http.MethodGet, "/api/v1/item/1", http.StatusForbidden},
		{"member_denied_other_method", memberPrincipal(), http.MethodPost, "/api/v1/user/myinfo", http.StatusForbidden},
		{"admin_allowed_everything", adminPrincipal(), http.MethodDelete, "/api/v1/storage/room/3", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &stubVerifier{subject: "1"}
			resolver := &stubResolver{principal: tt.principal}

			request := httptest.NewRequest(tt.method, tt.path, nil)
			request.Header.Set("Authorization", "Bearer valid-token")

			recorder, handlerCalled, seenPrincipal := serve(t, verifier, resolver, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantStatus == http.StatusOK {
				require.True(t, handlerCalled)
				require.NotNil(t, seenPrincipal)
				assert.Equal(t, tt.principal.UserID, seenPrincipal.UserID)
			} else {
				assert.False(t, handlerCalled)
				assert.Equal(t, "Not enough permissions", errorMessage(t, recorder))
			}
		})
	}
}
