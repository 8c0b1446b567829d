// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/silo/internal/platform/constants"
	"github.com/taibuivan/silo/internal/platform/sec"
)

// newTestHandler assembles a Handler over a real service with fake directory
// and account seams.
func newTestHandler(t *testing.T, verifier Verifier) (*Handler, *sec.TokenService) {
	t.Helper()

	tokens := newTokenService(t)
	accounts := &fakeAccounts{account: &Account{ID: 42, Username: "jdoe", IsActive: true}}
	service := NewService(verifier, tokens, accounts, &fakeThrottle{})

	return NewHandler(service, 7*24*time.Hour), tokens
}

func postLogin(handler *Handler, form url.Values) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	recorder := httptest.NewRecorder()
	handler.Routes().ServeHTTP(recorder, request)
	return recorder
}

func findCookie(t *testing.T, recorder *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

/*
TestHandler_Login_Success checks the OAuth2-style response body and the
hardened refresh cookie.
*/
func TestHandler_Login_Success(t *testing.T) {
	handler, tokens := newTestHandler(t, &fakeVerifier{identity: jdoeIdentity()})

	recorder := postLogin(handler, url.Values{
		"username": {"jdoe"},
		"password": {"correct-horse"},
	})

	require.Equal(t, http.StatusOK, recorder.Code)

	var body tokenResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "bearer", body.TokenType)

	subject, err := tokens.Verify(body.AccessToken, sec.TokenKindAccess)
	require.NoError(t, err)
	assert.Equal(t, "42", subject)

	cookie := findCookie(t, recorder, constants.RefreshTokenCookieName)
	require.NotNil(t, cookie, "login must set the refresh cookie")
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	assert.Equal(t, constants.RefreshTokenCookiePath, cookie.Path)
	assert.Equal(t, int((7 * 24 * time.Hour).Seconds()), cookie.MaxAge)

	subject, err = tokens.Verify(cookie.Value, sec.TokenKindRefresh)
	require.NoError(t, err)
	assert.Equal(t, "42", subject)
}

/*
TestHandler_Login_Validation rejects requests missing either credential field
before touching the directory.
*/
func TestHandler_Login_Validation(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
	}{
		{"missing_both", url.Values{}},
		{"missing_password", url.Values{"username": {"jdoe"}}},
		{"missing_username", url.Values{"password": {"pw"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &fakeVerifier{identity: jdoeIdentity()}
			handler, _ := newTestHandler(t, verifier)

			recorder := postLogin(handler, tt.form)

			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			assert.Empty(t, verifier.gotUsername, "directory must not be contacted")
		})
	}
}

/*
TestHandler_Login_BadCredentials maps a directory rejection to 401 with no
refresh cookie.
*/
func TestHandler_Login_BadCredentials(t *testing.T) {
	handler, _ := newTestHandler(t, &fakeVerifier{err: ErrInvalidCredentials})

	recorder := postLogin(handler, url.Values{
		"username": {"jdoe"},
		"password": {"wrong"},
	})

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Nil(t, findCookie(t, recorder, constants.RefreshTokenCookieName))
}

/*
TestHandler_Refresh exercises the cookie-based refresh endpoint.
*/
func TestHandler_Refresh(t *testing.T) {
	handler, tokens := newTestHandler(t, &fakeVerifier{})

	t.Run("success", func(t *testing.T) {
		refreshToken, err := tokens.IssueRefreshToken("42")
		require.NoError(t, err)

		request := httptest.NewRequest(http.MethodPost, "/refresh", nil)
		request.AddCookie(&http.Cookie{Name: constants.RefreshTokenCookieName, Value: refreshToken})

		recorder := httptest.NewRecorder()
		handler.Routes().ServeHTTP(recorder, request)

		require.Equal(t, http.StatusOK, recorder.Code)

		var body tokenResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, "bearer", body.TokenType)

		subject, err := tokens.Verify(body.AccessToken, sec.TokenKindAccess)
		require.NoError(t, err)
		assert.Equal(t, "42", subject)
	})

	t.Run("missing_cookie", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodPost, "/refresh", nil)

		recorder := httptest.NewRecorder()
		handler.Routes().ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("access_token_in_cookie", func(t *testing.T) {
		accessToken, err := tokens.IssueAccessToken("42")
		require.NoError(t, err)

		request := httptest.NewRequest(http.MethodPost, "/refresh", nil)
		request.AddCookie(&http.Cookie{Name: constants.RefreshTokenCookieName, Value: accessToken})

		recorder := httptest.NewRecorder()
		handler.Routes().ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

/*
TestClientIP keeps the throttle key stable behind proxy chains: only the
first X-Forwarded-For element identifies the client.
*/
func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		expect  string
	}{
		{
			name:    "real_ip_wins",
			headers: map[string]string{constants.HeaderXRealIP: "203.0.113.7"},
			expect:  "203.0.113.7",
		},
		{
			name:    "forwarded_chain_first_element",
			headers: map[string]string{constants.HeaderXForwardedFor: "203.0.113.7, 10.0.0.1, 10.0.0.2"},
			expect:  "203.0.113.7",
		},
		{
			name:    "forwarded_single",
			headers: map[string]string{constants.HeaderXForwardedFor: "203.0.113.7"},
			expect:  "203.0.113.7",
		},
		{
			name:   "direct_connection",
			expect: "192.0.2.1:1234",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodPost, "/login", nil)
			for header, value := range tt.headers {
				request.Header.Set(header, value)
			}

			assert.Equal(t, tt.expect, clientIP(request))
		})
	}
}

/*
TestHandler_Logout verifies the cookie is expired and nothing else changes.
*/
func TestHandler_Logout(t *testing.T) {
	handler, _ := newTestHandler(t, &fakeVerifier{})

	request := httptest.NewRequest(http.MethodPost, "/logout", nil)
	recorder := httptest.NewRecorder()
	handler.Routes().ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)

	cookie := findCookie(t, recorder, constants.RefreshTokenCookieName)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Less(t, cookie.MaxAge, 0, "cookie must be expired")
}
