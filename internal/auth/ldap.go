// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/go-ldap/ldap/v3"

	"github.com/taibuivan/silo/pkg/slice"
)

// usernamePlaceholder is the token substituted into the DN template and the
// search filter template.
const usernamePlaceholder = "{username}"

// LDAPConfig carries the directory settings the verifier needs. It is
// assembled from the application configuration at startup.
type LDAPConfig struct {
	ServerURI       string
	BaseDN          string
	UserDNTemplate  string
	UserFilter      string
	BindDN          string
	BindPassword    string
	UseTLS          bool
	SkipTLSVerify   bool
	ConnectTimeout  time.Duration
	ReceiveTimeout  time.Duration
	UsernameAttr    string
	MailAttr        string
	DisplayNameAttr string
	GroupsAttr      string
	AllowedGroups   []string
}

// directoryConn is the slice of [*ldap.Conn] the verifier actually uses.
// Narrowing it to an interface lets tests drive the full decision procedure
// against a fake directory.
type directoryConn interface {
	SetTimeout(timeout time.Duration)
	Bind(username, password string) error
	Search(request *ldap.SearchRequest) (*ldap.SearchResult, error)
	Close() error
}

// dialFunc opens a connection to the directory.
type dialFunc func() (directoryConn, error)

// LDAPVerifier implements [Verifier] against an LDAP directory.
//
// # Flow
//
//  1. Escape the username and substitute it into the search filter.
//  2. Dial the server (optionally over TLS) and apply the receive timeout.
//  3. Bind with the service account (or proceed anonymously when none is
//     configured) and search the base DN for the user's entry.
//  4. Refuse users outside the allowed-groups list before any password bind.
//  5. Bind as the user's DN with the presented password; this is the actual
//     credential check.
//
// Steps 3 and 4 run before the password bind on purpose: an unknown or
// disallowed user is rejected without ever sending their password to the
// directory as a bind attempt.
type LDAPVerifier struct {
	config LDAPConfig
	logger *slog.Logger
	dial   dialFunc
}

// NewLDAPVerifier constructs an [LDAPVerifier] with the production dialer.
func NewLDAPVerifier(config LDAPConfig, logger *slog.Logger) *LDAPVerifier {
	verifier := &LDAPVerifier{
		config: config,
		logger: logger,
	}
	verifier.dial = verifier.dialDirectory
	return verifier
}

// Authenticate implements [Verifier].
func (verifier *LDAPVerifier) Authenticate(ctx context.Context, username, password string) (*DirectoryIdentity, error) {

	// An empty password would turn the user bind into an unauthenticated
	// bind, which many directories accept. Reject it up front.
	if password == "" {
		return nil, fmt.Errorf("%w: empty password", ErrInvalidCredentials)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthTimeout, err)
	}

	// ── 1. Connect ────────────────────────────────────────────────────────
	connection, err := verifier.dial()
	if err != nil {
		return nil, mapDirectoryError(err)
	}
	defer func() { _ = connection.Close() }()

	connection.SetTimeout(verifier.config.ReceiveTimeout)

	// ── 2. Service Bind ───────────────────────────────────────────────────
	// A configured service account reads the user's entry; otherwise the
	// search runs anonymously.
	if verifier.config.BindDN != "" {
		if err := connection.Bind(verifier.config.BindDN, verifier.config.BindPassword); err != nil {
			verifier.logger.Error("ldap_service_bind_failed", slog.Any("error", err))
			return nil, mapDirectoryError(err)
		}
	}

	// ── 3. Entry Lookup ───────────────────────────────────────────────────
	escapedUsername := ldap.EscapeFilter(username)
	filter := strings.ReplaceAll(verifier.config.UserFilter, usernamePlaceholder, escapedUsername)

	searchRequest := ldap.NewSearchRequest(
		verifier.config.BaseDN,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		0, // no size limit
		int(verifier.config.ReceiveTimeout.Seconds()),
		false,
		filter,
		[]string{
			verifier.config.UsernameAttr,
			verifier.config.MailAttr,
			verifier.config.DisplayNameAttr,
			verifier.config.GroupsAttr,
		},
		nil,
	)

	searchResult, err := connection.Search(searchRequest)
	if err != nil {
		return nil, mapDirectoryError(err)
	}

	if len(searchResult.Entries) == 0 {
		return nil, fmt.Errorf("%w: no entry for filter %s", ErrUserNotFound, filter)
	}

	entry := searchResult.Entries[0]
	groups := entry.GetAttributeValues(verifier.config.GroupsAttr)

	// ── 4. Group Allow-List ───────────────────────────────────────────────
	if len(verifier.config.AllowedGroups) > 0 && !intersects(groups, verifier.config.AllowedGroups) {
		return nil, fmt.Errorf("%w: user %s matches no allowed group", ErrNotAllowed, username)
	}

	// ── 5. Password Bind ──────────────────────────────────────────────────
	// The bind DN comes from the template, not the found entry, so the
	// credential check is independent of how the search located the user.
	userDN := strings.ReplaceAll(verifier.config.UserDNTemplate, usernamePlaceholder, ldap.EscapeDN(username))

	if err := connection.Bind(userDN, password); err != nil {
		return nil, mapUserBindError(err)
	}

	identity := &DirectoryIdentity{
		Username:    entry.GetAttributeValue(verifier.config.UsernameAttr),
		Email:       entry.GetAttributeValue(verifier.config.MailAttr),
		DisplayName: entry.GetAttributeValue(verifier.config.DisplayNameAttr),
		Groups:      groups,
	}
	if identity.Username == "" {
		identity.Username = username
	}

	return identity, nil
}

// dialDirectory is the production dialFunc.
func (verifier *LDAPVerifier) dialDirectory() (directoryConn, error) {
	dialer := &net.Dialer{Timeout: verifier.config.ConnectTimeout}

	options := []ldap.DialOpt{ldap.DialWithDialer(dialer)}
	if verifier.config.UseTLS {
		options = append(options, ldap.DialWithTLSConfig(&tls.Config{
			InsecureSkipVerify: verifier.config.SkipTLSVerify,
		}))
	}

	connection, err := ldap.DialURL(verifier.config.ServerURI, options...)
	if err != nil {
		return nil, err
	}
	return connection, nil
}

// intersects reports whether any member of values appears in allowed.
func intersects(values, allowed []string) bool {
	for _, value := range values {
		if slice.Contains(allowed, value) {
			return true
		}
	}
	return false
}

// mapDirectoryError classifies failures of the connect / service bind /
// search phases, where the user's password is not yet involved.
func mapDirectoryError(err error) error {
	switch {
	case ldap.IsErrorWithCode(err, ldap.LDAPResultNoSuchObject):
		return fmt.Errorf("%w: %v", ErrUserNotFound, err)
	case ldap.IsErrorWithCode(err, ldap.LDAPResultInsufficientAccessRights):
		return fmt.Errorf("%w: %v", ErrBindNotAllowed, err)
	case ldap.IsErrorWithCode(err, ldap.ErrorNetwork):
		return fmt.Errorf("%w: %v", ErrAuthTimeout, err)
	case isNetworkError(err):
		return fmt.Errorf("%w: %v", ErrAuthTimeout, err)
	case isLDAPError(err):
		return fmt.Errorf("%w: %v", ErrBind, err)
	default:
		return fmt.Errorf("%w: %v", ErrAuthentication, err)
	}
}

// mapUserBindError classifies failures of the password bind, the only phase
// where a directory rejection means the credentials themselves are wrong.
// A service bind hitting the same result code stays an [ErrBind]: bad
// service-account credentials are a deployment problem, not a user one.
func mapUserBindError(err error) error {
	if ldap.IsErrorWithCode(err, ldap.LDAPResultInvalidCredentials) {
		return fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}
	return mapDirectoryError(err)
}

func isLDAPError(err error) bool {
	var ldapErr *ldap.Error
	return errors.As(err, &ldapErr)
}

func isNetworkError(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr)
}
