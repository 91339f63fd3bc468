// Package auth holds the client-side session: the signed-in user, the
// token pair, and change notification for anything that keys state off the
// current identity.
package auth

import (
	"strconv"
	"sync"
	"time"

	apperrors "github.com/ecofinds/marketplace-client/internal/errors"
	"github.com/ecofinds/marketplace-client/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// Listener is invoked after the signed-in identity changes. The user is
// nil after sign-out.
type Listener func(user *models.User)

type Session struct {
	mu           sync.RWMutex
	user         *models.User
	accessToken  string
	refreshToken string
	expiresAt    time.Time

	listeners []Listener
}

func NewSession() *Session {
	return &Session{}
}

// AccessToken implements api.TokenSource.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.accessToken
}

// CurrentUser returns the signed-in user, or nil.
func (s *Session) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.user
}

func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.expiresAt
}

// OnChange registers a listener for identity changes. Listeners run
// synchronously on the goroutine that changed the session.
func (s *Session) OnChange(fn func(user *models.User)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// SignIn installs the token pair and user from a successful auth response.
// The access token's claims are decoded (not verified; only the backend
// holds the key) to cross-check the subject and record expiry.
func (s *Session) SignIn(resp *models.AuthResponse) error {
	if resp == nil || resp.AccessToken == "" || resp.User == nil {
		return apperrors.UnauthorizedError("Auth response is missing token or user")
	}

	claims := &models.Claims{}
	parser := jwt.NewParser()

	if _, _, err := parser.ParseUnverified(resp.AccessToken, claims); err != nil {
		return apperrors.UnauthorizedError("Malformed access token").WithError(err)
	}

	if claims.Subject != "" && claims.Subject != strconv.FormatInt(resp.User.ID, 10) {
		return apperrors.UnauthorizedError("Token subject does not match user")
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	s.mu.Lock()
	s.user = resp.User
	s.accessToken = resp.AccessToken
	if resp.RefreshToken != "" {
		s.refreshToken = resp.RefreshToken
	}
	s.expiresAt = expiresAt
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	user := s.user
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(user)
	}

	return nil
}

// SignOut clears the session and notifies listeners with a nil user.
func (s *Session) SignOut() {
	s.mu.Lock()
	s.user = nil
	s.accessToken = ""
	s.refreshToken = ""
	s.expiresAt = time.Time{}
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(nil)
	}
}

// RefreshToken exposes the stored refresh token so a caller can swap it in
// for the refresh endpoint.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.refreshToken
}

// SetAccessToken replaces only the access token, as after a refresh.
func (s *Session) SetAccessToken(token string) {
	claims := &models.Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err == nil && claims.ExpiresAt != nil {
		s.mu.Lock()
		s.expiresAt = claims.ExpiresAt.Time
		s.mu.Unlock()
	}

	s.mu.Lock()
	s.accessToken = token
	s.mu.Unlock()
}
