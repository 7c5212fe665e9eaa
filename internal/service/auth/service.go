// Package auth implements the sign-in flow against the portal backend and
// the local checks on the held credential.
package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Eiad-Soufan/bm-requests-frontend/internal/auth"
	"github.com/Eiad-Soufan/bm-requests-frontend/internal/domain"
)

// portalAPI defines the backend calls needed by the auth service.
type portalAPI interface {
	ObtainToken(ctx context.Context, username, password string) (domain.TokenPair, error)
	CurrentUser(ctx context.Context) (domain.CurrentUser, error)
}

// sessionStore defines the session operations needed by the auth service.
type sessionStore interface {
	Current() domain.Session
	Save(sess domain.Session) error
	Clear() error
}

// Service implements auth operations.
type Service struct {
	log  *slog.Logger
	api  portalAPI
	sess sessionStore
}

// NewService creates a new auth service instance.
func NewService(logger *slog.Logger, api portalAPI, sess sessionStore) *Service {
	return &Service{
		log:  logger.With("service", "auth"),
		api:  api,
		sess: sess,
	}
}

// WhoAmI returns the held session. Returns ErrNoSession when logged out.
func (s *Service) WhoAmI() (domain.Session, error) {
	cur := s.sess.Current()
	if !cur.HasCredential() {
		return domain.Session{}, domain.ErrNoSession
	}
	return cur, nil
}

// Claims decodes the held access token. Returns ErrNoSession when logged out
// and ErrUnauthorized when the token is not a readable JWT.
func (s *Service) Claims() (auth.Claims, error) {
	cur, err := s.WhoAmI()
	if err != nil {
		return auth.Claims{}, err
	}
	c, err := auth.ParseClaims(cur.AccessToken)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("auth.Claims: %v: %w", err, domain.ErrUnauthorized)
	}
	return c, nil
}

// IsAdmin reports whether the held token carries is_staff=true. A malformed
// token is an error, never a silent false.
func (s *Service) IsAdmin() (bool, error) {
	c, err := s.Claims()
	if err != nil {
		return false, err
	}
	return c.IsStaff, nil
}

// RequireAdmin gates the broadcast composer.
func (s *Service) RequireAdmin() error {
	ok, err := s.IsAdmin()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("auth.RequireAdmin: staff only: %w", domain.ErrForbidden)
	}
	return nil
}
