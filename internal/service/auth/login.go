package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Eiad-Soufan/bm-requests-frontend/internal/domain"
)

// Login exchanges credentials for a token pair, resolves the identity behind
// it and persists the session. Any previously held session is cleared first.
// On failure nothing is left behind. Rejected credentials map to
// ErrUnauthorized.
func (s *Service) Login(ctx context.Context, input LoginInput) (domain.Session, error) {
	// Normalize input before validation.
	input.Username = strings.TrimSpace(input.Username)

	// Step 1: Validate input
	if err := input.Validate(); err != nil {
		return domain.Session{}, err
	}

	// Step 2: Drop whatever an earlier login left behind
	if err := s.sess.Clear(); err != nil {
		return domain.Session{}, fmt.Errorf("auth.Login clear: %w", err)
	}

	// Step 3: Obtain the token pair
	pair, err := s.api.ObtainToken(ctx, input.Username, input.Password)
	if err != nil {
		if errors.Is(err, domain.ErrSessionInvalidated) {
			return domain.Session{}, fmt.Errorf("auth.Login: invalid credentials: %w", domain.ErrUnauthorized)
		}
		return domain.Session{}, fmt.Errorf("auth.Login obtain token: %w", err)
	}

	// Step 4: Hold the credential so the current-user call is authenticated
	partial := domain.Session{AccessToken: pair.Access, RefreshToken: pair.Refresh, Username: input.Username}
	if err := s.sess.Save(partial); err != nil {
		return domain.Session{}, fmt.Errorf("auth.Login save token: %w", err)
	}

	// Step 5: Resolve the identity
	user, err := s.api.CurrentUser(ctx)
	if err != nil {
		s.rollback(ctx)
		return domain.Session{}, fmt.Errorf("auth.Login current user: %w", err)
	}

	// Step 6: Persist the full session
	full := partial
	full.UserID = user.ID
	full.Role = user.Role
	if !full.Role.IsValid() {
		full.Role = domain.RoleEmployee
	}
	if user.Username != "" {
		full.Username = user.Username
	}
	if err := s.sess.Save(full); err != nil {
		s.rollback(ctx)
		return domain.Session{}, fmt.Errorf("auth.Login save session: %w", err)
	}

	s.log.InfoContext(ctx, "user logged in",
		slog.String("username", full.Username),
		slog.String("role", full.Role.String()))

	return full, nil
}

func (s *Service) rollback(ctx context.Context) {
	if err := s.sess.Clear(); err != nil {
		s.log.ErrorContext(ctx, "login rollback failed", slog.String("error", err.Error()))
	}
}

// Logout clears the local session. The backend keeps no session state, so
// there is nothing to revoke remotely.
func (s *Service) Logout(ctx context.Context) error {
	cur := s.sess.Current()
	if err := s.sess.Clear(); err != nil {
		return fmt.Errorf("auth.Logout: %w", err)
	}
	if cur.HasCredential() {
		s.log.InfoContext(ctx, "user logged out", slog.String("username", cur.Username))
	}
	return nil
}
