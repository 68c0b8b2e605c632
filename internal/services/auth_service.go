package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bargainbay/internal/domain"
	applog "bargainbay/internal/log"
)

var ErrBadCreds = errors.New("invalid email or password")

type AuthService struct {
	Gateway AuthGateway
	Creds   CredentialStore
	Ratings *Ratings
}

// Login exchanges email/password for credentials and remembers them.
// A rejected login maps to ErrBadCreds; transport failures are wrapped as is.
func (s *AuthService) Login(ctx context.Context, sess *Session, email, password string) (domain.Credentials, error) {
	const op = "AuthService.Login"

	c, err := s.Gateway.Login(ctx, email, password)
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("%s: %w", op, err)
	}
	if c.Token == "" {
		return domain.Credentials{}, ErrBadCreds
	}
	if c.Role == "" {
		c.Role = domain.RoleUser
	}
	sess.View(func(sess *Session) { sess.Creds = c })
	if err := s.Creds.Save(ctx, sess.ID, c); err != nil {
		applog.Error(nil, "auth.creds.save.fail", err, map[string]any{"sid": sess.ID})
	}
	return c, nil
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) error {
	name = strings.TrimSpace(name)
	if err := s.Gateway.Register(ctx, name, email, password); err != nil {
		return fmt.Errorf("AuthService.Register: %w", err)
	}
	return nil
}

// Logout resets the session and wipes the durable state: credentials and ratings.
func (s *AuthService) Logout(ctx context.Context, sess *Session) error {
	sess.Reset()
	var errs []error
	if err := s.Creds.Clear(ctx, sess.ID); err != nil {
		errs = append(errs, err)
	}
	if s.Ratings != nil {
		if err := s.Ratings.Reset(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Restore reloads persisted credentials into a fresh session. Missing or
// unreadable credentials leave the session logged out.
func (s *AuthService) Restore(ctx context.Context, sess *Session) bool {
	c, err := s.Creds.Load(ctx, sess.ID)
	if err != nil {
		applog.Error(nil, "auth.creds.load.fail", err, map[string]any{"sid": sess.ID})
		return false
	}
	if !c.LoggedIn() {
		return false
	}
	sess.View(func(sess *Session) { sess.Creds = c })
	return true
}
