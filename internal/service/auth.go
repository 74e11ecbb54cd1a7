package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"nimbushost/internal/mailer"
	"nimbushost/internal/models"
	"nimbushost/internal/store"
	"nimbushost/internal/token"
)

// AuthService owns the credential lifecycle: signup, email
// verification, login, password reset and session checks. It holds no
// state between calls; every dependency is injected.
type AuthService struct {
	store       store.UserStore
	issuer      *token.Issuer
	mail        mailer.Dispatcher
	frontendURL string
}

func NewAuthService(st store.UserStore, issuer *token.Issuer, mail mailer.Dispatcher, frontendURL string) *AuthService {
	return &AuthService{store: st, issuer: issuer, mail: mail, frontendURL: frontendURL}
}

// Signup creates an unverified account, issues a session token and
// sends the verification email. The email send is attempted once and
// its failure fails the whole call, even though the account row is
// already committed by then.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*models.User, string, error) {
	if name == "" || email == "" || password == "" {
		return nil, "", ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	code, err := token.VerificationCode()
	if err != nil {
		return nil, "", fmt.Errorf("generate verification code: %w", err)
	}
	expiry := time.Now().Add(token.VerifyCodeTTL)

	u, err := s.store.Create(ctx, &models.User{
		Email:             email,
		Name:              name,
		PasswordHash:      string(hash),
		VerifyToken:       &code,
		VerifyTokenExpiry: &expiry,
	})
	if errors.Is(err, store.ErrDuplicateEmail) {
		return nil, "", ErrConflict
	} else if err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	sessionToken, err := s.issuer.IssueSession(u.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue session: %w", err)
	}

	if err := s.mail.Send(ctx, mailer.TemplateVerification, u.Email, map[string]string{
		"name":      u.Name,
		"code":      code,
		"verifyURL": s.frontendURL + "/verify-email?code=" + code,
	}); err != nil {
		// the account exists at this point; the caller still sees failure
		log.WithError(err).WithField("user_id", u.ID).Error("verification email failed after signup committed")
		return nil, "", errors.Join(ErrNotificationDelivery, err)
	}

	return u, sessionToken, nil
}

// VerifyEmail consumes an unexpired verification code. Wrong and
// expired codes fail identically. No new session token is issued.
func (s *AuthService) VerifyEmail(ctx context.Context, code string) (*models.User, error) {
	if code == "" {
		return nil, ErrInvalidToken
	}
	u, err := s.store.ConsumeVerifyToken(ctx, code, time.Now())
	if errors.Is(err, store.ErrNoActiveToken) {
		return nil, ErrInvalidToken
	} else if err != nil {
		return nil, fmt.Errorf("consume verify token: %w", err)
	}
	return u, nil
}

// Login authenticates by email or name. Unknown identifier and wrong
// password collapse into the same error so account existence is never
// revealed.
func (s *AuthService) Login(ctx context.Context, name, email, password string) (*models.User, string, error) {
	u, err := s.store.ByEmailOrName(ctx, email, name)
	if errors.Is(err, store.ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	} else if err != nil {
		return nil, "", fmt.Errorf("lookup user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.store.RecordLogin(ctx, u.ID, now); err != nil {
		return nil, "", fmt.Errorf("record login: %w", err)
	}
	u.LastLogin = &now

	sessionToken, err := s.issuer.IssueSession(u.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue session: %w", err)
	}
	return u, sessionToken, nil
}

// RequestPasswordReset stores a fresh reset token and emails the reset
// link. Unlike login, a missing account is reported as such.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	u, err := s.store.ByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	} else if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}

	resetToken, err := token.ResetToken()
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}
	if err := s.store.SetResetToken(ctx, u.ID, resetToken, time.Now().Add(token.ResetTokenTTL)); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	if err := s.mail.Send(ctx, mailer.TemplateResetRequest, u.Email, map[string]string{
		"name":     u.Name,
		"resetURL": s.frontendURL + "/reset-password/" + resetToken,
	}); err != nil {
		log.WithError(err).WithField("user_id", u.ID).Error("reset email failed after token stored")
		return errors.Join(ErrNotificationDelivery, err)
	}
	return nil
}

// ResetPassword consumes an unexpired reset token and installs the new
// password. The token is single-use; a replay fails like a wrong token.
func (s *AuthService) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	if newPassword == "" {
		return ErrValidation
	}
	if resetToken == "" {
		return ErrInvalidToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	u, err := s.store.ConsumeResetToken(ctx, resetToken, string(hash), time.Now())
	if errors.Is(err, store.ErrNoActiveToken) {
		return ErrInvalidToken
	} else if err != nil {
		return fmt.Errorf("consume reset token: %w", err)
	}

	if err := s.mail.Send(ctx, mailer.TemplateResetSuccess, u.Email, map[string]string{
		"name": u.Name,
	}); err != nil {
		log.WithError(err).WithField("user_id", u.ID).Error("reset-success email failed after password replaced")
		return errors.Join(ErrNotificationDelivery, err)
	}
	return nil
}

// CheckAuth resolves a previously validated session identity back to
// its user record.
func (s *AuthService) CheckAuth(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.store.ByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return u, nil
}
