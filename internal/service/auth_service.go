package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/lielreyter/IDJ/internal/auth"
	apperrors "github.com/lielreyter/IDJ/internal/errors"
	"github.com/lielreyter/IDJ/internal/mail"
	"github.com/lielreyter/IDJ/internal/model"
	"github.com/lielreyter/IDJ/internal/repository"
)

const (
	bcryptCost        = 10
	minPasswordLength = 6
)

// AuthService orchestrates signup, login, OAuth upsert, email verification,
// and the password reset flow against the credential store and token codec.
type AuthService interface {
	Signup(ctx context.Context, username, email, password string) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	OAuthLogin(ctx context.Context, email, username, provider, providerID string) (*model.User, string, error)
	VerifyEmail(ctx context.Context, token string) error
	ResendVerification(ctx context.Context, email string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	mailer     mail.Sender
	logger     *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, mailer mail.Sender, logger *slog.Logger) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		mailer:     mailer,
		logger:     logger,
	}
}

// Signup creates a local account, issues a session token immediately, and
// kicks off email verification. Delivery failure of the verification email
// is logged and swallowed; the account still exists and verification can be
// resent later.
func (s *authService) Signup(ctx context.Context, username, email, password string) (*model.User, string, error) {
	if len(password) < minPasswordLength {
		return nil, "", apperrors.ErrWeakPassword
	}

	// Advisory existence check so the caller learns which field collides.
	// The unique indexes are the real guard against a concurrent signup.
	existing, err := s.userRepo.FindByEmailOrUsername(ctx, email, username)
	if err == nil && existing != nil {
		if existing.Email == email {
			return nil, "", apperrors.ErrEmailTaken
		}
		return nil, "", apperrors.ErrUsernameTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, "", fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	plainToken, digest, err := auth.NewOneTimeToken()
	if err != nil {
		return nil, "", fmt.Errorf("generate verification token: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Provider:     model.ProviderLocal,
	}
	user.SetVerificationToken(digest, time.Now().Add(auth.VerificationTokenTTL))

	if err := s.userRepo.Create(ctx, user); err != nil {
		if err == apperrors.ErrEmailTaken || err == apperrors.ErrUsernameTaken {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtService.GenerateSessionToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("generate session token: %w", err)
	}

	if err := s.mailer.SendVerificationEmail(ctx, user.Email, plainToken, user.Username); err != nil {
		s.logger.Error("send verification email failed",
			"email", user.Email, "error", err)
	}

	return user, token, nil
}

// Login authenticates a local account. Valid credentials with an unverified
// email fail with a distinct error and no session token.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmailAndProvider(ctx, email, model.ProviderLocal)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	if !user.IsEmailVerified {
		return nil, "", apperrors.ErrEmailNotVerified
	}

	token, err := s.jwtService.GenerateSessionToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("generate session token: %w", err)
	}

	return user, token, nil
}

// OAuthLogin finds or creates a federated account and issues a session
// token. OAuth identities are trusted as verified; no verification email
// is sent.
func (s *authService) OAuthLogin(ctx context.Context, email, username, provider, providerID string) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmailAndProvider(ctx, email, provider)
	if err == gorm.ErrRecordNotFound {
		user, err = s.userRepo.FindByProviderIdentity(ctx, provider, providerID)
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, "", fmt.Errorf("find oauth user: %w", err)
	}

	if user == nil || err == gorm.ErrRecordNotFound {
		if username == "" {
			username = strings.SplitN(email, "@", 2)[0]
		}
		user = &model.User{
			ID:              uuid.New(),
			Username:        username,
			Email:           email,
			Provider:        provider,
			ProviderID:      &providerID,
			IsEmailVerified: true,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			if err == apperrors.ErrEmailTaken || err == apperrors.ErrUsernameTaken {
				return nil, "", err
			}
			return nil, "", fmt.Errorf("create oauth user: %w", err)
		}
	}

	token, err := s.jwtService.GenerateSessionToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("generate session token: %w", err)
	}

	return user, token, nil
}

// VerifyEmail consumes a verification token. Unknown, wrong, and expired
// tokens are indistinguishable to the caller. The welcome email is best
// effort.
func (s *authService) VerifyEmail(ctx context.Context, token string) error {
	user, err := s.userRepo.FindByVerificationTokenHash(ctx, auth.HashToken(token))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrInvalidOrExpiredToken
		}
		return fmt.Errorf("find user by verification token: %w", err)
	}

	user.IsEmailVerified = true
	user.ClearVerificationToken()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("mark email verified: %w", err)
	}

	if err := s.mailer.SendWelcomeEmail(ctx, user.Email, user.Username); err != nil {
		s.logger.Error("send welcome email failed",
			"email", user.Email, "error", err)
	}

	return nil
}

// ResendVerification issues a fresh verification token, invalidating any
// outstanding one. Unlike at signup there is no fallback path, so a failed
// send propagates.
func (s *authService) ResendVerification(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmailAndProvider(ctx, email, model.ProviderLocal)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if user.IsEmailVerified {
		return apperrors.ErrAlreadyVerified
	}

	plainToken, digest, err := auth.NewOneTimeToken()
	if err != nil {
		return fmt.Errorf("generate verification token: %w", err)
	}
	user.SetVerificationToken(digest, time.Now().Add(auth.VerificationTokenTTL))
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("store verification token: %w", err)
	}

	if err := s.mailer.SendVerificationEmail(ctx, user.Email, plainToken, user.Username); err != nil {
		s.logger.Error("resend verification email failed",
			"email", user.Email, "error", err)
		return apperrors.ErrEmailSendFailed
	}

	return nil
}

// ForgotPassword starts a reset flow. The caller always gets a nil error
// whether or not the email matches an account, so account existence never
// leaks. When the reset email cannot be delivered the token fields are
// rolled back and the failure is only logged.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmailAndProvider(ctx, email, model.ProviderLocal)
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			s.logger.Error("forgot password lookup failed", "error", err)
		}
		return nil
	}

	plainToken, digest, err := auth.NewOneTimeToken()
	if err != nil {
		s.logger.Error("generate reset token failed", "error", err)
		return nil
	}
	user.SetResetToken(digest, time.Now().Add(auth.ResetTokenTTL))
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("store reset token failed", "error", err)
		return nil
	}

	if err := s.mailer.SendPasswordResetEmail(ctx, user.Email, plainToken, user.Username); err != nil {
		s.logger.Error("send reset email failed, rolling back token",
			"email", user.Email, "error", err)
		user.ClearResetToken()
		if rbErr := s.userRepo.Update(ctx, user); rbErr != nil {
			s.logger.Error("reset token rollback failed", "error", rbErr)
		}
	}

	return nil
}

// ResetPassword consumes a reset token and replaces the password hash.
// Possession of the token is the proof of identity; the old password is
// not required.
func (s *authService) ResetPassword(ctx context.Context, token, password string) error {
	if len(password) < minPasswordLength {
		return apperrors.ErrWeakPassword
	}

	user, err := s.userRepo.FindByResetTokenHash(ctx, auth.HashToken(token))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrInvalidOrExpiredToken
		}
		return fmt.Errorf("find user by reset token: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = string(hashedPassword)
	user.ClearResetToken()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("store new password: %w", err)
	}

	return nil
}
