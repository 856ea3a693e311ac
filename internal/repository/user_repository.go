package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/lielreyter/IDJ/internal/errors"
	"github.com/lielreyter/IDJ/internal/model"
)

// UserRepository defines credential store persistence operations. Lookups
// by one-time token digest filter out expired tokens, so an expired token
// behaves exactly like an unknown one.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmailAndProvider(ctx context.Context, email, provider string) (*model.User, error)
	FindByEmailOrUsername(ctx context.Context, email, username string) (*model.User, error)
	FindByProviderIdentity(ctx context.Context, provider, providerID string) (*model.User, error)
	FindByVerificationTokenHash(ctx context.Context, digest string) (*model.User, error)
	FindByResetTokenHash(ctx context.Context, digest string) (*model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

const mysqlDuplicateEntry = 1062

// Create inserts a new user. A duplicate-key violation on one of the
// unique indexes is translated into the matching taxonomy error; this is
// the atomic backstop behind the advisory existence check in the service.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if err == nil {
		return nil
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
		if strings.Contains(mysqlErr.Message, "idx_users_username") {
			return apperrors.ErrUsernameTaken
		}
		return apperrors.ErrEmailTaken
	}
	return err
}

// Update saves the full user record.
func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// FindByID finds a user by ID.
func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmailAndProvider finds a user by email within one identity provider.
func (r *userRepository) FindByEmailAndProvider(ctx context.Context, email, provider string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Where("email = ? AND provider = ?", email, provider).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmailOrUsername finds a user colliding on either identity field.
// Email matches win when both collide.
func (r *userRepository) FindByEmailOrUsername(ctx context.Context, email, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByProviderIdentity finds a user by its external identity id.
func (r *userRepository) FindByProviderIdentity(ctx context.Context, provider, providerID string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Where("provider = ? AND provider_id = ?", provider, providerID).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByVerificationTokenHash finds the user holding a non-expired
// verification token with the given digest.
func (r *userRepository) FindByVerificationTokenHash(ctx context.Context, digest string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Where("email_verification_token_hash = ? AND email_verification_expires_at > ?", digest, time.Now()).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByResetTokenHash finds the user holding a non-expired reset token
// with the given digest.
func (r *userRepository) FindByResetTokenHash(ctx context.Context, digest string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Where("reset_password_token_hash = ? AND reset_password_expires_at > ?", digest, time.Now()).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
