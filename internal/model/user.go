package model

import (
	"time"

	"github.com/google/uuid"
)

// Identity providers.
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
	ProviderApple  = "apple"
)

// User represents one identity: a local password account or a federated
// OAuth account. Password hash and one-time token digests are never
// serialized to clients.
//
// The unique indexes on username and (email, provider) are the atomic
// backstop for duplicate signups: the existence check in the auth service
// is advisory, the index is the invariant.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Username     string    `json:"username" gorm:"size:30;uniqueIndex:idx_users_username;not null"`
	Email        string    `json:"email" gorm:"size:255;uniqueIndex:idx_users_email_provider"`
	PasswordHash string    `json:"-" gorm:"size:255"` // set only when Provider == local
	Provider     string    `json:"provider" gorm:"size:20;uniqueIndex:idx_users_email_provider;not null;default:'local'"`
	ProviderID   *string   `json:"-" gorm:"size:255;index"`

	IsEmailVerified bool `json:"isEmailVerified" gorm:"not null;default:false"`

	// At most one outstanding token per family; generating a new one
	// overwrites the previous digest. nil means no token outstanding.
	EmailVerificationTokenHash *string    `json:"-" gorm:"size:64;index"`
	EmailVerificationExpiresAt *time.Time `json:"-"`
	ResetPasswordTokenHash     *string    `json:"-" gorm:"size:64;index"`
	ResetPasswordExpiresAt     *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ClearVerificationToken removes the outstanding email verification token, if any.
func (u *User) ClearVerificationToken() {
	u.EmailVerificationTokenHash = nil
	u.EmailVerificationExpiresAt = nil
}

// ClearResetToken removes the outstanding password reset token, if any.
func (u *User) ClearResetToken() {
	u.ResetPasswordTokenHash = nil
	u.ResetPasswordExpiresAt = nil
}

// SetVerificationToken stores a verification token digest and its expiry,
// superseding any outstanding token.
func (u *User) SetVerificationToken(digest string, expiresAt time.Time) {
	u.EmailVerificationTokenHash = &digest
	u.EmailVerificationExpiresAt = &expiresAt
}

// SetResetToken stores a reset token digest and its expiry, superseding any
// outstanding token.
func (u *User) SetResetToken(digest string, expiresAt time.Time) {
	u.ResetPasswordTokenHash = &digest
	u.ResetPasswordExpiresAt = &expiresAt
}
