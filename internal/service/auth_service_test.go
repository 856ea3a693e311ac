package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/lielreyter/IDJ/internal/auth"
	apperrors "github.com/lielreyter/IDJ/internal/errors"
	"github.com/lielreyter/IDJ/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmailAndProvider(ctx context.Context, email, provider string) (*model.User, error) {
	args := m.Called(ctx, email, provider)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmailOrUsername(ctx context.Context, email, username string) (*model.User, error) {
	args := m.Called(ctx, email, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByProviderIdentity(ctx context.Context, provider, providerID string) (*model.User, error) {
	args := m.Called(ctx, provider, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByVerificationTokenHash(ctx context.Context, digest string) (*model.User, error) {
	args := m.Called(ctx, digest)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByResetTokenHash(ctx context.Context, digest string) (*model.User, error) {
	args := m.Called(ctx, digest)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockMailer is a mock implementation of mail.Sender that records the
// plaintext tokens handed to it.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendVerificationEmail(ctx context.Context, email, token, username string) error {
	args := m.Called(ctx, email, token, username)
	return args.Error(0)
}

func (m *MockMailer) SendPasswordResetEmail(ctx context.Context, email, token, username string) error {
	args := m.Called(ctx, email, token, username)
	return args.Error(0)
}

func (m *MockMailer) SendWelcomeEmail(ctx context.Context, email, username string) error {
	args := m.Called(ctx, email, username)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAuthService(repo *MockUserRepository, mailer *MockMailer) (AuthService, *auth.JWTService) {
	jwtService := auth.NewJWTService("test-secret")
	return NewAuthService(repo, jwtService, mailer, testLogger()), jwtService
}

func TestAuthService_Signup(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		email         string
		password      string
		setupMock     func(*MockUserRepository, *MockMailer)
		expectedError error
	}{
		{
			name:     "successful signup",
			username: "dj_new",
			email:    "new@example.com",
			password: "Abcdef1!",
			setupMock: func(mRepo *MockUserRepository, mMail *MockMailer) {
				mRepo.On("FindByEmailOrUsername", mock.Anything, "new@example.com", "dj_new").Return(nil, gorm.ErrRecordNotFound)
				mRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
				mMail.On("SendVerificationEmail", mock.Anything, "new@example.com", mock.Anything, "dj_new").Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "email already registered",
			username: "dj_other",
			email:    "taken@example.com",
			password: "Abcdef1!",
			setupMock: func(mRepo *MockUserRepository, mMail *MockMailer) {
				mRepo.On("FindByEmailOrUsername", mock.Anything, "taken@example.com", "dj_other").
					Return(&model.User{Email: "taken@example.com", Username: "someone"}, nil)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
		{
			name:     "username already taken",
			username: "dj_taken",
			email:    "fresh@example.com",
			password: "Abcdef1!",
			setupMock: func(mRepo *MockUserRepository, mMail *MockMailer) {
				mRepo.On("FindByEmailOrUsername", mock.Anything, "fresh@example.com", "dj_taken").
					Return(&model.User{Email: "other@example.com", Username: "dj_taken"}, nil)
			},
			expectedError: apperrors.ErrUsernameTaken,
		},
		{
			name:     "duplicate detected at the storage layer",
			username: "dj_race",
			email:    "race@example.com",
			password: "Abcdef1!",
			setupMock: func(mRepo *MockUserRepository, mMail *MockMailer) {
				// concurrent signup won the race after the existence check
				mRepo.On("FindByEmailOrUsername", mock.Anything, "race@example.com", "dj_race").Return(nil, gorm.ErrRecordNotFound)
				mRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(apperrors.ErrEmailTaken)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
		{
			name:     "weak password",
			username: "dj_weak",
			email:    "weak@example.com",
			password: "abc",
			setupMock: func(mRepo *MockUserRepository, mMail *MockMailer) {
			},
			expectedError: apperrors.ErrWeakPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockMailer := new(MockMailer)
			tt.setupMock(mockRepo, mockMailer)

			service, jwtService := newAuthService(mockRepo, mockMailer)
			user, token, err := service.Signup(context.Background(), tt.username, tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
				assert.Equal(t, model.ProviderLocal, user.Provider)
				assert.False(t, user.IsEmailVerified)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotNil(t, user.EmailVerificationTokenHash)
				assert.NotNil(t, user.EmailVerificationExpiresAt)

				// the token resolves back to the created user
				claims, err := jwtService.ValidateToken(token)
				assert.NoError(t, err)
				subject, err := claims.SubjectID()
				assert.NoError(t, err)
				assert.Equal(t, user.ID, subject)
			}

			mockRepo.AssertExpectations(t)
			mockMailer.AssertExpectations(t)
		})
	}
}

func TestAuthService_Signup_EmailFailureIsSwallowed(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockMailer := new(MockMailer)

	mockRepo.On("FindByEmailOrUsername", mock.Anything, "new@example.com", "dj_new").Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
	mockMailer.On("SendVerificationEmail", mock.Anything, "new@example.com", mock.Anything, "dj_new").
		Return(assert.AnError)

	service, _ := newAuthService(mockRepo, mockMailer)
	user, token, err := service.Signup(context.Background(), "dj_new", "new@example.com", "Abcdef1!")

	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.NotEmpty(t, token)

	mockMailer.AssertExpectations(t)
}

func TestAuthService_Signup_TokenDigestMatchesEmailedPlaintext(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockMailer := new(MockMailer)

	var created *model.User
	var emailedToken string

	mockRepo.On("FindByEmailOrUsername", mock.Anything, mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*model.User)
		}).Return(nil)
	mockMailer.On("SendVerificationEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			emailedToken = args.String(2)
		}).Return(nil)

	service, _ := newAuthService(mockRepo, mockMailer)
	_, _, err := service.Signup(context.Background(), "dj_new", "new@example.com", "Abcdef1!")

	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.NotEmpty(t, emailedToken)
	// only the digest is persisted, and it matches the emailed plaintext
	assert.NotNil(t, created.EmailVerificationTokenHash)
	assert.NotEqual(t, emailedToken, *created.EmailVerificationTokenHash)
	assert.Equal(t, auth.HashToken(emailedToken), *created.EmailVerificationTokenHash)
}

func TestAuthService_Login(t *testing.T) {
	passwordHash, _ := bcrypt.GenerateFromPassword([]byte("Abcdef1!"), 10)
	verifiedUser := func() *model.User {
		return &model.User{
			ID:              uuid.New(),
			Username:        "dj_verified",
			Email:           "verified@example.com",
			PasswordHash:    string(passwordHash),
			Provider:        model.ProviderLocal,
			IsEmailVerified: true,
		}
	}

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "verified@example.com",
			password: "Abcdef1!",
			setupMock: func(mRepo *MockUserRepository) {
				mRepo.On("FindByEmailAndProvider", mock.Anything, "verified@example.com", model.ProviderLocal).
					Return(verifiedUser(), nil)
			},
			expectedError: nil,
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "Abcdef1!",
			setupMock: func(mRepo *MockUserRepository) {
				mRepo.On("FindByEmailAndProvider", mock.Anything, "nobody@example.com", model.ProviderLocal).
					Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "verified@example.com",
			password: "wrong-password",
			setupMock: func(mRepo *MockUserRepository) {
				mRepo.On("FindByEmailAndProvider", mock.Anything, "verified@example.com", model.ProviderLocal).
					Return(verifiedUser(), nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "valid credentials but unverified email",
			email:    "unverified@example.com",
			password: "Abcdef1!",
			setupMock: func(mRepo *MockUserRepository) {
				user := verifiedUser()
				user.Email = "unverified@example.com"
				user.IsEmailVerified = false
				mRepo.On("FindByEmailAndProvider", mock.Anything, "unverified@example.com", model.ProviderLocal).
					Return(user, nil)
			},
			expectedError: apperrors.ErrEmailNotVerified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service, jwtService := newAuthService(mockRepo, new(MockMailer))
			user, token, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
				// an unverified account never receives a session token
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				claims, err := jwtService.ValidateToken(token)
				assert.NoError(t, err)
				subject, err := claims.SubjectID()
				assert.NoError(t, err)
				assert.Equal(t, user.ID, subject)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_OAuthLogin_FindOrCreate(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockMailer := new(MockMailer)

	var created *model.User
	mockRepo.On("FindByEmailAndProvider", mock.Anything, "g@x.com", model.ProviderGoogle).
		Return(nil, gorm.ErrRecordNotFound).Once()
	mockRepo.On("FindByProviderIdentity", mock.Anything, model.ProviderGoogle, "g1").
		Return(nil, gorm.ErrRecordNotFound).Once()
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*model.User)
		}).Return(nil).Once()

	service, jwtService := newAuthService(mockRepo, mockMailer)

	// first call creates
	user1, token1, err := service.OAuthLogin(context.Background(), "g@x.com", "", model.ProviderGoogle, "g1")
	assert.NoError(t, err)
	assert.NotNil(t, user1)
	// username defaults to the local part of the email
	assert.Equal(t, "g", user1.Username)
	assert.True(t, user1.IsEmailVerified)
	assert.Empty(t, user1.PasswordHash)

	// second call finds the existing record
	mockRepo.On("FindByEmailAndProvider", mock.Anything, "g@x.com", model.ProviderGoogle).
		Return(created, nil).Once()

	user2, token2, err := service.OAuthLogin(context.Background(), "g@x.com", "", model.ProviderGoogle, "g1")
	assert.NoError(t, err)
	assert.Equal(t, user1.ID, user2.ID)

	for _, token := range []string{token1, token2} {
		claims, err := jwtService.ValidateToken(token)
		assert.NoError(t, err)
		subject, err := claims.SubjectID()
		assert.NoError(t, err)
		assert.Equal(t, user1.ID, subject)
	}

	mockRepo.AssertExpectations(t)
}

func TestAuthService_VerifyEmail(t *testing.T) {
	plain, digest, err := auth.NewOneTimeToken()
	assert.NoError(t, err)

	expiresAt := time.Now().Add(auth.VerificationTokenTTL)
	user := &model.User{
		ID:       uuid.New(),
		Username: "dj_pending",
		Email:    "pending@example.com",
		Provider: model.ProviderLocal,
	}
	user.SetVerificationToken(digest, expiresAt)

	mockRepo := new(MockUserRepository)
	mockMailer := new(MockMailer)

	// first presentation consumes the token
	mockRepo.On("FindByVerificationTokenHash", mock.Anything, digest).Return(user, nil).Once()
	mockRepo.On("Update", mock.Anything, user).Return(nil).Once()
	mockMailer.On("SendWelcomeEmail", mock.Anything, "pending@example.com", "dj_pending").Return(nil).Once()

	// second presentation finds nothing: the digest was cleared
	mockRepo.On("FindByVerificationTokenHash", mock.Anything, digest).Return(nil, gorm.ErrRecordNotFound).Once()

	service, _ := newAuthService(mockRepo, mockMailer)

	assert.NoError(t, service.VerifyEmail(context.Background(), plain))
	assert.True(t, user.IsEmailVerified)
	assert.Nil(t, user.EmailVerificationTokenHash)
	assert.Nil(t, user.EmailVerificationExpiresAt)

	// reuse of a consumed token is rejected
	err = service.VerifyEmail(context.Background(), plain)
	assert.Equal(t, apperrors.ErrInvalidOrExpiredToken, err)

	mockRepo.AssertExpectations(t)
	mockMailer.AssertExpectations(t)
}

func TestAuthService_VerifyEmail_WelcomeFailureIsSwallowed(t *testing.T) {
	plain, digest, _ := auth.NewOneTimeToken()
	user := &model.User{ID: uuid.New(), Username: "dj", Email: "dj@example.com", Provider: model.ProviderLocal}
	user.SetVerificationToken(digest, time.Now().Add(time.Hour))

	mockRepo := new(MockUserRepository)
	mockMailer := new(MockMailer)
	mockRepo.On("FindByVerificationTokenHash", mock.Anything, digest).Return(user, nil)
	mockRepo.On("Update", mock.Anything, user).Return(nil)
	mockMailer.On("SendWelcomeEmail", mock.Anything, "dj@example.com", "dj").Return(assert.AnError)

	service, _ := newAuthService(mockRepo, mockMailer)
	assert.NoError(t, service.VerifyEmail(context.Background(), plain))
}

func TestAuthService_ResendVerification(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		setupMock     func(*MockUserRepository, *MockMailer)
		expectedError error
	}{
		{
			name:  "successful resend overwrites the outstanding token",
			email: "pending@example.com",
			setupMock: func(mRepo *MockUserRepository, mMail *MockMailer) {
				user := &model.User{ID: uuid.New(), Username: "dj", Email: "pending@example.com", Provider: model.ProviderLocal}
				user.SetVerificationToken(auth.HashToken("stale"), time.Now().Add(time.Hour))
				mRepo.On("FindByEmailAndProvider", mock.Anything, "pending@example.com", model.ProviderLocal).Return(user, nil)
				mRepo.On("Update", mock.Anything, user).Return(nil)
				mMail.On("SendVerificationEmail", mock.Anything, "pending@example.com", mock.Anything, "dj").Return(nil)
			},
			expectedError: nil,
		},
		{
			name:  "no account with that email",
			email: "nobody@example.com",
			setupMock: func(mRepo *MockUserRepository, mMail *MockMailer) {
				mRepo.On("FindByEmailAndProvider", mock.Anything, "nobody@example.com", model.ProviderLocal).
					Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
		{
			name:  "already verified",
			email: "done@example.com",
			setupMock: func(mRepo *MockUserRepository, mMail *MockMailer) {
				mRepo.On("FindByEmailAndProvider", mock.Anything, "done@example.com", model.ProviderLocal).
					Return(&model.User{Email: "done@example.com", Provider: model.ProviderLocal, IsEmailVerified: true}, nil)
			},
			expectedError: apperrors.ErrAlreadyVerified,
		},
		{
			name:  "send failure propagates",
			email: "pending@example.com",
			setupMock: func(mRepo *MockUserRepository, mMail *MockMailer) {
				user := &model.User{ID: uuid.New(), Username: "dj", Email: "pending@example.com", Provider: model.ProviderLocal}
				mRepo.On("FindByEmailAndProvider", mock.Anything, "pending@example.com", model.ProviderLocal).Return(user, nil)
				mRepo.On("Update", mock.Anything, user).Return(nil)
				mMail.On("SendVerificationEmail", mock.Anything, "pending@example.com", mock.Anything, "dj").Return(assert.AnError)
			},
			expectedError: apperrors.ErrEmailSendFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockMailer := new(MockMailer)
			tt.setupMock(mockRepo, mockMailer)

			service, _ := newAuthService(mockRepo, mockMailer)
			err := service.ResendVerification(context.Background(), tt.email)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
			mockMailer.AssertExpectations(t)
		})
	}
}

func TestAuthService_ForgotPassword_UniformOutcome(t *testing.T) {
	t.Run("matching account stores a token and sends", func(t *testing.T) {
		user := &model.User{ID: uuid.New(), Username: "dj", Email: "dj@example.com", Provider: model.ProviderLocal}
		mockRepo := new(MockUserRepository)
		mockMailer := new(MockMailer)
		mockRepo.On("FindByEmailAndProvider", mock.Anything, "dj@example.com", model.ProviderLocal).Return(user, nil)
		mockRepo.On("Update", mock.Anything, user).Return(nil)

		var emailedToken string
		mockMailer.On("SendPasswordResetEmail", mock.Anything, "dj@example.com", mock.Anything, "dj").
			Run(func(args mock.Arguments) {
				emailedToken = args.String(2)
			}).Return(nil)

		service, _ := newAuthService(mockRepo, mockMailer)
		assert.NoError(t, service.ForgotPassword(context.Background(), "dj@example.com"))

		assert.NotNil(t, user.ResetPasswordTokenHash)
		assert.Equal(t, auth.HashToken(emailedToken), *user.ResetPasswordTokenHash)
	})

	t.Run("unknown email reports the same nil outcome", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockMailer := new(MockMailer)
		mockRepo.On("FindByEmailAndProvider", mock.Anything, "nobody@example.com", model.ProviderLocal).
			Return(nil, gorm.ErrRecordNotFound)

		service, _ := newAuthService(mockRepo, mockMailer)
		assert.NoError(t, service.ForgotPassword(context.Background(), "nobody@example.com"))

		// no reset email leaves the process
		mockMailer.AssertNotCalled(t, "SendPasswordResetEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("send failure rolls back the token fields", func(t *testing.T) {
		user := &model.User{ID: uuid.New(), Username: "dj", Email: "dj@example.com", Provider: model.ProviderLocal}
		mockRepo := new(MockUserRepository)
		mockMailer := new(MockMailer)
		mockRepo.On("FindByEmailAndProvider", mock.Anything, "dj@example.com", model.ProviderLocal).Return(user, nil)
		mockRepo.On("Update", mock.Anything, user).Return(nil).Twice()
		mockMailer.On("SendPasswordResetEmail", mock.Anything, "dj@example.com", mock.Anything, "dj").
			Return(assert.AnError)

		service, _ := newAuthService(mockRepo, mockMailer)
		// the caller still sees success
		assert.NoError(t, service.ForgotPassword(context.Background(), "dj@example.com"))

		assert.Nil(t, user.ResetPasswordTokenHash)
		assert.Nil(t, user.ResetPasswordExpiresAt)
		mockRepo.AssertExpectations(t)
	})
}

func TestAuthService_ResetPassword(t *testing.T) {
	t.Run("successful reset replaces the hash and clears the token", func(t *testing.T) {
		plain, digest, _ := auth.NewOneTimeToken()
		oldHash, _ := bcrypt.GenerateFromPassword([]byte("OldPass1!"), 10)
		user := &model.User{ID: uuid.New(), Username: "dj", Email: "dj@example.com", Provider: model.ProviderLocal, PasswordHash: string(oldHash)}
		user.SetResetToken(digest, time.Now().Add(auth.ResetTokenTTL))

		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByResetTokenHash", mock.Anything, digest).Return(user, nil)
		mockRepo.On("Update", mock.Anything, user).Return(nil)

		service, _ := newAuthService(mockRepo, new(MockMailer))
		assert.NoError(t, service.ResetPassword(context.Background(), plain, "NewPass1!"))

		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("NewPass1!")))
		assert.Error(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("OldPass1!")))
		assert.Nil(t, user.ResetPasswordTokenHash)
		assert.Nil(t, user.ResetPasswordExpiresAt)
	})

	t.Run("expired or unknown token is rejected", func(t *testing.T) {
		// the repository filters expired tokens, so an hour-old token
		// resolves to record-not-found
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByResetTokenHash", mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound)

		service, _ := newAuthService(mockRepo, new(MockMailer))
		err := service.ResetPassword(context.Background(), "stale-token", "NewPass1!")
		assert.Equal(t, apperrors.ErrInvalidOrExpiredToken, err)
	})

	t.Run("weak password is rejected before the token is consumed", func(t *testing.T) {
		mockRepo := new(MockUserRepository)

		service, _ := newAuthService(mockRepo, new(MockMailer))
		err := service.ResetPassword(context.Background(), "whatever", "abc")
		assert.Equal(t, apperrors.ErrWeakPassword, err)

		mockRepo.AssertNotCalled(t, "FindByResetTokenHash", mock.Anything, mock.Anything)
	})
}
