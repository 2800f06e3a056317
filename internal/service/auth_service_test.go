package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"spendtrack/internal/auth"
	apperrors "spendtrack/internal/errors"
	"spendtrack/internal/model"
)

func TestAuthServiceRegister(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful registration",
			username: "alice",
			email:    "alice@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:     "email is optional",
			username: "bob",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "bob").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:     "duplicate username",
			username: "alice",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(&model.User{ID: 1, Username: "alice"}, nil)
			},
			expectedError: apperrors.ErrUsernameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			tt.setupMock(userRepo)
			svc := NewAuthService(userRepo, auth.NewJWTService("test-secret"), new(MockTokenStore))

			user, err := svc.Register(context.Background(), tt.username, tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				userRepo.AssertNotCalled(t, "Create")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.username, user.Username)
			assert.Equal(t, tt.email, user.Email)
			// Password is stored only as a bcrypt hash.
			assert.NotEqual(t, tt.password, user.PasswordHash)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(tt.password)))
			userRepo.AssertExpectations(t)
		})
	}
}

func TestAuthServiceIssueTokens(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcryptCost)
	require.NoError(t, err)
	stored := &model.User{ID: 7, Username: "alice", PasswordHash: string(hash)}

	t.Run("valid credentials yield a token pair", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByUsername", mock.Anything, "alice").Return(stored, nil)
		tokenStore := new(MockTokenStore)
		tokenStore.On("StoreRefreshToken", mock.Anything, mock.AnythingOfType("string"), uint(7), "alice", auth.RefreshTokenExpiry).Return(nil)
		jwtService := auth.NewJWTService("test-secret")
		svc := NewAuthService(userRepo, jwtService, tokenStore)

		access, refresh, user, err := svc.IssueTokens(context.Background(), "alice", "password123")

		require.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		assert.Equal(t, uint(7), user.ID)

		claims, err := jwtService.ValidateToken(access)
		require.NoError(t, err)
		assert.Equal(t, uint(7), claims.UserID)
		assert.Equal(t, "alice", claims.Username)
		tokenStore.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByUsername", mock.Anything, "alice").Return(stored, nil)
		svc := NewAuthService(userRepo, auth.NewJWTService("test-secret"), new(MockTokenStore))

		_, _, _, err := svc.IssueTokens(context.Background(), "alice", "wrong")

		assert.Equal(t, ErrInvalidCredentials, err)
	})

	t.Run("unknown username", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByUsername", mock.Anything, "nobody").Return(nil, gorm.ErrRecordNotFound)
		svc := NewAuthService(userRepo, auth.NewJWTService("test-secret"), new(MockTokenStore))

		_, _, _, err := svc.IssueTokens(context.Background(), "nobody", "password123")

		assert.Equal(t, ErrInvalidCredentials, err)
	})
}

func TestAuthServiceRefreshToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(7, "alice")
	require.NoError(t, err)

	t.Run("valid refresh token yields a new access token", func(t *testing.T) {
		tokenStore := new(MockTokenStore)
		tokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(uint(7), "alice", nil)
		svc := NewAuthService(new(MockUserRepository), jwtService, tokenStore)

		access, err := svc.RefreshToken(context.Background(), refreshToken)

		require.NoError(t, err)
		claims, err := jwtService.ValidateToken(access)
		require.NoError(t, err)
		assert.Equal(t, uint(7), claims.UserID)
	})

	t.Run("revoked refresh token", func(t *testing.T) {
		tokenStore := new(MockTokenStore)
		tokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(uint(0), "", assert.AnError)
		svc := NewAuthService(new(MockUserRepository), jwtService, tokenStore)

		_, err := svc.RefreshToken(context.Background(), refreshToken)

		assert.Equal(t, ErrInvalidRefreshToken, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		svc := NewAuthService(new(MockUserRepository), jwtService, new(MockTokenStore))

		_, err := svc.RefreshToken(context.Background(), "not-a-jwt")

		assert.Equal(t, ErrInvalidRefreshToken, err)
	})

	t.Run("claims mismatch with stored token", func(t *testing.T) {
		tokenStore := new(MockTokenStore)
		tokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(uint(8), "mallory", nil)
		svc := NewAuthService(new(MockUserRepository), jwtService, tokenStore)

		_, err := svc.RefreshToken(context.Background(), refreshToken)

		assert.Equal(t, ErrInvalidRefreshToken, err)
	})
}

func TestAuthServiceLogout(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(7, "alice")
	require.NoError(t, err)

	tokenStore := new(MockTokenStore)
	tokenStore.On("DeleteRefreshToken", mock.Anything, tokenID).Return(nil)
	svc := NewAuthService(new(MockUserRepository), jwtService, tokenStore)

	assert.NoError(t, svc.Logout(context.Background(), refreshToken))
	tokenStore.AssertExpectations(t)
}
