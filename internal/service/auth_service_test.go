package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"greenlens/internal/config"
	"greenlens/internal/domain"
	"greenlens/internal/service"
	"greenlens/mocks"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:             "test-secret-at-least-32-characters!!",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 24 * time.Hour,
		Issuer:             "greenlens-test",
	}
}

func testUser(password string) *domain.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return &domain.User{
		ID:           uuid.New(),
		Email:        "user@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleMember,
		IsActive:     true,
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	user := testUser("correct-horse-battery")
	userRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(user, nil)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "user@example.com",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.True(t, pair.ExpiresAt.After(time.Now()))

	claims, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleMember, claims.Role)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	userRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(testUser("right"), nil)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "user@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	userRepo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, domain.ErrNotFound)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	user := testUser("secret-password")
	user.IsActive = false
	userRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(user, nil)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "user@example.com",
		Password: "secret-password",
	})
	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestAuthService_RefreshToken(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	user := testUser("secret-password")
	userRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(user, nil)
	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "user@example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestAuthService_RefreshToken_RejectsAccessToken(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	user := testUser("secret-password")
	userRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(user, nil)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "user@example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)

	// An access token must not pass as a refresh token.
	_, err = svc.RefreshToken(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_ValidateToken_Garbage(t *testing.T) {
	svc := service.NewAuthService(new(mocks.MockUserRepo), testJWTConfig())

	_, err := svc.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_ValidateToken_WrongSecret(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	user := testUser("secret-password")
	userRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(user, nil)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "user@example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)

	otherCfg := testJWTConfig()
	otherCfg.Secret = "a-completely-different-signing-secret"
	other := service.NewAuthService(userRepo, otherCfg)

	_, err = other.ValidateToken(pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
