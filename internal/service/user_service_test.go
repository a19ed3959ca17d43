package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"greenlens/internal/domain"
	"greenlens/internal/service"
	"greenlens/mocks"
)

func TestUserService_Create(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	repo.On("GetByEmail", mock.Anything, "admin@example.com").Return(nil, domain.ErrNotFound)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	svc := service.NewUserService(repo)
	user, err := svc.Create(context.Background(), service.CreateUserInput{
		Email:    "admin@example.com",
		Password: "s3cret-pass",
		FullName: "Admin User",
		Role:     domain.RoleAdmin,
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, domain.RoleAdmin, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret-pass")))

	repo.AssertExpectations(t)
}

func TestUserService_Create_SeededUserCanLogIn(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	repo.On("GetByEmail", mock.Anything, "ops@example.com").Return(nil, domain.ErrNotFound).Once()

	var created *domain.User
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*domain.User) }).
		Return(nil)

	users := service.NewUserService(repo)
	_, err := users.Create(context.Background(), service.CreateUserInput{
		Email:    "ops@example.com",
		Password: "first-login-pw",
		FullName: "Ops Admin",
		Role:     domain.RoleAdmin,
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	repo.On("GetByEmail", mock.Anything, "ops@example.com").Return(created, nil)

	auth := service.NewAuthService(repo, testJWTConfig())
	out, err := auth.Login(context.Background(), service.LoginInput{
		Email:    "ops@example.com",
		Password: "first-login-pw",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
}

func TestUserService_Create_EmailTaken(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	repo.On("GetByEmail", mock.Anything, "admin@example.com").
		Return(testUser("whatever"), nil)

	svc := service.NewUserService(repo)
	_, err := svc.Create(context.Background(), service.CreateUserInput{
		Email:    "admin@example.com",
		Password: "s3cret-pass",
		FullName: "Admin User",
		Role:     domain.RoleAdmin,
	})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_Create_InvalidRole(t *testing.T) {
	svc := service.NewUserService(new(mocks.MockUserRepo))

	_, err := svc.Create(context.Background(), service.CreateUserInput{
		Email:    "admin@example.com",
		Password: "s3cret-pass",
		FullName: "Admin User",
		Role:     domain.UserRole("superuser"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}
