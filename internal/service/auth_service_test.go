package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/shiksha-labs/quizroom-api/internal/dto"
	"github.com/shiksha-labs/quizroom-api/internal/repository"
)

func TestRegisterAndLoginRoundTrip(t *testing.T) {
	db := setupServiceDB(t)
	users := repository.NewUserRepository(db)
	validate := validator.New(validator.WithRequiredStructEnabled())

	svc := NewAuthService(users, validate, "test-secret", time.Hour, testLogger())

	account, err := svc.Register(context.Background(), dto.RegisterRequest{
		Username: "mina",
		Password: "correct-horse",
		Category: "teacher",
	})
	require.NoError(t, err)
	require.Equal(t, "mina", account.Username)
	require.Equal(t, "teacher", account.Category)

	session, err := svc.Login(context.Background(), dto.LoginRequest{Username: "mina", Password: "correct-horse"})
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)
	require.Equal(t, "teacher", session.Category)

	token, err := jwt.Parse(session.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, "teacher", claims["category"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := setupServiceDB(t)
	users := repository.NewUserRepository(db)
	validate := validator.New(validator.WithRequiredStructEnabled())

	svc := NewAuthService(users, validate, "test-secret", time.Hour, testLogger())

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Username: "ravi",
		Password: "correct-horse",
		Category: "student",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "ravi", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "ghost", Password: "whatever"})
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestRegisterValidatesCategory(t *testing.T) {
	db := setupServiceDB(t)
	users := repository.NewUserRepository(db)
	validate := validator.New(validator.WithRequiredStructEnabled())

	svc := NewAuthService(users, validate, "test-secret", time.Hour, testLogger())

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Username: "odd",
		Password: "long-enough",
		Category: "admin",
	})
	require.Error(t, err)
}
