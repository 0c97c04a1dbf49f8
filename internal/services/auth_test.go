package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/agrofield/agrofield-backend/internal/logger"
	"github.com/agrofield/agrofield-backend/internal/repos"
	"github.com/agrofield/agrofield-backend/internal/requestdata"
	"github.com/agrofield/agrofield-backend/internal/types"
)

func newTestAuthService(t *testing.T) AuthService {
	t.Helper()
	db := newTestDB(t)
	log, err := logger.New("production")
	require.NoError(t, err)
	userRepo := repos.NewUserRepo(db, log)
	return NewAuthService(db, log, userRepo, "test-secret", time.Hour)
}

func TestAuthService_RegisterLoginRoundTrip(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	user := &types.User{
		Email:     "Farmer@Example.com",
		FirstName: "Anna",
		LastName:  "Farmer",
		Password:  "hunter22",
	}
	require.NoError(t, svc.RegisterUser(ctx, user))
	require.NotEqual(t, uuid.Nil, user.ID)
	require.NotEqual(t, "hunter22", user.Password)

	// Email is normalized on registration, so login is case-insensitive.
	token, err := svc.LoginUser(ctx, "farmer@example.com", "hunter22")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	authedCtx, err := svc.SetContextFromToken(ctx, token)
	require.NoError(t, err)
	rd := requestdata.GetRequestData(authedCtx)
	require.NotNil(t, rd)
	require.Equal(t, user.ID, rd.UserID)
}

func TestAuthService_RejectsDuplicateEmail(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	first := &types.User{Email: "farmer@example.com", Password: "hunter22"}
	require.NoError(t, svc.RegisterUser(ctx, first))

	second := &types.User{Email: "FARMER@example.com", Password: "other"}
	err := svc.RegisterUser(ctx, second)
	require.Error(t, err)
}

func TestAuthService_RejectsWrongPassword(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	user := &types.User{Email: "farmer@example.com", Password: "hunter22"}
	require.NoError(t, svc.RegisterUser(ctx, user))

	_, err := svc.LoginUser(ctx, "farmer@example.com", "wrong")
	require.Error(t, err)
}

func TestAuthService_RejectsTamperedToken(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	user := &types.User{Email: "farmer@example.com", Password: "hunter22"}
	require.NoError(t, svc.RegisterUser(ctx, user))
	token, err := svc.LoginUser(ctx, "farmer@example.com", "hunter22")
	require.NoError(t, err)

	_, err = svc.SetContextFromToken(ctx, token+"x")
	require.Error(t, err)
}
