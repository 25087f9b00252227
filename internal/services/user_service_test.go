package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"socialnet/internal/mocks"
	"socialnet/internal/models"
	"socialnet/internal/services"
)

func TestGetUserProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the profile", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := services.NewUserService(userRepo)
		userRepo.On("GetByID", ctx, uint(1)).Return(
			&models.User{BaseModel: models.BaseModel{ID: 1}, Username: "alice"}, nil)

		user, err := svc.GetUserProfile(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("missing user", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := services.NewUserService(userRepo)
		userRepo.On("GetByID", ctx, uint(9)).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.GetUserProfile(ctx, 9)
		assert.ErrorIs(t, err, services.ErrUserNotFound)
	})
}

func TestUpdateUserProfile(t *testing.T) {
	ctx := context.Background()
	userRepo := new(mocks.UserRepository)
	svc := services.NewUserService(userRepo)

	userRepo.On("GetByID", ctx, uint(1)).Return(&models.User{
		BaseModel: models.BaseModel{ID: 1},
		Username:  "alice",
		FirstName: "Alice",
		Bio:       "old bio",
	}, nil)
	userRepo.On("Update", ctx, mock.AnythingOfType("*models.User")).Return(nil)

	newBio := ""
	isPrivate := true
	user, err := svc.UpdateUserProfile(ctx, 1, services.ProfileUpdate{
		Bio:       &newBio,
		IsPrivate: &isPrivate,
	})
	require.NoError(t, err)

	assert.Equal(t, "", user.Bio, "explicit empty string clears the field")
	assert.True(t, user.IsPrivate)
	assert.Equal(t, "Alice", user.FirstName, "nil fields stay untouched")
}
