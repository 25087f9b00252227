package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"socialnet/internal/models"
	"socialnet/internal/storage"
)

// ProfileUpdate carries the mutable profile fields. Pointer fields
// distinguish "leave unchanged" (nil) from "set to zero value".
type ProfileUpdate struct {
	FirstName      *string `json:"firstName,omitempty"`
	LastName       *string `json:"lastName,omitempty"`
	Bio            *string `json:"bio,omitempty"`
	ProfilePicture *string `json:"profilePicture,omitempty"`
	CoverPhoto     *string `json:"coverPhoto,omitempty"`
	IsPrivate      *bool   `json:"isPrivate,omitempty"`
}

// UserService defines the interface for profile operations.
type UserService interface {
	GetUserProfile(ctx context.Context, userID uint) (*models.User, error)
	UpdateUserProfile(ctx context.Context, userID uint, update ProfileUpdate) (*models.User, error)
	// SearchUsers finds users by username or name, excluding the caller.
	SearchUsers(ctx context.Context, callerID uint, query string) ([]models.User, error)
}

// userService is the UserService implementation.
type userService struct {
	userRepo storage.UserRepository
}

// NewUserService creates a new UserService instance.
func NewUserService(userRepo storage.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// GetUserProfile fetches a user's profile.
func (s *userService) GetUserProfile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user %d: %w", userID, err)
	}
	return user, nil
}

// UpdateUserProfile applies the provided profile field changes.
func (s *userService) UpdateUserProfile(ctx context.Context, userID uint, update ProfileUpdate) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user %d: %w", userID, err)
	}

	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.Bio != nil {
		user.Bio = *update.Bio
	}
	if update.ProfilePicture != nil {
		user.ProfilePicture = *update.ProfilePicture
	}
	if update.CoverPhoto != nil {
		user.CoverPhoto = *update.CoverPhoto
	}
	if update.IsPrivate != nil {
		user.IsPrivate = *update.IsPrivate
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user %d: %w", userID, err)
	}
	return user, nil
}

// SearchUsers finds users matching the query, never including the caller.
func (s *userService) SearchUsers(ctx context.Context, callerID uint, query string) ([]models.User, error) {
	users, err := s.userRepo.SearchUsers(ctx, query, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	return users, nil
}
