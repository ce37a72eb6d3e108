package services

import (
	"context"
	"fmt"

	"github.com/rubayet2027/KrishiLink-Client/internal/apiclient"
	"github.com/rubayet2027/KrishiLink-Client/internal/auth"
	"github.com/rubayet2027/KrishiLink-Client/internal/models"
)

// IUserService keeps the marketplace profile in sync with the identity
// provider record and exposes profile reads/updates.
type IUserService interface {
	SyncProfile(ctx context.Context, principal *auth.Principal) (*models.User, error)
	GetProfile(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, email string, user models.User) (*models.User, error)
}

// userService implements IUserService.
type userService struct {
	users apiclient.IUsersAPI
}

// NewUserService creates a new UserService.
func NewUserService(users apiclient.IUsersAPI) IUserService {
	return &userService{users: users}
}

// SyncProfile upserts the profile from the identity provider's view of the
// principal. Called after every sign-in so name/photo changes propagate.
func (s *userService) SyncProfile(ctx context.Context, principal *auth.Principal) (*models.User, error) {
	saved, err := s.users.Save(ctx, models.User{
		Name:  principal.Name,
		Email: principal.Email,
		Photo: principal.Photo,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sync profile: %w", err)
	}
	return saved, nil
}

// GetProfile fetches a profile by email.
func (s *userService) GetProfile(ctx context.Context, email string) (*models.User, error) {
	user, err := s.users.Get(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return user, nil
}

// UpdateProfile modifies the caller's profile.
func (s *userService) UpdateProfile(ctx context.Context, email string, user models.User) (*models.User, error) {
	updated, err := s.users.Update(ctx, email, user)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return updated, nil
}
