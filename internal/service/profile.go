package service

import (
	"context"
	"errors"

	"github.com/profilehub/profilehub-go/internal/model"
	"github.com/profilehub/profilehub-go/internal/repository"
)

// ProfileService reads and edits the current user's profile.
type ProfileService struct {
	repo UserRepository
}

// NewProfileService creates a new ProfileService.
func NewProfileService(repo UserRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

// GetCurrent returns the public view of the user bound to the session.
// A session that points at a missing user is reported as ErrSessionInvalid.
func (s *ProfileService) GetCurrent(ctx context.Context, userID string) (model.UserResponse, error) {
	if userID == "" {
		return model.UserResponse{}, ErrNotLoggedIn
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrSessionInvalid
		}
		return model.UserResponse{}, err
	}

	return user.Public(), nil
}

// UpdateCurrent applies the non-nil fields of upd to the current user.
func (s *ProfileService) UpdateCurrent(ctx context.Context, userID string, upd model.ProfileUpdate) (model.UserResponse, error) {
	if userID == "" {
		return model.UserResponse{}, ErrNotLoggedIn
	}

	user, err := s.repo.Update(ctx, userID, func(u *model.User) {
		if upd.Name != nil {
			u.Name = *upd.Name
		}
		if upd.Bio != nil {
			u.Bio = *upd.Bio
		}
		if upd.Avatar != nil {
			u.Avatar = *upd.Avatar
		}
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrSessionInvalid
		}
		return model.UserResponse{}, err
	}

	return user.Public(), nil
}
