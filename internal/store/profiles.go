package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfileStore reads and writes the role-specific profile records.
type ProfileStore struct {
	db *gorm.DB
}

// ManagerByUser returns the manager profile for a user.
func (s *ProfileStore) ManagerByUser(ctx context.Context, userID uuid.UUID) (*ManagerProfile, error) {
	var profile ManagerProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpsertManager creates or updates the manager profile for a user.
func (s *ProfileStore) UpsertManager(ctx context.Context, profile *ManagerProfile) error {
	var existing ManagerProfile
	err := s.db.WithContext(ctx).Where("user_id = ?", profile.UserID).First(&existing).Error
	switch {
	case err == nil:
		profile.BaseModel = existing.BaseModel
		return s.db.WithContext(ctx).Save(profile).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		return s.db.WithContext(ctx).Create(profile).Error
	default:
		return err
	}
}

// AdministratorByUser returns the administrator profile for a user.
func (s *ProfileStore) AdministratorByUser(ctx context.Context, userID uuid.UUID) (*AdministratorProfile, error) {
	var profile AdministratorProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpsertAdministrator creates or updates the administrator profile for a user.
func (s *ProfileStore) UpsertAdministrator(ctx context.Context, profile *AdministratorProfile) error {
	var existing AdministratorProfile
	err := s.db.WithContext(ctx).Where("user_id = ?", profile.UserID).First(&existing).Error
	switch {
	case err == nil:
		profile.BaseModel = existing.BaseModel
		return s.db.WithContext(ctx).Save(profile).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		return s.db.WithContext(ctx).Create(profile).Error
	default:
		return err
	}
}
