package store

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skillsenselab/authservice/internal/auth"
)

// UserStore reads and writes user records.
type UserStore struct {
	db *gorm.DB
}

var _ auth.UserStore = (*UserStore)(nil)

// normalizeEmail lower-cases and trims an identifier. Applied at every
// boundary so stored and looked-up values always agree.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// FindCredential implements auth.UserStore. Soft-deleted users do not
// authenticate; they are invisible here like any unknown email.
func (s *UserStore) FindCredential(ctx context.Context, email string) (*auth.Credential, error) {
	var user User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrCredentialNotFound
		}
		return nil, err
	}
	return &auth.Credential{
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
	}, nil
}

// FindByID returns a user by ID.
func (s *UserStore) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var user User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail returns a user by normalized email.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// NormalizePage clamps pagination parameters to their valid ranges.
// Callers that echo the page back (pagination metadata) must use the
// clamped values, not the raw request input.
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

// List returns a page of users, optionally filtered by a case-insensitive
// substring match on email or name.
func (s *UserStore) List(ctx context.Context, page, pageSize int, search string) ([]User, int64, error) {
	page, pageSize = NormalizePage(page, pageSize)

	query := s.db.WithContext(ctx).Model(&User{})
	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"lower(email) LIKE ? OR lower(first_name) LIKE ? OR lower(last_name) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []User
	err := query.
		Order("created_at").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Create persists a new user. The email is normalized before writing.
func (s *UserStore) Create(ctx context.Context, user *User) error {
	user.Email = normalizeEmail(user.Email)
	return s.db.WithContext(ctx).Create(user).Error
}

// Update persists changes to an existing user.
func (s *UserStore) Update(ctx context.Context, user *User) error {
	user.Email = normalizeEmail(user.Email)
	return s.db.WithContext(ctx).Save(user).Error
}

// Delete soft-deletes a user. The record stays in the table but stops
// matching lookups, including credential lookups at login.
func (s *UserStore) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
