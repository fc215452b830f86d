package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/skillsenselab/authservice/internal/store"
)

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserRequest is the create/update payload for a user.
type UserRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"omitempty,min=8"`
	Role      string `json:"role" binding:"required,role"`
}

// UserResponse is a user record without its credential material.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toUserResponse(u *store.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// ManagerProfileRequest is the upsert payload for a manager profile.
type ManagerProfileRequest struct {
	Department string `json:"department" binding:"required"`
	Region     string `json:"region"`
}

// ManagerProfileResponse is a manager profile record.
type ManagerProfileResponse struct {
	UserID     uuid.UUID `json:"userId"`
	Department string    `json:"department"`
	Region     string    `json:"region"`
}

// AdministratorProfileRequest is the upsert payload for an administrator profile.
type AdministratorProfileRequest struct {
	Level int `json:"level" binding:"required,min=1,max=10"`
}

// AdministratorProfileResponse is an administrator profile record.
type AdministratorProfileResponse struct {
	UserID uuid.UUID `json:"userId"`
	Level  int       `json:"level"`
}
