package api

import (
	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/authservice/internal/apperrors"
	"github.com/skillsenselab/authservice/internal/auth"
	"github.com/skillsenselab/authservice/internal/server"
	"github.com/skillsenselab/authservice/internal/store"
)

// GetManagerProfile returns the manager profile for a user.
func (h *Handler) GetManagerProfile(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	profile, err := h.profiles.ManagerByUser(c.Request.Context(), id)
	if err != nil {
		server.RespondWithError(c, store.FromDatabase(err, "manager profile"))
		return
	}
	server.RespondOK(c, ManagerProfileResponse{
		UserID:     profile.UserID,
		Department: profile.Department,
		Region:     profile.Region,
	})
}

// PutManagerProfile creates or replaces the manager profile for a user.
// The user must exist and hold the MANAGER role.
func (h *Handler) PutManagerProfile(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req ManagerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.InvalidInput("", err.Error()))
		return
	}

	user, err := h.users.FindByID(c.Request.Context(), id)
	if err != nil {
		server.RespondWithError(c, store.FromDatabase(err, "user"))
		return
	}
	if user.Role != string(auth.RoleManager) {
		server.RespondWithError(c, apperrors.InvalidInput("id", "user is not a manager"))
		return
	}

	profile := &store.ManagerProfile{
		UserID:     user.ID,
		Department: req.Department,
		Region:     req.Region,
	}
	if err := h.profiles.UpsertManager(c.Request.Context(), profile); err != nil {
		server.RespondWithError(c, store.FromDatabase(err, "manager profile"))
		return
	}
	server.RespondOK(c, ManagerProfileResponse{
		UserID:     profile.UserID,
		Department: profile.Department,
		Region:     profile.Region,
	})
}

// GetAdministratorProfile returns the administrator profile for a user.
func (h *Handler) GetAdministratorProfile(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	profile, err := h.profiles.AdministratorByUser(c.Request.Context(), id)
	if err != nil {
		server.RespondWithError(c, store.FromDatabase(err, "administrator profile"))
		return
	}
	server.RespondOK(c, AdministratorProfileResponse{UserID: profile.UserID, Level: profile.Level})
}

// PutAdministratorProfile creates or replaces the administrator profile
// for a user. The user must exist and hold the ADMINISTRATOR role.
func (h *Handler) PutAdministratorProfile(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req AdministratorProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.InvalidInput("", err.Error()))
		return
	}

	user, err := h.users.FindByID(c.Request.Context(), id)
	if err != nil {
		server.RespondWithError(c, store.FromDatabase(err, "user"))
		return
	}
	if user.Role != string(auth.RoleAdministrator) {
		server.RespondWithError(c, apperrors.InvalidInput("id", "user is not an administrator"))
		return
	}

	profile := &store.AdministratorProfile{UserID: user.ID, Level: req.Level}
	if err := h.profiles.UpsertAdministrator(c.Request.Context(), profile); err != nil {
		server.RespondWithError(c, store.FromDatabase(err, "administrator profile"))
		return
	}
	server.RespondOK(c, AdministratorProfileResponse{UserID: profile.UserID, Level: profile.Level})
}
