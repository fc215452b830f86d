package api

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skillsenselab/authservice/internal/apperrors"
	"github.com/skillsenselab/authservice/internal/server"
	"github.com/skillsenselab/authservice/internal/store"
)

// ListUsers returns a page of users, optionally filtered by a search
// term matching email or name.
func (h *Handler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	page, pageSize = store.NormalizePage(page, pageSize)
	search := c.Query("search")

	users, total, err := h.users.List(c.Request.Context(), page, pageSize, search)
	if err != nil {
		server.RespondWithError(c, store.FromDatabase(err, "user"))
		return
	}

	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, toUserResponse(&users[i]))
	}

	server.RespondOKWithMeta(c, responses, &server.Meta{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	})
}

// GetUser returns a single user by ID.
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	user, err := h.users.FindByID(c.Request.Context(), id)
	if err != nil {
		server.RespondWithError(c, store.FromDatabase(err, "user"))
		return
	}
	server.RespondOK(c, toUserResponse(user))
}

// CreateUser creates a user. The password is hashed before it reaches
// the store; the plaintext is never persisted or logged.
func (h *Handler) CreateUser(c *gin.Context) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.InvalidInput("", err.Error()))
		return
	}
	if req.Password == "" {
		server.RespondWithError(c, apperrors.InvalidInput("password", "password is required"))
		return
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		server.RespondWithError(c, apperrors.InvalidInput("password", err.Error()))
		return
	}

	user := &store.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
	}
	if err := h.users.Create(c.Request.Context(), user); err != nil {
		server.RespondWithError(c, store.FromDatabase(err, "user"))
		return
	}

	h.log.Info("user created", map[string]interface{}{"id": user.ID.String(), "role": user.Role})
	server.RespondCreated(c, toUserResponse(user))
}

// UpdateUser updates an existing user. An empty password leaves the
// stored hash untouched.
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.InvalidInput("", err.Error()))
		return
	}

	user, err := h.users.FindByID(c.Request.Context(), id)
	if err != nil {
		server.RespondWithError(c, store.FromDatabase(err, "user"))
		return
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Email = req.Email
	user.Role = req.Role
	if req.Password != "" {
		hash, err := h.hasher.Hash(req.Password)
		if err != nil {
			server.RespondWithError(c, apperrors.InvalidInput("password", err.Error()))
			return
		}
		user.PasswordHash = hash
	}

	if err := h.users.Update(c.Request.Context(), user); err != nil {
		server.RespondWithError(c, store.FromDatabase(err, "user"))
		return
	}
	server.RespondOK(c, toUserResponse(user))
}

// DeleteUser soft-deletes a user.
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		server.RespondWithError(c, store.FromDatabase(err, "user"))
		return
	}
	server.RespondNoContent(c)
}

// pathID parses the :id path parameter, responding with 400 on failure.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		server.RespondWithError(c, apperrors.InvalidInput("id", "must be a valid UUID"))
		return uuid.Nil, false
	}
	return id, true
}
