// Package api wires the HTTP surface: the login operation and the
// user/profile resources, each protected by the access policy table.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/skillsenselab/authservice/internal/auth"
	"github.com/skillsenselab/authservice/internal/authz"
	"github.com/skillsenselab/authservice/internal/observability"
	"github.com/skillsenselab/authservice/internal/server/middleware"
	"github.com/skillsenselab/authservice/internal/token"
)

// API route constants.
const (
	BasePath  = "/api/v1"
	LoginPath = BasePath + "/auth/login"
)

// roleAdmin / roleManager are the policy-table spellings.
var (
	roleManager = string(auth.RoleManager)
	roleAdmin   = string(auth.RoleAdministrator)
)

// Register mounts every route on the engine and returns the access
// policy table covering them. The policy lists each operation with its
// exact required role set; the table is immutable once returned.
func Register(engine *gin.Engine, h *Handler, codec *token.Codec, metrics *observability.AuthMetrics) *authz.Policy {
	registerValidators()

	engine.Use(middleware.Authenticate(codec, metrics))
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	policy := authz.NewPolicy()
	policy.Require("POST", LoginPath) // public
	policy.Require("GET", BasePath+"/users", roleAdmin)
	policy.Require("POST", BasePath+"/users", roleAdmin)
	policy.Require("GET", BasePath+"/users/:id", roleManager, roleAdmin)
	policy.Require("PUT", BasePath+"/users/:id", roleAdmin)
	policy.Require("DELETE", BasePath+"/users/:id", roleAdmin)
	policy.Require("GET", BasePath+"/managers/:id/profile", roleManager, roleAdmin)
	policy.Require("PUT", BasePath+"/managers/:id/profile", roleManager, roleAdmin)
	policy.Require("GET", BasePath+"/administrators/:id/profile", roleAdmin)
	policy.Require("PUT", BasePath+"/administrators/:id/profile", roleAdmin)

	api := engine.Group(BasePath)
	api.Use(middleware.EnforcePolicy(policy))

	api.POST("/auth/login", h.Login)

	api.GET("/users", h.ListUsers)
	api.POST("/users", h.CreateUser)
	api.GET("/users/:id", h.GetUser)
	api.PUT("/users/:id", h.UpdateUser)
	api.DELETE("/users/:id", h.DeleteUser)

	api.GET("/managers/:id/profile", h.GetManagerProfile)
	api.PUT("/managers/:id/profile", h.PutManagerProfile)
	api.GET("/administrators/:id/profile", h.GetAdministratorProfile)
	api.PUT("/administrators/:id/profile", h.PutAdministratorProfile)

	return policy
}

// registerValidators adds the "role" rule to gin's validator engine.
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
			_, err := auth.ParseRole(fl.Field().String())
			return err == nil
		})
	}
}
