package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/authservice/internal/apperrors"
	"github.com/skillsenselab/authservice/internal/auth"
	"github.com/skillsenselab/authservice/internal/logger"
	"github.com/skillsenselab/authservice/internal/observability"
	"github.com/skillsenselab/authservice/internal/password"
	"github.com/skillsenselab/authservice/internal/server"
	"github.com/skillsenselab/authservice/internal/store"
)

// Handler carries the handlers' dependencies.
type Handler struct {
	auth     *auth.Service
	users    *store.UserStore
	profiles *store.ProfileStore
	hasher   password.Hasher
	metrics  *observability.AuthMetrics
	log      *logger.Logger
}

// NewHandler creates the API handler set.
func NewHandler(authSvc *auth.Service, users *store.UserStore, profiles *store.ProfileStore,
	hasher password.Hasher, metrics *observability.AuthMetrics, log *logger.Logger) *Handler {
	return &Handler{
		auth:     authSvc,
		users:    users,
		profiles: profiles,
		hasher:   hasher,
		metrics:  metrics,
		log:      log.WithComponent("api"),
	}
}

// Login authenticates a credential pair and returns a signed bearer
// token. Every failed login looks the same from outside: one 401 with
// the INVALID_CREDENTIALS code, whether the email was unknown or the
// password wrong.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.InvalidInput("", "email and password are required"))
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.recordLogin(c, "failure")
		if errors.Is(err, auth.ErrInvalidCredentials) {
			server.RespondWithError(c, apperrors.InvalidCredentials())
			return
		}
		h.log.WithError(err).Error("login failed unexpectedly")
		server.RespondWithError(c, apperrors.Internal(err))
		return
	}

	h.recordLogin(c, "success")

	// Echo the token in the response header as well, for clients that
	// read it from there.
	c.Header("Authorization", result.Type+" "+result.Token)
	server.RespondOK(c, result)
}

func (h *Handler) recordLogin(c *gin.Context, outcome string) {
	if h.metrics != nil {
		h.metrics.RecordLogin(c.Request.Context(), outcome)
	}
}
