package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/authservice/internal/apperrors"
	"github.com/skillsenselab/authservice/internal/auth/authctx"
	"github.com/skillsenselab/authservice/internal/authz"
)

// EnforcePolicy checks every matched route against the policy table.
// The table is immutable after startup, so the check is lock-free.
//
// A route missing from the table fails closed: the table is supposed to
// cover every registered operation, and an uncovered one is a wiring
// bug, not an open door.
func EnforcePolicy(policy *authz.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		required, ok := policy.RequiredRoles(c.Request.Method, c.FullPath())
		if !ok {
			abortWithError(c, apperrors.Forbidden("Operation is not covered by the access policy."))
			return
		}

		principal, authenticated := authctx.Get(c.Request.Context())
		if err := authz.Evaluate(required, principal.Role, authenticated); err != nil {
			switch {
			case errors.Is(err, authz.ErrUnauthorized):
				abortWithError(c, apperrors.Unauthorized(""))
			case errors.Is(err, authz.ErrForbidden):
				abortWithError(c, apperrors.Forbidden(""))
			default:
				abortWithError(c, apperrors.Internal(err))
			}
			return
		}

		c.Next()
	}
}
