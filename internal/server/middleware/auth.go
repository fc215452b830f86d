// Package middleware provides the Gin middleware stack: bearer-token
// authentication, role enforcement, panic recovery, request IDs, CORS,
// and request logging.
package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/authservice/internal/apperrors"
	"github.com/skillsenselab/authservice/internal/auth/authctx"
	"github.com/skillsenselab/authservice/internal/observability"
	"github.com/skillsenselab/authservice/internal/token"
)

const bearerScheme = "Bearer"

// Authenticate runs once per request, before any handler. A request
// without a bearer credential passes through with no principal attached;
// whether that is acceptable is the role middleware's decision, so
// public endpoints stay possible. A request that does present a bearer
// token must verify: any malformed, badly signed, or expired token
// aborts with 401 rather than being silently ignored.
//
// On success the verified claims become the request's principal,
// carried on the request context. Nothing else is touched; the
// credential store is never consulted here.
func Authenticate(codec *token.Codec, metrics *observability.AuthMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}

		claims, err := codec.Decode(raw)
		if err != nil {
			if metrics != nil {
				metrics.RecordVerification(c.Request.Context(), verifyOutcome(err))
			}
			abortWithError(c, tokenError(err))
			return
		}
		if metrics != nil {
			metrics.RecordVerification(c.Request.Context(), "success")
		}

		principal := authctx.Principal{
			Subject: claims.RegisteredClaims.Subject,
			Role:    claims.Role,
		}
		c.Request = c.Request.WithContext(authctx.Set(c.Request.Context(), principal))
		c.Next()
	}
}

// bearerToken extracts the token from an Authorization header. A missing
// header or a non-Bearer scheme both count as "no credential presented".
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != bearerScheme || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// tokenError maps codec verification failures onto client-facing errors
// with stable codes. Expired tokens get their own code so clients can
// prompt for re-login; malformed and forged tokens share one code.
func tokenError(err error) *apperrors.AppError {
	if errors.Is(err, token.ErrExpired) {
		return apperrors.TokenExpired()
	}
	return apperrors.InvalidToken()
}

func verifyOutcome(err error) string {
	if errors.Is(err, token.ErrExpired) {
		return "expired"
	}
	return "invalid"
}

func abortWithError(c *gin.Context, appErr *apperrors.AppError) {
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}
