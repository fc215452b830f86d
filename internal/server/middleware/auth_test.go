package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/skillsenselab/authservice/internal/apperrors"
	"github.com/skillsenselab/authservice/internal/auth/authctx"
	"github.com/skillsenselab/authservice/internal/authz"
	"github.com/skillsenselab/authservice/internal/token"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestRouter(t *testing.T) (*gin.Engine, *token.Codec) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	codec, err := token.NewCodec(&token.Config{Secret: testSecret, TTL: 10 * time.Minute})
	if err != nil {
		t.Fatalf("NewCodec failed: %v", err)
	}

	policy := authz.NewPolicy()
	policy.Require("GET", "/api/v1/public")
	policy.Require("GET", "/api/v1/admin", "ADMINISTRATOR")
	policy.Require("GET", "/api/v1/shared", "MANAGER", "ADMINISTRATOR")

	router := gin.New()
	router.Use(Authenticate(codec, nil))

	api := router.Group("/api/v1")
	api.Use(EnforcePolicy(policy))
	handler := func(c *gin.Context) {
		p, _ := authctx.Get(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"subject": p.Subject, "role": p.Role})
	}
	api.GET("/public", handler)
	api.GET("/admin", handler)
	api.GET("/shared", handler)
	api.GET("/uncovered", handler)

	return router, codec
}

func issueToken(t *testing.T, codec *token.Codec, role string) string {
	t.Helper()
	signed, err := token.NewIssuer(codec).Issue("a@b.com", role)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	return signed
}

func expiredToken(t *testing.T, codec *token.Codec, role string) string {
	t.Helper()
	past := time.Now().Add(-time.Hour)
	signed, err := codec.Encode(&token.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   "a@b.com",
			IssuedAt:  gojwt.NewNumericDate(past),
			ExpiresAt: gojwt.NewNumericDate(past.Add(10 * time.Minute)),
		},
		Role: role,
	})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	return signed
}

func doRequest(router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) apperrors.ErrorCode {
	t.Helper()
	var resp apperrors.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal error body: %v (body: %s)", err, w.Body.String())
	}
	return resp.Error.Code
}

func TestPublicRouteWithoutToken(t *testing.T) {
	router, _ := newTestRouter(t)
	w := doRequest(router, "/api/v1/public", "")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 (body: %s)", w.Code, w.Body.String())
	}
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	router, _ := newTestRouter(t)
	w := doRequest(router, "/api/v1/admin", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if code := errorCode(t, w); code != apperrors.ErrCodeUnauthorized {
		t.Errorf("code = %s, want UNAUTHORIZED", code)
	}
}

func TestProtectedRouteWithMatchingRole(t *testing.T) {
	router, codec := newTestRouter(t)
	w := doRequest(router, "/api/v1/admin", "Bearer "+issueToken(t, codec, "ADMINISTRATOR"))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", w.Code, w.Body.String())
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body["subject"] != "a@b.com" || body["role"] != "ADMINISTRATOR" {
		t.Errorf("principal = %v, want subject a@b.com role ADMINISTRATOR", body)
	}
}

func TestProtectedRouteWithInsufficientRole(t *testing.T) {
	router, codec := newTestRouter(t)
	w := doRequest(router, "/api/v1/admin", "Bearer "+issueToken(t, codec, "MANAGER"))
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	if code := errorCode(t, w); code != apperrors.ErrCodeForbidden {
		t.Errorf("code = %s, want FORBIDDEN", code)
	}
}

func TestSharedRouteAcceptsEitherRole(t *testing.T) {
	router, codec := newTestRouter(t)
	for _, role := range []string{"MANAGER", "ADMINISTRATOR"} {
		w := doRequest(router, "/api/v1/shared", "Bearer "+issueToken(t, codec, role))
		if w.Code != http.StatusOK {
			t.Errorf("role %s: status = %d, want 200", role, w.Code)
		}
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	router, _ := newTestRouter(t)
	w := doRequest(router, "/api/v1/public", "Bearer not-a-real-token")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if code := errorCode(t, w); code != apperrors.ErrCodeInvalidToken {
		t.Errorf("code = %s, want INVALID_TOKEN", code)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	router, codec := newTestRouter(t)
	w := doRequest(router, "/api/v1/shared", "Bearer "+expiredToken(t, codec, "MANAGER"))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if code := errorCode(t, w); code != apperrors.ErrCodeTokenExpired {
		t.Errorf("code = %s, want TOKEN_EXPIRED", code)
	}
}

func TestNonBearerSchemePassesThroughUnauthenticated(t *testing.T) {
	router, _ := newTestRouter(t)

	// A non-bearer credential is "no credential" for this service; the
	// policy check then decides.
	if w := doRequest(router, "/api/v1/public", "Basic dXNlcjpwYXNz"); w.Code != http.StatusOK {
		t.Errorf("public: status = %d, want 200", w.Code)
	}
	if w := doRequest(router, "/api/v1/admin", "Basic dXNlcjpwYXNz"); w.Code != http.StatusUnauthorized {
		t.Errorf("admin: status = %d, want 401", w.Code)
	}
}

func TestUncoveredRouteFailsClosed(t *testing.T) {
	router, codec := newTestRouter(t)
	w := doRequest(router, "/api/v1/uncovered", "Bearer "+issueToken(t, codec, "ADMINISTRATOR"))
	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	router, codec := newTestRouter(t)
	signed := issueToken(t, codec, "MANAGER")
	tampered := signed[:len(signed)-2] + "xx"

	w := doRequest(router, "/api/v1/shared", "Bearer "+tampered)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if code := errorCode(t, w); code != apperrors.ErrCodeInvalidToken {
		t.Errorf("code = %s, want INVALID_TOKEN", code)
	}
}
