//go:build unit

package middleware_test

import (
	"net/http"
	"testing"
	"time"

	"appointment-scheduler/internal/domain/user"
	"appointment-scheduler/internal/handler/middleware"
	"appointment-scheduler/internal/pkg/jwt"
	"appointment-scheduler/internal/usecase"
	"appointment-scheduler/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret"

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := jwt.NewService(testSecret, "appointment-scheduler", time.Hour)
	auth := middleware.NewAuthMiddleware(usecase.NewTokenValidator(svc))

	r := gin.New()
	r.GET("/me", auth.RequireAuth(), func(c *gin.Context) {
		actor, ok := middleware.GetActor(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": actor.ID.String(), "role": string(actor.Role)})
	})
	r.POST("/schedule", auth.RequireAuth(), auth.RequireRole(user.RoleProvider, user.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func token(t *testing.T, secret string, duration time.Duration, id uuid.UUID, role user.Role) string {
	t.Helper()
	tok, err := jwt.NewService(secret, "appointment-scheduler", duration).GenerateToken(id, role)
	require.NoError(t, err)
	return tok
}

func TestRequireAuth(t *testing.T) {
	r := newAuthRouter(t)
	id := uuid.New()

	t.Run("valid bearer token sets the actor", func(t *testing.T) {
		w := httptest.PerformRequest(t, r, http.MethodGet, "/me", nil, token(t, testSecret, time.Hour, id, user.RoleCustomer))

		var body map[string]string
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &body)
		assert.Equal(t, id.String(), body["id"])
		assert.Equal(t, "customer", body["role"])
	})

	t.Run("missing token", func(t *testing.T) {
		w := httptest.PerformRequest(t, r, http.MethodGet, "/me", nil, "")
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Access token required")
	})

	t.Run("non-bearer scheme is ignored", func(t *testing.T) {
		w := httptest.PerformRequestWithHeaders(t, r, http.MethodGet, "/me", nil, "", map[string]string{
			"Authorization": "Basic dXNlcjpwYXNz",
		})
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Access token required")
	})

	t.Run("expired token", func(t *testing.T) {
		w := httptest.PerformRequest(t, r, http.MethodGet, "/me", nil, token(t, testSecret, -time.Minute, id, user.RoleCustomer))
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Invalid or expired token")
	})

	t.Run("wrong signing key", func(t *testing.T) {
		w := httptest.PerformRequest(t, r, http.MethodGet, "/me", nil, token(t, "another-secret", time.Hour, id, user.RoleCustomer))
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Invalid or expired token")
	})

	t.Run("unknown role", func(t *testing.T) {
		w := httptest.PerformRequest(t, r, http.MethodGet, "/me", nil, token(t, testSecret, time.Hour, id, user.Role("superuser")))
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Invalid or expired token")
	})
}

func TestRequireRole(t *testing.T) {
	r := newAuthRouter(t)

	tests := []struct {
		role user.Role
		want int
	}{
		{user.RoleProvider, http.StatusNoContent},
		{user.RoleAdmin, http.StatusNoContent},
		{user.RoleCustomer, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			w := httptest.PerformRequest(t, r, http.MethodPost, "/schedule", nil, token(t, testSecret, time.Hour, uuid.New(), tt.role))
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}
