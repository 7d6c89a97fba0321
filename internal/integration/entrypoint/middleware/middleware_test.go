package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catering-ops/backend/internal/application/adapter"
	"github.com/catering-ops/backend/internal/domain/entity"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubTokenService struct {
	adapter.TokenService
	claims *adapter.TokenClaims
}

func (s *stubTokenService) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	if token != "good" {
		return nil, errors.New("invalid token")
	}
	return s.claims, nil
}

func newAuthRouter(role entity.Role, allowed ...entity.Role) (*gin.Engine, uuid.UUID) {
	userID := uuid.New()
	m := NewAuthMiddleware(&stubTokenService{claims: &adapter.TokenClaims{
		UserID: userID,
		Email:  "user@example.com",
		Role:   role,
	}})

	r := gin.New()
	r.GET("/protected", m.Authenticate(), RequireRoles(allowed...), func(c *gin.Context) {
		id, _ := GetUserIDFromContext(c)
		email, _ := GetUserEmailFromContext(c)
		role, _ := GetRoleFromContext(c)
		c.JSON(http.StatusOK, gin.H{
			"user_id": id.String(),
			"email":   email,
			"role":    string(role),
			"token":   GetAccessTokenFromContext(c),
		})
	})
	return r, userID
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		role       entity.Role
		wantStatus int
		wantCode   string
	}{
		{name: "missing header", header: "", role: entity.RoleAdmin, wantStatus: http.StatusUnauthorized, wantCode: "AUTH-030003"},
		{name: "not bearer", header: "Basic abc", role: entity.RoleAdmin, wantStatus: http.StatusUnauthorized, wantCode: "AUTH-030001"},
		{name: "empty bearer", header: "Bearer ", role: entity.RoleAdmin, wantStatus: http.StatusUnauthorized, wantCode: "AUTH-030003"},
		{name: "invalid token", header: "Bearer bad", role: entity.RoleAdmin, wantStatus: http.StatusUnauthorized, wantCode: "AUTH-030001"},
		{name: "role not allowed", header: "Bearer good", role: entity.RoleDriver, wantStatus: http.StatusForbidden, wantCode: "AUTH-040001"},
		{name: "allowed", header: "Bearer good", role: entity.RoleDistributor, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, userID := newAuthRouter(tt.role, entity.RoleAdmin, entity.RoleDistributor)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantCode != "" {
				assert.Contains(t, w.Body.String(), tt.wantCode)
				return
			}
			assert.JSONEq(t, `{"user_id":"`+userID.String()+`","email":"user@example.com","role":"distributor","token":"good"}`, w.Body.String())
		})
	}
}

func TestRateLimiter_Memory(t *testing.T) {
	rl := NewRateLimiterWithConfig("login", 2, time.Minute, nil)
	r := gin.New()
	r.POST("/login", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestMemoryStore_WindowReset(t *testing.T) {
	now := time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)
	s := newMemoryStore()
	s.now = func() time.Time { return now }
	ctx := context.Background()

	ok, _ := s.allow(ctx, "k", 1, time.Minute)
	assert.True(t, ok)
	ok, _ = s.allow(ctx, "k", 1, time.Minute)
	assert.False(t, ok)

	now = now.Add(61 * time.Second)
	ok, _ = s.allow(ctx, "k", 1, time.Minute)
	assert.True(t, ok)
}

func TestRedisStore(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer client.Close()

	s := &redisStore{client: client}
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := s.allow(ctx, "ratelimit:login:1.2.3.4", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := s.allow(ctx, "ratelimit:login:1.2.3.4", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	server.FastForward(2 * time.Minute)
	ok, err = s.allow(ctx, "ratelimit:login:1.2.3.4", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer client.Close()
	server.Close()

	rl := NewRateLimiterWithConfig("login", 1, time.Minute, client)
	r := gin.New()
	r.POST("/login", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
