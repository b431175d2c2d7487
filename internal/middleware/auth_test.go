package middleware

import (
	"context"
	"encoding/base64"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/repository"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = base64.StdEncoding.EncodeToString([]byte(strings.Repeat("s", 32)))

type gatewayFixture struct {
	app    *fiber.App
	tokens *auth.TokenService
}

func newGatewayFixture(t *testing.T, policy fiber.Handler) *gatewayFixture {
	t.Helper()
	tokens, err := auth.NewTokenService(testSecret, time.Hour)
	require.NoError(t, err)

	users := repository.NewMemoryUserRepository()
	ctx := context.Background()
	require.NoError(t, users.Create(ctx, &models.User{Username: "alice", Email: "alice@example.com", Roles: []string{"USER"}}))
	require.NoError(t, users.Create(ctx, &models.User{Username: "root", Email: "root@example.com", Roles: []string{"ADMIN"}}))

	app := fiber.New()
	app.Get("/private", Authenticate(tokens, users), policy, func(c *fiber.Ctx) error {
		identity, ok := auth.FromContext(c.UserContext())
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendString(identity.Username)
	})
	return &gatewayFixture{app: app, tokens: tokens}
}

func (f *gatewayFixture) get(t *testing.T, authHeader string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, "/private", nil)
	if authHeader != "" {
		req.Header.Set(fiber.HeaderAuthorization, authHeader)
	}
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	buf := new(strings.Builder)
	_, _ = io.Copy(buf, resp.Body)
	return resp.StatusCode, buf.String()
}

func (f *gatewayFixture) bearer(t *testing.T, subject string) string {
	t.Helper()
	token, err := f.tokens.Issue(subject)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestAuthenticateAcceptsValidToken(t *testing.T) {
	f := newGatewayFixture(t, AnyUser())

	status, body := f.get(t, f.bearer(t, "alice"))
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "alice", body)
}

func TestAuthenticateRejects(t *testing.T) {
	f := newGatewayFixture(t, AnyUser())

	other, err := auth.NewTokenService(base64.StdEncoding.EncodeToString([]byte(strings.Repeat("x", 32))), time.Hour)
	require.NoError(t, err)
	forged, err := other.Issue("alice")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic YWxpY2U6cHc="},
		{"empty bearer", "Bearer "},
		{"garbage", "Bearer not.a.jwt"},
		{"foreign signature", "Bearer " + forged},
		{"unknown subject", f.bearer(t, "ghost")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, body := f.get(t, tc.header)
			assert.Equal(t, fiber.StatusUnauthorized, status)
			assert.Contains(t, body, `"error":true`)
		})
	}
}

func TestRequireRoles(t *testing.T) {
	t.Run("admin passes the any-user policy", func(t *testing.T) {
		f := newGatewayFixture(t, AnyUser())
		status, _ := f.get(t, f.bearer(t, "root"))
		assert.Equal(t, fiber.StatusOK, status)
	})

	t.Run("user is forbidden on admin routes", func(t *testing.T) {
		f := newGatewayFixture(t, AdminOnly())
		status, body := f.get(t, f.bearer(t, "alice"))
		assert.Equal(t, fiber.StatusForbidden, status)
		assert.Contains(t, body, "insufficient role")
	})

	t.Run("admin passes admin routes", func(t *testing.T) {
		f := newGatewayFixture(t, AdminOnly())
		status, body := f.get(t, f.bearer(t, "root"))
		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "root", body)
	})

	t.Run("no identity is unauthorized", func(t *testing.T) {
		app := fiber.New()
		app.Get("/", RequireRoles(models.RoleUser), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestSecurityHeaders(t *testing.T) {
	app := fiber.New()
	app.Use(SecurityHeaders())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
}
