package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"sacco-admin/internal/core/domain"
	"sacco-admin/internal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddlewareAndCapabilities(t *testing.T) {
	issuer := jwt.NewIssuer("secret", "refresh", 5, 1)
	app := fiber.New()
	app.Get("/ledger", AuthMiddleware(issuer), RequireCapability(domain.CapManageLedger), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	send := func(token string) int {
		req := httptest.NewRequest(http.MethodGet, "/ledger", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusUnauthorized, send(""))
	assert.Equal(t, http.StatusUnauthorized, send("not.a.jwt"))

	member, err := issuer.AccessToken(1, "member1", string(domain.RoleMember))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, send(member))

	officer, err := issuer.AccessToken(2, "officer", string(domain.RoleFinanceOfficer))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, send(officer))

	// a token signed with another secret is rejected
	foreign, err := jwt.NewIssuer("other", "refresh", 5, 1).AccessToken(2, "officer", string(domain.RoleAdmin))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, send(foreign))
}

func TestCacheHeaders(t *testing.T) {
	app := fiber.New()
	app.Get("/public", PublicCache(0), func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/private", NoCacheHeaders(), func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/public", nil), -1)
	require.NoError(t, err)
	assert.Contains(t, resp.Header.Get("Cache-Control"), "public")

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/private", nil), -1)
	require.NoError(t, err)
	assert.Contains(t, resp.Header.Get("Cache-Control"), "no-store")
}
