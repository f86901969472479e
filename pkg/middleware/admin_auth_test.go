package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/CandidateX/sentinel/pkg/config"
	"github.com/CandidateX/sentinel/pkg/infra/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthApp(t *testing.T, secretKey string) *fiber.App {
	t.Helper()
	manager := jwt.NewJwtManager(&config.ServerConfig{SecretKey: secretKey})
	mw := NewAdminAuthMiddleware(logrus.New(), manager)

	app := fiber.New()
	app.Get("/protected", mw.Middleware(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestAdminAuth_MissingHeader(t *testing.T) {
	app := newAuthApp(t, "secret")

	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminAuth_MalformedHeader(t *testing.T) {
	app := newAuthApp(t, "secret")

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminAuth_InvalidToken(t *testing.T) {
	app := newAuthApp(t, "secret")

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminAuth_ValidToken(t *testing.T) {
	manager := jwt.NewJwtManager(&config.ServerConfig{SecretKey: "secret"})
	token, err := manager.CreateToken()
	require.NoError(t, err)

	app := newAuthApp(t, "secret")

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
