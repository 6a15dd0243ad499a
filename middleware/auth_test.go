package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"salon-booking/constants"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signTestToken(t *testing.T, secret string, permissions []string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"uuid":        "user-uuid",
		"name":        "Test User",
		"user_id":     float64(1),
		"role":        "admin",
		"permissions": permissions,
		"iat":         time.Now().Unix(),
		"exp":         time.Now().Add(time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestVerifyJWTValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	signed := signTestToken(t, testSecret, []string{constants.PermAdminFull})

	claims, err := VerifyJWT(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-uuid", claims["uuid"])
	assert.Equal(t, "admin", claims["role"])
}

func TestVerifyJWTWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	signed := signTestToken(t, "other-secret", nil)

	_, err := VerifyJWT(signed)
	assert.Error(t, err)
}

func TestVerifyJWTMissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := VerifyJWT("whatever")
	assert.Error(t, err)
}

func TestVerifyJWTExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	claims := jwt.MapClaims{
		"uuid": "user-uuid",
		"exp":  time.Now().Add(-time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = VerifyJWT(signed)
	assert.Error(t, err)
}

func protectedApp(permissions ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected", RequirePermissions(permissions...), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestIsAuthenticatedMissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	app := protectedApp(constants.PermAdminFull)

	req := httptest.NewRequest("GET", "/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestIsAuthenticatedBearerToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	app := protectedApp(constants.PermAdminFull)

	signed := signTestToken(t, testSecret, []string{constants.PermAdminFull})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestIsAuthenticatedCookieFallback(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	app := protectedApp(constants.PermAdminFull)

	signed := signTestToken(t, testSecret, []string{constants.PermAdminFull})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Cookie", "access="+signed)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestIsAuthenticatedInsufficientPermissions(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	app := protectedApp(constants.PermSuperAdminFull)

	signed := signTestToken(t, testSecret, []string{constants.PermMemberFull})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireAuthenticationAcceptsAnyValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	app := fiber.New()
	app.Get("/me", RequireAuthentication(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	signed := signTestToken(t, testSecret, []string{constants.PermMemberFull})

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
