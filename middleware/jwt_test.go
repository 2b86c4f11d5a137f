package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"devcamper/config"
	"devcamper/database"
	"devcamper/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, out))
}

func newProtectedApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.LoadConfig()
	db, err := database.ConnectTestDb()
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/me", Protect, func(c *fiber.Ctx) error {
		return JsonResponse(c, fiber.StatusOK, CurrentUser(c).Email)
	})
	app.Get("/admin", Protect, Authorize(models.RoleAdmin), func(c *fiber.Ctx) error {
		return JsonResponse(c, fiber.StatusOK, "ok")
	})

	return app, db
}

func seedUser(t *testing.T, db *gorm.DB, email, role string) models.User {
	t.Helper()

	user := models.User{Name: "Test User", Email: email, Role: role, Password: "hashed"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestProtectMissingToken(t *testing.T) {
	app, _ := newProtectedApp(t)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var out map[string]interface{}
	decodeBody(t, resp, &out)
	require.Equal(t, false, out["success"])
	require.Equal(t, "Not authorized to access this route", out["error"])
}

func TestProtectMalformedToken(t *testing.T) {
	app, _ := newProtectedApp(t)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectBearerHeader(t *testing.T) {
	app, db := newProtectedApp(t)
	user := seedUser(t, db, "john@gmail.com", models.RoleUser)

	token, err := GenerateJWT(user.ID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]interface{}
	decodeBody(t, resp, &out)
	require.Equal(t, "john@gmail.com", out["data"])
}

func TestProtectTokenCookie(t *testing.T) {
	app, db := newProtectedApp(t)
	user := seedUser(t, db, "jane@gmail.com", models.RoleUser)

	token, err := GenerateJWT(user.ID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProtectLoggedOutCookie(t *testing.T) {
	app, _ := newProtectedApp(t)

	// logout leaves a "none" sentinel cookie behind
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "none"})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectDeletedUser(t *testing.T) {
	app, db := newProtectedApp(t)
	user := seedUser(t, db, "gone@gmail.com", models.RoleUser)

	token, err := GenerateJWT(user.ID)
	require.NoError(t, err)
	require.NoError(t, db.Unscoped().Delete(&user).Error)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectExpiredToken(t *testing.T) {
	app, db := newProtectedApp(t)
	user := seedUser(t, db, "late@gmail.com", models.RoleUser)

	expireHours := config.AppConfig.JWTExpireHours
	config.AppConfig.JWTExpireHours = -1
	token, err := GenerateJWT(user.ID)
	config.AppConfig.JWTExpireHours = expireHours
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthorizeRejectsWrongRole(t *testing.T) {
	app, db := newProtectedApp(t)
	user := seedUser(t, db, "plain@gmail.com", models.RoleUser)

	token, err := GenerateJWT(user.ID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	var out map[string]interface{}
	decodeBody(t, resp, &out)
	require.Equal(t, "User role user is not authorized to access this route", out["error"])
}

func TestAuthorizeAcceptsRole(t *testing.T) {
	app, db := newProtectedApp(t)
	admin := seedUser(t, db, "admin@gmail.com", models.RoleAdmin)

	token, err := GenerateJWT(admin.ID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
