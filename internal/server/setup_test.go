package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"devlink/internal/cache"
	"devlink/internal/config"
	"devlink/internal/database"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestServer wires a Server to a fresh in-memory sqlite database and a
// disabled cache, with all routes mounted.
func newTestServer(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		Port:      "5000",
		Env:       "test",
		JWTSecret: "test-secret-with-at-least-32-characters",
		JWTExpire: "1h",
	}
	srv := NewServerWithDeps(cfg, db, &cache.Cache{})

	app := fiber.New()
	srv.SetupRoutes(app)
	return srv, app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()

	var decoded map[string]any
	if len(raw) > 0 {
		// Plain-text bodies (e.g. limiter messages) stay undecoded.
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

// registerUser creates an account through the API and returns its token and id.
func registerUser(t *testing.T, app *fiber.App, name, email string) (string, uint) {
	t.Helper()

	resp, body := doJSON(t, app, "POST", "/api/v1/auth/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": "secret1",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, "register failed: %v", body)

	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	data := body["data"].(map[string]any)
	user := data["user"].(map[string]any)
	id := uint(user["id"].(float64))
	require.NotZero(t, id)
	return token, id
}
