package server

import (
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	srv, app, _ := newTestServer(t)

	resp, body := doJSON(t, app, "POST", "/api/v1/auth/register", "", map[string]string{
		"name":     "A",
		"email":    "a@x.com",
		"password": "secret1",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "success", body["status"])
	require.NotEmpty(t, body["token"])

	user := body["data"].(map[string]any)["user"].(map[string]any)
	assert.Equal(t, "A", user["name"])
	assert.Equal(t, "a@x.com", user["email"])
	assert.Contains(t, user["avatar"], "gravatar.com/avatar/")
	// The hash never leaves the server.
	assert.NotContains(t, user, "password")

	// The issued token verifies with the configured secret and round-trips
	// the user id.
	token, err := jwt.Parse(body["token"].(string), func(tk *jwt.Token) (any, error) {
		return []byte(srv.config.JWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	claims := token.Claims.(jwt.MapClaims)
	sub, _ := claims["sub"].(string)
	id, err := strconv.ParseUint(sub, 10, 32)
	require.NoError(t, err)
	assert.EqualValues(t, user["id"].(float64), id)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	_, app, _ := newTestServer(t)
	registerUser(t, app, "A", "a@x.com")

	resp, body := doJSON(t, app, "POST", "/api/v1/auth/register", "", map[string]string{
		"name":     "B",
		"email":    "a@x.com",
		"password": "secret2",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "CONFLICT", body["code"])
}

func TestRegister_Validation(t *testing.T) {
	_, app, _ := newTestServer(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"Missing name", map[string]string{"email": "a@x.com", "password": "secret1"}},
		{"Missing email", map[string]string{"name": "A", "password": "secret1"}},
		{"Missing password", map[string]string{"name": "A", "email": "a@x.com"}},
		{"Bad email", map[string]string{"name": "A", "email": "not-an-email", "password": "secret1"}},
		{"Short password", map[string]string{"name": "A", "email": "a@x.com", "password": "st"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := doJSON(t, app, "POST", "/api/v1/auth/register", "", tt.body)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestLogin(t *testing.T) {
	_, app, _ := newTestServer(t)
	_, id := registerUser(t, app, "A", "a@x.com")

	t.Run("wrong password", func(t *testing.T) {
		resp, _ := doJSON(t, app, "POST", "/api/v1/auth/login", "", map[string]string{
			"email":    "a@x.com",
			"password": "wrong",
		})
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("unknown email", func(t *testing.T) {
		resp, _ := doJSON(t, app, "POST", "/api/v1/auth/login", "", map[string]string{
			"email":    "nobody@x.com",
			"password": "secret1",
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing fields", func(t *testing.T) {
		resp, _ := doJSON(t, app, "POST", "/api/v1/auth/login", "", map[string]string{
			"email": "a@x.com",
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("correct credentials", func(t *testing.T) {
		resp, body := doJSON(t, app, "POST", "/api/v1/auth/login", "", map[string]string{
			"email":    "a@x.com",
			"password": "secret1",
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		token, _ := body["token"].(string)
		require.NotEmpty(t, token)

		// A fresh token works against a protected route.
		meResp, meBody := doJSON(t, app, "GET", "/api/v1/auth/getMe", token, nil)
		require.Equal(t, fiber.StatusOK, meResp.StatusCode)
		me := meBody["data"].(map[string]any)
		assert.EqualValues(t, id, me["id"].(float64))
	})

	t.Run("email is case-insensitive", func(t *testing.T) {
		resp, _ := doJSON(t, app, "POST", "/api/v1/auth/login", "", map[string]string{
			"email":    "A@X.COM",
			"password": "secret1",
		})
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestAuthRequired(t *testing.T) {
	srv, app, _ := newTestServer(t)
	token, id := registerUser(t, app, "A", "a@x.com")

	t.Run("missing header", func(t *testing.T) {
		resp, _ := doJSON(t, app, "GET", "/api/v1/auth/getMe", "", nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/auth/getMe", nil)
		req.Header.Set("Authorization", "NotBearer "+token)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbage token", func(t *testing.T) {
		resp, _ := doJSON(t, app, "GET", "/api/v1/auth/getMe", "not-a-token", nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("token signed with wrong secret", func(t *testing.T) {
		forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": strconv.FormatUint(uint64(id), 10),
			"iss": tokenIssuer,
			"aud": tokenAudience,
		})
		signed, err := forged.SignedString([]byte("some-other-secret"))
		require.NoError(t, err)

		resp, _ := doJSON(t, app, "GET", "/api/v1/auth/getMe", signed, nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": strconv.FormatUint(uint64(id), 10),
			"iss": "someone-else",
			"aud": tokenAudience,
		})
		signed, err := forged.SignedString([]byte(srv.config.JWTSecret))
		require.NoError(t, err)

		resp, _ := doJSON(t, app, "GET", "/api/v1/auth/getMe", signed, nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid token for deleted user", func(t *testing.T) {
		resp, _ := doJSON(t, app, "DELETE", "/api/v1/profile/user/"+strconv.FormatUint(uint64(id), 10), token, nil)
		require.Equal(t, fiber.StatusAccepted, resp.StatusCode)

		resp, _ = doJSON(t, app, "GET", "/api/v1/auth/getMe", token, nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestGravatarURL(t *testing.T) {
	a := gravatarURL("a@x.com")
	b := gravatarURL("  A@X.COM ")
	assert.Equal(t, a, b, "avatar URL is deterministic on the normalized email")
	assert.NotEqual(t, a, gravatarURL("b@x.com"))
}
