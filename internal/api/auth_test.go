package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/v1/auth/register", "", RegisterRequest{
		Name:     "Maria",
		Email:    "maria@example.com",
		Password: "Password123!",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var registered TokenResponse
	decodeJSON(t, w, &registered)
	assert.NotEmpty(t, registered.Token)

	w = env.request(t, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{
		Email:    "maria@example.com",
		Password: "Password123!",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var logged TokenResponse
	decodeJSON(t, w, &logged)
	assert.NotEmpty(t, logged.Token)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := setupTestEnv(t)
	env.registerUser(t, "Maria", "maria@example.com")

	w := env.request(t, http.MethodPost, "/api/v1/auth/register", "", RegisterRequest{
		Name:     "Other Maria",
		Email:    "maria@example.com",
		Password: "Password123!",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterValidation(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/v1/auth/register", "", RegisterRequest{
		Name:     "Maria",
		Email:    "not-an-email",
		Password: "Password123!",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.request(t, http.MethodPost, "/api/v1/auth/register", "", RegisterRequest{
		Name:     "Maria",
		Email:    "maria@example.com",
		Password: "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	env := setupTestEnv(t)
	env.registerUser(t, "Maria", "maria@example.com")

	w := env.request(t, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{
		Email:    "maria@example.com",
		Password: "WrongPassword!",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMe(t *testing.T) {
	env := setupTestEnv(t)
	token := env.registerUser(t, "Maria", "maria@example.com")

	w := env.request(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	decodeJSON(t, w, &resp)
	assert.Equal(t, "Maria", resp.Name)
	assert.Equal(t, "maria@example.com", resp.Email)
}

func TestMeRequiresToken(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.request(t, http.MethodGet, "/api/v1/auth/me", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
