package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/tavola-app/backend/internal/database"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testJWTSecret = "test-jwt-secret"

// TestEnv bundles a router wired against an in-memory database.
type TestEnv struct {
	Router *gin.Engine
	DB     *gorm.DB
}

func setupTestEnv(t *testing.T) *TestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	router := gin.New()
	SetupAPI(router, db, testJWTSecret, Options{})

	return &TestEnv{Router: router, DB: db}
}

// request performs an HTTP request against the test router. A non-empty
// token is sent as a bearer token; a non-nil body is JSON-encoded.
func (e *TestEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// registerUser registers a fresh user and returns its token.
func (e *TestEnv) registerUser(t *testing.T, name, email string) string {
	t.Helper()

	w := e.request(t, http.MethodPost, "/api/v1/auth/register", "", RegisterRequest{
		Name:     name,
		Email:    email,
		Password: "Password123!",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp TokenResponse
	decodeJSON(t, w, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// createFamily creates a family for the given user and returns its ID.
func (e *TestEnv) createFamily(t *testing.T, token, name string) uuid.UUID {
	t.Helper()

	w := e.request(t, http.MethodPost, "/api/v1/families", token, CreateFamilyRequest{Name: name})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		ID uuid.UUID `json:"id"`
	}
	decodeJSON(t, w, &resp)
	return resp.ID
}

// setupMember registers a user that already belongs to a family.
func (e *TestEnv) setupMember(t *testing.T, email string) (string, uuid.UUID) {
	t.Helper()
	token := e.registerUser(t, "Test User", email)
	familyID := e.createFamily(t, token, "Test Family")
	return token, familyID
}
