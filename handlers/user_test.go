// user_test.go - Automated tests for registration, login and session handlers
// Run with: go test ./...

package handlers

import (
	"bytes"             // For building request bodies
	"context"           // Service calls in fixtures
	"encoding/json"     // For encoding/decoding JSON
	"net/http"          // HTTP status codes
	"net/http/httptest" // HTTP test helpers
	"net/url"           // Form bodies
	"strings"           // Form bodies
	"testing"           // Go's testing package
	"time"              // Token lifetime

	"github.com/gin-gonic/gin"            // Gin web framework
	"github.com/stretchr/testify/assert"  // For assertions
	"github.com/stretchr/testify/require" // For fatal assertions
	"golang.org/x/crypto/bcrypt"          // Cheap hashes in tests

	"go-catalog-backend/auth"    // Auth service
	"go-catalog-backend/catalog" // Catalog service
	"go-catalog-backend/models"  // Roles and users
	"go-catalog-backend/store"   // In-memory store
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testEnv bundles a router with the services behind it
type testEnv struct {
	router  *gin.Engine
	mem     *store.Memory
	auth    *auth.Service
	catalog *catalog.Service
}

// setupEnv builds the full router on the in-memory store with one account per role
func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	mem := store.NewMemory()
	authSvc := auth.NewService(mem, auth.Config{Secret: "test-secret", Issuer: "test", TTL: time.Hour, BcryptCost: bcrypt.MinCost})
	catSvc := catalog.NewService(mem)

	for _, u := range []struct {
		email string
		role  models.Role
	}{
		{"sales@example.com", models.RoleSalesManager},
		{"products@example.com", models.RoleProductManager},
		{"admin@example.com", models.RoleAdmin},
		{"shopper@example.com", models.RoleUser},
	} {
		hash, err := authSvc.HashPassword("password123")
		require.NoError(t, err)
		require.NoError(t, mem.CreateUser(context.Background(), &models.User{Email: u.email, Password: hash, Role: u.role}))
	}

	return &testEnv{
		router:  NewRouter(Deps{Catalog: catSvc, Auth: authSvc}),
		mem:     mem,
		auth:    authSvc,
		catalog: catSvc,
	}
}

// token logs in through the service and returns the bearer token
func (e *testEnv) token(t *testing.T, email string) string {
	t.Helper()
	session, err := e.auth.Login(context.Background(), email, "password123")
	require.NoError(t, err)
	return session.Token
}

// do sends a JSON request and returns the recorder
func (e *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// TestRegisterAndLogin tests user registration and login
func TestRegisterAndLogin(t *testing.T) {
	env := setupEnv(t)

	// --- Test registration ---
	reg := RegisterInput{Email: "test@example.com", Password: "testpass"}
	w := env.do("POST", "/register", "", reg)
	assert.Equal(t, 201, w.Code)
	assert.Equal(t, "registration successful", decode(t, w)["message"])

	// --- Test duplicate registration ---
	w = env.do("POST", "/register", "", reg)
	assert.Equal(t, 409, w.Code)

	// --- Test login ---
	login := LoginInput{Email: "test@example.com", Password: "testpass"}
	w = env.do("POST", "/login", "", login)
	require.Equal(t, 200, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Login successful", body["message"])
	assert.Equal(t, "user", body["role"])
	assert.NotEmpty(t, body["token"])
	assert.NotEmpty(t, body["expires_at"])

	// --- Test login with wrong password ---
	login.Password = "wrongpass"
	w = env.do("POST", "/login", "", login)
	assert.Equal(t, 401, w.Code) // Should be unauthorized
	_, hasToken := decode(t, w)["token"]
	assert.False(t, hasToken)
}

func TestLoginSalesManager(t *testing.T) {
	env := setupEnv(t)

	w := env.do("POST", "/login", "", LoginInput{Email: "sales@example.com", Password: "password123"})
	require.Equal(t, 200, w.Code)
	body := decode(t, w)
	assert.Equal(t, "sales_manager", body["role"])

	token, _ := body["token"].(string)
	w = env.do("GET", "/api/session", token, nil)
	require.Equal(t, 200, w.Code)
	session := decode(t, w)
	assert.Equal(t, "sales@example.com", session["email"])
	assert.Equal(t, "sales_manager", session["role"])
	assert.EqualValues(t, 1, session["user_id"])
}

func TestLoginAcceptsForm(t *testing.T) {
	env := setupEnv(t)

	form := url.Values{"email": {"sales@example.com"}, "password": {"password123"}}
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	env.router.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)
}

func TestLoginRejectsMissingFields(t *testing.T) {
	env := setupEnv(t)

	w := env.do("POST", "/login", "", gin.H{"email": "sales@example.com"})
	assert.Equal(t, 400, w.Code)
	details, _ := decode(t, w)["details"].(map[string]any)
	assert.Equal(t, "required", details["Password"])
}

func TestRegisterValidation(t *testing.T) {
	env := setupEnv(t)

	w := env.do("POST", "/register", "", RegisterInput{Email: "not-an-email", Password: "testpass"})
	assert.Equal(t, 400, w.Code)

	w = env.do("POST", "/register", "", RegisterInput{Email: "short@example.com", Password: "abc"})
	assert.Equal(t, 400, w.Code)

	w = env.do("POST", "/register", "", RegisterInput{Email: "long@example.com", Password: strings.Repeat("x", 80)})
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, decode(t, w)["error"], "at most 72 bytes")
}

func TestSessionRequiresToken(t *testing.T) {
	env := setupEnv(t)

	assert.Equal(t, 401, env.do("GET", "/api/session", "", nil).Code)
	assert.Equal(t, 401, env.do("GET", "/api/session", "garbage", nil).Code)
}

// Handler functions can be called without a router
func TestAuthHandlerDirect(t *testing.T) {
	env := setupEnv(t)
	h := NewAuthHandler(env.auth)
	ctx := context.Background()

	res := h.Login(ctx, LoginInput{Email: "sales@example.com", Password: "password123"})
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, models.RoleSalesManager, res.Body["role"])

	res = h.Login(ctx, LoginInput{Email: "sales@example.com", Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, res.Status)
	assert.Equal(t, "invalid credentials", res.Body["error"])
	assert.NotContains(t, res.Body, "token")
}
