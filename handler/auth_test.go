package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ininahazwe/mfwa-memorial/auth"
	"github.com/ininahazwe/mfwa-memorial/handler"
	"github.com/ininahazwe/mfwa-memorial/middleware"
	"github.com/ininahazwe/mfwa-memorial/model"
)

// fakeIdentity is a minimal in-memory IdentityProvider for router
// tests; the gate's own behavior is covered in the auth package.
type fakeIdentity struct {
	email    string
	password string
	userID   string
	sessions map[string]*model.Identity
}

func (f *fakeIdentity) Verify(ctx context.Context, email, password string) (*model.Identity, string, error) {
	if email != f.email || password != f.password {
		return nil, "", auth.ErrBadCredentials
	}
	ident := &model.Identity{UserID: f.userID, Email: email}
	token := "session-" + f.userID
	f.sessions[token] = ident
	return ident, token, nil
}

func (f *fakeIdentity) Watch(token string) (<-chan *model.Identity, func()) {
	ch := make(chan *model.Identity, 1)
	ch <- f.sessions[token]
	return ch, func() {}
}

func (f *fakeIdentity) Current(ctx context.Context, token string) *model.Identity {
	return f.sessions[token]
}

func (f *fakeIdentity) SignOut(ctx context.Context, token string) error {
	delete(f.sessions, token)
	return nil
}

type staticRoles struct {
	admins map[string]bool
}

func (s *staticRoles) Lookup(ctx context.Context, userID string) (*model.AdminRecord, error) {
	if s.admins[userID] {
		return &model.AdminRecord{UserID: userID, Role: auth.RoleAdmin}, nil
	}
	return nil, nil
}

func authRouter(provider *fakeIdentity, roles auth.RoleStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	gate := auth.NewGate(provider, roles)
	h := handler.NewAuthHandler(gate, time.Hour)

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.POST("/auth/logout", h.Logout)
	r.GET("/auth/check", h.Check)
	r.GET("/auth/identity", h.Identity)
	r.GET("/auth/permissions", h.Permissions)

	admin := r.Group("/admin-api")
	admin.Use(middleware.RequireAdmin(gate))
	admin.GET("/journalists", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": []string{}})
	})
	return r
}

func adminProvider() (*fakeIdentity, *staticRoles) {
	provider := &fakeIdentity{
		email:    "sita@example.org",
		password: "s3cret",
		userID:   "u1",
		sessions: map[string]*model.Identity{},
	}
	return provider, &staticRoles{admins: map[string]bool{"u1": true}}
}

func doJSON(r *gin.Engine, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookie && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestLoginFlow_AdminGetsSessionCookie(t *testing.T) {
	r := authRouter(adminProvider())

	rec := doJSON(r, http.MethodPost, "/auth/login", `{"email":"sita@example.org","password":"s3cret"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"redirectTo":"/"`)
	cookie := sessionCookie(t, rec)

	check := doJSON(r, http.MethodGet, "/auth/check", "", cookie)
	assert.Equal(t, http.StatusOK, check.Code)

	guarded := doJSON(r, http.MethodGet, "/admin-api/journalists", "", cookie)
	assert.Equal(t, http.StatusOK, guarded.Code)
}

func TestLoginFlow_NonAdminIsDeniedAndKeepsNoSession(t *testing.T) {
	provider, _ := adminProvider()
	roles := &staticRoles{admins: map[string]bool{}}
	r := authRouter(provider, roles)

	rec := doJSON(r, http.MethodPost, "/auth/login", `{"email":"sita@example.org","password":"s3cret"}`, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, provider.sessions, "denied login must leave no live session")
}

func TestLoginFlow_BadCredentials(t *testing.T) {
	r := authRouter(adminProvider())

	rec := doJSON(r, http.MethodPost, "/auth/login", `{"email":"sita@example.org","password":"wrong"}`, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotContains(t, rec.Body.String(), "sita@example.org")
}

func TestGuardedRoutes_RequireSession(t *testing.T) {
	r := authRouter(adminProvider())

	rec := doJSON(r, http.MethodGet, "/admin-api/journalists", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "/login")
}

func TestCheck_WithoutSessionRedirects(t *testing.T) {
	r := authRouter(adminProvider())

	rec := doJSON(r, http.MethodGet, "/auth/check", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"redirectTo":"/login"`)
}

func TestLogout_RevokesSession(t *testing.T) {
	r := authRouter(adminProvider())

	login := doJSON(r, http.MethodPost, "/auth/login", `{"email":"sita@example.org","password":"s3cret"}`, nil)
	cookie := sessionCookie(t, login)

	logout := doJSON(r, http.MethodPost, "/auth/logout", "", cookie)
	require.Equal(t, http.StatusOK, logout.Code)

	check := doJSON(r, http.MethodGet, "/auth/check", "", cookie)
	assert.Equal(t, http.StatusUnauthorized, check.Code)
}

func TestIdentityAndPermissions(t *testing.T) {
	r := authRouter(adminProvider())

	login := doJSON(r, http.MethodPost, "/auth/login", `{"email":"sita@example.org","password":"s3cret"}`, nil)
	cookie := sessionCookie(t, login)

	ident := doJSON(r, http.MethodGet, "/auth/identity", "", cookie)
	require.Equal(t, http.StatusOK, ident.Code)
	assert.Contains(t, ident.Body.String(), "sita@example.org")

	perms := doJSON(r, http.MethodGet, "/auth/permissions", "", cookie)
	require.Equal(t, http.StatusOK, perms.Code)
	assert.Contains(t, perms.Body.String(), "admin")

	anon := doJSON(r, http.MethodGet, "/auth/identity", "", nil)
	assert.Equal(t, http.StatusNoContent, anon.Code)
}
