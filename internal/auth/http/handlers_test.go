package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/devforge-studio/crm-backend/internal/auth/repository"
	"github.com/devforge-studio/crm-backend/internal/auth/service"
	"github.com/devforge-studio/crm-backend/internal/auth/session"
)

type fakeUsers struct {
	users map[string]*repository.User
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*repository.User, error) {
	if u, ok := f.users[username]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

func newAuthRouter(t *testing.T) (*gin.Engine, *session.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	sessions := session.NewStore(client, time.Hour)

	hash := func(pw string) string {
		h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
		require.NoError(t, err)
		return string(h)
	}
	users := &fakeUsers{users: map[string]*repository.User{
		"admin": {ID: 1, Username: "admin", PasswordHash: hash("s3cret")},
		"casey": {ID: 2, Username: "casey", PasswordHash: hash("hunter2")},
	}}

	r := gin.New()
	Register(r.Group(""), service.NewAuthService(users, sessions), sessions)
	return r, sessions
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	return nil
}

func TestLogin(t *testing.T) {
	t.Run("valid credentials set a session cookie", func(t *testing.T) {
		router, sessions := newAuthRouter(t)

		rec := postJSON(t, router, "/login/", gin.H{"username": "casey", "password": "hunter2"})
		require.Equal(t, http.StatusOK, rec.Code)

		cookie := sessionCookie(rec)
		require.NotNil(t, cookie)
		assert.True(t, cookie.HttpOnly)

		sess, err := sessions.Get(context.Background(), cookie.Value)
		require.NoError(t, err)
		assert.Equal(t, "casey", sess.Username)
		assert.Equal(t, service.RoleStandard, sess.Role)
	})

	t.Run("role comes from the identity, not the request", func(t *testing.T) {
		router, _ := newAuthRouter(t)

		rec := postJSON(t, router, "/login/", gin.H{"username": "casey", "password": "hunter2", "role": "admin"})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, service.RoleStandard, resp["role"])
	})

	t.Run("admin username resolves to the admin role", func(t *testing.T) {
		router, _ := newAuthRouter(t)

		rec := postJSON(t, router, "/login/", gin.H{"username": "admin", "password": "s3cret"})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"role":"admin"`)
	})

	t.Run("bad password and unknown user are indistinguishable", func(t *testing.T) {
		router, _ := newAuthRouter(t)

		wrongPw := postJSON(t, router, "/login/", gin.H{"username": "casey", "password": "nope"})
		noUser := postJSON(t, router, "/login/", gin.H{"username": "ghost", "password": "nope"})

		require.Equal(t, http.StatusUnauthorized, wrongPw.Code)
		require.Equal(t, http.StatusUnauthorized, noUser.Code)
		assert.JSONEq(t, wrongPw.Body.String(), noUser.Body.String())
		assert.Contains(t, wrongPw.Body.String(), "Invalid credentials")
	})
}

func TestLogout(t *testing.T) {
	router, sessions := newAuthRouter(t)

	login := postJSON(t, router, "/login/", gin.H{"username": "casey", "password": "hunter2"})
	cookie := sessionCookie(login)
	require.NotNil(t, cookie)

	req := httptest.NewRequest(http.MethodPost, "/logout/", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	_, err := sessions.Get(context.Background(), cookie.Value)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestUserRole(t *testing.T) {
	t.Run("anonymous callers are standard", func(t *testing.T) {
		router, _ := newAuthRouter(t)

		req := httptest.NewRequest(http.MethodGet, "/user/role/", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"role":"standard"`)
	})

	t.Run("admin session reports admin", func(t *testing.T) {
		router, _ := newAuthRouter(t)

		login := postJSON(t, router, "/login/", gin.H{"username": "admin", "password": "s3cret"})
		cookie := sessionCookie(login)
		require.NotNil(t, cookie)

		req := httptest.NewRequest(http.MethodGet, "/user/role/", nil)
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Contains(t, rec.Body.String(), `"role":"admin"`)
	})
}

func TestRegisterStub(t *testing.T) {
	router, _ := newAuthRouter(t)

	rec := postJSON(t, router, "/register/", gin.H{"username": "new", "password": "pw"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "Registration successful")
}

func TestCSRF(t *testing.T) {
	t.Run("token issued as cookie and body", func(t *testing.T) {
		router, _ := newAuthRouter(t)

		req := httptest.NewRequest(http.MethodGet, "/csrf/", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotEmpty(t, resp["csrfToken"])

		var found bool
		for _, c := range rec.Result().Cookies() {
			if c.Name == CSRFCookieName {
				found = true
				assert.Equal(t, resp["csrfToken"], c.Value)
				assert.False(t, c.HttpOnly, "frontend must be able to read it")
			}
		}
		assert.True(t, found)
	})

	t.Run("middleware enforces the double-submit pair", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		r := gin.New()
		r.POST("/protected/", RequireCSRF(), func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})

		missing := httptest.NewRequest(http.MethodPost, "/protected/", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, missing)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		matched := httptest.NewRequest(http.MethodPost, "/protected/", nil)
		matched.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "tok-1"})
		matched.Header.Set("X-CSRF-Token", "tok-1")
		rec = httptest.NewRecorder()
		r.ServeHTTP(rec, matched)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		mismatched := httptest.NewRequest(http.MethodPost, "/protected/", nil)
		mismatched.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "tok-1"})
		mismatched.Header.Set("X-CSRF-Token", "tok-2")
		rec = httptest.NewRecorder()
		r.ServeHTTP(rec, mismatched)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
