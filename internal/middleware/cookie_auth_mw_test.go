package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"kodask_bank/internal/model"
	"kodask_bank/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeAuthService struct {
	identity *service.Identity
	err      error
}

func (f *fakeAuthService) Register(ctx context.Context, req model.RegisterRequest) (int, error) {
	return 0, errors.New("not implemented")
}

func (f *fakeAuthService) Login(ctx context.Context, username, password string) (string, string, error) {
	return "", "", errors.New("not implemented")
}

func (f *fakeAuthService) Authenticate(ctx context.Context, token string) (*service.Identity, error) {
	return f.identity, f.err
}

func newProtectedRouter(svc service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", CookieAuthMiddleware(svc), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"username": c.GetString(AuthUserKey),
			"role":     c.GetString(AuthRoleKey),
		})
	})
	return router
}

func TestCookieAuthMiddleware_MissingCookie(t *testing.T) {
	router := newProtectedRouter(&fakeAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Unauthorized")
}

func TestCookieAuthMiddleware_InvalidToken(t *testing.T) {
	router := newProtectedRouter(&fakeAuthService{err: service.ErrInvalidToken})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: "bad.token"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token")
}

func TestCookieAuthMiddleware_StoreFailure(t *testing.T) {
	// Token store outage is not the caller's fault and must not read as a bad token
	router := newProtectedRouter(&fakeAuthService{err: errors.New("token store unavailable")})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: "good.token"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
	assert.NotContains(t, w.Body.String(), "unavailable")
}

func TestCookieAuthMiddleware_ValidToken(t *testing.T) {
	router := newProtectedRouter(&fakeAuthService{identity: &service.Identity{Username: "alice", Role: model.RoleCustomer}})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: "good.token"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
	assert.Contains(t, w.Body.String(), model.RoleCustomer)
}
