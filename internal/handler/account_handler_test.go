package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"kodask_bank/internal/middleware"
	"kodask_bank/internal/model"
	"kodask_bank/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBalanceService scripts balance lookups for handler tests.
type fakeBalanceService struct {
	balance string
	err     error
}

func (f *fakeBalanceService) GetBalance(ctx context.Context, username string) (string, error) {
	return f.balance, f.err
}

// identityMW stands in for the cookie auth middleware.
func identityMW(username, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.AuthUserKey, username)
		c.Set(middleware.AuthRoleKey, role)
		c.Next()
	}
}

// passthroughMW runs the chain without placing an identity in context.
func passthroughMW(c *gin.Context) {
	c.Next()
}

func newAccountRouter(svc service.BalanceService, authMW gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewAccountHandler(svc).RegisterAccountRoutes(router.Group("/api"), authMW, middleware.StaffMiddleware())
	return router
}

func getPath(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAccountHandler_GetBalance(t *testing.T) {
	router := newAccountRouter(&fakeBalanceService{balance: model.DefaultBalance}, identityMW("alice", model.RoleCustomer))

	w := getPath(router, "/api/balance")

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, model.DefaultBalance, body["balance"])
}

func TestAccountHandler_GetBalance_UserGone(t *testing.T) {
	router := newAccountRouter(&fakeBalanceService{err: service.ErrUserNotFound}, identityMW("alice", model.RoleCustomer))

	w := getPath(router, "/api/balance")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "User not found")
}

func TestAccountHandler_GetBalance_NoIdentityInContext(t *testing.T) {
	router := newAccountRouter(&fakeBalanceService{balance: model.DefaultBalance}, passthroughMW)

	w := getPath(router, "/api/balance")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Unauthorized")
	// Internal plumbing details stay out of the response body
	assert.NotContains(t, w.Body.String(), "context")
}

func TestAccountHandler_Me(t *testing.T) {
	router := newAccountRouter(&fakeBalanceService{}, identityMW("alice", model.RoleManager))

	w := getPath(router, "/api/me")

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, model.RoleManager, body["role"])
}

func TestAccountHandler_CustomerBalance_StaffOnly(t *testing.T) {
	router := newAccountRouter(&fakeBalanceService{balance: model.DefaultBalance}, identityMW("alice", model.RoleCustomer))

	w := getPath(router, "/api/accounts/bob/balance")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "permission")
}

func TestAccountHandler_CustomerBalance_Manager(t *testing.T) {
	router := newAccountRouter(&fakeBalanceService{balance: "250.00"}, identityMW("mallory", model.RoleManager))

	w := getPath(router, "/api/accounts/bob/balance")

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "250.00", body["balance"])
}
