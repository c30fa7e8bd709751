package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"finance_tracker/internal/domain"
	"finance_tracker/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeUsers map[uint]*domain.User

func (f fakeUsers) UserByID(_ context.Context, id uint) (*domain.User, error) {
	if id == 99 {
		return nil, errors.New("db down")
	}
	u, ok := f[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func newRouter(users UserLoader) *gin.Engine {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/me", JWTAuthMiddleware("secret"), CurrentUserMiddleware(users), func(c *gin.Context) {
		id, _ := UserID(c)
		u, _ := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "name": u.Name})
	})
	return r
}

func get(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthChain(t *testing.T) {
	r := newRouter(fakeUsers{1: {ID: 1, Name: "Asha"}})

	token, err := utils.GenerateJWT(1, "secret", time.Hour)
	require.NoError(t, err)
	w := get(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"name":"Asha"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	assert.Equal(t, http.StatusUnauthorized, get(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Token "+token).Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer nope").Code)

	other, err := utils.GenerateJWT(2, "secret", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer "+other).Code)

	broken, err := utils.GenerateJWT(99, "secret", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, get(r, "Bearer "+broken).Code)
}

func TestRequestIDPassthrough(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) {
		assert.Equal(t, "abc-123", Logger(c).Data["request_id"])
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}
