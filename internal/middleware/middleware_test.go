package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweetdelights/storefront/internal/utils"
)

func invoke(mw echo.MiddlewareFunc, header string) (*httptest.ResponseRecorder, bool) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	handler := mw(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})
	_ = handler(c)
	return rec, reached
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	tok, err := utils.NewAccessToken("secret", "7", "user", 5)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := JWTAuth("secret")(func(c echo.Context) error {
		assert.Equal(t, "7", c.Get(CtxUserID))
		assert.Equal(t, "user", c.Get(CtxRole))
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTAuthRejects(t *testing.T) {
	wrongKey, err := utils.NewAccessToken("other-secret", "7", "user", 5)
	require.NoError(t, err)

	cases := []struct {
		name, header string
	}{
		{"no header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong key", "Bearer " + wrongKey.Token},
	}
	for _, tc := range cases {
		rec, reached := invoke(JWTAuth("secret"), tc.header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, tc.name)
		assert.False(t, reached, tc.name)
	}
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	run := func(role any) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodDelete, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != nil {
			c.Set(CtxRole, role)
		}
		handler := RequireRole("admin")(func(c echo.Context) error {
			return c.NoContent(http.StatusNoContent)
		})
		_ = handler(c)
		return rec
	}

	assert.Equal(t, http.StatusNoContent, run("admin").Code)
	assert.Equal(t, http.StatusForbidden, run("user").Code)
	assert.Equal(t, http.StatusForbidden, run(nil).Code)
}
