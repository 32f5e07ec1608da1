package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-reservation/internal/utils"
)

const authTestSecret = "unit-test-secret"

func runAuth(t *testing.T, header string) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/payments", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handlerRan := false
	err := AdminAuth(authTestSecret)(func(c echo.Context) error {
		handlerRan = true
		return c.NoContent(http.StatusOK)
	})(c)
	require.NoError(t, err)
	return rec, c, handlerRan
}

func TestAdminAuthAcceptsValidToken(t *testing.T) {
	st, err := utils.NewSessionToken(authTestSecret, 42, "Front Desk", 60)
	require.NoError(t, err)

	rec, c, handlerRan := runAuth(t, "Bearer "+st.Token)
	assert.True(t, handlerRan)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "42", c.Get("admin_id"))
	assert.Equal(t, "ADMIN", c.Get("role"))
}

func TestAdminAuthRejectsMissingHeader(t *testing.T) {
	rec, _, handlerRan := runAuth(t, "")
	assert.False(t, handlerRan)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminAuthRejectsWrongSecret(t *testing.T) {
	st, err := utils.NewSessionToken("some-other-secret", 42, "Front Desk", 60)
	require.NoError(t, err)

	rec, _, handlerRan := runAuth(t, "Bearer "+st.Token)
	assert.False(t, handlerRan)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminAuthRejectsExpiredToken(t *testing.T) {
	st, err := utils.NewSessionToken(authTestSecret, 42, "Front Desk", -5)
	require.NoError(t, err)

	rec, _, handlerRan := runAuth(t, "Bearer "+st.Token)
	assert.False(t, handlerRan)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	e := echo.New()

	run := func(role interface{}) (*httptest.ResponseRecorder, bool) {
		req := httptest.NewRequest(http.MethodGet, "/v1/admin/payments", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != nil {
			c.Set("role", role)
		}
		handlerRan := false
		err := RequireRole("ADMIN")(func(c echo.Context) error {
			handlerRan = true
			return c.NoContent(http.StatusOK)
		})(c)
		require.NoError(t, err)
		return rec, handlerRan
	}

	rec, ran := run("ADMIN")
	assert.True(t, ran)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, ran = run("GUEST")
	assert.False(t, ran)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, ran = run(nil)
	assert.False(t, ran)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, ran = run(123)
	assert.False(t, ran)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
