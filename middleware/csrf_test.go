package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"turn2law_web/config"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCSRFToken(t *testing.T) {
	e := echo.New()

	t.Run("TokenExists", func(t *testing.T) {
		c := e.NewContext(nil, nil)
		expectedToken := "test-csrf-token"
		c.Set("csrf", expectedToken)

		token := GetCSRFToken(c)
		assert.Equal(t, expectedToken, token)
	})

	t.Run("TokenMissing", func(t *testing.T) {
		c := e.NewContext(nil, nil)

		token := GetCSRFToken(c)
		assert.Equal(t, "", token)
	})

	t.Run("TokenInvalidType", func(t *testing.T) {
		c := e.NewContext(nil, nil)
		c.Set("csrf", 123) // Not a string

		token := GetCSRFToken(c)
		assert.Equal(t, "", token)
	})
}

func TestCSRF(t *testing.T) {
	e := echo.New()
	e.Use(CSRF(&config.Config{Environment: "development"}))
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, GetCSRFToken(c))
	})
	e.POST("/waitlist", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	// Issue a token
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	token := rec.Body.String()
	require.NotEmpty(t, token)

	var cookie *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "_csrf" {
			cookie = ck
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure)

	t.Run("FormFieldAccepted", func(t *testing.T) {
		form := url.Values{CSRFFormField: {token}}
		req := httptest.NewRequest(http.MethodPost, "/waitlist", strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("HeaderAccepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/waitlist", nil)
		req.Header.Set(echo.HeaderXCSRFToken, token)
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("WrongTokenRejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/waitlist", nil)
		req.Header.Set(echo.HeaderXCSRFToken, "forged")
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
