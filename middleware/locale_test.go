package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"turn2law_web/config"
	"turn2law_web/services/i18n"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocale(t *testing.T) {
	require.NoError(t, i18n.Load())

	e := echo.New()
	cfg := &config.Config{Environment: "development"}
	noop := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}

	t.Run("PriorityQueryParam", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?lang=hi", nil)
		req.Header.Set("Accept-Language", "en-US")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := Locale(cfg)(noop)(c)
		assert.NoError(t, err)
		assert.Equal(t, "hi", c.Get("locale"))

		found := false
		for _, cookie := range rec.Result().Cookies() {
			if cookie.Name == LangCookie {
				assert.Equal(t, "hi", cookie.Value)
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("UnsupportedQueryParam", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?lang=xx", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		assert.NoError(t, Locale(cfg)(noop)(c))
		assert.Equal(t, "en", c.Get("locale"))
	})

	t.Run("PriorityCookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: LangCookie, Value: "hi"})
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		assert.NoError(t, Locale(cfg)(noop)(c))
		assert.Equal(t, "hi", c.Get("locale"))
	})

	t.Run("StaleCookieIgnored", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: LangCookie, Value: "es"})
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		assert.NoError(t, Locale(cfg)(noop)(c))
		assert.Equal(t, "en", c.Get("locale"))
	})

	t.Run("PriorityHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Language", "hi-IN,hi;q=0.9,en;q=0.8")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		assert.NoError(t, Locale(cfg)(noop)(c))
		assert.Equal(t, "hi", c.Get("locale"))
	})

	t.Run("DefaultLanguage", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		assert.NoError(t, Locale(cfg)(noop)(c))
		assert.Equal(t, "en", c.Get("locale"))
	})

	t.Run("RequestContext", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?lang=hi", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler := Locale(cfg)(func(c echo.Context) error {
			assert.Equal(t, "hi", i18n.GetLocale(c.Request().Context()))
			return c.NoContent(http.StatusOK)
		})

		assert.NoError(t, handler(c))
	})
}

func TestMatchLanguage(t *testing.T) {
	require.NoError(t, i18n.Load())

	assert.Equal(t, "en", MatchLanguage(""))
	assert.Equal(t, "en", MatchLanguage("en-GB,en;q=0.9"))
	assert.Equal(t, "hi", MatchLanguage("hi"))
	assert.Equal(t, "en", MatchLanguage("fr-FR,fr;q=0.9"))
	assert.Equal(t, "en", MatchLanguage(";;;garbage"))
}

func TestSetLanguageCookie(t *testing.T) {
	e := echo.New()
	langCookie := func(rec *httptest.ResponseRecorder) *http.Cookie {
		for _, cookie := range rec.Result().Cookies() {
			if cookie.Name == LangCookie {
				return cookie
			}
		}
		return nil
	}

	t.Run("Development", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set("config", &config.Config{Environment: "development"})

		SetLanguageCookie(c, "hi")

		cookie := langCookie(rec)
		assert.NotNil(t, cookie)
		assert.Equal(t, "hi", cookie.Value)
		assert.False(t, cookie.Secure)
	})

	t.Run("Production", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set("config", &config.Config{Environment: "production"})

		SetLanguageCookie(c, "en")

		cookie := langCookie(rec)
		assert.NotNil(t, cookie)
		assert.True(t, cookie.Secure)
	})
}

func TestGetLocale(t *testing.T) {
	e := echo.New()
	t.Run("WithLocale", func(t *testing.T) {
		c := e.NewContext(nil, nil)
		c.Set("locale", "hi")
		assert.Equal(t, "hi", GetLocale(c))
	})

	t.Run("WithoutLocale", func(t *testing.T) {
		c := e.NewContext(nil, nil)
		assert.Equal(t, "en", GetLocale(c))
	})
}
