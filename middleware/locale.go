package middleware

import (
	"context"
	"net/http"
	"time"

	"didimdol_landing_go/config"
	"didimdol_landing_go/services/i18n"

	"github.com/labstack/echo/v4"
	"golang.org/x/text/language"
)

const langCookieName = "lang"

// Locale middleware handles language detection and persistence.
// Priority:
// 1. Query param "lang" (sets cookie)
// 2. Cookie "lang"
// 3. Accept-Language header
// 4. Default ("ko")
func Locale(cfg *config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			lang := ""
			if q := c.QueryParam("lang"); q != "" {
				lang = i18n.Normalize(q)
				SetLanguageCookie(c, cfg, lang)
			} else if cookie, err := c.Cookie(langCookieName); err == nil {
				lang = i18n.Normalize(cookie.Value)
			} else {
				lang = fromAcceptLanguage(c.Request().Header.Get("Accept-Language"))
			}

			c.Set("locale", lang)

			// Request context for templ components and services
			ctx := context.WithValue(c.Request().Context(), i18n.LocaleContextKey, lang)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// fromAcceptLanguage returns the first supported language in q-order
func fromAcceptLanguage(header string) string {
	if header == "" {
		return i18n.DefaultLang
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return i18n.DefaultLang
	}
	for _, tag := range tags {
		base, _ := tag.Base()
		if i18n.Supported(base.String()) {
			return base.String()
		}
	}
	return i18n.DefaultLang
}

// SetLanguageCookie persists lang for a year
func SetLanguageCookie(c echo.Context, cfg *config.Config, lang string) {
	cookie := new(http.Cookie)
	cookie.Name = langCookieName
	cookie.Value = lang
	cookie.Expires = time.Now().Add(24 * 365 * time.Hour)
	cookie.Path = "/"
	cookie.HttpOnly = true
	cookie.SameSite = http.SameSiteLaxMode
	if cfg != nil && cfg.IsProduction() {
		cookie.Secure = true
	}
	c.SetCookie(cookie)
}

// GetLocale returns the current locale from context
func GetLocale(c echo.Context) string {
	if lang, ok := c.Get("locale").(string); ok && lang != "" {
		return lang
	}
	return i18n.DefaultLang
}
