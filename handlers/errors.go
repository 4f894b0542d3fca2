package handlers

import (
	"errors"
	"net/http"

	"didimdol_landing_go/middleware"
	"didimdol_landing_go/models"
	"didimdol_landing_go/services/i18n"
	"didimdol_landing_go/templates/pages"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// HTTPErrorHandler replaces echo's default handler. API callers get the
// {error} body, browsers get the error page. 5xx details are never exposed.
func HTTPErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	log = log.Named("http")
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := ""
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			}
		}

		ctx := c.Request().Context()
		switch {
		case code >= http.StatusInternalServerError:
			log.Error("unhandled error",
				zap.Error(err),
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
			)
			message = i18n.T(ctx, "api.server_error")
		case code == http.StatusNotFound:
			message = i18n.T(ctx, "api.not_found")
		case message == "":
			message = http.StatusText(code)
		}

		var writeErr error
		switch {
		case c.Request().Method == http.MethodHead:
			writeErr = c.NoContent(code)
		case middleware.WantsJSON(c):
			writeErr = c.JSON(code, models.ErrorResponse{Error: message})
		default:
			writeErr = render(c, code, pages.Error(code, message))
		}
		if writeErr != nil {
			log.Warn("error response not written", zap.Error(writeErr))
		}
	}
}
