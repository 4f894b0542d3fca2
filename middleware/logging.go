package middleware

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// RequestLogger writes one zap record per request
func RequestLogger(log *zap.Logger) echo.MiddlewareFunc {
	log = log.Named("http")
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogStatus:    true,
		LogMethod:    true,
		LogURIPath:   true,
		LogRoutePath: true,
		LogRemoteIP:  true,
		LogLatency:   true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("path", v.URIPath),
				zap.String("route", v.RoutePath),
				zap.Int("status", v.Status),
				zap.String("remote_ip", v.RemoteIP),
				zap.Duration("latency", v.Latency),
			}
			switch {
			case v.Error != nil && v.Status >= 500:
				log.Error("request", append(fields, zap.Error(v.Error))...)
			case v.Error != nil:
				log.Warn("request", append(fields, zap.Error(v.Error))...)
			default:
				log.Info("request", fields...)
			}
			return nil
		},
	})
}

// Recover turns panics into errors for the HTTP error handler and logs the stack
func Recover(log *zap.Logger) echo.MiddlewareFunc {
	return echomiddleware.RecoverWithConfig(echomiddleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			log.Error("panic recovered",
				zap.String("path", c.Request().URL.Path),
				zap.Error(err),
				zap.ByteString("stack", stack))
			return err
		},
	})
}
