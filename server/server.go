// Package server assembles the echo instance: middleware, static assets and routes.
package server

import (
	"net/http"

	"didimdol_landing_go/config"
	"didimdol_landing_go/handlers"
	"didimdol_landing_go/middleware"
	"didimdol_landing_go/static"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// SubmissionBodyLimit caps the body of both consultation routes
const SubmissionBodyLimit = "16K"

// Options are the collaborators New wires into the routes
type Options struct {
	Config *config.Config
	Logger *zap.Logger
	Relay  handlers.ConsultationRelay
	// FormLimiter guards both consultation endpoints; nil uses middleware.PublicFormRateLimiter
	FormLimiter *middleware.RateLimiter
}

// New returns a ready to serve echo instance
func New(opts Options) *echo.Echo {
	cfg := opts.Config
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	limiter := opts.FormLimiter
	if limiter == nil {
		limiter = middleware.PublicFormRateLimiter
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handlers.HTTPErrorHandler(log)

	// Middleware
	e.Use(middleware.RequestLogger(log))
	e.Use(middleware.Recover(log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAccept},
	}))
	e.Use(middleware.CSPNonce())
	e.Use(middleware.Locale(cfg))
	e.Use(middleware.CSRF(cfg))

	// Static files
	middleware.InitAssetVersions(static.FS, log)
	e.StaticFS("/static", static.FS)

	// Public routes
	e.GET("/", handlers.LandingHandler(cfg))
	e.GET("/health", handlers.HealthHandler)
	e.GET("/sitemap.xml", handlers.SitemapHandler(cfg.AppURL))
	e.GET("/robots.txt", handlers.RobotsHandler(cfg.AppURL))

	// Consultation: the JSON relay used by the page script and the plain form post
	bodyLimit := echomiddleware.BodyLimit(SubmissionBodyLimit)
	e.POST("/api/consultation", handlers.ConsultationHandler(opts.Relay, log), limiter.Middleware(), bodyLimit)
	e.POST("/consultation", handlers.ConsultationFormHandler(opts.Relay, cfg), limiter.Middleware(), bodyLimit)

	return e
}
