package handlers

import (
	"net/http"

	"didimdol_landing_go/config"
	"didimdol_landing_go/consultform"
	"didimdol_landing_go/middleware"
	"didimdol_landing_go/templates/pages"
	"didimdol_landing_go/templates/partials"

	"github.com/labstack/echo/v4"
)

// LandingHandler renders the landing page with an idle form
func LandingHandler(cfg *config.Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		view := landingView(c, cfg, &consultform.Form{State: consultform.StateIdle})
		return render(c, http.StatusOK, pages.Landing(view))
	}
}

func landingView(c echo.Context, cfg *config.Config, form *consultform.Form) pages.LandingView {
	formView := partials.NewFormView(middleware.GetCSRFToken(c))
	formView.Form = form

	return pages.LandingView{
		SEO:        GetSEO(c.Request().Context(), "landing", cfg.AppURL),
		Form:       formView,
		YouTubeURL: cfg.YouTubeURL,
		BlogURL:    cfg.BlogURL,
	}
}
