package layouts

import (
	"context"
	"strconv"

	"didimdol_landing_go/middleware"
	"didimdol_landing_go/models"
	"didimdol_landing_go/services/i18n"
)

// Page is what the base layout needs besides the body
type Page struct {
	SEO *models.SEO
	// RefreshAfter, when positive, adds a meta refresh to RefreshURL.
	// The no-script form fallback uses it to return to the idle form.
	RefreshAfter int
	RefreshURL   string
}

func (p Page) seo(ctx context.Context) *models.SEO {
	if p.SEO != nil {
		return p.SEO
	}
	return models.DefaultSEO(i18n.T(ctx, "site.title"), i18n.T(ctx, "site.description"))
}

func (p Page) refreshContent() string {
	return strconv.Itoa(p.RefreshAfter) + ";url=" + p.RefreshURL
}

func stylesheetURL(ctx context.Context) string {
	return "/static/" + middleware.LandingCSS + "?v=" + middleware.GetCSSVersion(ctx)
}

func scriptURL(ctx context.Context) string {
	return "/static/" + middleware.ConsultationJS + "?v=" + middleware.GetConsultationJSVersion(ctx)
}
