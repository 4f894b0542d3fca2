package pages

import (
	"context"

	"didimdol_landing_go/models"
	"didimdol_landing_go/services/i18n"
	"didimdol_landing_go/templates/layouts"
	"didimdol_landing_go/templates/partials"
)

// LandingView holds everything the landing page renders
type LandingView struct {
	SEO  *models.SEO
	Form partials.FormView
	// Social links; empty values render as "#"
	YouTubeURL string
	BlogURL    string
	// RefreshAfter is set by the form fallback after a submission, in seconds
	RefreshAfter int
}

func (v LandingView) page() layouts.Page {
	page := layouts.Page{SEO: v.SEO}
	if v.RefreshAfter > 0 {
		page.RefreshAfter = v.RefreshAfter
		page.RefreshURL = "/#contact"
	}
	return page
}

// HeroStat is one of the figures under the hero headline
type HeroStat struct {
	ValueKey string
	LabelKey string
}

var heroStats = []HeroStat{
	{ValueKey: "hero.stats.years_value", LabelKey: "hero.stats.years_label"},
	{ValueKey: "hero.stats.cases_value", LabelKey: "hero.stats.cases_label"},
	{ValueKey: "hero.stats.response_value", LabelKey: "hero.stats.response_label"},
}

var storyParagraphs = []string{"story.p1", "story.p2", "story.p3", "story.p4"}

func errorPage(ctx context.Context) layouts.Page {
	seo := models.DefaultSEO(i18n.T(ctx, "error.heading"), i18n.T(ctx, "site.description")).WithNoIndex()
	return layouts.Page{SEO: seo}
}
