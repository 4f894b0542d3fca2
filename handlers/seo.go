package handlers

import (
	"context"

	"didimdol_landing_go/models"
	"didimdol_landing_go/services/i18n"
)

// seoKeys maps a public page to the catalog keys of its metadata
var seoKeys = map[string]struct {
	Title       string
	Description string
	Keywords    string
	Path        string
}{
	"landing": {
		Title:       "site.title",
		Description: "site.description",
		Keywords:    "site.keywords",
		Path:        "/",
	},
}

// GetSEO returns the localized metadata for a page
func GetSEO(ctx context.Context, page, appURL string) *models.SEO {
	keys, ok := seoKeys[page]
	if !ok {
		return models.DefaultSEO(i18n.T(ctx, "site.title"), i18n.T(ctx, "site.description"))
	}

	lang := i18n.GetLocale(ctx)
	alt := "en"
	if lang == "en" {
		alt = "ko"
	}

	return models.DefaultSEO(i18n.T(ctx, keys.Title), i18n.T(ctx, keys.Description)).
		WithKeywords(i18n.T(ctx, keys.Keywords)).
		WithCanonical(appURL+keys.Path).
		WithLocale(lang, alt).
		WithBusiness(legalBusiness(ctx, appURL))
}

func legalBusiness(ctx context.Context, appURL string) *models.LegalBusiness {
	return &models.LegalBusiness{
		Context:     "https://schema.org",
		Type:        "LegalService",
		Name:        i18n.T(ctx, "site.brand"),
		Description: i18n.T(ctx, "site.description"),
		URL:         appURL + "/",
		Telephone:   i18n.T(ctx, "contact.phone"),
		AreaServed:  "KR",
		KnowsAbout:  []string{"개인회생", "개인파산"},
	}
}
