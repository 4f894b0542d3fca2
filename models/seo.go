package models

// SEO contains metadata for search engines and link previews
type SEO struct {
	Title       string // Page title
	Description string // Meta description
	Keywords    string // Meta keywords (comma-separated)
	Canonical   string // Canonical URL
	OGTitle     string // Open Graph title (defaults to Title if empty)
	OGDesc      string // Open Graph description (defaults to Description if empty)
	OGImage     string // Open Graph image URL
	OGType      string // Open Graph type (website, article, etc.)
	TwitterCard string // Twitter card type (summary, summary_large_image)
	NoIndex     bool   // If true, adds noindex directive
	Locale      string // Current locale ("ko", "en")
	AltLocales  []string
	// Business is rendered as schema.org JSON-LD when set
	Business *LegalBusiness
}

// LegalBusiness is the schema.org LegalService block describing the office
type LegalBusiness struct {
	Context     string   `json:"@context"`
	Type        string   `json:"@type"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	URL         string   `json:"url,omitempty"`
	Telephone   string   `json:"telephone,omitempty"`
	AreaServed  string   `json:"areaServed,omitempty"`
	KnowsAbout  []string `json:"knowsAbout,omitempty"`
}

// DefaultSEO returns SEO with the site defaults
func DefaultSEO(title, description string) *SEO {
	return &SEO{
		Title:       title,
		Description: description,
		OGType:      "website",
		TwitterCard: "summary_large_image",
		Locale:      "ko",
		AltLocales:  []string{"en"},
	}
}

// WithCanonical sets the canonical URL
func (s *SEO) WithCanonical(url string) *SEO {
	s.Canonical = url
	return s
}

// WithOGImage sets the Open Graph image
func (s *SEO) WithOGImage(imageURL string) *SEO {
	s.OGImage = imageURL
	return s
}

// WithKeywords sets meta keywords
func (s *SEO) WithKeywords(keywords string) *SEO {
	s.Keywords = keywords
	return s
}

// WithLocale sets the current locale and alternative locales
func (s *SEO) WithLocale(locale string, altLocales ...string) *SEO {
	s.Locale = locale
	s.AltLocales = altLocales
	return s
}

// WithNoIndex sets the noindex directive
func (s *SEO) WithNoIndex() *SEO {
	s.NoIndex = true
	return s
}

// WithBusiness attaches structured data for the office
func (s *SEO) WithBusiness(b *LegalBusiness) *SEO {
	s.Business = b
	return s
}

// GetOGTitle returns OGTitle or falls back to Title
func (s *SEO) GetOGTitle() string {
	if s.OGTitle != "" {
		return s.OGTitle
	}
	return s.Title
}

// GetOGDesc returns OGDesc or falls back to Description
func (s *SEO) GetOGDesc() string {
	if s.OGDesc != "" {
		return s.OGDesc
	}
	return s.Description
}

// OGLocale returns the Open Graph locale, e.g. ko_KR
func (s *SEO) OGLocale() string {
	switch s.Locale {
	case "en":
		return "en_US"
	default:
		return "ko_KR"
	}
}
