package handlers

import (
	"encoding/xml"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type SitemapURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod,omitempty"`
	ChangeFreq string  `xml:"changefreq,omitempty"`
	Priority   float32 `xml:"priority,omitempty"`
}

type SitemapURLSet struct {
	XMLName string       `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapHandler lists the public pages under appURL
func SitemapHandler(appURL string) echo.HandlerFunc {
	return func(c echo.Context) error {
		urlSet := SitemapURLSet{
			Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
			URLs: []SitemapURL{
				{Loc: appURL + "/", ChangeFreq: "weekly", Priority: 1.0},
				{Loc: appURL + "/?lang=en", ChangeFreq: "weekly", Priority: 0.8},
			},
		}

		c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationXMLCharsetUTF8)
		c.Response().WriteHeader(http.StatusOK)
		if _, err := c.Response().Write([]byte(xml.Header)); err != nil {
			return err
		}

		encoder := xml.NewEncoder(c.Response().Writer)
		encoder.Indent("", "  ")
		return encoder.Encode(urlSet)
	}
}

// RobotsHandler allows crawling of the page and keeps crawlers off the API
func RobotsHandler(appURL string) echo.HandlerFunc {
	body := strings.Join([]string{
		"User-agent: *",
		"Allow: /",
		"Disallow: /api/",
		"Disallow: /consultation",
		"",
		"Sitemap: " + appURL + "/sitemap.xml",
		"",
	}, "\n")

	return func(c echo.Context) error {
		return c.String(http.StatusOK, body)
	}
}
